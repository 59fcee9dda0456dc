/*
 * SIMP - Machine composition and cycle loop.
 *
 * Copyright 2025, Amit Damari
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Wires the CPU core, memories, hardware registers and trace writers
// into one machine and runs the cycle loop.
package machine

import (
	"fmt"
	"io"

	cpu "github.com/AmitDamari/simp/emu/cpu"
	iosystem "github.com/AmitDamari/simp/emu/iosystem"
	mem "github.com/AmitDamari/simp/emu/memory"
	trace "github.com/AmitDamari/simp/emu/trace"
)

// Inputs are the four machine images. Nil readers leave the matching
// state zeroed.
type Inputs struct {
	IMem     io.Reader // 48 bit instruction words, 12 hex digits per line
	DMem     io.Reader // 32 bit data words, 8 hex digits per line
	Disk     io.Reader // 32 bit disk words, 8 hex digits per line
	Schedule io.Reader // External interrupt cycles, decimal, ascending
}

// Outputs are the simulation artifacts. Nil writers discard their stream.
type Outputs struct {
	DMem        io.Writer // Final data memory
	Regs        io.Writer // Final R3..R15
	Trace       io.Writer // Per cycle instruction trace
	HWRegTrace  io.Writer // Hardware register accesses
	Cycles      io.Writer // Total cycle count
	Leds        io.Writer // LED changes
	Display7Seg io.Writer // Seven segment changes
	Disk        io.Writer // Final disk contents
	MonitorText io.Writer // Framebuffer as hex text
	MonitorYUV  io.Writer // Framebuffer as raw YUV
}

// Machine owns all simulation state.
type Machine struct {
	IMem  mem.Instr
	Data  mem.Data
	Disk  mem.Disk
	Frame mem.Frame

	IO    *iosystem.File
	Core  *cpu.Core
	Trace *trace.Tracer

	out Outputs
}

// New builds a zeroed machine writing its artifacts to out.
func New(out Outputs) *Machine {
	if out.Trace == nil {
		out.Trace = io.Discard
	}
	if out.HWRegTrace == nil {
		out.HWRegTrace = io.Discard
	}
	if out.Leds == nil {
		out.Leds = io.Discard
	}
	if out.Display7Seg == nil {
		out.Display7Seg = io.Discard
	}

	m := &Machine{out: out}
	m.IO = iosystem.New(&m.Data, &m.Disk, &m.Frame)
	m.Core = cpu.New(&m.IMem, &m.Data, m.IO)
	m.Trace = trace.New(out.Trace, out.HWRegTrace, out.Leds, out.Display7Seg)
	m.IO.SetTracer(m.Trace)
	return m
}

// Load fills the memories and the interrupt schedule from the input images.
func (m *Machine) Load(in Inputs) error {
	if in.IMem != nil {
		if err := m.IMem.Load(in.IMem); err != nil {
			return fmt.Errorf("imemin: %w", err)
		}
	}
	if in.DMem != nil {
		if err := m.Data.Load(in.DMem); err != nil {
			return fmt.Errorf("dmemin: %w", err)
		}
	}
	if in.Disk != nil {
		if err := m.Disk.Load(in.Disk); err != nil {
			return fmt.Errorf("diskin: %w", err)
		}
	}
	if in.Schedule != nil {
		schedule, err := iosystem.LoadSchedule(in.Schedule)
		if err != nil {
			return fmt.Errorf("irq2in: %w", err)
		}
		m.IO.Schedule = schedule
	}
	return nil
}

// Step runs one machine cycle: device tick, interrupt poll, external
// line, fetch, decode, immediate writes, trace, execute, output logs.
// A halted machine does not step.
func (m *Machine) Step() {
	if m.Core.Halted {
		return
	}

	m.IO.Tick()
	m.Core.PollInterrupt()
	m.IO.TickExternal()

	word := m.Core.Fetch()
	inst := cpu.Decode(word)
	m.Core.SetImmediates(inst)
	m.Trace.Instruction(m.Core.PC, word, &m.Core.Regs)
	m.Core.Execute(inst)

	m.Trace.UpdateLeds(m.IO.Cycle, m.IO.Leds)
	m.Trace.UpdateDisplay(m.IO.Cycle, m.IO.Display7Seg)
	m.IO.Cycle++
}

// Run steps the machine until halt.
func (m *Machine) Run() {
	for !m.Core.Halted {
		m.Step()
	}
}

// Finish flushes the trace streams and writes the end of run dumps.
func (m *Machine) Finish() error {
	if err := m.Trace.Flush(); err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	if m.out.DMem != nil {
		if err := m.Data.Dump(m.out.DMem); err != nil {
			return fmt.Errorf("dmemout: %w", err)
		}
	}
	if m.out.Regs != nil {
		if err := trace.WriteRegisters(m.out.Regs, &m.Core.Regs); err != nil {
			return fmt.Errorf("regout: %w", err)
		}
	}
	if m.out.Disk != nil {
		if err := m.Disk.Dump(m.out.Disk); err != nil {
			return fmt.Errorf("diskout: %w", err)
		}
	}
	if m.out.MonitorText != nil {
		if err := m.Frame.DumpText(m.out.MonitorText); err != nil {
			return fmt.Errorf("monitor: %w", err)
		}
	}
	if m.out.MonitorYUV != nil {
		if err := m.Frame.DumpYUV(m.out.MonitorYUV); err != nil {
			return fmt.Errorf("monitor yuv: %w", err)
		}
	}
	if m.out.Cycles != nil {
		if _, err := fmt.Fprintf(m.out.Cycles, "%d", m.IO.Cycle); err != nil {
			return fmt.Errorf("cycles: %w", err)
		}
	}
	return nil
}
