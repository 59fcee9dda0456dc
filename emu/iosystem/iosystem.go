/*
 * SIMP - Memory mapped I/O and devices.
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

// The 23 memory mapped hardware registers, the devices behind them and
// the per cycle device tick.
package iosystem

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	mem "github.com/AmitDamari/simp/emu/memory"
)

// Hardware register numbers.
const (
	IRQ0Enable = iota
	IRQ1Enable
	IRQ2Enable
	IRQ0Status
	IRQ1Status
	IRQ2Status
	IRQHandler
	IRQReturn
	Clks
	Leds
	Display7Seg
	TimerEnable
	TimerCurrent
	TimerMax
	DiskCmd
	DiskSector
	DiskBuffer
	DiskStatus
	Reserved0
	Reserved1
	MonitorAddr
	MonitorData
	MonitorCmd

	NumPorts = 23

	// Disk commands and timing.
	diskCmdRead   = 1
	diskCmdWrite  = 2
	diskBusyLimit = 1024
)

// Hardware register names as they appear in the hwregtrace file.
var Names = [NumPorts]string{
	"irq0enable", "irq1enable", "irq2enable",
	"irq0status", "irq1status", "irq2status",
	"irqhandler", "irqreturn", "clks",
	"leds", "display7seg",
	"timerenable", "timercurrent", "timermax",
	"diskcmd", "disksector", "diskbuffer", "diskstatus",
	"reserved0", "reserved1",
	"monitoraddr", "monitordata", "monitorcmd",
}

// Tracer receives one record for every hardware register access.
type Tracer interface {
	HWReg(cycle uint32, action string, name string, value uint32)
}

// File holds the hardware register state and the devices it fronts.
type File struct {
	IRQEnable  [3]uint32 // Interrupt enable lines
	IRQStatus  [3]uint32 // Interrupt status lines
	IRQHandler uint32    // Interrupt entry point
	IRQReturn  uint32    // Resume address for reti

	Cycle uint32 // Cycle counter, read through clks

	Leds        uint32
	Display7Seg uint32

	TimerEnable  uint32
	TimerCurrent uint32
	TimerMax     uint32

	DiskCmd    uint32
	DiskSector uint32
	DiskBuffer uint32
	DiskStatus uint32
	diskBusy   uint32 // Cycles the current disk command has been running

	MonitorAddr uint32
	MonitorData uint32
	MonitorCmd  uint32

	Schedule []uint32 // Cycles at which the external line asserts
	schedIdx int

	data  *mem.Data
	disk  *mem.Disk
	frame *mem.Frame
	trace Tracer
}

// New builds a register file fronting the given data memory, disk and
// framebuffer.
func New(data *mem.Data, disk *mem.Disk, frame *mem.Frame) *File {
	return &File{data: data, disk: disk, frame: frame}
}

// Attach a hardware register tracer. A nil tracer disables tracing.
func (f *File) SetTracer(trace Tracer) {
	f.trace = trace
}

// Read a hardware register. Unknown addresses read zero and are not traced.
func (f *File) Read(addr uint32) uint32 {
	if addr >= NumPorts {
		return 0
	}
	var value uint32
	switch addr {
	case IRQ0Enable, IRQ1Enable, IRQ2Enable:
		value = f.IRQEnable[addr-IRQ0Enable]
	case IRQ0Status, IRQ1Status, IRQ2Status:
		value = f.IRQStatus[addr-IRQ0Status]
	case IRQHandler:
		value = f.IRQHandler
	case IRQReturn:
		value = f.IRQReturn
	case Clks:
		value = f.Cycle
	case Leds:
		value = f.Leds
	case Display7Seg:
		value = f.Display7Seg
	case TimerEnable:
		value = f.TimerEnable
	case TimerCurrent:
		value = f.TimerCurrent
	case TimerMax:
		value = f.TimerMax
	case DiskCmd:
		value = f.DiskCmd
	case DiskSector:
		value = f.DiskSector
	case DiskBuffer:
		value = f.DiskBuffer
	case DiskStatus:
		value = f.DiskStatus
	case MonitorAddr:
		value = f.MonitorAddr
	case MonitorData:
		value = f.MonitorData
	case MonitorCmd:
		value = f.MonitorCmd
	}
	if f.trace != nil {
		f.trace.HWReg(f.Cycle, "READ", Names[addr], value)
	}
	return value
}

// Write a hardware register. Unknown addresses are ignored and not traced;
// writes to clks and the reserved registers are traced but have no effect.
func (f *File) Write(addr, value uint32) {
	if addr >= NumPorts {
		return
	}
	if f.trace != nil {
		f.trace.HWReg(f.Cycle, "WRITE", Names[addr], value)
	}
	switch addr {
	case IRQ0Enable, IRQ1Enable, IRQ2Enable:
		f.IRQEnable[addr-IRQ0Enable] = value & 1
	case IRQ0Status, IRQ1Status, IRQ2Status:
		f.IRQStatus[addr-IRQ0Status] = value & 1
	case IRQHandler:
		f.IRQHandler = value
	case IRQReturn:
		f.IRQReturn = value
	case Leds:
		f.Leds = value
	case Display7Seg:
		f.Display7Seg = value
	case TimerEnable:
		f.TimerEnable = value & 1
	case TimerCurrent:
		f.TimerCurrent = value
	case TimerMax:
		f.TimerMax = value
	case DiskCmd:
		f.DiskCmd = value
		if value == diskCmdRead || value == diskCmdWrite {
			f.DiskStatus = 1
			f.diskBusy = 0
		}
	case DiskSector:
		f.DiskSector = value
	case DiskBuffer:
		f.DiskBuffer = value
	case DiskStatus:
		f.DiskStatus = value
	case MonitorAddr:
		f.MonitorAddr = value
	case MonitorData:
		f.MonitorData = value & 0xff
	case MonitorCmd:
		if value == 1 {
			f.frame.SetPixel(f.MonitorAddr, uint8(f.MonitorData))
		}
	}
}

// Tick advances the timer and the disk by one cycle.
func (f *File) Tick() {
	f.tickTimer()
	f.tickDisk()
}

func (f *File) tickTimer() {
	if f.TimerEnable == 0 {
		return
	}
	f.TimerCurrent++
	if f.TimerCurrent >= f.TimerMax {
		f.IRQStatus[0] = 1
		f.TimerCurrent = 0
	}
}

func (f *File) tickDisk() {
	if f.DiskStatus != 1 {
		return
	}
	f.diskBusy++
	if f.diskBusy < diskBusyLimit {
		return
	}
	base := f.DiskSector * mem.SectorSize
	switch f.DiskCmd {
	case diskCmdRead:
		for i := uint32(0); i < mem.SectorSize; i++ {
			var word uint32
			if base+i < mem.DiskSize {
				word = f.disk[base+i]
			}
			f.data.Set(f.DiskBuffer+i, word)
		}
	case diskCmdWrite:
		for i := uint32(0); i < mem.SectorSize; i++ {
			if base+i < mem.DiskSize {
				f.disk[base+i] = f.data.Get(f.DiskBuffer + i)
			}
		}
	}
	f.DiskStatus = 0
	f.DiskCmd = 0
	f.IRQStatus[1] = 1
	f.diskBusy = 0
}

// TickExternal asserts the external interrupt line when the current cycle
// is on the schedule.
func (f *File) TickExternal() {
	for f.schedIdx < len(f.Schedule) && f.Schedule[f.schedIdx] == f.Cycle {
		f.IRQStatus[2] = 1
		f.schedIdx++
	}
}

// Pending reports whether any enabled interrupt line is asserted.
func (f *File) Pending() bool {
	irq := (f.IRQEnable[0] & f.IRQStatus[0]) |
		(f.IRQEnable[1] & f.IRQStatus[1]) |
		(f.IRQEnable[2] & f.IRQStatus[2])
	return irq != 0
}

// LoadSchedule reads the external interrupt schedule, one decimal cycle
// number per line in ascending order.
func LoadSchedule(r io.Reader) ([]uint32, error) {
	scanner := bufio.NewScanner(r)
	var schedule []uint32
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cycle, err := strconv.ParseUint(line, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid cycle number %q", lineno, line)
		}
		schedule = append(schedule, uint32(cycle))
	}
	return schedule, scanner.Err()
}
