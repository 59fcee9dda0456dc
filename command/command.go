/*
 * SIMP - Debug console commands.
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

// Interactive debug console for the simulator. Commands drive the same
// cycle loop as a batch run, so a run started here still produces the
// normal artifacts.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	dis "github.com/AmitDamari/simp/emu/disassemble"
	iosystem "github.com/AmitDamari/simp/emu/iosystem"
	machine "github.com/AmitDamari/simp/emu/machine"
	mem "github.com/AmitDamari/simp/emu/memory"
	op "github.com/AmitDamari/simp/emu/opcodemap"
)

type command struct {
	name string
	args string
	help string
	run  func(m *machine.Machine, args []string) error
}

var commands = []command{
	{"step", "[n]", "execute n cycles (default 1)", cmdStep},
	{"run", "", "execute until halt", cmdRun},
	{"regs", "", "show the register file", cmdRegs},
	{"io", "", "show the hardware registers", cmdIO},
	{"mem", "<addr> [n]", "show data memory words", cmdMem},
	{"disasm", "[addr [n]]", "disassemble instruction memory", cmdDisasm},
	{"help", "", "show this list", cmdHelp},
	{"quit", "", "leave the console", nil},
}

// ProcessCommand runs one console command line. The quit result is true
// when the console should close.
func ProcessCommand(text string, m *machine.Machine) (bool, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false, nil
	}

	name := strings.ToLower(fields[0])
	if name == "quit" || name == "exit" {
		return true, nil
	}
	for _, cmd := range commands {
		if cmd.name == name {
			return false, cmd.run(m, fields[1:])
		}
	}
	return false, errors.New("unknown command " + name)
}

// CompleteCmd returns the command names starting with the given prefix.
func CompleteCmd(prefix string) []string {
	var matches []string
	for _, cmd := range commands {
		if strings.HasPrefix(cmd.name, strings.ToLower(prefix)) {
			matches = append(matches, cmd.name)
		}
	}
	return matches
}

func parseValue(text string, limit uint64) (uint32, error) {
	value, err := strconv.ParseUint(text, 0, 32)
	if err != nil || uint64(value) >= limit {
		return 0, errors.New("bad value " + text)
	}
	return uint32(value), nil
}

func showNext(m *machine.Machine) {
	fmt.Printf("cycle %d pc %03X  %s\n",
		m.IO.Cycle, m.Core.PC, dis.Disassemble(m.Core.Fetch()))
}

func cmdStep(m *machine.Machine, args []string) error {
	count := uint32(1)
	if len(args) > 0 {
		n, err := parseValue(args[0], 1<<32)
		if err != nil {
			return err
		}
		count = n
	}
	for range count {
		if m.Core.Halted {
			fmt.Println("machine is halted")
			return nil
		}
		m.Step()
	}
	showNext(m)
	return nil
}

func cmdRun(m *machine.Machine, _ []string) error {
	if m.Core.Halted {
		fmt.Println("machine is halted")
		return nil
	}
	m.Run()
	fmt.Printf("halted after %d cycles\n", m.IO.Cycle)
	return nil
}

func cmdRegs(m *machine.Machine, _ []string) error {
	for num, name := range op.RegNames {
		fmt.Printf("%-5s %08X", name, m.Core.Regs[num])
		if num%4 == 3 {
			fmt.Println()
		} else {
			fmt.Print("  ")
		}
	}
	fmt.Printf("pc    %03X", m.Core.PC)
	if m.Core.InInterrupt {
		fmt.Print("  (in interrupt)")
	}
	fmt.Println()
	return nil
}

func cmdIO(m *machine.Machine, _ []string) error {
	values := []uint32{
		m.IO.IRQEnable[0], m.IO.IRQEnable[1], m.IO.IRQEnable[2],
		m.IO.IRQStatus[0], m.IO.IRQStatus[1], m.IO.IRQStatus[2],
		m.IO.IRQHandler, m.IO.IRQReturn, m.IO.Cycle,
		m.IO.Leds, m.IO.Display7Seg,
		m.IO.TimerEnable, m.IO.TimerCurrent, m.IO.TimerMax,
		m.IO.DiskCmd, m.IO.DiskSector, m.IO.DiskBuffer, m.IO.DiskStatus,
		0, 0,
		m.IO.MonitorAddr, m.IO.MonitorData, m.IO.MonitorCmd,
	}
	for port, value := range values {
		fmt.Printf("%-12s %08X\n", iosystem.Names[port], value)
	}
	return nil
}

func cmdMem(m *machine.Machine, args []string) error {
	if len(args) == 0 {
		return errors.New("mem needs an address")
	}
	addr, err := parseValue(args[0], mem.DataSize)
	if err != nil {
		return err
	}
	count := uint32(8)
	if len(args) > 1 {
		if count, err = parseValue(args[1], mem.DataSize); err != nil {
			return err
		}
	}
	for i := addr; i < addr+count && i < mem.DataSize; i++ {
		fmt.Printf("%03X: %08X\n", i, m.Data.Get(i))
	}
	return nil
}

func cmdDisasm(m *machine.Machine, args []string) error {
	addr := m.Core.PC
	var err error
	if len(args) > 0 {
		if addr, err = parseValue(args[0], mem.InstrSize); err != nil {
			return err
		}
	}
	count := uint32(8)
	if len(args) > 1 {
		if count, err = parseValue(args[1], mem.InstrSize); err != nil {
			return err
		}
	}
	for i := addr; i < addr+count && i < mem.InstrSize; i++ {
		fmt.Printf("%03X: %s\n", i, dis.Disassemble(m.IMem.Get(i)))
	}
	return nil
}

func cmdHelp(_ *machine.Machine, _ []string) error {
	for _, cmd := range commands {
		fmt.Printf("%-8s %-12s %s\n", cmd.name, cmd.args, cmd.help)
	}
	return nil
}
