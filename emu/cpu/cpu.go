/*
 * SIMP - CPU core.
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

package cpu

import (
	io "github.com/AmitDamari/simp/emu/iosystem"
	mem "github.com/AmitDamari/simp/emu/memory"
	op "github.com/AmitDamari/simp/emu/opcodemap"
)

// Core holds the register file and control state of one SIMP processor.
type Core struct {
	Regs        [16]uint32 // Register file, slot 0 wired to zero
	PC          uint32     // Program counter
	Halted      bool       // Set by halt, never cleared
	InInterrupt bool       // Set on interrupt entry, cleared by reti

	imem *mem.Instr
	data *mem.Data
	io   *io.File
}

// New builds a core attached to its instruction memory, data memory and
// hardware register file. All state starts at zero.
func New(imem *mem.Instr, data *mem.Data, ioregs *io.File) *Core {
	return &Core{imem: imem, data: data, io: ioregs}
}

// Fetch reads the instruction word the PC points at.
func (c *Core) Fetch() uint64 {
	return c.imem.Get(c.PC)
}

// SetImmediates loads the instruction's immediates into register slots 1
// and 2. This happens once per instruction, before the trace line is
// written and before the executor reads any operand.
func (c *Core) SetImmediates(inst Instruction) {
	c.Regs[regImm1] = inst.Imm1
	c.Regs[regImm2] = inst.Imm2
}

// PollInterrupt enters the interrupt handler when an enabled line is
// asserted and the core is not already in a handler. The PC about to
// execute is saved so reti can resume it.
func (c *Core) PollInterrupt() {
	if c.InInterrupt {
		return
	}
	if c.io.Pending() {
		c.io.IRQReturn = c.PC
		c.PC = c.io.IRQHandler
		c.InInterrupt = true
	}
}

// Execute runs one decoded instruction. All arithmetic wraps at 32 bits,
// shift counts use the low 5 bits, and data addresses outside memory are
// ignored without faulting.
func (c *Core) Execute(inst Instruction) {
	regs := &c.Regs
	pcModified := false

	switch inst.Opcode {
	case op.OpADD:
		regs[inst.Rd] = regs[inst.Rs] + regs[inst.Rt] + regs[inst.Rm]

	case op.OpSUB:
		regs[inst.Rd] = regs[inst.Rs] - regs[inst.Rt] - regs[inst.Rm]

	case op.OpMAC:
		regs[inst.Rd] = regs[inst.Rs]*regs[inst.Rt] + regs[inst.Rm]

	case op.OpAND:
		regs[inst.Rd] = regs[inst.Rs] & regs[inst.Rt] & regs[inst.Rm]

	case op.OpOR:
		regs[inst.Rd] = regs[inst.Rs] | regs[inst.Rt] | regs[inst.Rm]

	case op.OpXOR:
		regs[inst.Rd] = regs[inst.Rs] ^ regs[inst.Rt] ^ regs[inst.Rm]

	case op.OpSLL:
		regs[inst.Rd] = regs[inst.Rs] << (regs[inst.Rt] & 0x1f)

	case op.OpSRA:
		regs[inst.Rd] = uint32(int32(regs[inst.Rs]) >> (regs[inst.Rt] & 0x1f))

	case op.OpSRL:
		regs[inst.Rd] = regs[inst.Rs] >> (regs[inst.Rt] & 0x1f)

	case op.OpBEQ:
		if regs[inst.Rs] == regs[inst.Rt] {
			c.PC = regs[inst.Rm]
			pcModified = true
		}

	case op.OpBNE:
		if regs[inst.Rs] != regs[inst.Rt] {
			c.PC = regs[inst.Rm]
			pcModified = true
		}

	case op.OpBLT:
		if int32(regs[inst.Rs]) < int32(regs[inst.Rt]) {
			c.PC = regs[inst.Rm]
			pcModified = true
		}

	case op.OpBGT:
		if int32(regs[inst.Rs]) > int32(regs[inst.Rt]) {
			c.PC = regs[inst.Rm]
			pcModified = true
		}

	case op.OpBLE:
		if int32(regs[inst.Rs]) <= int32(regs[inst.Rt]) {
			c.PC = regs[inst.Rm]
			pcModified = true
		}

	case op.OpBGE:
		if int32(regs[inst.Rs]) >= int32(regs[inst.Rt]) {
			c.PC = regs[inst.Rm]
			pcModified = true
		}

	case op.OpJAL:
		regs[inst.Rd] = c.PC + 1
		c.PC = regs[inst.Rm]
		pcModified = true

	case op.OpLW:
		addr := regs[inst.Rs] + regs[inst.Rt]
		if addr < mem.DataSize {
			regs[inst.Rd] = c.data.Get(addr) + regs[inst.Rm]
		}

	case op.OpSW:
		addr := regs[inst.Rs] + regs[inst.Rt]
		if addr < mem.DataSize {
			c.data.Set(addr, regs[inst.Rd]+regs[inst.Rm])
		}

	case op.OpRETI:
		c.PC = c.io.IRQReturn
		c.InInterrupt = false
		pcModified = true

	case op.OpIN:
		regs[inst.Rd] = c.io.Read(regs[inst.Rs] + regs[inst.Rt])

	case op.OpOUT:
		c.io.Write(regs[inst.Rs]+regs[inst.Rt], regs[inst.Rm])

	case op.OpHALT:
		c.Halted = true

	default:
		// Unknown opcodes execute as a no-op.
	}

	regs[regZero] = 0

	if !pcModified && !c.Halted {
		c.PC++
	}
}
