/*
 * SIMP - CPU core tests.
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
	"testing"

	iosystem "github.com/AmitDamari/simp/emu/iosystem"
	mem "github.com/AmitDamari/simp/emu/memory"
	op "github.com/AmitDamari/simp/emu/opcodemap"
)

func testCore() *Core {
	var imem mem.Instr
	var data mem.Data
	var disk mem.Disk
	var frame mem.Frame
	return New(&imem, &data, iosystem.New(&data, &disk, &frame))
}

// Build an instruction without going through the assembler.
func inst(opcode, rd, rs, rt, rm, imm1, imm2 uint32) Instruction {
	return Instruction{
		Opcode: opcode, Rd: rd, Rs: rs, Rt: rt, Rm: rm,
		Imm1: imm1, Imm2: imm2,
	}
}

func TestDecode(t *testing.T) {
	decoded := Decode(0x007100005000)
	if decoded.Opcode != op.OpADD || decoded.Rd != 7 || decoded.Rs != 1 {
		t.Errorf("decode: got %+v", decoded)
	}
	if decoded.Imm1 != 5 || decoded.Imm2 != 0 {
		t.Errorf("decode immediates: got %+v", decoded)
	}

	// Bit 11 of each immediate propagates to bit 31.
	decoded = Decode(0x000000800800)
	if decoded.Imm1 != 0xfffff800 {
		t.Errorf("imm1 %08X, want FFFFF800", decoded.Imm1)
	}
	if decoded.Imm2 != 0xfffff800 {
		t.Errorf("imm2 %08X, want FFFFF800", decoded.Imm2)
	}
}

func TestSetImmediates(t *testing.T) {
	core := testCore()
	core.SetImmediates(inst(op.OpADD, 0, 0, 0, 0, 0xfffffffb, 7))
	if core.Regs[1] != 0xfffffffb || core.Regs[2] != 7 {
		t.Errorf("R1=%08X R2=%08X", core.Regs[1], core.Regs[2])
	}
}

func TestArithmetic(t *testing.T) {
	core := testCore()
	core.Regs[4] = 10
	core.Regs[5] = 20
	core.Regs[6] = 30

	core.Execute(inst(op.OpADD, 3, 4, 5, 6, 0, 0))
	if core.Regs[3] != 60 {
		t.Errorf("add: R3=%d, want 60", core.Regs[3])
	}

	core.Execute(inst(op.OpSUB, 3, 4, 5, 6, 0, 0))
	if core.Regs[3] != 0xffffffd8 { // 10-20-30 = -40
		t.Errorf("sub: R3=%08X, want FFFFFFD8", core.Regs[3])
	}

	core.Execute(inst(op.OpMAC, 3, 4, 5, 6, 0, 0))
	if core.Regs[3] != 230 {
		t.Errorf("mac: R3=%d, want 230", core.Regs[3])
	}

	// 32 bit wrap.
	core.Regs[4] = 0xffffffff
	core.Regs[5] = 2
	core.Regs[6] = 0
	core.Execute(inst(op.OpADD, 3, 4, 5, 6, 0, 0))
	if core.Regs[3] != 1 {
		t.Errorf("add wrap: R3=%08X, want 00000001", core.Regs[3])
	}
}

func TestLogical(t *testing.T) {
	core := testCore()
	core.Regs[4] = 0xff00ff00
	core.Regs[5] = 0x0ff00ff0
	core.Regs[6] = 0xffffffff

	core.Execute(inst(op.OpAND, 3, 4, 5, 6, 0, 0))
	if core.Regs[3] != 0x0f000f00 {
		t.Errorf("and: R3=%08X", core.Regs[3])
	}
	core.Execute(inst(op.OpOR, 3, 4, 5, 0, 0, 0))
	if core.Regs[3] != 0xfff0fff0 {
		t.Errorf("or: R3=%08X", core.Regs[3])
	}
	core.Execute(inst(op.OpXOR, 3, 4, 5, 0, 0, 0))
	if core.Regs[3] != 0xf0f0f0f0 {
		t.Errorf("xor: R3=%08X", core.Regs[3])
	}
}

func TestShifts(t *testing.T) {
	core := testCore()
	core.Regs[4] = 0x80000001
	core.Regs[5] = 4

	core.Execute(inst(op.OpSLL, 3, 4, 5, 0, 0, 0))
	if core.Regs[3] != 0x00000010 {
		t.Errorf("sll: R3=%08X", core.Regs[3])
	}
	core.Execute(inst(op.OpSRL, 3, 4, 5, 0, 0, 0))
	if core.Regs[3] != 0x08000000 {
		t.Errorf("srl: R3=%08X", core.Regs[3])
	}
	core.Execute(inst(op.OpSRA, 3, 4, 5, 0, 0, 0))
	if core.Regs[3] != 0xf8000000 {
		t.Errorf("sra: R3=%08X", core.Regs[3])
	}

	// Only the low 5 bits of the shift count are used.
	core.Regs[5] = 36
	core.Execute(inst(op.OpSLL, 3, 4, 5, 0, 0, 0))
	if core.Regs[3] != 0x00000010 {
		t.Errorf("sll by 36: R3=%08X, want 00000010", core.Regs[3])
	}
}

func TestBranches(t *testing.T) {
	core := testCore()
	core.Regs[4] = 0xffffffff // -1 signed
	core.Regs[5] = 1
	core.Regs[7] = 0x020

	core.PC = 4
	core.Execute(inst(op.OpBLT, 0, 4, 5, 7, 0, 0))
	if core.PC != 0x020 {
		t.Errorf("blt taken: PC=%03X, want 020", core.PC)
	}

	core.PC = 4
	core.Execute(inst(op.OpBGT, 0, 4, 5, 7, 0, 0))
	if core.PC != 5 {
		t.Errorf("bgt not taken: PC=%03X, want 005", core.PC)
	}

	core.PC = 4
	core.Execute(inst(op.OpBEQ, 0, 4, 4, 7, 0, 0))
	if core.PC != 0x020 {
		t.Errorf("beq taken: PC=%03X, want 020", core.PC)
	}

	core.PC = 4
	core.Execute(inst(op.OpBNE, 0, 4, 4, 7, 0, 0))
	if core.PC != 5 {
		t.Errorf("bne not taken: PC=%03X, want 005", core.PC)
	}

	core.PC = 4
	core.Execute(inst(op.OpBGE, 0, 5, 5, 7, 0, 0))
	if core.PC != 0x020 {
		t.Errorf("bge equal: PC=%03X, want 020", core.PC)
	}

	core.PC = 4
	core.Execute(inst(op.OpBLE, 0, 4, 5, 7, 0, 0))
	if core.PC != 0x020 {
		t.Errorf("ble signed: PC=%03X, want 020", core.PC)
	}
}

func TestJal(t *testing.T) {
	core := testCore()
	core.PC = 7
	core.Regs[10] = 0x050
	core.Execute(inst(op.OpJAL, 15, 0, 0, 10, 0, 0))
	if core.Regs[15] != 8 {
		t.Errorf("jal: R15=%d, want 8", core.Regs[15])
	}
	if core.PC != 0x050 {
		t.Errorf("jal: PC=%03X, want 050", core.PC)
	}
}

func TestLoadStore(t *testing.T) {
	core := testCore()
	core.data.Set(100, 0xdead)
	core.Regs[5] = 100
	core.Regs[6] = 2

	core.Execute(inst(op.OpLW, 3, 0, 5, 6, 0, 0))
	if core.Regs[3] != 0xdead+2 {
		t.Errorf("lw: R3=%08X", core.Regs[3])
	}

	core.Regs[3] = 0x1234
	core.Execute(inst(op.OpSW, 3, 0, 5, 6, 0, 0))
	if core.data.Get(100) != 0x1234+2 {
		t.Errorf("sw: dmem[100]=%08X", core.data.Get(100))
	}

	// Addresses past data memory are ignored without faulting.
	core.Regs[5] = 5000
	core.Regs[3] = 77
	core.Execute(inst(op.OpLW, 3, 0, 5, 0, 0, 0))
	if core.Regs[3] != 77 {
		t.Errorf("lw out of range modified R3: %d", core.Regs[3])
	}
	core.Execute(inst(op.OpSW, 3, 0, 5, 0, 0, 0))
}

func TestZeroRegister(t *testing.T) {
	core := testCore()
	core.Regs[4] = 42
	core.Execute(inst(op.OpADD, 0, 4, 0, 0, 0, 0))
	if core.Regs[0] != 0 {
		t.Errorf("write to R0 was kept: %d", core.Regs[0])
	}
}

func TestHalt(t *testing.T) {
	core := testCore()
	core.PC = 9
	core.Execute(inst(op.OpHALT, 0, 0, 0, 0, 0, 0))
	if !core.Halted {
		t.Error("halt did not stop the core")
	}
	if core.PC != 9 {
		t.Errorf("halt advanced PC to %d", core.PC)
	}
}

func TestInterruptEntryAndReti(t *testing.T) {
	core := testCore()
	core.io.IRQHandler = 0x030
	core.io.IRQEnable[0] = 1
	core.io.IRQStatus[0] = 1
	core.PC = 5

	core.PollInterrupt()
	if core.PC != 0x030 || !core.InInterrupt {
		t.Fatalf("interrupt entry: PC=%03X in=%v", core.PC, core.InInterrupt)
	}
	if core.io.IRQReturn != 5 {
		t.Errorf("irqreturn=%d, want 5", core.io.IRQReturn)
	}

	// A pending line cannot preempt a handler before reti.
	core.PollInterrupt()
	if core.io.IRQReturn != 5 {
		t.Error("handler was preempted")
	}

	core.Execute(inst(op.OpRETI, 0, 0, 0, 0, 0, 0))
	if core.PC != 5 || core.InInterrupt {
		t.Errorf("reti: PC=%03X in=%v", core.PC, core.InInterrupt)
	}
}

func TestInOut(t *testing.T) {
	core := testCore()
	core.Regs[4] = 9 // leds
	core.Regs[5] = 0xff

	core.Execute(inst(op.OpOUT, 0, 4, 0, 5, 0, 0))
	if core.io.Leds != 0xff {
		t.Errorf("out: leds=%08X", core.io.Leds)
	}

	core.Execute(inst(op.OpIN, 3, 4, 0, 0, 0, 0))
	if core.Regs[3] != 0xff {
		t.Errorf("in: R3=%08X", core.Regs[3])
	}
}

func TestUnknownOpcodeIsNop(t *testing.T) {
	core := testCore()
	core.PC = 3
	core.Execute(inst(0xff, 3, 4, 5, 6, 0, 0))
	if core.PC != 4 {
		t.Errorf("unknown opcode: PC=%d, want 4", core.PC)
	}
}
