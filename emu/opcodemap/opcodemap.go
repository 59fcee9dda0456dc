/*
 * SIMP - Opcode definitions.
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

// Opcode numbers and mnemonics shared by the assembler, the CPU core
// and the disassembler.
package opcodemap

const (
	// Opcode definitions.
	OpADD  = 0x00 // rd = rs + rt + rm
	OpSUB  = 0x01 // rd = rs - rt - rm
	OpMAC  = 0x02 // rd = rs * rt + rm
	OpAND  = 0x03 // rd = rs & rt & rm
	OpOR   = 0x04 // rd = rs | rt | rm
	OpXOR  = 0x05 // rd = rs ^ rt ^ rm
	OpSLL  = 0x06 // rd = rs << rt
	OpSRA  = 0x07 // rd = rs >> rt, arithmetic
	OpSRL  = 0x08 // rd = rs >> rt, logical
	OpBEQ  = 0x09 // if rs == rt then pc = rm
	OpBNE  = 0x0A // if rs != rt then pc = rm
	OpBLT  = 0x0B // if rs < rt then pc = rm, signed
	OpBGT  = 0x0C // if rs > rt then pc = rm, signed
	OpBLE  = 0x0D // if rs <= rt then pc = rm, signed
	OpBGE  = 0x0E // if rs >= rt then pc = rm, signed
	OpJAL  = 0x0F // rd = pc + 1, pc = rm
	OpLW   = 0x10 // rd = dmem[rs + rt] + rm
	OpSW   = 0x11 // dmem[rs + rt] = rd + rm
	OpRETI = 0x12 // pc = irqreturn, leave interrupt
	OpIN   = 0x13 // rd = io[rs + rt]
	OpOUT  = 0x14 // io[rs + rt] = rm
	OpHALT = 0x15 // stop the processor

	NumOps = 0x16
)

// Mnemonics as written in assembly source, indexed by opcode.
var Names = [NumOps]string{
	"add", "sub", "mac", "and", "or", "xor", "sll", "sra",
	"srl", "beq", "bne", "blt", "bgt", "ble", "bge", "jal",
	"lw", "sw", "reti", "in", "out", "halt",
}

// Register names as written in assembly source, indexed by number.
var RegNames = [16]string{
	"$zero", "$imm1", "$imm2", "$v0",
	"$a0", "$a1", "$a2", "$t0",
	"$t1", "$t2", "$s0", "$s1",
	"$s2", "$gp", "$sp", "$ra",
}
