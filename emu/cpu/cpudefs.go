/*
 * SIMP - CPU definitions and instruction decoder.
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

/*
   The SIMP instruction word is 48 bits wide, MSB first:

      +--------+----+----+----+----+------------+------------+
      | opcode | rd | rs | rt | rm |    imm1    |    imm2    |
      +--------+----+----+----+----+------------+------------+
        47..40   39   35   31   27    23..12        11..0

   Register slot 0 is wired to zero. Slots 1 and 2 are loaded with the
   sign extended imm1/imm2 of every instruction before it executes, so
   source code can name an immediate as a register operand.
*/

const (
	regZero = 0 // Wired to zero
	regImm1 = 1 // Holds imm1 of the current instruction
	regImm2 = 2 // Holds imm2 of the current instruction
)

// One decoded instruction.
type Instruction struct {
	Opcode uint32
	Rd     uint32
	Rs     uint32
	Rt     uint32
	Rm     uint32
	Imm1   uint32 // Sign extended to 32 bits
	Imm2   uint32 // Sign extended to 32 bits
}

// Decode splits a 48 bit word into its seven fields. The immediates are
// sign extended here so the executor never special cases them.
func Decode(word uint64) Instruction {
	return Instruction{
		Opcode: uint32(word>>40) & 0xff,
		Rd:     uint32(word>>36) & 0xf,
		Rs:     uint32(word>>32) & 0xf,
		Rt:     uint32(word>>28) & 0xf,
		Rm:     uint32(word>>24) & 0xf,
		Imm1:   signExtend12(uint32(word>>12) & 0xfff),
		Imm2:   signExtend12(uint32(word) & 0xfff),
	}
}

func signExtend12(value uint32) uint32 {
	if value&0x800 != 0 {
		value |= 0xfffff000
	}
	return value
}
