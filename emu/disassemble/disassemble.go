/*
 * SIMP - Instruction disassembler.
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

package disassemble

import (
	"strconv"
	"strings"

	cpu "github.com/AmitDamari/simp/emu/cpu"
	op "github.com/AmitDamari/simp/emu/opcodemap"
)

// Disassemble renders one 48 bit word back to assembly text. Words whose
// opcode is out of range render as a raw hex comment.
func Disassemble(word uint64) string {
	inst := cpu.Decode(word)
	if inst.Opcode >= op.NumOps {
		return "# " + strconv.FormatUint(word, 16)
	}

	var str strings.Builder
	str.WriteString(op.Names[inst.Opcode])
	str.WriteByte(' ')
	str.WriteString(op.RegNames[inst.Rd])
	str.WriteString(", ")
	str.WriteString(op.RegNames[inst.Rs])
	str.WriteString(", ")
	str.WriteString(op.RegNames[inst.Rt])
	str.WriteString(", ")
	str.WriteString(op.RegNames[inst.Rm])
	str.WriteString(", ")
	str.WriteString(strconv.FormatInt(int64(int32(inst.Imm1)), 10))
	str.WriteString(", ")
	str.WriteString(strconv.FormatInt(int64(int32(inst.Imm2)), 10))
	return str.String()
}
