/*
 * SIMP - Two pass assembler.
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

// Two pass assembler for SIMP assembly source.
//
// Pass one collects label addresses. A .word line never occupies program
// counter space, a label records the address of the next instruction, and
// a logical instruction always occupies exactly one address. Pass two
// encodes each instruction into its 48 bit word and collects .word
// directives into the initial data image.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	op "github.com/AmitDamari/simp/emu/opcodemap"
	hex "github.com/AmitDamari/simp/util/hex"
)

const (
	maxLabelLength = 49
	dataSize       = 4096

	// The data image always covers at least addresses 0..minDataImage.
	minDataImage = 64
)

// Symbol table built by pass one, label name to instruction address.
type SymbolTable map[string]uint32

// Program is the result of a completed assembly.
type Program struct {
	Code    []uint64 // Encoded instructions in source order
	Data    [dataSize]uint32
	maxData int
}

var opcodes = func() map[string]uint32 {
	m := make(map[string]uint32, op.NumOps)
	for num, name := range op.Names {
		m[name] = uint32(num)
	}
	return m
}()

var registers = func() map[string]uint32 {
	m := make(map[string]uint32, 16)
	for num, name := range op.RegNames {
		m[name] = uint32(num)
	}
	return m
}()

// Assemble runs both passes over the source and returns the encoded
// program.
func Assemble(src string) (*Program, error) {
	symbols, err := FirstPass(src)
	if err != nil {
		return nil, err
	}
	return SecondPass(src, symbols)
}

// Strip the comment and surrounding whitespace from one source line.
func stripLine(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func validLabel(name string) bool {
	if name == "" || len(name) > maxLabelLength {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// FirstPass walks the source and records the address of every label.
// Duplicate labels are rejected.
func FirstPass(src string) (SymbolTable, error) {
	symbols := make(SymbolTable)
	pc := uint32(0)
	lineno := 0

	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		lineno++
		line := stripLine(scanner.Text())
		if line == "" {
			continue
		}

		// .word targets data memory by absolute address and never
		// advances the program counter.
		if strings.Contains(line, ".word") {
			continue
		}

		if colon := strings.IndexByte(line, ':'); colon >= 0 {
			label := strings.TrimSpace(line[:colon])
			if !validLabel(label) {
				return nil, fmt.Errorf("line %d: invalid label %q", lineno, label)
			}
			if _, ok := symbols[label]; ok {
				return nil, fmt.Errorf("line %d: duplicate label %q", lineno, label)
			}
			symbols[label] = pc

			line = strings.TrimSpace(line[colon+1:])
			if line == "" {
				continue
			}
		}

		pc++
	}
	return symbols, scanner.Err()
}

// SecondPass encodes every instruction and collects the data image.
func SecondPass(src string, symbols SymbolTable) (*Program, error) {
	prog := &Program{maxData: minDataImage}
	lineno := 0

	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		lineno++
		line := stripLine(scanner.Text())
		if line == "" {
			continue
		}

		if strings.Contains(line, ".word") {
			if err := prog.word(line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			continue
		}

		if colon := strings.IndexByte(line, ':'); colon >= 0 {
			line = strings.TrimSpace(line[colon+1:])
			if line == "" {
				continue
			}
		}

		word, err := encode(line, symbols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		prog.Code = append(prog.Code, word)
	}
	return prog, scanner.Err()
}

// Process a .word ADDR VAL directive.
func (prog *Program) word(line string) error {
	fields := strings.Fields(line)
	start := -1
	for i, field := range fields {
		if field == ".word" {
			start = i
			break
		}
	}
	if start < 0 || len(fields) < start+3 {
		return fmt.Errorf("malformed .word directive %q", line)
	}

	addr, err := parseNumber(fields[start+1])
	if err != nil {
		return fmt.Errorf("bad .word address %q", fields[start+1])
	}
	value, err := parseNumber(fields[start+2])
	if err != nil {
		return fmt.Errorf("bad .word value %q", fields[start+2])
	}
	if addr < 0 || addr >= dataSize {
		return fmt.Errorf(".word address %d out of range", addr)
	}

	prog.Data[addr] = uint32(value)
	if int(addr) > prog.maxData {
		prog.maxData = int(addr)
	}
	return nil
}

func parseNumber(token string) (int64, error) {
	return strconv.ParseInt(token, 0, 64)
}

// Look up a register operand, either a named register or $N.
func regNumber(token string) (uint32, error) {
	if num, ok := registers[token]; ok {
		return num, nil
	}
	if strings.HasPrefix(token, "$") {
		if num, err := strconv.ParseUint(token[1:], 10, 8); err == nil && num < 16 {
			return uint32(num), nil
		}
	}
	return 0, fmt.Errorf("unknown register %q", token)
}

// Resolve an immediate operand: a register number, a numeric literal in
// 12 bit two's complement, or a label address.
func immValue(token string, symbols SymbolTable) (uint32, error) {
	if strings.HasPrefix(token, "$") {
		return regNumber(token)
	}
	if value, err := parseNumber(token); err == nil {
		return uint32(value) & 0xfff, nil
	}
	addr, ok := symbols[token]
	if !ok {
		return 0, fmt.Errorf("undefined label %q", token)
	}
	return addr & 0xfff, nil
}

// Encode one instruction line into its 48 bit word. Missing trailing
// operands default to $zero and 0.
func encode(line string, symbols SymbolTable) (uint64, error) {
	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	operands := [6]string{"$zero", "$zero", "$zero", "$zero", "0", "0"}
	for i, token := range tokens[1:] {
		if i >= len(operands) {
			break
		}
		operands[i] = token
	}

	opcode, ok := opcodes[tokens[0]]
	if !ok {
		return 0, fmt.Errorf("unknown opcode %q", tokens[0])
	}

	var regs [4]uint32
	for i, token := range operands[:4] {
		num, err := regNumber(token)
		if err != nil {
			return 0, err
		}
		regs[i] = num
	}

	imm1, err := immValue(operands[4], symbols)
	if err != nil {
		return 0, err
	}
	imm2, err := immValue(operands[5], symbols)
	if err != nil {
		return 0, err
	}

	word := uint64(opcode) << 40
	word |= uint64(regs[0]) << 36
	word |= uint64(regs[1]) << 32
	word |= uint64(regs[2]) << 28
	word |= uint64(regs[3]) << 24
	word |= uint64(imm1) << 12
	word |= uint64(imm2)
	return word, nil
}

// WriteInst emits the instruction image, 12 hex digits per line.
func (prog *Program) WriteInst(w io.Writer) error {
	out := bufio.NewWriter(w)
	var str strings.Builder
	for _, word := range prog.Code {
		str.Reset()
		hex.FormatInst(&str, word)
		str.WriteByte('\n')
		if _, err := out.WriteString(str.String()); err != nil {
			return err
		}
	}
	return out.Flush()
}

// WriteData emits the data image from address 0 through the highest
// written address or minDataImage, whichever is higher, 8 hex digits per
// line.
func (prog *Program) WriteData(w io.Writer) error {
	out := bufio.NewWriter(w)
	var str strings.Builder
	for _, word := range prog.Data[:prog.maxData+1] {
		str.Reset()
		hex.FormatWord(&str, word)
		str.WriteByte('\n')
		if _, err := out.WriteString(str.String()); err != nil {
			return err
		}
	}
	return out.Flush()
}
