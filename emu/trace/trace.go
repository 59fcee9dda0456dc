/*
 * SIMP - Trace and log writers.
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

// Writers for the per cycle instruction trace, the hardware register
// trace, the change only LED and seven segment logs and the register dump.
package trace

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	hex "github.com/AmitDamari/simp/util/hex"
)

// Tracer formats the simulator's trace artifacts. All lines are written
// through buffered writers; call Flush before reading the results.
type Tracer struct {
	inst    *bufio.Writer
	hw      *bufio.Writer
	leds    *bufio.Writer
	display *bufio.Writer

	prevLeds    uint32
	prevDisplay uint32

	err error
}

// New builds a tracer over the four trace outputs.
func New(inst, hw, leds, display io.Writer) *Tracer {
	return &Tracer{
		inst:    bufio.NewWriter(inst),
		hw:      bufio.NewWriter(hw),
		leds:    bufio.NewWriter(leds),
		display: bufio.NewWriter(display),
	}
}

func (t *Tracer) write(out *bufio.Writer, line string) {
	if t.err != nil {
		return
	}
	_, t.err = out.WriteString(line)
}

// Instruction writes one trace line: the PC about to execute, the raw
// instruction word and all 16 registers, with R1/R2 already holding the
// instruction's immediates.
func (t *Tracer) Instruction(pc uint32, word uint64, regs *[16]uint32) {
	var str strings.Builder
	hex.FormatPC(&str, pc)
	str.WriteByte(' ')
	hex.FormatInst(&str, word)
	for _, reg := range regs {
		str.WriteByte(' ')
		hex.FormatWord(&str, reg)
	}
	str.WriteByte('\n')
	t.write(t.inst, str.String())
}

// HWReg writes one hardware register trace line. Implements the
// iosystem tracer interface.
func (t *Tracer) HWReg(cycle uint32, action string, name string, value uint32) {
	var str strings.Builder
	str.WriteString(strconv.FormatUint(uint64(cycle), 10))
	str.WriteByte(' ')
	str.WriteString(action)
	str.WriteByte(' ')
	str.WriteString(name)
	str.WriteByte(' ')
	hex.FormatWord(&str, value)
	str.WriteByte('\n')
	t.write(t.hw, str.String())
}

// UpdateLeds logs the LED register, only on the cycle its value changes.
func (t *Tracer) UpdateLeds(cycle, value uint32) {
	if value == t.prevLeds {
		return
	}
	t.prevLeds = value
	t.write(t.leds, changeLine(cycle, value))
}

// UpdateDisplay logs the seven segment register, only on the cycle its
// value changes.
func (t *Tracer) UpdateDisplay(cycle, value uint32) {
	if value == t.prevDisplay {
		return
	}
	t.prevDisplay = value
	t.write(t.display, changeLine(cycle, value))
}

func changeLine(cycle, value uint32) string {
	var str strings.Builder
	str.WriteString(strconv.FormatUint(uint64(cycle), 10))
	str.WriteByte(' ')
	hex.FormatWord(&str, value)
	str.WriteByte('\n')
	return str.String()
}

// Flush drains all buffers and reports the first write error seen.
func (t *Tracer) Flush() error {
	for _, out := range []*bufio.Writer{t.inst, t.hw, t.leds, t.display} {
		if err := out.Flush(); err != nil && t.err == nil {
			t.err = err
		}
	}
	return t.err
}

// WriteRegisters dumps registers R3 through R15, one 8 digit hex value
// per line.
func WriteRegisters(w io.Writer, regs *[16]uint32) error {
	var str strings.Builder
	for _, reg := range regs[3:] {
		hex.FormatWord(&str, reg)
		str.WriteByte('\n')
	}
	_, err := io.WriteString(w, str.String())
	return err
}
