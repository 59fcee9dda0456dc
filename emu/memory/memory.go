/*
 * SIMP - Memories and framebuffer.
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

package memory

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	hex "github.com/AmitDamari/simp/util/hex"
)

const (
	InstrSize   = 4096  // Words of instruction memory
	DataSize    = 4096  // Words of data memory
	DiskSize    = 16384 // Words on disk
	SectorSize  = 128   // Words per disk sector
	NumSectors  = 128   // Sectors on disk
	MonitorSize = 256   // Framebuffer width and height in pixels

	InstMask uint64 = 0xffffffffffff // 48 bit instruction word
)

// Instruction memory, one 48 bit word per slot.
type Instr [InstrSize]uint64

// Data memory, one 32 bit word per slot.
type Data [DataSize]uint32

// Disk storage, viewed as NumSectors sectors of SectorSize words.
type Disk [DiskSize]uint32

// Monitor framebuffer, one grayscale byte per pixel, row major.
type Frame [MonitorSize * MonitorSize]uint8

// Read hex records one per line, blank lines skipped. Slots past the last
// record keep their zero value, records past the end are ignored.
func loadHex(r io.Reader, store func(addr int, value uint64), size int) error {
	scanner := bufio.NewScanner(r)
	addr := 0
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if addr >= size {
			break
		}
		value, err := strconv.ParseUint(line, 16, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid hex record %q", lineno, line)
		}
		store(addr, value)
		addr++
	}
	return scanner.Err()
}

// Load instruction memory from a hex image, 12 digits per line.
func (m *Instr) Load(r io.Reader) error {
	return loadHex(r, func(addr int, value uint64) {
		m[addr] = value & InstMask
	}, InstrSize)
}

// Fetch an instruction word. Addresses outside memory fetch zero.
func (m *Instr) Get(addr uint32) uint64 {
	if addr >= InstrSize {
		return 0
	}
	return m[addr]
}

// Load data memory from a hex image, 8 digits per line.
func (m *Data) Load(r io.Reader) error {
	return loadHex(r, func(addr int, value uint64) {
		m[addr] = uint32(value)
	}, DataSize)
}

// Get a word from data memory. Addresses outside memory read zero.
func (m *Data) Get(addr uint32) uint32 {
	if addr >= DataSize {
		return 0
	}
	return m[addr]
}

// Put a word to data memory. Addresses outside memory are ignored.
func (m *Data) Set(addr, value uint32) {
	if addr < DataSize {
		m[addr] = value
	}
}

// Write the whole data memory as 8 digit hex records.
func (m *Data) Dump(w io.Writer) error {
	return dumpWords(w, m[:])
}

// Load the disk from a hex image, 8 digits per line.
func (d *Disk) Load(r io.Reader) error {
	return loadHex(r, func(addr int, value uint64) {
		d[addr] = uint32(value)
	}, DiskSize)
}

// Write the whole disk as 8 digit hex records.
func (d *Disk) Dump(w io.Writer) error {
	return dumpWords(w, d[:])
}

func dumpWords(w io.Writer, words []uint32) error {
	out := bufio.NewWriter(w)
	var str strings.Builder
	for _, word := range words {
		str.Reset()
		hex.FormatWord(&str, word)
		str.WriteByte('\n')
		if _, err := out.WriteString(str.String()); err != nil {
			return err
		}
	}
	return out.Flush()
}

// Store one pixel. Addresses beyond the framebuffer are ignored.
func (f *Frame) SetPixel(addr uint32, data uint8) {
	if addr < MonitorSize*MonitorSize {
		f[addr] = data
	}
}

// Write the framebuffer as 2 digit hex records, one pixel per line.
func (f *Frame) DumpText(w io.Writer) error {
	out := bufio.NewWriter(w)
	var str strings.Builder
	for _, pix := range f {
		str.Reset()
		hex.FormatByte(&str, pix)
		str.WriteByte('\n')
		if _, err := out.WriteString(str.String()); err != nil {
			return err
		}
	}
	return out.Flush()
}

// Write the framebuffer as raw YUV: the luma plane followed by two
// constant 0x80 chroma planes at full resolution.
func (f *Frame) DumpYUV(w io.Writer) error {
	out := bufio.NewWriter(w)
	if _, err := out.Write(f[:]); err != nil {
		return err
	}
	for range 2 * MonitorSize * MonitorSize {
		if err := out.WriteByte(0x80); err != nil {
			return err
		}
	}
	return out.Flush()
}
