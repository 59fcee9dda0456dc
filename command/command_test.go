/*
 * SIMP - Debug console tests.
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

package command

import (
	"strings"
	"testing"

	machine "github.com/AmitDamari/simp/emu/machine"
)

// A machine whose first instruction sets R7=5 and then halts.
func testMachine(t *testing.T) *machine.Machine {
	t.Helper()
	m := machine.New(machine.Outputs{})
	err := m.Load(machine.Inputs{
		IMem: strings.NewReader("007100005000\n150000000000\n"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestStepCommand(t *testing.T) {
	m := testMachine(t)
	quit, err := ProcessCommand("step", m)
	if quit || err != nil {
		t.Fatalf("step: quit=%v err=%v", quit, err)
	}
	if m.Core.Regs[7] != 5 {
		t.Errorf("after step R7=%d, want 5", m.Core.Regs[7])
	}
	if m.IO.Cycle != 1 {
		t.Errorf("after step cycle=%d, want 1", m.IO.Cycle)
	}
}

func TestRunCommand(t *testing.T) {
	m := testMachine(t)
	if _, err := ProcessCommand("run", m); err != nil {
		t.Fatal(err)
	}
	if !m.Core.Halted {
		t.Error("run did not reach halt")
	}
}

func TestQuit(t *testing.T) {
	m := testMachine(t)
	for _, text := range []string{"quit", "exit", "QUIT"} {
		quit, err := ProcessCommand(text, m)
		if !quit || err != nil {
			t.Errorf("%q: quit=%v err=%v", text, quit, err)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	m := testMachine(t)
	if _, err := ProcessCommand("bogus", m); err == nil {
		t.Error("unknown command accepted")
	}
	if quit, err := ProcessCommand("", m); quit || err != nil {
		t.Error("blank line should be ignored")
	}
}

func TestBadArguments(t *testing.T) {
	m := testMachine(t)
	if _, err := ProcessCommand("mem", m); err == nil {
		t.Error("mem without address accepted")
	}
	if _, err := ProcessCommand("mem 5000", m); err == nil {
		t.Error("mem past data memory accepted")
	}
	if _, err := ProcessCommand("step zero", m); err == nil {
		t.Error("non numeric step count accepted")
	}
}

func TestCompleteCmd(t *testing.T) {
	matches := CompleteCmd("re")
	if len(matches) != 1 || matches[0] != "regs" {
		t.Errorf("completion for re: %v", matches)
	}
	if len(CompleteCmd("")) != len(commands) {
		t.Error("empty prefix should list every command")
	}
}
