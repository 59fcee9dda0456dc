/*
 * SIMP - Simulator main process.
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

package main

import (
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	command "github.com/AmitDamari/simp/command"
	machine "github.com/AmitDamari/simp/emu/machine"
	logger "github.com/AmitDamari/simp/util/logger"
)

func fatal(msg string) {
	slog.Error(msg)
	os.Exit(1)
}

func openInput(path string) *os.File {
	file, err := os.Open(path)
	if err != nil {
		fatal("cannot open input file: " + err.Error())
	}
	return file
}

func createOutput(path string) *os.File {
	file, err := os.Create(path)
	if err != nil {
		fatal("cannot create output file: " + err.Error())
	}
	return file
}

func main() {
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Debug output and interactive console")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("<imemin> <dmemin> <diskin> <irq2in> <dmemout> <regout> " +
		"<trace> <hwregtrace> <cycles> <leds> <display7seg> <diskout> " +
		"<monitor.txt> <monitor.yuv>")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logWriter io.Writer
	if *optLogFile != "" {
		file, err := os.Create(*optLogFile)
		if err == nil {
			defer file.Close()
			logWriter = file
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	opts := &slog.HandlerOptions{Level: programLevel}
	slog.SetDefault(slog.New(logger.NewHandler(logWriter, opts, *optDebug)))

	args := getopt.Args()
	if len(args) != 14 {
		getopt.Usage()
		os.Exit(1)
	}

	imemin := openInput(args[0])
	defer imemin.Close()
	dmemin := openInput(args[1])
	defer dmemin.Close()
	diskin := openInput(args[2])
	defer diskin.Close()
	irq2in := openInput(args[3])
	defer irq2in.Close()

	outputs := make([]*os.File, 10)
	for i := range outputs {
		outputs[i] = createOutput(args[4+i])
		defer outputs[i].Close()
	}

	m := machine.New(machine.Outputs{
		DMem:        outputs[0],
		Regs:        outputs[1],
		Trace:       outputs[2],
		HWRegTrace:  outputs[3],
		Cycles:      outputs[4],
		Leds:        outputs[5],
		Display7Seg: outputs[6],
		Disk:        outputs[7],
		MonitorText: outputs[8],
		MonitorYUV:  outputs[9],
	})

	err := m.Load(machine.Inputs{
		IMem:     imemin,
		DMem:     dmemin,
		Disk:     diskin,
		Schedule: irq2in,
	})
	if err != nil {
		fatal(err.Error())
	}

	slog.Info("simulation started")
	if *optDebug {
		command.ConsoleReader(m)
	} else {
		m.Run()
	}

	if err := m.Finish(); err != nil {
		fatal(err.Error())
	}
	slog.Info("simulation completed")
}
