/*
 * SIMP - Assembler main process.
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

	asm "github.com/AmitDamari/simp/asm"
	logger "github.com/AmitDamari/simp/util/logger"
)

func fatal(msg string) {
	slog.Error(msg)
	os.Exit(1)
}

func main() {
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Debug output")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("<input.asm> <imemin> <dmemin>")
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
	if len(args) != 3 {
		getopt.Usage()
		os.Exit(1)
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fatal("cannot read input file: " + err.Error())
	}

	prog, err := asm.Assemble(string(source))
	if err != nil {
		fatal(args[0] + ": " + err.Error())
	}

	imem, err := os.Create(args[1])
	if err != nil {
		fatal("cannot create output file: " + err.Error())
	}
	defer imem.Close()
	dmem, err := os.Create(args[2])
	if err != nil {
		fatal("cannot create output file: " + err.Error())
	}
	defer dmem.Close()

	if err := prog.WriteInst(imem); err != nil {
		fatal(args[1] + ": " + err.Error())
	}
	if err := prog.WriteData(dmem); err != nil {
		fatal(args[2] + ": " + err.Error())
	}

	slog.Info("assembled " + args[0])
}
