/*
 * Altair8K - Immediate-mode command reader.
 *
 * Copyright 2024, Richard Cornwell
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

// Package repl is the thin, external-harness immediate-mode line reader:
// it recognizes program-line edits (a leading line number), a small
// fixed set of commands (LIST, NEW, LOAD, SAVE), and otherwise treats a
// line as an immediate-mode expression to evaluate and print. It does
// not implement statement dispatch (PRINT, IF, GOTO, FOR, ...); that is
// a separate, external concern.
package repl

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"altair8k/internal/basic"
)

type cmdLine struct {
	rest string
	in   *basic.Interpreter
}

type cmd struct {
	Name    string
	Min     int
	Process func(line *cmdLine) (quit bool, err error)
}

var cmdList = []cmd{
	{Name: "list", Min: 1, Process: listCmd},
	{Name: "new", Min: 3, Process: newCmd},
	{Name: "load", Min: 2, Process: loadCmd},
	{Name: "save", Min: 2, Process: saveCmd},
	{Name: "quit", Min: 4, Process: quitCmd},
}

func listCmd(line *cmdLine) (bool, error) {
	start, end := uint16(0), uint16(65535)
	fields := strings.Fields(line.rest)
	if len(fields) > 0 {
		n, err := strconv.ParseUint(fields[0], 10, 16)
		if err != nil {
			return false, fmt.Errorf("bad line number %q", fields[0])
		}
		start, end = uint16(n), uint16(n)
	}
	for _, text := range line.in.ListProgram(start, end) {
		fmt.Println(text)
	}
	return false, nil
}

func newCmd(line *cmdLine) (bool, error) {
	line.in.ProgramClear()
	line.in.ClearAll()
	return false, nil
}

func loadCmd(line *cmdLine) (bool, error) {
	path := strings.TrimSpace(line.rest)
	if path == "" {
		return false, errors.New("load requires a file path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return false, line.in.Load(data)
}

func saveCmd(line *cmdLine) (bool, error) {
	path := strings.TrimSpace(line.rest)
	if path == "" {
		return false, errors.New("save requires a file path")
	}
	return false, os.WriteFile(path, line.in.Dump(), 0o644)
}

func quitCmd(line *cmdLine) (bool, error) { return true, nil }

// matchCommand finds the cmdList entry whose name the leading word of
// src abbreviates to at least Min characters.
func matchCommand(word string) *cmd {
	word = strings.ToLower(word)
	for i := range cmdList {
		c := &cmdList[i]
		if len(word) >= c.Min && strings.HasPrefix(c.Name, word) {
			return c
		}
	}
	return nil
}

// leadingLineNumber reports whether src begins with a BASIC line number
// and, if so, the number and the remaining statement body.
func leadingLineNumber(src string) (lineNo uint16, body string, ok bool) {
	i := 0
	for i < len(src) && src[i] >= '0' && src[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", false
	}
	n, err := strconv.ParseUint(src[:i], 10, 16)
	if err != nil {
		return 0, "", false
	}
	return uint16(n), strings.TrimLeft(src[i:], " "), true
}

// evalImmediate evaluates src as an immediate-mode expression and prints
// its value, dispatching to the string or numeric evaluator contract by
// probing for a leading quote (a crude but sufficient heuristic at this
// narrow a scope, since full expression typing belongs to statement
// dispatch).
func evalImmediate(in *basic.Interpreter, src string) {
	toks := in.TokenizeLine(src)
	trimmed := strings.TrimSpace(src)
	if strings.HasPrefix(trimmed, `"`) {
		v, _, kind := in.EvalStringExpression(toks)
		if kind != 0 {
			fmt.Printf("?%s ERROR\n", kind)
			return
		}
		fmt.Println(v)
		return
	}
	v, _, kind := in.EvalExpression(toks)
	if kind != 0 {
		fmt.Printf("?%s ERROR\n", kind)
		return
	}
	fmt.Println(v.ToString())
}

// processLine is the command table's entry point, mirroring
// parser.ProcessCommand's (quit, error) contract.
func processLine(raw string, in *basic.Interpreter) (quit bool, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false, nil
	}

	if lineNo, body, ok := leadingLineNumber(trimmed); ok {
		_, err := in.ProgramInsertLine(lineNo, in.TokenizeLine(body))
		return false, err
	}

	fields := strings.Fields(trimmed)
	if c := matchCommand(fields[0]); c != nil {
		rest := strings.TrimPrefix(trimmed, fields[0])
		return c.Process(&cmdLine{rest: rest, in: in})
	}

	evalImmediate(in, trimmed)
	return false, nil
}

// ConsoleReader runs the liner-based immediate-mode loop against in
// until EOF, Ctrl-C, or a quit command.
func ConsoleReader(in *basic.Interpreter) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		var out []string
		for _, c := range cmdList {
			if strings.HasPrefix(c.Name, strings.ToLower(partial)) {
				out = append(out, c.Name)
			}
		}
		return out
	})

	for {
		command, err := line.Prompt("] ")
		if err == nil {
			line.AppendHistory(command)
			quit, err := processLine(command, in)
			if err != nil {
				fmt.Println("Error: " + err.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		slog.Error("error reading line: " + err.Error())
		return
	}
}
