/*
 * Altair8K - Read-only image region monitor.
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

// basicmon is a read-only text UI over a saved Altair 8K BASIC image: it
// shows the region cursors (program, variable, array, string pool) and a
// hex view of the image buffer. It never steps or dispatches a statement,
// since statement execution is out of scope here; it only renders the
// core's own state.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"altair8k/internal/basic"
	"altair8k/internal/hex"
)

// Monitor is the TUI over a single loaded Interpreter. It is deliberately
// narrower than a debugger: there is no command input and no stepping,
// only a cursor into the hex view and a refresh loop.
type Monitor struct {
	in  *basic.Interpreter
	App *tview.Application

	MainLayout  *tview.Flex
	RegionView  *tview.TextView
	HexView     *tview.TextView
	ProgramView *tview.TextView

	hexAddr int
}

// NewMonitor builds the TUI around an already-loaded Interpreter.
func NewMonitor(in *basic.Interpreter) *Monitor {
	m := &Monitor{
		in:  in,
		App: tview.NewApplication(),
	}

	m.initializeViews()
	m.buildLayout()
	m.setupKeyBindings()

	return m
}

func (m *Monitor) initializeViews() {
	m.RegionView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	m.RegionView.SetBorder(true).SetTitle(" Regions ")

	m.ProgramView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	m.ProgramView.SetBorder(true).SetTitle(" Program ")

	m.HexView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	m.HexView.SetBorder(true).SetTitle(" Hex (PgUp/PgDn to scroll) ")
}

func (m *Monitor) buildLayout() {
	left := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.RegionView, 8, 0, false).
		AddItem(m.ProgramView, 0, 1, false)

	m.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(left, 0, 1, false).
		AddItem(m.HexView, 0, 1, false)
}

func (m *Monitor) setupKeyBindings() {
	m.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			m.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			m.RefreshAll()
			return nil
		case tcell.KeyPgDn:
			m.hexAddr += 16 * 16
			m.UpdateHexView()
			return nil
		case tcell.KeyPgUp:
			m.hexAddr -= 16 * 16
			if m.hexAddr < 0 {
				m.hexAddr = 0
			}
			m.UpdateHexView()
			return nil
		}
		return event
	})
}

// RefreshAll redraws every panel from the Interpreter's current state.
func (m *Monitor) RefreshAll() {
	m.UpdateRegionView()
	m.UpdateProgramView()
	m.UpdateHexView()
	m.App.Draw()
}

func (m *Monitor) UpdateRegionView() {
	img := m.in.Image()
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]program[white] 0x%04x - 0x%04x\n", img.ProgramStart, img.ProgramEnd)
	fmt.Fprintf(&b, "[yellow]vars   [white] 0x%04x - 0x%04x\n", img.VarStart, img.ArrayStart)
	fmt.Fprintf(&b, "[yellow]arrays [white] 0x%04x - 0x%04x\n", img.ArrayStart, img.StringStart)
	fmt.Fprintf(&b, "[yellow]strings[white] 0x%04x - 0x%04x\n", img.StringStart, img.ImageEnd)
	fmt.Fprintf(&b, "[yellow]free   [white] %d bytes\n", img.FreeSpace())
	m.RegionView.SetText(b.String())
}

func (m *Monitor) UpdateProgramView() {
	lines := m.in.ListProgram(0, 65535)
	m.ProgramView.SetText(strings.Join(lines, "\n"))
}

// UpdateHexView renders 16 rows of 16 bytes starting at hexAddr, using the
// same nibble-table halfword formatter basictool's dump command uses for
// addresses, paired with a straight per-byte hex column here since the
// image is byte-addressed rather than word-addressed.
func (m *Monitor) UpdateHexView() {
	img := m.in.Image()
	size := img.Size()
	if m.hexAddr >= size {
		m.hexAddr = 0
	}

	var b strings.Builder
	for row := 0; row < 16; row++ {
		addr := m.hexAddr + row*16
		if addr >= size {
			break
		}
		end := addr + 16
		if end > size {
			end = size
		}

		var addrBuilder strings.Builder
		hex.FormatHalf(&addrBuilder, false, []uint16{uint16(addr)})
		fmt.Fprintf(&b, "[yellow]%s[white] ", strings.TrimSpace(addrBuilder.String()))

		for a := addr; a < end; a++ {
			fmt.Fprintf(&b, "%02x ", img.Byte(a))
		}
		b.WriteByte('\n')
	}
	m.HexView.SetText(b.String())
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: basicmon <image-file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	in := basic.New(basic.DefaultImageSize)
	if err := in.Load(data); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	mon := NewMonitor(in)
	mon.RefreshAll()

	if err := mon.App.SetRoot(mon.MainLayout, true).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
