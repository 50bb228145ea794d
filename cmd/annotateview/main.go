// Command annotateview is an interactive terminal browser for an
// AnnotatedText's segments: scroll through the Text/Markup spans a scan
// produced and see the source/plain-text offsets side by side.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"latexannotate/internal/latex"
	"latexannotate/internal/settings"
	"latexannotate/internal/sink"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: annotateview <file.tex|file.rnw>")
		os.Exit(1)
	}

	path := os.Args[1]
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read file:", err)
		os.Exit(1)
	}

	codeLangID := "latex"
	if strings.EqualFold(filepath.Ext(path), ".rnw") {
		codeLangID = "rsweave"
	}

	b := latex.NewBuilder(codeLangID)
	b.SetSettings(settings.Default())

	out, err := b.AddCode(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, "scan failed:", err)
		os.Exit(1)
	}

	if err := run(filepath.Base(path), out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type viewer struct {
	screen   tcell.Screen
	title    string
	segments []sink.Segment
	selected int
	scroll   int
}

func run(title string, out *sink.AnnotatedText) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := &viewer{screen: screen, title: title, segments: out.Segments()}
	v.render()

	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
			v.render()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return nil
			}
			v.render()
		}
	}
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyDown:
		v.move(1)
	case tcell.KeyUp:
		v.move(-1)
	case tcell.KeyPgDn:
		v.move(v.pageSize())
	case tcell.KeyPgUp:
		v.move(-v.pageSize())
	case tcell.KeyHome:
		v.selected = 0
	case tcell.KeyEnd:
		v.selected = len(v.segments) - 1
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'j':
			v.move(1)
		case 'k':
			v.move(-1)
		}
	}
	return true
}

func (v *viewer) pageSize() int {
	_, h := v.screen.Size()
	rows := h - 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (v *viewer) move(delta int) {
	if len(v.segments) == 0 {
		return
	}
	v.selected += delta
	if v.selected < 0 {
		v.selected = 0
	}
	if v.selected >= len(v.segments) {
		v.selected = len(v.segments) - 1
	}
	rows := v.pageSize()
	if v.selected < v.scroll {
		v.scroll = v.selected
	}
	if v.selected >= v.scroll+rows {
		v.scroll = v.selected - rows + 1
	}
}

func (v *viewer) render() {
	v.screen.Clear()
	w, h := v.screen.Size()

	headerStyle := tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	header := fmt.Sprintf(" %s — %d segments ", v.title, len(v.segments))
	drawLine(v.screen, 0, 0, w, header, headerStyle)

	rows := h - 2
	if rows < 0 {
		rows = 0
	}
	end := v.scroll + rows
	if end > len(v.segments) {
		end = len(v.segments)
	}

	for row, i := 0, v.scroll; i < end; row, i = row+1, i+1 {
		seg := v.segments[i]
		style := tcell.StyleDefault
		if i == v.selected {
			style = style.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
		} else if seg.Kind == sink.Markup {
			style = style.Foreground(tcell.ColorGray)
		}

		line := fmt.Sprintf("%-6s [%5d,%5d) %s", seg.Kind, seg.SourceStart, seg.SourceEnd, oneLine(seg.PlainText))
		drawLine(v.screen, 0, row+1, w, line, style)
	}

	footerStyle := tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	footer := " j/k or arrows to move, PgUp/PgDn, q to quit "
	drawLine(v.screen, 0, h-1, w, footer, footerStyle)

	v.screen.Show()
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", "\\n")
	return strings.ReplaceAll(s, "\r", "\\r")
}

func drawLine(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, ru := range text {
		if col >= x+maxWidth {
			break
		}
		screen.SetContent(col, y, ru, nil, style)
		w := runewidth.RuneWidth(ru)
		if w <= 0 {
			w = 1
		}
		col += w
	}
	for ; col < x+maxWidth; col++ {
		screen.SetContent(col, y, ' ', nil, style)
	}
}
