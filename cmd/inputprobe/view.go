package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/actionbind/internal/input/action"
	"github.com/dshills/actionbind/internal/input/key"
)

const (
	nameWidth = 14
	barWidth  = 20
)

type frameView struct {
	frame   uint64
	actions []action.Snapshot
	keys    func(name string) []key.Key
	recent  []string
	status  string
}

// view draws the probe display onto a tcell screen.
type view struct {
	screen tcell.Screen

	plain    tcell.Style
	dim      tcell.Style
	title    tcell.Style
	pressed  tcell.Style
	held     tcell.Style
	released tcell.Style
}

func newView(screen tcell.Screen) *view {
	plain := tcell.StyleDefault
	return &view{
		screen:   screen,
		plain:    plain,
		dim:      plain.Dim(true),
		title:    plain.Bold(true),
		pressed:  plain.Foreground(tcell.ColorGreen).Bold(true),
		held:     plain.Foreground(tcell.ColorGreen),
		released: plain.Foreground(tcell.ColorYellow),
	}
}

func (v *view) render(f frameView) {
	v.screen.Clear()
	_, height := v.screen.Size()

	v.text(0, 0, v.title, fmt.Sprintf("inputprobe  frame %d", f.frame))

	y := 2
	v.text(0, y, v.dim, fmt.Sprintf("%-*s %-*s %-9s %s", nameWidth, "ACTION", barWidth+6, "STRENGTH", "PHASE", "KEYS"))
	y++
	for _, a := range f.actions {
		style := v.phaseStyle(a.Phase)
		x := v.text(0, y, style, pad(a.Name, nameWidth))
		x = v.bar(x+1, y, a.Strength, a.Threshold, style)
		x = v.text(x+1, y, style, fmt.Sprintf("%.2f", a.Strength))
		x = v.text(x+1, y, style, pad(a.Phase.String(), 9))
		v.text(x+1, y, v.dim, keyNames(f.keys(a.Name)))
		y++
	}

	y++
	v.text(0, y, v.dim, "RECENT EVENTS")
	y++
	for i := len(f.recent) - 1; i >= 0 && y < height-1; i-- {
		v.text(0, y, v.plain, f.recent[i])
		y++
	}

	v.text(0, height-1, v.dim, f.status)
	v.screen.Show()
}

func (v *view) phaseStyle(p action.Phase) tcell.Style {
	switch p {
	case action.PhasePressed:
		return v.pressed
	case action.PhaseHeld:
		return v.held
	case action.PhaseReleased:
		return v.released
	default:
		return v.plain
	}
}

// text draws s starting at column x and returns the column after it.
func (v *view) text(x, y int, style tcell.Style, s string) int {
	width, _ := v.screen.Size()
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

// bar draws a strength gauge with a marker at the threshold.
func (v *view) bar(x, y int, strength, threshold float64, style tcell.Style) int {
	filled := int(strength*barWidth + 0.5)
	mark := min(int(threshold*barWidth), barWidth-1)
	for i := range barWidth {
		r := '·'
		switch {
		case i < filled:
			r = '█'
		case i == mark:
			r = '|'
		}
		v.screen.SetContent(x+i, y, r, nil, style)
	}
	return x + barWidth
}

func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func keyNames(keys []key.Key) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return strings.Join(names, " ")
}
