package selector

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ck-zhang/photopick/internal/preview"
)

const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"

	styleCursor = "\x1b[1;36m"
	styleDim    = "\x1b[2m"
	styleReset  = "\x1b[0m"
)

// geometry is the frame layout for one terminal size. Preview dimensions
// feed the cache key, so a resize naturally produces fresh keys.
type geometry struct {
	width, height int
	listW         int
	imageCol      int
	previewW      int
	previewH      int
	entryRows     int
}

func layout(w, h int) geometry {
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	g := geometry{width: w, height: h}

	g.listW = w * 2 / 5
	if g.listW < 24 {
		g.listW = 24
	}
	if g.listW > w-12 {
		g.listW = w - 12
	}
	if g.listW < 10 {
		g.listW = 10
	}
	g.imageCol = g.listW + 3

	g.previewW = w / 2
	if m := w - g.imageCol; g.previewW > m {
		g.previewW = m
	}
	if g.previewW < 10 {
		g.previewW = 10
	}
	g.previewH = h - 10
	if g.previewH < 5 {
		g.previewH = 5
	}

	// Title, two separators, and two control-hint rows frame the entries.
	g.entryRows = h - 5
	if g.entryRows < 1 {
		g.entryRows = 1
	}
	return g
}

// listLines renders the left pane: selection counter, checkboxed file
// names with the cursor row highlighted, and control hints. Every line is
// padded to the pane width so a repaint fully overwrites the previous
// frame.
func listLines(names []string, m *Model, g geometry) []string {
	lines := make([]string, 0, g.entryRows+5)

	title := fmt.Sprintf("Images (%d/%d selected)", m.Count(), m.Len())
	lines = append(lines, padRight(truncateMiddle(title, g.listW), g.listW))

	sep := strings.Repeat("─", g.listW)
	lines = append(lines, styleDim+sep+styleReset)

	off := 0
	if m.Cursor() >= g.entryRows {
		off = m.Cursor() - g.entryRows + 1
	}
	nameW := g.listW - 7
	for row := 0; row < g.entryRows; row++ {
		i := off + row
		if i >= len(names) {
			lines = append(lines, strings.Repeat(" ", g.listW))
			continue
		}
		box := "[ ]"
		if m.Selected(i) {
			box = "[✓]"
		}
		marker := "  "
		if i == m.Cursor() {
			marker = "► "
		}
		text := padRight(fmt.Sprintf("%s %s%s", box, marker, truncateMiddle(names[i], nameW)), g.listW)
		if i == m.Cursor() {
			text = styleCursor + text + styleReset
		}
		lines = append(lines, text)
	}

	lines = append(lines, styleDim+sep+styleReset)
	lines = append(lines,
		styleDim+padRight("↑/↓ Navigate  Space Toggle  a All", g.listW)+styleReset,
		styleDim+padRight("Enter Confirm  y Pick One  q/Esc Cancel", g.listW)+styleReset)
	return lines
}

// previewLines normalizes the right pane to previewH rows, blanking the
// tail so a shorter image fully overwrites the previous one without a
// screen clear. Content rows pass through untouched: renderer output
// carries its own SGR codes, which display-width padding would miscount.
func previewLines(src []string, g geometry) []string {
	out := make([]string, g.previewH)
	for r := 0; r < g.previewH; r++ {
		if r < len(src) {
			out[r] = src[r]
		} else {
			out[r] = strings.Repeat(" ", g.previewW)
		}
	}
	return out
}

// diagnosticLines is the inline substitute for a failed preview.
func diagnosticLines(err error) []string {
	lines := []string{"[Error rendering preview]"}
	var rerr *preview.RenderError
	if errors.As(err, &rerr) {
		lines = append(lines, strings.Split(rerr.Diag, "\n")...)
	} else if err != nil {
		lines = append(lines, err.Error())
	}
	return lines
}

// paintBlocks draws the two panes row by row. The first frame of a
// session clears the whole screen; later frames only home the cursor and
// overwrite, which avoids visible flicker.
func (s *Session) paintBlocks(g geometry, right []string, full bool) {
	var b bytes.Buffer
	if full {
		b.WriteString(clearScreen)
	}
	b.WriteString(cursorHome)

	left := listLines(s.names(), s.model, g)
	img := previewLines(right, g)
	for r := 0; r < g.height; r++ {
		if r < len(left) {
			fmt.Fprintf(&b, "\x1b[%d;1H%s", r+1, left[r])
		}
		if r < len(img) {
			fmt.Fprintf(&b, "\x1b[%d;%dH%s", r+1, g.imageCol, img[r])
		}
	}
	s.write(b.Bytes())
}

// paintGraphics draws the list pane, clears the image region, and writes
// the protocol payload verbatim at the top-right origin. The payload is
// an opaque atomic unit, so every frame fully redraws the image; there is
// no partial-update path.
func (s *Session) paintGraphics(g geometry, entry preview.Entry, diag []string) {
	var b bytes.Buffer
	b.WriteString(clearScreen)
	b.WriteString(cursorHome)

	left := listLines(s.names(), s.model, g)
	for r, line := range left {
		fmt.Fprintf(&b, "\x1b[%d;1H%s", r+1, line)
	}

	if len(diag) > 0 {
		for r, line := range diag {
			fmt.Fprintf(&b, "\x1b[%d;%dH%s", r+1, g.imageCol, padRight(line, g.previewW))
		}
	} else {
		fmt.Fprintf(&b, "\x1b[1;%dH", g.imageCol)
		b.Write(entry.Blob)
	}
	s.write(b.Bytes())
}

func (s *Session) names() []string {
	names := make([]string, len(s.candidates))
	for i, p := range s.candidates {
		names[i] = filepath.Base(p)
	}
	return names
}
