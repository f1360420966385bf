package selector

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// sanitizePrintable replaces control characters so a hostile filename
// cannot inject escape sequences into the frame.
func sanitizePrintable(s string) string {
	rs := []rune(s)
	out := make([]rune, 0, len(rs))
	for _, r := range rs {
		if r < 0x20 || r == 0x7f {
			out = append(out, ' ')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}

// truncateMiddle shortens s to the display width, keeping head and tail.
func truncateMiddle(s string, width int) string {
	s = sanitizePrintable(s)
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	avail := width - 3
	left := avail / 2
	right := avail - left

	rs := []rune(s)
	var head []rune
	w := 0
	for _, r := range rs {
		rw := runewidth.RuneWidth(r)
		if w+rw > left {
			break
		}
		head = append(head, r)
		w += rw
	}

	var tail []rune
	w = 0
	for i := len(rs) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(rs[i])
		if w+rw > right {
			break
		}
		tail = append(tail, rs[i])
		w += rw
	}
	for i, j := 0, len(tail)-1; i < j; i, j = i+1, j-1 {
		tail[i], tail[j] = tail[j], tail[i]
	}

	out := string(head) + "..." + string(tail)
	if runewidth.StringWidth(out) > width {
		out = runewidth.Truncate(out, width, "")
	}
	return out
}

// padRight pads or truncates s to exactly w display columns.
func padRight(s string, w int) string {
	sw := runewidth.StringWidth(s)
	if sw == w {
		return s
	}
	if sw > w {
		return runewidth.Truncate(s, w, "")
	}
	return s + strings.Repeat(" ", w-sw)
}
