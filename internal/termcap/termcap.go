// Package termcap detects which graphics mechanism the hosting terminal
// can use for inline image previews. Detection is a pure function of the
// process environment; no escape-sequence negotiation is attempted, so a
// terminal that advertises a protocol it does not fully implement may
// still mis-render.
package termcap

import (
	"os"
	"strings"
)

// Protocol identifies how previews are drawn.
type Protocol int

const (
	// Blocks approximates images with colored Unicode block glyphs over
	// 24-bit ANSI colors. Works everywhere; always the fallback.
	Blocks Protocol = iota
	// Iterm is the iTerm2 inline images protocol.
	Iterm
	// Kitty is the Kitty graphics protocol (also used by Ghostty).
	Kitty
	// Sixel is DEC sixel graphics.
	Sixel
)

func (p Protocol) String() string {
	switch p {
	case Iterm:
		return "iterm"
	case Kitty:
		return "kitty"
	case Sixel:
		return "sixel"
	default:
		return "blocks"
	}
}

// InlineImages reports whether the protocol can place real bitmaps in the
// terminal. False means block rendering.
func (p Protocol) InlineImages() bool { return p != Blocks }

// Detect resolves the preview protocol from environment variables, in
// priority order. Multiplexers win unconditionally: tmux and GNU screen
// break graphics passthrough no matter what the outer terminal supports.
func Detect(getenv func(string) string) Protocol {
	if getenv("TMUX") != "" || getenv("STY") != "" {
		return Blocks
	}

	prog := getenv("TERM_PROGRAM")
	term := strings.ToLower(getenv("TERM"))

	switch {
	case prog == "iTerm.app":
		return Iterm
	case prog == "ghostty" || strings.Contains(term, "ghostty"):
		// Ghostty implements the Kitty graphics protocol.
		return Kitty
	case strings.Contains(term, "kitty"):
		return Kitty
	case strings.Contains(term, "sixel"):
		return Sixel
	}
	return Blocks
}

// DetectEnv runs Detect against the process environment.
func DetectEnv() Protocol { return Detect(os.Getenv) }
