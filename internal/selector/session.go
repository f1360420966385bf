// Package selector implements the interactive two-pane image picker: a
// checkboxed file list on the left and a live preview on the right,
// driven by raw single-key input until the operator confirms or cancels.
package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
	xt "golang.org/x/term"

	"github.com/ck-zhang/photopick/internal/preview"
	"github.com/ck-zhang/photopick/internal/termcap"
)

// ErrCancelled reports that the operator backed out (q, Escape, Ctrl+C).
// Distinct from a confirmed result: pressing Enter with nothing selected
// is a no-op, never a cancel.
var ErrCancelled = errors.New("selection cancelled")

// Seam for tests.
var checkBinary = preview.CheckBinary

// terminalControl abstracts raw-mode acquisition and window geometry so
// the loop can run against a fake in tests.
type terminalControl interface {
	MakeRaw() (restore func() error, err error)
	Size() (w, h int)
}

type ttyControl struct {
	in, out *os.File
}

func (t *ttyControl) MakeRaw() (func() error, error) {
	fd := int(t.in.Fd())
	old, err := xt.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return xt.Restore(fd, old) }, nil
}

func (t *ttyControl) Size() (int, int) {
	w, h, err := xt.GetSize(int(t.out.Fd()))
	if err != nil || w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return w, h
}

// Session owns one selection run: the candidate list, cursor/selection
// state, render cache, and the terminal handle. Its lifetime is exactly
// one Run call.
type Session struct {
	candidates []string
	model      *Model
	cache      *preview.Cache
	render     func(preview.Key) (preview.Entry, error)
	proto      termcap.Protocol
	in         *bufio.Reader
	out        io.Writer
	term       terminalControl
	log        *debugLog
	painted    bool
}

// New validates the session preconditions and builds a session. Both
// failure modes (empty candidate list, viu missing from PATH) are
// reported here, before any terminal mode change.
func New(images []string) (*Session, error) {
	if len(images) == 0 {
		return nil, errors.New("no images provided for selection")
	}
	if err := checkBinary(); err != nil {
		return nil, err
	}
	r := preview.NewRenderer()
	return &Session{
		candidates: images,
		model:      NewModel(len(images)),
		cache:      preview.NewCache(),
		render:     r.Render,
		proto:      termcap.DetectEnv(),
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		term:       &ttyControl{in: os.Stdin, out: os.Stdout},
		log:        newDebugLog(),
	}, nil
}

// Select runs one interactive session over images and returns the
// confirmed subset in input order, or ErrCancelled.
func Select(images []string) ([]string, error) {
	s, err := New(images)
	if err != nil {
		return nil, err
	}
	return s.Run()
}

// Run drives the input loop until a terminal state. Raw mode is held for
// the whole loop and restored on every exit path; a restore failure
// propagates, since an unusable terminal is not recoverable here.
func (s *Session) Run() (paths []string, err error) {
	restore, err := s.term.MakeRaw()
	if err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, unix.SIGWINCH)
	defer signal.Stop(winch)

	defer func() {
		s.write([]byte(clearScreen + cursorHome + showCursor))
		if rerr := restore(); rerr != nil && err == nil {
			paths = nil
			err = fmt.Errorf("restore terminal: %w", rerr)
		}
	}()

	s.write([]byte(hideCursor))
	s.redraw(true)

	for {
		// Resize is only noticed between keystrokes; the blocking read
		// owns the loop.
		select {
		case <-winch:
			s.redraw(true)
		default:
		}

		k, kerr := s.readKey()
		if kerr != nil {
			return nil, kerr
		}
		switch k {
		case keyUp:
			s.model.MoveUp()
			s.prefetchNeighbors()
			s.redraw(false)
		case keyDown:
			s.model.MoveDown()
			s.prefetchNeighbors()
			s.redraw(false)
		case keySpace:
			s.model.Toggle(s.model.Cursor())
			s.redraw(false)
		case keyToggleAll:
			s.model.ToggleAll()
			s.redraw(false)
		case keyQuick:
			s.model.QuickSelect()
			return s.ordered(), nil
		case keyEnter:
			if s.model.Count() > 0 {
				return s.ordered(), nil
			}
		case keyCancel:
			return nil, ErrCancelled
		}
	}
}

// redraw composites one frame for the cursor image. A cache miss renders
// synchronously; render failures are absorbed here and shown inline.
func (s *Session) redraw(full bool) {
	w, h := s.term.Size()
	g := layout(w, h)

	key := s.previewKey(s.candidates[s.model.Cursor()], g)
	entry, err := s.cache.GetOrInsert(key, func() (preview.Entry, error) {
		return s.render(key)
	})
	if err != nil {
		s.log.printf("render %s: %v", key.Path, err)
	}

	if s.proto.InlineImages() {
		var diag []string
		if err != nil {
			diag = diagnosticLines(err)
		}
		s.paintGraphics(g, entry, diag)
	} else {
		right := entry.Lines
		if err != nil {
			right = diagnosticLines(err)
		}
		s.paintBlocks(g, right, full || !s.painted)
	}
	s.painted = true
}

// prefetchNeighbors warms the cache for the entries next to the cursor so
// the common left/right browse redraws from cache instead of waiting on
// viu. Fire and forget: nothing is awaited or cancelled, failures only
// reach the debug log, and a prefetch that lands after the cursor moved
// on still helps a later revisit.
func (s *Session) prefetchNeighbors() {
	w, h := s.term.Size()
	g := layout(w, h)
	for _, i := range []int{s.model.Cursor() - 1, s.model.Cursor() + 1} {
		if i < 0 || i >= len(s.candidates) {
			continue
		}
		key := s.previewKey(s.candidates[i], g)
		if s.cache.Contains(key) {
			continue
		}
		go func(k preview.Key) {
			if _, err := s.cache.GetOrInsert(k, func() (preview.Entry, error) {
				return s.render(k)
			}); err != nil {
				s.log.printf("prefetch %s: %v", k.Path, err)
			}
		}(key)
	}
}

func (s *Session) previewKey(path string, g geometry) preview.Key {
	return preview.Key{Protocol: s.proto, Path: path, Width: g.previewW, Height: g.previewH}
}

func (s *Session) ordered() []string {
	idx := s.model.Ordered()
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = s.candidates[n]
	}
	return out
}

func (s *Session) write(b []byte) {
	_, _ = s.out.Write(b)
}
