// Package preview renders images for the terminal by driving the
// external viu binary, and caches its output per session.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/ck-zhang/photopick/internal/termcap"
)

// Binary is the external renderer invoked once per uncached preview.
const Binary = "viu"

// DefaultTimeout bounds one viu invocation.
const DefaultTimeout = 5 * time.Second

// Seams for tests.
var (
	lookPath = exec.LookPath

	runCommand = func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error) {
		cmd := exec.CommandContext(ctx, name, args...)
		var out, errb bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &errb
		err = cmd.Run()
		return out.Bytes(), errb.Bytes(), err
	}
)

// RenderError reports one failed render. It is non-fatal: the compositor
// shows Diag in place of the preview and the session continues.
type RenderError struct {
	Path string
	Diag string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %s", e.Path, e.Diag)
}

// CheckBinary verifies viu is on PATH. Run once before a session starts,
// before any terminal mode change; absence is fatal.
func CheckBinary() error {
	if _, err := lookPath(Binary); err != nil {
		return errors.New(`viu is not installed

viu is required for image preview in the terminal.

Installation instructions:
  macOS:   brew install viu
  Linux:   cargo install viu  (or use your package manager)

More info: https://github.com/atanunq/viu`)
	}
	return nil
}

// Renderer invokes viu with protocol-specific arguments.
type Renderer struct {
	Binary  string
	Timeout time.Duration
}

func NewRenderer() *Renderer {
	return &Renderer{Binary: Binary, Timeout: DefaultTimeout}
}

// Render produces the entry for key.
//
// Block mode asks viu for ANSI block glyphs (-b) at the given width only;
// omitting the height flag preserves the native aspect ratio, and the
// output is truncated to the pane height afterwards. Graphics mode
// requests width and height and captures stdout verbatim: the payload
// contains binary escape-sequence data that text transcoding would
// corrupt.
func (r *Renderer) Render(key Key) (Entry, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	bin := r.Binary
	if bin == "" {
		bin = Binary
	}

	var args []string
	if key.Protocol == termcap.Blocks {
		args = []string{"-b", "-w", strconv.Itoa(key.Width), key.Path}
	} else {
		args = []string{"-w", strconv.Itoa(key.Width), "-h", strconv.Itoa(key.Height), key.Path}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stdout, stderr, err := runCommand(ctx, bin, args...)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Entry{}, &RenderError{Path: key.Path, Diag: "preview timed out"}
	}
	if err != nil {
		diag := strings.TrimSpace(string(stderr))
		if diag == "" {
			diag = err.Error()
		}
		return Entry{}, &RenderError{Path: key.Path, Diag: diag}
	}

	if key.Protocol == termcap.Blocks {
		lines := strings.Split(strings.TrimRight(string(stdout), "\n"), "\n")
		if key.Height > 0 && len(lines) > key.Height {
			lines = lines[:key.Height]
		}
		return Entry{Lines: lines}, nil
	}
	return Entry{Blob: stdout}, nil
}
