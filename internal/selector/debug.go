package selector

import (
	"log"
	"os"
	"path/filepath"
)

// debugLog writes diagnostics to a file under the temp dir when
// PHOTOPICK_DEBUG is set. Stdout and stderr stay clean: the TUI owns
// them while the session runs.
type debugLog struct {
	l *log.Logger
}

func newDebugLog() *debugLog {
	if os.Getenv("PHOTOPICK_DEBUG") == "" {
		return &debugLog{}
	}
	path := filepath.Join(os.TempDir(), "photopick-debug.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &debugLog{}
	}
	return &debugLog{l: log.New(f, "", log.LstdFlags|log.Lmicroseconds)}
}

func (d *debugLog) printf(format string, a ...any) {
	if d == nil || d.l == nil {
		return
	}
	d.l.Printf(format, a...)
}
