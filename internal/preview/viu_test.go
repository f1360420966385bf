package preview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ck-zhang/photopick/internal/termcap"
)

func swapRun(t *testing.T, fn func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)) {
	t.Helper()
	old := runCommand
	runCommand = fn
	t.Cleanup(func() { runCommand = old })
}

func TestRenderBlocks(t *testing.T) {
	t.Run("invokes_viu_with_block_flag_and_width_only", func(t *testing.T) {
		var gotName string
		var gotArgs []string
		swapRun(t, func(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
			gotName = name
			gotArgs = args
			return []byte("row1\nrow2\n"), nil, nil
		})

		key := Key{Protocol: termcap.Blocks, Path: "/pics/a.jpg", Width: 60, Height: 35}
		e, err := NewRenderer().Render(key)
		require.NoError(t, err)

		assert.Equal(t, "viu", gotName)
		assert.Equal(t, []string{"-b", "-w", "60", "/pics/a.jpg"}, gotArgs)
		assert.Equal(t, []string{"row1", "row2"}, e.Lines)
		assert.Nil(t, e.Blob)
	})

	t.Run("truncates_output_to_pane_height", func(t *testing.T) {
		swapRun(t, func(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
			return []byte("1\n2\n3\n4\n5\n"), nil, nil
		})

		key := Key{Protocol: termcap.Blocks, Path: "/pics/a.jpg", Width: 60, Height: 3}
		e, err := NewRenderer().Render(key)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, e.Lines)
	})
}

func TestRenderGraphics(t *testing.T) {
	t.Run("passes_width_and_height", func(t *testing.T) {
		var gotArgs []string
		swapRun(t, func(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
			gotArgs = args
			return []byte("\x1b]1337;File=...\a"), nil, nil
		})

		key := Key{Protocol: termcap.Iterm, Path: "/pics/b.png", Width: 50, Height: 20}
		e, err := NewRenderer().Render(key)
		require.NoError(t, err)
		assert.Equal(t, []string{"-w", "50", "-h", "20", "/pics/b.png"}, gotArgs)
		assert.Equal(t, []byte("\x1b]1337;File=...\a"), e.Blob)
		assert.Nil(t, e.Lines)
	})

	t.Run("keeps_binary_payload_verbatim", func(t *testing.T) {
		payload := []byte{0x1b, '_', 'G', 0x00, 0xff, 0xfe, '\n', 0x1b, '\\'}
		swapRun(t, func(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
			return payload, nil, nil
		})

		key := Key{Protocol: termcap.Kitty, Path: "/pics/c.png", Width: 40, Height: 18}
		e, err := NewRenderer().Render(key)
		require.NoError(t, err)
		assert.Equal(t, payload, e.Blob)
	})
}

func TestRenderFailures(t *testing.T) {
	key := Key{Protocol: termcap.Blocks, Path: "/pics/broken.jpg", Width: 60, Height: 35}

	t.Run("nonzero_exit_surfaces_stderr", func(t *testing.T) {
		swapRun(t, func(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
			return nil, []byte("viu: unsupported format\n"), errors.New("exit status 1")
		})

		_, err := NewRenderer().Render(key)
		var rerr *RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "/pics/broken.jpg", rerr.Path)
		assert.Equal(t, "viu: unsupported format", rerr.Diag)
	})

	t.Run("spawn_error_without_stderr", func(t *testing.T) {
		swapRun(t, func(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
			return nil, nil, errors.New("fork/exec: no such file")
		})

		_, err := NewRenderer().Render(key)
		var rerr *RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "fork/exec: no such file", rerr.Diag)
	})

	t.Run("timeout_reported_as_render_error", func(t *testing.T) {
		swapRun(t, func(ctx context.Context, _ string, _ ...string) ([]byte, []byte, error) {
			<-ctx.Done()
			return nil, nil, ctx.Err()
		})

		r := &Renderer{Binary: Binary, Timeout: 10 * time.Millisecond}
		_, err := r.Render(key)
		var rerr *RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "preview timed out", rerr.Diag)
	})
}

func TestCheckBinary(t *testing.T) {
	old := lookPath
	t.Cleanup(func() { lookPath = old })

	t.Run("found", func(t *testing.T) {
		lookPath = func(string) (string, error) { return "/usr/bin/viu", nil }
		assert.NoError(t, CheckBinary())
	})

	t.Run("missing_includes_install_guidance", func(t *testing.T) {
		lookPath = func(string) (string, error) { return "", errors.New("not found") }
		err := CheckBinary()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "viu is not installed")
		assert.Contains(t, err.Error(), "brew install viu")
		assert.Contains(t, err.Error(), "cargo install viu")
	})
}
