package selector

import "fmt"

type key int

const (
	keyNone key = iota
	keyUp
	keyDown
	keySpace
	keyToggleAll
	keyQuick
	keyEnter
	keyCancel
)

// readKey blocks on one input byte and decodes it. Arrow keys arrive as
// the 3-byte sequence ESC [ A/B; a lone ESC (nothing buffered behind it)
// is the Escape key and cancels.
func (s *Session) readKey() (key, error) {
	b, err := s.in.ReadByte()
	if err != nil {
		return keyNone, fmt.Errorf("read input: %w", err)
	}
	switch b {
	case 0x1b:
		if s.in.Buffered() == 0 {
			return keyCancel, nil
		}
		next, err := s.in.ReadByte()
		if err != nil || next != '[' {
			return keyCancel, nil
		}
		final, err := s.in.ReadByte()
		if err != nil {
			return keyCancel, nil
		}
		switch final {
		case 'A':
			return keyUp, nil
		case 'B':
			return keyDown, nil
		}
		return keyNone, nil
	case ' ':
		return keySpace, nil
	case 'a', 'A':
		return keyToggleAll, nil
	case 'y', 'Y':
		return keyQuick, nil
	case '\r', '\n':
		return keyEnter, nil
	case 'q', 'Q', 0x03: // 0x03 is Ctrl+C in raw mode
		return keyCancel, nil
	}
	return keyNone, nil
}
