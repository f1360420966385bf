package selector

import "sort"

// Model tracks the cursor and the multi-select set over the candidate
// list. All mutation happens on the input loop goroutine.
type Model struct {
	cursor   int
	selected map[int]bool
	n        int
}

// NewModel creates a model over n candidates with the cursor at 0 and
// nothing selected. n must be at least 1.
func NewModel(n int) *Model {
	return &Model{selected: make(map[int]bool), n: n}
}

func (m *Model) Cursor() int { return m.cursor }
func (m *Model) Len() int    { return m.n }

// MoveUp moves the cursor toward 0. No-op at the top.
func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the cursor toward the end. No-op at the bottom.
func (m *Model) MoveDown() {
	if m.cursor < m.n-1 {
		m.cursor++
	}
}

// Toggle flips membership of i in the selection.
func (m *Model) Toggle(i int) {
	if i < 0 || i >= m.n {
		return
	}
	if m.selected[i] {
		delete(m.selected, i)
	} else {
		m.selected[i] = true
	}
}

// ToggleAll selects every candidate, unless all are already selected, in
// which case it clears the selection. A partial selection always goes to
// select-all first; the partial set is not restorable.
func (m *Model) ToggleAll() {
	if len(m.selected) == m.n {
		m.selected = make(map[int]bool)
		return
	}
	for i := 0; i < m.n; i++ {
		m.selected[i] = true
	}
}

// QuickSelect replaces the whole selection with the cursor item alone.
// The session confirms immediately afterwards.
func (m *Model) QuickSelect() {
	m.selected = map[int]bool{m.cursor: true}
}

// Selected reports whether index i is in the selection.
func (m *Model) Selected(i int) bool { return m.selected[i] }

// Count returns the selection size.
func (m *Model) Count() int { return len(m.selected) }

// Ordered returns the selected indices ascending, independent of the
// order they were toggled in.
func (m *Model) Ordered() []int {
	out := make([]int, 0, len(m.selected))
	for i := range m.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
