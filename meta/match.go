package meta

import "fmt"

// Match is a match span in rune indices of the searched text.
//
// A Match contains:
//   - Start position (inclusive)
//   - End position (exclusive)
//   - Whether the last step covered only a prefix of a spelling
//
// Example:
//
//	m, _ := engine.Find(text.FromString("この素晴らしい世界"))
//	println(m.Start(), m.End(), m.IsPatternPartial()) // 0 7 true
type Match struct {
	start   int
	end     int
	partial bool
}

// NewMatch creates a new Match from start and end rune indices.
func NewMatch(start, end int, partial bool) Match {
	return Match{start: start, end: end, partial: partial}
}

// Start returns the inclusive start rune index of the match.
func (m Match) Start() int {
	return m.start
}

// End returns the exclusive end rune index of the match.
func (m Match) End() int {
	return m.end
}

// Len returns the number of runes covered by the match.
func (m Match) Len() int {
	return m.end - m.start
}

// IsPatternPartial returns true if the pattern ended inside the spelling of
// the last matched rune or word.
func (m Match) IsPatternPartial() bool {
	return m.partial
}

// String returns a debug representation such as "[0, 7) partial".
func (m Match) String() string {
	if m.partial {
		return fmt.Sprintf("[%d, %d) partial", m.start, m.end)
	}
	return fmt.Sprintf("[%d, %d)", m.start, m.end)
}
