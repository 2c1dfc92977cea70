package ibmatch

import (
	"fmt"
	"unicode/utf16"
)

// Match is a match span in native offsets of the searched haystack: bytes
// for UTF-8 input, uint16 code units for UTF-16 input.
//
// Example:
//
//	m := ibmatch.MustCompile("konosuba", config)
//	match, _ := m.FindString("この素晴らしい世界")
//	println(match.Start(), match.End(), match.IsPatternPartial()) // 0 21 true
type Match struct {
	start   int
	end     int
	partial bool
}

// Start returns the inclusive start offset.
func (m Match) Start() int {
	return m.start
}

// End returns the exclusive end offset.
func (m Match) End() int {
	return m.end
}

// Len returns End() - Start().
func (m Match) Len() int {
	return m.end - m.start
}

// IsPatternPartial returns true if the pattern ended inside the spelling of
// the last matched character or word, as "pinyi" does in 拼音.
func (m Match) IsPatternPartial() bool {
	return m.partial
}

// Text returns the matched part of haystack. The span is clamped to the
// haystack, so a Match applied to the wrong haystack never panics.
func (m Match) Text(haystack string) string {
	start, end := m.clamp(len(haystack))
	return haystack[start:end]
}

// TextUTF16 returns the matched part of a UTF-16 haystack as a string.
func (m Match) TextUTF16(haystack []uint16) string {
	start, end := m.clamp(len(haystack))
	return string(utf16.Decode(haystack[start:end]))
}

func (m Match) clamp(n int) (start, end int) {
	start = max(0, min(m.start, n))
	end = max(start, min(m.end, n))
	return start, end
}

// String returns a debug representation such as "[0, 21) partial".
func (m Match) String() string {
	if m.partial {
		return fmt.Sprintf("[%d, %d) partial", m.start, m.end)
	}
	return fmt.Sprintf("[%d, %d)", m.start, m.end)
}
