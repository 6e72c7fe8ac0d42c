package shell

// History is the append-only record of executed input lines. It lives in
// memory only and is not persisted across runs.
type History struct {
	lines []string
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append records one raw input line.
func (h *History) Append(line string) {
	h.lines = append(h.lines, line)
}

// All returns every recorded line in order.
func (h *History) All() []string {
	return h.lines
}

// Last returns the most recent n lines together with the 1-based index
// of the first returned line. n larger than the history returns
// everything.
func (h *History) Last(n int) (lines []string, first int) {
	if n >= len(h.lines) {
		return h.lines, 1
	}
	return h.lines[len(h.lines)-n:], len(h.lines) - n + 1
}

// Len returns the number of recorded lines.
func (h *History) Len() int {
	return len(h.lines)
}
