// Package srcpos holds the source text under compilation together
// with enough position state for diagnostics to compute 1-based
// line/column pairs.
package srcpos

// Source is an immutable view of the source text plus a mutable
// cursor used only by the diagnostics layer to report the most
// recent point of interest.
type Source struct {
	Text []byte
	Path string

	// I is the byte offset of the point of interest. IEnd, when set
	// (>= 0), marks the end of a span; the logger currently reports
	// only I, but IEnd is carried for future span-aware diagnostics
	// the way the original Source.i_end is.
	I    int
	IEnd int
}

// New constructs a Source over text read from path.
func New(path string, text []byte) *Source {
	return &Source{Text: text, Path: path, I: 0, IEnd: -1}
}

// At returns a copy of the Source with I repositioned, used to mark
// a diagnostic's location without mutating the shared Source.
func (s *Source) At(i int) *Source {
	return &Source{Text: s.Text, Path: s.Path, I: i, IEnd: -1}
}

// LineCol computes the 1-based line and column of s.I by scanning
// s.Text[0:I] and counting newlines, matching the original logger's
// walk in log.c.
func (s *Source) LineCol() (line, col int) {
	line, col = 1, 1
	limit := s.I
	if limit > len(s.Text) {
		limit = len(s.Text)
	}
	if limit < 0 {
		limit = 0
	}
	for _, c := range s.Text[:limit] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
