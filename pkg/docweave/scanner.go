package docweave

import "strings"

// RunScan is the result of scanning a paragraph's runs: the concatenated
// logical text plus, for every run, the half-open offset range it
// contributed. Runs without text (or with empty text) occupy zero-width
// spans so that run indices stay stable.
//
// A scan never mutates the runs it was built from.
type RunScan struct {
	Text  string
	spans []runSpan
}

type runSpan struct {
	start int
	end   int
}

// ScanRuns builds the logical text of an ordered run sequence together
// with the offset map back into it. Linear in the total text length.
func ScanRuns(runs []Run) *RunScan {
	scan := &RunScan{
		spans: make([]runSpan, len(runs)),
	}

	var sb strings.Builder
	for i := range runs {
		start := sb.Len()
		if runs[i].Text != nil {
			sb.WriteString(runs[i].Text.Content)
		}
		scan.spans[i] = runSpan{start: start, end: sb.Len()}
	}
	scan.Text = sb.String()

	return scan
}

// RunCount returns the number of scanned runs.
func (s *RunScan) RunCount() int {
	return len(s.spans)
}

// Span returns the logical offset range contributed by run i.
func (s *RunScan) Span(i int) (start, end int) {
	return s.spans[i].start, s.spans[i].end
}

// RunAt returns the index of the run owning logical offset off and the
// offset relative to that run's text. Zero-width runs never own an
// offset. Returns -1 for an out-of-range offset.
func (s *RunScan) RunAt(off int) (run int, rel int) {
	for i, sp := range s.spans {
		if off >= sp.start && off < sp.end {
			return i, off - sp.start
		}
	}
	return -1, 0
}

// RunsIn returns the indices of all runs contributing at least one
// character to the logical range [start, end).
func (s *RunScan) RunsIn(start, end int) []int {
	var runs []int
	for i, sp := range s.spans {
		if sp.start < end && sp.end > start {
			runs = append(runs, i)
		}
	}
	return runs
}
