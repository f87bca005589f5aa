// Package diff computes line-level differences between two device
// configuration texts and classifies their operational severity.
package diff

import "strings"

// Op identifies how a line differs between baseline and candidate
type Op int

const (
	// OpEqual marks a line present in both texts
	OpEqual Op = iota
	// OpAdd marks a line present only in the candidate
	OpAdd
	// OpRemove marks a line present only in the baseline
	OpRemove
)

// Line is a single line of the computed diff
type Line struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// Result is a line diff with derived statistics. Added counts lines
// present only in the candidate, Removed counts lines present only in
// the baseline.
type Result struct {
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Lines   []Line `json:"-"`
}

// Changed returns the texts of all added and removed lines, in diff order
func (r Result) Changed() []string {
	var changed []string
	for _, ln := range r.Lines {
		if ln.Op != OpEqual {
			changed = append(changed, ln.Text)
		}
	}
	return changed
}

// Lines computes an LCS-based line diff of baseline against candidate
func Lines(baseline, candidate string) Result {
	a := splitLines(baseline)
	b := splitLines(candidate)

	// Longest common subsequence table; configs are small enough that
	// the quadratic table is fine.
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var res Result
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			res.Lines = append(res.Lines, Line{Op: OpEqual, Text: a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			res.Lines = append(res.Lines, Line{Op: OpRemove, Text: a[i]})
			res.Removed++
			i++
		default:
			res.Lines = append(res.Lines, Line{Op: OpAdd, Text: b[j]})
			res.Added++
			j++
		}
	}
	for ; i < len(a); i++ {
		res.Lines = append(res.Lines, Line{Op: OpRemove, Text: a[i]})
		res.Removed++
	}
	for ; j < len(b); j++ {
		res.Lines = append(res.Lines, Line{Op: OpAdd, Text: b[j]})
		res.Added++
	}

	return res
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
