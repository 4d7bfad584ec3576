package diffreport

import "strings"

// DefaultContextLines is the context added around each changed run.
const DefaultContextLines = 3

// FullDiffThreshold is the caller-side presentation policy: documents at or
// below this many lines read better as one full conflict block than as a
// sectioned report.
const FullDiffThreshold = 100

// Range is a contiguous 1-based line range with its content.
type Range struct {
	StartLine int
	EndLine   int
	Content   string
}

// Section pairs the current-side and incoming-side views of one changed
// region.
type Section struct {
	Current  Range
	Incoming Range
}

// Report lists every changed region plus the complementary unchanged
// ranges of the current document. Unchanged ranges cover the current
// document with no gaps and no overlaps against the changed ranges.
type Report struct {
	Sections  []Section
	Unchanged []Range
}

// HasChanges reports whether any line differs.
func (r Report) HasChanges() bool {
	return len(r.Sections) > 0
}

// Compare walks both documents positionally: a run of positions where the
// lines differ (or only one document still has lines) is a changed run,
// expanded by contextLines on both sides and clipped to each document's
// bounds. This is a reporting shape, not a merge: runs come from a single
// forward pass and stay in order.
func Compare(current, incoming string, contextLines int) Report {
	if contextLines < 0 {
		contextLines = DefaultContextLines
	}

	curLines := strings.Split(current, "\n")
	incLines := strings.Split(incoming, "\n")

	maxLen := len(curLines)
	if len(incLines) > maxLen {
		maxLen = len(incLines)
	}

	changedAt := func(i int) bool {
		if i >= len(curLines) || i >= len(incLines) {
			return true
		}
		return curLines[i] != incLines[i]
	}

	var report Report
	covered := make([]bool, len(curLines)) // current-side lines inside some section

	for i := 0; i < maxLen; {
		if !changedAt(i) {
			i++
			continue
		}
		start := i
		for i < maxLen && changedAt(i) {
			i++
		}
		end := i - 1

		report.Sections = append(report.Sections, Section{
			Current:  sliceRange(curLines, start-contextLines, end+contextLines),
			Incoming: sliceRange(incLines, start-contextLines, end+contextLines),
		})

		for j := clip(start-contextLines, len(curLines)); j <= clip(end+contextLines, len(curLines)); j++ {
			if j >= 0 && j < len(curLines) {
				covered[j] = true
			}
		}
	}

	// Complement over the current document.
	for i := 0; i < len(curLines); {
		if covered[i] {
			i++
			continue
		}
		start := i
		for i < len(curLines) && !covered[i] {
			i++
		}
		report.Unchanged = append(report.Unchanged, sliceRange(curLines, start, i-1))
	}

	return report
}

// sliceRange clips [start, end] (0-based, inclusive) to lines and returns
// the 1-based range with its joined content. An empty document side yields
// a zero range.
func sliceRange(lines []string, start, end int) Range {
	if len(lines) == 0 {
		return Range{}
	}
	start = clip(start, len(lines))
	end = clip(end, len(lines))
	if start > end {
		return Range{}
	}
	return Range{
		StartLine: start + 1,
		EndLine:   end + 1,
		Content:   strings.Join(lines[start:end+1], "\n"),
	}
}

func clip(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
