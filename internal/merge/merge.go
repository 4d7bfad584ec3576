package merge

import (
	"fmt"
	"strings"

	"github.com/ruminaider/upsync/internal/markdown"
)

// Outcome classifies how one incoming section slot was resolved.
type Outcome int

const (
	// OutcomeNewSection means the section exists only in the incoming document.
	OutcomeNewSection Outcome = iota
	// OutcomeRemovedRespected means the user deleted a section upstream still
	// carries changes for; the deletion wins.
	OutcomeRemovedRespected
	// OutcomeCustomPreserved means the user added a section upstream never had.
	OutcomeCustomPreserved
	// OutcomeCleanUpdate means only upstream changed the section.
	OutcomeCleanUpdate
	// OutcomeAlreadyCurrent means the user's copy already equals the incoming one.
	OutcomeAlreadyCurrent
	// OutcomeCustomizationKept means only the user changed the section.
	OutcomeCustomizationKept
	// OutcomeConflict means all three versions differ pairwise.
	OutcomeConflict
)

// String returns the outcome name used in notes and test output.
func (o Outcome) String() string {
	switch o {
	case OutcomeNewSection:
		return "new"
	case OutcomeRemovedRespected:
		return "removed"
	case OutcomeCustomPreserved:
		return "custom-preserved"
	case OutcomeCleanUpdate:
		return "clean-update"
	case OutcomeAlreadyCurrent:
		return "already-current"
	case OutcomeCustomizationKept:
		return "customization-kept"
	case OutcomeConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// SectionOutcome records the resolution of one section slot.
type SectionOutcome struct {
	Header  string
	Outcome Outcome
}

// Result is the output of one semantic merge.
type Result struct {
	Merged     string
	Conflicts  int
	Added      []string // headers of brand-new incoming sections
	Removed    []string // headers of sections whose user-side deletion was respected
	AutoMerged int      // sections resolved automatically despite a change on some side
	Outcomes   []SectionOutcome
	Notes      []string
}

// Options tunes one merge invocation.
type Options struct {
	// Label names the document in conflict markers, usually the file path.
	Label string
	// Threshold overrides DefaultThreshold when non-zero.
	Threshold float64
}

// AbortError reports an internal invariant violation; the merge produced no
// usable output and the caller decides the fallback.
type AbortError struct {
	Reason string
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("merge aborted: %s", e.Reason)
}

// Merge performs a semantic 3-way merge of header-delimited documents.
// The incoming structure is canonical: incoming sections are walked in
// order and matched fuzzily against base and current. Sections only the
// user has are appended at the end so nothing the user wrote is ever
// dropped.
func Merge(base, current, incoming string, opts Options) (*Result, error) {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold < 0 || threshold > 100 {
		return nil, &AbortError{Reason: fmt.Sprintf("threshold %.1f out of range", threshold)}
	}
	label := opts.Label
	if label == "" {
		label = "upsync"
	}

	baseSecs := markdown.Parse(base)
	curSecs := markdown.Parse(current)
	incSecs := markdown.Parse(incoming)

	claimedBase := make(map[int]bool)
	claimedCur := make(map[int]bool)

	res := &Result{}
	var chunks []string

	record := func(sec markdown.Section, o Outcome) {
		res.Outcomes = append(res.Outcomes, SectionOutcome{Header: displayHeader(sec), Outcome: o})
	}

	for _, inc := range incSecs {
		bm, inBase := BestMatch(inc, baseSecs, claimedBase, threshold)
		cm, inCur := BestMatch(inc, curSecs, claimedCur, threshold)

		switch {
		case !inBase && !inCur:
			// Brand-new upstream section.
			chunks = append(chunks, inc.Text())
			res.Added = append(res.Added, displayHeader(inc))
			record(inc, OutcomeNewSection)

		case inBase && !inCur:
			// Existed at baseline, user deleted it. Respect the deletion.
			res.Removed = append(res.Removed, displayHeader(inc))
			record(inc, OutcomeRemovedRespected)

		case !inBase && inCur:
			// User-added section that upstream happens to resemble now.
			// The user's version wins.
			chunks = append(chunks, curSecs[cm.Index].Text())
			res.AutoMerged++
			record(inc, OutcomeCustomPreserved)

		default:
			baseSec := baseSecs[bm.Index]
			curSec := curSecs[cm.Index]
			baseText := strings.TrimSpace(baseSec.Content())
			curText := strings.TrimSpace(curSec.Content())
			incText := strings.TrimSpace(inc.Content())

			switch {
			case curText == baseText:
				chunks = append(chunks, inc.Text())
				res.AutoMerged++
				record(inc, OutcomeCleanUpdate)
			case curText == incText:
				chunks = append(chunks, inc.Text())
				record(inc, OutcomeAlreadyCurrent)
			case baseText == incText:
				chunks = append(chunks, curSec.Text())
				res.AutoMerged++
				record(inc, OutcomeCustomizationKept)
			default:
				chunks = append(chunks, conflictChunk(inc, curText, baseText, incText, label))
				res.Conflicts++
				record(inc, OutcomeConflict)
			}
		}
	}

	// Zero data loss: every current section not consumed by an incoming
	// match is carried into the output.
	for i, cur := range curSecs {
		if claimedCur[i] {
			continue
		}
		if _, inBase := BestMatch(cur, baseSecs, claimedBase, threshold); inBase {
			res.Notes = append(res.Notes,
				fmt.Sprintf("section %q was removed upstream but kept locally", displayHeader(cur)))
		}
		chunks = append(chunks, cur.Text())
	}

	res.Merged = strings.Join(chunks, "\n")
	return res, nil
}

func displayHeader(sec markdown.Section) string {
	if sec.Level == 0 {
		return "(preamble)"
	}
	return sec.Header
}

// conflictChunk renders a section as a diff3-style conflict region under the
// incoming section's header. The marker syntax is a fixed external
// contract; markers start at column 1.
func conflictChunk(inc markdown.Section, curText, baseText, incText, label string) string {
	var b strings.Builder
	if inc.Level != 0 {
		b.WriteString(inc.HeaderLine)
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("<<<<<<< Current (%s)\n", label))
	b.WriteString(curText)
	b.WriteString(fmt.Sprintf("\n||||||| Base (%s)\n", label))
	b.WriteString(baseText)
	b.WriteString("\n=======\n")
	b.WriteString(incText)
	b.WriteString(fmt.Sprintf("\n>>>>>>> Incoming (%s)", label))
	return b.String()
}
