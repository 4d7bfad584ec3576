package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruminaider/upsync/internal/markdown"
)

func parseSections(t *testing.T, doc string) []markdown.Section {
	t.Helper()
	return markdown.Parse(doc)
}

func mustMerge(t *testing.T, base, current, incoming string) *Result {
	t.Helper()
	res, err := Merge(base, current, incoming, Options{Label: "test.md"})
	require.NoError(t, err)
	return res
}

func TestMerge_CleanUpdate(t *testing.T) {
	res := mustMerge(t, "## A\nfoo", "## A\nfoo", "## A\nbar")
	assert.Equal(t, "## A\nbar", res.Merged)
	assert.Equal(t, 0, res.Conflicts)
	assert.Equal(t, 1, res.AutoMerged)
}

func TestMerge_Conflict(t *testing.T) {
	res := mustMerge(t, "## A\nfoo", "## A\nfoo-edited", "## A\nfoo-new")
	assert.Equal(t, 1, res.Conflicts)

	want := strings.Join([]string{
		"## A",
		"<<<<<<< Current (test.md)",
		"foo-edited",
		"||||||| Base (test.md)",
		"foo",
		"=======",
		"foo-new",
		">>>>>>> Incoming (test.md)",
	}, "\n")
	assert.Equal(t, want, res.Merged)
}

func TestMerge_CustomizationKept(t *testing.T) {
	res := mustMerge(t, "## A\nfoo", "## A\nfoo plus my tweak", "## A\nfoo")
	assert.Equal(t, "## A\nfoo plus my tweak", res.Merged)
	assert.Equal(t, 0, res.Conflicts)
	assert.Equal(t, 1, res.AutoMerged)
}

func TestMerge_AlreadyCurrent(t *testing.T) {
	res := mustMerge(t, "## A\nfoo", "## A\nbar", "## A\nbar")
	assert.Equal(t, "## A\nbar", res.Merged)
	assert.Equal(t, 0, res.Conflicts)
	assert.Equal(t, 0, res.AutoMerged)
}

func TestMerge_NewUpstreamSection(t *testing.T) {
	res := mustMerge(t,
		"## A\nfoo",
		"## A\nfoo",
		"## A\nfoo\n## B\nfresh")
	assert.Contains(t, res.Merged, "## B\nfresh")
	assert.Equal(t, []string{"B"}, res.Added)
}

func TestMerge_UserDeletionRespected(t *testing.T) {
	res := mustMerge(t,
		"## A\nfoo\n## B\nold stuff",
		"## A\nfoo",
		"## A\nfoo\n## B\nold stuff updated a bit")
	assert.NotContains(t, res.Merged, "## B")
	assert.Equal(t, []string{"B"}, res.Removed)
}

func TestMerge_UserSectionNeverLost(t *testing.T) {
	res := mustMerge(t,
		"## A\nfoo",
		"## A\nfoo\n## My Notes\npersonal content",
		"## A\nbar")
	assert.Contains(t, res.Merged, "## My Notes\npersonal content")
	assert.Equal(t, "## A\nbar\n## My Notes\npersonal content", res.Merged)
}

func TestMerge_HoldoverOfUpstreamRemovedSectionKeptWithNote(t *testing.T) {
	// Section B was removed upstream; the user still has it. It stays, with
	// a note.
	res := mustMerge(t,
		"## A\nfoo\n## B\nlegacy",
		"## A\nfoo\n## B\nlegacy",
		"## A\nfoo")
	assert.Contains(t, res.Merged, "## B\nlegacy")
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], `"B"`)
}

func TestMerge_RenamedSectionStillMatches(t *testing.T) {
	// Header changed slightly upstream; fuzzy matching pairs them and the
	// incoming rename wins because the user never touched the body.
	res := mustMerge(t,
		"## Installation Steps\nrun make\nthen install",
		"## Installation Steps\nrun make\nthen install",
		"## Installation Step\nrun make\nthen install, carefully")
	assert.Equal(t, "## Installation Step\nrun make\nthen install, carefully", res.Merged)
	assert.Equal(t, 0, res.Conflicts)
	assert.Empty(t, res.Added)
}

func TestMerge_PreambleMerges(t *testing.T) {
	res := mustMerge(t,
		"intro\n## A\nfoo",
		"intro\n## A\nfoo",
		"new intro\n## A\nfoo")
	assert.Equal(t, "new intro\n## A\nfoo", res.Merged)
	assert.Equal(t, 0, res.Conflicts)
}

func TestMerge_BothEmpty(t *testing.T) {
	res := mustMerge(t, "", "", "")
	assert.Equal(t, "", res.Merged)
	assert.Equal(t, 0, res.Conflicts)
}

func TestMerge_OutcomesRecorded(t *testing.T) {
	res := mustMerge(t, "## A\nfoo", "## A\nedited", "## A\nchanged")
	require.Len(t, res.Outcomes, 1)
	assert.Equal(t, "A", res.Outcomes[0].Header)
	assert.Equal(t, OutcomeConflict, res.Outcomes[0].Outcome)
}

func TestMerge_BadThreshold(t *testing.T) {
	_, err := Merge("", "", "", Options{Threshold: 150})
	var abort *AbortError
	require.ErrorAs(t, err, &abort)
}

func TestSimilarity_Bounds(t *testing.T) {
	assert.Equal(t, 100.0, Similarity("anything", "anything"))
	assert.Equal(t, 100.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("a", ""))
	assert.Equal(t, 0.0, Similarity("", "abc"))

	// One substitution in four runes.
	assert.InDelta(t, 75.0, Similarity("abcd", "abxd"), 0.001)
}

func TestBestMatch_GreedyClaiming(t *testing.T) {
	candidates := parseSections(t, "## Target\nsame body here")
	claimed := make(map[int]bool)

	targets := parseSections(t, "## Target\nsame body here\n## Target\nsame body here")
	_, ok := BestMatch(targets[0], candidates, claimed, DefaultThreshold)
	require.True(t, ok)

	// The single candidate is claimed; the second identical target loses.
	_, ok = BestMatch(targets[1], candidates, claimed, DefaultThreshold)
	assert.False(t, ok)
}

func TestBestMatch_BelowThreshold(t *testing.T) {
	candidates := parseSections(t, "## Completely Different\nunrelated body")
	claimed := make(map[int]bool)

	targets := parseSections(t, "## Target\nsome body")
	_, ok := BestMatch(targets[0], candidates, claimed, DefaultThreshold)
	assert.False(t, ok)
	assert.Empty(t, claimed)
}
