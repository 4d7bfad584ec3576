package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	hashA = "sha256:aaaa"
	hashB = "sha256:bbbb"
	hashC = "sha256:cccc"
)

func TestClassify_NewUpstreamFile(t *testing.T) {
	st := Classify(Input{Path: "docs/NEW.md", UpstreamHash: hashA})
	assert.Equal(t, ActionAdd, st.Action)
	assert.False(t, st.IsConflict)
}

func TestClassify_AbsentEverywhere(t *testing.T) {
	st := Classify(Input{Path: "gone.md", OriginalHash: hashA})
	assert.Equal(t, ActionSkip, st.Action)
}

func TestClassify_RemovedUpstream(t *testing.T) {
	// Pristine local copy follows the upstream removal.
	st := Classify(Input{OriginalHash: hashA, CurrentHash: hashA})
	assert.Equal(t, ActionRemove, st.Action)

	// Customized local copy is preserved.
	st = Classify(Input{OriginalHash: hashA, CurrentHash: hashB})
	assert.Equal(t, ActionPreserve, st.Action)
	assert.True(t, st.IsCustomized)
}

func TestClassify_BothChanged_Merge(t *testing.T) {
	st := Classify(Input{OriginalHash: hashA, CurrentHash: hashB, UpstreamHash: hashC})
	assert.Equal(t, ActionMerge, st.Action)
	assert.True(t, st.IsConflict)
	assert.True(t, st.IsCustomized)
	assert.True(t, st.HasUpstreamChanges)
}

func TestClassify_CustomizedUpstreamUnchanged_Preserve(t *testing.T) {
	st := Classify(Input{OriginalHash: hashA, CurrentHash: hashB, UpstreamHash: hashA})
	assert.Equal(t, ActionPreserve, st.Action)
	assert.False(t, st.IsConflict)
}

func TestClassify_PristineUpstreamChanged_Update(t *testing.T) {
	st := Classify(Input{OriginalHash: hashA, CurrentHash: hashA, UpstreamHash: hashB})
	assert.Equal(t, ActionUpdate, st.Action)
	assert.False(t, st.IsCustomized)
}

func TestClassify_NothingChanged_Skip(t *testing.T) {
	st := Classify(Input{OriginalHash: hashA, CurrentHash: hashA, UpstreamHash: hashA})
	assert.Equal(t, ActionSkip, st.Action)
}

func TestClassify_AssumeCustomizedOverride(t *testing.T) {
	// Hashes agree, but the override forces the customized path.
	st := Classify(Input{OriginalHash: hashA, CurrentHash: hashA, UpstreamHash: hashB, AssumeCustomized: true})
	assert.Equal(t, ActionMerge, st.Action)

	st = Classify(Input{OriginalHash: hashA, CurrentHash: hashA, UpstreamHash: hashA, AssumeCustomized: true})
	assert.Equal(t, ActionPreserve, st.Action)
}

func TestClassify_NoBaseline_UpstreamCountsAsChanged(t *testing.T) {
	st := Classify(Input{CurrentHash: hashA, UpstreamHash: hashB})
	// No baseline: file is not provably customized, upstream is a change.
	assert.Equal(t, ActionUpdate, st.Action)
	assert.True(t, st.HasUpstreamChanges)
}

// TestClassify_TotalAndDeterministic walks every present/absent combination
// of the three hashes crossed with the override and checks that exactly one
// action results and repeated calls agree.
func TestClassify_TotalAndDeterministic(t *testing.T) {
	hashes := []string{"", hashA, hashB}
	for _, orig := range hashes {
		for _, cur := range hashes {
			for _, up := range hashes {
				for _, assume := range []bool{false, true} {
					in := Input{OriginalHash: orig, CurrentHash: cur, UpstreamHash: up, AssumeCustomized: assume}
					first := Classify(in)
					second := Classify(in)
					assert.Equal(t, first, second)
					assert.Contains(t,
						[]Action{ActionSkip, ActionAdd, ActionRemove, ActionPreserve, ActionUpdate, ActionMerge},
						first.Action)
					if first.IsConflict {
						assert.True(t, first.IsCustomized)
						assert.True(t, first.HasUpstreamChanges)
					}
				}
			}
		}
	}
}
