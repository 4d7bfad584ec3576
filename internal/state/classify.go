package state

// Action is the update decision for a single tracked file.
type Action int

const (
	// ActionSkip means nothing to do.
	ActionSkip Action = iota
	// ActionAdd means the file does not exist locally and upstream provides it.
	ActionAdd
	// ActionRemove means upstream dropped the file and the local copy is pristine.
	ActionRemove
	// ActionPreserve means the user's customized copy is kept as-is.
	ActionPreserve
	// ActionUpdate means the local copy is pristine and upstream changed it.
	ActionUpdate
	// ActionMerge means both sides changed and a 3-way merge is needed.
	ActionMerge
)

// String returns the lowercase action name used in manifests and output.
func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionPreserve:
		return "preserve"
	case ActionUpdate:
		return "update"
	case ActionMerge:
		return "merge"
	default:
		return "skip"
	}
}

// TrackedFile is one entry of the tracking manifest.
type TrackedFile struct {
	Path         string `yaml:"path"`
	OriginalHash string `yaml:"original_hash,omitempty"`
	IsOfficial   bool   `yaml:"is_official"`
	Customized   bool   `yaml:"customized"`
}

// Input holds the three hashes (any may be empty, meaning absent) and the
// manual customization override for one file.
type Input struct {
	Path             string
	OriginalHash     string
	CurrentHash      string
	UpstreamHash     string
	AssumeCustomized bool
}

// FileState is the classification result for one file.
type FileState struct {
	Path               string
	OriginalHash       string
	CurrentHash        string
	UpstreamHash       string
	IsCustomized       bool
	HasUpstreamChanges bool
	IsConflict         bool
	Action             Action
}

// Classify maps an Input to exactly one Action. It is a pure function: no
// I/O, deterministic, total over every combination of present and absent
// hashes. Rules evaluate top to bottom, first match wins.
func Classify(in Input) FileState {
	st := FileState{
		Path:         in.Path,
		OriginalHash: in.OriginalHash,
		CurrentHash:  in.CurrentHash,
		UpstreamHash: in.UpstreamHash,
	}

	st.IsCustomized = in.AssumeCustomized ||
		(in.CurrentHash != "" && in.OriginalHash != "" && in.CurrentHash != in.OriginalHash)

	// Upstream changed relative to the recorded baseline. With no baseline,
	// any upstream content counts as a change.
	st.HasUpstreamChanges = (in.OriginalHash != "" && in.UpstreamHash != "" && in.OriginalHash != in.UpstreamHash) ||
		(in.OriginalHash == "" && in.UpstreamHash != "")

	switch {
	case in.CurrentHash == "" && in.UpstreamHash != "":
		st.Action = ActionAdd
	case in.CurrentHash == "":
		st.Action = ActionSkip
	case in.UpstreamHash == "":
		if st.IsCustomized {
			st.Action = ActionPreserve
		} else {
			st.Action = ActionRemove
		}
	case st.IsCustomized && st.HasUpstreamChanges:
		st.Action = ActionMerge
		st.IsConflict = true
	case st.IsCustomized:
		st.Action = ActionPreserve
	case st.HasUpstreamChanges:
		st.Action = ActionUpdate
	default:
		st.Action = ActionSkip
	}

	return st
}
