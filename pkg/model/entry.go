package model

// 🏷️ EntryKind distinguishes directory records from file records.
type EntryKind string

const (
	KindDir  EntryKind = "dir"
	KindFile EntryKind = "file"
)

// 🎯 Action is the closed set of per-item dispositions Robocopy reports.
// Tokens the parser does not recognize map to ActionUnknown rather than
// being dropped.
type Action string

const (
	ActionNew      Action = "New"
	ActionSame     Action = "Same"
	ActionChanged  Action = "Changed"
	ActionTweaked  Action = "Tweaked"
	ActionOlder    Action = "Older"
	ActionNewer    Action = "Newer"
	ActionExtra    Action = "Extra"
	ActionMismatch Action = "Mismatch"
	ActionFailed   Action = "Failed"
	ActionLonely   Action = "Lonely"
	ActionUnknown  Action = "Unknown"
)

// 📄 Entry is one per-path record from the log body, in source order.
// SizeBytes is set for files only. ErrorCode and ErrorMessage are set
// for Failed entries when the ERROR fragment parses.
type Entry struct {
	Kind         EntryKind `json:"kind" yaml:"kind"`
	Action       Action    `json:"action" yaml:"action"`
	Path         string    `json:"path" yaml:"path"`
	SizeBytes    *int64    `json:"size_bytes,omitempty" yaml:"size_bytes,omitempty"`
	ErrorCode    *int      `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}
