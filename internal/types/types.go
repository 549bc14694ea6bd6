// Package types defines every cross‑package data structure used by the scanfiles CLI.
package types

const (
	EntryTypeFile      = "file"
	EntryTypeDirectory = "directory"

	CommandScan     = "scan"
	CommandPatterns = "patterns"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"

	MarkerStyleText  = "text"
	MarkerStyleEmoji = "emoji"
)

// Disposition is the classifier's verdict for a single entry.
type Disposition string

const (
	// DispositionShowFull renders the entry and, for directories, recurses into children.
	DispositionShowFull Disposition = "show_full"
	// DispositionShowCollapsed renders the entry's name only and never recurses.
	DispositionShowCollapsed Disposition = "show_collapsed"
	// DispositionHide omits the entry from output entirely.
	DispositionHide Disposition = "hide"
)

// Entry is one filesystem node visited during traversal. Entries are
// transient: produced by a directory listing, classified, rendered, and
// discarded.
type Entry struct {
	Name         string
	AbsolutePath string
	RelativePath string
	Type         string
	Depth        int
}

// IsDirectory reports whether the entry is a directory.
func (entry Entry) IsDirectory() bool {
	return entry.Type == EntryTypeDirectory
}

// Note values attached to a RenderLine when traversal could not proceed
// normally beneath the rendered entry.
const (
	// NoteUnreadable marks a directory whose children could not be listed.
	NoteUnreadable = "unreadable"
	// NoteDepthLimit marks a branch truncated by the maximum-depth guard.
	NoteDepthLimit = "depth limit"
)

// RenderLine is one output record of a scan: the entry's depth, type,
// disposition, display name, and an optional traversal note.
type RenderLine struct {
	Depth       int         `json:"depth" xml:"depth,attr"`
	Type        string      `json:"type" xml:"type,attr"`
	Disposition Disposition `json:"disposition" xml:"disposition,attr"`
	Name        string      `json:"name" xml:"name"`
	Note        string      `json:"note,omitempty" xml:"note,attr,omitempty"`
}

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}
