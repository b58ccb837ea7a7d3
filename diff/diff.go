// Package diff turns raw unified diff text into the file/chunk/change
// structure the review pipeline works on, and filters files against
// glob exclusion patterns.
package diff

// ChangeKind classifies a single line of a diff chunk.
type ChangeKind string

const (
	KindAdd     ChangeKind = "add"
	KindDelete  ChangeKind = "delete"
	KindContext ChangeKind = "context"
)

// File is one file entry of a parsed diff. Path is the destination
// path; it is empty when the file was deleted.
type File struct {
	Path   string
	Chunks []Chunk
}

// Deleted reports whether the file has no destination path.
func (f *File) Deleted() bool {
	return f.Path == ""
}

// Chunk is one hunk of a diff: the raw "@@" header line plus the
// ordered changes it contains.
type Chunk struct {
	Header  string
	Changes []Change
}

// Change is a single diff line. OldLine and NewLine hold the line's
// position in the old and new file version; a zero value means the
// line does not exist on that side (added lines have no OldLine,
// deleted lines have no NewLine). Content is the line text without
// the leading diff marker or trailing newline.
type Change struct {
	Kind    ChangeKind
	OldLine int
	NewLine int
	Content string
}

// ResolvedLine returns the line number a review comment for this
// change anchors to: the new-file line number when present, otherwise
// the old-file line number. Deleted lines only exist in the old file,
// so the fallback is what lets comments target them at all.
func (c Change) ResolvedLine() int {
	if c.NewLine != 0 {
		return c.NewLine
	}
	return c.OldLine
}

// Marker returns the unified-diff prefix character for the change.
func (c Change) Marker() string {
	switch c.Kind {
	case KindAdd:
		return "+"
	case KindDelete:
		return "-"
	default:
		return " "
	}
}
