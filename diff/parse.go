package diff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// Parse converts raw unified diff text into File entries with per-line
// old/new numbering. Binary files and mode-only changes come back with
// no chunks. Deleted files come back with an empty Path.
func Parse(text string) ([]File, error) {
	gitFiles, _, err := gitdiff.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	files := make([]File, 0, len(gitFiles))
	for _, gf := range gitFiles {
		path := gf.NewName
		if gf.IsDelete {
			path = ""
		}

		file := File{Path: path}
		for _, frag := range gf.TextFragments {
			file.Chunks = append(file.Chunks, newChunk(frag))
		}
		files = append(files, file)
	}
	return files, nil
}

func newChunk(frag *gitdiff.TextFragment) Chunk {
	chunk := Chunk{
		Header:  hunkHeader(frag),
		Changes: make([]Change, 0, len(frag.Lines)),
	}

	oldLine := int(frag.OldPosition)
	newLine := int(frag.NewPosition)
	for _, line := range frag.Lines {
		content := strings.TrimSuffix(line.Line, "\n")
		switch line.Op {
		case gitdiff.OpAdd:
			chunk.Changes = append(chunk.Changes, Change{Kind: KindAdd, NewLine: newLine, Content: content})
			newLine++
		case gitdiff.OpDelete:
			chunk.Changes = append(chunk.Changes, Change{Kind: KindDelete, OldLine: oldLine, Content: content})
			oldLine++
		case gitdiff.OpContext:
			chunk.Changes = append(chunk.Changes, Change{Kind: KindContext, OldLine: oldLine, NewLine: newLine, Content: content})
			oldLine++
			newLine++
		}
	}
	return chunk
}

func hunkHeader(frag *gitdiff.TextFragment) string {
	var sb strings.Builder
	sb.WriteString("@@ -")
	sb.WriteString(formatRange(frag.OldPosition, frag.OldLines))
	sb.WriteString(" +")
	sb.WriteString(formatRange(frag.NewPosition, frag.NewLines))
	sb.WriteString(" @@")
	if frag.Comment != "" {
		sb.WriteString(" ")
		sb.WriteString(frag.Comment)
	}
	return sb.String()
}

// formatRange renders one side of a hunk range the way git does,
// omitting the length when it is 1.
func formatRange(pos, length int64) string {
	if length == 1 {
		return strconv.FormatInt(pos, 10)
	}
	return strconv.FormatInt(pos, 10) + "," + strconv.FormatInt(length, 10)
}
