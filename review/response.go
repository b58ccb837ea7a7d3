package review

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/hunkwise/hunkwise/diff"
	"github.com/hunkwise/hunkwise/github"
)

// Suggestion is one raw review suggestion as the model produced it,
// before any validation.
type Suggestion struct {
	LineNumber    LineNumber `json:"lineNumber"`
	ReviewComment string     `json:"reviewComment"`
}

// LineNumber holds a suggestion's line reference as text. Models emit
// it as either a JSON number or a string, so it unmarshals from both
// and keeps the raw token for later validation.
type LineNumber string

func (n *LineNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = LineNumber(s)
		return nil
	}
	*n = LineNumber(string(data))
	return nil
}

// ParseSuggestions extracts review suggestions from the model's reply.
// A reply that is empty or not a JSON array yields no suggestions and
// no error; the model simply had nothing usable to say.
func ParseSuggestions(reply string) []Suggestion {
	cleaned := cleanReply(reply)
	if cleaned == "" {
		return nil
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(cleaned), &suggestions); err != nil {
		return nil
	}
	return suggestions
}

// cleanReply strips the markdown code fences the model sometimes wraps
// around its JSON.
func cleanReply(reply string) string {
	reply = strings.TrimSpace(reply)

	if strings.HasPrefix(reply, "```json") {
		reply = strings.TrimPrefix(reply, "```json")
	} else if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```")
	}
	reply = strings.TrimSuffix(reply, "```")

	return strings.TrimSpace(reply)
}

// MapComments converts raw suggestions for one file into review
// comments. Suggestions for deleted files and suggestions whose line
// number does not parse as a positive integer are dropped silently.
// Duplicate lines are kept; deduplication is not this layer's job.
func MapComments(file *diff.File, suggestions []Suggestion) []github.ReviewComment {
	if file.Deleted() {
		return nil
	}

	var comments []github.ReviewComment
	for _, s := range suggestions {
		line, err := strconv.Atoi(strings.TrimSpace(string(s.LineNumber)))
		if err != nil || line <= 0 {
			continue
		}
		comments = append(comments, github.ReviewComment{
			Path: file.Path,
			Line: line,
			Body: s.ReviewComment,
		})
	}
	return comments
}
