package review

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/hunkwise/hunkwise/diff"
	"github.com/hunkwise/hunkwise/github"
)

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []Suggestion
	}{
		{
			name:  "plain array",
			reply: `[{"lineNumber": 12, "reviewComment": "Check the error."}]`,
			want:  []Suggestion{{LineNumber: "12", ReviewComment: "Check the error."}},
		},
		{
			name:  "string line numbers",
			reply: `[{"lineNumber": "7", "reviewComment": "Unbounded allocation."}]`,
			want:  []Suggestion{{LineNumber: "7", ReviewComment: "Unbounded allocation."}},
		},
		{
			name:  "fenced json block",
			reply: "```json\n[{\"lineNumber\": 3, \"reviewComment\": \"Off by one.\"}]\n```",
			want:  []Suggestion{{LineNumber: "3", ReviewComment: "Off by one."}},
		},
		{
			name:  "bare fence around empty array",
			reply: "```\n[]\n```",
			want:  nil,
		},
		{
			name:  "empty reply",
			reply: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			reply: "  \n ",
			want:  nil,
		},
		{
			name:  "prose reply",
			reply: "The code looks fine to me.",
			want:  nil,
		},
		{
			name:  "object instead of array",
			reply: `{"reviews": [{"lineNumber": 5, "reviewComment": "x"}]}`,
			want:  nil,
		},
		{
			name:  "garbage line numbers survive array parsing",
			reply: `[{"lineNumber": 3.5, "reviewComment": "a"}, {"lineNumber": "abc", "reviewComment": "b"}]`,
			want: []Suggestion{
				{LineNumber: "3.5", ReviewComment: "a"},
				{LineNumber: "abc", ReviewComment: "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSuggestions(tt.reply)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSuggestions() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("suggestion %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLineNumberUnmarshal(t *testing.T) {
	tests := []struct {
		token string
		want  LineNumber
	}{
		{token: `42`, want: "42"},
		{token: `"42"`, want: "42"},
		{token: `3.5`, want: "3.5"},
		{token: `"abc"`, want: "abc"},
		{token: `null`, want: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			var n LineNumber
			if err := json.Unmarshal([]byte(tt.token), &n); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.token, err)
			}
			if n != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.token, n, tt.want)
			}
		})
	}
}

func TestMapComments(t *testing.T) {
	file := &diff.File{Path: "cmd/main.go"}

	tests := []struct {
		name        string
		file        *diff.File
		suggestions []Suggestion
		want        []github.ReviewComment
	}{
		{
			name: "valid suggestions",
			file: file,
			suggestions: []Suggestion{
				{LineNumber: "12", ReviewComment: "Handle the error."},
				{LineNumber: " 7 ", ReviewComment: "Close the body."},
			},
			want: []github.ReviewComment{
				{Path: "cmd/main.go", Line: 12, Body: "Handle the error."},
				{Path: "cmd/main.go", Line: 7, Body: "Close the body."},
			},
		},
		{
			name: "non integer lines dropped",
			file: file,
			suggestions: []Suggestion{
				{LineNumber: "abc", ReviewComment: "a"},
				{LineNumber: "", ReviewComment: "b"},
				{LineNumber: "3.5", ReviewComment: "c"},
				{LineNumber: "9", ReviewComment: "kept"},
			},
			want: []github.ReviewComment{
				{Path: "cmd/main.go", Line: 9, Body: "kept"},
			},
		},
		{
			name: "zero and negative lines dropped",
			file: file,
			suggestions: []Suggestion{
				{LineNumber: "0", ReviewComment: "a"},
				{LineNumber: "-4", ReviewComment: "b"},
			},
			want: nil,
		},
		{
			name: "deleted file yields nothing",
			file: &diff.File{},
			suggestions: []Suggestion{
				{LineNumber: "5", ReviewComment: "valid line, still dropped"},
			},
			want: nil,
		},
		{
			name: "duplicate lines kept in order",
			file: file,
			suggestions: []Suggestion{
				{LineNumber: "4", ReviewComment: "first"},
				{LineNumber: "4", ReviewComment: "second"},
			},
			want: []github.ReviewComment{
				{Path: "cmd/main.go", Line: 4, Body: "first"},
				{Path: "cmd/main.go", Line: 4, Body: "second"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapComments(tt.file, tt.suggestions)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MapComments() = %v, want %v", got, tt.want)
			}
		})
	}
}
