// Package review drives the pull request review pipeline: prompt
// construction, model calls, and mapping model suggestions onto
// inline review comments.
package review

import (
	"fmt"
	"strings"

	"github.com/hunkwise/hunkwise/diff"
	"github.com/hunkwise/hunkwise/github"
)

const promptInstructions = `Your task is to review pull requests. Instructions:
- Provide the response in following JSON format: [{"lineNumber": <line_number>, "reviewComment": "<review comment>"}]
- Do not give positive comments or compliments.
- Do not comment on minor style or formatting nitpicks.
- Provide comments and suggestions ONLY if there is something to improve, otherwise return an empty array.
- Write the comment in GitHub Markdown format. When proposing a concrete code change, use a ` + "```suggestion```" + ` block so the author can apply it with one click.
- Use the given description only for the overall context and only comment the code.
- IMPORTANT: NEVER suggest adding comments to the code.
- Each "lineNumber" must be the number prefixed to the corresponding line in the diff below.`

// BuildPrompt renders the review prompt for one chunk of one file.
// The optional instructions come from the repository's own config and
// are appended to the fixed instruction block.
func BuildPrompt(pr *github.PRDetails, file *diff.File, chunk *diff.Chunk, instructions string) string {
	description := pr.Description
	if description == "" {
		description = "(No description provided)"
	}

	var b strings.Builder
	b.WriteString(promptInstructions)
	if instructions != "" {
		b.WriteString("\n\nAdditional instructions from the repository maintainers:\n")
		b.WriteString(instructions)
	}

	fmt.Fprintf(&b, "\n\nReview the following code diff in the file %q and take the pull request title and description into account when writing the response.\n", file.Path)
	fmt.Fprintf(&b, "\nPull request title: %s\n", pr.Title)
	b.WriteString("Pull request description:\n\n---\n")
	b.WriteString(description)
	b.WriteString("\n---\n\nGit diff to review:\n\n```diff\n")
	b.WriteString(chunk.Header)
	b.WriteString("\n")
	for _, change := range chunk.Changes {
		fmt.Fprintf(&b, "%d %s%s\n", change.ResolvedLine(), change.Marker(), change.Content)
	}
	b.WriteString("```\n")

	return b.String()
}
