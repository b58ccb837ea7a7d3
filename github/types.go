// Package github provides the GitHub API client and event payload
// handling for the reviewer.
package github

// PRDetails is the pull request context assembled once per run from
// the event payload and the fetched record. It is read-only after
// creation and shared by every pipeline stage.
type PRDetails struct {
	Owner       string
	Repo        string
	Number      int
	Title       string
	Description string
}

// PullRequest is the subset of the fetched pull request record the
// reviewer uses.
type PullRequest struct {
	Number  int
	Title   string
	Body    string
	BaseRef string
	HeadSHA string
}

// ReviewComment is one inline comment of a batched review, anchored to
// a specific line of a file in the diff.
type ReviewComment struct {
	Path string
	Line int
	Body string
}

// Review identifies a submitted pull request review.
type Review struct {
	ID      int64
	HTMLURL string
}
