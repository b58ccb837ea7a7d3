package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v66/github"
)

// Client provides the GitHub API operations the reviewer needs.
type Client struct {
	gh *gh.Client
}

// NewClient creates a client authenticated with a personal or Actions
// token.
func NewClient(token string) *Client {
	return &Client{gh: gh.NewClient(nil).WithAuthToken(token)}
}

// NewAppClient creates a client authenticated as a GitHub App
// installation, so reviews are posted under the App's identity. The
// privateKey is the PEM-encoded private key of the App.
func NewAppClient(appID, installationID int64, privateKey []byte) (*Client, error) {
	transport, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create installation transport: %w", err)
	}
	return &Client{gh: gh.NewClient(&http.Client{Transport: transport})}, nil
}

// NewClientWithHTTPClient creates a client with a custom http.Client
// and base URL, allowing tests to inject an httptest server. The base
// URL must end with a slash.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	client := gh.NewClient(httpClient)
	client.BaseURL = u
	return &Client{gh: client}, nil
}

// FetchPullRequest fetches the current pull request record.
func (c *Client) FetchPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request %s/%s#%d: %w", owner, repo, number, err)
	}

	return &PullRequest{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		BaseRef: pr.GetBase().GetRef(),
		HeadSHA: pr.GetHead().GetSHA(),
	}, nil
}

// FetchDiff fetches the full diff of a pull request as raw text.
func (c *Client) FetchDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	diff, _, err := c.gh.PullRequests.GetRaw(ctx, owner, repo, number, gh.RawOptions{Type: gh.Diff})
	if err != nil {
		return "", fmt.Errorf("failed to fetch diff for %s/%s#%d: %w", owner, repo, number, err)
	}
	return diff, nil
}

// CompareDiff fetches the diff between two commits as raw text.
func (c *Client) CompareDiff(ctx context.Context, owner, repo, base, head string) (string, error) {
	diff, _, err := c.gh.Repositories.CompareCommitsRaw(ctx, owner, repo, base, head, gh.RawOptions{Type: gh.Diff})
	if err != nil {
		return "", fmt.Errorf("failed to compare %s...%s in %s/%s: %w", base, head, owner, repo, err)
	}
	return diff, nil
}

// CreateReview submits all comments on a pull request as a single
// COMMENT review.
func (c *Client) CreateReview(ctx context.Context, owner, repo string, number int, comments []ReviewComment) (*Review, error) {
	draft := make([]*gh.DraftReviewComment, 0, len(comments))
	for _, comment := range comments {
		draft = append(draft, &gh.DraftReviewComment{
			Path: gh.String(comment.Path),
			Line: gh.Int(comment.Line),
			Body: gh.String(comment.Body),
		})
	}

	review, _, err := c.gh.PullRequests.CreateReview(ctx, owner, repo, number, &gh.PullRequestReviewRequest{
		Event:    gh.String("COMMENT"),
		Comments: draft,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create review on %s/%s#%d: %w", owner, repo, number, err)
	}

	return &Review{ID: review.GetID(), HTMLURL: review.GetHTMLURL()}, nil
}

// FetchFileContent fetches the decoded content of a repository file at
// the given ref. Returns an empty string when the file does not exist.
func (c *Client) FetchFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	content, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, &gh.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to fetch %s from %s/%s: %w", path, owner, repo, err)
	}
	if content == nil {
		// Path resolved to a directory.
		return "", nil
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode %s from %s/%s: %w", path, owner, repo, err)
	}
	return decoded, nil
}
