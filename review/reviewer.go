package review

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hunkwise/hunkwise/config"
	"github.com/hunkwise/hunkwise/diff"
	"github.com/hunkwise/hunkwise/github"
)

// Event names this action reacts to. Anything else is skipped.
const (
	eventPullRequest       = "pull_request"
	eventPullRequestTarget = "pull_request_target"
)

// GitHubClient is the part of the platform client the reviewer needs.
type GitHubClient interface {
	FetchPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	FetchDiff(ctx context.Context, owner, repo string, number int) (string, error)
	CompareDiff(ctx context.Context, owner, repo, base, head string) (string, error)
	CreateReview(ctx context.Context, owner, repo string, number int, comments []github.ReviewComment) (*github.Review, error)
}

// ModelClient turns one prompt into review suggestions.
type ModelClient interface {
	Analyze(ctx context.Context, prompt string) ([]Suggestion, error)
}

// Reviewer runs one review end to end for one triggering event.
type Reviewer struct {
	gh     GitHubClient
	model  ModelClient
	loader *config.Loader
	cfg    *config.Config
	logger *slog.Logger
}

// NewReviewer creates a reviewer. The loader may be nil, in which case
// repository-level configuration is not consulted.
func NewReviewer(gh GitHubClient, model ModelClient, loader *config.Loader, cfg *config.Config, logger *slog.Logger) *Reviewer {
	return &Reviewer{
		gh:     gh,
		model:  model,
		loader: loader,
		cfg:    cfg,
		logger: logger,
	}
}

// Result summarizes a finished run.
type Result struct {
	// SkippedReason is set when the run ended early without reviewing
	// anything, for example on an unsupported event action.
	SkippedReason  string
	FilesReviewed  int
	ChunksAnalyzed int
	CommentCount   int
	ReviewURL      string
}

// Run executes the review pipeline: load the event payload, fetch the
// pull request, obtain the diff for the event's action, filter files,
// analyze each chunk, and submit the accumulated comments as a single
// review. Transport failures at any stage abort the run; an unusable
// model reply only means fewer comments.
func (r *Reviewer) Run(ctx context.Context) (*Result, error) {
	if !supportedEvent(r.cfg.EventName) {
		r.logger.Info("unsupported event, skipping", "event", r.cfg.EventName)
		return &Result{SkippedReason: "unsupported event"}, nil
	}

	event, err := github.LoadEvent(r.cfg.EventPath)
	if err != nil {
		return nil, err
	}

	owner := event.Owner()
	repo := event.Repo()
	number := event.PRNumber()

	r.logger.Info("starting review",
		"owner", owner,
		"repo", repo,
		"pr", number,
		"action", event.Action,
	)

	pr, err := r.gh.FetchPullRequest(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	prDetails := &github.PRDetails{
		Owner:       owner,
		Repo:        repo,
		Number:      number,
		Title:       pr.Title,
		Description: pr.Body,
	}

	diffText, result, err := r.fetchDiffForAction(ctx, event, owner, repo, number)
	if err != nil {
		return nil, err
	}
	if result != nil {
		return result, nil
	}
	if strings.TrimSpace(diffText) == "" {
		r.logger.Info("no diff found, nothing to review")
		return &Result{SkippedReason: "no diff found"}, nil
	}

	patterns, instructions, err := r.loadRepoSettings(ctx, owner, repo, pr.BaseRef)
	if err != nil {
		return nil, err
	}

	files, err := diff.Parse(diffText)
	if err != nil {
		return nil, err
	}
	files = diff.Filter(files, patterns)
	r.logger.Info("parsed diff", "files", len(files), "exclude_patterns", len(patterns))

	var comments []github.ReviewComment
	chunksAnalyzed := 0
	for i := range files {
		file := &files[i]
		for j := range file.Chunks {
			chunk := &file.Chunks[j]
			if len(chunk.Changes) == 0 {
				continue
			}

			prompt := BuildPrompt(prDetails, file, chunk, instructions)
			suggestions, err := r.model.Analyze(ctx, prompt)
			if err != nil {
				return nil, err
			}
			chunksAnalyzed++
			comments = append(comments, MapComments(file, suggestions)...)
		}
	}

	if len(comments) == 0 {
		r.logger.Info("review complete, no comments to submit",
			"files", len(files),
			"chunks", chunksAnalyzed,
		)
		return &Result{FilesReviewed: len(files), ChunksAnalyzed: chunksAnalyzed}, nil
	}

	review, err := r.gh.CreateReview(ctx, owner, repo, number, comments)
	if err != nil {
		return nil, err
	}

	r.logger.Info("review submitted",
		"comments", len(comments),
		"url", review.HTMLURL,
	)

	return &Result{
		FilesReviewed:  len(files),
		ChunksAnalyzed: chunksAnalyzed,
		CommentCount:   len(comments),
		ReviewURL:      review.HTMLURL,
	}, nil
}

// loadRepoSettings merges the action's exclude patterns with the
// repository's own config, when a loader is wired in. A missing or
// unreachable config file falls back to the action inputs alone; a
// present but invalid file aborts the run.
func (r *Reviewer) loadRepoSettings(ctx context.Context, owner, repo, ref string) ([]string, string, error) {
	patterns := append([]string(nil), r.cfg.Exclude...)
	if r.loader == nil {
		return patterns, "", nil
	}

	repoCfg, err := r.loader.Load(ctx, owner, repo, ref)
	if err != nil {
		var parseErr *config.ParseError
		if errors.As(err, &parseErr) {
			r.logger.Error("invalid repository config",
				"path", parseErr.Path,
				"error", parseErr.Err,
			)
			return nil, "", err
		}
		r.logger.Warn("failed to load repository config, using defaults", "error", err)
		repoCfg = config.DefaultRepoConfig()
	}

	patterns = append(patterns, repoCfg.Exclude...)
	return patterns, repoCfg.Instructions, nil
}

// fetchDiffForAction obtains the diff text for the event's action. For
// newly opened pull requests that is the full PR diff; for pushed
// commits it is the diff between the payload's before and after SHAs
// so only the new changes get reviewed. Unrecognized actions end the
// run successfully with a skip result.
func (r *Reviewer) fetchDiffForAction(ctx context.Context, event *github.Event, owner, repo string, number int) (string, *Result, error) {
	switch event.Action {
	case github.ActionOpened:
		diffText, err := r.gh.FetchDiff(ctx, owner, repo, number)
		if err != nil {
			return "", nil, err
		}
		return diffText, nil, nil

	case github.ActionSynchronize:
		if event.Before == "" || event.After == "" {
			return "", nil, errors.New("synchronize event is missing before/after commit SHAs")
		}
		diffText, err := r.gh.CompareDiff(ctx, owner, repo, event.Before, event.After)
		if err != nil {
			return "", nil, err
		}
		return diffText, nil, nil

	default:
		r.logger.Info("unsupported event action, skipping", "action", event.Action)
		return "", &Result{SkippedReason: "unsupported event action"}, nil
	}
}

func supportedEvent(name string) bool {
	return name == "" || name == eventPullRequest || name == eventPullRequestTarget
}
