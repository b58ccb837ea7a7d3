// Package main is the GitHub Action entrypoint for hunkwise.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sethvargo/go-githubactions"

	"github.com/hunkwise/hunkwise/config"
	"github.com/hunkwise/hunkwise/github"
	"github.com/hunkwise/hunkwise/review"
)

func main() {
	action := githubactions.New()
	logger := newLogger()

	cfg, err := config.FromAction(action)
	if err != nil {
		action.Fatalf("configuration error: %v", err)
	}

	ghClient, err := newGitHubClient(cfg)
	if err != nil {
		action.Fatalf("failed to create GitHub client: %v", err)
	}

	model := review.NewClaudeClient(cfg.AnthropicAPIKey, cfg.Model, logger)
	loader := config.NewLoader(ghClient)
	reviewer := review.NewReviewer(ghClient, model, loader, cfg, logger)

	result, err := reviewer.Run(context.Background())
	if err != nil {
		action.Fatalf("review failed: %v", err)
	}

	action.AddStepSummary(summaryMarkdown(result))
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("RUNNER_DEBUG") == "1" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func newGitHubClient(cfg *config.Config) (*github.Client, error) {
	if cfg.UseAppAuth() {
		return github.NewAppClient(cfg.AppID, cfg.AppInstallationID, []byte(cfg.AppPrivateKey))
	}
	return github.NewClient(cfg.GitHubToken), nil
}

func summaryMarkdown(result *review.Result) string {
	var b strings.Builder
	b.WriteString("## hunkwise review\n\n")

	if result.SkippedReason != "" {
		fmt.Fprintf(&b, "Skipped: %s.\n", result.SkippedReason)
		return b.String()
	}

	b.WriteString("| Files reviewed | Chunks analyzed | Comments |\n")
	b.WriteString("|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d |\n", result.FilesReviewed, result.ChunksAnalyzed, result.CommentCount)

	if result.ReviewURL != "" {
		fmt.Fprintf(&b, "\n[View the review](%s)\n", result.ReviewURL)
	} else {
		b.WriteString("\nNo comments were submitted.\n")
	}
	return b.String()
}
