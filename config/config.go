// Package config handles action inputs and repository configuration
// for the reviewer.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sethvargo/go-githubactions"
)

// DefaultModel is used when the anthropic_api_model input is unset.
const DefaultModel = "claude-sonnet-4-5-20250929"

// Config holds the effective settings for one run, assembled from the
// action's inputs and the runner environment.
type Config struct {
	GitHubToken     string
	AnthropicAPIKey string
	Model           string
	// Exclude is the glob pattern list from the exclude input, one
	// entry per comma-separated value with whitespace trimmed.
	Exclude []string

	EventPath string
	EventName string

	// GitHub App credentials, used instead of GitHubToken when set.
	AppID             int64
	AppInstallationID int64
	AppPrivateKey     string
}

// UseAppAuth reports whether the run authenticates as a GitHub App
// installation rather than with a token.
func (c *Config) UseAppAuth() bool {
	return c.AppID != 0
}

// FromAction reads and validates the run configuration from the
// action's inputs and the runner environment.
func FromAction(action *githubactions.Action) (*Config, error) {
	cfg := &Config{
		GitHubToken:     action.GetInput("github_token"),
		AnthropicAPIKey: action.GetInput("anthropic_api_key"),
		Model:           action.GetInput("anthropic_api_model"),
		Exclude:         SplitPatterns(action.GetInput("exclude")),
		EventPath:       os.Getenv("GITHUB_EVENT_PATH"),
		EventName:       os.Getenv("GITHUB_EVENT_NAME"),
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	if err := readAppAuth(action, cfg); err != nil {
		return nil, err
	}

	if cfg.AnthropicAPIKey == "" {
		return nil, errors.New("anthropic_api_key input is required")
	}
	if cfg.GitHubToken == "" && !cfg.UseAppAuth() {
		return nil, errors.New("github_token input is required when GitHub App credentials are not set")
	}
	if cfg.EventPath == "" {
		return nil, errors.New("GITHUB_EVENT_PATH is required")
	}

	return cfg, nil
}

func readAppAuth(action *githubactions.Action, cfg *Config) error {
	appID := action.GetInput("app_id")
	installationID := action.GetInput("app_installation_id")
	privateKey := action.GetInput("app_private_key")

	if appID == "" && installationID == "" && privateKey == "" {
		return nil
	}
	if appID == "" || installationID == "" || privateKey == "" {
		return errors.New("app_id, app_installation_id and app_private_key must be set together")
	}

	id, err := strconv.ParseInt(appID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid app_id: %w", err)
	}
	instID, err := strconv.ParseInt(installationID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid app_installation_id: %w", err)
	}

	cfg.AppID = id
	cfg.AppInstallationID = instID
	cfg.AppPrivateKey = privateKey
	return nil
}

// SplitPatterns splits a comma-separated pattern list, trimming
// whitespace around each entry and dropping empty ones.
func SplitPatterns(input string) []string {
	var patterns []string
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		patterns = append(patterns, part)
	}
	return patterns
}
