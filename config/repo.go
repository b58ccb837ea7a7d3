package config

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultRepoConfigPath is where the repository-level config lives.
const DefaultRepoConfigPath = ".github/hunkwise.yml"

// ParseError indicates the repository config file exists but contains
// invalid content, as opposed to being absent or unreachable.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid config at %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RepoConfig is the optional per-repository configuration.
type RepoConfig struct {
	// Exclude lists glob patterns for files to skip during review,
	// merged with the action's exclude input.
	Exclude []string `yaml:"exclude"`
	// Instructions is free text appended to every review prompt.
	Instructions string `yaml:"instructions"`
}

// DefaultRepoConfig returns the configuration used when the repository
// has no config file.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{}
}

// ParseRepoConfig parses YAML repository configuration.
func ParseRepoConfig(content []byte) (*RepoConfig, error) {
	config := DefaultRepoConfig()
	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

// FileFetcher fetches a repository file's contents, returning an empty
// string when the file does not exist.
type FileFetcher interface {
	FetchFileContent(ctx context.Context, owner, repo, path, ref string) (string, error)
}

// Loader loads repository configuration through the platform client.
type Loader struct {
	files FileFetcher
}

// NewLoader creates a config loader.
func NewLoader(files FileFetcher) *Loader {
	return &Loader{files: files}
}

// Load fetches and parses the repository config at the given ref. A
// missing file yields the defaults. An unreachable file is a plain
// error while an invalid one is a *ParseError, so callers can tell
// the two apart.
func (l *Loader) Load(ctx context.Context, owner, repo, ref string) (*RepoConfig, error) {
	content, err := l.files.FetchFileContent(ctx, owner, repo, DefaultRepoConfigPath, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch config: %w", err)
	}
	if content == "" {
		return DefaultRepoConfig(), nil
	}

	config, err := ParseRepoConfig([]byte(content))
	if err != nil {
		return nil, &ParseError{Path: DefaultRepoConfigPath, Err: err}
	}
	return config, nil
}
