package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type fakeFetcher struct {
	content string
	err     error

	path string
	ref  string
}

func (f *fakeFetcher) FetchFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	f.path = path
	f.ref = ref
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func TestParseRepoConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, c *RepoConfig)
	}{
		{
			name:    "exclude and instructions",
			content: "exclude:\n  - vendor/**\n  - \"*.gen.go\"\ninstructions: Focus on error handling",
			check: func(t *testing.T, c *RepoConfig) {
				if len(c.Exclude) != 2 {
					t.Fatalf("Exclude length = %d, want 2", len(c.Exclude))
				}
				if c.Exclude[0] != "vendor/**" {
					t.Errorf("Exclude[0] = %q, want vendor/**", c.Exclude[0])
				}
				if c.Instructions != "Focus on error handling" {
					t.Errorf("Instructions = %q, want 'Focus on error handling'", c.Instructions)
				}
			},
		},
		{
			name:    "exclude only",
			content: "exclude:\n  - docs/**",
			check: func(t *testing.T, c *RepoConfig) {
				if len(c.Exclude) != 1 || c.Exclude[0] != "docs/**" {
					t.Errorf("Exclude = %v, want [docs/**]", c.Exclude)
				}
				if c.Instructions != "" {
					t.Errorf("Instructions = %q, want empty", c.Instructions)
				}
			},
		},
		{
			name:    "empty content yields defaults",
			content: "",
			check: func(t *testing.T, c *RepoConfig) {
				if len(c.Exclude) != 0 || c.Instructions != "" {
					t.Errorf("config = %+v, want defaults", c)
				}
			},
		},
		{
			name:    "invalid YAML",
			content: "exclude: [unclosed",
			wantErr: true,
		},
		{
			name:    "scalar content",
			content: "just some text",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := ParseRepoConfig([]byte(tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepoConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.check != nil {
				tt.check(t, config)
			}
		})
	}
}

func TestLoaderLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file yields defaults", func(t *testing.T) {
		fetcher := &fakeFetcher{content: ""}
		config, err := NewLoader(fetcher).Load(ctx, "octo", "repo", "main")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(config.Exclude) != 0 || config.Instructions != "" {
			t.Errorf("config = %+v, want defaults", config)
		}
		if fetcher.path != DefaultRepoConfigPath {
			t.Errorf("fetched path = %q, want %q", fetcher.path, DefaultRepoConfigPath)
		}
		if fetcher.ref != "main" {
			t.Errorf("fetched ref = %q, want main", fetcher.ref)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		fetcher := &fakeFetcher{content: "exclude:\n  - vendor/**\ninstructions: Keep it short"}
		config, err := NewLoader(fetcher).Load(ctx, "octo", "repo", "main")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(config.Exclude) != 1 || config.Exclude[0] != "vendor/**" {
			t.Errorf("Exclude = %v, want [vendor/**]", config.Exclude)
		}
		if config.Instructions != "Keep it short" {
			t.Errorf("Instructions = %q, want 'Keep it short'", config.Instructions)
		}
	})

	t.Run("fetch error wraps", func(t *testing.T) {
		fetcher := &fakeFetcher{err: fmt.Errorf("boom")}
		_, err := NewLoader(fetcher).Load(ctx, "octo", "repo", "main")
		if err == nil {
			t.Fatal("Load() error = nil, want error")
		}
		if !strings.Contains(err.Error(), "failed to fetch config") {
			t.Errorf("Load() error = %v, want fetch wrap", err)
		}
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			t.Error("fetch failure should not be a *ParseError")
		}
	})

	t.Run("invalid file is a ParseError", func(t *testing.T) {
		fetcher := &fakeFetcher{content: "{{{"}
		_, err := NewLoader(fetcher).Load(ctx, "octo", "repo", "main")
		if err == nil {
			t.Fatal("Load() error = nil, want error")
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Load() error = %v, want *ParseError", err)
		}
		if parseErr.Path != DefaultRepoConfigPath {
			t.Errorf("ParseError.Path = %q, want %q", parseErr.Path, DefaultRepoConfigPath)
		}
	})
}

func TestParseError(t *testing.T) {
	t.Run("message includes path and underlying error", func(t *testing.T) {
		underlying := fmt.Errorf("yaml: line 1: could not find expected ':'")
		parseErr := &ParseError{
			Path: ".github/hunkwise.yml",
			Err:  underlying,
		}

		errMsg := parseErr.Error()
		if errMsg != "invalid config at .github/hunkwise.yml: yaml: line 1: could not find expected ':'" {
			t.Errorf("Error() = %q, want message containing path and underlying error", errMsg)
		}
	})

	t.Run("errors.Is works with Unwrap", func(t *testing.T) {
		underlying := fmt.Errorf("some parse error")
		parseErr := &ParseError{
			Path: ".github/hunkwise.yml",
			Err:  underlying,
		}

		if parseErr.Unwrap() != underlying {
			t.Error("Unwrap() should return underlying error")
		}
	})
}
