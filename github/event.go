package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Event actions that trigger a review.
const (
	ActionOpened      = "opened"
	ActionSynchronize = "synchronize"
)

// Event is the pull_request payload the Actions runner writes to
// GITHUB_EVENT_PATH, reduced to the fields the reviewer consumes.
// Before and After are only present on synchronize events and hold
// the pushed commit range.
type Event struct {
	Action      string            `json:"action"`
	Number      int               `json:"number"`
	Before      string            `json:"before"`
	After       string            `json:"after"`
	PullRequest *EventPullRequest `json:"pull_request"`
	Repository  *EventRepository  `json:"repository"`
}

// EventPullRequest carries the nested pull request number, used when
// the top-level number is absent.
type EventPullRequest struct {
	Number int `json:"number"`
}

// EventRepository identifies the repository the event belongs to.
type EventRepository struct {
	Name  string     `json:"name"`
	Owner *EventUser `json:"owner"`
}

// EventUser is the owning user or organization.
type EventUser struct {
	Login string `json:"login"`
}

// LoadEvent reads and validates the event payload file. The payload
// must identify a repository (owner and name) and a pull request
// number; anything else the pipeline needs is fetched from the API.
func LoadEvent(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}

	if event.Repository == nil || event.Repository.Owner == nil ||
		event.Repository.Owner.Login == "" || event.Repository.Name == "" {
		return nil, errors.New("event payload is missing repository owner or name")
	}
	if event.PRNumber() == 0 {
		return nil, errors.New("event payload is missing the pull request number")
	}

	return &event, nil
}

// Owner returns the repository owner login.
func (e *Event) Owner() string {
	return e.Repository.Owner.Login
}

// Repo returns the repository name.
func (e *Event) Repo() string {
	return e.Repository.Name
}

// PRNumber returns the pull request number, preferring the payload's
// top-level number over the nested pull request record.
func (e *Event) PRNumber() int {
	if e.Number != 0 {
		return e.Number
	}
	if e.PullRequest != nil {
		return e.PullRequest.Number
	}
	return 0
}
