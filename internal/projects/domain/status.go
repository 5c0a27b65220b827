package domain

import (
	"encoding/json"
	"strings"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusFinished   Status = "Finished"
	StatusInProgress Status = "InProgress"
)

// legacyStatuses maps labels written by older clients onto canonical values.
var legacyStatuses = map[string]Status{
	"finished":    StatusFinished,
	"finalizado":  StatusFinished,
	"inprogress":  StatusInProgress,
	"in progress": StatusInProgress,
	"en proceso":  StatusInProgress,
}

// ParseStatus resolves s to a canonical status. The second result is false
// when s is empty or unknown, in which case s is returned unchanged.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	if st, ok := legacyStatuses[strings.ToLower(s)]; ok {
		return st, true
	}
	return Status(s), false
}

// Valid reports whether s is one of the canonical statuses.
func (s Status) Valid() bool {
	return s == StatusFinished || s == StatusInProgress
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s, _ = ParseStatus(raw)
	return nil
}
