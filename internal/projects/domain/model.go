package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Project is a single portfolio entry owned by one user.
// JSON field names follow the wire format of the flat-file store so that lists
// written by older clients decode unchanged.
type Project struct {
	ID             string       `json:"id"`
	OwnerID        string       `json:"uid"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Technologies   Technologies `json:"technologies"`
	RepositoryLink string       `json:"github"`
	Status         Status       `json:"status,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// EffectiveStatus is the status shown for the record. Legacy records stored
// without a status display as finished.
func (p Project) EffectiveStatus() Status {
	if p.Status == "" {
		return StatusFinished
	}
	return p.Status
}

// Technologies is an ordered set of case-sensitive tokens.
type Technologies []string

// Contains reports whether tech is one of the tokens.
func (t Technologies) Contains(tech string) bool {
	for _, v := range t {
		if v == tech {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts both the array form and the comma-separated string
// some early clients persisted.
func (t *Technologies) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = SplitTechnologies(raw)
	return nil
}

// SplitTechnologies splits comma-separated source text into trimmed,
// non-empty tokens. Duplicates are kept; validation reports them.
func SplitTechnologies(src string) Technologies {
	parts := strings.Split(src, ",")
	out := make(Technologies, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Draft is the form-shaped input for creating or editing a record.
// Technologies holds the raw comma-separated source text.
type Draft struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Technologies   string `json:"technologies"`
	RepositoryLink string `json:"github"`
	Status         string `json:"status"`
}

// DraftFromProject renders an existing record back into an editable draft.
func DraftFromProject(p Project) Draft {
	return Draft{
		Title:          p.Title,
		Description:    p.Description,
		Technologies:   strings.Join(p.Technologies, ", "),
		RepositoryLink: p.RepositoryLink,
		Status:         string(p.Status),
	}
}

// Fields holds the normalized values of a draft that are copied onto a record.
type Fields struct {
	Title          string
	Description    string
	Technologies   Technologies
	RepositoryLink string
	Status         Status
}

// Normalize trims the draft and parses its status and technologies.
func (d Draft) Normalize() Fields {
	status, _ := ParseStatus(d.Status)
	return Fields{
		Title:          strings.TrimSpace(d.Title),
		Description:    strings.TrimSpace(d.Description),
		Technologies:   SplitTechnologies(d.Technologies),
		RepositoryLink: strings.TrimSpace(d.RepositoryLink),
		Status:         status,
	}
}

// Apply copies the editable fields onto p, leaving ID, OwnerID and CreatedAt untouched.
func (f Fields) Apply(p Project) Project {
	p.Title = f.Title
	p.Description = f.Description
	p.Technologies = append(Technologies(nil), f.Technologies...)
	p.RepositoryLink = f.RepositoryLink
	p.Status = f.Status
	return p
}

// Clone returns a deep copy of the list.
func Clone(list []Project) []Project {
	out := make([]Project, len(list))
	for i, p := range list {
		p.Technologies = append(Technologies(nil), p.Technologies...)
		out[i] = p
	}
	return out
}
