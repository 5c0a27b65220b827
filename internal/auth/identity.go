// Package auth carries the logged-in identity between the identity provider,
// HTTP middleware and project sessions.
package auth

import "strings"

// Identity is the logged-in user as reported by the identity provider.
type Identity struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Event is one session change. A nil Identity means the user logged out.
type Event struct {
	Identity *Identity
}

// LoggedIn reports whether the event starts a session.
func (e Event) LoggedIn() bool {
	return e.Identity != nil && strings.TrimSpace(e.Identity.UserID) != ""
}

// Login builds a login event.
func Login(id Identity) Event {
	return Event{Identity: &id}
}

// Logout builds a logout event.
func Logout() Event {
	return Event{}
}

// StaticProvider emits a fixed identity once, for clients that authenticate
// from flags or environment rather than an interactive sign-in.
type StaticProvider struct {
	identity *Identity
}

// NewStaticProvider returns a provider for id. An empty user id yields a
// provider that reports a logout.
func NewStaticProvider(id Identity) *StaticProvider {
	if strings.TrimSpace(id.UserID) == "" {
		return &StaticProvider{}
	}
	return &StaticProvider{identity: &id}
}

// Events returns a closed channel holding the single session event.
func (p *StaticProvider) Events() <-chan Event {
	ch := make(chan Event, 1)
	if p.identity != nil {
		ch <- Login(*p.identity)
	} else {
		ch <- Logout()
	}
	close(ch)
	return ch
}

// Current returns the identity, if any.
func (p *StaticProvider) Current() (Identity, bool) {
	if p.identity == nil {
		return Identity{}, false
	}
	return *p.identity, true
}
