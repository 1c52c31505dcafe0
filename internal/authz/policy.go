// Package authz holds the pure authorization decisions. Handlers resolve a
// Principal through the auth middleware and ask these functions; nothing here
// touches the database or the request.
package authz

import "github.com/nexgenbattles/tournament-api/internal/domain"

// CanCreateEvent allows any authenticated local user to create an event and
// become its host. Earlier revisions of the platform restricted creation to
// admins; self-service hosting is the settled policy.
func CanCreateEvent(p domain.Principal) bool {
	return p.UserID != 0
}

// CanEditEvent permits the event's host and admins.
func CanEditEvent(p domain.Principal, ev domain.Event) bool {
	return p.UserID == ev.HostID || p.Role == domain.RoleAdmin
}

// ListScope describes which events a listing request may see.
type ListScope struct {
	All    bool
	HostID int64
}

// ScopeForListing gives admins the full event list and everyone else only
// the events they host. Public unauthenticated browsing goes through a
// separate open endpoint and never consults this.
func ScopeForListing(p domain.Principal) ListScope {
	if p.Role == domain.RoleAdmin {
		return ListScope{All: true}
	}
	return ListScope{HostID: p.UserID}
}

// CanRegisterParticipant and CanViewParticipants require authentication
// only; any local user may register a team or inspect an event's roster.
func CanRegisterParticipant(p domain.Principal) bool {
	return p.UserID != 0
}

func CanViewParticipants(p domain.Principal) bool {
	return p.UserID != 0
}
