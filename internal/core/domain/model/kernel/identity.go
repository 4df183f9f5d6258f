package kernel

import (
	"errors"
	"strings"
)

// ErrUnauthenticated is returned by operations that need a signed-in caller.
var ErrUnauthenticated = errors.New("caller is not authenticated")

// Identity is what the auth collaborator knows about the caller: an opaque user id and
// whether that id was authenticated. Anonymous callers carry an empty, unauthenticated
// identity.
type Identity struct {
	id            string
	authenticated bool
}

// NewIdentity returns an authenticated identity, or Anonymous when id is blank.
func NewIdentity(id string) Identity {
	id = strings.TrimSpace(id)
	if id == "" {
		return Anonymous()
	}
	return Identity{id: id, authenticated: true}
}

func Anonymous() Identity {
	return Identity{}
}

func (i Identity) ID() string {
	return i.id
}

func (i Identity) IsAuthenticated() bool {
	return i.authenticated && i.id != ""
}

// Require returns ErrUnauthenticated for anonymous identities.
func (i Identity) Require() error {
	if !i.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return nil
}
