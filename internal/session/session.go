// ABOUTME: Authenticated session contract shown before note management.
// ABOUTME: Static sessions cover backends that authenticate out of band.

package session

import (
	"context"
	"errors"
	"sync/atomic"
)

var ErrSignedOut = errors.New("session signed out")

// Session exposes the signed-in user's display label and a sign-out action.
type Session interface {
	Username() (string, error)
	SignOut(ctx context.Context) error
}

// Static is a session whose identity comes from configuration, as with a
// bearer token or a local database. Signing out only forgets the label.
type Static struct {
	name      string
	signedOut atomic.Bool
}

func NewStatic(name string) *Static {
	return &Static{name: name}
}

func (s *Static) Username() (string, error) {
	if s.signedOut.Load() {
		return "", ErrSignedOut
	}
	return s.name, nil
}

func (s *Static) SignOut(ctx context.Context) error {
	s.signedOut.Store(true)
	return nil
}
