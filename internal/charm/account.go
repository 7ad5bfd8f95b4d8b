package charm

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/charm/client"
	charmproto "github.com/charmbracelet/charm/proto"

	"github.com/harper/notes/internal/session"
)

// Account returns the charm user behind this device's SSH keys. The first
// call against a fresh host registers the keys.
func (c *Client) Account() (*charmproto.User, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return nil, fmt.Errorf("charm client: %w", err)
	}
	return cc.Bio()
}

// Unlink forgets the account locally by dropping the local copy.
func (c *Client) Unlink() error {
	return c.Reset()
}

// Session returns the charm account as a session.
func (c *Client) Session() session.Session {
	return &accountSession{client: c}
}

type accountSession struct {
	client    *Client
	signedOut atomic.Bool
}

// Username prefers the charm display name and falls back to the account ID.
// A signed-out session stays signed out while the SSH keys still resolve the account.
func (s *accountSession) Username() (string, error) {
	if s.signedOut.Load() {
		return "", session.ErrSignedOut
	}
	user, err := s.client.Account()
	if err != nil {
		return "", fmt.Errorf("charm user: %w", err)
	}
	return displayName(user), nil
}

// SignOut drops the local copy of the account's data. Records stay on the
// charm server and come back after the next link.
func (s *accountSession) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.signedOut.Store(true)
	return s.client.Unlink()
}

func displayName(user *charmproto.User) string {
	if user == nil {
		return ""
	}
	if user.Name != "" {
		return user.Name
	}
	return user.CharmID
}
