package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/auth0/go-auth0/management"
	"go.uber.org/zap"
)

// ErrIdentityNotFound means the identity provider has no account for the email.
var ErrIdentityNotFound = errors.New("identity not found")

// IdentityProvider removes a user's account from the external identity provider.
type IdentityProvider interface {
	DeleteUserByEmail(ctx context.Context, email string) error
}

type Auth0Config struct {
	Domain       string
	ClientID     string
	ClientSecret string
}

// Auth0Identity deletes accounts through the Auth0 management API.
type Auth0Identity struct {
	management *management.Management
	log        *zap.Logger
}

func NewAuth0Identity(ctx context.Context, cfg Auth0Config, log *zap.Logger) (*Auth0Identity, error) {
	m, err := management.New(
		cfg.Domain,
		management.WithClientCredentials(ctx, cfg.ClientID, cfg.ClientSecret),
	)
	if err != nil {
		return nil, fmt.Errorf("init auth0 management client: %w", err)
	}
	return newAuth0Identity(m, log), nil
}

func newAuth0Identity(m *management.Management, log *zap.Logger) *Auth0Identity {
	return &Auth0Identity{management: m, log: log}
}

// DeleteUserByEmail deletes every provider account registered under email.
// It reports ErrIdentityNotFound unless at least one account was deleted.
func (a *Auth0Identity) DeleteUserByEmail(ctx context.Context, email string) error {
	users, err := a.management.User.ListByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return ErrIdentityNotFound
		}
		return fmt.Errorf("look up identity %s: %w", email, err)
	}

	deleted := 0
	for _, u := range users {
		if err := a.management.User.Delete(ctx, u.GetID()); err != nil {
			if isNotFound(err) {
				// Removed between lookup and delete.
				continue
			}
			return fmt.Errorf("delete identity %s: %w", u.GetID(), err)
		}
		deleted++
		a.log.Info("deleted external identity", zap.String("email", email), zap.String("identity", u.GetID()))
	}
	if deleted == 0 {
		return ErrIdentityNotFound
	}
	return nil
}

func isNotFound(err error) bool {
	var mErr management.Error
	return errors.As(err, &mErr) && mErr.Status() == http.StatusNotFound
}

// DisabledIdentity stands in when no identity provider is configured; every
// lookup comes back not found so user deletion only touches the store.
type DisabledIdentity struct {
	Log *zap.Logger
}

func (d DisabledIdentity) DeleteUserByEmail(_ context.Context, email string) error {
	d.Log.Warn("identity provider not configured, skipping identity deletion", zap.String("email", email))
	return ErrIdentityNotFound
}
