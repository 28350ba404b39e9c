package ports

import (
	"context"

	"github.com/founderflow/founderflow/internal/core/domain"
)

// AuthEvent names a session-change notification from the identity provider.
type AuthEvent string

const (
	AuthSignedIn  AuthEvent = "SIGNED_IN"
	AuthSignedOut AuthEvent = "SIGNED_OUT"
)

// AuthStateListener receives session-change events. A nil session means the
// principal signed out.
type AuthStateListener func(event AuthEvent, session *domain.Session)

// SessionProvider is the identity-provider surface the gateway consumes.
// OnAuthStateChange must be registered before GetSession is issued so no
// event is missed.
type SessionProvider interface {
	GetSession(ctx context.Context) (*domain.Session, error)
	OnAuthStateChange(listener AuthStateListener) (unsubscribe func())
	SignOut(ctx context.Context) error
}
