package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/core/domain"
	"github.com/founderflow/founderflow/internal/core/ports"
)

// Snapshot is the gateway state published to subscribers. Role is nil while
// a resolution is in flight; consumers render most-restrictive permissions
// during that window.
type Snapshot struct {
	Principal *domain.User
	Session   *domain.Session
	Role      *domain.Role
	Loading   bool
}

// Gateway caches the (principal, session, role) triple for an interactive
// client and fans session changes out to subscribers. State updates are
// serialized; role lookups run after the session state is published and are
// tagged with the principal id they were issued for, so a stale lookup can
// never overwrite the current role.
type Gateway struct {
	provider ports.SessionProvider
	resolver ports.RoleResolver
	log      zerolog.Logger

	mu            sync.Mutex
	principal     *domain.User
	session       *domain.Session
	role          *domain.Role
	loading       bool
	subs          map[int]func(Snapshot)
	nextSub       int
	unsubProvider func()
}

func NewGateway(provider ports.SessionProvider, resolver ports.RoleResolver, log zerolog.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		resolver: resolver,
		log:      log,
		loading:  true,
		subs:     make(map[int]func(Snapshot)),
	}
}

// Start registers the session-change listener and then performs the one-shot
// query for an existing session. Registration happens first so an event
// arriving during the query is not missed. Loading terminates regardless of
// the query outcome; a provider error leaves previous state intact.
func (g *Gateway) Start(ctx context.Context) {
	g.unsubProvider = g.provider.OnAuthStateChange(func(_ ports.AuthEvent, session *domain.Session) {
		g.applySession(ctx, session)
	})

	session, err := g.provider.GetSession(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("initial session query failed")
		g.mu.Lock()
		g.loading = false
		notify := g.publishLocked()
		g.mu.Unlock()
		notify()
		return
	}
	g.applySession(ctx, session)
}

// applySession atomically updates principal and session, publishes the new
// state, then schedules the role lookup on a fresh goroutine. Scheduling
// after publication keeps the lookup out of the provider's callback and lets
// subscribers observe the principal-known/role-unknown intermediate state.
func (g *Gateway) applySession(ctx context.Context, session *domain.Session) {
	g.mu.Lock()
	g.session = session
	if session != nil {
		user := session.User
		g.principal = &user
	} else {
		g.principal = nil
		g.role = nil
	}
	g.loading = false
	id := ""
	if g.principal != nil {
		id = g.principal.ID
	}
	notify := g.publishLocked()
	g.mu.Unlock()
	notify()

	if id != "" {
		go g.resolveRole(ctx, id)
	}
}

// resolveRole fetches the role issued for the given principal id and
// discards the result if the principal changed while the lookup was in
// flight.
func (g *Gateway) resolveRole(ctx context.Context, id string) {
	role, err := g.resolver.Resolve(ctx, id)
	if err != nil {
		g.log.Warn().Err(err).Str("user_id", id).Msg("role resolution failed, keeping previous role")
		return
	}

	g.mu.Lock()
	if g.principal == nil || g.principal.ID != id {
		g.mu.Unlock()
		g.log.Debug().Str("user_id", id).Msg("discarding stale role lookup")
		return
	}
	g.role = &role
	notify := g.publishLocked()
	g.mu.Unlock()
	notify()
}

// SignOut invalidates the session with the provider and clears local state.
// The local state is always cleared, so a provider failure is logged but
// never surfaced.
func (g *Gateway) SignOut(ctx context.Context) {
	if err := g.provider.SignOut(ctx); err != nil {
		g.log.Warn().Err(err).Msg("provider sign-out failed, clearing local state anyway")
	}

	g.mu.Lock()
	g.principal = nil
	g.session = nil
	g.role = nil
	notify := g.publishLocked()
	g.mu.Unlock()
	notify()
}

// Subscribe registers fn for state changes and returns its unsubscribe
// function. Dependent views must unsubscribe on teardown.
func (g *Gateway) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = fn
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subs, id)
	}
}

// Close detaches the gateway from the provider and drops all subscribers.
func (g *Gateway) Close() {
	if g.unsubProvider != nil {
		g.unsubProvider()
	}
	g.mu.Lock()
	g.subs = make(map[int]func(Snapshot))
	g.mu.Unlock()
}

// Loading reports whether the initial session query is still outstanding.
func (g *Gateway) Loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loading
}

// CurrentPrincipal returns a copy of the authenticated user, or nil.
func (g *Gateway) CurrentPrincipal() *domain.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.principal == nil {
		return nil
	}
	user := *g.principal
	return &user
}

// CurrentSession returns a copy of the active session, or nil.
func (g *Gateway) CurrentSession() *domain.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return nil
	}
	session := *g.session
	return &session
}

// CurrentRole returns the resolved role, or nil while unknown.
func (g *Gateway) CurrentRole() *domain.Role {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.role == nil {
		return nil
	}
	role := *g.role
	return &role
}

// publishLocked captures the current state and subscriber list under g.mu and
// returns a closure that delivers the snapshot. Callers must hold g.mu, then
// release it before invoking the closure: callbacks run unlocked, so a
// subscriber may unsubscribe or read gateway state from inside its own
// callback. The snapshot copies the principal, session and role so a
// subscriber cannot mutate gateway state through it.
func (g *Gateway) publishLocked() func() {
	snap := Snapshot{Loading: g.loading}
	if g.principal != nil {
		user := *g.principal
		snap.Principal = &user
	}
	if g.session != nil {
		session := *g.session
		snap.Session = &session
	}
	if g.role != nil {
		role := *g.role
		snap.Role = &role
	}

	fns := make([]func(Snapshot), 0, len(g.subs))
	for _, fn := range g.subs {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(snap)
		}
	}
}
