package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/core/domain"
	"github.com/founderflow/founderflow/internal/core/ports"
)

// stubProvider records call order and lets tests fire session events.
type stubProvider struct {
	mu        sync.Mutex
	calls     []string
	session   *domain.Session
	getErr    error
	signErr   error
	listeners []ports.AuthStateListener
}

func (p *stubProvider) GetSession(ctx context.Context) (*domain.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "GetSession")
	return p.session, p.getErr
}

func (p *stubProvider) OnAuthStateChange(listener ports.AuthStateListener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "OnAuthStateChange")
	p.listeners = append(p.listeners, listener)
	return func() {}
}

func (p *stubProvider) SignOut(ctx context.Context) error {
	return p.signErr
}

func (p *stubProvider) fire(event ports.AuthEvent, session *domain.Session) {
	p.mu.Lock()
	listeners := append([]ports.AuthStateListener(nil), p.listeners...)
	p.mu.Unlock()
	for _, l := range listeners {
		l(event, session)
	}
}

// gateResolver blocks each Resolve call until the test releases it.
type gateResolver struct {
	mu    sync.Mutex
	roles map[string]domain.Role
	gates map[string]chan struct{}
}

func newGateResolver() *gateResolver {
	return &gateResolver{
		roles: make(map[string]domain.Role),
		gates: make(map[string]chan struct{}),
	}
}

func (r *gateResolver) gate(id string) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.gates[id]; !ok {
		r.gates[id] = make(chan struct{})
	}
	return r.gates[id]
}

func (r *gateResolver) Resolve(ctx context.Context, userID string) (domain.Role, error) {
	<-r.gate(userID)
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[userID]
	if !ok {
		return domain.DefaultRole, nil
	}
	return role, nil
}

func sessionFor(id string) *domain.Session {
	return &domain.Session{
		Token:     "token-" + id,
		ExpiresAt: time.Now().Add(time.Hour),
		User:      domain.User{ID: id, Email: id + "@example.com"},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestGateway_ListenerRegisteredBeforeSessionQuery(t *testing.T) {
	provider := &stubProvider{}
	g := NewGateway(provider, newGateResolver(), zerolog.Nop())
	g.Start(context.Background())
	defer g.Close()

	provider.mu.Lock()
	defer provider.mu.Unlock()
	if len(provider.calls) != 2 || provider.calls[0] != "OnAuthStateChange" || provider.calls[1] != "GetSession" {
		t.Fatalf("unexpected call order: %v", provider.calls)
	}
}

func TestGateway_InitialSessionAndRole(t *testing.T) {
	provider := &stubProvider{session: sessionFor("user_a")}
	resolver := newGateResolver()
	resolver.roles["user_a"] = domain.RoleAdmin

	g := NewGateway(provider, resolver, zerolog.Nop())
	g.Start(context.Background())
	defer g.Close()

	if g.Loading() {
		t.Fatal("loading should terminate after the initial query")
	}
	principal := g.CurrentPrincipal()
	if principal == nil || principal.ID != "user_a" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if g.CurrentRole() != nil {
		t.Fatal("role should be unknown while resolution is gated")
	}

	close(resolver.gate("user_a"))
	waitFor(t, func() bool {
		role := g.CurrentRole()
		return role != nil && *role == domain.RoleAdmin
	})
}

func TestGateway_StaleRoleLookupDiscarded(t *testing.T) {
	provider := &stubProvider{session: sessionFor("user_a")}
	resolver := newGateResolver()
	resolver.roles["user_a"] = domain.RoleAdmin
	resolver.roles["user_b"] = domain.RoleClient

	g := NewGateway(provider, resolver, zerolog.Nop())
	g.Start(context.Background())
	defer g.Close()

	// Principal switches to B while A's lookup is still in flight.
	provider.fire(ports.AuthSignedIn, sessionFor("user_b"))
	close(resolver.gate("user_b"))
	waitFor(t, func() bool {
		role := g.CurrentRole()
		return role != nil && *role == domain.RoleClient
	})

	// A's lookup completes late; its result must not land.
	close(resolver.gate("user_a"))
	time.Sleep(50 * time.Millisecond)
	role := g.CurrentRole()
	if role == nil || *role != domain.RoleClient {
		t.Fatalf("stale lookup overwrote role: %v", role)
	}
}

func TestGateway_SignOutClearsStateDespiteProviderError(t *testing.T) {
	provider := &stubProvider{
		session: sessionFor("user_a"),
		signErr: errors.New("provider down"),
	}
	resolver := newGateResolver()
	close(resolver.gate("user_a"))

	g := NewGateway(provider, resolver, zerolog.Nop())
	g.Start(context.Background())
	defer g.Close()

	g.SignOut(context.Background())
	if g.CurrentPrincipal() != nil || g.CurrentSession() != nil || g.CurrentRole() != nil {
		t.Fatal("state not cleared on sign-out")
	}
}

func TestGateway_SignedOutEventClearsRole(t *testing.T) {
	provider := &stubProvider{session: sessionFor("user_a")}
	resolver := newGateResolver()
	resolver.roles["user_a"] = domain.RoleAdmin
	close(resolver.gate("user_a"))

	g := NewGateway(provider, resolver, zerolog.Nop())
	g.Start(context.Background())
	defer g.Close()

	waitFor(t, func() bool { return g.CurrentRole() != nil })

	provider.fire(ports.AuthSignedOut, nil)
	if g.CurrentPrincipal() != nil || g.CurrentRole() != nil {
		t.Fatal("signed-out event must clear principal and role")
	}
}

func TestGateway_SubscribeAndUnsubscribe(t *testing.T) {
	provider := &stubProvider{}
	g := NewGateway(provider, newGateResolver(), zerolog.Nop())
	g.Start(context.Background())
	defer g.Close()

	var mu sync.Mutex
	var got []Snapshot
	unsubscribe := g.Subscribe(func(s Snapshot) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	})

	provider.fire(ports.AuthSignedIn, sessionFor("user_a"))
	mu.Lock()
	count := len(got)
	mu.Unlock()
	if count == 0 {
		t.Fatal("subscriber not notified on sign-in")
	}
	mu.Lock()
	last := got[count-1]
	mu.Unlock()
	if last.Principal == nil || last.Principal.ID != "user_a" {
		t.Fatalf("subscriber did not observe sign-in: %+v", last)
	}

	unsubscribe()
	provider.fire(ports.AuthSignedOut, nil)
	mu.Lock()
	defer mu.Unlock()
	if len(got) != count {
		t.Fatal("unsubscribed listener still notified")
	}
}

func TestGateway_UnsubscribeFromOwnCallback(t *testing.T) {
	provider := &stubProvider{session: sessionFor("user_a")}
	resolver := newGateResolver()
	close(resolver.gate("user_a"))

	g := NewGateway(provider, resolver, zerolog.Nop())
	g.Start(context.Background())
	defer g.Close()

	// A dependent view tears itself down when the principal goes away.
	var unsubscribe func()
	var torn bool
	unsubscribe = g.Subscribe(func(s Snapshot) {
		if s.Principal == nil {
			unsubscribe()
			torn = true
		}
	})

	done := make(chan struct{})
	go func() {
		provider.fire(ports.AuthSignedOut, nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sign-out blocked on a subscriber unsubscribing from its own callback")
	}

	if !torn {
		t.Fatal("subscriber never observed the sign-out")
	}
	// The gateway must still be usable afterwards.
	if g.CurrentPrincipal() != nil {
		t.Fatal("principal not cleared")
	}
}

func TestGateway_SnapshotDoesNotAliasGatewayState(t *testing.T) {
	provider := &stubProvider{}
	resolver := newGateResolver()
	close(resolver.gate("user_a"))

	g := NewGateway(provider, resolver, zerolog.Nop())
	g.Start(context.Background())
	defer g.Close()

	g.Subscribe(func(s Snapshot) {
		if s.Principal != nil {
			s.Principal.ID = "mutated"
			s.Session.Token = "mutated"
		}
		if s.Role != nil {
			*s.Role = domain.RoleOutsourced
		}
	})

	provider.fire(ports.AuthSignedIn, sessionFor("user_a"))
	waitFor(t, func() bool { return g.CurrentRole() != nil })

	if principal := g.CurrentPrincipal(); principal == nil || principal.ID != "user_a" {
		t.Fatalf("subscriber mutated gateway principal: %+v", principal)
	}
	if session := g.CurrentSession(); session == nil || session.Token != "token-user_a" {
		t.Fatalf("subscriber mutated gateway session: %+v", session)
	}
	if role := g.CurrentRole(); role == nil || *role != domain.DefaultRole {
		t.Fatalf("subscriber mutated gateway role: %v", role)
	}
}

func TestGateway_InitialQueryErrorTerminatesLoading(t *testing.T) {
	provider := &stubProvider{getErr: errors.New("network down")}
	g := NewGateway(provider, newGateResolver(), zerolog.Nop())
	g.Start(context.Background())
	defer g.Close()

	if g.Loading() {
		t.Fatal("loading must terminate even when the initial query fails")
	}
	if g.CurrentPrincipal() != nil {
		t.Fatal("no principal expected after a failed query")
	}
}
