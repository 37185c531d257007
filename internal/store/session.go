package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"agora/internal/models"
	"agora/internal/observability"
)

// SessionEventType distinguishes login from logout notifications.
type SessionEventType string

// Session event types.
const (
	SessionLogin  SessionEventType = "login"
	SessionLogout SessionEventType = "logout"
)

// SessionEvent is delivered to session observers whenever the current
// user changes. User is the new session snapshot; nil on logout.
type SessionEvent struct {
	Type SessionEventType
	User *models.User
}

// CurrentUser returns the session user snapshot, or nil when nobody is
// logged in. A snapshot that fails to decode clears the session rather
// than propagating the error.
func (s *Store) CurrentUser(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("session", "read")

	raw, ok, err := s.kv.Get(ctx, keyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		corrupt := models.NewCorruptDataError("currentUser", err)
		s.log.Warn("clearing corrupt session slot", "error", corrupt)
		observability.CollectionReseedsTotal.WithLabelValues("currentUser").Inc()
		if err := s.kv.Delete(ctx, keyCurrentUser); err != nil {
			return nil, fmt.Errorf("clear session: %w", err)
		}
		return nil, nil
	}
	return &user, nil
}

// SetCurrentUser stores the session snapshot and then notifies session
// observers. The write commits before any observer runs.
func (s *Store) SetCurrentUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	countOp("session", "update")
	err := s.saveLocked(ctx, keyCurrentUser, user)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notifySession(SessionEvent{Type: SessionLogin, User: &user})
	return nil
}

// Logout clears the session slot and notifies observers.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	countOp("session", "delete")
	err := s.kv.Delete(ctx, keyCurrentUser)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.notifySession(SessionEvent{Type: SessionLogout})
	return nil
}

// SubscribeSession registers fn for session change notifications and
// returns its unsubscribe function. Delivery is synchronous and in
// registration order.
func (s *Store) SubscribeSession(fn func(SessionEvent)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// notifySession delivers the event to every observer. A panicking
// observer is recovered and logged so it cannot disturb the committed
// write or the remaining observers.
func (s *Store) notifySession(ev SessionEvent) {
	s.subMu.RLock()
	ids := make([]int, 0, len(s.subs))
	fns := make(map[int]func(SessionEvent), len(s.subs))
	for id, fn := range s.subs {
		ids = append(ids, id)
		fns[id] = fn
	}
	s.subMu.RUnlock()

	sort.Ints(ids)
	for _, id := range ids {
		s.deliver(fns[id], ev)
	}
}

func (s *Store) deliver(fn func(SessionEvent), ev SessionEvent) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("session observer panicked", "panic", r)
		}
	}()
	observability.SessionNotificationsTotal.Inc()
	fn(ev)
}
