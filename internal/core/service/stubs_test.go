package service

import (
	"context"
	"fmt"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Manager != nil {
		m := *u.Manager
		clone.Manager = &m
	}
	if u.Employee != nil {
		e := *u.Employee
		clone.Employee = &e
	}
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	needle := domain.NormalizeEmail(email)
	for _, u := range r.byID {
		if domain.NormalizeEmail(u.Email) == needle {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if domain.NormalizeEmail(existing.Email) == domain.NormalizeEmail(user.Email) {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("id-%d", r.nextID)
	r.byID[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

type stubThrottle struct {
	denied   bool
	failures map[string]int
	resets   []string
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int)}
}

func (t *stubThrottle) Allow(_ context.Context, email string) (bool, error) {
	return !t.denied, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	t.resets = append(t.resets, email)
	return nil
}

type stubAuditSink struct {
	events []domain.AuditEvent
}

func (s *stubAuditSink) Enqueue(event domain.AuditEvent) {
	s.events = append(s.events, event)
}

func (s *stubAuditSink) last() *domain.AuditEvent {
	if len(s.events) == 0 {
		return nil
	}
	return &s.events[len(s.events)-1]
}

type stubAuditRepo struct {
	events    []domain.AuditEvent
	insertErr error
	lastLimit int
}

func (r *stubAuditRepo) Insert(_ context.Context, event *domain.AuditEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *stubAuditRepo) ListBySubject(_ context.Context, subjectID string, limit int) ([]domain.AuditEvent, error) {
	r.lastLimit = limit
	var out []domain.AuditEvent
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		if r.events[i].SubjectID == subjectID {
			out = append(out, r.events[i])
		}
	}
	return out, nil
}
