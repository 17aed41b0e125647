package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service wraps repository operations with session business logic.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

// Create stores a new session for the user and returns the opaque token.
func (s *Service) Create(ctx context.Context, username, role string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	sess := &Session{
		Token:     token,
		Username:  username,
		Role:      role,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return "", err
	}
	return token, nil
}

// Get returns the session if the token is valid and not expired.
func (s *Service) Get(ctx context.Context, token string) (*Session, error) {
	sess, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		// cleanup expired session
		_ = s.repo.DeleteByToken(ctx, token)
		return nil, nil
	}
	return sess, nil
}

// Delete removes the session. Deleting an unknown token succeeds.
func (s *Service) Delete(ctx context.Context, token string) error {
	return s.repo.DeleteByToken(ctx, token)
}

// PushFlash queues a one-shot message on the session. Unknown tokens are
// ignored so logout-style flows never fail on a missing session.
func (s *Service) PushFlash(ctx context.Context, token, msg string) error {
	sess, err := s.Get(ctx, token)
	if err != nil || sess == nil {
		return err
	}
	sess.Flashes = append(sess.Flashes, msg)
	return s.repo.Save(ctx, sess)
}

// PopFlashes drains and returns the queued flash messages.
func (s *Service) PopFlashes(ctx context.Context, token string) ([]string, error) {
	sess, err := s.Get(ctx, token)
	if err != nil || sess == nil {
		return nil, err
	}
	msgs := sess.Flashes
	if len(msgs) == 0 {
		return nil, nil
	}
	sess.Flashes = nil
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return msgs, nil
}
