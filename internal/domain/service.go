// Package domain defines the business logic for the activity signup service.
package domain

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrActivityNotFound is returned when the named activity does not exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadyRegistered indicates the email is already on the activity roster.
	ErrAlreadyRegistered = errors.New("student already signed up for this activity")
	// ErrNotRegistered indicates the email is not on the activity roster.
	ErrNotRegistered = errors.New("student is not registered for this activity")
)

// DirectoryRepository captures roster operations against the activity directory.
type DirectoryRepository interface {
	List(ctx context.Context) (map[string]Activity, error)
	Signup(ctx context.Context, activityName, email string) error
	Unregister(ctx context.Context, activityName, email string) error
}

// RosterNotifier announces roster changes to downstream consumers.
type RosterNotifier interface {
	SignupRecorded(ctx context.Context, activityName, email string) error
	UnregisterRecorded(ctx context.Context, activityName, email string) error
}

// Service orchestrates signup workflows against the directory.
type Service struct {
	repo     DirectoryRepository
	notifier RosterNotifier
	logger   *zap.Logger
}

// NewService constructs a Service.
func NewService(repo DirectoryRepository, notifier RosterNotifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Confirmation names the activity and email affected by a roster mutation.
type Confirmation struct {
	Activity string
	Email    string
	Message  string
}

// ListActivities returns the full directory mapping.
func (s *Service) ListActivities(ctx context.Context) (map[string]Activity, error) {
	return s.repo.List(ctx)
}

// Signup appends email to the activity roster. The email is treated as an
// opaque identifier and is not validated for format.
func (s *Service) Signup(ctx context.Context, activityName, email string) (*Confirmation, error) {
	if err := s.repo.Signup(ctx, activityName, email); err != nil {
		return nil, err
	}

	s.notify(ctx, activityName, email, "signup")

	return &Confirmation{
		Activity: activityName,
		Email:    email,
		Message:  fmt.Sprintf("Signed up %s for %s", email, activityName),
	}, nil
}

// Unregister removes email from the activity roster.
func (s *Service) Unregister(ctx context.Context, activityName, email string) (*Confirmation, error) {
	if err := s.repo.Unregister(ctx, activityName, email); err != nil {
		return nil, err
	}

	s.notify(ctx, activityName, email, "unregister")

	return &Confirmation{
		Activity: activityName,
		Email:    email,
		Message:  fmt.Sprintf("Unregistered %s from %s", email, activityName),
	}, nil
}

// notify is best effort: a failed publish never fails the request.
func (s *Service) notify(ctx context.Context, activityName, email, action string) {
	if s.notifier == nil {
		return
	}

	var err error
	switch action {
	case "signup":
		err = s.notifier.SignupRecorded(ctx, activityName, email)
	case "unregister":
		err = s.notifier.UnregisterRecorded(ctx, activityName, email)
	}
	if err != nil {
		s.logger.Warn("roster event publish failed",
			zap.String("activity", activityName),
			zap.String("action", action),
			zap.Error(err))
	}
}
