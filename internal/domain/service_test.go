package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSignupBuildsConfirmation(t *testing.T) {
	repo := &stubRepo{}
	notifier := &recordingNotifier{}
	service := NewService(repo, notifier, zap.NewNop())

	confirmation, err := service.Signup(context.Background(), "Chess Club", "newstudent@mergington.edu")
	require.NoError(t, err)
	require.Equal(t, "Chess Club", confirmation.Activity)
	require.Equal(t, "newstudent@mergington.edu", confirmation.Email)
	require.Equal(t, "Signed up newstudent@mergington.edu for Chess Club", confirmation.Message)
	require.Equal(t, 1, notifier.signups)
	require.Equal(t, 0, notifier.unregisters)
}

func TestUnregisterBuildsConfirmation(t *testing.T) {
	repo := &stubRepo{}
	notifier := &recordingNotifier{}
	service := NewService(repo, notifier, zap.NewNop())

	confirmation, err := service.Unregister(context.Background(), "Chess Club", "michael@mergington.edu")
	require.NoError(t, err)
	require.Equal(t, "Unregistered michael@mergington.edu from Chess Club", confirmation.Message)
	require.Equal(t, 0, notifier.signups)
	require.Equal(t, 1, notifier.unregisters)
}

func TestSignupFailureEmitsNoEvent(t *testing.T) {
	repo := &stubRepo{signupErr: ErrAlreadyRegistered}
	notifier := &recordingNotifier{}
	service := NewService(repo, notifier, zap.NewNop())

	_, err := service.Signup(context.Background(), "Chess Club", "michael@mergington.edu")
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.Equal(t, 0, notifier.signups)
}

func TestUnregisterFailurePassesThroughSentinel(t *testing.T) {
	repo := &stubRepo{unregisterErr: ErrNotRegistered}
	service := NewService(repo, &recordingNotifier{}, zap.NewNop())

	_, err := service.Unregister(context.Background(), "Chess Club", "notregistered@mergington.edu")
	require.ErrorIs(t, err, ErrNotRegistered)
}

func TestNotifierFailureDoesNotFailRequest(t *testing.T) {
	repo := &stubRepo{}
	notifier := &recordingNotifier{err: errors.New("broker unavailable")}
	service := NewService(repo, notifier, zap.NewNop())

	confirmation, err := service.Signup(context.Background(), "Chess Club", "newstudent@mergington.edu")
	require.NoError(t, err)
	require.NotNil(t, confirmation)
}

func TestNilNotifierIsAllowed(t *testing.T) {
	service := NewService(&stubRepo{}, nil, nil)

	confirmation, err := service.Signup(context.Background(), "Chess Club", "newstudent@mergington.edu")
	require.NoError(t, err)
	require.NotNil(t, confirmation)
}

type stubRepo struct {
	signupErr     error
	unregisterErr error
}

func (s *stubRepo) List(context.Context) (map[string]Activity, error) {
	return map[string]Activity{}, nil
}

func (s *stubRepo) Signup(context.Context, string, string) error {
	return s.signupErr
}

func (s *stubRepo) Unregister(context.Context, string, string) error {
	return s.unregisterErr
}

type recordingNotifier struct {
	signups     int
	unregisters int
	err         error
}

var _ RosterNotifier = (*recordingNotifier)(nil)

func (n *recordingNotifier) SignupRecorded(context.Context, string, string) error {
	n.signups++
	return n.err
}

func (n *recordingNotifier) UnregisterRecorded(context.Context, string, string) error {
	n.unregisters++
	return n.err
}
