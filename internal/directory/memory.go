// Package directory provides the in-memory activity directory backing store.
package directory

import (
	"context"
	"sync"

	"example.com/signup/internal/domain"
	"example.com/signup/internal/observability"
)

// InMemoryRepository holds the activity directory in process memory. All
// mutations run inside a single critical section so the duplicate check and
// the roster append are atomic with respect to concurrent requests.
type InMemoryRepository struct {
	mu         sync.RWMutex
	activities map[string]domain.Activity
}

// NewInMemoryRepository constructs a repository seeded with the school's
// activity catalog.
func NewInMemoryRepository() *InMemoryRepository {
	repo := &InMemoryRepository{
		activities: make(map[string]domain.Activity),
	}
	repo.seed()
	return repo
}

func (r *InMemoryRepository) seed() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, activity := range seedCatalog() {
		r.activities[name] = activity
		observability.SetRosterSize(name, len(activity.Participants))
	}
}

// List implements domain.DirectoryRepository. The returned mapping and its
// rosters are copies so callers cannot mutate shared state.
func (r *InMemoryRepository) List(ctx context.Context) (map[string]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Activity, len(r.activities))
	for name, activity := range r.activities {
		roster := make([]string, len(activity.Participants))
		copy(roster, activity.Participants)
		activity.Participants = roster
		out[name] = activity
	}
	return out, nil
}

// Signup appends email to the activity roster, preserving signup order.
func (r *InMemoryRepository) Signup(ctx context.Context, activityName, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[activityName]
	if !ok {
		return domain.ErrActivityNotFound
	}
	for _, participant := range activity.Participants {
		if participant == email {
			return domain.ErrAlreadyRegistered
		}
	}

	activity.Participants = append(activity.Participants, email)
	r.activities[activityName] = activity
	observability.SetRosterSize(activityName, len(activity.Participants))
	return nil
}

// Unregister removes email from the activity roster.
func (r *InMemoryRepository) Unregister(ctx context.Context, activityName, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[activityName]
	if !ok {
		return domain.ErrActivityNotFound
	}

	idx := -1
	for i, participant := range activity.Participants {
		if participant == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotRegistered
	}

	activity.Participants = append(activity.Participants[:idx], activity.Participants[idx+1:]...)
	r.activities[activityName] = activity
	observability.SetRosterSize(activityName, len(activity.Participants))
	return nil
}
