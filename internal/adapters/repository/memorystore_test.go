package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/model"
)

func testCatalog() map[string]model.Activity {
	return map[string]model.Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 3,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Math Club": {
			Description:     "Solve challenging problems",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
		},
	}
}

func newStore(opts ...repository.Option) *repository.MemoryStore {
	return repository.NewMemoryStore(context.Background(), append([]repository.Option{repository.WithCatalog(testCatalog())}, opts...)...)
}

func TestMemoryStore_List(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Chess Club", all["Chess Club"].Name)
	assert.Equal(t, 3, all["Chess Club"].MaxParticipants)
	assert.NotNil(t, all["Math Club"].Participants, "empty rosters must not be nil")
	assert.Equal(t, 3, s.Count(ctx))
	assert.Equal(t, 4, s.ParticipantCount(ctx))
}

func TestMemoryStore_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	all, err := s.List(ctx)
	require.NoError(t, err)
	a := all["Chess Club"]
	a.Participants[0] = "mallory@mergington.edu"

	got, err := s.Get(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Equal(t, "michael@mergington.edu", got.Participants[0])
}

func TestMemoryStore_SeedIsCopied(t *testing.T) {
	ctx := context.Background()
	seed := testCatalog()
	s := repository.NewMemoryStore(ctx, repository.WithCatalog(seed))

	seed["Chess Club"].Participants[0] = "mallory@mergington.edu"

	got, err := s.Get(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Equal(t, "michael@mergington.edu", got.Participants[0])
}

func TestMemoryStore_AddParticipant(t *testing.T) {
	tests := []struct {
		name     string
		opts     []repository.Option
		activity string
		email    string
		wantErr  error
		wantKind error
	}{
		{name: "new email", activity: "Programming Class", email: "tester@example.com"},
		{name: "unknown activity", activity: "DoesNotExist", email: "x@x.com", wantErr: repository.ErrActivityNotFound, wantKind: repository.ErrNotFound},
		{name: "unknown activity with empty email", activity: "DoesNotExist", email: "", wantErr: repository.ErrActivityNotFound, wantKind: repository.ErrNotFound},
		{name: "case sensitive name", activity: "chess club", email: "x@x.com", wantErr: repository.ErrActivityNotFound, wantKind: repository.ErrNotFound},
		{name: "duplicate", activity: "Chess Club", email: "michael@mergington.edu", wantErr: repository.ErrAlreadySignedUp, wantKind: repository.ErrInvalidOperation},
		{name: "empty email is an ordinary value", activity: "Chess Club", email: ""},
		{name: "padded email differs from seed", activity: "Chess Club", email: " michael@mergington.edu"},
		{name: "capacity advisory by default", activity: "Chess Club", email: "a@mergington.edu"},
		{
			name:     "capacity enforced",
			opts:     []repository.Option{repository.WithCapacityEnforcement(true)},
			activity: "Math Club",
			email:    "a@mergington.edu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(tt.opts...)
			before, _ := s.Get(ctx, tt.activity)

			got, err := s.AddParticipant(ctx, tt.activity, tt.email)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, tt.wantKind)
				after, _ := s.Get(ctx, tt.activity)
				assert.Equal(t, before.Participants, after.Participants, "failed signup must not mutate")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, got.Participants[len(got.Participants)-1])
			assert.Len(t, got.Participants, len(before.Participants)+1)
		})
	}
}

func TestMemoryStore_CapacityEnforcement(t *testing.T) {
	ctx := context.Background()

	s := newStore(repository.WithCapacityEnforcement(true))
	_, err := s.AddParticipant(ctx, "Chess Club", "third@mergington.edu")
	require.NoError(t, err)

	_, err = s.AddParticipant(ctx, "Chess Club", "fourth@mergington.edu")
	require.ErrorIs(t, err, repository.ErrActivityFull)
	assert.ErrorIs(t, err, repository.ErrInvalidOperation)

	// duplicates are still reported as duplicates on a full roster
	_, err = s.AddParticipant(ctx, "Chess Club", "third@mergington.edu")
	assert.ErrorIs(t, err, repository.ErrAlreadySignedUp)

	open := newStore()
	for i := 0; i < 5; i++ {
		_, err := open.AddParticipant(ctx, "Chess Club", fmt.Sprintf("s%d@mergington.edu", i))
		require.NoError(t, err)
	}
	a, _ := open.Get(ctx, "Chess Club")
	assert.Equal(t, -4, a.SpotsLeft())
}

func TestMemoryStore_RemoveParticipant(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	got, err := s.RemoveParticipant(ctx, "Chess Club", "michael@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"daniel@mergington.edu"}, got.Participants)

	_, err = s.RemoveParticipant(ctx, "Chess Club", "michael@mergington.edu")
	assert.ErrorIs(t, err, repository.ErrNotSignedUp)
	assert.ErrorIs(t, err, repository.ErrInvalidOperation)

	_, err = s.RemoveParticipant(ctx, "DoesNotExist", "michael@mergington.edu")
	assert.ErrorIs(t, err, repository.ErrActivityNotFound)

	_, err = s.RemoveParticipant(ctx, "Chess Club", "")
	assert.ErrorIs(t, err, repository.ErrNotSignedUp)
}

func TestMemoryStore_EmailMatchedVerbatim(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	got, err := s.AddParticipant(ctx, "Chess Club", " pad@x.com ")
	require.NoError(t, err)
	assert.Contains(t, got.Participants, " pad@x.com ")

	_, err = s.AddParticipant(ctx, "Chess Club", "pad@x.com")
	require.NoError(t, err)

	_, err = s.RemoveParticipant(ctx, "Chess Club", "  pad@x.com")
	assert.ErrorIs(t, err, repository.ErrNotSignedUp)

	got, err = s.RemoveParticipant(ctx, "Chess Club", " pad@x.com ")
	require.NoError(t, err)
	assert.NotContains(t, got.Participants, " pad@x.com ")
	assert.Contains(t, got.Participants, "pad@x.com")

	_, err = s.AddParticipant(ctx, "Chess Club", "")
	require.NoError(t, err)
	_, err = s.AddParticipant(ctx, "Chess Club", "")
	assert.ErrorIs(t, err, repository.ErrAlreadySignedUp)
	_, err = s.RemoveParticipant(ctx, "Chess Club", "")
	require.NoError(t, err)
}

func TestMemoryStore_RemoveKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	for _, e := range []string{"a@x.edu", "b@x.edu", "c@x.edu"} {
		_, err := s.AddParticipant(ctx, "Math Club", e)
		require.NoError(t, err)
	}
	got, err := s.RemoveParticipant(ctx, "Math Club", "b@x.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.edu", "c@x.edu"}, got.Participants)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	before, _ := s.Get(ctx, "Programming Class")

	_, err := s.AddParticipant(ctx, "Programming Class", "tester@example.com")
	require.NoError(t, err)
	mid, _ := s.Get(ctx, "Programming Class")
	assert.Contains(t, mid.Participants, "tester@example.com")

	_, err = s.RemoveParticipant(ctx, "Programming Class", "tester@example.com")
	require.NoError(t, err)
	after, _ := s.Get(ctx, "Programming Class")
	assert.ElementsMatch(t, before.Participants, after.Participants)
}

func TestMemoryStore_ConcurrentDuplicateSignup(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	const n = 64
	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddParticipant(ctx, "Math Club", "race@mergington.edu")
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, repository.ErrAlreadySignedUp):
				dup.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, ok.Load())
	assert.EqualValues(t, n-1, dup.Load())
	a, _ := s.Get(ctx, "Math Club")
	assert.Equal(t, []string{"race@mergington.edu"}, a.Participants)
}

func TestMemoryStore_ConcurrentSignupAndCancel(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	before, _ := s.Get(ctx, "Programming Class")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("student%d@mergington.edu", i)
			if _, err := s.AddParticipant(ctx, "Programming Class", email); err != nil {
				t.Errorf("signup %s: %v", email, err)
				return
			}
			if _, err := s.RemoveParticipant(ctx, "Programming Class", email); err != nil {
				t.Errorf("cancel %s: %v", email, err)
			}
		}(i)
	}
	wg.Wait()

	after, _ := s.Get(ctx, "Programming Class")
	assert.ElementsMatch(t, before.Participants, after.Participants)
}
