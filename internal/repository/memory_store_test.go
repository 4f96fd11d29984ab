package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"mentor-collab/internal/domain"
)

func seedStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	for _, m := range []domain.Mentorship{
		{ID: "m-a", MentorID: "mentor-1", MentorName: "Ana"},
		{ID: "m-b", MentorID: "mentor-2", MentorName: "Bruno"},
		{ID: "m-c", MentorID: "mentor-3", MentorName: "Carla"},
	} {
		store.AddMentorship(m)
	}
	return store
}

func pendingRequest(id, from, to string, createdAt time.Time) domain.CollaborationRequest {
	return domain.CollaborationRequest{
		ID:                     id,
		Tier:                   domain.TierComplementary,
		Subtier:                1,
		InitiatingMentorshipID: from,
		TargetMentorshipID:     to,
		MatchedCategories:      []string{"Finance"},
		Status:                 domain.RequestPending,
		CreatedAt:              createdAt,
	}
}

func TestMemoryStoreCreateRequestRejectsDuplicatePending(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateRequest(ctx, pendingRequest("r1", "m-a", "m-b", now)))

	err := store.CreateRequest(ctx, pendingRequest("r2", "m-a", "m-b", now))
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// la direccion inversa es otro par ordenado
	assert.NoError(t, store.CreateRequest(ctx, pendingRequest("r3", "m-b", "m-a", now)))

	err = store.CreateRequest(ctx, pendingRequest("r4", "m-a", "missing", now))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStoreRejectIsTerminal(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateRequest(ctx, pendingRequest("r1", "m-a", "m-b", now)))

	rejected, err := store.RejectRequest(ctx, "r1", now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, rejected.Status)
	require.NotNil(t, rejected.RespondedAt)

	_, err = store.RejectRequest(ctx, "r1", now.Add(2*time.Minute))
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)

	_, _, err = store.CommitAccept(ctx, AcceptParams{RequestID: "r1", CollaborationID: "c1", AcceptedAt: now})
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)

	got, err := store.GetRequest(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, got.Status)
	assert.True(t, got.RespondedAt.Equal(now.Add(time.Minute)))

	active, err := store.ListActiveCollaborations(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = store.RejectRequest(ctx, "missing", now)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestMemoryStoreCommitAcceptHonorsCheck(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	now := time.Now().UTC()
	require.NoError(t, store.CreateRequest(ctx, pendingRequest("r1", "m-a", "m-b", now)))

	_, _, err := store.CommitAccept(ctx, AcceptParams{
		RequestID:       "r1",
		CollaborationID: "c1",
		AcceptedAt:      now,
		Check:           func(domain.CollaborationRequest) error { return domain.ErrStaleSnapshot },
	})
	assert.ErrorIs(t, err, domain.ErrStaleSnapshot)

	got, err := store.GetRequest(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, got.Status)
	_, err = store.GetCollaboration(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrCollaborationNotFound)
}

func TestMemoryStoreAcceptBlocksBusyMentorship(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	now := time.Now().UTC()
	require.NoError(t, store.CreateRequest(ctx, pendingRequest("r1", "m-a", "m-b", now)))
	require.NoError(t, store.CreateRequest(ctx, pendingRequest("r2", "m-c", "m-a", now)))

	collab, req, err := store.CommitAccept(ctx, AcceptParams{RequestID: "r1", CollaborationID: "c1", AcceptedAt: now})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestAccepted, req.Status)
	assert.Equal(t, "r1", collab.OriginatingRequestID)
	assert.Equal(t, domain.TierComplementary, collab.Tier)

	_, _, err = store.CommitAccept(ctx, AcceptParams{RequestID: "r2", CollaborationID: "c2", AcceptedAt: now})
	assert.ErrorIs(t, err, domain.ErrAlreadyCollaborating)

	pending, err := store.GetRequest(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, pending.Status)

	ended, err := store.EndCollaboration(ctx, "c1", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.CollaborationEnded, ended.Status)

	_, err = store.EndCollaboration(ctx, "c1", now.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrCollaborationEnded)

	_, _, err = store.CommitAccept(ctx, AcceptParams{RequestID: "r2", CollaborationID: "c2", AcceptedAt: now})
	assert.NoError(t, err)

	history, err := store.ListCollaborations(ctx, "m-a")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestMemoryStoreConcurrentAcceptCommitsOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	store := seedStore(t)
	now := time.Now().UTC()
	require.NoError(t, store.CreateRequest(ctx, pendingRequest("r1", "m-a", "m-b", now)))

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, _, err := store.CommitAccept(ctx, AcceptParams{
				RequestID:       "r1",
				CollaborationID: fmt.Sprintf("c%d", i),
				AcceptedAt:      now,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	active, err := store.ListActiveCollaborations(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestMemoryStoreConcurrentAcceptOfOppositeRequests(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	store := seedStore(t)
	now := time.Now().UTC()
	require.NoError(t, store.CreateRequest(ctx, pendingRequest("r1", "m-a", "m-b", now)))
	require.NoError(t, store.CreateRequest(ctx, pendingRequest("r2", "m-b", "m-a", now)))

	ids := []string{"r1", "r2"}
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			<-start
			_, _, errs[i] = store.CommitAccept(ctx, AcceptParams{
				RequestID:       id,
				CollaborationID: "c-" + id,
				AcceptedAt:      now,
			})
		}(i, id)
	}
	close(start)
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrAlreadyCollaborating):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	active, err := store.ListActiveCollaborations(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestMemoryStoreListRequestsByDirection(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateRequest(ctx, pendingRequest("r1", "m-a", "m-b", base)))
	require.NoError(t, store.CreateRequest(ctx, pendingRequest("r2", "m-c", "m-a", base.Add(time.Minute))))
	require.NoError(t, store.CreateRequest(ctx, pendingRequest("r3", "m-b", "m-c", base.Add(2*time.Minute))))
	_, err := store.RejectRequest(ctx, "r1", base.Add(3*time.Minute))
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter RequestFilter
		want   []string
	}{
		{"all", RequestFilter{MentorshipID: "m-a", Direction: domain.DirectionAll}, []string{"r2", "r1"}},
		{"incoming", RequestFilter{MentorshipID: "m-a", Direction: domain.DirectionIncoming}, []string{"r2"}},
		{"outgoing", RequestFilter{MentorshipID: "m-a", Direction: domain.DirectionOutgoing}, []string{"r1"}},
		{"pending only", RequestFilter{MentorshipID: "m-a", Status: domain.RequestPending}, []string{"r2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListRequests(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMemoryStoreListRatingsFilters(t *testing.T) {
	store := seedStore(t)
	store.AddRatings(
		domain.EvaluationRating{MentorshipID: "m-a", Category: "Finance", Rating: 2, EvaluationType: domain.EvaluationTypeSocialEnterprise},
		domain.EvaluationRating{MentorshipID: "m-a", Category: "Finance", Rating: 5, EvaluationType: "Mentor"},
		domain.EvaluationRating{MentorshipID: "m-b", Category: "Finance", Rating: 4, EvaluationType: domain.EvaluationTypeSocialEnterprise},
	)

	got, err := store.ListRatings(context.Background(), RatingFilter{
		EvaluationType: domain.EvaluationTypeSocialEnterprise,
		MentorshipIDs:  []string{"m-a"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Rating)
}
