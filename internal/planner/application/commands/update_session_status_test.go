package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studyflow/internal/planner/application/commands"
	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

func seedPlan(t *testing.T, repo *fakePlanRepo, owner uuid.UUID, sessions ...pdomain.Session) *pdomain.PlanRecord {
	t.Helper()
	plan := &pdomain.PlanRecord{ID: uuid.New(), Owner: owner, Sessions: sessions, GeneratedAt: time.Now()}
	require.NoError(t, repo.SavePlan(context.Background(), owner, plan))
	return plan
}

func TestUpdateSessionStatus_MarksDoneAndReturnsPlanVersion(t *testing.T) {
	owner := uuid.New()
	repo := newFakePlanRepo()
	sessionID := uuid.New()
	seedPlan(t, repo, owner, pdomain.Session{ID: sessionID, Status: pdomain.StatusPending})

	pub := &fakePublisher{}
	handler := commands.NewUpdateSessionStatusHandler(repo, pub, nil)

	version, err := handler.Handle(context.Background(), commands.UpdateSessionStatusCommand{
		Owner: owner, SessionID: sessionID, Status: pdomain.StatusDone,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.Len(t, pub.published, 1)

	latest, err := repo.GetLatestPlan(context.Background(), owner)
	require.NoError(t, err)
	found := latest.FindSession(sessionID)
	require.NotNil(t, found)
	assert.Equal(t, pdomain.StatusDone, found.Status)
}

func TestUpdateSessionStatus_InvalidStatusRejected(t *testing.T) {
	owner := uuid.New()
	repo := newFakePlanRepo()
	handler := commands.NewUpdateSessionStatusHandler(repo, nil, nil)

	_, err := handler.Handle(context.Background(), commands.UpdateSessionStatusCommand{
		Owner: owner, SessionID: uuid.New(), Status: pdomain.SessionStatus("archived"),
	})

	assert.ErrorIs(t, err, pdomain.ErrInvalidStatus)
}

func TestUpdateSessionStatus_NoPlanYet(t *testing.T) {
	owner := uuid.New()
	repo := newFakePlanRepo()
	handler := commands.NewUpdateSessionStatusHandler(repo, nil, nil)

	_, err := handler.Handle(context.Background(), commands.UpdateSessionStatusCommand{
		Owner: owner, SessionID: uuid.New(), Status: pdomain.StatusDone,
	})

	assert.ErrorIs(t, err, pdomain.ErrNoPlanYet)
}

func TestUpdateSessionStatus_SessionNotFound(t *testing.T) {
	owner := uuid.New()
	repo := newFakePlanRepo()
	seedPlan(t, repo, owner, pdomain.Session{ID: uuid.New(), Status: pdomain.StatusPending})
	handler := commands.NewUpdateSessionStatusHandler(repo, nil, nil)

	_, err := handler.Handle(context.Background(), commands.UpdateSessionStatusCommand{
		Owner: owner, SessionID: uuid.New(), Status: pdomain.StatusDone,
	})

	assert.ErrorIs(t, err, pdomain.ErrSessionNotFound)
}
