package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

func validTaskParams() pdomain.NewTaskParams {
	return pdomain.NewTaskParams{
		Owner:            uuid.New(),
		Subject:          "Calculus",
		Title:            "Finish problem set 4",
		Deadline:         time.Now().Add(72 * time.Hour),
		Difficulty:       3,
		EstimatedMinutes: 120,
	}
}

func TestNewTask_Valid(t *testing.T) {
	p := validTaskParams()
	task, err := pdomain.NewTask(p)
	require.NoError(t, err)
	assert.Equal(t, p.Owner, task.Owner())
	assert.Equal(t, "Finish problem set 4", task.Title())
	assert.Equal(t, pdomain.DefaultTimezone, task.Timezone())
	assert.Equal(t, 120, task.RemainingMinutes())
}

func TestNewTask_TrimsTitleAndSubject(t *testing.T) {
	p := validTaskParams()
	p.Title = "  Finish problem set 4  "
	p.Subject = "  Calculus  "
	task, err := pdomain.NewTask(p)
	require.NoError(t, err)
	assert.Equal(t, "Finish problem set 4", task.Title())
	assert.Equal(t, "Calculus", task.Subject())
}

func TestNewTask_DeadlineInPast(t *testing.T) {
	p := validTaskParams()
	p.Clock = pdomain.FixedClock{At: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	p.Deadline = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := pdomain.NewTask(p)
	assert.ErrorIs(t, err, pdomain.ErrDeadlineInPast)
}

func TestNewTask_DeadlineAtClockNowAccepted(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	p := validTaskParams()
	p.Clock = pdomain.FixedClock{At: at}
	p.Deadline = at
	_, err := pdomain.NewTask(p)
	assert.NoError(t, err)
}

func TestNewTask_EmptyTitle(t *testing.T) {
	p := validTaskParams()
	p.Title = "   "
	_, err := pdomain.NewTask(p)
	assert.ErrorIs(t, err, pdomain.ErrEmptyTitle)
}

func TestNewTask_InvalidDifficulty(t *testing.T) {
	for _, d := range []int{0, 6, -1} {
		p := validTaskParams()
		p.Difficulty = d
		_, err := pdomain.NewTask(p)
		assert.ErrorIs(t, err, pdomain.ErrInvalidDifficulty)
	}
}

func TestNewTask_InvalidImportance(t *testing.T) {
	bad := 4
	p := validTaskParams()
	p.Importance = &bad
	_, err := pdomain.NewTask(p)
	assert.ErrorIs(t, err, pdomain.ErrInvalidImportance)
}

func TestNewTask_ImportanceNilMeansZero(t *testing.T) {
	p := validTaskParams()
	task, err := pdomain.NewTask(p)
	require.NoError(t, err)
	assert.Nil(t, task.Importance())
	assert.Equal(t, 0, task.ImportanceOrZero())
}

func TestNewTask_InvalidEstimate(t *testing.T) {
	p := validTaskParams()
	p.EstimatedMinutes = 0
	_, err := pdomain.NewTask(p)
	assert.ErrorIs(t, err, pdomain.ErrInvalidEstimate)
}

func TestNewTask_ProgressExceedsEstimate(t *testing.T) {
	p := validTaskParams()
	p.ProgressMinutes = 121
	_, err := pdomain.NewTask(p)
	assert.ErrorIs(t, err, pdomain.ErrProgressExceeds)
}

func TestNewTask_MilestoneTooShort(t *testing.T) {
	p := validTaskParams()
	p.Milestones = []pdomain.Milestone{{Title: "Draft", MinutesEstimate: 4}}
	_, err := pdomain.NewTask(p)
	assert.ErrorIs(t, err, pdomain.ErrInvalidMilestone)
}

func TestTask_RemainingMinutes_NeverNegative(t *testing.T) {
	p := validTaskParams()
	p.EstimatedMinutes = 60
	p.ProgressMinutes = 60
	task, err := pdomain.NewTask(p)
	require.NoError(t, err)
	assert.Equal(t, 0, task.RemainingMinutes())
}

func TestTask_BaseCriteria_DefaultsWhenEmpty(t *testing.T) {
	p := validTaskParams()
	task, err := pdomain.NewTask(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"Complete session"}, task.BaseCriteria())
}

func TestTask_BaseCriteria_UsesDeclared(t *testing.T) {
	p := validTaskParams()
	p.SuccessCriteria = []string{"Solve all six problems"}
	task, err := pdomain.NewTask(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"Solve all six problems"}, task.BaseCriteria())
}

func TestTask_Checklist_SplitsNonEmptyLines(t *testing.T) {
	p := validTaskParams()
	p.ContentFocus = "Read chapter 4\n\n  Review notes  \n"
	task, err := pdomain.NewTask(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"Read chapter 4", "Review notes"}, task.Checklist())
}

func TestTask_Checklist_NilWhenBlank(t *testing.T) {
	p := validTaskParams()
	p.ContentFocus = "   \n  "
	task, err := pdomain.NewTask(p)
	require.NoError(t, err)
	assert.Nil(t, task.Checklist())
}

func TestRehydrateTask_PreservesFields(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()
	deadline := time.Now().Add(48 * time.Hour)
	created := time.Now().Add(-time.Hour)
	updated := time.Now()
	importance := 2

	task := pdomain.RehydrateTask(
		id, owner, "Calculus", "Finish problem set 4", deadline, "Asia/Jakarta",
		3, &importance, 120, 30, []string{"Solve problems"}, "Chapter 4",
		nil, created, updated,
	)

	assert.Equal(t, id, task.ID())
	assert.Equal(t, owner, task.Owner())
	assert.Equal(t, 90, task.RemainingMinutes())
	assert.Equal(t, 2, task.ImportanceOrZero())
}
