package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database"
)

// FeedbackRepository is a reference implementation of pdomain.FeedbackRepository.
type FeedbackRepository struct {
	conn   database.Connection
	driver database.Driver
}

func NewFeedbackRepository(conn database.Connection) *FeedbackRepository {
	return &FeedbackRepository{conn: conn, driver: conn.Driver()}
}

func (r *FeedbackRepository) ph(i int) string {
	if r.driver == database.DriverPostgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func (r *FeedbackRepository) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *FeedbackRepository) EnsureSchema(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS feedback (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		label TEXT NOT NULL,
		note TEXT NOT NULL,
		plan_version INTEGER NOT NULL,
		submitted_at TEXT NOT NULL
	)`
	_, err := r.executor(ctx).Exec(ctx, ddl)
	return err
}

func (r *FeedbackRepository) Save(ctx context.Context, f pdomain.Feedback) error {
	insert := fmt.Sprintf(`INSERT INTO feedback (id, owner, label, note, plan_version, submitted_at)
		VALUES (%s, %s, %s, %s, %s, %s)`,
		r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), r.ph(6))
	_, err := r.executor(ctx).Exec(ctx, insert,
		f.ID.String(), f.Owner.String(), string(f.Label), f.Note, f.PlanVersion,
		f.SubmittedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// ListFeedback returns an owner's feedback ordered ascending by submission
// time, the order the Feedback Tuner (C9) expects its "latest" input to
// be derived from.
func (r *FeedbackRepository) ListFeedback(ctx context.Context, owner uuid.UUID) ([]pdomain.Feedback, error) {
	query := fmt.Sprintf(`SELECT id, owner, label, note, plan_version, submitted_at
		FROM feedback WHERE owner = %s ORDER BY submitted_at ASC`, r.ph(1))

	rows, err := r.executor(ctx).Query(ctx, query, owner.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedback []pdomain.Feedback
	for rows.Next() {
		var (
			id, ownerStr, label, note string
			planVersion               int
			submittedAt               string
		)
		if err := rows.Scan(&id, &ownerStr, &label, &note, &planVersion, &submittedAt); err != nil {
			return nil, err
		}
		feedbackID, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		ownerID, err := uuid.Parse(ownerStr)
		if err != nil {
			return nil, err
		}
		submitted, err := time.Parse(time.RFC3339Nano, submittedAt)
		if err != nil {
			return nil, err
		}
		feedback = append(feedback, pdomain.Feedback{
			ID: feedbackID, Owner: ownerID, Label: pdomain.FeedbackLabel(label), Note: note,
			PlanVersion: planVersion, SubmittedAt: submitted,
		})
	}
	return feedback, rows.Err()
}
