package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	shared "github.com/felixgeelhaar/studyflow/internal/shared/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database"
)

// PlanRepository is the Plan Store (C10), implemented once against the
// shared database.Connection/Executor/Transaction abstraction. Its SQL
// sticks to the dialect both backends share, so the only per-driver
// difference is the positional placeholder syntax, handled by ph; that
// keeps one implementation serving whichever driver the container
// registered, the same way database.DetectDriver and GenericUnitOfWork
// hide the backend choice from their callers.
type PlanRepository struct {
	conn   database.Connection
	driver database.Driver
}

// NewPlanRepository builds a Plan Store bound to conn.
func NewPlanRepository(conn database.Connection) *PlanRepository {
	return &PlanRepository{conn: conn, driver: conn.Driver()}
}

// ph renders the i-th (1-indexed) positional placeholder for the bound
// driver: pgx wants "$1", database/sql-backed SQLite wants "?".
func (r *PlanRepository) ph(i int) string {
	if r.driver == database.DriverPostgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func (r *PlanRepository) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

// EnsureSchema creates the plan_records table if it does not already
// exist. Called once at startup by the container, in place of a full
// migration runner (see DESIGN.md for why an embedded-SQL
// migration runner was dropped).
func (r *PlanRepository) EnsureSchema(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS plan_records (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		plan_version INTEGER NOT NULL,
		sessions_json TEXT NOT NULL,
		unscheduled_json TEXT NOT NULL,
		suggestions_json TEXT NOT NULL,
		generated_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`
	if _, err := r.executor(ctx).Exec(ctx, ddl); err != nil {
		return err
	}
	// The version race between concurrent rebuilds is resolved through
	// this index: the second writer's insert fails and SavePlan retries
	// at the next version.
	idx := `CREATE UNIQUE INDEX IF NOT EXISTS idx_plan_records_owner_version
		ON plan_records (owner, plan_version)`
	_, err := r.executor(ctx).Exec(ctx, idx)
	return err
}

func (r *PlanRepository) GetLatestPlan(ctx context.Context, owner uuid.UUID) (*pdomain.PlanRecord, error) {
	query := fmt.Sprintf(`SELECT id, owner, plan_version, sessions_json, unscheduled_json, suggestions_json, generated_at
		FROM plan_records WHERE owner = %s ORDER BY plan_version DESC LIMIT 1`, r.ph(1))

	row := r.executor(ctx).QueryRow(ctx, query, owner.String())
	plan, err := r.scanPlan(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}

func (r *PlanRepository) ListPlans(ctx context.Context, owner uuid.UUID) ([]*pdomain.PlanRecord, error) {
	query := fmt.Sprintf(`SELECT id, owner, plan_version, sessions_json, unscheduled_json, suggestions_json, generated_at
		FROM plan_records WHERE owner = %s ORDER BY plan_version ASC`, r.ph(1))

	rows, err := r.executor(ctx).Query(ctx, query, owner.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*pdomain.PlanRecord
	for rows.Next() {
		plan, err := r.scanPlanRows(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// scannable abstracts database.Row and database.Rows, both of which
// expose Scan(dest ...any) error.
type scannable interface {
	Scan(dest ...any) error
}

func (r *PlanRepository) scanPlan(row scannable) (*pdomain.PlanRecord, error) {
	return r.scanPlanRows(row)
}

func (r *PlanRepository) scanPlanRows(row scannable) (*pdomain.PlanRecord, error) {
	var (
		id, owner                                     string
		planVersion                                   int
		sessionsJSON, unscheduledJSON, suggestionsJSON string
		generatedAt                                    string
	)
	if err := row.Scan(&id, &owner, &planVersion, &sessionsJSON, &unscheduledJSON, &suggestionsJSON, &generatedAt); err != nil {
		return nil, err
	}

	planID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	ownerID, err := uuid.Parse(owner)
	if err != nil {
		return nil, err
	}
	sessions, err := decodeSessions([]byte(sessionsJSON))
	if err != nil {
		return nil, err
	}
	unscheduled, err := decodeUnscheduled([]byte(unscheduledJSON))
	if err != nil {
		return nil, err
	}
	suggestions, err := decodeSuggestions([]byte(suggestionsJSON))
	if err != nil {
		return nil, err
	}
	generated, err := time.Parse(time.RFC3339Nano, generatedAt)
	if err != nil {
		return nil, err
	}

	return &pdomain.PlanRecord{
		ID: planID, Owner: ownerID, PlanVersion: planVersion,
		Sessions: sessions, UnscheduledTasks: unscheduled, Suggestions: suggestions,
		GeneratedAt: generated,
	}, nil
}

// maxSaveAttempts bounds how often SavePlan chases the next planVersion
// when concurrent rebuilds keep winning the race.
const maxSaveAttempts = 3

// SavePlan persists plan with planVersion = max(existing)+1, reading the
// max and writing the new row under the same transaction. On backends
// whose default isolation lets two writers read the same max, the unique
// (owner, plan_version) index fails the loser, which retries at the next
// version; ErrConcurrentModification surfaces only when retries run out.
func (r *PlanRepository) SavePlan(ctx context.Context, owner uuid.UUID, plan *pdomain.PlanRecord) error {
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		err := r.trySavePlan(ctx, owner, plan)
		if err == nil {
			return nil
		}
		if !database.IsUniqueViolation(err) {
			return err
		}
	}
	return fmt.Errorf("save plan for owner %s: %w", owner, shared.ErrConcurrentModification)
}

func (r *PlanRepository) trySavePlan(ctx context.Context, owner uuid.UUID, plan *pdomain.PlanRecord) error {
	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	maxQuery := fmt.Sprintf(`SELECT COALESCE(MAX(plan_version), 0) FROM plan_records WHERE owner = %s`, r.ph(1))
	var maxVersion int
	if err := tx.QueryRow(ctx, maxQuery, owner.String()).Scan(&maxVersion); err != nil {
		return err
	}

	plan.PlanVersion = maxVersion + 1
	plan.Owner = owner
	for i := range plan.Sessions {
		plan.Sessions[i].PlanVersion = plan.PlanVersion
	}

	sessionsJSON, err := encodeSessions(plan.Sessions)
	if err != nil {
		return err
	}
	unscheduledJSON, err := encodeUnscheduled(plan.UnscheduledTasks)
	if err != nil {
		return err
	}
	suggestionsJSON, err := encodeSuggestions(plan.Suggestions)
	if err != nil {
		return err
	}

	insert := fmt.Sprintf(`INSERT INTO plan_records
		(id, owner, plan_version, sessions_json, unscheduled_json, suggestions_json, generated_at, created_at)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s)`,
		r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), r.ph(6), r.ph(7), r.ph(8))

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.Exec(ctx, insert,
		plan.ID.String(), owner.String(), plan.PlanVersion,
		string(sessionsJSON), string(unscheduledJSON), string(suggestionsJSON),
		plan.GeneratedAt.UTC().Format(time.RFC3339Nano), now,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateSessionStatus mutates the latest plan's session, re-reading it
// under the same transaction so a concurrent rebuild cannot be silently
// clobbered.
func (r *PlanRepository) UpdateSessionStatus(ctx context.Context, owner, sessionID uuid.UUID, status pdomain.SessionStatus) (int, error) {
	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	selectQuery := fmt.Sprintf(`SELECT id, owner, plan_version, sessions_json, unscheduled_json, suggestions_json, generated_at
		FROM plan_records WHERE owner = %s ORDER BY plan_version DESC LIMIT 1`, r.ph(1))
	row := tx.QueryRow(ctx, selectQuery, owner.String())
	plan, err := r.scanPlan(row)
	if err != nil {
		if database.IsNoRows(err) {
			return 0, pdomain.ErrNoPlanYet
		}
		return 0, err
	}

	session := plan.FindSession(sessionID)
	if session == nil {
		return 0, pdomain.ErrSessionNotFound
	}
	session.Status = status
	if status == pdomain.StatusDone {
		now := time.Now().UTC()
		session.CompletedAt = &now
	} else {
		session.CompletedAt = nil
	}

	sessionsJSON, err := encodeSessions(plan.Sessions)
	if err != nil {
		return 0, err
	}

	updateQuery := fmt.Sprintf(`UPDATE plan_records SET sessions_json = %s WHERE id = %s`, r.ph(1), r.ph(2))
	if _, err := tx.Exec(ctx, updateQuery, string(sessionsJSON), plan.ID.String()); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return plan.PlanVersion, nil
}

// RemoveTaskFromPlans strips every session and unscheduled entry tied to
// taskID from every stored plan of owner.
func (r *PlanRepository) RemoveTaskFromPlans(ctx context.Context, owner, taskID uuid.UUID) error {
	return r.cascade(ctx, owner, func(plan *pdomain.PlanRecord) bool {
		return plan.RemoveSessionsByTask(taskID)
	})
}

// RemoveHabitFromPlans strips every session tied to habitID from every
// stored plan of owner.
func (r *PlanRepository) RemoveHabitFromPlans(ctx context.Context, owner, habitID uuid.UUID) error {
	return r.cascade(ctx, owner, func(plan *pdomain.PlanRecord) bool {
		return plan.RemoveSessionsByHabit(habitID)
	})
}

func (r *PlanRepository) cascade(ctx context.Context, owner uuid.UUID, mutate func(*pdomain.PlanRecord) bool) error {
	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	selectQuery := fmt.Sprintf(`SELECT id, owner, plan_version, sessions_json, unscheduled_json, suggestions_json, generated_at
		FROM plan_records WHERE owner = %s`, r.ph(1))
	rows, err := tx.Query(ctx, selectQuery, owner.String())
	if err != nil {
		return err
	}

	var plans []*pdomain.PlanRecord
	for rows.Next() {
		plan, err := r.scanPlanRows(rows)
		if err != nil {
			rows.Close()
			return err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, plan := range plans {
		if !mutate(plan) {
			continue
		}
		sessionsJSON, err := encodeSessions(plan.Sessions)
		if err != nil {
			return err
		}
		unscheduledJSON, err := encodeUnscheduled(plan.UnscheduledTasks)
		if err != nil {
			return err
		}
		updateQuery := fmt.Sprintf(`UPDATE plan_records SET sessions_json = %s, unscheduled_json = %s WHERE id = %s`,
			r.ph(1), r.ph(2), r.ph(3))
		if _, err := tx.Exec(ctx, updateQuery, string(sessionsJSON), string(unscheduledJSON), plan.ID.String()); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
