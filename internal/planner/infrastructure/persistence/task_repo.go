package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database"
)

// TaskRepository is a reference implementation of pdomain.TaskRepository.
// Task CRUD is out of core scope; this exists so the
// module is runnable end to end without an external collaborator, the
// same shape used elsewhere: a domain interface plus a
// concrete store.
type TaskRepository struct {
	conn   database.Connection
	driver database.Driver
}

func NewTaskRepository(conn database.Connection) *TaskRepository {
	return &TaskRepository{conn: conn, driver: conn.Driver()}
}

func (r *TaskRepository) ph(i int) string {
	if r.driver == database.DriverPostgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func (r *TaskRepository) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *TaskRepository) EnsureSchema(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		subject TEXT NOT NULL,
		title TEXT NOT NULL,
		deadline TEXT NOT NULL,
		timezone TEXT NOT NULL,
		difficulty INTEGER NOT NULL,
		importance INTEGER,
		estimated_minutes INTEGER NOT NULL,
		progress_minutes INTEGER NOT NULL,
		success_criteria TEXT NOT NULL,
		content_focus TEXT NOT NULL,
		milestones TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`
	_, err := r.executor(ctx).Exec(ctx, ddl)
	return err
}

// Save inserts or replaces a task row (simple upsert by primary key,
// acceptable here because tasks are always written whole by their owning
// collaborator, never patched piecemeal).
func (r *TaskRepository) Save(ctx context.Context, t *pdomain.Task) error {
	criteriaJSON, err := json.Marshal(t.SuccessCriteria())
	if err != nil {
		return err
	}
	milestonesJSON, err := json.Marshal(t.Milestones())
	if err != nil {
		return err
	}

	del := fmt.Sprintf(`DELETE FROM tasks WHERE id = %s`, r.ph(1))
	if _, err := r.executor(ctx).Exec(ctx, del, t.ID().String()); err != nil {
		return err
	}

	insert := fmt.Sprintf(`INSERT INTO tasks
		(id, owner, subject, title, deadline, timezone, difficulty, importance, estimated_minutes, progress_minutes, success_criteria, content_focus, milestones, created_at, updated_at)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)`,
		r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), r.ph(6), r.ph(7), r.ph(8), r.ph(9), r.ph(10), r.ph(11), r.ph(12), r.ph(13), r.ph(14), r.ph(15))

	_, err = r.executor(ctx).Exec(ctx, insert,
		t.ID().String(), t.Owner().String(), t.Subject(), t.Title(),
		t.Deadline().UTC().Format(time.RFC3339Nano), t.Timezone(), t.Difficulty(), importanceValue(t.Importance()),
		t.EstimatedMinutes(), t.ProgressMinutes(), string(criteriaJSON), t.ContentFocus(), string(milestonesJSON),
		t.CreatedAt().UTC().Format(time.RFC3339Nano), t.UpdatedAt().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func importanceValue(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

// ListTasks implements pdomain.TaskRepository.
func (r *TaskRepository) ListTasks(ctx context.Context, owner uuid.UUID) ([]*pdomain.Task, error) {
	query := fmt.Sprintf(`SELECT id, owner, subject, title, deadline, timezone, difficulty, importance, estimated_minutes, progress_minutes, success_criteria, content_focus, milestones, created_at, updated_at
		FROM tasks WHERE owner = %s`, r.ph(1))

	rows, err := r.executor(ctx).Query(ctx, query, owner.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*pdomain.Task
	for rows.Next() {
		var (
			id, ownerStr, subject, title, deadline, timezone string
			difficulty, estimated, progress                  int
			importance                                       *int
			criteriaJSON, contentFocus, milestonesJSON        string
			createdAt, updatedAt                              string
		)
		if err := rows.Scan(&id, &ownerStr, &subject, &title, &deadline, &timezone, &difficulty, &importance,
			&estimated, &progress, &criteriaJSON, &contentFocus, &milestonesJSON, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		taskID, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		ownerID, err := uuid.Parse(ownerStr)
		if err != nil {
			return nil, err
		}
		deadlineTime, err := time.Parse(time.RFC3339Nano, deadline)
		if err != nil {
			return nil, err
		}
		createdTime, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		updatedTime, err := time.Parse(time.RFC3339Nano, updatedAt)
		if err != nil {
			return nil, err
		}

		var criteria []string
		if criteriaJSON != "" {
			if err := json.Unmarshal([]byte(criteriaJSON), &criteria); err != nil {
				return nil, err
			}
		}
		var milestones []pdomain.Milestone
		if milestonesJSON != "" {
			if err := json.Unmarshal([]byte(milestonesJSON), &milestones); err != nil {
				return nil, err
			}
		}

		tasks = append(tasks, pdomain.RehydrateTask(
			taskID, ownerID, subject, title, deadlineTime, timezone, difficulty, importance,
			estimated, progress, criteria, contentFocus, milestones, createdTime, updatedTime,
		))
	}
	return tasks, rows.Err()
}
