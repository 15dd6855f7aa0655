package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database"
)

// HabitRepository is a reference implementation of pdomain.HabitRepository.
type HabitRepository struct {
	conn   database.Connection
	driver database.Driver
}

func NewHabitRepository(conn database.Connection) *HabitRepository {
	return &HabitRepository{conn: conn, driver: conn.Driver()}
}

func (r *HabitRepository) ph(i int) string {
	if r.driver == database.DriverPostgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func (r *HabitRepository) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *HabitRepository) EnsureSchema(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		name TEXT NOT NULL,
		cadence TEXT NOT NULL,
		weekday INTEGER,
		minutes INTEGER NOT NULL,
		preset TEXT NOT NULL,
		preferred_start TEXT NOT NULL,
		energy_window TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`
	_, err := r.executor(ctx).Exec(ctx, ddl)
	return err
}

func (r *HabitRepository) Save(ctx context.Context, h *pdomain.Habit) error {
	del := fmt.Sprintf(`DELETE FROM habits WHERE id = %s`, r.ph(1))
	if _, err := r.executor(ctx).Exec(ctx, del, h.ID().String()); err != nil {
		return err
	}

	insert := fmt.Sprintf(`INSERT INTO habits
		(id, owner, name, cadence, weekday, minutes, preset, preferred_start, energy_window, created_at, updated_at)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)`,
		r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), r.ph(6), r.ph(7), r.ph(8), r.ph(9), r.ph(10), r.ph(11))

	var weekday any
	if h.Weekday() != nil {
		weekday = *h.Weekday()
	}

	_, err := r.executor(ctx).Exec(ctx, insert,
		h.ID().String(), h.Owner().String(), h.Name(), string(h.Cadence()), weekday, h.Minutes(),
		h.Preset(), h.PreferredStart(), h.EnergyWindow(),
		h.CreatedAt().UTC().Format(time.RFC3339Nano), h.UpdatedAt().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (r *HabitRepository) ListHabits(ctx context.Context, owner uuid.UUID) ([]*pdomain.Habit, error) {
	query := fmt.Sprintf(`SELECT id, owner, name, cadence, weekday, minutes, preset, preferred_start, energy_window, created_at, updated_at
		FROM habits WHERE owner = %s`, r.ph(1))

	rows, err := r.executor(ctx).Query(ctx, query, owner.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []*pdomain.Habit
	for rows.Next() {
		var (
			id, ownerStr, name, cadence                    string
			weekday                                         *int
			minutes                                         int
			preset, preferredStart, energyWindow            string
			createdAt, updatedAt                            string
		)
		if err := rows.Scan(&id, &ownerStr, &name, &cadence, &weekday, &minutes, &preset, &preferredStart, &energyWindow, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		habitID, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		ownerID, err := uuid.Parse(ownerStr)
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

		habits = append(habits, pdomain.RehydrateHabit(
			habitID, ownerID, name, pdomain.Cadence(cadence), weekday, minutes,
			preset, preferredStart, energyWindow, createdTime, updatedTime,
		))
	}
	return habits, rows.Err()
}
