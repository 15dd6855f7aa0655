package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database"
)

// SlotRepository is a reference implementation of pdomain.SlotRepository.
type SlotRepository struct {
	conn   database.Connection
	driver database.Driver
}

func NewSlotRepository(conn database.Connection) *SlotRepository {
	return &SlotRepository{conn: conn, driver: conn.Driver()}
}

func (r *SlotRepository) ph(i int) string {
	if r.driver == database.DriverPostgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func (r *SlotRepository) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *SlotRepository) EnsureSchema(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS free_slots (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		weekday INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL
	)`
	_, err := r.executor(ctx).Exec(ctx, ddl)
	return err
}

func (r *SlotRepository) Save(ctx context.Context, s pdomain.FreeSlot) error {
	del := fmt.Sprintf(`DELETE FROM free_slots WHERE id = %s`, r.ph(1))
	if _, err := r.executor(ctx).Exec(ctx, del, s.ID().String()); err != nil {
		return err
	}
	insert := fmt.Sprintf(`INSERT INTO free_slots (id, owner, weekday, start_time, end_time) VALUES (%s, %s, %s, %s, %s)`,
		r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5))
	_, err := r.executor(ctx).Exec(ctx, insert, s.ID().String(), s.Owner().String(), s.Weekday(), s.StartTime(), s.EndTime())
	return err
}

func (r *SlotRepository) ListSlots(ctx context.Context, owner uuid.UUID) ([]pdomain.FreeSlot, error) {
	query := fmt.Sprintf(`SELECT id, owner, weekday, start_time, end_time FROM free_slots WHERE owner = %s`, r.ph(1))
	rows, err := r.executor(ctx).Query(ctx, query, owner.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []pdomain.FreeSlot
	for rows.Next() {
		var id, ownerStr, startTime, endTime string
		var weekday int
		if err := rows.Scan(&id, &ownerStr, &weekday, &startTime, &endTime); err != nil {
			return nil, err
		}
		slotID, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		ownerID, err := uuid.Parse(ownerStr)
		if err != nil {
			return nil, err
		}
		slot, err := pdomain.NewFreeSlot(slotID, ownerID, weekday, startTime, endTime)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}
