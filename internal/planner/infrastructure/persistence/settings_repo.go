package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database"
)

// SettingsRepository is a reference implementation of pdomain.SettingsRepository.
// An owner with no stored row gets pdomain.DefaultSettings rather than an
// error, the same zero-config posture applied to other
// per-user preference lookups.
type SettingsRepository struct {
	conn   database.Connection
	driver database.Driver
}

func NewSettingsRepository(conn database.Connection) *SettingsRepository {
	return &SettingsRepository{conn: conn, driver: conn.Driver()}
}

func (r *SettingsRepository) ph(i int) string {
	if r.driver == database.DriverPostgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func (r *SettingsRepository) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *SettingsRepository) EnsureSchema(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS planner_settings (
		owner TEXT PRIMARY KEY,
		daily_limit_minutes INTEGER NOT NULL,
		buffer_percent REAL NOT NULL,
		break_focus_minutes INTEGER NOT NULL,
		break_rest_minutes INTEGER NOT NULL,
		break_label TEXT NOT NULL,
		timezone TEXT NOT NULL
	)`
	_, err := r.executor(ctx).Exec(ctx, ddl)
	return err
}

func (r *SettingsRepository) Save(ctx context.Context, s pdomain.Settings) error {
	del := fmt.Sprintf(`DELETE FROM planner_settings WHERE owner = %s`, r.ph(1))
	if _, err := r.executor(ctx).Exec(ctx, del, s.Owner.String()); err != nil {
		return err
	}
	insert := fmt.Sprintf(`INSERT INTO planner_settings
		(owner, daily_limit_minutes, buffer_percent, break_focus_minutes, break_rest_minutes, break_label, timezone)
		VALUES (%s, %s, %s, %s, %s, %s, %s)`,
		r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), r.ph(6), r.ph(7))
	_, err := r.executor(ctx).Exec(ctx, insert,
		s.Owner.String(), s.DailyLimitMinutes, s.BufferPercent,
		s.BreakPreset.Focus, s.BreakPreset.Rest, s.BreakPreset.Label, s.Timezone,
	)
	return err
}

func (r *SettingsRepository) GetSettings(ctx context.Context, owner uuid.UUID) (pdomain.Settings, error) {
	query := fmt.Sprintf(`SELECT daily_limit_minutes, buffer_percent, break_focus_minutes, break_rest_minutes, break_label, timezone
		FROM planner_settings WHERE owner = %s`, r.ph(1))

	row := r.executor(ctx).QueryRow(ctx, query, owner.String())
	var (
		dailyLimit          int
		bufferPercent       float64
		focus, rest         int
		label, timezone     string
	)
	err := row.Scan(&dailyLimit, &bufferPercent, &focus, &rest, &label, &timezone)
	if err != nil {
		if database.IsNoRows(err) {
			return pdomain.DefaultSettings(owner), nil
		}
		return pdomain.Settings{}, err
	}

	return pdomain.Settings{
		Owner:             owner,
		DailyLimitMinutes: dailyLimit,
		BufferPercent:     bufferPercent,
		BreakPreset:       pdomain.BreakPreset{Focus: focus, Rest: rest, Label: label},
		Timezone:          timezone,
	}, nil
}
