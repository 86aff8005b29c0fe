package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.ScheduleRepository = (*ScheduleRepo)(nil)

const scheduleColumns = `s.id, s.user_id, s.market_id, s.date, s.start_time, s.end_time,
	s.break_start, s.break_end, s.position, s.created_at`

// ScheduleRepo turnos sobre PostgreSQL.
type ScheduleRepo struct {
	q Querier
}

func NewScheduleRepository(q Querier) *ScheduleRepo {
	return &ScheduleRepo{q: q}
}

func (r *ScheduleRepo) Create(ctx context.Context, s *entity.Schedule) error {
	query := `
		INSERT INTO schedules (id, user_id, market_id, date, start_time, end_time, break_start, break_end, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.MarketID, s.Date, s.StartTime, s.EndTime, s.BreakStart, s.BreakEnd, s.Position, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id string) (*entity.Schedule, error) {
	row := r.q.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM schedules s WHERE s.id = $1`, id)
	s, err := scanSchedule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return s, nil
}

func (r *ScheduleRepo) List(ctx context.Context, scope policy.Scope) ([]*entity.Schedule, error) {
	cond, args := scopeCondition(scope, "u", 1)
	rows, err := r.q.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedules s JOIN users u ON u.id = s.user_id
		WHERE `+cond+`
		ORDER BY s.date DESC, s.start_time DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return collect(rows, scanSchedule)
}

func (r *ScheduleRepo) ListForDay(ctx context.Context, companyID string, day time.Time) ([]*entity.Schedule, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedules s JOIN users u ON u.id = s.user_id
		WHERE u.company_id = $1 AND s.date = $2::date
		ORDER BY s.start_time`, companyID, day.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list schedules for day: %w", err)
	}
	return collect(rows, scanSchedule)
}

func (r *ScheduleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

func scanSchedule(row pgxScanner) (*entity.Schedule, error) {
	var s entity.Schedule
	if err := row.Scan(&s.ID, &s.UserID, &s.MarketID, &s.Date, &s.StartTime, &s.EndTime,
		&s.BreakStart, &s.BreakEnd, &s.Position, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
