package source

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/class_widget/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres читает каталог из таблиц class_sessions и bookings
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres создаёт источник поверх пула соединений
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Sessions получает все занятия
func (p *Postgres) Sessions(ctx context.Context) ([]*model.ClassSession, error) {
	query := `
		SELECT id, name, start_time, duration_min, instructor, room, level,
		       capacity, spots, session_date, weekday, is_substitution, substituted_for
		FROM class_sessions
		ORDER BY COALESCE(session_date, DATE '1970-01-01'), weekday, start_time, id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query class sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*model.ClassSession
	for rows.Next() {
		var (
			s       model.ClassSession
			date    *time.Time
			weekday *int16
		)
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.StartTime,
			&s.Duration,
			&s.Instructor,
			&s.Room,
			&s.Level,
			&s.Capacity,
			&s.Spots,
			&date,
			&weekday,
			&s.IsSubstitution,
			&s.SubstitutedFor,
		)
		if err != nil {
			return nil, fmt.Errorf("scan class session: %w", err)
		}

		if date != nil {
			s.Date = date.Format("2006-01-02")
		}
		if weekday != nil {
			s.Day = model.DayIndex(int(*weekday))
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate class sessions: %w", err)
	}

	return sessions, nil
}

// Reservations получает активные записи посетителя
func (p *Postgres) Reservations(ctx context.Context, visitor string) ([]model.Reservation, error) {
	if visitor == "" {
		return nil, ErrNoVisitor
	}

	query := `
		SELECT b.id, b.class_id, c.name, c.instructor, b.session_date, c.start_time, c.duration_min, c.room
		FROM bookings b
		JOIN class_sessions c ON c.id = b.class_id
		WHERE b.visitor = $1 AND b.cancelled_at IS NULL
		ORDER BY b.session_date, c.start_time
	`

	rows, err := p.pool.Query(ctx, query, visitor)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	var reservations []model.Reservation
	for rows.Next() {
		var (
			r    model.Reservation
			date time.Time
		)
		err := rows.Scan(
			&r.ID,
			&r.ClassID,
			&r.ActivityName,
			&r.Instructor,
			&date,
			&r.Time,
			&r.Duration,
			&r.Room,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		r.Date = date.Format("2006-01-02")
		reservations = append(reservations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}

	return reservations, nil
}
