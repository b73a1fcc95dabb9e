package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepository{db: db}
}

const punchColumns = `
	id, employee_id, kind, ts, work_date,
	latitude, longitude, accuracy,
	source, adjustment_id, created_at`

type punchScanner interface {
	Scan(dest ...any) error
}

func scanPunch(row punchScanner) (punch.Event, error) {
	var (
		ev                            punch.Event
		latitude, longitude, accuracy *float64
	)
	err := row.Scan(
		&ev.ID, &ev.EmployeeID, &ev.Kind, &ev.Timestamp, &ev.WorkDate,
		&latitude, &longitude, &accuracy,
		&ev.Source, &ev.AdjustmentID, &ev.CreatedAt,
	)
	if err != nil {
		return punch.Event{}, err
	}

	if latitude != nil && longitude != nil {
		ev.Location = &punch.LocationHint{Latitude: *latitude, Longitude: *longitude, Accuracy: accuracy}
	}
	ev.Timestamp = ev.Timestamp.UTC()
	return ev, nil
}

// Create implements punch.PunchRepository.
func (r *punchRepository) Create(ctx context.Context, ev punch.Event) (punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	if ev.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return punch.Event{}, fmt.Errorf("failed to generate punch id: %w", err)
		}
		ev.ID = id.String()
	}

	var latitude, longitude, accuracy *float64
	if ev.Location != nil {
		latitude, longitude, accuracy = &ev.Location.Latitude, &ev.Location.Longitude, ev.Location.Accuracy
	}

	query := `
		INSERT INTO punch_events (
			id, employee_id, kind, ts, work_date,
			latitude, longitude, accuracy,
			source, adjustment_id, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at
	`

	createdAt := ev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	err := q.QueryRow(ctx, query,
		ev.ID,
		ev.EmployeeID,
		ev.Kind,
		ev.Timestamp.UTC(),
		ev.WorkDate,
		latitude,
		longitude,
		accuracy,
		ev.Source,
		ev.AdjustmentID,
		createdAt,
	).Scan(&ev.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return punch.Event{}, fmt.Errorf("%w: %s already recorded for %s", punch.ErrInvalidSequence, ev.Kind, ev.WorkDate.Format("2006-01-02"))
		}
		return punch.Event{}, fmt.Errorf("failed to create punch event: %w", err)
	}

	return ev, nil
}

// GetByID implements punch.PunchRepository.
func (r *punchRepository) GetByID(ctx context.Context, id string) (punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + punchColumns + ` FROM punch_events WHERE id = $1`

	ev, err := scanPunch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Event{}, punch.ErrPunchNotFound
		}
		return punch.Event{}, fmt.Errorf("failed to get punch event by id: %w", err)
	}

	return ev, nil
}

// ListByEmployee implements punch.PunchRepository.
func (r *punchRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM punch_events
		WHERE employee_id = $1
		  AND ts >= $2
		  AND ts < $3
		ORDER BY ts ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list punch events: %w", err)
	}
	defer rows.Close()

	events := make([]punch.Event, 0)
	for rows.Next() {
		ev, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch event: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating punch events: %w", err)
	}

	return events, nil
}
