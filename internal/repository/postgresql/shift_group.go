package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftGroupRepository struct {
	db *database.DB
}

func NewShiftGroupRepository(db *database.DB) schedule.ShiftGroupRepository {
	return &shiftGroupRepository{db: db}
}

// GetByID implements schedule.ShiftGroupRepository.
func (r *shiftGroupRepository) GetByID(ctx context.Context, id string) (schedule.ShiftGroup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, start_time, end_time, break_duration, created_at, updated_at
		FROM shift_groups
		WHERE id = $1
	`

	var g schedule.ShiftGroup
	err := q.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.CompanyID, &g.Name, &g.StartTime, &g.EndTime, &g.BreakDuration, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ShiftGroup{}, schedule.ErrShiftGroupNotFound
		}
		return schedule.ShiftGroup{}, fmt.Errorf("failed to get shift group by id: %w", err)
	}

	return g, nil
}
