package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) adjustment.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

const adjustmentColumns = `
	ar.id, ar.employee_id, ar.manager_id, ar.date, ar.entry_type, ar.requested_time,
	ar.reason, ar.attachment_url, ar.status,
	ar.decided_by, ar.response_comment, ar.response_date, ar.punch_event_id,
	ar.created_at, ar.updated_at,
	e.full_name AS employee_name`

func scanAdjustment(row punchScanner) (adjustment.Request, error) {
	var (
		req          adjustment.Request
		employeeName string
	)
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.ManagerID, &req.Date, &req.EntryType, &req.RequestedTime,
		&req.Reason, &req.AttachmentURL, &req.Status,
		&req.DecidedBy, &req.ResponseComment, &req.ResponseDate, &req.PunchEventID,
		&req.CreatedAt, &req.UpdatedAt,
		&employeeName,
	)
	if err != nil {
		return adjustment.Request{}, err
	}
	req.EmployeeName = &employeeName
	return req, nil
}

// Create implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) Create(ctx context.Context, req adjustment.Request) (adjustment.Request, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return adjustment.Request{}, fmt.Errorf("failed to generate adjustment id: %w", err)
		}
		req.ID = id.String()
	}
	if req.Status == "" {
		req.Status = adjustment.StatusPending
	}

	query := `
		INSERT INTO adjustment_requests (
			id, employee_id, manager_id, date, entry_type, requested_time,
			reason, attachment_url, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID,
		req.EmployeeID,
		req.ManagerID,
		req.Date,
		req.EntryType,
		req.RequestedTime,
		req.Reason,
		req.AttachmentURL,
		req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return adjustment.Request{}, fmt.Errorf("failed to create adjustment request: %w", err)
	}

	return req, nil
}

// GetByID implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) GetByID(ctx context.Context, id string) (adjustment.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + adjustmentColumns + `
		FROM adjustment_requests ar
		JOIN employees e ON ar.employee_id = e.id
		WHERE ar.id = $1
	`

	req, err := scanAdjustment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return adjustment.Request{}, adjustment.ErrAdjustmentNotFound
		}
		return adjustment.Request{}, fmt.Errorf("failed to get adjustment request by id: %w", err)
	}

	return req, nil
}

// List implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) List(ctx context.Context, filter adjustment.ListFilter) ([]adjustment.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filter.CompanyID != nil {
		conditions = append(conditions, fmt.Sprintf("e.company_id = $%d", argIndex))
		args = append(args, *filter.CompanyID)
		argIndex++
	}

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("ar.employee_id = $%d", argIndex))
		args = append(args, *filter.EmployeeID)
		argIndex++
	}

	if filter.ManagerID != nil {
		conditions = append(conditions, fmt.Sprintf("ar.manager_id = $%d", argIndex))
		args = append(args, *filter.ManagerID)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("ar.status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("ar.date >= $%d", argIndex))
		args = append(args, *filter.StartDate)
		argIndex++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("ar.date <= $%d", argIndex))
		args = append(args, *filter.EndDate)
		argIndex++
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM adjustment_requests ar JOIN employees e ON ar.employee_id = e.id ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count adjustment requests: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM adjustment_requests ar
		JOIN employees e ON ar.employee_id = e.id
		%s
		ORDER BY ar.created_at DESC, ar.id DESC
		LIMIT $%d OFFSET $%d
	`, adjustmentColumns, whereClause, argIndex, argIndex+1)

	args = append(args, limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list adjustment requests: %w", err)
	}
	defer rows.Close()

	requests := make([]adjustment.Request, 0)
	for rows.Next() {
		req, err := scanAdjustment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan adjustment request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating adjustment requests: %w", err)
	}

	return requests, total, nil
}

// Decide implements adjustment.AdjustmentRepository. The status guard in the
// WHERE clause makes the transition a single check-then-set.
func (r *adjustmentRepository) Decide(ctx context.Context, rec adjustment.DecisionRecord) (adjustment.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE adjustment_requests
		SET status = $2,
			decided_by = $3,
			response_comment = $4,
			response_date = $5,
			updated_at = $5
		WHERE id = $1
		  AND status = 'PENDING'
	`

	tag, err := q.Exec(ctx, query, rec.RequestID, rec.Status, rec.DecidedBy, rec.Comment, rec.DecidedAt)
	if err != nil {
		return adjustment.Request{}, fmt.Errorf("failed to decide adjustment request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return adjustment.Request{}, r.notPendingError(ctx, rec.RequestID)
	}

	return r.GetByID(ctx, rec.RequestID)
}

// LinkPunchEvent implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) LinkPunchEvent(ctx context.Context, requestID, punchEventID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE adjustment_requests
		SET punch_event_id = $2, updated_at = NOW()
		WHERE id = $1
	`, requestID, punchEventID)
	if err != nil {
		return fmt.Errorf("failed to link punch event: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return adjustment.ErrAdjustmentNotFound
	}

	return nil
}

// Attach implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) Attach(ctx context.Context, requestID, attachmentURL string) (adjustment.Request, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE adjustment_requests
		SET attachment_url = $2, updated_at = NOW()
		WHERE id = $1
		  AND status = 'PENDING'
	`, requestID, attachmentURL)
	if err != nil {
		return adjustment.Request{}, fmt.Errorf("failed to attach evidence: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return adjustment.Request{}, r.notPendingError(ctx, requestID)
	}

	return r.GetByID(ctx, requestID)
}

// PendingDates implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) PendingDates(ctx context.Context, employeeID string, from, to time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT DISTINCT date
		FROM adjustment_requests
		WHERE employee_id = $1
		  AND status = 'PENDING'
		  AND date BETWEEN $2 AND $3
		ORDER BY date
	`, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending adjustment dates: %w", err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan pending adjustment date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

// notPendingError tells a missing request apart from one that has already
// left PENDING after a guarded update touched no rows.
func (r *adjustmentRepository) notPendingError(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var status adjustment.Status
	err := q.QueryRow(ctx, `SELECT status FROM adjustment_requests WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return adjustment.ErrAdjustmentNotFound
		}
		return fmt.Errorf("failed to read adjustment status: %w", err)
	}

	return fmt.Errorf("%w: status is %s", adjustment.ErrAdjustmentAlreadyProcessed, status)
}
