package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
)

type adjustmentRepository struct {
	store *Store
}

func NewAdjustmentRepository(store *Store) adjustment.AdjustmentRepository {
	return &adjustmentRepository{store: store}
}

// withEmployeeName fills the joined employee name. Caller holds the lock.
func (r *adjustmentRepository) withEmployeeName(req adjustment.Request) adjustment.Request {
	if emp, ok := r.store.employees[req.EmployeeID]; ok {
		name := emp.FullName
		req.EmployeeName = &name
	}
	return req
}

func (r *adjustmentRepository) Create(ctx context.Context, req adjustment.Request) (adjustment.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if req.ID == "" {
		id, err := newID()
		if err != nil {
			return adjustment.Request{}, fmt.Errorf("failed to generate adjustment id: %w", err)
		}
		req.ID = id
	}
	if req.Status == "" {
		req.Status = adjustment.StatusPending
	}

	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	r.store.adjustments[req.ID] = req
	id := req.ID
	r.store.recordUndo(ctx, func(s *Store) { delete(s.adjustments, id) })
	return r.withEmployeeName(req), nil
}

func (r *adjustmentRepository) GetByID(ctx context.Context, id string) (adjustment.Request, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	req, ok := r.store.adjustments[id]
	if !ok {
		return adjustment.Request{}, adjustment.ErrAdjustmentNotFound
	}
	return r.withEmployeeName(req), nil
}

func (r *adjustmentRepository) List(ctx context.Context, filter adjustment.ListFilter) ([]adjustment.Request, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]adjustment.Request, 0)
	for _, req := range r.store.adjustments {
		if filter.CompanyID != nil && r.store.employees[req.EmployeeID].CompanyID != *filter.CompanyID {
			continue
		}
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.ManagerID != nil && (req.ManagerID == nil || *req.ManagerID != *filter.ManagerID) {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && req.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && req.Date.After(*filter.EndDate) {
			continue
		}
		matched = append(matched, r.withEmployeeName(req))
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func (r *adjustmentRepository) Decide(ctx context.Context, rec adjustment.DecisionRecord) (adjustment.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.adjustments[rec.RequestID]
	if !ok {
		return adjustment.Request{}, adjustment.ErrAdjustmentNotFound
	}
	if !req.IsPending() {
		return adjustment.Request{}, fmt.Errorf("%w: status is %s", adjustment.ErrAdjustmentAlreadyProcessed, req.Status)
	}

	prev := req
	r.store.recordUndo(ctx, func(s *Store) {
		cur, ok := s.adjustments[prev.ID]
		if !ok {
			return
		}
		cur.Status = prev.Status
		cur.DecidedBy = prev.DecidedBy
		cur.ResponseComment = prev.ResponseComment
		cur.ResponseDate = prev.ResponseDate
		cur.UpdatedAt = prev.UpdatedAt
		s.adjustments[prev.ID] = cur
	})

	decidedBy := rec.DecidedBy
	decidedAt := rec.DecidedAt
	req.Status = rec.Status
	req.DecidedBy = &decidedBy
	req.ResponseComment = rec.Comment
	req.ResponseDate = &decidedAt
	req.UpdatedAt = decidedAt

	r.store.adjustments[req.ID] = req
	return r.withEmployeeName(req), nil
}

func (r *adjustmentRepository) LinkPunchEvent(ctx context.Context, requestID, punchEventID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.adjustments[requestID]
	if !ok {
		return adjustment.ErrAdjustmentNotFound
	}

	prevEventID := req.PunchEventID
	r.store.recordUndo(ctx, func(s *Store) {
		if cur, ok := s.adjustments[requestID]; ok {
			cur.PunchEventID = prevEventID
			s.adjustments[requestID] = cur
		}
	})

	req.PunchEventID = &punchEventID
	req.UpdatedAt = time.Now().UTC()
	r.store.adjustments[requestID] = req
	return nil
}

func (r *adjustmentRepository) Attach(ctx context.Context, requestID, attachmentURL string) (adjustment.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.adjustments[requestID]
	if !ok {
		return adjustment.Request{}, adjustment.ErrAdjustmentNotFound
	}
	if !req.IsPending() {
		return adjustment.Request{}, fmt.Errorf("%w: status is %s", adjustment.ErrAdjustmentAlreadyProcessed, req.Status)
	}

	prevURL := req.AttachmentURL
	r.store.recordUndo(ctx, func(s *Store) {
		if cur, ok := s.adjustments[requestID]; ok {
			cur.AttachmentURL = prevURL
			s.adjustments[requestID] = cur
		}
	})

	req.AttachmentURL = &attachmentURL
	req.UpdatedAt = time.Now().UTC()
	r.store.adjustments[requestID] = req
	return r.withEmployeeName(req), nil
}

func (r *adjustmentRepository) PendingDates(ctx context.Context, employeeID string, from, to time.Time) ([]time.Time, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := make(map[time.Time]bool)
	dates := make([]time.Time, 0)
	for _, req := range r.store.adjustments {
		if req.EmployeeID != employeeID || !req.IsPending() {
			continue
		}
		if req.Date.Before(from) || req.Date.After(to) || seen[req.Date] {
			continue
		}
		seen[req.Date] = true
		dates = append(dates, req.Date)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}
