// Package memory keeps the attendance data in process memory. It backs local
// runs without PostgreSQL and the service tests, with the same transaction
// and uniqueness guarantees as the postgresql package.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type txKey struct{}

type Store struct {
	// txMu serializes transactions, mu guards the data itself.
	txMu sync.Mutex
	mu   sync.RWMutex

	employees   map[string]employee.Employee
	shiftGroups map[string]schedule.ShiftGroup
	punches     []punch.Event
	adjustments map[string]adjustment.Request
}

func NewStore() *Store {
	return &Store{
		employees:   make(map[string]employee.Employee),
		shiftGroups: make(map[string]schedule.ShiftGroup),
		adjustments: make(map[string]adjustment.Request),
	}
}

// undoLog collects the inverse of every write made inside one transaction.
// Rolling back replays it newest first, leaving writes made by others alone.
type undoLog struct {
	ops []func(s *Store)
}

// recordUndo registers op when ctx carries a transaction. Caller holds mu.
func (s *Store) recordUndo(ctx context.Context, op func(s *Store)) {
	if log, ok := ctx.Value(txKey{}).(*undoLog); ok {
		log.ops = append(log.ops, op)
	}
}

func (s *Store) rollback(log *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(log.ops) - 1; i >= 0; i-- {
		log.ops[i](s)
	}
}

// removePunch drops the punch with id. Caller holds mu.
func (s *Store) removePunch(id string) {
	for i, ev := range s.punches {
		if ev.ID == id {
			s.punches = append(s.punches[:i], s.punches[i+1:]...)
			return
		}
	}
}

type transactor struct {
	store *Store
}

func NewTransactor(store *Store) database.Transactor {
	return &transactor{store: store}
}

// WithinTransaction implements database.Transactor. Transactions run one at a
// time; a failed fn undoes the writes it made through the tx context.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*undoLog); ok {
		return fn(ctx)
	}

	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	log := &undoLog{}
	defer func() {
		if p := recover(); p != nil {
			t.store.rollback(log)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		t.store.rollback(log)
		return err
	}
	return nil
}

// AddEmployee inserts or replaces an employee record.
func (s *Store) AddEmployee(emp employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[emp.ID] = emp
}

// AddShiftGroup inserts or replaces a shift group.
func (s *Store) AddShiftGroup(g schedule.ShiftGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shiftGroups[g.ID] = g
}

type seedFile struct {
	ShiftGroups []struct {
		ID            string `json:"id"`
		CompanyID     string `json:"company_id"`
		Name          string `json:"name"`
		StartTime     string `json:"start_time"`
		EndTime       string `json:"end_time"`
		BreakDuration int    `json:"break_duration"`
	} `json:"shift_groups"`
	Employees []struct {
		ID            string  `json:"id"`
		CompanyID     string  `json:"company_id"`
		UserID        *string `json:"user_id"`
		FullName      string  `json:"full_name"`
		ManagerID     *string `json:"manager_id"`
		ShiftGroupID  *string `json:"shift_group_id"`
		StartTime     *string `json:"start_time"`
		EndTime       *string `json:"end_time"`
		BreakDuration *int    `json:"break_duration"`
		Timezone      string  `json:"timezone"`
	} `json:"employees"`
}

// LoadSeedFile reads shift groups and employees from a JSON file.
func (s *Store) LoadSeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, g := range seed.ShiftGroups {
		s.AddShiftGroup(schedule.ShiftGroup{
			ID:            g.ID,
			CompanyID:     g.CompanyID,
			Name:          g.Name,
			StartTime:     g.StartTime,
			EndTime:       g.EndTime,
			BreakDuration: g.BreakDuration,
		})
	}

	for _, e := range seed.Employees {
		s.AddEmployee(employee.Employee{
			ID:            e.ID,
			CompanyID:     e.CompanyID,
			UserID:        e.UserID,
			FullName:      e.FullName,
			ManagerID:     e.ManagerID,
			ShiftGroupID:  e.ShiftGroupID,
			StartTime:     e.StartTime,
			EndTime:       e.EndTime,
			BreakDuration: e.BreakDuration,
			Timezone:      e.Timezone,
		})
	}

	return nil
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
