package postgresql_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL, which must already carry the
// migrations. Tests are skipped when it is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	// punch_events rejects DELETE, so fixtures are truncated instead.
	_, err = db.Exec(ctx, `TRUNCATE TABLE punch_events, adjustment_requests, employees, shift_groups CASCADE`)
	require.NoError(t, err)

	return db
}

func seedEmployee(t *testing.T, db *database.DB, managerID *string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(context.Background(), `
		INSERT INTO employees (id, company_id, full_name, manager_id, start_time, end_time, break_duration, timezone)
		VALUES ($1, $2, $3, $4, '08:00', '17:00', 60, 'Asia/Jakarta')`,
		id, "00000000-0000-0000-0000-0000000000c1", "Employee "+id[:8], managerID,
	)
	require.NoError(t, err)
	return id
}

func TestEmployeeRepository_GetByID(t *testing.T) {
	db := openTestDB(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	id := seedEmployee(t, db, nil)

	emp, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", emp.Timezone)
	require.NotNil(t, emp.BreakDuration)
	assert.Equal(t, 60, *emp.BreakDuration)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPunchRepository_CreateAndList(t *testing.T) {
	db := openTestDB(t)
	repo := postgresql.NewPunchRepository(db)
	ctx := context.Background()

	empID := seedEmployee(t, db, nil)
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	in := time.Date(2024, 3, 4, 8, 0, 0, 0, jakarta)
	accuracy := 12.5
	created, err := repo.Create(ctx, punch.Event{
		EmployeeID: empID,
		Kind:       punch.KindClockIn,
		Timestamp:  in,
		WorkDate:   punch.WorkDateOf(in, jakarta),
		Location:   &punch.LocationHint{Latitude: -6.2, Longitude: 106.8, Accuracy: &accuracy},
		Source:     punch.SourceDevice,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	out := in.Add(9 * time.Hour)
	_, err = repo.Create(ctx, punch.Event{
		EmployeeID: empID,
		Kind:       punch.KindClockOut,
		Timestamp:  out,
		WorkDate:   punch.WorkDateOf(out, jakarta),
		Source:     punch.SourceDevice,
	})
	require.NoError(t, err)

	t.Run("duplicate device punch is out of sequence", func(t *testing.T) {
		_, err := repo.Create(ctx, punch.Event{
			EmployeeID: empID,
			Kind:       punch.KindClockIn,
			Timestamp:  in.Add(time.Minute),
			WorkDate:   punch.WorkDateOf(in, jakarta),
			Source:     punch.SourceDevice,
		})
		assert.ErrorIs(t, err, punch.ErrInvalidSequence)
	})

	t.Run("list is ordered and bounded", func(t *testing.T) {
		from, to := punch.DayBounds(in, jakarta)
		events, err := repo.ListByEmployee(ctx, empID, from, to)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, punch.KindClockIn, events[0].Kind)
		assert.True(t, events[0].Timestamp.Equal(in))
		require.NotNil(t, events[0].Location)
		assert.InDelta(t, 106.8, events[0].Location.Longitude, 1e-9)
		assert.Nil(t, events[1].Location)

		events, err = repo.ListByEmployee(ctx, empID, to, to.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, punch.SourceDevice, got.Source)

		_, err = repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, punch.ErrPunchNotFound)
	})
}

func TestAdjustmentRepository_DecideAndLink(t *testing.T) {
	db := openTestDB(t)
	adjRepo := postgresql.NewAdjustmentRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	transactor := postgresql.NewTransactor(db)
	ctx := context.Background()

	managerID := seedEmployee(t, db, nil)
	empID := seedEmployee(t, db, &managerID)

	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	req, err := adjRepo.Create(ctx, adjustment.Request{
		EmployeeID:    empID,
		ManagerID:     &managerID,
		Date:          date,
		EntryType:     punch.KindClockOut,
		RequestedTime: "17:00",
		Reason:        "forgot to clock out",
	})
	require.NoError(t, err)
	assert.Equal(t, adjustment.StatusPending, req.Status)

	pending, err := adjRepo.PendingDates(ctx, empID, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].Equal(date))

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	decidedAt := time.Date(2024, 3, 6, 9, 0, 0, 0, jakarta)

	err = transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		decided, err := adjRepo.Decide(txCtx, adjustment.DecisionRecord{
			RequestID: req.ID,
			Status:    adjustment.StatusApproved,
			DecidedBy: managerID,
			DecidedAt: decidedAt,
		})
		if err != nil {
			return err
		}

		instant, err := decided.RequestedInstant(jakarta)
		if err != nil {
			return err
		}
		ev, err := punchRepo.Create(txCtx, punch.Event{
			EmployeeID:   empID,
			Kind:         decided.EntryType,
			Timestamp:    instant,
			WorkDate:     punch.WorkDateOf(instant, jakarta),
			Source:       punch.SourceAdjustment,
			AdjustmentID: &decided.ID,
			CreatedAt:    decidedAt,
		})
		if err != nil {
			return err
		}
		return adjRepo.LinkPunchEvent(txCtx, decided.ID, ev.ID)
	})
	require.NoError(t, err)

	got, err := adjRepo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, adjustment.StatusApproved, got.Status)
	require.NotNil(t, got.PunchEventID)

	_, err = adjRepo.Decide(ctx, adjustment.DecisionRecord{
		RequestID: req.ID,
		Status:    adjustment.StatusRejected,
		DecidedBy: managerID,
		DecidedAt: decidedAt,
	})
	assert.ErrorIs(t, err, adjustment.ErrAdjustmentAlreadyProcessed)

	_, err = adjRepo.Decide(ctx, adjustment.DecisionRecord{RequestID: uuid.NewString(), Status: adjustment.StatusRejected, DecidedBy: managerID, DecidedAt: decidedAt})
	assert.ErrorIs(t, err, adjustment.ErrAdjustmentNotFound)

	pending, err = adjRepo.PendingDates(ctx, empID, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	adjRepo := postgresql.NewAdjustmentRepository(db)
	transactor := postgresql.NewTransactor(db)
	ctx := context.Background()

	empID := seedEmployee(t, db, nil)
	boom := errors.New("boom")

	var createdID string
	err := transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		req, err := adjRepo.Create(txCtx, adjustment.Request{
			EmployeeID:    empID,
			Date:          time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			EntryType:     punch.KindClockIn,
			RequestedTime: "08:00",
			Reason:        "late badge reader",
		})
		if err != nil {
			return err
		}
		createdID = req.ID
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NotEmpty(t, createdID)

	_, err = adjRepo.GetByID(ctx, createdID)
	assert.ErrorIs(t, err, adjustment.ErrAdjustmentNotFound)
}
