package adjustment

import (
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAdjustmentRequest_Validate(t *testing.T) {
	req := CreateAdjustmentRequest{
		Date:          "2024-03-04",
		EntryType:     " clock_out ",
		RequestedTime: "18:00",
		Reason:        "forgot to punch out",
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, "CLOCK_OUT", req.EntryType)

	bad := CreateAdjustmentRequest{
		Date:          "04-03-2024",
		EntryType:     "LUNCH",
		RequestedTime: "25:00",
	}
	err := bad.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "entry_type")
	assert.Contains(t, fields, "requested_time")
	assert.Contains(t, fields, "reason")
}

func TestDecideRequest_Validate(t *testing.T) {
	req := DecideRequest{Decision: "reject"}
	require.NoError(t, req.Validate(true))
	assert.Equal(t, DecisionReject, Decision(req.Decision))

	missing := DecideRequest{}
	assert.Error(t, missing.Validate(true))
	assert.NoError(t, missing.Validate(false))
}

func TestAdjustmentFilter_Defaults(t *testing.T) {
	status := "pending"
	f := AdjustmentFilter{Status: &status}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, "PENDING", *f.Status)
}
