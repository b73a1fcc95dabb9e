package adjustment

import (
	"context"
)

type AdjustmentService interface {
	Create(ctx context.Context, req CreateAdjustmentRequest) (AdjustmentResponse, error)
	Approve(ctx context.Context, id string, req DecideRequest) (AdjustmentResponse, error)
	Reject(ctx context.Context, id string, req DecideRequest) (AdjustmentResponse, error)
	Decide(ctx context.Context, id string, req DecideRequest) (AdjustmentResponse, error)
	AttachEvidence(ctx context.Context, id string, req AttachEvidenceRequest) (AdjustmentResponse, error)
	Get(ctx context.Context, id string) (AdjustmentResponse, error)
	ListMy(ctx context.Context, filter AdjustmentFilter) (ListAdjustmentResponse, error)
	List(ctx context.Context, filter AdjustmentFilter) (ListAdjustmentResponse, error)
}
