package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type AdjustmentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Attach(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type adjustmentHandlerImpl struct {
	adjustmentService adjustment.AdjustmentService
}

func NewAdjustmentHandler(adjustmentService adjustment.AdjustmentService) AdjustmentHandler {
	return &adjustmentHandlerImpl{
		adjustmentService: adjustmentService,
	}
}

// Create handles POST /adjustments
func (h *adjustmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req adjustment.CreateAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.adjustmentService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment request submitted", result)
}

func parseAdjustmentFilter(r *http.Request) adjustment.AdjustmentFilter {
	query := r.URL.Query()
	var filter adjustment.AdjustmentFilter

	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	if p := query.Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := query.Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	return filter
}

func writeAdjustmentList(w http.ResponseWriter, result adjustment.ListAdjustmentResponse) {
	response.SuccessWithMeta(w, result.Adjustments, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ListMy handles GET /adjustments/my
func (h *adjustmentHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	result, err := h.adjustmentService.ListMy(r.Context(), parseAdjustmentFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeAdjustmentList(w, result)
}

// List handles GET /adjustments
func (h *adjustmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.adjustmentService.List(r.Context(), parseAdjustmentFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeAdjustmentList(w, result)
}

// Get handles GET /adjustments/{id}
func (h *adjustmentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.adjustmentService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Attach handles POST /adjustments/{id}/attachment (multipart, field "file")
func (h *adjustmentHandlerImpl) Attach(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, adjustment.MaxAttachmentSize+(1<<20))
	if err := r.ParseMultipartForm(adjustment.MaxAttachmentSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.BadRequest(w, "Evidence file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	result, err := h.adjustmentService.AttachEvidence(r.Context(), id, adjustment.AttachEvidenceRequest{
		File:     file,
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Evidence attached", result)
}

// decodeDecision reads an optional JSON body; an empty body is a decision
// without comment.
func decodeDecision(r *http.Request) (adjustment.DecideRequest, error) {
	var req adjustment.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return adjustment.DecideRequest{}, err
	}
	return req, nil
}

// Approve handles POST /adjustments/{id}/approve
func (h *adjustmentHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, err := decodeDecision(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.adjustmentService.Approve(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment request approved", result)
}

// Reject handles POST /adjustments/{id}/reject
func (h *adjustmentHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, err := decodeDecision(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.adjustmentService.Reject(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment request rejected", result)
}

// Decide handles POST /adjustments/{id}/decision
func (h *adjustmentHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, err := decodeDecision(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.adjustmentService.Decide(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment request decided", result)
}
