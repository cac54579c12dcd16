package http

import (
	"net/http"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/returnflow"
	"github.com/mapsensemedia/betterrental-sub009/internal/service"

	"github.com/gorilla/mux"
)

// ReturnsHandler exposes the return-processing workflow to the ops console.
type ReturnsHandler struct {
	bookingSvc service.BookingService
}

func NewReturnsHandler(bookingSvc service.BookingService) *ReturnsHandler {
	return &ReturnsHandler{bookingSvc: bookingSvc}
}

func (h *ReturnsHandler) StartReturn(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}
	booking, err := h.bookingSvc.StartReturn(r.Context(), claims.SubjectID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *ReturnsHandler) AdvanceStep(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}
	step := returnflow.StepID(mux.Vars(r)["step"])
	booking, err := h.bookingSvc.AdvanceReturnStep(r.Context(), claims.SubjectID, id, step)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *ReturnsHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}
	progress, err := h.bookingSvc.ReturnProgress(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

type completeRequest struct {
	BypassReason *string `json:"bypass_reason,omitempty"`
}

// Complete closes out a rental. A bypass reason is only honored on the
// manager-gated route; the plain ops route passes nil.
func (h *ReturnsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}
	booking, err := h.bookingSvc.CompleteBooking(r.Context(), claims.SubjectID, id, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *ReturnsHandler) CompleteWithBypass(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}
	var req completeRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	booking, err := h.bookingSvc.CompleteBooking(r.Context(), claims.SubjectID, id, req.BypassReason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type lateReturnRequest struct {
	ActualReturn time.Time `json:"actual_return"`
}

func (h *ReturnsHandler) RecordLateReturn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}
	var req lateReturnRequest
	if err := decodeBody(r, &req); err != nil || req.ActualReturn.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	booking, err := h.bookingSvc.RecordLateReturn(r.Context(), id, req.ActualReturn)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}
