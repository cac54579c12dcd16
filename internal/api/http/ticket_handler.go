package http

import (
	"net/http"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/service"
)

type TicketHandler struct {
	ticketSvc service.TicketService
}

func NewTicketHandler(ticketSvc service.TicketService) *TicketHandler {
	return &TicketHandler{ticketSvc: ticketSvc}
}

func (h *TicketHandler) Open(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var tk domain.SupportTicket
	if err := decodeBody(r, &tk); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	tk.CustomerID = claims.SubjectID
	if err := h.ticketSvc.Open(r.Context(), &tk); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tk)
}

func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid ticket id"})
		return
	}
	tk, err := h.ticketSvc.GetTicket(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tk)
}

func (h *TicketHandler) Assign(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid ticket id"})
		return
	}
	tk, err := h.ticketSvc.Assign(r.Context(), id, claims.SubjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tk)
}

type resolveRequest struct {
	Resolution string `json:"resolution"`
}

func (h *TicketHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid ticket id"})
		return
	}
	var req resolveRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	tk, err := h.ticketSvc.Resolve(r.Context(), id, claims.SubjectID, req.Resolution)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tk)
}

func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	tickets, total, err := h.ticketSvc.ListByStatus(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: tickets, Total: total, Page: page})
}
