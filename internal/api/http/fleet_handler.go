package http

import (
	"net/http"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/service"
)

type FleetHandler struct {
	fleetSvc service.FleetService
}

func NewFleetHandler(fleetSvc service.FleetService) *FleetHandler {
	return &FleetHandler{fleetSvc: fleetSvc}
}

func (h *FleetHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	var v domain.Vehicle
	if err := decodeBody(r, &v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.fleetSvc.AddVehicle(r.Context(), &v); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *FleetHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid vehicle id"})
		return
	}
	v, err := h.fleetSvc.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *FleetHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid vehicle id"})
		return
	}
	var v domain.Vehicle
	if err := decodeBody(r, &v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	v.ID = id
	if err := h.fleetSvc.UpdateVehicle(r.Context(), &v); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *FleetHandler) RetireVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid vehicle id"})
		return
	}
	if err := h.fleetSvc.RetireVehicle(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	vehicles, total, err := h.fleetSvc.ListVehicles(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: vehicles, Total: total, Page: page})
}

func (h *FleetHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.fleetSvc.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
