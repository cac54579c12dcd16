package http

import (
	"net/http"

	"github.com/mapsensemedia/betterrental-sub009/internal/service"
)

type SettingsHandler struct {
	settingsSvc service.SettingsService
}

func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

func (h *SettingsHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsSvc.ListSettings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// GetRateTable returns the effective rate card after overrides.
func (h *SettingsHandler) GetRateTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.settingsSvc.ResolveRateTable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

type updateSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *SettingsHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var req updateSettingRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	setting, err := h.settingsSvc.UpdateSetting(r.Context(), claims.SubjectID, req.Key, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}
