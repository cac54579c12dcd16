package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/mapsensemedia/betterrental-sub009/internal/domain"
	"github.com/mapsensemedia/betterrental-sub009/internal/service"
	"github.com/mapsensemedia/betterrental-sub009/internal/storage"

	"github.com/gorilla/mux"
)

type IncidentHandler struct {
	incidentSvc service.IncidentService
	photoStore  storage.Store
	maxUpload   int64
}

func NewIncidentHandler(incidentSvc service.IncidentService, photoStore storage.Store, maxUploadMB int64) *IncidentHandler {
	return &IncidentHandler{
		incidentSvc: incidentSvc,
		photoStore:  photoStore,
		maxUpload:   maxUploadMB << 20,
	}
}

func (h *IncidentHandler) Report(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var in domain.Incident
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	in.ReportedBy = claims.SubjectID
	if err := h.incidentSvc.Report(r.Context(), &in); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (h *IncidentHandler) GetIncident(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid incident id"})
		return
	}
	in, err := h.incidentSvc.GetIncident(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

type reviewRequest struct {
	Status     domain.IncidentStatus `json:"status"`
	Resolution string                `json:"resolution"`
}

func (h *IncidentHandler) Review(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid incident id"})
		return
	}
	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	in, err := h.incidentSvc.Review(r.Context(), claims.SubjectID, id, req.Status, req.Resolution)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *IncidentHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	incidents, total, err := h.incidentSvc.ListOpen(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: incidents, Total: total, Page: page})
}

func (h *IncidentHandler) ListByBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}
	incidents, err := h.incidentSvc.ListByBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, incidents)
}

// UploadPhoto accepts a raw image body (PUT, Content-Type image/jpeg or
// image/png) and attaches it to the booking's return evidence.
func (h *IncidentHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "content type must be image/jpeg or image/png"})
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUpload))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "upload too large"})
		return
	}

	photo := &domain.EvidencePhoto{
		BookingID:  id,
		Caption:    r.URL.Query().Get("caption"),
		UploadedBy: claims.SubjectID,
	}
	if raw := r.URL.Query().Get("incident_id"); raw != "" {
		if iid, err := strconv.ParseInt(raw, 10, 32); err == nil {
			incidentID := int32(iid)
			photo.IncidentID = &incidentID
		}
	}

	stored, err := h.incidentSvc.AttachPhoto(r.Context(), photo, data, contentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *IncidentHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}
	photos, err := h.incidentSvc.ListPhotos(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, photos)
}

// ServePhoto streams a stored photo back. The path after /v1/photos/ is the
// storage key.
func (h *IncidentHandler) ServePhoto(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	f, err := h.photoStore.Open(r.Context(), key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "photo not found"})
		return
	}
	defer f.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	io.Copy(w, f)
}
