package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/plamenbalkanski/meetup-scheduler/internal/meetups/service"
	httputil "github.com/plamenbalkanski/meetup-scheduler/pkg/http"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/logger"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/sanitizer"
)

type MeetupHandler struct {
	service service.MeetupService
	log     *logger.Logger
}

func NewMeetupHandler(service service.MeetupService, log *logger.Logger) *MeetupHandler {
	return &MeetupHandler{
		service: service,
		log:     log,
	}
}

func (h *MeetupHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var create model.MeetupCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	clientIP := sanitizer.ClientIP(r.Header.Get("X-Forwarded-For"), r.RemoteAddr)

	created, err := h.service.Create(r.Context(), &create, clientIP)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *MeetupHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	detail, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, detail); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MeetupHandler) Results(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	results, err := h.service.Results(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Results", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, results); err != nil {
		h.log.Error("failed to write success response", "handler", "Results", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MeetupHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *MeetupHandler) Share(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Share", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Share(r.Context(), req.MeetupID, req.Email); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Share", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]bool{"sent": true}); err != nil {
		h.log.Error("failed to write success response", "handler", "Share", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MeetupHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/meetups", h.Create)
	router.GET("/api/v1/meetups/:id", h.GetByID)
	router.DELETE("/api/v1/meetups/:id", h.Delete)
	router.GET("/api/v1/meetups/:id/results", h.Results)
	router.POST("/api/v1/share", h.Share)
}
