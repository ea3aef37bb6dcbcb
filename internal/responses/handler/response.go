package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/plamenbalkanski/meetup-scheduler/internal/responses/service"
	httputil "github.com/plamenbalkanski/meetup-scheduler/pkg/http"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/logger"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
)

type ResponseHandler struct {
	service service.ResponseService
	log     *logger.Logger
}

func NewResponseHandler(service service.ResponseService, log *logger.Logger) *ResponseHandler {
	return &ResponseHandler{
		service: service,
		log:     log,
	}
}

func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	meetupID := ps.ByName("id")

	var create model.ResponseCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Submit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	response, err := h.service.Submit(r.Context(), meetupID, &create)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, response); err != nil {
		h.log.Error("failed to write created response", "handler", "Submit", "operation", "WriteCreated", "error", err)
	}
}

func (h *ResponseHandler) ListByMeetup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	meetupID := ps.ByName("id")

	responses, err := h.service.ListByMeetup(r.Context(), meetupID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByMeetup", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, responses); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByMeetup", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ResponseHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/meetups/:id/responses", h.Submit)
	router.GET("/api/v1/meetups/:id/responses", h.ListByMeetup)
}
