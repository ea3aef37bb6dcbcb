package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "github.com/plamenbalkanski/meetup-scheduler/pkg/http"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/kafka"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/logger"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/sanitizer"
)

const (
	EventUpgradeView     = "upgrade-view"
	EventUpgradeInterest = "upgrade-interest"
)

type trackRequest struct {
	Email string `json:"email,omitempty"`
}

type trackEvent struct {
	Event string `json:"event"`
	Email string `json:"email,omitempty"`
}

// AnalyticsHandler publishes upgrade funnel events. The producer may be nil
// when no brokers are configured; events are then dropped, never failed.
type AnalyticsHandler struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewAnalyticsHandler(producer *kafka.Producer, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		producer: producer,
		log:      log,
	}
}

func (h *AnalyticsHandler) UpgradeView(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.track(w, r, EventUpgradeView)
}

func (h *AnalyticsHandler) UpgradeInterest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.track(w, r, EventUpgradeInterest)
}

func (h *AnalyticsHandler) track(w http.ResponseWriter, r *http.Request, eventType string) {
	var req trackRequest
	if r.Body != nil {
		// Body is optional; a decode failure only drops the email field.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	email := sanitizer.NormalizeEmail(req.Email)

	if h.producer != nil {
		key := email
		if key == "" {
			key = "anonymous"
		}

		msg, err := kafka.NewEvent(eventType, key, trackEvent{Event: eventType, Email: email})
		if err != nil {
			h.log.Error("failed to build analytics event", "event", eventType, "error", err)
		} else if err := h.producer.Publish(r.Context(), msg); err != nil {
			h.log.Error("failed to publish analytics event", "event", eventType, "error", err)
		}
	}

	if err := httputil.WriteJSON(w, http.StatusAccepted, map[string]bool{"tracked": true}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "track", "operation", "WriteJSON", "error", err)
	}
}

func (h *AnalyticsHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/analytics/upgrade-view", h.UpgradeView)
	router.POST("/api/v1/analytics/upgrade-interest", h.UpgradeInterest)
}
