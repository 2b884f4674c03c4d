// Package api exposes the HTTP handlers of the mock campus platform.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"campusmock/internal/activity"
	"campusmock/internal/catalog"
	"campusmock/internal/logging"
	"campusmock/internal/metrics"
)

const (
	msgSynced           = "活动同步成功"
	msgHealthy          = "服务器运行正常"
	msgBodyTooLarge     = "请求数据过大"
	msgNotFound         = "接口不存在: "
	msgMethodNotAllowed = "不支持的请求方法: "
)

// Options tunes a Handler. Zero values fall back to the defaults of a
// freshly started mock on :8080.
type Options struct {
	BaseURL      string
	MaxBodyBytes int64
	Now          func() time.Time
}

// Handler serves the mock API on top of an activity.Service.
type Handler struct {
	service      *activity.Service
	logger       logging.Logger
	index        catalog.Index
	maxBodyBytes int64
	now          func() time.Time
}

func NewHandler(service *activity.Service, logger logging.Logger, opts Options) *Handler {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8080"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 100 << 10
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handler{
		service:      service,
		logger:       logger,
		index:        catalog.NewIndex(opts.BaseURL),
		maxBodyBytes: opts.MaxBodyBytes,
		now:          opts.Now,
	}
}

// RegisterRoutes wires endpoints to the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.getIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", h.getCategories)
		r.Get("/announcements", h.getAnnouncements)
		r.Post("/activities/sync", h.syncActivity)
		r.Get("/synced-activities", h.getSyncedActivities)
		r.Get("/health", h.health)
	})

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)
}

func (h *Handler) getIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.index)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Categories())
}

func (h *Handler) getAnnouncements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Announcements())
}

func (h *Handler) syncActivity(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.IncSync(metrics.SyncInvalid)
			h.logger.Warn("activity sync rejected", "error", msgBodyTooLarge, "limit", tooLarge.Limit)
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		h.syncFailed(w, &activity.ProcessingError{Err: err})
		return
	}

	rec, err := h.service.Sync(r.Context(), body)
	if err != nil {
		h.syncFailed(w, err)
		return
	}

	metrics.IncSync(metrics.SyncSuccess)
	metrics.SetSyncedActivities(h.service.Count(r.Context()))
	h.logger.Info("activity synced", "activity_id", rec.ID, "title", rec.Title)

	writeJSON(w, http.StatusOK, SyncResponse{
		Success:    true,
		Message:    msgSynced,
		ActivityID: rec.ID,
	})
}

func (h *Handler) syncFailed(w http.ResponseWriter, err error) {
	var verr *activity.ValidationError
	if errors.As(err, &verr) {
		metrics.IncSync(metrics.SyncInvalid)
		h.logger.Warn("activity sync rejected", "error", verr.Message, "field", verr.Field)
		writeError(w, http.StatusBadRequest, verr.Message)
		return
	}

	var perr *activity.ProcessingError
	if !errors.As(err, &perr) {
		perr = &activity.ProcessingError{Err: err}
	}
	metrics.IncSync(metrics.SyncFailed)
	h.logger.Error("activity sync failed", "error", perr.Err)
	writeError(w, http.StatusInternalServerError, perr.Error())
}

func (h *Handler) getSyncedActivities(w http.ResponseWriter, r *http.Request) {
	activities := h.service.List(r.Context())
	writeJSON(w, http.StatusOK, SyncedActivitiesResponse{
		Count:      len(activities),
		Activities: activities,
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Message:   msgHealthy,
		Timestamp: h.now().UTC().Format(activity.TimestampLayout),
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgNotFound+r.Method+" "+r.URL.Path)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed+r.Method)
}

// SyncResponse is the success body of POST /api/activities/sync.
type SyncResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ActivityID any    `json:"activity_id"`
}

// ErrorResponse is returned by every failing request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SyncedActivitiesResponse struct {
	Count      int                       `json:"count"`
	Activities []activity.SyncedActivity `json:"activities"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
