package fiber

import (
	"context"
	"errors"
	"net/http"
	"time"

	"usage-telemetry-service/internal/stats/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type StatsUseCase interface {
	RecordEvent(ctx context.Context, in usecase.RecordEventInput, now time.Time) (usecase.Summary, error)
	GetSummary(now time.Time) usecase.CounterView
	GetDetailedReport(now time.Time) usecase.Report
	Heartbeat(ctx context.Context, sessionID, userID string, now time.Time) (usecase.HeartbeatResult, error)
}

type StatsHandler struct {
	uc StatsUseCase
}

func NewStatsHandler(uc StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Track godoc
// @Summary Record a usage event
// @Description Counts one event for the user and refreshes its session
// @Tags Stats
// @Accept json
// @Produce json
// @Param request body TrackRequest true "Event payload"
// @Success 200 {object} TrackResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /track [post]
func (h *StatsHandler) Track(c *fiber.Ctx) error {
	var req TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	now := time.Now().UTC()
	summary, err := h.uc.RecordEvent(c.UserContext(), usecase.RecordEventInput{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		SessionID:   req.SessionID,
		GameID:      req.GameID,
	}, now)
	if err != nil {
		if errors.Is(err, usecase.ErrMissingUserID) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_request",
				Message: err.Error(),
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	return c.Status(http.StatusOK).JSON(TrackResponse{
		Success: true,
		Stats: TrackStats{
			Total:     summary.Total,
			Today:     summary.Today,
			Online:    summary.Online,
			Unique:    summary.Unique,
			YourTotal: summary.YourTotal,
		},
		Timestamp: now.UnixMilli(),
	})
}

// Summary godoc
// @Summary Current counters
// @Description Returns the aggregate counters after session expiry and rollover
// @Tags Stats
// @Produce json
// @Success 200 {object} SummaryResponse
// @Router /stats [get]
func (h *StatsHandler) Summary(c *fiber.Ctx) error {
	now := time.Now().UTC()
	view := h.uc.GetSummary(now)

	return c.Status(http.StatusOK).JSON(SummaryResponse{
		Total:      view.Total,
		Today:      view.Today,
		Online:     view.Online,
		Unique:     view.Unique,
		PeakOnline: view.PeakOnline,
		PeakToday:  view.PeakToday,
		LastUpdate: now.UnixMilli(),
	})
}

// Detailed godoc
// @Summary Detailed report
// @Description Counters plus trailing 12-hour and 7-day series
// @Tags Stats
// @Produce json
// @Success 200 {object} DetailedResponse
// @Router /stats/detailed [get]
func (h *StatsHandler) Detailed(c *fiber.Ctx) error {
	now := time.Now().UTC()
	report := h.uc.GetDetailedReport(now)

	resp := DetailedResponse{
		Summary: DetailedSummary{
			Total:         report.Summary.Total,
			Today:         report.Summary.Today,
			Online:        report.Summary.Online,
			Unique:        report.Summary.Unique,
			PeakOnline:    report.Summary.PeakOnline,
			PeakToday:     report.Summary.PeakToday,
			RequestsCount: report.RequestsCount,
			LastResetDate: report.LastResetDate,
		},
		Hourly:      make([]HourPointResponse, 0, len(report.Hourly)),
		Daily:       make([]DayPointResponse, 0, len(report.Daily)),
		CurrentHour: HourPointResponse{Hour: report.CurrentHour.Hour, Count: report.CurrentHour.Count},
		LastUpdate:  now.UnixMilli(),
	}

	for _, p := range report.Hourly {
		resp.Hourly = append(resp.Hourly, HourPointResponse{Hour: p.Hour, Count: p.Count})
	}
	for _, p := range report.Daily {
		resp.Daily = append(resp.Daily, DayPointResponse{Date: p.Date, Count: p.Count, UniqueUsers: p.UniqueUsers})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// Heartbeat godoc
// @Summary Session heartbeat
// @Description Keeps the caller's session counted as online
// @Tags Stats
// @Accept json
// @Produce json
// @Param request body HeartbeatRequest true "Heartbeat payload"
// @Success 200 {object} HeartbeatResponse
// @Failure 500 {object} ErrorResponse
// @Router /heartbeat [post]
func (h *StatsHandler) Heartbeat(c *fiber.Ctx) error {
	var req HeartbeatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	result, err := h.uc.Heartbeat(c.UserContext(), req.SessionID, req.UserID, time.Now().UTC())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	return c.Status(http.StatusOK).JSON(HeartbeatResponse{
		Success: result.Success,
		Online:  result.Online,
		Message: result.Message,
	})
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *StatsHandler) Health(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// Routes available on the service, reported by the not-found handler.
var availableRoutes = []string{
	"POST /track",
	"GET /stats",
	"GET /stats/detailed",
	"POST /heartbeat",
	"GET /health",
	"GET /docs/*",
}

// NotFound answers any unregistered route with the route list.
func NotFound(c *fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(NotFoundResponse{
		Error:  "route_not_found",
		Routes: availableRoutes,
	})
}
