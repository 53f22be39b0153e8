package fiber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"usage-telemetry-service/internal/stats/core/domain"
	"usage-telemetry-service/internal/stats/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type fakeStatsUseCase struct {
	RecordEventFn     func(ctx context.Context, in usecase.RecordEventInput, now time.Time) (usecase.Summary, error)
	HeartbeatFn       func(ctx context.Context, sessionID, userID string, now time.Time) (usecase.HeartbeatResult, error)
	SummaryResult     usecase.CounterView
	ReportResult      usecase.Report
	LastRecordInput   usecase.RecordEventInput
	LastHeartbeatUser string
}

func (f *fakeStatsUseCase) RecordEvent(ctx context.Context, in usecase.RecordEventInput, now time.Time) (usecase.Summary, error) {
	f.LastRecordInput = in
	if f.RecordEventFn != nil {
		return f.RecordEventFn(ctx, in, now)
	}
	return usecase.Summary{}, nil
}

func (f *fakeStatsUseCase) GetSummary(now time.Time) usecase.CounterView {
	return f.SummaryResult
}

func (f *fakeStatsUseCase) GetDetailedReport(now time.Time) usecase.Report {
	return f.ReportResult
}

func (f *fakeStatsUseCase) Heartbeat(ctx context.Context, sessionID, userID string, now time.Time) (usecase.HeartbeatResult, error) {
	f.LastHeartbeatUser = userID
	if f.HeartbeatFn != nil {
		return f.HeartbeatFn(ctx, sessionID, userID, now)
	}
	return usecase.HeartbeatResult{}, nil
}

// helper: create fiber app and routes
func setupTestApp(uc StatsUseCase) *fiber.App {
	app := fiber.New()
	h := NewStatsHandler(uc)

	app.Post("/track", h.Track)
	app.Get("/stats", h.Summary)
	app.Get("/stats/detailed", h.Detailed)
	app.Post("/heartbeat", h.Heartbeat)
	app.Get("/health", h.Health)
	app.Use(NotFound)

	return app
}

// helper: send request
func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	return resp, respBody
}

// ------------------------------------------------------------
// TRACK
// ------------------------------------------------------------
func TestTrack_Success(t *testing.T) {
	uc := &fakeStatsUseCase{
		RecordEventFn: func(ctx context.Context, in usecase.RecordEventInput, now time.Time) (usecase.Summary, error) {
			return usecase.Summary{Total: 10, Today: 3, Online: 2, Unique: 4, YourTotal: 5}, nil
		},
	}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodPost, "/track", TrackRequest{
		UserID:      "u1",
		DisplayName: "Ada",
		SessionID:   "s1",
		GameID:      "g1",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", resp.StatusCode, body)
	}

	var out TrackResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success=true")
	}
	if out.Stats.Total != 10 || out.Stats.YourTotal != 5 {
		t.Fatalf("unexpected stats: %+v", out.Stats)
	}
	if out.Timestamp == 0 {
		t.Fatalf("expected timestamp set")
	}
	if uc.LastRecordInput.UserID != "u1" || uc.LastRecordInput.GameID != "g1" {
		t.Fatalf("input not forwarded: %+v", uc.LastRecordInput)
	}
}

func TestTrack_MissingUserID(t *testing.T) {
	uc := &fakeStatsUseCase{
		RecordEventFn: func(ctx context.Context, in usecase.RecordEventInput, now time.Time) (usecase.Summary, error) {
			return usecase.Summary{}, usecase.ErrMissingUserID
		},
	}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodPost, "/track", TrackRequest{})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var out ErrorResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if out.Error != "invalid_request" {
		t.Fatalf("unexpected error code %s", out.Error)
	}
}

func TestTrack_PersistenceFailure(t *testing.T) {
	uc := &fakeStatsUseCase{
		RecordEventFn: func(ctx context.Context, in usecase.RecordEventInput, now time.Time) (usecase.Summary, error) {
			return usecase.Summary{}, errors.New("persist snapshot: backend down")
		},
	}
	app := setupTestApp(uc)

	resp, _ := doRequest(t, app, http.MethodPost, "/track", TrackRequest{UserID: "u1"})

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestTrack_InvalidJSON(t *testing.T) {
	app := setupTestApp(&fakeStatsUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/track", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ------------------------------------------------------------
// SUMMARY + DETAILED
// ------------------------------------------------------------
func TestSummary(t *testing.T) {
	uc := &fakeStatsUseCase{
		SummaryResult: usecase.CounterView{Total: 100, Today: 7, Online: 3, Unique: 42, PeakOnline: 9, PeakToday: 8},
	}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodGet, "/stats", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out SummaryResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if out.Total != 100 || out.PeakOnline != 9 || out.PeakToday != 8 {
		t.Fatalf("unexpected summary: %+v", out)
	}
	if out.LastUpdate == 0 {
		t.Fatalf("expected lastUpdate set")
	}
}

func TestDetailed(t *testing.T) {
	uc := &fakeStatsUseCase{
		ReportResult: usecase.Report{
			Summary:       usecase.CounterView{Total: 100, Today: 7, Online: 3, Unique: 42, PeakOnline: 9, PeakToday: 8},
			RequestsCount: 100,
			LastResetDate: "2026-03-14",
			Hourly: []domain.HourPoint{
				{Hour: "2026-03-14T09", Count: 2},
				{Hour: "2026-03-14T10", Count: 1},
			},
			Daily: []domain.DayPoint{
				{Date: "2026-03-14", Count: 3, UniqueUsers: 2},
			},
			CurrentHour: domain.HourPoint{Hour: "2026-03-14T10", Count: 1},
		},
	}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodGet, "/stats/detailed", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out DetailedResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if out.Summary.RequestsCount != 100 || out.Summary.LastResetDate != "2026-03-14" {
		t.Fatalf("unexpected summary: %+v", out.Summary)
	}
	if len(out.Hourly) != 2 || out.Hourly[0].Hour != "2026-03-14T09" {
		t.Fatalf("unexpected hourly series: %+v", out.Hourly)
	}
	if len(out.Daily) != 1 || out.Daily[0].UniqueUsers != 2 {
		t.Fatalf("unexpected daily series: %+v", out.Daily)
	}
	if out.CurrentHour.Count != 1 {
		t.Fatalf("unexpected current hour: %+v", out.CurrentHour)
	}
}

// ------------------------------------------------------------
// HEARTBEAT
// ------------------------------------------------------------
func TestHeartbeat_Success(t *testing.T) {
	uc := &fakeStatsUseCase{
		HeartbeatFn: func(ctx context.Context, sessionID, userID string, now time.Time) (usecase.HeartbeatResult, error) {
			return usecase.HeartbeatResult{Success: true, Online: 4}, nil
		},
	}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodPost, "/heartbeat", HeartbeatRequest{SessionID: "s1", UserID: "u1"})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out HeartbeatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !out.Success || out.Online != 4 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if uc.LastHeartbeatUser != "u1" {
		t.Fatalf("input not forwarded")
	}
}

func TestHeartbeat_SoftFailure(t *testing.T) {
	uc := &fakeStatsUseCase{
		HeartbeatFn: func(ctx context.Context, sessionID, userID string, now time.Time) (usecase.HeartbeatResult, error) {
			return usecase.HeartbeatResult{Online: 2, Message: "sessionId and userId are required"}, nil
		},
	}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodPost, "/heartbeat", HeartbeatRequest{})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("soft failures answer 200, got %d", resp.StatusCode)
	}

	var out HeartbeatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if out.Success {
		t.Fatalf("expected success=false")
	}
	if out.Online != 2 || out.Message == "" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

// ------------------------------------------------------------
// NOT FOUND
// ------------------------------------------------------------
func TestNotFound_ListsRoutes(t *testing.T) {
	app := setupTestApp(&fakeStatsUseCase{})

	resp, body := doRequest(t, app, http.MethodGet, "/nope", nil)

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var out NotFoundResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if out.Error != "route_not_found" {
		t.Fatalf("unexpected error code %s", out.Error)
	}
	if len(out.Routes) == 0 {
		t.Fatalf("expected the route list")
	}
}
