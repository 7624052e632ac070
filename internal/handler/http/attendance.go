package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
	"github.com/cmlabs-hris/clockin-console/internal/handler/http/response"
	"github.com/cmlabs-hris/clockin-console/internal/pkg/ticker"
)

const (
	maxPayloadBytes = 4 << 20
	// refreshEvery bounds how stale the streamed next action may get
	refreshEvery   = time.Minute
	keepaliveEvery = 30 * time.Second
)

type AttendanceHandler interface {
	GetCalendar(w http.ResponseWriter, r *http.Request)
	ClassifyPayload(w http.ResponseWriter, r *http.Request)
	GetNextAction(w http.ResponseWriter, r *http.Request)
	StreamNextAction(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	ticker            *ticker.Ticker
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, tk *ticker.Ticker) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		ticker:            tk,
	}
}

// GetCalendar implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetCalendar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	now := h.attendanceService.Now()

	req := attendance.CalendarRequest{
		UserID: query.Get("user_id"),
		Year:   now.Year(),
		Month:  int(now.Month()),
	}

	if year := query.Get("year"); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil {
			slog.Error("Invalid year parameter", "year", year, "error", err)
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		req.Year = parsed
	}

	if month := query.Get("month"); month != "" {
		parsed, err := strconv.Atoi(month)
		if err != nil {
			slog.Error("Invalid month parameter", "month", month, "error", err)
			response.BadRequest(w, "month must be a number", nil)
			return
		}
		req.Month = parsed
	}

	cal, err := h.attendanceService.GetCalendar(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cal)
}

// ClassifyPayload implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClassifyPayload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		slog.Error("Failed to read payload body", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	cal, err := h.attendanceService.ClassifyPayload(r.Context(), body)
	if err != nil {
		// The payload came from the caller here, not from upstream
		if errors.Is(err, attendance.ErrMalformedPayload) {
			response.BadRequest(w, err.Error(), nil)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, cal)
}

// GetNextAction implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetNextAction(w http.ResponseWriter, r *http.Request) {
	req := attendance.NextActionRequest{UserID: r.URL.Query().Get("user_id")}

	action, err := h.attendanceService.GetNextAction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if action == nil {
		response.SuccessWithMessage(w, "No punch pending today", nil)
		return
	}

	response.Success(w, action)
}

// StreamNextAction pushes a countdown event on every tick until the client leaves.
// The action is re-derived locally on each tick; upstream is only re-read to
// pick up punches made elsewhere.
func (h *attendanceHandlerImpl) StreamNextAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := attendance.NextActionRequest{UserID: r.URL.Query().Get("user_id")}

	// Resolve before switching to event-stream so failures keep the JSON envelope
	snapshot, err := h.attendanceService.GetTodaySnapshot(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	subID, ticks, cleanup := h.ticker.Subscribe()
	defer cleanup()

	slog.Debug("Countdown stream opened", "user_id", req.UserID, "subscription_id", subID)

	if err := writeEvent(w, "connected", map[string]string{"status": "connected", "user_id": req.UserID}); err != nil {
		slog.Error("Failed to write connected event", "error", err)
		return
	}
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveEvery)
	defer keepalive.Stop()

	refreshedAt := h.attendanceService.Now()

	for {
		select {
		case _, ok := <-ticks:
			if !ok {
				return
			}
			now := h.attendanceService.Now()

			if now.Sub(refreshedAt) >= refreshEvery || !sameDate(now, refreshedAt) {
				refreshed, err := h.attendanceService.GetTodaySnapshot(ctx, req)
				if err != nil {
					// Keep counting down from the last known record
					slog.Warn("Failed to refresh today's attendance", "user_id", req.UserID, "error", err)
				} else {
					snapshot = refreshed
				}
				refreshedAt = now
			}

			action := h.attendanceService.NextActionAt(snapshot, now)
			if err := writeCountdown(w, action, now); err != nil {
				slog.Error("Failed to encode countdown event", "error", err)
				continue
			}
			flusher.Flush()

		case <-keepalive.C:
			if err := writeEvent(w, "ping", map[string]int64{"timestamp": time.Now().Unix()}); err != nil {
				slog.Error("Failed to write ping event", "error", err)
				continue
			}
			flusher.Flush()

		case <-ctx.Done():
			slog.Debug("Countdown stream closed", "user_id", req.UserID, "subscription_id", subID)
			return
		}
	}
}

func writeCountdown(w io.Writer, action *attendance.NextActionResponse, now time.Time) error {
	clock := now.Format("15:04:05")

	if action == nil {
		return writeEvent(w, "idle", map[string]string{"now": clock})
	}

	return writeEvent(w, "countdown", attendance.CountdownEvent{
		Kind:       action.Kind,
		Label:      action.Label,
		TargetTime: action.TargetTime,
		Countdown:  action.CountdownAt(now),
		Now:        clock,
	})
}

func writeEvent(w io.Writer, name string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
