package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/config"
	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
	"github.com/cmlabs-hris/clockin-console/internal/domain/settings"
	"github.com/cmlabs-hris/clockin-console/internal/fixtures"
	"github.com/cmlabs-hris/clockin-console/internal/pkg/hrclient"
	"github.com/cmlabs-hris/clockin-console/internal/render"
	attendanceService "github.com/cmlabs-hris/clockin-console/internal/service/attendance"
)

var (
	payloadFile = flag.String("file", "", "Read the monthly payload from a JSON file instead of the HR API")
	demo        = flag.Bool("demo", false, "Render a generated demo month instead of fetching one")
	userID      = flag.String("user", "", "User ID to fetch from the HR API")
	year        = flag.Int("year", 0, "Year to show (default: current)")
	month       = flag.Int("month", 0, "Month to show, 1-12 (default: current)")
	stylePath   = flag.String("style", "", "YAML file with renderer style overrides")
	noColor     = flag.Bool("no-color", false, "Disable colored output")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if *payloadFile == "" && *userID == "" && !*demo {
		flag.Usage()
		return fmt.Errorf("one of -file, -user or -demo is required")
	}

	var (
		cfg *config.Config
		err error
	)
	if *payloadFile != "" || *demo {
		cfg, err = config.Read()
	} else {
		cfg, err = config.LoadClient()
	}
	if err != nil {
		return err
	}

	renderCfg := render.DefaultConfig()
	if *stylePath != "" {
		if renderCfg, err = render.LoadConfig(*stylePath); err != nil {
			return err
		}
	}
	if *noColor {
		renderCfg.Color = false
	}

	window := settings.UpdateClockWindowRequest{
		MorningStart:   cfg.ClockWindow.MorningStart,
		MorningEnd:     cfg.ClockWindow.MorningEnd,
		AfternoonStart: cfg.ClockWindow.AfternoonStart,
		AfternoonEnd:   cfg.ClockWindow.AfternoonEnd,
	}
	if err := window.Validate(); err != nil {
		return fmt.Errorf("invalid clock window: %w", err)
	}

	loc := cfg.Location()
	now := time.Now().In(loc)

	raw, err := loadPayload(ctx, cfg, now)
	if err != nil {
		return err
	}

	payload, err := attendance.ParsePayload(raw, loc)
	if err != nil {
		return err
	}

	cal := attendanceService.BuildCalendar(payload, window.ToConfig(), now)

	renderer := render.New(renderCfg)
	if err := renderer.Render(os.Stdout, cal); err != nil {
		return err
	}

	var next *attendance.NextActionResponse
	if payload.Year == now.Year() && payload.Month == int(now.Month()) {
		if action := attendanceService.CalculateNextAction(window.ToConfig(), payload.Today(now), payload.IsWorkday, now); action != nil {
			next = &attendance.NextActionResponse{
				Kind:       action.Kind,
				Label:      action.Kind.Label(),
				TargetTime: action.TargetTime,
				Countdown:  attendance.FormatCountdown(action.TargetTime, now),
			}
		}
	}

	return renderer.RenderNextAction(os.Stdout, next)
}

func loadPayload(ctx context.Context, cfg *config.Config, now time.Time) ([]byte, error) {
	if *demo {
		y, m := *year, *month
		if y == 0 {
			y = now.Year()
		}
		if m == 0 {
			m = int(now.Month())
		}
		return fixtures.DemoMonth(y, m, now), nil
	}

	if *payloadFile != "" {
		data, err := os.ReadFile(*payloadFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}
		return data, nil
	}

	req := attendance.CalendarRequest{UserID: *userID, Year: *year, Month: *month}
	if req.Year == 0 {
		req.Year = now.Year()
	}
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return hrclient.NewClient(cfg.HRAPI).FetchMonthly(ctx, req.UserID, req.Year, req.Month)
}
