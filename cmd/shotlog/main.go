// Command shotlog logs and reviews shots against a running API.
//
//	shotlog [flags] log ZONE MAKES ATTEMPTS
//	shotlog [flags] day
//	shotlog [flags] recent
//	shotlog [flags] trend
//	shotlog [flags] heatmap
//	shotlog [flags] goal [PCT|none]
//	shotlog zones
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"backend-shottracker/internal/calendar"
	"backend-shottracker/internal/client"
	"backend-shottracker/internal/config"
	"backend-shottracker/internal/court"
	"backend-shottracker/internal/session"
	"backend-shottracker/internal/stats"
	"backend-shottracker/pkg/logger"

	json "github.com/goccy/go-json"
)

var errUsage = errors.New("usage: shotlog [-date YYYY-MM-DD] [-period 1month|1year|all] [-line Total|Paint|Mid|3PT] [-demo] log|day|recent|trend|heatmap|goal|zones")

var newAPI = func(cfg config.Config) session.API {
	return client.New(cfg.APIBaseURL, client.StaticToken(cfg.APIToken))
}

func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if err := run(context.Background(), os.Args[1:], os.Stdout, newAPI(cfg)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, api session.API) error {
	fs := flag.NewFlagSet("shotlog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	date := fs.String("date", "", "day to log or review (default today)")
	period := fs.String("period", "1month", "trend and heatmap window")
	line := fs.String("line", "Total", "trend line")
	demo := fs.Bool("demo", false, "fall back to generated records when the API is unreachable")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		return errUsage
	}
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	if cmd == "zones" {
		return write(out, court.Zones())
	}

	var opts []session.Option
	if *demo {
		opts = append(opts, session.WithDemoFallback(1))
	}
	opts = append(opts, session.WithLogger(logger.Named("shotlog")))
	s := session.New(api, opts...)

	if *date != "" {
		d, err := calendar.Parse(*date)
		if err != nil {
			return err
		}
		s.SetDate(d)
	}
	p, err := stats.ParsePeriod(*period)
	if err != nil {
		return err
	}
	s.SetPeriod(p)
	l, err := stats.ParseLine(*line)
	if err != nil {
		return err
	}
	s.SetLine(l)

	if err := s.Load(ctx); err != nil {
		return err
	}

	switch cmd {
	case "log":
		return logShot(ctx, s, rest, out)
	case "day":
		return write(out, s.Daily())
	case "recent":
		return write(out, s.Recent())
	case "trend":
		return write(out, s.Series())
	case "heatmap":
		return write(out, s.Heatmap())
	case "goal":
		return goal(ctx, s, rest, out)
	}
	return errUsage
}

func logShot(ctx context.Context, s *session.Session, args []string, out io.Writer) error {
	if len(args) != 3 {
		return errUsage
	}
	if _, err := s.SelectZone(args[0]); err != nil {
		return err
	}
	makes, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("makes: %w", err)
	}
	attempts, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("attempts: %w", err)
	}
	rec, err := s.Submit(ctx, makes, attempts)
	if err != nil {
		return err
	}
	return write(out, rec)
}

func goal(ctx context.Context, s *session.Session, args []string, out io.Writer) error {
	switch len(args) {
	case 0:
	case 1:
		var g *int
		if args[0] != "none" {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("goal: %w", err)
			}
			g = &v
		}
		if err := s.SaveGoal(ctx, g); err != nil {
			return err
		}
	default:
		return errUsage
	}
	return write(out, map[string]*int{"goalPct": s.Goal()})
}

func write(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
