package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/joho/godotenv"

	"cardhunter/internal/app/simulation"
	"cardhunter/internal/bot"
	"cardhunter/internal/config"
	"cardhunter/internal/domain"
	"cardhunter/internal/ports/console"
)

type options struct {
	Games      int
	Workers    int
	Seed       int64
	OutputFile string
	ConfigPath string
	LogLevel   string
	Verbose    bool
	NoColor    bool
}

var (
	headerColor = color.New(color.FgWhite, color.Bold)
	goodColor   = color.New(color.FgGreen)
	badColor    = color.New(color.FgRed)
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}
	opts := parseFlags()
	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, badColor.Sprint("simulate: ", err))
		os.Exit(1)
	}
}

func parseFlags() options {
	opts := options{Games: 100, LogLevel: "info", ConfigPath: os.Getenv("CARDHUNTER_CONFIG")}
	if s := os.Getenv("CARDHUNTER_SEED"); s != "" {
		if seed, err := strconv.ParseInt(s, 10, 64); err == nil {
			opts.Seed = seed
		}
	}

	flag.IntVar(&opts.Games, "games", opts.Games, "Number of computer-only games to play")
	flag.IntVar(&opts.Games, "g", opts.Games, "Number of games (shorthand)")
	flag.IntVar(&opts.Workers, "workers", 0, "Parallel workers (default: number of CPUs)")
	flag.Int64Var(&opts.Seed, "seed", opts.Seed, "Base random seed (default: CARDHUNTER_SEED)")
	flag.StringVar(&opts.OutputFile, "output", "", "CSV output file path")
	flag.StringVar(&opts.OutputFile, "o", "", "CSV output file path (shorthand)")
	flag.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Game config JSON (default: CARDHUNTER_CONFIG)")
	flag.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level: debug, info, warn, error")
	flag.BoolVar(&opts.Verbose, "v", false, "Verbose logging, same as -log-level debug")
	flag.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Card Hunter simulator - computer opponents playing each other\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -games 1000 -seed 7 -o results.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -g 20 -v\n", os.Args[0])
	}
	flag.Parse()

	if opts.Verbose {
		opts.LogLevel = "debug"
	}
	return opts
}

func run(opts options, out io.Writer) error {
	color.NoColor = color.NoColor || opts.NoColor
	logger, err := console.NewLogger(os.Stderr, opts.LogLevel, !color.NoColor)
	if err != nil {
		return err
	}

	if opts.ConfigPath != "" {
		if err := config.LoadGameConfig(opts.ConfigPath); err != nil {
			return err
		}
	}
	cfg := config.GetGameConfig()
	if cfg.IdentitiesPath != "" {
		if err := bot.LoadIdentities(cfg.IdentitiesPath); err != nil {
			return err
		}
	}

	seats := make([]bot.Identity, domain.PlayerCount)
	for i := range seats {
		seats[i] = bot.GetIdentity(i)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation: %d games, seed %d", opts.Games, opts.Seed)
	report, runErr := simulation.Run(ctx, simulation.Config{
		Games:   opts.Games,
		Workers: opts.Workers,
		Seed:    opts.Seed,
		Seats:   seats,
		Tuning:  cfg.ApplyTuning(bot.DefaultTuning),
	}, logger)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		logger.Warn("Interrupted, partial results follow")
	}

	printReport(out, report)

	if opts.OutputFile != "" {
		if err := writeCSV(opts.OutputFile, report); err != nil {
			return err
		}
		logger.Info("Results written to %s", opts.OutputFile)
	}
	return nil
}

func writeCSV(path string, report simulation.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	exporter, err := simulation.NewCSVExporter(f)
	if err != nil {
		return err
	}
	return exporter.WriteReport(report)
}

func printReport(out io.Writer, r simulation.Report) {
	played := r.Games - r.Failed
	fmt.Fprintln(out, headerColor.Sprintf("\n%d games played, average %.1f turns", played, r.AverageTurns))
	if r.Failed > 0 {
		fmt.Fprintln(out, badColor.Sprintf("%d games failed", r.Failed))
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("Skill levels")
	t.AppendHeader(table.Row{"Skill", "Seats", "Guesses", "Accuracy", "Wins", "Win rate", "Avg place", "Fallbacks"})
	for _, s := range r.Skills {
		t.AppendRow(table.Row{
			string(s.Skill),
			s.Seats,
			s.Guesses,
			goodColor.Sprintf("%.1f%%", s.Accuracy()*100),
			s.Wins,
			fmt.Sprintf("%.1f%%", s.WinRate()*100),
			fmt.Sprintf("%.2f", s.AveragePlace()),
			s.Fallbacks,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})
	t.Render()

	p := table.NewWriter()
	p.SetOutputMirror(out)
	p.SetTitle("Personalities")
	p.AppendHeader(table.Row{"Personality", "Correct guesses", "Continued", "Continue rate"})
	for _, s := range r.Personalities {
		p.AppendRow(table.Row{string(s.Personality), s.Correct, s.Continues, fmt.Sprintf("%.1f%%", s.ContinueRate()*100)})
	}
	p.SetStyle(table.StyleRounded)
	p.Style().Title.Align = text.AlignCenter
	p.Render()
}
