package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	_ "github.com/mattn/go-sqlite3"
	"github.com/urfave/cli/v3"

	"github.com/baterdene/telewatch/internal/adapters"
	"github.com/baterdene/telewatch/internal/aireport"
	"github.com/baterdene/telewatch/internal/bot"
	"github.com/baterdene/telewatch/internal/browser"
	"github.com/baterdene/telewatch/internal/config"
	"github.com/baterdene/telewatch/internal/models"
	"github.com/baterdene/telewatch/internal/report"
	"github.com/baterdene/telewatch/internal/repository"
	"github.com/baterdene/telewatch/internal/repository/sqlite"
	"github.com/baterdene/telewatch/internal/services/monitor"
	"github.com/baterdene/telewatch/internal/storage"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

func main() {
	cmd := &cli.Command{
		Name:  "telewatch",
		Usage: "Monitor Mongolian telecom operator news pages for changes",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run one monitoring cycle and produce the weekly report",
				Action: runAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "Run date in YYYY-MM-DD form",
						Value: time.Now().UTC().Format("2006-01-02"),
					},
					&cli.StringSliceFlag{
						Name:  "sites",
						Usage: "Only process the named site keys (e.g. nt, unitel)",
					},
					&cli.BoolFlag{
						Name:  "no-screenshots",
						Usage: "Skip page screenshots",
					},
					&cli.BoolFlag{
						Name:  "no-details",
						Usage: "Skip detail-page enrichment",
					},
					&cli.StringSliceFlag{
						Name:  "email-to",
						Usage: "Email the report to these addresses",
					},
				},
			},
			{
				Name:   "dates",
				Usage:  "List stored snapshot dates per site",
				Action: datesAction,
			},
			{
				Name:   "bot",
				Usage:  "Run the Telegram subscription bot",
				Action: botAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	store, err := storage.NewFS(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	manager := browser.NewManager(logger)
	defer manager.Close()

	sites, err := buildAdapters(logger, manager, cfg, cmd.StringSlice("sites"))
	if err != nil {
		return err
	}

	opts := monitor.Options{
		Date:          cmd.String("date"),
		NoScreenshots: cmd.Bool("no-screenshots"),
		NoDetails:     cmd.Bool("no-details"),
	}

	mon := monitor.NewMonitor(logger, store, manager, repo, cfg.OutputDir)

	weekly, err := mon.Run(ctx, sites, opts)
	if err != nil {
		return fmt.Errorf("monitoring run failed: %w", err)
	}

	weekly.AISummary = aireport.New(logger, cfg.OpenAI.APIKey, aireport.WithModel(cfg.OpenAI.Model)).
		Summarize(ctx, weekly)

	mdPath, htmlPath, err := report.WriteReports(weekly, cfg.OutputDir)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "reports written", "markdown", mdPath, "html", htmlPath)

	recipients := cmd.StringSlice("email-to")
	if len(recipients) == 0 {
		recipients = cfg.SMTP.Recipients
	}
	if len(recipients) > 0 {
		if err = emailReport(logger, cfg, weekly, recipients); err != nil {
			// The run itself succeeded, reports are on disk.
			logger.ErrorContext(ctx, "failed to email report", "error", err)
		}
	}

	notifySubscribers(ctx, logger, cfg, repo, weekly)

	return nil
}

func datesAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	store, err := storage.NewFS(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	for _, siteKey := range knownSiteKeys(cfg) {
		dates, err := store.ListDates(siteKey)
		if err != nil {
			return fmt.Errorf("failed to list dates for %s: %w", siteKey, err)
		}
		fmt.Printf("%s: %s\n", siteKey, strings.Join(dates, ", "))

		run, err := repo.GetLastRun(ctx, siteKey)
		switch {
		case errors.Is(err, repository.ErrRunNotFound):
			fmt.Println("  last run: none recorded")
		case err != nil:
			return fmt.Errorf("failed to get last run for %s: %w", siteKey, err)
		default:
			fmt.Printf("  last run: %s (%d new, %d updated)\n", run.RunDate, run.NewCount, run.UpdatedCount)
		}
	}

	return nil
}

func botAction(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	if err := cfg.ValidateTelegram(); err != nil {
		return err
	}

	repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	watchBot, err := bot.NewBot(logger, cfg.Tg.Token, cfg.Tg.Timeout, repo, repo)
	if err != nil {
		log.Fatalf("Failed to init bot: %v", err)
	}

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	go watchBot.Start()

	<-ctx.Done()

	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")
	watchBot.Stop()
	logger.InfoContext(ctx, "Application stopped gracefully.")

	return nil
}

// buildAdapters assembles the site collectors, optionally filtered to a
// subset of site keys.
func buildAdapters(
	logger *slog.Logger,
	manager *browser.Manager,
	cfg *config.Config,
	only []string,
) ([]adapters.Adapter, error) {
	all := []adapters.Adapter{
		adapters.NewNT(logger),
		adapters.NewUnitel(logger),
		adapters.NewSkytel(logger, manager),
	}

	for _, pageURL := range cfg.CustomSites {
		custom, err := adapters.NewCustom(logger, manager, pageURL, "")
		if err != nil {
			return nil, fmt.Errorf("invalid custom site %q: %w", pageURL, err)
		}
		all = append(all, custom)
	}

	if len(only) == 0 {
		return all, nil
	}

	var selected []adapters.Adapter
	for _, adapter := range all {
		if slices.Contains(only, adapter.Site().Key) {
			selected = append(selected, adapter)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no known site matches %v", only)
	}

	return selected, nil
}

func knownSiteKeys(cfg *config.Config) []string {
	keys := []string{"nt", "unitel", "skytel"}
	for _, pageURL := range cfg.CustomSites {
		if key, err := adapters.SiteKeyFromURL(pageURL); err == nil {
			keys = append(keys, key)
		}
	}

	return keys
}

func emailReport(logger *slog.Logger, cfg *config.Config, weekly *models.WeeklyReport, recipients []string) error {
	html, cidMap, err := report.RenderHTMLForEmail(weekly, cfg.OutputDir)
	if err != nil {
		return err
	}

	emailer, err := report.NewEmailer(logger, report.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		return err
	}

	subject := "Weekly Website Change Report - " + weekly.RunDate

	return emailer.Send(subject, html, cidMap, recipients)
}

// notifySubscribers broadcasts the run digest when a bot token is
// configured. Best-effort: failures never fail the run.
func notifySubscribers(ctx context.Context, logger *slog.Logger, cfg *config.Config, repo *sqlite.Repository, weekly *models.WeeklyReport) {
	if cfg.Tg.Token == "" {
		return
	}

	watchBot, err := bot.NewBot(logger, cfg.Tg.Token, cfg.Tg.Timeout, repo, repo)
	if err != nil {
		logger.WarnContext(ctx, "failed to init bot for notification", "error", err)
		return
	}

	diffs := make([]models.SiteDiff, 0, len(weekly.Sites))
	for _, site := range weekly.Sites {
		diffs = append(diffs, site.Diff)
	}

	if err = watchBot.Notify(ctx, diffs); err != nil {
		logger.WarnContext(ctx, "failed to notify subscribers", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
