package app

import (
	"context"
	"log/slog"

	"InterviewScanner/internal/config"
	"InterviewScanner/internal/infrastructure/llm"
	"InterviewScanner/internal/infrastructure/parser"
	"InterviewScanner/internal/infrastructure/storage"
	"InterviewScanner/internal/infrastructure/telegram"
	"InterviewScanner/internal/logging"
	"InterviewScanner/internal/ports"
	"InterviewScanner/internal/source"
	"InterviewScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration. Each
// configured group gets its own pipeline over a shared repository.
type Application struct {
	cfg       config.Config
	pipelines []*usecase.Pipeline
	logger    *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := source.NewRegistry()
	registry.Register(parser.NewCSVSource(baseLogger.With("component", "source.csv")))

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	var summary ports.SummaryClient
	if cfg.Summary.APIKey != "" {
		summary = llm.NewSummaryClient(cfg.Summary)
	}

	repository := storage.NewMemoryRepository()

	inputsByGroup := map[string][]config.InputConfig{}
	for _, input := range cfg.Inputs {
		inputsByGroup[input.Group] = append(inputsByGroup[input.Group], input)
	}

	app := &Application{cfg: cfg, logger: baseLogger}
	for group, inputs := range inputsByGroup {
		src := parser.NewStrategySource(registry, inputs, baseLogger.With("component", "source", "group", group))
		app.pipelines = append(app.pipelines, usecase.NewPipeline(usecase.PipelineDeps{
			Source:     src,
			Repository: repository,
			Notifier:   notifier,
			Summary:    summary,
			Settings:   cfg.SettingsForGroup(group),
			Logger:     baseLogger.With("component", "pipeline", "group", group),
		}))
	}

	return app
}

// Run executes one batch pass per configured group.
func (a *Application) Run(ctx context.Context) error {
	for _, pipeline := range a.pipelines {
		result, err := pipeline.ProcessBatch(ctx)
		if err != nil {
			return err
		}
		a.logger.Info("batch processed",
			"records", result.RecordCount,
			"skipped", result.SkippedRows,
			"persons", len(result.Risks),
			"red", result.Stats.RedAlertCount,
			"yellow", result.Stats.YellowAlertCount,
		)
	}
	return nil
}
