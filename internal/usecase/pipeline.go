package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"InterviewScanner/internal/aggregate"
	"InterviewScanner/internal/analysis"
	"InterviewScanner/internal/domain"
	"InterviewScanner/internal/ports"
	"InterviewScanner/internal/risk"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.RowSource
	Repository ports.RecordRepository
	Notifier   ports.Notifier
	Summary    ports.SummaryClient
	Settings   domain.AppSettings
	Logger     *slog.Logger
}

// Pipeline implements the batch ingestion-and-analysis workflow: rows are
// analyzed independently, persisted per person, then every touched person's
// risk is recomputed over their full history.
type Pipeline struct {
	source     ports.RowSource
	repository ports.RecordRepository
	notifier   ports.Notifier
	summary    ports.SummaryClient
	settings   domain.AppSettings
	logger     *slog.Logger
}

// BatchResult reports what one pipeline run produced.
type BatchResult struct {
	RecordCount int
	SkippedRows int
	Risks       map[string]domain.RiskResult
	Phases      map[string][]aggregate.PhaseData
	NewRedTiers []string
	Stats       aggregate.GroupStats
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:     deps.Source,
		repository: deps.Repository,
		notifier:   deps.Notifier,
		summary:    deps.Summary,
		settings:   deps.Settings,
		logger:     deps.Logger,
	}
}

// ProcessBatch orchestrates fetching, per-record analysis, risk scoring,
// aggregation, and notification for one upload batch.
func (p *Pipeline) ProcessBatch(ctx context.Context) (BatchResult, error) {
	result := BatchResult{
		Risks:  map[string]domain.RiskResult{},
		Phases: map[string][]aggregate.PhaseData{},
	}
	if p.source == nil || p.repository == nil {
		return result, fmt.Errorf("pipeline requires a source and a repository")
	}

	rows, err := p.source.FetchRows(ctx)
	if err != nil {
		return result, fmt.Errorf("fetch rows: %w", err)
	}

	records := p.analyzeRows(ctx, rows, &result)

	// Persist in input order; analysis itself is order-free.
	var batchRecords []domain.InterviewRecord
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if err := p.repository.SaveRecord(ctx, *rec); err != nil {
			return result, fmt.Errorf("save record: %w", err)
		}
		batchRecords = append(batchRecords, *rec)
		result.RecordCount++

		// High urgency opens a follow-up case automatically.
		if rec.Analysis.Urgency == domain.UrgencyHigh && rec.Person != "" {
			if err := p.repository.OpenCase(ctx, rec.Person); err != nil {
				return result, fmt.Errorf("open case for %s: %w", rec.Person, err)
			}
		}
	}

	persons := uniquePersons(batchRecords)
	if err := p.scorePersons(ctx, persons, &result); err != nil {
		return result, err
	}

	result.Stats = p.aggregateBatch(ctx, batchRecords, persons, result.Risks)

	p.notify(ctx, &result)
	p.sendSummary(ctx, result.Stats)

	return result, nil
}

// analyzeRows runs per-record analysis concurrently; each call is pure given
// its inputs, so slots are written without shared state. A failing row is
// logged and skipped, never aborting the batch.
func (p *Pipeline) analyzeRows(ctx context.Context, rows []domain.Row, result *BatchResult) []*domain.InterviewRecord {
	records := make([]*domain.InterviewRecord, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return nil
			}
			defer func() {
				if r := recover(); r != nil {
					p.warn("record analysis failed", "sheet", row.Sheet, "row", row.Index, "panic", r)
				}
			}()

			rec := domain.InterviewRecord{
				Person:  row.Name,
				Staff:   row.Staff,
				Content: row.Content,
				Action:  row.Action,
			}
			if date, ok := analysis.ParseDate(row.Date); ok {
				rec.Date = &date
			}
			rec.Analysis = analysis.AnalyzeRecord(row.Content, row.Action, p.settings)
			records[i] = &rec
			return nil
		})
	}
	_ = g.Wait()

	for _, rec := range records {
		if rec == nil {
			result.SkippedRows++
		}
	}
	return records
}

// scorePersons recomputes risk over each person's full stored history, in
// parallel across persons, and records Red-tier transitions.
func (p *Pipeline) scorePersons(ctx context.Context, persons []string, result *BatchResult) error {
	type scored struct {
		person     string
		risk       domain.RiskResult
		phases     []aggregate.PhaseData
		enteredRed bool
	}
	outcomes := make([]scored, len(persons))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, person := range persons {
		g.Go(func() error {
			history, err := p.repository.RecordsForPerson(ctx, person)
			if err != nil {
				return fmt.Errorf("load history for %s: %w", person, err)
			}
			openCases, err := p.repository.OpenCaseCount(ctx, person)
			if err != nil {
				return fmt.Errorf("count cases for %s: %w", person, err)
			}
			prevTier, hadTier, err := p.repository.PreviousTier(ctx, person)
			if err != nil {
				return fmt.Errorf("previous tier for %s: %w", person, err)
			}

			assessment := risk.Calculate(risk.Input{
				Records:       toRiskRecords(history),
				OpenCaseCount: openCases,
				Thresholds:    p.settings.Thresholds,
			})
			if err := p.repository.SaveRisk(ctx, person, assessment); err != nil {
				return fmt.Errorf("save risk for %s: %w", person, err)
			}

			outcomes[i] = scored{
				person: person,
				risk:   assessment,
				// The earliest dated record stands in for the start date.
				phases:     aggregate.AnalyzePhases(history, earliestDate(history)),
				enteredRed: assessment.Tier == domain.TierRed && (!hadTier || prevTier != domain.TierRed),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, o := range outcomes {
		result.Risks[o.person] = o.risk
		if o.phases != nil {
			result.Phases[o.person] = o.phases
		}
		if o.enteredRed {
			result.NewRedTiers = append(result.NewRedTiers, o.person)
		}
	}
	sort.Strings(result.NewRedTiers)
	return nil
}

func (p *Pipeline) aggregateBatch(ctx context.Context, records []domain.InterviewRecord, persons []string, risks map[string]domain.RiskResult) aggregate.GroupStats {
	tiers := make([]domain.RiskTier, 0, len(persons))
	openCases := 0
	for _, person := range persons {
		tiers = append(tiers, risks[person].Tier)
		if count, err := p.repository.OpenCaseCount(ctx, person); err == nil {
			openCases += count
		}
	}
	return aggregate.AggregateGroupStats(aggregate.GroupInput{
		Records:       records,
		PersonTiers:   tiers,
		OpenCaseCount: openCases,
	})
}

// notify fires configured alerts; delivery failures are logged, not fatal.
func (p *Pipeline) notify(ctx context.Context, result *BatchResult) {
	if p.notifier == nil || !p.settings.Notifications.Enabled {
		return
	}

	if p.settings.Notifications.TriggerOnRed {
		for _, person := range result.NewRedTiers {
			msg := aggregate.GeneratePersonInsight(person, result.Risks[person], 0)
			if err := p.notifier.PublishAlert(ctx, "🔴 "+msg); err != nil {
				p.warn("red tier alert failed", "person", person, "error", err)
			}
		}
	}

	if p.settings.Notifications.TriggerOnHighUrgency && result.Stats.HighUrgencyCount > 0 {
		msg := fmt.Sprintf("⚡ 緊急度「高」の面談記録が%d件あります。早急な確認を推奨します。", result.Stats.HighUrgencyCount)
		if err := p.notifier.PublishAlert(ctx, msg); err != nil {
			p.warn("high urgency alert failed", "error", err)
		}
	}
}

// sendSummary hands the aggregated numbers to the optional narrative client.
func (p *Pipeline) sendSummary(ctx context.Context, stats aggregate.GroupStats) {
	if p.summary == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		p.warn("marshal summary payload failed", "error", err)
		return
	}
	if err := p.summary.SendDigest(ctx, payload); err != nil {
		p.warn("send summary digest failed", "error", err)
	}
}

func toRiskRecords(history []domain.InterviewRecord) []risk.Record {
	records := make([]risk.Record, 0, len(history))
	for _, rec := range history {
		r := risk.Record{
			Date:         rec.Date,
			CategoryMain: rec.Analysis.CategoryMain,
			TextAll:      rec.Analysis.TextAll,
		}
		if rec.Analysis.TextAll != "" {
			score := rec.Analysis.Sentiment.Score
			r.SentimentScore = &score
		}
		records = append(records, r)
	}
	return records
}

func earliestDate(history []domain.InterviewRecord) *time.Time {
	var earliest *time.Time
	for _, rec := range history {
		if rec.Date == nil {
			continue
		}
		if earliest == nil || rec.Date.Before(*earliest) {
			earliest = rec.Date
		}
	}
	return earliest
}

func uniquePersons(records []domain.InterviewRecord) []string {
	seen := map[string]bool{}
	var persons []string
	for _, rec := range records {
		if rec.Person == "" || seen[rec.Person] {
			continue
		}
		seen[rec.Person] = true
		persons = append(persons, rec.Person)
	}
	return persons
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

