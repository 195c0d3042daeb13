package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"InterviewScanner/internal/analysis"
	"InterviewScanner/internal/domain"
	"InterviewScanner/internal/infrastructure/storage"
)

type fakeSource struct {
	rows []domain.Row
	err  error
}

func (s *fakeSource) FetchRows(ctx context.Context) ([]domain.Row, error) {
	return s.rows, s.err
}

type spyNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *spyNotifier) PublishAlert(ctx context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return nil
}

type spySummary struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (s *spySummary) SendDigest(ctx context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload)
	return nil
}

func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format("2006/01/02")
}

// escalatingText scores strongly negative, lands in the health category, and
// carries both a high-urgency keyword and an unresolved idiom.
const escalatingText = "暴力を受けてつらい。不満もある。体調が悪い。まだ解決していない"

func batchRows() []domain.Row {
	rows := []domain.Row{
		{Date: daysAgo(21), Name: "グエン", Content: escalatingText, Sheet: "log", Index: 2},
		{Date: daysAgo(14), Name: "グエン", Content: escalatingText, Sheet: "log", Index: 3},
		{Date: daysAgo(7), Name: "グエン", Content: escalatingText, Sheet: "log", Index: 4},
		{Date: daysAgo(3), Name: "グエン", Content: escalatingText, Sheet: "log", Index: 5},
		{Date: daysAgo(5), Name: "リン", Content: "順調に勤務している", Sheet: "log", Index: 6},
		{Date: "", Name: "", Content: "名前のないメモ", Sheet: "log", Index: 7},
	}
	return rows
}

func alertingSettings() domain.AppSettings {
	settings := analysis.DefaultSettings()
	settings.Notifications.Enabled = true
	return settings
}

func TestProcessBatch(t *testing.T) {
	t.Parallel()

	notifier := &spyNotifier{}
	summary := &spySummary{}
	repo := storage.NewMemoryRepository()
	p := NewPipeline(PipelineDeps{
		Source:     &fakeSource{rows: batchRows()},
		Repository: repo,
		Notifier:   notifier,
		Summary:    summary,
		Settings:   alertingSettings(),
	})

	result, err := p.ProcessBatch(context.Background())
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}

	if result.RecordCount != 6 || result.SkippedRows != 0 {
		t.Fatalf("counts = %d records / %d skipped", result.RecordCount, result.SkippedRows)
	}

	// Four high-urgency records each open a case; the whole history plus the
	// open cases push the person over the red threshold.
	guen, ok := result.Risks["グエン"]
	if !ok {
		t.Fatalf("missing risk for グエン: %v", result.Risks)
	}
	if guen.Tier != domain.TierRed {
		t.Fatalf("tier = %s (score %d), want %s", guen.Tier, guen.Score, domain.TierRed)
	}
	if lin := result.Risks["リン"]; lin.Tier != domain.TierGreen {
		t.Fatalf("リン tier = %s (score %d), want green", lin.Tier, lin.Score)
	}
	if len(result.NewRedTiers) != 1 || result.NewRedTiers[0] != "グエン" {
		t.Fatalf("newRedTiers = %v", result.NewRedTiers)
	}

	if cases, err := repo.OpenCaseCount(context.Background(), "グエン"); err != nil || cases != 4 {
		t.Fatalf("open cases = %d, err %v, want 4", cases, err)
	}

	// Tenure phases are anchored on the earliest dated record; all four
	// records fall within 21 days of it.
	phases, ok := result.Phases["グエン"]
	if !ok || len(phases) != 4 {
		t.Fatalf("phases = %v", phases)
	}
	if phases[0].Count != 4 {
		t.Fatalf("first phase count = %d, want 4", phases[0].Count)
	}

	if result.Stats.TotalRecords != 6 || result.Stats.TotalPersons != 2 {
		t.Fatalf("stats totals = %d/%d", result.Stats.TotalRecords, result.Stats.TotalPersons)
	}
	if result.Stats.HighUrgencyCount != 4 {
		t.Fatalf("highUrgency = %d, want 4", result.Stats.HighUrgencyCount)
	}
	if result.Stats.RedAlertCount != 1 {
		t.Fatalf("redAlerts = %d, want 1", result.Stats.RedAlertCount)
	}

	// One red-transition alert plus one high-urgency alert.
	if len(notifier.messages) != 2 {
		t.Fatalf("notifications = %v", notifier.messages)
	}
	if !strings.HasPrefix(notifier.messages[0], "🔴 ") || !strings.Contains(notifier.messages[0], "グエン") {
		t.Fatalf("red alert = %q", notifier.messages[0])
	}
	if !strings.Contains(notifier.messages[1], "⚡") || !strings.Contains(notifier.messages[1], "4件") {
		t.Fatalf("urgency alert = %q", notifier.messages[1])
	}

	if len(summary.payloads) != 1 || !strings.Contains(string(summary.payloads[0]), `"totalRecords":6`) {
		t.Fatalf("summary payloads = %q", summary.payloads)
	}
}

func TestProcessBatchRedTransitionFiresOnce(t *testing.T) {
	t.Parallel()

	notifier := &spyNotifier{}
	repo := storage.NewMemoryRepository()
	p := NewPipeline(PipelineDeps{
		Source:     &fakeSource{rows: batchRows()},
		Repository: repo,
		Notifier:   notifier,
		Settings:   alertingSettings(),
	})

	if _, err := p.ProcessBatch(context.Background()); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	second, err := p.ProcessBatch(context.Background())
	if err != nil {
		t.Fatalf("second batch: %v", err)
	}

	// Already red before the second run, so no new transition.
	if len(second.NewRedTiers) != 0 {
		t.Fatalf("second run newRedTiers = %v", second.NewRedTiers)
	}
	redAlerts := 0
	for _, msg := range notifier.messages {
		if strings.HasPrefix(msg, "🔴 ") {
			redAlerts++
		}
	}
	if redAlerts != 1 {
		t.Fatalf("red alerts = %d across two runs, want 1", redAlerts)
	}
}

func TestProcessBatchNotificationsDisabled(t *testing.T) {
	t.Parallel()

	notifier := &spyNotifier{}
	p := NewPipeline(PipelineDeps{
		Source:     &fakeSource{rows: batchRows()},
		Repository: storage.NewMemoryRepository(),
		Notifier:   notifier,
		Settings:   analysis.DefaultSettings(), // alerts off by default
	})

	if _, err := p.ProcessBatch(context.Background()); err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("notifications sent while disabled: %v", notifier.messages)
	}
}

func TestProcessBatchSourceError(t *testing.T) {
	t.Parallel()

	p := NewPipeline(PipelineDeps{
		Source:     &fakeSource{err: fmt.Errorf("boom")},
		Repository: storage.NewMemoryRepository(),
		Settings:   analysis.DefaultSettings(),
	})

	if _, err := p.ProcessBatch(context.Background()); err == nil {
		t.Fatalf("want error from failing source")
	}
}

func TestProcessBatchMissingDeps(t *testing.T) {
	t.Parallel()

	p := NewPipeline(PipelineDeps{Settings: analysis.DefaultSettings()})
	if _, err := p.ProcessBatch(context.Background()); err == nil {
		t.Fatalf("want error without source and repository")
	}
}

func TestUniquePersons(t *testing.T) {
	t.Parallel()

	records := []domain.InterviewRecord{
		{Person: "グエン"}, {Person: "リン"}, {Person: "グエン"}, {Person: ""},
	}
	persons := uniquePersons(records)
	if len(persons) != 2 || persons[0] != "グエン" || persons[1] != "リン" {
		t.Fatalf("persons = %v", persons)
	}
}
