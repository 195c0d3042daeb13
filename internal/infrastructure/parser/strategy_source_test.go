package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"InterviewScanner/internal/config"
	"InterviewScanner/internal/source"
)

func TestStrategySourceFetchRows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for name, content := range map[string]string{
		"jan.csv": "日付,氏名,相談内容\n2024/1/10,グエン,寮の相談\n",
		"feb.csv": "日付,氏名,相談内容\n2024/2/10,リン,残業の相談\n2024/2/20,リン,続報\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	reg := source.NewRegistry()
	reg.Register(NewCSVSource(nil))

	src := NewStrategySource(reg, []config.InputConfig{
		{Name: "january", Format: "csv", Path: filepath.Join(dir, "jan.csv"), Group: "factory-a"},
		{Name: "february", Format: "csv", Path: filepath.Join(dir, "feb.csv"), Group: "factory-a"},
	}, nil)

	rows, err := src.FetchRows(context.Background())
	if err != nil {
		t.Fatalf("FetchRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].Sheet != "january" || rows[1].Sheet != "february" {
		t.Fatalf("sheets = %q, %q", rows[0].Sheet, rows[1].Sheet)
	}
}

func TestStrategySourceUnknownFormat(t *testing.T) {
	t.Parallel()

	src := NewStrategySource(source.NewRegistry(), []config.InputConfig{
		{Name: "legacy", Format: "xlsx", Path: "whatever.xlsx"},
	}, nil)

	if _, err := src.FetchRows(context.Background()); err == nil {
		t.Fatalf("want error for unregistered format")
	}
}

func TestStrategySourceNoRegistry(t *testing.T) {
	t.Parallel()

	src := NewStrategySource(nil, nil, nil)
	if _, err := src.FetchRows(context.Background()); err == nil {
		t.Fatalf("want error without registry")
	}
}
