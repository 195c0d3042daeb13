package parser

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"InterviewScanner/internal/analysis"
	"InterviewScanner/internal/domain"
	"InterviewScanner/internal/source"
)

// CSVSource reads headered consultation logs exported as CSV. Column
// detection is by header name only; spreadsheet column-guessing heuristics
// belong to surrounding layers.
type CSVSource struct {
	logger *slog.Logger
}

var _ source.Source = (*CSVSource)(nil)

// NewCSVSource builds the CSV reading strategy.
func NewCSVSource(log *slog.Logger) *CSVSource {
	return &CSVSource{logger: log}
}

// Name identifies this strategy in the registry.
func (s *CSVSource) Name() string { return "csv" }

// Header aliases accepted for each row field.
var columnAliases = map[string][]string{
	"date":    {"date", "日付", "面談日", "実施日"},
	"name":    {"name", "氏名", "名前", "対象者"},
	"staff":   {"staff", "担当", "担当者", "面談者"},
	"content": {"content", "内容", "相談内容", "面談内容"},
	"action":  {"action", "対応", "対応内容", "アクション"},
}

// Read loads the configured file and maps headered columns onto rows. Rows
// without any content are dropped; a staff annotation buried in the name cell
// is split out.
func (s *CSVSource) Read(ctx context.Context, req source.Request) ([]domain.Row, error) {
	f, err := os.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", req.Path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", req.Path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	mapping := mapColumns(records[0])
	if mapping["content"] < 0 {
		return nil, fmt.Errorf("csv %s: no content column found", req.Path)
	}

	var rows []domain.Row
	for i, record := range records[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row := domain.Row{
			Date:    cell(record, mapping["date"]),
			Name:    cell(record, mapping["name"]),
			Staff:   cell(record, mapping["staff"]),
			Content: cell(record, mapping["content"]),
			Action:  cell(record, mapping["action"]),
			Sheet:   req.Name,
			Index:   i + 2, // 1-based, after the header
		}
		if row.Content == "" && row.Action == "" {
			continue
		}
		if row.Staff == "" {
			if staff := analysis.ExtractStaff(row.Name); staff != "" {
				row.Staff = staff
			}
		}
		rows = append(rows, row)
	}

	if s.logger != nil {
		s.logger.Debug("csv parsed", "path", req.Path, "rows", len(rows))
	}
	return rows, nil
}

func mapColumns(header []string) map[string]int {
	mapping := map[string]int{}
	for field := range columnAliases {
		mapping[field] = -1
	}
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		for field, aliases := range columnAliases {
			if mapping[field] >= 0 {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					mapping[field] = i
					break
				}
			}
		}
	}
	return mapping
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
