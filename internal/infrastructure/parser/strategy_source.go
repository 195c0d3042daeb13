package parser

import (
	"context"
	"fmt"
	"log/slog"

	"InterviewScanner/internal/config"
	"InterviewScanner/internal/domain"
	"InterviewScanner/internal/ports"
	"InterviewScanner/internal/source"
)

// StrategySource implements RowSource via registered format strategies.
type StrategySource struct {
	registry *source.Registry
	inputs   []config.InputConfig
	logger   *slog.Logger
}

var _ ports.RowSource = (*StrategySource)(nil)

// NewStrategySource wires the source registry with config-defined inputs.
func NewStrategySource(reg *source.Registry, inputs []config.InputConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		inputs:   inputs,
		logger:   log,
	}
}

// FetchRows iterates over configured inputs and executes their readers.
func (s *StrategySource) FetchRows(ctx context.Context) ([]domain.Row, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("source registry is not configured")
	}

	s.debug("fetch rows", "inputs", len(s.inputs))

	var aggregated []domain.Row
	for _, input := range s.inputs {
		s.debug("process input", "input", input.Name, "format", input.Format)
		strategy, err := s.registry.Resolve(input.Format)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", input.Name, err)
		}

		req := source.Request{
			Name:    input.Name,
			Group:   input.Group,
			Path:    input.Path,
			Options: input.Options,
		}

		rows, err := strategy.Read(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("read input %s: %w", input.Name, err)
		}

		for i := range rows {
			if rows[i].Sheet == "" {
				rows[i].Sheet = input.Name
			}
		}
		s.debug("input produced rows", "input", input.Name, "count", len(rows))
		aggregated = append(aggregated, rows...)
	}

	s.debug("strategy source done", "total_rows", len(aggregated))
	return aggregated, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
