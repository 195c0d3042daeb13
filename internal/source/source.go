package source

import (
	"context"
	"fmt"

	"InterviewScanner/internal/domain"
)

// Request carries all parameters required to read one configured input.
type Request struct {
	Name    string
	Group   string
	Path    string
	Options map[string]string
}

// Source captures a single input-format strategy (CSV today; spreadsheet
// formats are handled by surrounding layers that hand over normalized rows).
type Source interface {
	Name() string
	Read(ctx context.Context, req Request) ([]domain.Row, error)
}

// Registry keeps a mapping from format names to their implementations.
type Registry struct {
	sources map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces a source implementation.
func (r *Registry) Register(src Source) {
	if r.sources == nil {
		r.sources = map[string]Source{}
	}
	r.sources[src.Name()] = src
}

// Resolve returns a source by format name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if src, ok := r.sources[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("source %s is not registered", name)
}
