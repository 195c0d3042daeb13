package storage

import (
	"context"
	"sync"

	"InterviewScanner/internal/domain"
	"InterviewScanner/internal/ports"
)

// MemoryRepository keeps analyzed records, cases, and risk results in process
// memory. Durable persistence is handled by surrounding layers; this core
// only needs per-person history within a run.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string][]domain.InterviewRecord
	cases   map[string][]domain.CaseStatus
	risks   map[string]domain.RiskResult
}

var _ ports.RecordRepository = (*MemoryRepository)(nil)

// NewMemoryRepository builds an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: map[string][]domain.InterviewRecord{},
		cases:   map[string][]domain.CaseStatus{},
		risks:   map[string]domain.RiskResult{},
	}
}

// SaveRecord appends a record to the person's history.
func (r *MemoryRepository) SaveRecord(ctx context.Context, record domain.InterviewRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.Person] = append(r.records[record.Person], record)
	return nil
}

// RecordsForPerson returns a copy of the person's full record history.
func (r *MemoryRepository) RecordsForPerson(ctx context.Context, person string) ([]domain.InterviewRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.records[person]
	out := make([]domain.InterviewRecord, len(stored))
	copy(out, stored)
	return out, nil
}

// OpenCase registers a new open follow-up case for the person.
func (r *MemoryRepository) OpenCase(ctx context.Context, person string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cases[person] = append(r.cases[person], domain.CaseOpen)
	return nil
}

// OpenCaseCount counts the person's cases that are not yet resolved.
func (r *MemoryRepository) OpenCaseCount(ctx context.Context, person string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, status := range r.cases[person] {
		if status != domain.CaseResolved {
			count++
		}
	}
	return count, nil
}

// SaveRisk stores the person's latest risk assessment.
func (r *MemoryRepository) SaveRisk(ctx context.Context, person string, result domain.RiskResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.risks[person] = result
	return nil
}

// PreviousTier reports the tier stored by the last risk recompute, if any.
func (r *MemoryRepository) PreviousTier(ctx context.Context, person string) (domain.RiskTier, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.risks[person]
	if !ok {
		return "", false, nil
	}
	return result.Tier, true, nil
}

// Risk returns the stored assessment for inspection and reporting.
func (r *MemoryRepository) Risk(person string) (domain.RiskResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.risks[person]
	return result, ok
}
