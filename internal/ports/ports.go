package ports

import (
	"context"

	"InterviewScanner/internal/domain"
)

// RowSource produces normalized interview rows from upstream inputs.
type RowSource interface {
	FetchRows(ctx context.Context) ([]domain.Row, error)
}

// RecordRepository keeps analyzed records, cases, and risk results per person
// for the duration of a run. Persistence proper lives outside this core.
type RecordRepository interface {
	SaveRecord(ctx context.Context, record domain.InterviewRecord) error
	RecordsForPerson(ctx context.Context, person string) ([]domain.InterviewRecord, error)
	OpenCase(ctx context.Context, person string) error
	OpenCaseCount(ctx context.Context, person string) (int, error)
	SaveRisk(ctx context.Context, person string, result domain.RiskResult) error
	PreviousTier(ctx context.Context, person string) (domain.RiskTier, bool, error)
}

// Notifier delivers alert messages to an outbound channel (Telegram, etc.).
type Notifier interface {
	PublishAlert(ctx context.Context, message string) error
}

// SummaryClient pushes aggregated statistics to a generative-AI API for an
// optional narrative summary. The payload numbers are authoritative; the
// narrator must not alter them.
type SummaryClient interface {
	SendDigest(ctx context.Context, payload []byte) error
}
