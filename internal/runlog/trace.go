package runlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	// TraceID is the W3C trace ID (32 lowercase hex chars), or "" when no
	// span is active.
	TraceID string
	SpanID  string
}

// ExtractTraceInfo reads the active span from ctx. Without a valid span
// (tracing disabled, unit tests) both fields are empty.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an Entry stamped with the trace info from ctx and the
// current UTC time.
//
//	entry := runlog.NewEntry(ctx, runID, runlog.StatusReportDone, "total_orders")
//	entry.Rows = 1
//	_ = repo.Save(ctx, entry)
func NewEntry(ctx context.Context, runID string, status Status, report string) *Entry {
	ti := ExtractTraceInfo(ctx)
	return &Entry{
		RunID:     runID,
		Status:    status,
		Report:    report,
		TraceID:   ti.TraceID,
		SpanID:    ti.SpanID,
		UpdatedAt: time.Now().UTC(),
	}
}
