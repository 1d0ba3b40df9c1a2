package battery

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jcmexdev/pizza-sales/internal/pkg/runctx"
	"github.com/jcmexdev/pizza-sales/internal/reporting/memory"
	"github.com/jcmexdev/pizza-sales/internal/runlog"
	"github.com/jcmexdev/pizza-sales/internal/sales/domain"
	"github.com/jcmexdev/pizza-sales/internal/sales/sample"
)

type memoryLog struct {
	mu      sync.Mutex
	entries []runlog.Entry
}

func (m *memoryLog) Save(_ context.Context, e *runlog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memoryLog) statuses() []runlog.Status {
	out := make([]runlog.Status, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Status
	}
	return out
}

func TestRunner_StandardBattery(t *testing.T) {
	log := &memoryLog{}
	steps := Standard(memory.NewEngine(sample.Dataset()))

	res, err := NewRunner(steps, log).Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)
	require.Len(t, res.Sections, len(steps))

	byName := make(map[string]Section)
	for _, sec := range res.Sections {
		byName[sec.Name] = sec
		for _, row := range sec.Rows {
			assert.Len(t, row, len(sec.Columns), sec.Name)
		}
	}

	assert.Equal(t, [][]string{{"12"}}, byName["total_orders"].Rows)
	assert.Equal(t, [][]string{{"517.15"}}, byName["total_revenue"].Rows)
	assert.Equal(t, [][]string{{"L", "9"}}, byName["most_common_size"].Rows)
	assert.Len(t, byName["top_pizza_types_by_quantity"].Rows, TopByQuantity)
	assert.Len(t, byName["top_pizza_types_by_revenue"].Rows, TopByRevenue)
	assert.Equal(t, []string{"December", "83.20", "517.15"}, byName["cumulative_revenue_by_month"].Rows[3])
	assert.Equal(t, []string{"Classic", "1", "The Classic Deluxe Pizza", "68.50"}, byName["top_pizza_types_per_category"].Rows[0])

	want := []runlog.Status{runlog.StatusStarted}
	for range steps {
		want = append(want, runlog.StatusReportDone)
	}
	want = append(want, runlog.StatusCompleted)
	assert.Equal(t, want, log.statuses())
	for _, e := range log.entries {
		assert.Equal(t, res.RunID, e.RunID)
	}
	assert.Equal(t, "total_orders", log.entries[1].Report)
	assert.Equal(t, 1, log.entries[1].Rows)
}

func TestRunner_EmptyDatasetStillCompletes(t *testing.T) {
	res, err := NewRunner(Standard(memory.NewEngine(&domain.Dataset{})), nil).Run(context.Background())
	require.NoError(t, err)

	for _, sec := range res.Sections {
		if sec.Name == "most_common_size" {
			assert.Empty(t, sec.Rows)
			assert.Nil(t, sec.Data)
		}
	}
}

type stubStep struct {
	name  string
	err   error
	calls int
	runID string
}

func (s *stubStep) Name() string { return s.name }

func (s *stubStep) Execute(ctx context.Context) (Section, error) {
	s.calls++
	s.runID = runctx.RunID(ctx)
	if s.err != nil {
		return Section{}, s.err
	}
	return Section{Name: s.name, Rows: [][]string{{"x"}}}, nil
}

func TestRunner_StopsAtFailingStep(t *testing.T) {
	boom := errors.New("boom")
	first := &stubStep{name: "first"}
	failing := &stubStep{name: "failing", err: boom}
	never := &stubStep{name: "never"}
	log := &memoryLog{}

	res, err := NewRunner([]Step{first, failing, never}, log).Run(context.Background())

	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "battery: failing")
	assert.Len(t, res.Sections, 1)
	assert.Zero(t, never.calls)
	assert.Equal(t, res.RunID, first.runID)

	assert.Equal(t, []runlog.Status{runlog.StatusStarted, runlog.StatusReportDone, runlog.StatusFailed}, log.statuses())
	assert.Equal(t, "boom", log.entries[2].Error)
	assert.Equal(t, "failing", log.entries[2].Report)
}

func TestRunner_RecordsSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	log := &memoryLog{}
	_, err := NewRunner([]Step{&stubStep{name: "only"}}, log).Run(context.Background())
	require.NoError(t, err)

	var names []string
	for _, s := range rec.Ended() {
		names = append(names, s.Name())
	}
	assert.ElementsMatch(t, []string{"only", "battery.run"}, names)

	// The REPORT_DONE row carries the step span, not the run span.
	require.Len(t, log.entries, 3)
	assert.NotEmpty(t, log.entries[1].SpanID)
	assert.Equal(t, log.entries[0].TraceID, log.entries[1].TraceID)
	assert.NotEqual(t, log.entries[0].SpanID, log.entries[1].SpanID)
}
