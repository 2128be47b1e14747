package smells

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtlens/debtlens/pkg/models"
)

// stubDetector emits a fixed set of records after an optional delay, so
// ordering tests can force detectors to finish out of order.
type stubDetector struct {
	name     string
	category string
	records  []models.CodeSmell
	delay    time.Duration
	panics   bool
}

func (d *stubDetector) Name() string     { return d.name }
func (d *stubDetector) Category() string { return d.category }

func (d *stubDetector) Scan(src *Source) []models.CodeSmell {
	if d.panics {
		panic("detector blew up")
	}
	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	return d.records
}

func stub(name, category string, delay time.Duration) *stubDetector {
	return &stubDetector{
		name:     name,
		category: category,
		delay:    delay,
		records: []models.CodeSmell{
			{Category: category, Name: name, Detected: true},
		},
	}
}

func TestDetectPreservesRegistryOrder(t *testing.T) {
	// The first detector is the slowest; its records must still come first.
	detectors := []Detector{
		stub("first", "A", 30*time.Millisecond),
		stub("second", "B", 10*time.Millisecond),
		stub("third", "C", 0),
	}

	r := NewRegistry(detectors)

	for i := 0; i < 5; i++ {
		out := r.Detect(context.Background(), &Source{})
		require.Len(t, out, 3, "iteration %d", i)
		assert.Equal(t, "first", out[0].Name)
		assert.Equal(t, "second", out[1].Name)
		assert.Equal(t, "third", out[2].Name)
	}
}

func TestDetectEmptyRegistry(t *testing.T) {
	r := NewRegistry(nil)
	assert.Empty(t, r.Detect(context.Background(), &Source{}))
}

func TestDetectPanickingDetectorIsSkipped(t *testing.T) {
	detectors := []Detector{
		stub("before", "A", 0),
		&stubDetector{name: "broken", category: "B", panics: true},
		stub("after", "C", 0),
	}

	out := NewRegistry(detectors).Detect(context.Background(), &Source{})
	require.Len(t, out, 2)
	assert.Equal(t, "before", out[0].Name)
	assert.Equal(t, "after", out[1].Name)
}

func TestDetectWorkerCap(t *testing.T) {
	var detectors []Detector
	for i := 0; i < 20; i++ {
		detectors = append(detectors, stub(fmt.Sprintf("d%02d", i), "A", 0))
	}

	out := NewRegistry(detectors, WithWorkers(2)).Detect(context.Background(), &Source{})
	require.Len(t, out, 20)
	for i, record := range out {
		assert.Equal(t, fmt.Sprintf("d%02d", i), record.Name)
	}
}

func TestDetectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := NewRegistry([]Detector{stub("only", "A", 0)}).Detect(ctx, &Source{})
	assert.Empty(t, out)
}
