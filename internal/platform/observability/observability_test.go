package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRecordMetricEmitsWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Enabled: true}, zerolog.New(&buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { Setup(Config{}, zerolog.Nop()) })

	RecordMetric(CounterCacheHits, 1, map[string]string{"backend": "memory"})

	out := buf.String()
	for _, want := range []string{CounterCacheHits, `"value":1`, `"backend":"memory"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestRecordMetricDiscardsWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Enabled: false}, zerolog.New(&buf).Level(zerolog.DebugLevel))

	RecordMetric(CounterCacheMisses, 1, nil)

	if buf.Len() != 0 {
		t.Errorf("disabled sink wrote %q", buf.String())
	}
}
