// Package metrics publishes the storage core's marker gauges on a
// VictoriaMetrics metric set, the way the teacher repo's go.mod pulls in
// github.com/VictoriaMetrics/metrics for process-wide instrumentation.
package metrics

import (
	"context"
	"io"

	vm "github.com/VictoriaMetrics/metrics"

	"github.com/starkstore/node/internal/storage"
	"github.com/starkstore/node/log"
)

// markerGaugeNames are the stable metric names spec.md §6 reserves for
// every marker kind storage itself owns. central_block_marker is the
// sync collaborator's own counter, not published here.
var markerGaugeNames = map[storage.MarkerKind]string{
	storage.MarkerHeader:        "starknet_header_marker",
	storage.MarkerBody:          "starknet_body_marker",
	storage.MarkerState:         "starknet_state_marker",
	storage.MarkerCompiledClass: "starknet_compiled_class_marker",
	storage.MarkerBaseLayer:     "starknet_base_layer_marker",
}

// Markers registers one gauge per marker kind against its own metric
// set, each read lazily from a fresh snapshot at scrape time so a
// metrics pull never competes with the single writer for a long-lived
// transaction.
type Markers struct {
	set    *vm.Set
	reader *storage.Reader
}

// NewMarkers creates and registers the marker gauges for reader.
func NewMarkers(reader *storage.Reader) *Markers {
	m := &Markers{set: vm.NewSet(), reader: reader}
	for kind, name := range markerGaugeNames {
		m.register(kind, name)
	}
	return m
}

func (m *Markers) register(kind storage.MarkerKind, name string) {
	k := kind
	m.set.NewGauge(name, func() float64 {
		v, err := m.read(k)
		if err != nil {
			log.Warn("metrics: marker read failed", "marker", k.String(), "err", err)
			return 0
		}
		return float64(v)
	})
}

func (m *Markers) read(kind storage.MarkerKind) (uint64, error) {
	rs, err := m.reader.BeginRead(context.Background())
	if err != nil {
		return 0, err
	}
	defer rs.Close()
	return rs.GetMarker(kind)
}

// WritePrometheus renders every registered gauge in Prometheus exposition
// format, the shape cmd/node's /metrics endpoint serves.
func (m *Markers) WritePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
}
