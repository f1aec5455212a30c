package storage

import (
	"context"
	"testing"
)

func TestReservedMarkersStartAtZero(t *testing.T) {
	r, _ := newTestStorage(t)
	rs, err := r.BeginRead(context.Background())
	if err != nil {
		t.Fatalf("BeginRead: %v", err)
	}
	defer rs.Close()

	for _, kind := range []MarkerKind{MarkerCompiledClass, MarkerBaseLayer} {
		v, err := rs.GetMarker(kind)
		if err != nil {
			t.Fatalf("GetMarker(%s): %v", kind, err)
		}
		if v != 0 {
			t.Errorf("GetMarker(%s) = %d, want 0", kind, v)
		}
	}
	t.Log("✓ reserved markers read as 0 with no writer attached")
}

func TestMarkerKindString(t *testing.T) {
	cases := map[MarkerKind]string{
		MarkerHeader:        "header",
		MarkerBody:          "body",
		MarkerState:         "state",
		MarkerCompiledClass: "compiled_class",
		MarkerBaseLayer:     "base_layer",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("MarkerKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
