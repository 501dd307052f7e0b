package classifier

import (
	"testing"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
)

func testRegistry() *Registry {
	return NewRegistry([]string{"healthy", "rust", "septoria"})
}

func TestDecode_ArgMax(t *testing.T) {
	label, conf := Decode([]float32{0.1, 0.7, 0.2}, testRegistry())
	if label != "rust" {
		t.Fatalf("expected rust, got %s", label)
	}
	if conf != float64(float32(0.7)) {
		t.Fatalf("expected confidence 0.7, got %v", conf)
	}
}

func TestDecode_Deterministic(t *testing.T) {
	probs := []float32{0.25, 0.5, 0.25}
	first, firstConf := Decode(probs, testRegistry())
	for i := 0; i < 10; i++ {
		label, conf := Decode(probs, testRegistry())
		if label != first || conf != firstConf {
			t.Fatalf("decode not deterministic: got (%s, %v), want (%s, %v)", label, conf, first, firstConf)
		}
	}
}

func TestDecode_TieLowestIndexWins(t *testing.T) {
	label, _ := Decode([]float32{0.4, 0.4, 0.2}, testRegistry())
	if label != "healthy" {
		t.Fatalf("expected tie to resolve to lowest index (healthy), got %s", label)
	}

	label, _ = Decode([]float32{0.2, 0.4, 0.4}, testRegistry())
	if label != "rust" {
		t.Fatalf("expected tie to resolve to lowest index (rust), got %s", label)
	}
}

func TestDecode_IndexBeyondRegistry(t *testing.T) {
	// Four probabilities, three labels: arg-max lands outside the registry.
	label, conf := Decode([]float32{0.1, 0.1, 0.1, 0.7}, testRegistry())
	if label != domain.UnknownLabel {
		t.Fatalf("expected %s, got %s", domain.UnknownLabel, label)
	}
	if conf != float64(float32(0.7)) {
		t.Fatalf("confidence should still be reported, got %v", conf)
	}
}

func TestDecode_EmptyRegistry(t *testing.T) {
	label, _ := Decode([]float32{0.3, 0.7}, &Registry{})
	if label != domain.UnknownLabel {
		t.Fatalf("expected %s with empty registry, got %s", domain.UnknownLabel, label)
	}
}

func TestDecode_EmptyProbabilities(t *testing.T) {
	label, conf := Decode(nil, testRegistry())
	if label != domain.UnknownLabel || conf != 0 {
		t.Fatalf("expected (%s, 0), got (%s, %v)", domain.UnknownLabel, label, conf)
	}
}

func TestRoundConfidence(t *testing.T) {
	cases := []struct {
		in       float64
		decimals int
		want     float64
	}{
		{0.98765, 2, 0.99},
		{0.98765, 4, 0.9877},
		{0.5, 2, 0.5},
		{0.994999, 2, 0.99},
		{1, 4, 1},
	}
	for _, tc := range cases {
		if got := RoundConfidence(tc.in, tc.decimals); got != tc.want {
			t.Fatalf("RoundConfidence(%v, %d) = %v, want %v", tc.in, tc.decimals, got, tc.want)
		}
	}
}
