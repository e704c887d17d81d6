package obs

import (
	"context"
	"testing"
)

func TestExporterKindDefaultsToOTLP(t *testing.T) {
	cases := []struct {
		exporter string
		want     string
	}{
		{"", "otlp"},
		{"  OTLP  ", "otlp"},
		{"jaeger", "jaeger"},
	}
	for _, tc := range cases {
		got := TracingConfig{Exporter: tc.exporter}.exporterKind()
		if got != tc.want {
			t.Fatalf("exporterKind(%q) = %q, want %q", tc.exporter, got, tc.want)
		}
	}
}

func TestSamplingRatioDefaultsToOne(t *testing.T) {
	if got := (TracingConfig{}).ratio(); got != 1 {
		t.Fatalf("ratio() = %v, want 1", got)
	}
	if got := (TracingConfig{SamplingRatio: 0.25}).ratio(); got != 0.25 {
		t.Fatalf("ratio() = %v, want 0.25", got)
	}
}

func TestInitTracerRejectsUnknownExporter(t *testing.T) {
	_, err := InitTracer(context.Background(), TracingConfig{Exporter: "jaeger"})
	if err == nil {
		t.Fatal("expected an error for an unsupported exporter")
	}
}
