package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Exporter types.
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Config holds the OpenTelemetry instrumentation configuration.
type Config struct {
	// ServiceName is the reported service name (default: mailbridge).
	ServiceName string

	// ServiceVersion is the reported service version.
	ServiceVersion string

	// Enabled turns metrics and tracing on or off entirely.
	// Set INSTRUMENTATION_ENABLED=false to disable.
	Enabled bool

	// MetricsExporter selects "prometheus", "otlp" or "stdout".
	MetricsExporter string

	// TracingExporter selects "otlp", "stdout" or "none".
	TracingExporter string

	// OTLPEndpoint is the OTLP collector endpoint, host:port without a
	// protocol prefix.
	OTLPEndpoint string

	// OTLPInsecure switches OTLP export to plain HTTP. Development only.
	OTLPInsecure bool

	// TraceSamplingRate is the parent-based sampling ratio, 0.0 to 1.0.
	TraceSamplingRate float64

	// AuditEnabled turns the audit log on or off.
	AuditEnabled bool

	// AuditIncludePII includes full email addresses in audit entries.
	// When false, addresses are logged as anonymized hashes.
	AuditIncludePII bool
}

// DefaultConfig builds a Config from environment variables with
// sensible defaults: Prometheus metrics, no tracing, audit on without
// PII.
func DefaultConfig() Config {
	return Config{
		ServiceName:       envOr("OTEL_SERVICE_NAME", "mailbridge"),
		ServiceVersion:    "unknown",
		Enabled:           envBoolOr("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:   envOr("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:   envOr("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:      envOr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:      envBoolOr("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate: envFloatOr("OTEL_TRACES_SAMPLER_ARG", 0.1),
		AuditEnabled:      envBoolOr("AUDIT_LOGGING_ENABLED", true),
		AuditIncludePII:   envBoolOr("AUDIT_LOGGING_INCLUDE_PII", false),
	}
}

// Validate checks exporter names and sampling bounds.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case ExporterPrometheus, ExporterOTLP, ExporterStdout:
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case ExporterOTLP, ExporterStdout, ExporterNone:
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if c.MetricsExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using the OTLP metrics exporter")
	}
	if c.TracingExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using the OTLP tracing exporter")
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
