package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	activitiesSubmitted metric.Int64Counter
	transitions         metric.Int64Counter
	badgesAwarded       metric.Int64Counter
	recomputes          metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "impactmap"
	}
	meter := provider.Meter(name)

	activitiesSubmitted, err := meter.Int64Counter("impactmap_activities_submitted_total")
	if err != nil {
		return nil, err
	}
	transitions, err := meter.Int64Counter("impactmap_verification_transitions_total")
	if err != nil {
		return nil, err
	}
	badgesAwarded, err := meter.Int64Counter("impactmap_badges_awarded_total")
	if err != nil {
		return nil, err
	}
	recomputes, err := meter.Int64Counter("impactmap_recomputes_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		activitiesSubmitted: activitiesSubmitted,
		transitions:         transitions,
		badgesAwarded:       badgesAwarded,
		recomputes:          recomputes,
	}, nil
}

// RecordActivitySubmitted increments submissions per category.
func (m *Metrics) RecordActivitySubmitted(ctx context.Context, category string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("category", strings.TrimSpace(category)))
	m.activitiesSubmitted.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordTransition increments verification status transitions.
func (m *Metrics) RecordTransition(ctx context.Context, from, to string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("from", strings.TrimSpace(from)),
		attribute.String("to", strings.TrimSpace(to)),
	)
	m.transitions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordBadgesAwarded adds newly persisted badge awards.
func (m *Metrics) RecordBadgesAwarded(ctx context.Context, requirementType string, count int) {
	if m == nil || count <= 0 {
		return
	}
	attrs := FilterAttributes(attribute.String("requirement_type", strings.TrimSpace(requirementType)))
	m.badgesAwarded.Add(ctx, int64(count), metric.WithAttributes(attrs...))
}

// RecordRecompute increments recompute runs by outcome.
func (m *Metrics) RecordRecompute(ctx context.Context, trigger, outcome string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("trigger", strings.TrimSpace(trigger)),
		attribute.String("outcome", strings.TrimSpace(outcome)),
	)
	m.recomputes.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"category":         {},
	"from":             {},
	"to":               {},
	"requirement_type": {},
	"trigger":          {},
	"outcome":          {},
	"endpoint":         {},
	"status_code":      {},
	"reason":           {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
