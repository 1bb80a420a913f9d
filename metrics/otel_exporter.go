package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter exports catalog stats following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	meter              metric.Meter
	totalBooksGauge    metric.Int64ObservableGauge
	booksByAuthorGauge metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"library-api",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.totalBooksGauge, err = oe.meter.Int64ObservableGauge(
		"library.books.total",
		metric.WithDescription("Number of persisted books in the catalog"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeTotalBooks),
	)
	if err != nil {
		return fmt.Errorf("creating total books gauge: %w", err)
	}

	oe.booksByAuthorGauge, err = oe.meter.Int64ObservableGauge(
		"library.books.by_author",
		metric.WithDescription("Number of persisted books per author"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeBooksByAuthor),
	)
	if err != nil {
		return fmt.Errorf("creating books by author gauge: %w", err)
	}

	return nil
}

// observeTotalBooks is a callback that reports the catalog size
func (oe *OTelExporter) observeTotalBooks(ctx context.Context, observer metric.Int64Observer) error {
	total, err := oe.collector.GetTotalBooks(ctx)
	if err != nil {
		return err
	}

	observer.Observe(total)
	return nil
}

// observeBooksByAuthor is a callback that reports per-author counts
func (oe *OTelExporter) observeBooksByAuthor(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetBooksByAuthor(ctx)
	if err != nil {
		return err
	}

	for author, count := range counts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("book.author", author),
		))
	}

	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
