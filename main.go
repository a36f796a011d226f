package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bes-slim/shipping/booking"
	"github.com/bes-slim/shipping/cargo"
	"github.com/bes-slim/shipping/handling"
	"github.com/bes-slim/shipping/inmem"
	"github.com/bes-slim/shipping/inspection"
	"github.com/bes-slim/shipping/location"
	"github.com/bes-slim/shipping/routing"
	"github.com/bes-slim/shipping/tracking"
)

const (
	defaultPort      = "8080"
	defaultRoutesURL = ""
	defaultZipkinURL = ""
)

func main() {
	var (
		addr      = envString("PORT", defaultPort)
		routesURL = envString("ROUTES_URL", defaultRoutesURL)
		zipkinURL = envString("ZIPKIN_URL", defaultZipkinURL)

		httpAddr  = flag.String("http.addr", ":"+addr, "HTTP listen address")
		routesvc  = flag.String("routes.url", routesURL, "external route finder URL (optional)")
		zipkinsvc = flag.String("zipkin.url", zipkinURL, "zipkin collector URL (optional)")
	)

	flag.Parse()

	var logger log.Logger
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	var zipkinTracer *stdzipkin.Tracer
	if *zipkinsvc != "" {
		reporter := zipkinhttp.NewReporter(*zipkinsvc)
		defer reporter.Close()

		endpoint, err := stdzipkin.NewEndpoint("shipping", *httpAddr)
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		zipkinTracer, err = stdzipkin.NewTracer(reporter, stdzipkin.WithLocalEndpoint(endpoint))
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
	}
	otTracer := stdopentracing.GlobalTracer()

	var (
		cargos         = inmem.NewCargoRepository()
		locations      = inmem.NewLocationRepository()
		voyages        = inmem.NewVoyageRepository()
		handlingEvents = inmem.NewHandlingEventRepository()
	)

	var routingService routing.Service
	routingService = inmem.NewRoutingService(inmem.SampleVoyages())
	if *routesvc != "" {
		routingService = routing.NewProxyingMiddleware(context.Background(), *routesvc)(routingService)
	}

	fieldKeys := []string{"method"}
	durationKeys := []string{"method", "success"}

	var bs booking.Service
	{
		bs = booking.NewService(cargos, locations, handlingEvents, routingService)
		bs = booking.NewLoggingService(log.With(logger, "component", "booking"), bs)
		bs = booking.NewInstrumentingService(
			kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
				Namespace: "api",
				Subsystem: "booking_service",
				Name:      "request_count",
				Help:      "Number of requests received.",
			}, fieldKeys),
			kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
				Namespace: "api",
				Subsystem: "booking_service",
				Name:      "request_latency_microseconds",
				Help:      "Total duration of requests in microseconds.",
			}, fieldKeys),
			bs,
		)
	}

	var ts tracking.Service
	{
		ts = tracking.NewService(cargos, handlingEvents)
		ts = tracking.NewLoggingService(log.With(logger, "component", "tracking"), ts)
		ts = tracking.NewInstrumentingService(
			kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
				Namespace: "api",
				Subsystem: "tracking_service",
				Name:      "request_count",
				Help:      "Number of requests received.",
			}, fieldKeys),
			kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
				Namespace: "api",
				Subsystem: "tracking_service",
				Name:      "request_latency_microseconds",
				Help:      "Total duration of requests in microseconds.",
			}, fieldKeys),
			ts,
		)
	}

	var is inspection.Service
	{
		is = inspection.NewService(cargos, handlingEvents, inspectionEventLogger{log.With(logger, "component", "inspection")})
	}

	var hs handling.Service
	{
		factory := cargo.HandlingEventFactory{
			CargoRepository:    cargos,
			VoyageRepository:   voyages,
			LocationRepository: locations,
			Sequencer:          cargo.NewEventSequencer(),
		}
		hs = handling.NewService(handlingEvents, factory, handling.NewEventHandler(is))
		hs = handling.NewLoggingService(log.With(logger, "component", "handling"), hs)
		hs = handling.NewInstrumentingService(
			kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
				Namespace: "api",
				Subsystem: "handling_service",
				Name:      "request_count",
				Help:      "Number of requests received.",
			}, fieldKeys),
			kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
				Namespace: "api",
				Subsystem: "handling_service",
				Name:      "request_latency_microseconds",
				Help:      "Total duration of requests in microseconds.",
			}, fieldKeys),
			hs,
		)
	}

	duration := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace: "api",
		Subsystem: "endpoints",
		Name:      "request_duration_seconds",
		Help:      "Request duration in seconds.",
	}, durationKeys)

	bookingSet := booking.NewSet(bs, logger, duration, otTracer, zipkinTracer)
	handlingSet := handling.NewSet(hs, logger, duration, otTracer, zipkinTracer)
	trackingSet := tracking.NewSet(ts, logger, duration, otTracer, zipkinTracer)

	httpLogger := log.With(logger, "component", "http")

	mux := http.NewServeMux()
	mux.Handle("/booking/v1/", booking.MakeHandler(bookingSet, httpLogger))
	mux.Handle("/handling/v1/", handling.MakeHandler(handlingSet, httpLogger))
	mux.Handle("/tracking/v1/", tracking.MakeHandler(trackingSet, httpLogger))
	mux.Handle("/metrics", promhttp.Handler())

	storeTestData(cargos)

	errs := make(chan error, 2)
	go func() {
		logger.Log("transport", "http", "address", *httpAddr, "msg", "listening")
		errs <- http.ListenAndServe(*httpAddr, mux)
	}()
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT)
		errs <- fmt.Errorf("%s", <-c)
	}()

	logger.Log("terminated", <-errs)
}

type inspectionEventLogger struct {
	logger log.Logger
}

func (h inspectionEventLogger) CargoWasMisdirected(c *cargo.Cargo) {
	h.logger.Log("event", "misdirected", "tracking_id", c.TrackingID, "location", c.Delivery.LastKnownLocation)
}

func (h inspectionEventLogger) CargoHasArrived(c *cargo.Cargo) {
	h.logger.Log("event", "arrived", "tracking_id", c.TrackingID, "location", c.Delivery.LastKnownLocation)
}

func storeTestData(r cargo.Repository) {
	test1 := cargo.New("FTL456", cargo.RouteSpecification{
		Origin:      location.AUMEL,
		Destination: location.SESTO,
		Deadline:    time.Now().AddDate(0, 0, 7),
	})
	_ = r.Store(test1)

	test2 := cargo.New("ABC123", cargo.RouteSpecification{
		Origin:      location.CNHKG,
		Destination: location.NLRTM,
		Deadline:    time.Now().AddDate(0, 0, 14),
	})
	_ = r.Store(test2)
}

func envString(env, fallback string) string {
	e := os.Getenv(env)
	if e == "" {
		return fallback
	}
	return e
}
