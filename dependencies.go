package records

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	prometheusSDK "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"golang.org/x/sync/errgroup"

	"github.com/go-arrower/records/alog"
	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/cmd"
	"github.com/go-arrower/records/postgres"
)

var ErrMissingDependency = errors.New("missing dependency")

// Container holds global dependencies that can be used within each Context, to make initialisation easier.
// If the Context can operate with the shared resources.
// Otherwise, the Context is advised to initialise its own dependencies from its own configuration.
type Container struct {
	Logger        alog.Logger
	MeterProvider *metric.MeterProvider
	TraceProvider *trace.TracerProvider
	Registry      *prometheusSDK.Registry

	Config *Config
	PG     *postgres.Handler

	// Store persists all repositories created with NewRepository.
	Store    arepo.Store
	Validate *validator.Validate

	WebRouter *echo.Echo
	APIRouter *echo.Group

	startedAt time.Time
}

func (c *Container) EnsureAllDependenciesPresent() error {
	if c.Config == nil {
		return fmt.Errorf("%w: global config not found", ErrMissingDependency)
	}

	if c.Store == nil {
		return fmt.Errorf("%w: store not found", ErrMissingDependency)
	}

	return nil
}

func InitialiseDefaultDependencies(ctx context.Context, conf *Config) (*Container, error) { //nolint:funlen,lll // dependency injection is long but also straight forward.
	if conf == nil {
		return nil, fmt.Errorf("%w: global config not found", ErrMissingDependency)
	}

	dc := &Container{
		Config:    conf,
		Validate:  validator.New(),
		startedAt: time.Now(),
	}

	{ // observability
		resource := resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(conf.ApplicationName),
			semconv.ServiceInstanceIDKey.String(conf.InstanceName),
			semconv.DeploymentEnvironmentKey.String(string(conf.Environment)),
		)

		{ // traces
			opts := []trace.TracerProviderOption{
				trace.WithResource(resource),
				trace.WithSampler(trace.AlwaysSample()),
			}

			if conf.OTEL.Enabled {
				traceExporter, err := otlptracegrpc.New(ctx,
					otlptracegrpc.WithEndpoint(net.JoinHostPort(conf.OTEL.Host, strconv.Itoa(conf.OTEL.Port))),
					otlptracegrpc.WithInsecure(),
				)
				if err != nil {
					return nil, fmt.Errorf("could not connect to trace exporter: %w", err)
				}

				// if tempo is not running, a syncer would block each call
				opts = append(opts, trace.WithBatcher(traceExporter))

				if conf.Environment == ProductionEnv {
					// set the sampling rate based on the parent span to 60%
					opts = append(opts, trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(0.6))))
				}
			}

			dc.TraceProvider = trace.NewTracerProvider(opts...)
			otel.SetTracerProvider(dc.TraceProvider)
		}

		{ // metrics
			// a private registry, so multiple containers, e.g. in tests, do not register the same collectors twice.
			dc.Registry = prometheusSDK.NewRegistry()
			dc.Registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), //nolint:exhaustruct // use defaults
			)

			exporter, err := prometheus.New(prometheus.WithRegisterer(dc.Registry))
			if err != nil {
				return nil, fmt.Errorf("could not create prometheus exporter: %w", err)
			}

			dc.MeterProvider = metric.NewMeterProvider(
				metric.WithResource(resource),
				metric.WithReader(exporter),
			)
			otel.SetMeterProvider(dc.MeterProvider)
		}
	}

	{ // logger
		logger := newLogger(conf, os.Stderr)

		level, ok := alog.ParseLevel(conf.LogLevel)
		if conf.LogLevel != "" && !ok {
			return nil, fmt.Errorf("%w: unknown log level: %s", errConfigLoadFailed, conf.LogLevel)
		}

		if leveler := alog.Unwrap(logger); leveler != nil && conf.LogLevel != "" {
			leveler.SetLevel(level)
		}

		dc.Logger = logger.With(
			slog.String("application_name", conf.ApplicationName),
			slog.String("instance_name", conf.InstanceName),
			slog.String("git_hash", gitHash()),
			slog.String("environment", string(conf.Environment)),
		)
	}

	{ // store
		store, err := dc.newStore(ctx)
		if err != nil {
			_ = dc.Shutdown(ctx)

			return nil, err
		}

		dc.Store = store
	}

	{ // web router
		router := echo.New()
		router.HideBanner = true
		router.HidePort = true
		router.Logger.SetOutput(io.Discard)
		router.Validator = &CustomValidator{validator: dc.Validate}
		router.IPExtractor = echo.ExtractIPFromXFFHeader() // see: https://echo.labstack.com/docs/ip-address

		router.Use(otelecho.Middleware(conf.OTEL.Hostname, otelecho.WithTracerProvider(dc.TraceProvider)))
		router.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{ //nolint:exhaustruct // use defaults
			Subsystem:  "records",
			Registerer: dc.Registry,
		}))
		router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{ //nolint:exhaustruct // use defaults
			TargetHeader: "Request-Id",
			RequestIDHandler: func(c echo.Context, rid string) {
				c.SetRequest(c.Request().WithContext(alog.AddAttr(
					c.Request().Context(),
					slog.String("request_id", rid)),
				))
			},
		}))

		if conf.Environment == LocalEnv {
			router.Debug = true
		}

		dc.WebRouter = router
		dc.APIRouter = router.Group("/api")
	}

	return dc, nil
}

func newLogger(conf *Config, w io.Writer) *slog.Logger {
	switch conf.Environment {
	case LocalEnv:
		return alog.NewDevelopment(w, conf.Loki.URL)
	case TestEnv:
		return alog.NewNoop()
	case DevelopmentEnv, ProductionEnv:
	}

	opts := []alog.LoggerOpt{}
	if conf.Loki.URL != "" {
		opts = append(opts,
			alog.WithHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{ //nolint:exhaustruct // no source
				Level:       alog.LevelDebug,
				ReplaceAttr: alog.MapLogLevelsToName,
			})),
			alog.WithHandler(alog.NewLokiHandler(&alog.LokiHandlerOptions{PushURL: conf.Loki.URL, Labels: nil})),
		)
	}

	return alog.New(opts...)
}

// newStore returns the arepo.Store selected by the configuration.
// For postgres, the connection is established and the schema migrated.
func (c *Container) newStore(ctx context.Context) (arepo.Store, error) { //nolint:ireturn // the kind is only known at runtime
	switch c.Config.Store.Kind {
	case JSONStore:
		store, err := arepo.NewJSONStore(c.Config.Store.Dir)
		if err != nil {
			return nil, fmt.Errorf("could not create json store: %w", err)
		}

		return store, nil
	case PostgresStore:
		pg, err := postgres.ConnectAndMigrate(ctx, postgres.Config{
			User:           c.Config.Postgres.User,
			Password:       c.Config.Postgres.Password.Secret(),
			Database:       c.Config.Postgres.Database,
			Host:           c.Config.Postgres.Host,
			Port:           c.Config.Postgres.Port,
			SSLMode:        c.Config.Postgres.SSLMode,
			MaxConns:       c.Config.Postgres.MaxConns,
			Migrations:     postgres.Migrations,
			ConnectTimeout: 10 * time.Second, //nolint:mnd // wait for the db to come up, e.g. in docker compose
		}, c.TraceProvider)
		if err != nil {
			return nil, fmt.Errorf("could not connect to postgres: %w", err)
		}

		c.PG = pg

		return arepo.NewPostgresStore(pg.PGx), nil
	case MemoryStore, "":
		return arepo.NoopStore, nil
	}

	return nil, fmt.Errorf("%w: unknown store kind: %s", errConfigLoadFailed, c.Config.Store.Kind)
}

// NewRepository returns a memory repository for E, persisted to the container's Store
// under name and instrumented with the container's tracer and meter providers.
func NewRepository[E any, ID arepo.PrimaryKey](
	ctx context.Context,
	c *Container,
	name string,
	opts ...arepo.Option,
) (arepo.Repository[E, ID], error) {
	opts = append([]arepo.Option{arepo.WithStore(c.Store), arepo.WithStoreName(name)}, opts...)

	repo, err := arepo.NewMemoryRepository[E, ID](ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create repository %s: %w", name, err)
	}

	return arepo.NewTracedRepository[E, ID](
		arepo.NewMeteredRepository[E, ID](repo, c.MeterProvider, name),
		c.TraceProvider,
		name,
	), nil
}

// Start serves the web router and, if enabled, the status endpoint.
// It blocks until ctx is cancelled or a server fails, then shuts both servers down.
func (c *Container) Start(ctx context.Context) error {
	c.Logger.LogAttrs(ctx, alog.LevelInfo, "starting all servers")

	servers := []*http.Server{
		{Addr: fmt.Sprintf(":%d", c.Config.HTTP.Port), Handler: c.WebRouter, ReadHeaderTimeout: 5 * time.Second}, //nolint:mnd,lll
	}

	if c.Config.HTTP.StatusEndpointEnabled {
		servers = append(servers, c.statusServer(ctx))
	}

	group, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		group.Go(func() error {
			err := srv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("could not serve %s: %w", srv.Addr, err)
			}

			return nil
		})
	}

	group.Go(func() error {
		<-gctx.Done()

		c.Logger.LogAttrs(ctx, alog.LevelInfo, "shutting down all servers")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second) //nolint:mnd // grace period
		defer cancel()

		var errs []error
		for _, srv := range servers {
			errs = append(errs, srv.Shutdown(shutdownCtx))
		}

		return errors.Join(errs...)
	})

	return group.Wait() //nolint:wrapcheck // errors are wrapped inside the group
}

// Shutdown releases all resources of the container that are not bound to Start.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.PG != nil {
		errs = append(errs, c.PG.Shutdown(ctx))
	}

	if c.TraceProvider != nil {
		errs = append(errs, c.TraceProvider.Shutdown(ctx))
	}

	if c.MeterProvider != nil {
		errs = append(errs, c.MeterProvider.Shutdown(ctx))
	}

	return errors.Join(errs...)
}

const (
	metricPath = "/metrics"
	statusPath = "/status"
)

func (c *Container) statusServer(ctx context.Context) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(metricPath, promhttp.HandlerFor(
		c.Registry,
		promhttp.HandlerOpts{ //nolint:exhaustruct
			EnableOpenMetrics: true, // to enable Examplars in the export format
		},
	))
	mux.HandleFunc(statusPath, c.StatusHandler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", c.Config.HTTP.StatusEndpointPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	c.Logger.InfoContext(ctx, "serving status endpoint",
		slog.String("addr", srv.Addr),
		slog.String("metric_path", metricPath),
		slog.String("status_path", statusPath),
	)

	return srv
}

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return err //nolint:wrapcheck // return the original validate error to not break the API for the caller.
	}

	return nil
}

func gitHash() string {
	if rev := cmd.ReadBuildInfo().Revision; rev != "" {
		return rev
	}

	return "unknown"
}
