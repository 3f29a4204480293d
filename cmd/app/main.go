package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"diary-service/configs"
	"diary-service/internal/auth"
	"diary-service/internal/feed"
	"diary-service/internal/kafka"
	"diary-service/internal/migrate"
	"diary-service/internal/notifier"
	"diary-service/internal/post"
	"diary-service/internal/shared/db"
	"diary-service/internal/shared/httpx"
	"diary-service/internal/shared/redisx"
	"diary-service/internal/storage/s3"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(os.Getenv("OTEL_SERVICE_NAME")),
		attribute.String("deployment.environment", "local"),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := initOTEL(ctx)
	defer func() {
		c, cc := context.WithTimeout(context.Background(), 5*time.Second)
		defer cc()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()

	store := db.Open(cfg.DSN())
	if cfg.AutoMigrate {
		if err := migrate.AutoMigrateAll(store); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	objects, err := s3.New(s3.Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		Bucket:    cfg.S3Bucket,
	})
	if err != nil {
		log.Fatalf("s3: %v", err)
	}
	if err := objects.EnsureBucket(ctx); err != nil {
		log.Fatalf("s3 ensure bucket: %v", err)
	}

	rdb := redisx.Open(cfg.RedisAddr())
	defer func() { _ = rdb.Close() }()

	events, err := kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Fatalf("kafka writer: %v", err)
	}
	defer func() { _ = events.Close() }()

	var mailer auth.Mailer = auth.LogMailer{}
	if cfg.SMTPAddr != "" {
		mailer = auth.SMTPMailer{Addr: cfg.SMTPAddr, From: cfg.SMTPFrom}
	}

	authRepo := auth.NewRepository(store.Base)
	authSvc := auth.NewService(
		authRepo,
		auth.NewRedisTokens(rdb),
		auth.NewRedisSessions(rdb),
		mailer,
		cfg.PublicBaseURL,
		[]byte(cfg.JWTSecret),
	)
	ah := auth.NewHandler(authSvc)

	postRepo := post.NewRepository(store.Base)
	postSvc := post.NewService(postRepo, objects, events)
	ph := post.NewHandler(postSvc)

	feedSvc := feed.NewService(postRepo, objects)
	fh := feed.NewHandler(feedSvc)

	notifSvc := notifier.NewService(notifier.NewRedisRepository(rdb))
	nh := notifier.NewHandler(notifSvc)

	consumer := kafka.NewConsumer(cfg, notifSvc.HandlePostEvent)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /{$}", ah.Root)

	mux.Handle("POST /auth/magic-link", httpx.Wrap(ah.RequestLink))
	mux.Handle("GET /auth/verify", httpx.Wrap(ah.Verify))

	protect := func(pattern string, h http.Handler) {
		mux.Handle(pattern, authSvc.Middleware(h))
	}

	protect("GET /auth/me", httpx.Wrap(ah.Me))
	protect("POST /auth/logout", httpx.Wrap(ah.Logout))

	protect("GET /posts", httpx.Wrap(ph.List))
	protect("POST /posts", httpx.Wrap(ph.Create))
	protect("PATCH /posts/{post_id}", httpx.Wrap(ph.Update))
	protect("DELETE /posts/{post_id}", httpx.Wrap(ph.Delete))

	protect("GET /feed", httpx.Wrap(fh.List))
	protect("GET /notifications", httpx.Wrap(nh.List))

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		log.Printf("diary-service listening on %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	go func() {
		if err := consumer.Run(ctx); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Print("shutting down...")

	cancel()
	c, cc := context.WithTimeout(context.Background(), 10*time.Second)
	defer cc()
	if err := srv.Shutdown(c); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}
