package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ihor-metko/courtbook/libs/config"
	"github.com/ihor-metko/courtbook/libs/db"
	"github.com/ihor-metko/courtbook/libs/httpx"
	"github.com/ihor-metko/courtbook/libs/kafkax"
	otelx "github.com/ihor-metko/courtbook/libs/otel"
	"github.com/ihor-metko/courtbook/libs/runtime"
	"github.com/ihor-metko/courtbook/services/court-service/internal/cache"
	"github.com/ihor-metko/courtbook/services/court-service/internal/consumer"
	"github.com/ihor-metko/courtbook/services/court-service/internal/handlers"
	"github.com/ihor-metko/courtbook/services/court-service/internal/outbox"
	"github.com/ihor-metko/courtbook/services/court-service/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	service := config.String("SERVICE_NAME", "court-service")
	port, err := config.Port("PORT", "8084")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL, int32(config.Int("DB_MAX_CONNS", 10)))
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	var rdb *redis.Client
	if addr := strings.TrimSpace(config.String("REDIS_ADDR", "")); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       config.Int("REDIS_DB", 0),
		})
		defer func() { _ = rdb.Close() }()
	}

	courts := storage.NewCourtRepository(pool)
	rules := storage.NewPriceRuleRepository(pool)
	holidays := storage.NewHolidayRepository(pool)
	reservations := storage.NewReservationRepository(pool)
	outboxRepo := outbox.NewRepository(pool)

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	var timelineCache *cache.TimelineCache
	if rdb != nil {
		ttl := time.Duration(config.Int("TIMELINE_CACHE_TTL_SECONDS", 300)) * time.Second
		timelineCache = cache.New(rdb, ttl)

		// Rule writes flow through the outbox; consuming the change
		// event back drops the court's cached timelines.
		invalidator := consumer.New(logger, consumer.Config{
			Brokers: config.String("KAFKA_BROKERS", ""),
			GroupID: config.String("KAFKA_GROUP_ID", service),
			Topic:   outbox.EventPriceRulesChanged,
		}, func(ctx context.Context, msg kafka.Message) error {
			var payload struct {
				CourtID string `json:"court_id"`
			}
			if err := json.Unmarshal(msg.Value, &payload); err != nil || payload.CourtID == "" {
				logger.Error("invalid pricing event payload", "topic", msg.Topic)
				return nil
			}
			return timelineCache.Invalidate(ctx, payload.CourtID)
		})
		go invalidator.Run(ctx)
	}

	lockTTL := time.Duration(config.Int("SLOT_LOCK_TTL_SECONDS", 300)) * time.Second
	handler := handlers.New(courts, rules, holidays, reservations, outboxRepo, timelineCache, logger, lockTTL)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/public/courts/availability", handler.Slots)
	mux.HandleFunc("/api/v1/public/courts/timeline", handler.Timeline)
	mux.HandleFunc("/api/v1/public/courts/quote", handler.Quote)
	mux.HandleFunc("/api/v1/public/reserve", handler.Reserve)
	mux.HandleFunc("/api/v1/public/slots/lock", handler.LockSlot)
	mux.HandleFunc("/api/v1/public/slots/release", handler.ReleaseLock)
	mux.HandleFunc("/api/v1/reservations", handler.ListReservations)
	mux.HandleFunc("/api/v1/reservations/cancel", handler.CancelReservation)
	mux.HandleFunc("/api/v1/admin/courts", adminCourtsRoute(handler))
	mux.HandleFunc("/api/v1/admin/price-rules", adminPriceRulesRoute(handler))
	mux.HandleFunc("/api/v1/admin/holidays", adminHolidaysRoute(handler))

	httpHandler := httpx.Chain(mux, publicMiddleware(logger, rdb)...)
	httpHandler = otelhttp.NewHandler(httpHandler, "court")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

// publicMiddleware builds the edge chain for every route. Rate limiting
// uses Redis when configured and falls back to the in-memory limiter
// otherwise, so the public booking endpoints are never unthrottled.
func publicMiddleware(logger *slog.Logger, rdb *redis.Client) []httpx.Middleware {
	requestTimeout := 10 * time.Second
	if v := config.Int("REQUEST_TIMEOUT_SECONDS", 10); v > 0 {
		requestTimeout = time.Duration(v) * time.Second
	}
	limitPerMinute := config.Int("RATE_LIMIT_PER_MINUTE", 120)

	var rateLimitMW httpx.Middleware
	if rdb != nil {
		rl := httpx.NewRedisRateLimiter(rdb, limitPerMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "rl"))
		rateLimitMW = rl.Middleware(logger, isTruthy(config.String("RATE_LIMIT_FAIL_OPEN", "true")))
		logger.Info("rate limiting enabled (redis)", "per_minute", limitPerMinute)
	} else {
		rl := httpx.NewRateLimiter(limitPerMinute, time.Minute)
		rateLimitMW = rl.Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", limitPerMinute)
	}

	return []httpx.Middleware{
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins:   parseList(config.String("CORS_ALLOWED_ORIGINS", "")),
			AllowedMethods:   parseList(config.String("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS")),
			AllowedHeaders:   parseList(config.String("CORS_ALLOWED_HEADERS", "Authorization,Content-Type,X-Request-Id")),
			AllowCredentials: isTruthy(config.String("CORS_ALLOW_CREDENTIALS", "false")),
			MaxAge:           time.Duration(config.Int("CORS_MAX_AGE_SECONDS", 600)) * time.Second,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(1 << 20),
		httpx.WithTimeout(requestTimeout),
		rateLimitMW,
	}
}

func isTruthy(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func parseList(raw string) []string {
	items := strings.Split(raw, ",")
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Method-dispatched admin routes; each handler still rejects unexpected
// methods itself.
func adminCourtsRoute(h *handlers.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.CreateCourt(w, r)
		default:
			h.ListCourts(w, r)
		}
	}
}

func adminPriceRulesRoute(h *handlers.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.CreatePriceRule(w, r)
		case http.MethodPut:
			h.UpdatePriceRule(w, r)
		case http.MethodDelete:
			h.DeletePriceRule(w, r)
		default:
			h.ListPriceRules(w, r)
		}
	}
}

func adminHolidaysRoute(h *handlers.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.CreateHoliday(w, r)
		case http.MethodDelete:
			h.DeleteHoliday(w, r)
		default:
			h.ListHolidays(w, r)
		}
	}
}
