package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/eventqueue/pkg/clientip"
	"github.com/dmitrymomot/eventqueue/pkg/httpserver"
	"github.com/dmitrymomot/eventqueue/pkg/logger"
	"github.com/dmitrymomot/eventqueue/pkg/queue"
	"github.com/dmitrymomot/eventqueue/pkg/ratelimiter"
	"github.com/dmitrymomot/eventqueue/pkg/requestid"
)

// Enqueuer accepts task submissions; *queue.Enqueuer implements it.
type Enqueuer interface {
	Enqueue(ctx context.Context, variant queue.Variant, opts ...queue.EnqueueOption) (time.Time, error)
}

// Snapshotter lists every record for diagnostics; any queue.Reader implements it.
type Snapshotter interface {
	FetchAll(ctx context.Context) ([]queue.Record, error)
}

// Limiter throttles submissions per client; *ratelimiter.Bucket implements it.
type Limiter interface {
	Allow(key string) ratelimiter.Result
}

// Deps are the collaborators the router serves.
type Deps struct {
	Enqueuer Enqueuer
	Store    Snapshotter
	Registry *queue.Registry
	Logger   *slog.Logger
	// Ready checks back the readiness probe, e.g. the store healthcheck.
	Ready []func(context.Context) error
	// Limiter is optional; nil accepts every submission.
	Limiter Limiter
}

type handlers struct {
	Deps
	submitTimeout time.Duration
}

// NewRouter builds the HTTP interface:
//
//	POST /tasks/{variant}?delay=4s | ?t=<unix seconds>
//	GET  /tasks
//	GET  /variants
//	GET  /health/live
//	GET  /health/ready
func NewRouter(cfg Config, deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	h := &handlers{Deps: deps, submitTimeout: cfg.SubmitTimeout}

	r := chi.NewRouter()
	if mw := corsMiddleware(cfg); mw != nil {
		r.Use(mw)
	}
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(requestLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) { writeError(w, ErrNotFound) })
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) { writeError(w, ErrMethodNotAllowed) })

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.listTasks)
		r.With(rateLimit(deps.Limiter)).Post("/{variant}", h.submitTask)
	})
	r.Get("/variants", h.listVariants)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", httpserver.LivenessHandler())
		r.Get("/ready", httpserver.ReadinessHandler(deps.Logger, deps.Ready...))
	})

	return r
}

type submitResponse struct {
	Variant queue.Variant `json:"variant"`
	// DueAt is omitted when the task is due on receipt; the persister stamps it.
	DueAt *time.Time `json:"due_at,omitempty"`
}

func (h *handlers) submitTask(w http.ResponseWriter, r *http.Request) {
	variant := queue.Variant(chi.URLParam(r, "variant"))

	opts, err := scheduleOptions(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	if h.submitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.submitTimeout)
		defer cancel()
	}

	dueAt, err := h.Enqueuer.Enqueue(ctx, variant, opts...)
	if err != nil {
		h.Logger.WarnContext(r.Context(), "task submission refused",
			logger.Variant(variant),
			logger.Error(err))
		writeError(w, classifyEnqueueError(err))
		return
	}

	resp := submitResponse{Variant: variant}
	if !dueAt.IsZero() {
		utc := dueAt.UTC()
		resp.DueAt = &utc
	}

	h.Logger.InfoContext(r.Context(), "task accepted", logger.Variant(variant))
	writeJSON(w, http.StatusAccepted, Response{Code: "accepted", Data: resp})
}

func classifyEnqueueError(err error) error {
	switch {
	case errors.Is(err, queue.ErrUnknownVariant):
		return fmt.Errorf("%w: %w", ErrUnknownVariant, err)
	case errors.Is(err, queue.ErrIntentRejected):
		return fmt.Errorf("%w: %w", ErrQueueFull, err)
	case errors.Is(err, queue.ErrPersisterStopped):
		return fmt.Errorf("%w: %w", ErrQueueStopped, err)
	default:
		return err
	}
}

func (h *handlers) listTasks(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.FetchAll(r.Context())
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "list tasks", logger.Error(err))
		writeError(w, err)
		return
	}
	if records == nil {
		records = []queue.Record{}
	}
	writeJSON(w, http.StatusOK, Response{Code: "ok", Data: records})
}

func (h *handlers) listVariants(w http.ResponseWriter, r *http.Request) {
	var variants []queue.Variant
	if h.Registry != nil {
		variants = h.Registry.Variants()
	}
	writeJSON(w, http.StatusOK, Response{Code: "ok", Data: variants})
}

// rateLimit rejects submissions over the per-client budget with 429.
func rateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := limiter.Allow(clientip.FromContext(r.Context()))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				retry := int(math.Ceil(res.RetryAfter(time.Now()).Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(1, retry)))
				writeError(w, ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs one line per request at debug level, warn for 5xx.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			level := slog.LevelDebug
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			log.Log(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)))
		})
	}
}
