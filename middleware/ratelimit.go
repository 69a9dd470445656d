package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/webutils/core/handler"
	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/core/response"
	"github.com/dmitrymomot/webutils/pkg/ratelimiter"
)

// RateLimitConfig configures RateLimitWithConfig.
type RateLimitConfig[C handler.Context] struct {
	Limiter ratelimiter.Limiter
	// KeyExtractor picks the bucket for a request
	// (default: ratelimiter.RequestKey, client address + URL).
	KeyExtractor func(ctx C) string
	// ErrorHandler renders a rejected request (default: 429).
	ErrorHandler func(ctx C, result *ratelimiter.Result) handler.Response
	// SetHeaders adds X-RateLimit-* headers to every response.
	SetHeaders bool
	Logger     *slog.Logger
	Skip       func(ctx C) bool
}

// RateLimit limits requests per client and URL, with headers enabled.
func RateLimit[C handler.Context](limiter ratelimiter.Limiter) handler.Middleware[C] {
	return RateLimitWithConfig(RateLimitConfig[C]{Limiter: limiter, SetHeaders: true})
}

// RateLimitWithConfig answers 429 once a key exceeds its limit. A limiter
// failure is logged and answered with 500; the request is not let through.
func RateLimitWithConfig[C handler.Context](cfg RateLimitConfig[C]) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx C) string {
			return ratelimiter.RequestKey(ctx.Request())
		}
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx C, result *ratelimiter.Result) handler.Response {
			err := response.ErrTooManyRequests
			if result.RetryAfter() > 0 {
				err = err.WithDetails(map[string]any{"retry_after": retryAfterSeconds(result)})
			}
			return response.Error(err)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log := cfg.Logger.With(logger.Component("ratelimit"))

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			result, err := cfg.Limiter.Allow(ctx, cfg.KeyExtractor(ctx))
			if err != nil {
				log.ErrorContext(ctx, "rate limiter failed", logger.Path(ctx.Request().URL.Path), logger.Error(err))
				return response.Error(response.ErrInternalServerError)
			}

			var resp handler.Response
			if result.Allowed() {
				resp = next(ctx)
			} else {
				log.DebugContext(ctx, "rate limit exceeded", logger.Path(ctx.Request().URL.Path))
				resp = cfg.ErrorHandler(ctx, result)
			}

			if !cfg.SetHeaders && result.Allowed() {
				return resp
			}
			return withRateLimitHeaders(resp, result, cfg.SetHeaders)
		}
	}
}

// withRateLimitHeaders sets Retry-After on rejected responses and, when
// full is set, the X-RateLimit-* headers on every response.
func withRateLimitHeaders(resp handler.Response, result *ratelimiter.Result, full bool) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if full {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		}
		if !result.Allowed() {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(result)))
		}
		if resp == nil {
			return nil
		}
		return resp(w, r)
	}
}

// retryAfterSeconds rounds up, so a client never retries too early.
func retryAfterSeconds(result *ratelimiter.Result) int {
	ra := result.RetryAfter()
	return max(1, int((ra+time.Second-1)/time.Second))
}
