package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/dmitrymomot/webutils/core/csrf"
	"github.com/dmitrymomot/webutils/core/flash"
	"github.com/dmitrymomot/webutils/core/handler"
	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/core/response"
)

type csrfKey struct{}

// CSRFHeader is accepted in place of the form field for script clients.
const CSRFHeader = "X-CSRF-Token"

// InvalidCSRFMessage is the flash text shown for a rejected form.
const InvalidCSRFMessage = "Invalid CSRF Token"

// CSRFConfig configures CSRFWithConfig.
type CSRFConfig[C handler.Context] struct {
	CSRF *csrf.Manager
	// KeepSessionless leaves a session-less token usable after a successful
	// submission. By default such tokens are single-use.
	KeepSessionless bool
	// ErrorHandler renders a rejected submission (default: 403 with an error
	// flash for HTML clients, 422 JSON otherwise).
	ErrorHandler func(ctx C, err error) handler.Response
	Logger       *slog.Logger
	Skip         func(ctx C) bool
}

// CSRF protects form submissions with default settings.
func CSRF[C handler.Context](m *csrf.Manager) handler.Middleware[C] {
	return CSRFWithConfig(CSRFConfig[C]{CSRF: m})
}

// CSRFWithConfig issues a token on safe requests and checks it on unsafe
// ones. When SessionAuth ran first, the session's own token is used;
// otherwise a stored session-less token is issued and checked. The token
// in force is available to handlers through GetCSRFToken.
func CSRFWithConfig[C handler.Context](cfg CSRFConfig[C]) handler.Middleware[C] {
	if cfg.CSRF == nil {
		panic("csrf middleware: csrf manager is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultCSRFErrorHandler[C]
	}
	log := cfg.Logger.With(logger.Component("csrf"))

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess, hasSession := GetSession(ctx)

			if isSafeMethod(ctx.Request().Method) {
				tok := sess.CSRFToken
				if !hasSession {
					var err error
					tok, err = cfg.CSRF.CreateSessionless(ctx)
					if err != nil {
						log.ErrorContext(ctx, "failed to issue csrf token", logger.Error(err))
						return response.Error(response.ErrInternalServerError)
					}
				}
				ctx.SetValue(csrfKey{}, tok)
				return next(ctx)
			}

			tok := submittedToken(ctx.Request())

			var err error
			if hasSession {
				err = cfg.CSRF.ValidateSessionBound(tok, sess.CSRFToken)
			} else {
				err = cfg.CSRF.ValidateSessionless(ctx, tok)
			}
			switch {
			case errors.Is(err, csrf.ErrInvalid):
				log.InfoContext(ctx, "csrf token rejected", logger.Token(tok), logger.Path(ctx.Request().URL.Path))
				return cfg.ErrorHandler(ctx, err)
			case err != nil:
				log.ErrorContext(ctx, "failed to validate csrf token", logger.Token(tok), logger.Error(err))
				return response.Error(response.ErrInternalServerError)
			}

			if !hasSession && !cfg.KeepSessionless {
				cfg.CSRF.ExpireSessionless(ctx, tok)
			}

			ctx.SetValue(csrfKey{}, tok)
			return next(ctx)
		}
	}
}

// GetCSRFToken returns the token issued or accepted by CSRF, for embedding
// in the rendered form.
func GetCSRFToken(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(csrfKey{}).(string)
	return tok, ok
}

func defaultCSRFErrorHandler[C handler.Context](ctx C, err error) handler.Response {
	flashes := flash.Errors(InvalidCSRFMessage)
	details := map[string]any{"flashes": flashes}

	if !acceptsHTML(ctx.Request()) {
		return response.Error(response.ErrUnprocessableEntity.WithMessage(InvalidCSRFMessage).WithDetails(details))
	}
	return response.Error(response.ErrForbidden.WithMessage(InvalidCSRFMessage).WithDetails(details))
}

func submittedToken(r *http.Request) string {
	if tok := r.PostFormValue(csrf.FieldName); tok != "" {
		return tok
	}
	return r.Header.Get(CSRFHeader)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// acceptsHTML is false for requests that send or explicitly ask for JSON.
func acceptsHTML(r *http.Request) bool {
	if ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && ct == "application/json" {
		return false
	}
	accept := r.Header.Get("Accept")
	return !strings.Contains(accept, "application/json") || strings.Contains(accept, "text/html")
}
