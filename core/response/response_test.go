package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webutils/core/handler"
	"github.com/dmitrymomot/webutils/core/response"
)

func render(t *testing.T, resp handler.Response, method string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, resp(rec, httptest.NewRequest(method, "/", nil)))
	return rec
}

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		resp   handler.Response
		status int
		body   string
	}{
		{name: "string", resp: response.String("hello"), status: http.StatusOK, body: "hello"},
		{name: "empty", resp: response.String(""), status: http.StatusOK, body: ""},
		{name: "with status", resp: response.StringWithStatus("gone", http.StatusGone), status: http.StatusGone, body: "gone"},
		{name: "zero status", resp: response.StringWithStatus("x", 0), status: http.StatusOK, body: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := render(t, tt.resp, http.MethodGet)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestHTMLAndStatus(t *testing.T) {
	t.Parallel()

	rec := render(t, response.HTML("<p>hi</p>"), http.MethodGet)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<p>hi</p>", rec.Body.String())

	rec = render(t, response.Status(http.StatusAccepted), http.MethodGet)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		rec := render(t, response.JSON(map[string]string{"CSRFToken": "abc"}), http.MethodGet)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"CSRFToken":"abc"}`, rec.Body.String())
	})

	t.Run("nil with zero status", func(t *testing.T) {
		t.Parallel()

		rec := render(t, response.JSONWithStatus(nil, 0), http.MethodGet)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("custom status", func(t *testing.T) {
		t.Parallel()

		rec := render(t, response.JSONWithStatus([]int{1}, http.StatusCreated), http.MethodPost)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `[1]`, rec.Body.String())
	})
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	rec := render(t, response.Redirect("/login"), http.MethodGet)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = render(t, response.RedirectSeeOther("/profile"), http.MethodPost)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile", rec.Header().Get("Location"))
}

type statusErr struct{ code int }

func (e statusErr) Error() string   { return "status error" }
func (e statusErr) StatusCode() int { return e.code }

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "http error", err: response.ErrForbidden, status: http.StatusForbidden, code: "forbidden"},
		{name: "wrapped http error", err: fmt.Errorf("csrf: %w", response.ErrTooManyRequests), status: http.StatusTooManyRequests, code: "too_many_requests"},
		{name: "status code", err: statusErr{code: http.StatusUnprocessableEntity}, status: http.StatusUnprocessableEntity, code: "unprocessable_entity"},
		{name: "unknown status", err: statusErr{code: http.StatusTeapot}, status: http.StatusInternalServerError, code: "internal_server_error"},
		{name: "plain error", err: errors.New("boom"), status: http.StatusInternalServerError, code: "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := response.AsHTTPError(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestHTTPError_WithDetails(t *testing.T) {
	t.Parallel()

	base := response.ErrForbidden.WithDetails(map[string]any{"a": 1})
	derived := base.WithDetails(map[string]any{"b": 2})

	assert.Equal(t, map[string]any{"a": 1}, base.Details)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, derived.Details)
	assert.Nil(t, response.ErrForbidden.Details)

	withCause := response.ErrBadRequest.WithError(errors.New("bad field"))
	assert.Equal(t, "bad field", withCause.Details["cause"])
}

func TestErrorHandlers(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		response.ErrorHandler(ctx, response.ErrForbidden.WithMessage("invalid form"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "invalid form", rec.Body.String())
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := handler.NewContext(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		response.JSONErrorHandler(ctx, response.ErrUnprocessableEntity.WithDetails(map[string]any{"username": "required"}))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "unprocessable_entity", body["code"])
		assert.Equal(t, map[string]any{"username": "required"}, body["details"])
	})

	t.Run("response error through serve", func(t *testing.T) {
		t.Parallel()

		h := handler.Serve(handler.NewContext, func(ctx *handler.Base) handler.Response {
			return response.Error(response.ErrNotFound)
		}, response.ErrorHandler[*handler.Base])

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Not Found", rec.Body.String())
	})
}
