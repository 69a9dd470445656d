package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webutils/core/cookie"
)

const (
	secret1 = "0123456789abcdef0123456789abcdef"
	secret2 = "fedcba9876543210fedcba9876543210"
)

// roundTrip copies the Set-Cookie headers of rec into a new request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	m, err := cookie.New(nil)
	require.NoError(t, err)
	assert.ErrorIs(t, m.SetSigned(httptest.NewRecorder(), "a", "b"), cookie.ErrNoSecret)
}

func TestManager_SetGetDelete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New(nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, "SESSIONID", "tok", cookie.WithMaxAge(7200)))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 7200, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	val, err := m.Get(roundTrip(rec), "SESSIONID")
	require.NoError(t, err)
	assert.Equal(t, "tok", val)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "SESSIONID")
	assert.ErrorIs(t, err, cookie.ErrNotFound)

	rec = httptest.NewRecorder()
	m.Delete(rec, "SESSIONID")
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestManager_TooLarge(t *testing.T) {
	t.Parallel()

	m, err := cookie.New(nil)
	require.NoError(t, err)

	err = m.Set(httptest.NewRecorder(), "big", strings.Repeat("x", cookie.MaxSize))
	var tooLarge cookie.ErrTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "big", tooLarge.Name)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	t.Run("round trip and rotation", func(t *testing.T) {
		t.Parallel()

		old, err := cookie.New([]string{secret1})
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		require.NoError(t, old.SetSigned(rec, "s", "hello"))

		rotated, err := cookie.New([]string{secret2, secret1})
		require.NoError(t, err)
		val, err := rotated.GetSigned(roundTrip(rec), "s")
		require.NoError(t, err)
		assert.Equal(t, "hello", val)
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{secret1})
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(rec, "s", "hello"))

		c := rec.Result().Cookies()[0]
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "s", Value: "aGFja2Vk." + strings.SplitN(c.Value, ".", 2)[1]})

		_, err = m.GetSigned(r, "s")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)

		r = httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "s", Value: "no-dot"})
		_, err = m.GetSigned(r, "s")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestManager_Flash(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret1})
	require.NoError(t, err)

	type msg struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	}

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetFlash(rec, "messages", []msg{{Level: "error", Message: "bad"}}))

	var got []msg
	out := httptest.NewRecorder()
	require.NoError(t, m.GetFlash(out, roundTrip(rec), "messages", &got))
	assert.Equal(t, []msg{{Level: "error", Message: "bad"}}, got)

	deleted := out.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Equal(t, -1, deleted[0].MaxAge)

	err = m.GetFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "messages", &got)
	assert.ErrorIs(t, err, cookie.ErrNotFound)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{
		Secrets:  " " + secret1 + " , ," + secret2,
		Path:     "/app",
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(rec, "s", "v"))
	c := rec.Result().Cookies()[0]
	assert.Equal(t, "/app", c.Path)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}
