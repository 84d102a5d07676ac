package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return NewRedisStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestRedisStorage(t *testing.T) {
	storage, mr := newRedisStorage(t)

	val, err := storage.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, storage.Set("abc", []byte("payload"), time.Minute))
	assert.True(t, mr.Exists("fittrack:sess:abc"))

	val, err = storage.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), val)

	mr.FastForward(2 * time.Minute)
	val, err = storage.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, val, "expired sessions disappear")

	require.NoError(t, storage.Set("def", []byte("x"), 0))
	require.NoError(t, storage.Delete("def"))
	assert.False(t, mr.Exists("fittrack:sess:def"))
}

func TestRedisStorage_ResetKeepsForeignKeys(t *testing.T) {
	storage, mr := newRedisStorage(t)
	require.NoError(t, mr.Set("other:key", "keep"))
	require.NoError(t, storage.Set("a", []byte("1"), 0))
	require.NoError(t, storage.Set("b", []byte("2"), 0))

	require.NoError(t, storage.Reset())

	assert.False(t, mr.Exists("fittrack:sess:a"))
	assert.False(t, mr.Exists("fittrack:sess:b"))
	assert.True(t, mr.Exists("other:key"))
}

func sessionApp(m *Manager) *fiber.App {
	app := fiber.New()
	app.Post("/login/:id", func(c *fiber.Ctx) error {
		id, _ := strconv.Atoi(c.Params("id"))
		if err := m.Establish(c, uint(id), "user"); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		id, err := m.UserID(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(strconv.Itoa(int(id)))
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		if err := m.Destroy(c); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", CookieName)
	return nil
}

func exercise(t *testing.T, m *Manager) {
	app := sessionApp(m)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login/42", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "42", string(body))

	// Logging in again on the same cookie issues a new id.
	req = httptest.NewRequest(http.MethodPost, "/login/42", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	renewed := sessionCookie(t, resp)
	assert.NotEqual(t, cookie.Value, renewed.Value)

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(renewed)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(renewed)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestManager_MemoryStorage(t *testing.T) {
	exercise(t, NewManager(Options{}, nil))
}

func TestManager_RedisStorage(t *testing.T) {
	storage, mr := newRedisStorage(t)
	exercise(t, NewManager(Options{}, storage))
	assert.Empty(t, mr.Keys(), "logout removes the stored session")
}

func TestManager_SecureCookie(t *testing.T) {
	app := sessionApp(NewManager(Options{Secure: true}, nil))
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login/1", nil))
	require.NoError(t, err)
	assert.True(t, sessionCookie(t, resp).Secure)
}
