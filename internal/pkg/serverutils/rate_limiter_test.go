package serverutils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func newLocalLimiter(limit int, window time.Duration) *RateLimiter {
	// empty URL keeps the limiter on the in-memory window
	return NewRateLimiter("", limit, window)
}

func TestAllow_UnderLimit(t *testing.T) {
	rl := newLocalLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(context.Background(), "client-a"))
	}
}

func TestAllow_OverLimit(t *testing.T) {
	rl := newLocalLimiter(2, time.Minute)

	assert.True(t, rl.Allow(context.Background(), "client-a"))
	assert.True(t, rl.Allow(context.Background(), "client-a"))
	assert.False(t, rl.Allow(context.Background(), "client-a"))
}

func TestAllow_ClientsIsolated(t *testing.T) {
	rl := newLocalLimiter(1, time.Minute)

	assert.True(t, rl.Allow(context.Background(), "client-a"))
	assert.True(t, rl.Allow(context.Background(), "client-b"))
	assert.False(t, rl.Allow(context.Background(), "client-a"))
}

func TestAllow_WindowSlides(t *testing.T) {
	rl := newLocalLimiter(1, 20*time.Millisecond)

	assert.True(t, rl.Allow(context.Background(), "client-a"))
	assert.False(t, rl.Allow(context.Background(), "client-a"))

	time.Sleep(30 * time.Millisecond)

	assert.True(t, rl.Allow(context.Background(), "client-a"))
}

func newFiberCtx(app *fiber.App) *fiber.Ctx {
	return app.AcquireCtx(&fasthttp.RequestCtx{})
}

func TestClientId_BearerTokenWins(t *testing.T) {
	app := fiber.New()
	ctx := newFiberCtx(app)
	defer app.ReleaseCtx(ctx)

	ctx.Request().Header.Set("Authorization", "Bearer token-123")
	ctx.Request().Header.Set("X-Forwarded-For", "10.0.0.1")

	assert.Equal(t, "Bearer token-123", ClientId(ctx))
}

func TestClientId_ForwardedForFallback(t *testing.T) {
	app := fiber.New()
	ctx := newFiberCtx(app)
	defer app.ReleaseCtx(ctx)

	ctx.Request().Header.Set("X-Forwarded-For", "10.0.0.1, 172.16.0.1")

	assert.Equal(t, "10.0.0.1", ClientId(ctx))
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	app := fiber.New()
	rl := newLocalLimiter(1, time.Minute)
	app.Use(RateLimitMiddleware(rl))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	makeReq := func() *http.Request {
		req := httptest.NewRequest("GET", "http://test/", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.9")
		return req
	}

	resp1, err := app.Test(makeReq())
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp1.StatusCode)

	resp2, err := app.Test(makeReq())
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp2.StatusCode)
}
