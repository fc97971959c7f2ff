package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func internalTestApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/internal/ping", InternalAPIKey(secret), func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestInternalAPIKeyAcceptsCorrectKey(t *testing.T) {
	app := internalTestApp("s3cret")

	req := httptest.NewRequest("GET", "/internal/ping", nil)
	req.Header.Set("X-API-Key", "s3cret")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestInternalAPIKeyRejectsMissingKey(t *testing.T) {
	app := internalTestApp("s3cret")

	resp, err := app.Test(httptest.NewRequest("GET", "/internal/ping", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestInternalAPIKeyRejectsWrongKey(t *testing.T) {
	app := internalTestApp("s3cret")

	req := httptest.NewRequest("GET", "/internal/ping", nil)
	req.Header.Set("X-API-Key", "wrong")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestInternalAPIKeyFailsClosedWhenUnconfigured(t *testing.T) {
	app := internalTestApp("")

	req := httptest.NewRequest("GET", "/internal/ping", nil)
	req.Header.Set("X-API-Key", "anything")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
}
