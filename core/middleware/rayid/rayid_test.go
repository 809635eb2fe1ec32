package rayid

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(seen *string) *fiber.App {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		*seen = FromContext(c)
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestRayID_Generated(t *testing.T) {
	var seen string

	resp, err := setupApp(&seen).Test(httptest.NewRequest("GET", "/", nil))

	require.NoError(t, err)
	rid := resp.Header.Get(Header)
	assert.Equal(t, rid, seen)
	_, err = uuid.Parse(rid)
	assert.NoError(t, err)
}

func TestRayID_Propagated(t *testing.T) {
	var seen string
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(Header, "upstream-42")

	resp, err := setupApp(&seen).Test(req)

	require.NoError(t, err)
	assert.Equal(t, "upstream-42", resp.Header.Get(Header))
	assert.Equal(t, "upstream-42", seen)
}
