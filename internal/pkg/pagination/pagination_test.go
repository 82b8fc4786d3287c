package pagination

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func paramsFor(t *testing.T, target string) *Params {
	t.Helper()

	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		return c.JSON(GetParams(c))
	})

	req := httptest.NewRequest("GET", target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var params Params
	if err := json.Unmarshal(body, &params); err != nil {
		t.Fatalf("unmarshal params: %v", err)
	}
	return &params
}

func TestGetParamsDefaults(t *testing.T) {
	params := paramsFor(t, "/items")
	if params.Page != 1 || params.Limit != DefaultLimit {
		t.Fatalf("expected page=1 limit=%d, got page=%d limit=%d", DefaultLimit, params.Page, params.Limit)
	}
}

func TestGetParamsClamping(t *testing.T) {
	params := paramsFor(t, "/items?page=0&limit=1000")
	if params.Page != 1 {
		t.Fatalf("page below 1 must clamp to 1, got %d", params.Page)
	}
	if params.Limit != MaxLimit {
		t.Fatalf("limit above %d must clamp, got %d", MaxLimit, params.Limit)
	}
}

func TestGetMeta(t *testing.T) {
	params := &Params{Page: 2, Limit: 10, Offset: 10}
	meta := GetMeta(params, 25)

	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 total pages for 25 items, got %d", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrev {
		t.Fatalf("page 2 of 3 must have both next and prev")
	}

	last := GetMeta(&Params{Page: 3, Limit: 10}, 25)
	if last.HasNext {
		t.Fatalf("last page must not report has_next")
	}
}
