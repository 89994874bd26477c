package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
)

func TestRecoverMiddleware(t *testing.T) {
	r := route.NewEngine(config.NewOptions(nil))
	cfg := NewRecoverConfig()
	cfg.ExposeDetails = false
	r.Use(RecoverMiddlewareWithConfig(cfg))
	r.GET("/boom", func(ctx context.Context, c *app.RequestContext) {
		var m map[string]int
		m["x"] = 1
	})

	w := ut.PerformRequest(r, http.MethodGet, "/boom", nil)
	resp := w.Result()
	if resp.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode())
	}

	var body struct {
		Error struct {
			Code    string                 `json:"code"`
			Details map[string]interface{} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %s, want INTERNAL_ERROR", body.Error.Code)
	}
	if body.Error.Details != nil {
		t.Errorf("details leaked: %v", body.Error.Details)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := route.NewEngine(config.NewOptions(nil))
	r.Use(CORSMiddleware())
	r.OPTIONS("/places", func(ctx context.Context, c *app.RequestContext) {
		t.Error("preflight reached the handler")
	})

	w := ut.PerformRequest(r, http.MethodOptions, "/places", nil, ut.Header{Key: "Origin", Value: "http://localhost:3000"})
	resp := w.Result()
	if resp.StatusCode() != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode())
	}
	if got := string(resp.Header.Peek("Access-Control-Allow-Origin")); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}
}

func TestRateLimitSkipsReads(t *testing.T) {
	r := route.NewEngine(config.NewOptions(nil))
	// no Redis is configured here: a read must never touch the limiter
	r.Use(RateLimitMiddleware(WriteRateLimitConfig()))
	r.GET("/trips", func(ctx context.Context, c *app.RequestContext) {
		c.Status(http.StatusOK)
	})

	w := ut.PerformRequest(r, http.MethodGet, "/trips", nil)
	if got := w.Result().StatusCode(); got != http.StatusOK {
		t.Errorf("status = %d, want 200", got)
	}
}

func TestWriteRateLimitConfig(t *testing.T) {
	cfg := WriteRateLimitConfig()
	if !cfg.WritesOnly || cfg.MaxRequests <= 0 || cfg.Window <= 0 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestIsSeverePanic(t *testing.T) {
	if !isSeverePanic("runtime error: index out of range [3] with length 2") {
		t.Error("index out of range not severe")
	}
	if isSeverePanic("boom") {
		t.Error("plain panic marked severe")
	}
}
