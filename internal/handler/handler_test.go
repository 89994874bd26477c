package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
)

func newTestEngine() *route.Engine {
	r := route.NewEngine(config.NewOptions(nil))
	r.GET("/healthz", Healthz)
	r.POST("/trips", CreateTrip)
	r.POST("/trips/ensure", EnsureTrip)
	r.GET("/places", ListPlaces)
	r.POST("/places/bulk-update", BulkUpdatePlaces)
	r.POST("/places/:id/move", MovePlace)
	r.PUT("/places/:id/cost", SetPlaceCost)
	r.GET("/expenses", ListExpenses)
	r.POST("/expenses", CreateExpense)
	r.GET("/expenses/summary", GetExpenseSummary)
	r.GET("/exchange/rates", GetExchangeRates)
	r.GET("/exchange/convert", ConvertCurrency)
	return r
}

type envelope struct {
	Data  map[string]interface{} `json:"data"`
	Error struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func perform(t *testing.T, r *route.Engine, method, url, body string) (int, envelope) {
	t.Helper()
	b := &ut.Body{Body: bytes.NewBufferString(body), Len: len(body)}
	w := ut.PerformRequest(r, method, url, b, ut.Header{Key: "Content-Type", Value: "application/json"})
	resp := w.Result()

	var env envelope
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, url, err, resp.Body())
		}
	}
	return resp.StatusCode(), env
}

func TestRequestValidation(t *testing.T) {
	r := newTestEngine()

	tests := []struct {
		name     string
		method   string
		url      string
		body     string
		wantCode string
	}{
		{"malformed trip body", http.MethodPost, "/trips", `{"title":`, "INVALID_REQUEST"},
		{"trip without dates", http.MethodPost, "/trips", `{"title":"푸켓"}`, "INVALID_REQUEST"},
		{"ensure without keyword", http.MethodPost, "/trips/ensure", `{"title":"푸켓","startDate":"2025-08-13","endDate":"2025-08-16"}`, "INVALID_REQUEST"},
		{"places without trip", http.MethodGet, "/places", "", "TRIP_ID_REQUIRED"},
		{"expenses without trip", http.MethodGet, "/expenses", "", "TRIP_ID_REQUIRED"},
		{"summary without trip", http.MethodGet, "/expenses/summary", "", "TRIP_ID_REQUIRED"},
		{"empty bulk update", http.MethodPost, "/places/bulk-update", `{"places":[]}`, "BULK_UPDATE_EMPTY"},
		{"bulk update bad order", http.MethodPost, "/places/bulk-update", `{"updates":[{"id":"a","day":1,"order":0}]}`, "INVALID_REQUEST"},
		{"move without target", http.MethodPost, "/places/p-1/move", `{}`, "MOVE_TARGET_REQUIRED"},
		{"move to day zero", http.MethodPost, "/places/p-1/move", `{"targetDay":0}`, "INVALID_REQUEST"},
		{"place cost without amount", http.MethodPut, "/places/p-1/cost", `{"currency":"THB"}`, "AMOUNT_INVALID"},
		{
			"unknown expense category", http.MethodPost, "/expenses",
			`{"tripId":"t-1","amount":"1,000","description":"택시","category":"souvenir","date":"2025-08-14"}`,
			"INVALID_REQUEST",
		},
		{
			"negative expense", http.MethodPost, "/expenses",
			`{"tripId":"t-1","amount":-5,"description":"택시","category":"transport","date":"2025-08-14"}`,
			"AMOUNT_INVALID",
		},
		{
			"unknown currency", http.MethodPost, "/expenses",
			`{"tripId":"t-1","amount":5,"description":"택시","category":"transport","date":"2025-08-14","currency":"USD"}`,
			"INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := perform(t, r, tt.method, tt.url, tt.body)
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if env.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s (%s)", env.Error.Code, tt.wantCode, env.Error.Message)
			}
		})
	}
}

func TestValidationDetailsNameJSONFields(t *testing.T) {
	_, env := perform(t, newTestEngine(), http.MethodPost, "/trips", `{"title":"푸켓"}`)
	if env.Error.Details["startDate"] != "required" {
		t.Errorf("details = %v, want startDate: required", env.Error.Details)
	}
}

func TestConvertCurrency(t *testing.T) {
	r := newTestEngine()

	status, env := perform(t, r, http.MethodGet, "/exchange/convert?amount=100&from=THB", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", status, env.Error.Message)
	}
	if env.Data["result"] != "3850" || env.Data["to"] != "KRW" {
		t.Errorf("data = %v, want 3850 KRW", env.Data)
	}

	status, env = perform(t, r, http.MethodGet, "/exchange/convert?amount=10&from=USD", "")
	if status != http.StatusBadRequest || env.Error.Code != "UNSUPPORTED_CURRENCY" {
		t.Errorf("USD = %d %s, want 400 UNSUPPORTED_CURRENCY", status, env.Error.Code)
	}

	status, env = perform(t, r, http.MethodGet, "/exchange/convert?from=THB", "")
	if status != http.StatusBadRequest || env.Error.Code != "AMOUNT_INVALID" {
		t.Errorf("missing amount = %d %s, want 400 AMOUNT_INVALID", status, env.Error.Code)
	}
}

func TestExchangeRates(t *testing.T) {
	status, env := perform(t, newTestEngine(), http.MethodGet, "/exchange/rates", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if env.Data["expense"] != "43" || env.Data["calculator"] != "38.5" {
		t.Errorf("rates = %v, want 43 and 38.5", env.Data)
	}
}

func TestHealthz(t *testing.T) {
	status, env := perform(t, newTestEngine(), http.MethodGet, "/healthz", "")
	if status != http.StatusOK || env.Data["status"] != "ok" {
		t.Errorf("healthz = %d %v", status, env.Data)
	}
}
