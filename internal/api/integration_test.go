package api_test

import (
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/randytsao24/experienceintel/internal/advisor"
	"github.com/randytsao24/experienceintel/internal/api"
	"github.com/randytsao24/experienceintel/internal/cache"
	"github.com/randytsao24/experienceintel/internal/config"
	"github.com/randytsao24/experienceintel/internal/features"
	"github.com/randytsao24/experienceintel/internal/models"
	"github.com/randytsao24/experienceintel/internal/predict"
	"github.com/randytsao24/experienceintel/internal/web"
	"github.com/randytsao24/experienceintel/internal/widgets"
)

// ---------------------------------------------------------------------------
// Mock models
// ---------------------------------------------------------------------------

var errModel = errors.New("artifact corrupted")

type failingModels struct{}

func (failingModels) PredictTipRatio(features.TaxiFeatures) (float64, error) { return 0, errModel }
func (failingModels) Scale(features.WazeFeatures) ([]float64, error)        { return nil, errModel }
func (failingModels) PredictProbability([]float64) (float64, error)         { return 0, errModel }
func (failingModels) PredictClass(features.TikTokFeatures) (int, error)     { return 0, errModel }

type countingEngine struct {
	next  *advisor.Engine
	calls atomic.Int32
}

func (e *countingEngine) Render(s widgets.State) (*models.Dashboard, error) {
	e.calls.Add(1)
	return e.next.Render(s)
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func repoDir(t *testing.T, sub string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(file), "../..", sub)
}

func loadRegistry(t *testing.T) *predict.Registry {
	t.Helper()
	registry := predict.NewRegistry()
	if err := registry.Load(repoDir(t, "models"), predict.DefaultNames()); err != nil {
		t.Fatalf("load artifacts: %v", err)
	}
	return registry
}

// newTestServer wires the shipped artifacts and assets; tweak may replace any dependency
func newTestServer(t *testing.T, tweak func(*api.Deps, *config.Config)) *httptest.Server {
	t.Helper()

	registry := loadRegistry(t)
	stylesheet := web.NewStylesheet(repoDir(t, "assets"), time.Minute)
	t.Cleanup(stylesheet.Close)
	page, err := web.NewPage(stylesheet)
	if err != nil {
		t.Fatalf("build page: %v", err)
	}
	dashboards := cache.New[*models.Dashboard](time.Minute)
	t.Cleanup(dashboards.Close)

	cfg := config.Default()
	cfg.HTTPTimeout = 5 * time.Second
	cfg.RateLimitRPS = 0
	deps := api.Deps{
		Engine:     advisor.NewEngine(registry, registry.Loaded),
		Models:     registry,
		Artifacts:  registry,
		Page:       page,
		Stylesheet: stylesheet,
		Dashboards: dashboards,
	}
	if tweak != nil {
		tweak(&deps, cfg)
	}

	srv := httptest.NewServer(api.NewRouter(cfg, deps))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, server *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func post(t *testing.T, server *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(server.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return m
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(data)
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Errorf("status = %d, want %d", resp.StatusCode, want)
	}
}

func assertSuccess(t *testing.T, body map[string]any) {
	t.Helper()
	if body["success"] != true {
		t.Errorf("expected success=true, body: %v", body)
	}
}

func assertField(t *testing.T, body map[string]any, field string) {
	t.Helper()
	if _, ok := body[field]; !ok {
		t.Errorf("missing field %q in response: %v", field, body)
	}
}

func assertNear(t *testing.T, name string, got any, want float64) {
	t.Helper()
	f, ok := got.(float64)
	if !ok {
		t.Errorf("%s = %v, want a number", name, got)
		return
	}
	if math.Abs(f-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, f, want)
	}
}

func object(t *testing.T, body map[string]any, field string) map[string]any {
	t.Helper()
	m, ok := body[field].(map[string]any)
	if !ok {
		t.Fatalf("%s should be an object, body: %v", field, body)
	}
	return m
}

// ---------------------------------------------------------------------------
// Health & root
// ---------------------------------------------------------------------------

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/health")
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	assertField(t, body, "uptime")
	if body["status"] != "OK" {
		t.Errorf("status = %v, want OK", body["status"])
	}
	if body["artifacts"] != 4.0 {
		t.Errorf("artifacts = %v, want 4", body["artifacts"])
	}
}

func TestHealthBeforeLoad(t *testing.T) {
	srv := newTestServer(t, func(d *api.Deps, _ *config.Config) {
		d.Artifacts = predict.NewRegistry()
	})

	resp := get(t, srv, "/health")
	assertStatus(t, resp, http.StatusServiceUnavailable)
	if body := decodeBody(t, resp); body["status"] != "UNAVAILABLE" {
		t.Errorf("status = %v, want UNAVAILABLE", body["status"])
	}
}

func TestAPIRoot(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/api")
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	endpoints := object(t, body, "endpoints")
	if _, ok := endpoints["POST /api/predict/churn"]; !ok {
		t.Errorf("churn endpoint not listed: %v", endpoints)
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/no/such/page")
	assertStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestArtifacts(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/api/artifacts")
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	assertSuccess(t, body)
	assertField(t, body, "loaded_at")
	artifacts, ok := body["artifacts"].([]any)
	if !ok || len(artifacts) != 4 {
		t.Fatalf("artifacts = %v, want 4 entries", body["artifacts"])
	}
	first := artifacts[0].(map[string]any)
	if first["kind"] != "linear_regressor" {
		t.Errorf("first artifact kind = %v, want linear_regressor", first["kind"])
	}
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

func TestDashboardPage(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/")
	assertStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	html := readBody(t, resp)
	for _, want := range []string{
		"AI-Powered Experience Intelligence System",
		"0.17",
		advisor.ReasonFatigue,
		"Optimized Satisfaction Score",
		".metric",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestDashboardPageFromQuery(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/?cost_per_km=25&duration=20&distance=10")
	assertStatus(t, resp, http.StatusOK)

	html := readBody(t, resp)
	if !strings.Contains(html, advisor.ReasonHighCost) {
		t.Error("high cost reason should be shown")
	}
	if strings.Contains(html, advisor.ReasonFatigue) {
		t.Error("fatigue reason should not be shown for a 20 minute trip")
	}
}

func TestDashboardPageMissingStylesheet(t *testing.T) {
	srv := newTestServer(t, func(d *api.Deps, _ *config.Config) {
		stylesheet := web.NewStylesheet(t.TempDir(), time.Minute)
		t.Cleanup(stylesheet.Close)
		page, err := web.NewPage(stylesheet)
		if err != nil {
			t.Fatalf("build page: %v", err)
		}
		d.Page = page
		d.Stylesheet = stylesheet
	})

	resp := get(t, srv, "/")
	assertStatus(t, resp, http.StatusInternalServerError)
	if html := readBody(t, resp); strings.Contains(html, "<html") {
		t.Error("no page content should be written when the stylesheet is missing")
	}

	resp = get(t, srv, "/assets/style.css")
	assertStatus(t, resp, http.StatusInternalServerError)
	resp.Body.Close()
}

func TestStylesheet(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/assets/style.css")
	assertStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q, want text/css", ct)
	}
	if css := readBody(t, resp); !strings.Contains(css, ".alert.success") {
		t.Error("stylesheet content not served verbatim")
	}
}

func TestDashboardJSON(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/api/dashboard")
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	assertSuccess(t, body)
	dashboard := object(t, body, "dashboard")

	taxi := object(t, dashboard, "taxi")
	assertNear(t, "taxi.score", taxi["score"], 0.17)

	churn := object(t, dashboard, "churn")
	if actions, _ := churn["actions"].([]any); len(actions) != 2 {
		t.Errorf("churn actions = %v, want the two status quo actions", churn["actions"])
	}

	whatIf := object(t, dashboard, "what_if")
	assertNear(t, "what_if.score", whatIf["score"], 0.1802)
	assertNear(t, "what_if.delta", whatIf["delta"], 0.1802-0.17)

	status, _ := dashboard["status"].([]any)
	if len(status) != 3 {
		t.Fatalf("status = %v, want 3 metrics", dashboard["status"])
	}
	if s := status[0].(map[string]any); s["value"] != "Live" {
		t.Errorf("status value = %v, want Live", s["value"])
	}
}

func TestDashboardLowSatisfactionDrivesChurnActions(t *testing.T) {
	srv := newTestServer(t, nil)

	// 40 km, 100 min, 30/km, peak scores 0.04
	resp := get(t, srv, "/api/dashboard?distance=40&duration=100&cost_per_km=30&peak=Yes")
	assertStatus(t, resp, http.StatusOK)

	dashboard := object(t, decodeBody(t, resp), "dashboard")
	assertNear(t, "taxi.score", object(t, dashboard, "taxi")["score"], 0.04)
	churn := object(t, dashboard, "churn")
	if actions, _ := churn["actions"].([]any); len(actions) != 3 {
		t.Errorf("churn actions = %v, want the three remediation actions", churn["actions"])
	}
}

func TestDashboardRenderFailure(t *testing.T) {
	srv := newTestServer(t, func(d *api.Deps, _ *config.Config) {
		d.Engine = advisor.NewEngine(failingModels{}, nil)
	})

	resp := get(t, srv, "/api/dashboard")
	assertStatus(t, resp, http.StatusInternalServerError)
	body := decodeBody(t, resp)
	assertField(t, body, "error")
	if msg, _ := body["message"].(string); !strings.Contains(msg, errModel.Error()) {
		t.Errorf("message = %q, want it to mention %q", msg, errModel)
	}

	resp = get(t, srv, "/")
	assertStatus(t, resp, http.StatusInternalServerError)
	resp.Body.Close()
}

func TestDashboardIsMemoised(t *testing.T) {
	registry := loadRegistry(t)
	engine := &countingEngine{next: advisor.NewEngine(registry, registry.Loaded)}
	srv := newTestServer(t, func(d *api.Deps, _ *config.Config) {
		d.Engine = engine
	})

	for range 3 {
		resp := get(t, srv, "/api/dashboard?sessions=2")
		assertStatus(t, resp, http.StatusOK)
		resp.Body.Close()
	}
	resp := get(t, srv, "/?sessions=2")
	assertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	if n := engine.calls.Load(); n != 1 {
		t.Errorf("engine rendered %d times, want 1", n)
	}

	resp = get(t, srv, "/api/dashboard?sessions=3")
	resp.Body.Close()
	if n := engine.calls.Load(); n != 2 {
		t.Errorf("engine rendered %d times after a new state, want 2", n)
	}
}

func TestWidgets(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/api/widgets?device=iOS")
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	assertSuccess(t, body)
	controls, ok := body["controls"].([]any)
	if !ok || len(controls) != 14 {
		t.Fatalf("controls = %v, want 14", body["controls"])
	}
	if state := object(t, body, "state"); state["device"] != "iOS" {
		t.Errorf("state.device = %v, want iOS", state["device"])
	}
	if defaults := object(t, body, "defaults"); defaults["device"] != "Android" {
		t.Errorf("defaults.device = %v, want Android", defaults["device"])
	}

	sessions := controls[4].(map[string]any)
	if sessions["name"] != "sessions" {
		t.Fatalf("controls[4] = %v, want the sessions slider", sessions)
	}
	for field, want := range map[string]float64{"min": 0, "max": 10, "step": 0.01} {
		if _, ok := sessions[field]; !ok {
			t.Errorf("sessions slider missing %q", field)
			continue
		}
		assertNear(t, "sessions."+field, sessions[field], want)
	}
}

// ---------------------------------------------------------------------------
// Predictions
// ---------------------------------------------------------------------------

const defaultTrip = `{"trip_distance": 12, "trip_duration_min": 35, "cost_per_km": 15, "peak_hour": 0}`

func TestPredictTaxi(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv, "/api/predict/taxi", defaultTrip)
	assertStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	assertSuccess(t, body)
	taxi := object(t, body, "taxi")
	assertNear(t, "score", taxi["score"], 0.17)
	reasons, _ := taxi["reasons"].([]any)
	if len(reasons) != 1 || reasons[0] != advisor.ReasonFatigue {
		t.Errorf("reasons = %v, want only the fatigue reason", reasons)
	}
}

func TestPredictValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"not JSON", "/api/predict/taxi", `{"trip_distance":`},
		{"not an object", "/api/predict/taxi", `[1, 2, 3, 4]`},
		{"missing field", "/api/predict/taxi", `{"trip_distance": 12, "trip_duration_min": 35, "cost_per_km": 15}`},
		{"unknown field", "/api/predict/taxi", `{"trip_distance": 12, "trip_duration_min": 35, "cost_per_km": 15, "peak_hour": 0, "tip": 1}`},
		{"negative distance", "/api/predict/taxi", `{"trip_distance": -1, "trip_duration_min": 35, "cost_per_km": 15, "peak_hour": 0}`},
		{"non-binary flag", "/api/predict/whatif", `{"trip_distance": 12, "trip_duration_min": 35, "cost_per_km": 15, "peak_hour": 2}`},
		{"ratio above one", "/api/predict/churn", `{"sessions_per_day": 1, "favorite_ratio": 1.5, "inactive_ratio": 0.3, "driving_consistency": 0.6, "device_android": 1, "taxi_score": 0.2}`},
		{"missing taxi score", "/api/predict/churn", `{"sessions_per_day": 1, "favorite_ratio": 0.4, "inactive_ratio": 0.3, "driving_consistency": 0.6, "device_android": 1}`},
		{"string value", "/api/predict/engagement", `{"views_per_second": "fast", "interaction_intensity": 1, "short_video_flag": 0, "verified_flag": 0, "ban_flag": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, tt.path, tt.body)
			assertStatus(t, resp, http.StatusBadRequest)
			body := decodeBody(t, resp)
			assertField(t, body, "error")
			assertField(t, body, "message")
		})
	}
}

func TestPredictChurn(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv, "/api/predict/churn",
		`{"sessions_per_day": 0, "favorite_ratio": 0, "inactive_ratio": 1, "driving_consistency": 0, "device_android": 0, "taxi_score": 0.1}`)
	assertStatus(t, resp, http.StatusOK)

	churn := object(t, decodeBody(t, resp), "churn")
	if p, _ := churn["probability"].(float64); p <= 0.6 || p > 1 {
		t.Errorf("probability = %v, want a high risk value", churn["probability"])
	}
	if risk := churn["risk"].(map[string]any); risk["level"] != "high" {
		t.Errorf("risk level = %v, want high", risk["level"])
	}
	if actions, _ := churn["actions"].([]any); len(actions) != 3 {
		t.Errorf("actions = %v, want remediation for taxi score 0.1", churn["actions"])
	}
}

func TestPredictChurnKmPerDriveIsFixed(t *testing.T) {
	srv := newTestServer(t, nil)

	const user = `"sessions_per_day": 1.2, "favorite_ratio": 0.4, "inactive_ratio": 0.3, "driving_consistency": 0.6, "device_android": 1, "taxi_score": 0.17`

	resp := post(t, srv, "/api/predict/churn", `{`+user+`}`)
	assertStatus(t, resp, http.StatusOK)
	churn := object(t, decodeBody(t, resp), "churn")
	assertNear(t, "inputs.km_per_drive", object(t, churn, "inputs")["km_per_drive"], features.KmPerDrivePlaceholder)

	// the dashboard scores the same user identically
	dash := get(t, srv, "/api/dashboard")
	assertStatus(t, dash, http.StatusOK)
	dashChurn := object(t, object(t, decodeBody(t, dash), "dashboard"), "churn")
	assertNear(t, "probability", churn["probability"], dashChurn["probability"].(float64))

	for _, km := range []string{"0", "500"} {
		resp := post(t, srv, "/api/predict/churn", `{`+user+`, "km_per_drive": `+km+`}`)
		assertStatus(t, resp, http.StatusBadRequest)
		assertField(t, decodeBody(t, resp), "error")
	}
}

func TestPredictEngagement(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		body    string
		label   float64
		verdict string
	}{
		{`{"views_per_second": 300, "interaction_intensity": 6, "short_video_flag": 1, "verified_flag": 1, "ban_flag": 0}`, 1, advisor.VerdictHigh},
		{`{"views_per_second": 60, "interaction_intensity": 1.5, "short_video_flag": 0, "verified_flag": 0, "ban_flag": 0}`, 0, advisor.VerdictLow},
	}
	for _, tt := range tests {
		resp := post(t, srv, "/api/predict/engagement", tt.body)
		assertStatus(t, resp, http.StatusOK)

		engagement := object(t, decodeBody(t, resp), "engagement")
		if engagement["label"] != tt.label {
			t.Errorf("label = %v, want %v", engagement["label"], tt.label)
		}
		alert := engagement["alert"].(map[string]any)
		if text, _ := alert["text"].(string); !strings.Contains(text, tt.verdict) {
			t.Errorf("alert text = %q, want %q", text, tt.verdict)
		}
	}
}

func TestPredictWhatIf(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv, "/api/predict/whatif", defaultTrip)
	assertStatus(t, resp, http.StatusOK)

	whatIf := object(t, decodeBody(t, resp), "what_if")
	assertNear(t, "original_score", whatIf["original_score"], 0.17)
	assertNear(t, "score", whatIf["score"], 0.1802)
	assertNear(t, "delta", whatIf["delta"], 0.1802-0.17)

	inputs := object(t, whatIf, "inputs")
	assertNear(t, "inputs.cost_per_km", inputs["cost_per_km"], 12)
	assertNear(t, "inputs.trip_duration_min", inputs["trip_duration_min"], 29.75)
}

func TestPredictModelFailure(t *testing.T) {
	srv := newTestServer(t, func(d *api.Deps, _ *config.Config) {
		d.Models = failingModels{}
	})

	for _, path := range []string{"/api/predict/taxi", "/api/predict/whatif"} {
		resp := post(t, srv, path, defaultTrip)
		assertStatus(t, resp, http.StatusInternalServerError)
		assertField(t, decodeBody(t, resp), "error")
	}
}

func TestPredictBeforeLoad(t *testing.T) {
	srv := newTestServer(t, func(d *api.Deps, _ *config.Config) {
		d.Models = predict.NewRegistry()
	})

	resp := post(t, srv, "/api/predict/taxi", defaultTrip)
	assertStatus(t, resp, http.StatusInternalServerError)
	resp.Body.Close()
}

func TestPredictRequiresPost(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/api/predict/taxi")
	assertStatus(t, resp, http.StatusMethodNotAllowed)
	resp.Body.Close()
}

// ---------------------------------------------------------------------------
// Middleware
// ---------------------------------------------------------------------------

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/health")
	resp.Body.Close()
	if id := resp.Header.Get("X-Request-ID"); len(id) != 36 {
		t.Errorf("generated X-Request-ID = %q, want a UUID", id)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if id := resp.Header.Get("X-Request-ID"); id != "trace-123" {
		t.Errorf("X-Request-ID = %q, want the caller's ID echoed", id)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/predict/taxi", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	resp.Body.Close()
	assertStatus(t, resp, http.StatusOK)
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, func(_ *api.Deps, cfg *config.Config) {
		cfg.RateLimitRPS = 0.001
		cfg.RateLimitBurst = 2
	})

	codes := make([]int, 3)
	for i := range codes {
		resp := get(t, srv, "/health")
		resp.Body.Close()
		codes[i] = resp.StatusCode
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/api/dashboard")
	resp.Body.Close()

	resp = get(t, srv, "/metrics")
	assertStatus(t, resp, http.StatusOK)
	text := readBody(t, resp)
	for _, want := range []string{
		"experienceintel_http_requests_total",
		"experienceintel_predictions_total",
		"experienceintel_artifact_loaded",
		`route="GET /api/dashboard"`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
