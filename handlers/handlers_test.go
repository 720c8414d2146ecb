package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/database"
	"tripplanner/metrics"
	"tripplanner/planner"
	"tripplanner/session"
)

type halfSource struct{}

func (halfSource) Float64() float64 { return 0.5 }

type testServer struct {
	router  *gin.Engine
	store   *database.SessionStore
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := database.NewSessionStore(time.Hour, time.Hour)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, func() float64 { return float64(store.Count()) })
	h := New(Options{
		Engine:         planner.NewEngine(halfSource{}),
		Store:          store,
		Metrics:        m,
		Gatherer:       reg,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	return &testServer{router: h.Router(), store: store, metrics: m}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

const parisBody = `{"destination":"Paris","days":3,"budget":"moderate","travelers":"2"}`

func TestGeneratePlan(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/plans", parisBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Plan)
	assert.Len(t, resp.Plan.Itinerary, 3)
	assert.Equal(t, "$2400", resp.Plan.TotalEstimatedCost)
	assert.Equal(t, "3.5 km", resp.Plan.Itinerary[0].WalkingDistance)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.PlansSynthesized))
}

func TestGeneratePlan_StringDays(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/plans", `{"destination":"Rome","days":"0","budget":"unknown-tier","travelers":"5+"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Plan.Itinerary, 3)
	assert.Equal(t, "$1500", resp.Plan.TotalEstimatedCost)
}

func TestGeneratePlan_MissingFields(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/plans", `{"destination":"Paris"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string   `json:"error"`
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Please fill in all required fields", resp.Error)
	assert.Equal(t, []string{"days", "budget", "travelers"}, resp.Missing)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.ValidationFailures))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.metrics.PlansSynthesized))
}

func TestGeneratePlan_MalformedJSON(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/plans", `{"destination":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportPlan_RoundTrip(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/plans", parisBody)
	require.Equal(t, http.StatusOK, w.Code)
	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = s.do(t, http.MethodPost, "/api/plans/export", resp.Plan)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=Paris-trip-plan.json", w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	parsed, err := planner.ParsePlan(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, resp.Plan, parsed)
}

func TestExportPlan_Rejected(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/plans/export", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/plans/export", `nope`).Code)
}

func decodeSnapshot(t *testing.T, w *httptest.ResponseRecorder) session.Snapshot {
	t.Helper()
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap), w.Body.String())
	return snap
}

func TestSessionFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	snap := decodeSnapshot(t, w)
	assert.Equal(t, session.Home, snap.State)
	base := "/api/sessions/" + snap.ID

	// submitting from the home screen is not allowed
	w = s.do(t, http.MethodPost, base+"/submit", parisBody)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, base+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.Collecting, decodeSnapshot(t, w).State)

	w = s.do(t, http.MethodGet, base+"/export", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, base+"/submit", `{"destination":"Paris","days":"3"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, base, nil)
	snap = decodeSnapshot(t, w)
	assert.Equal(t, session.Collecting, snap.State)
	assert.NotEmpty(t, snap.LastError)

	w = s.do(t, http.MethodPost, base+"/submit", parisBody)
	require.Equal(t, http.StatusOK, w.Code)
	snap = decodeSnapshot(t, w)
	assert.Equal(t, session.Reviewing, snap.State)
	require.NotNil(t, snap.Plan)
	assert.Equal(t, "$2400", snap.Plan.TotalEstimatedCost)

	w = s.do(t, http.MethodGet, base+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=Paris-trip-plan.json", w.Header().Get("Content-Disposition"))
	exported, err := planner.ParsePlan(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, snap.Plan, exported)

	w = s.do(t, http.MethodGet, base+"/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Paris-trip-plan.pdf", w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = s.do(t, http.MethodGet, base+"/share", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var share ShareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &share))
	assert.Equal(t, "My Trip to Paris", share.Title)
	assert.Equal(t, "Check out my 3 days trip to Paris!", share.Text)
	assert.Equal(t, "http://example.com"+base, share.URL)
	assert.Equal(t, "Link copied to clipboard!", share.FallbackNotice)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Exports.WithLabelValues("json")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Exports.WithLabelValues("pdf")))

	w = s.do(t, http.MethodPost, base+"/back", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap = decodeSnapshot(t, w)
	assert.Equal(t, session.Collecting, snap.State)
	assert.Nil(t, snap.Plan)

	w = s.do(t, http.MethodPost, base+"/back", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.Home, decodeSnapshot(t, w).State)

	w = s.do(t, http.MethodPost, base+"/back", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSession_Unknown(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/sessions/nope", "/api/sessions/nope/export", "/api/sessions/nope/share"} {
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, path, nil).Code, path)
	}
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/sessions/nope", nil).Code)
}

func TestShare_PublicBaseURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := database.NewSessionStore(time.Hour, time.Hour)
	h := New(Options{
		Engine:        planner.NewEngine(halfSource{}),
		Store:         store,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		PublicBaseURL: "https://trips.example.com/",
	})
	router := h.Router()

	sess := store.Create()
	require.NoError(t, sess.Start())
	_, err := sess.Submit(planner.TripRequest{Destination: "Oslo", Days: "1", Budget: "budget", Travelers: "1"}, h)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/"+sess.ID()+"/share", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var share ShareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &share))
	assert.Equal(t, "https://trips.example.com/api/sessions/"+sess.ID(), share.URL)
	assert.Equal(t, "Check out my 1 days trip to Oslo!", share.Text)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	s.store.Create()

	w := s.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.EqualValues(t, 1, health["sessions"])

	s.do(t, http.MethodPost, "/api/plans", parisBody)
	w = s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tripplanner_plans_synthesized_total 1")
	assert.Contains(t, w.Body.String(), "tripplanner_active_sessions 1")
}

func TestCORS_AllowedOrigin(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/plans", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

type brokenSource struct{}

func (brokenSource) Float64() float64 { panic("no entropy") }

func TestGeneratePlan_SynthesisFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	store := database.NewSessionStore(time.Hour, time.Hour)
	m := metrics.New(reg, func() float64 { return float64(store.Count()) })
	h := New(Options{
		Engine:  planner.NewEngine(brokenSource{}),
		Store:   store,
		Metrics: m,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/plans", strings.NewReader(parisBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to generate trip. Please try again."}`, w.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SynthesisFailures))
}

func TestGeneratePlan_DayLimit(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/plans",
		`{"destination":"Paris","days":"2000000","budget":"moderate","travelers":"2"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"Trips can be at most 60 days long"}`, w.Body.String())
	assert.Equal(t, 0.0, testutil.ToFloat64(s.metrics.PlansSynthesized))

	w = s.do(t, http.MethodPost, "/api/plans",
		`{"destination":"Paris","days":60,"budget":"ultra-luxury","travelers":"2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Plan.Itinerary, 60)
	assert.Equal(t, "$300000", resp.Plan.TotalEstimatedCost)
}

func TestSubmitSession_DayLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := database.NewSessionStore(time.Hour, time.Hour)
	h := New(Options{
		Engine:  planner.NewEngine(halfSource{}),
		Store:   store,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxDays: 5,
	})
	router := h.Router()

	sess := store.Create()
	require.NoError(t, sess.Start())

	submit := func(days string) *httptest.ResponseRecorder {
		body := `{"destination":"Rome","days":"` + days + `","budget":"budget","travelers":"1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+sess.ID()+"/submit", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := submit("6")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"Trips can be at most 5 days long"}`, w.Body.String())
	assert.Equal(t, session.Collecting, sess.State())
	assert.Nil(t, sess.Plan())

	w = submit("5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.Reviewing, sess.State())
}

func TestShare_ForwardedHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		trusted []string
		want    string
	}{
		{name: "untrusted peer", trusted: nil, want: "http://example.com"},
		{name: "trusted CIDR", trusted: []string{"192.0.2.0/24"}, want: "https://trips.example.org"},
		{name: "trusted IP", trusted: []string{"192.0.2.1"}, want: "https://trips.example.org"},
		{name: "other proxy", trusted: []string{"10.0.0.0/8", "not-an-ip"}, want: "http://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := database.NewSessionStore(time.Hour, time.Hour)
			h := New(Options{
				Engine:         planner.NewEngine(halfSource{}),
				Store:          store,
				Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
				TrustedProxies: tt.trusted,
			})
			router := h.Router()

			sess := store.Create()
			require.NoError(t, sess.Start())
			_, err := sess.Submit(planner.TripRequest{Destination: "Oslo", Days: "1", Budget: "budget", Travelers: "1"}, h)
			require.NoError(t, err)

			// httptest requests arrive from 192.0.2.1.
			req := httptest.NewRequest(http.MethodGet, "http://example.com/api/sessions/"+sess.ID()+"/share", nil)
			req.Header.Set("X-Forwarded-Proto", "https")
			req.Header.Set("X-Forwarded-Host", "trips.example.org")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)

			var share ShareResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &share))
			assert.Equal(t, tt.want+"/api/sessions/"+sess.ID(), share.URL)
		})
	}
}
