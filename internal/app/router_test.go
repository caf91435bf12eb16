package app

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/scorecard/internal/observability"
	"github.com/odyssey-erp/scorecard/internal/scorecard"
	scorecardhttp "github.com/odyssey-erp/scorecard/internal/scorecard/http"
	"github.com/odyssey-erp/scorecard/internal/shared"
	"github.com/odyssey-erp/scorecard/internal/view"
	_ "github.com/odyssey-erp/scorecard/testing"
)

var csrfPattern = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	b.handler.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rr
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) csrfToken() string {
	b.t.Helper()
	rr := b.get("/")
	require.Equal(b.t, http.StatusOK, rr.Code)
	m := csrfPattern.FindStringSubmatch(rr.Body.String())
	require.Len(b.t, m, 2, "csrf token not found in page")
	return m[1]
}

func newTestRouter(t *testing.T) (*browser, *observability.Metrics) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second, RateLimitPerMinute: 1000}
	sessions := shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrfsecret")
	templates, err := view.NewEngine("ru")
	require.NoError(t, err)
	metrics := observability.NewMetrics()
	handler := scorecardhttp.NewHandler(nil, scorecard.NewSessionStore(), templates, csrf, metrics, scorecardhttp.Options{})

	router := NewRouter(RouterParams{
		Config:           cfg,
		SessionManager:   sessions,
		CSRFManager:      csrf,
		ScorecardHandler: handler,
		Metrics:          metrics,
	})
	return &browser{t: t, handler: router, cookies: map[string]*http.Cookie{}}, metrics
}

func TestHealthz(t *testing.T) {
	b, _ := newTestRouter(t)
	rr := b.get("/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Empty(t, rr.Result().Cookies(), "health checks must not open sessions")
}

func TestStaticAssetsServed(t *testing.T) {
	b, _ := newTestRouter(t)
	rr := b.get("/static/css/app.css")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
}

func TestDashboardRendersDefaults(t *testing.T) {
	b, _ := newTestRouter(t)
	rr := b.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Панель управления")
	assert.Contains(t, body, "37,5%")
	assert.Contains(t, body, `data-grade="main">2<`)
	assert.Contains(t, body, `data-grade="final">5<`)
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Contains(t, b.cookies, "test_session")
}

func TestPostWithoutCSRFIsForbidden(t *testing.T) {
	b, _ := newTestRouter(t)
	b.get("/")
	rr := b.post("/metrics", url.Values{})
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAddAndRemoveFlow(t *testing.T) {
	b, _ := newTestRouter(t)
	token := b.csrfToken()

	rr := b.post("/metrics", url.Values{shared.CSRFFormField: {token}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	page := b.get("/").Body.String()
	assert.Contains(t, page, "Показатель 4")
	assert.Contains(t, page, "Показатель добавлен")

	for _, id := range []string{"1", "2", "3"} {
		rr = b.post("/metrics/"+id+"/delete", url.Values{shared.CSRFFormField: {token}})
		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Contains(t, b.get("/").Body.String(), "Показатель удален")
	}
	rr = b.post("/metrics/4/delete", url.Values{shared.CSRFFormField: {token}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	page = b.get("/").Body.String()
	assert.Contains(t, page, "Нельзя удалить последний показатель")
	assert.Contains(t, page, `id="metric-4"`)
	assert.NotContains(t, page, "/metrics/4/delete", "remove control hidden for the last metric")
}

func TestEmployeesUpdateChangesFinalGrade(t *testing.T) {
	b, _ := newTestRouter(t)
	token := b.csrfToken()

	rr := b.post("/employees", url.Values{shared.CSRFFormField: {token}, "employee_count": {"2"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	page := b.get("/").Body.String()
	assert.Contains(t, page, `data-grade="final">4<`)
	assert.Contains(t, page, "78,3%")
}

func TestEvaluateAPISkipsCSRF(t *testing.T) {
	b, metrics := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, scorecardhttp.EvaluatePath, strings.NewReader(`{"main":{"plan":80000,"fact":30000},"employee_count":1,"secondary":[{"plan":100,"fact":75}]}`))
	req.Header.Set("Content-Type", "application/json")
	rr := b.do(req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"final_grade":5`)

	scrape := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), `scorecard_evaluations_total{final_grade="5"}`)
}

func TestAPIDeleteRequiresCSRFHeader(t *testing.T) {
	b, _ := newTestRouter(t)
	token := b.csrfToken()

	rr := b.do(httptest.NewRequest(http.MethodDelete, "/api/scorecard/metrics/1", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/scorecard/metrics/1", nil)
	req.Header.Set(shared.CSRFHeader, token)
	rr = b.do(req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), `"id":"1"`)
}
