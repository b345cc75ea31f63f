package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kpavlou/go-igdb-proxy/internal/domain"
	"github.com/kpavlou/go-igdb-proxy/internal/igdb"
	"github.com/kpavlou/go-igdb-proxy/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ----- Fake service -----

type fakeGameService struct {
	lookupRec    *domain.GameRecord
	lookupCached bool
	lookupErr    error
	lookupCalls  int
	gotName      string

	multi    []domain.GameRecord
	multiErr error

	list         []domain.GameRecord
	listErr      error
	gotQueryType string
	gotLimit     int
}

func (f *fakeGameService) Lookup(ctx context.Context, name string) (*domain.GameRecord, bool, error) {
	f.lookupCalls++
	f.gotName = name
	return f.lookupRec, f.lookupCached, f.lookupErr
}

func (f *fakeGameService) MultiSearch(ctx context.Context, name string) ([]domain.GameRecord, error) {
	f.gotName = name
	return f.multi, f.multiErr
}

func (f *fakeGameService) ListByCriteria(ctx context.Context, queryType string, limit int) ([]domain.GameRecord, error) {
	f.gotQueryType = queryType
	f.gotLimit = limit
	return f.list, f.listErr
}

func configuredYes() bool { return true }
func configuredNo() bool  { return false }

func newTestRouter(svc *fakeGameService, configured func() bool) *gin.Engine {
	r := gin.New()
	h := New(svc, configured)
	r.POST("/games", h.QueryGames)
	return r
}

func postGames(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// ----- Tests -----

func TestQueryGames_NotConfigured(t *testing.T) {
	svc := &fakeGameService{}
	r := newTestRouter(svc, configuredNo)

	w := postGames(t, r, `{"gameName":"zelda"}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env["success"] != false {
		t.Error("success should be false")
	}
	if env["code"] != "IGDB_NOT_CONFIGURED" {
		t.Errorf("code = %v, want IGDB_NOT_CONFIGURED", env["code"])
	}
	if svc.lookupCalls != 0 {
		t.Error("service must not be called when unconfigured")
	}
}

func TestQueryGames_MalformedBody(t *testing.T) {
	r := newTestRouter(&fakeGameService{}, configuredYes)

	w := postGames(t, r, `{"gameName": `)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	env := decodeEnvelope(t, w)
	msg, _ := env["message"].(string)
	if !strings.Contains(msg, "invalid JSON body") {
		t.Errorf("message = %q", msg)
	}
	if !strings.Contains(msg, `{"gameName": `) {
		t.Errorf("message should echo the body: %q", msg)
	}
}

func TestQueryGames_MalformedBodyEchoTruncated(t *testing.T) {
	r := newTestRouter(&fakeGameService{}, configuredYes)

	long := strings.Repeat("x", 500)
	w := postGames(t, r, long)

	env := decodeEnvelope(t, w)
	msg, _ := env["message"].(string)
	if strings.Contains(msg, strings.Repeat("x", 101)) {
		t.Errorf("echoed body exceeds the cap: %q", msg)
	}
	if !strings.Contains(msg, strings.Repeat("x", 100)+"…") {
		t.Errorf("echo should be truncated with ellipsis: %q", msg)
	}
}

func TestQueryGames_MissingGameName(t *testing.T) {
	r := newTestRouter(&fakeGameService{}, configuredYes)

	w := postGames(t, r, `{"gameName":"  "}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestQueryGames_SingleLookup(t *testing.T) {
	svc := &fakeGameService{
		lookupRec:    &domain.GameRecord{ID: 14593, Name: "Hollow Knight"},
		lookupCached: true,
	}
	r := newTestRouter(svc, configuredYes)

	w := postGames(t, r, `{"gameName":"Hollow Knight"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env["success"] != true {
		t.Error("success should be true")
	}
	if env["cached"] != true {
		t.Errorf("cached = %v, want true", env["cached"])
	}
	data, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("data = %T %v", env["data"], env["data"])
	}
	if data["name"] != "Hollow Knight" {
		t.Errorf("data.name = %v", data["name"])
	}
	if svc.gotName != "Hollow Knight" {
		t.Errorf("service received name %q", svc.gotName)
	}
}

func TestQueryGames_SingleNotFound(t *testing.T) {
	r := newTestRouter(&fakeGameService{}, configuredYes)

	w := postGames(t, r, `{"gameName":"no such game"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env["success"] != true {
		t.Error("not-found is still a success")
	}
	if v, present := env["data"]; !present || v != nil {
		t.Errorf("data = %v, want explicit null", v)
	}
	if env["cached"] != false {
		t.Errorf("cached = %v, want false", env["cached"])
	}
}

func TestQueryGames_MultiSearch(t *testing.T) {
	svc := &fakeGameService{multi: []domain.GameRecord{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}
	r := newTestRouter(svc, configuredYes)

	w := postGames(t, r, `{"gameName":"a","searchMode":"MULTI"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	env := decodeEnvelope(t, w)
	list, ok := env["data"].([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("data = %v", env["data"])
	}
	if _, present := env["cached"]; present {
		t.Error("multi search responses must not carry a cached flag")
	}
	if svc.lookupCalls != 0 {
		t.Error("multi mode must not hit the single-lookup path")
	}
}

func TestQueryGames_CriteriaListing(t *testing.T) {
	svc := &fakeGameService{list: []domain.GameRecord{{ID: 9, Name: "Top"}}}
	r := newTestRouter(svc, configuredYes)

	w := postGames(t, r, `{"queryType":"top_rated","limit":5}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.gotQueryType != "top_rated" || svc.gotLimit != 5 {
		t.Errorf("service got queryType=%q limit=%d", svc.gotQueryType, svc.gotLimit)
	}
	env := decodeEnvelope(t, w)
	if list, ok := env["data"].([]any); !ok || len(list) != 1 {
		t.Fatalf("data = %v", env["data"])
	}
}

func TestQueryGames_UnknownQueryType(t *testing.T) {
	svc := &fakeGameService{listErr: services.ErrUnknownQueryType}
	r := newTestRouter(svc, configuredYes)

	w := postGames(t, r, `{"queryType":"best_ever"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	env := decodeEnvelope(t, w)
	msg, _ := env["message"].(string)
	if !strings.Contains(msg, "top_rated") {
		t.Errorf("message should list the valid types: %q", msg)
	}
}

func TestQueryGames_AuthErrorIsBadGateway(t *testing.T) {
	svc := &fakeGameService{lookupErr: &igdb.AuthError{Status: 403, Err: errors.New("invalid secret")}}
	r := newTestRouter(svc, configuredYes)

	w := postGames(t, r, `{"gameName":"x"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env["code"] != ErrCodeUpstreamAuth {
		t.Errorf("code = %v, want %q", env["code"], ErrCodeUpstreamAuth)
	}
}

func TestQueryGames_QueryErrorDegradesToEmptySingle(t *testing.T) {
	svc := &fakeGameService{lookupErr: &igdb.QueryError{Mode: "single", Status: 429}}
	r := newTestRouter(svc, configuredYes)

	w := postGames(t, r, `{"gameName":"x"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 fail-soft", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env["success"] != true {
		t.Error("fail-soft response must still be a success")
	}
	if env["data"] != nil {
		t.Errorf("data = %v, want null", env["data"])
	}
	if env["cached"] != false {
		t.Errorf("cached = %v, want false", env["cached"])
	}
}

func TestQueryGames_QueryErrorDegradesToEmptyList(t *testing.T) {
	svc := &fakeGameService{listErr: &igdb.QueryError{Mode: "list", Status: 500}}
	r := newTestRouter(svc, configuredYes)

	w := postGames(t, r, `{"queryType":"popular"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 fail-soft", w.Code)
	}
	env := decodeEnvelope(t, w)
	list, ok := env["data"].([]any)
	if !ok || len(list) != 0 {
		t.Errorf("data = %v, want empty array", env["data"])
	}
}

func TestQueryGames_UnexpectedErrorIsInternal(t *testing.T) {
	svc := &fakeGameService{lookupErr: errors.New("driver deadlock")}
	r := newTestRouter(svc, configuredYes)

	w := postGames(t, r, `{"gameName":"x"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
