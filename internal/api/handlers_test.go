package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"ground-experiment/groundlink/internal/apperrors"
	"ground-experiment/groundlink/internal/auth"
	"ground-experiment/groundlink/internal/common"
	"ground-experiment/groundlink/internal/constants"
	"ground-experiment/groundlink/internal/db/repositories"
	"ground-experiment/groundlink/internal/metrics"
	"ground-experiment/groundlink/internal/models/entities"
	gormModels "ground-experiment/groundlink/internal/models/gorm"
	"ground-experiment/groundlink/internal/services"
	"ground-experiment/groundlink/internal/ws"
)

// The metrics registry registers into the process-global Prometheus
// registerer, so the whole test binary shares one instance.
var (
	metricsOnce sync.Once
	metricsReg  *metrics.MetricsRegistry
)

func testMetrics() *metrics.MetricsRegistry {
	metricsOnce.Do(func() { metricsReg = metrics.NewMetricsRegistry() })
	return metricsReg
}

type fakeRequestStore struct {
	mu   sync.Mutex
	seq  int
	reqs map[string]*entities.ServiceRequest
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{reqs: make(map[string]*entities.ServiceRequest)}
}

func (s *fakeRequestStore) InsertRequest(ctx context.Context, req *entities.ServiceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	req.ID = fmt.Sprintf("req-%d", s.seq)
	req.Status = constants.StatusOpen
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt

	stored := *req
	s.reqs[req.ID] = &stored
	return nil
}

func (s *fakeRequestStore) FindRequestByID(ctx context.Context, id string) (*entities.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.reqs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *req
	return &cp, nil
}

func (s *fakeRequestStore) ClaimRequest(ctx context.Context, requestID, crewID string) (*entities.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.reqs[requestID]
	if !ok || req.Status != constants.StatusOpen {
		return nil, repositories.ErrNoRowsAffected
	}

	req.Status = constants.StatusClaimed
	crew := crewID
	req.GroundCrewID = &crew
	req.UpdatedAt = time.Now()

	cp := *req
	return &cp, nil
}

func (s *fakeRequestStore) UpdateRequestStatus(ctx context.Context, requestID string, status constants.RequestStatus) (*entities.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.reqs[requestID]
	if !ok {
		return nil, repositories.ErrNoRowsAffected
	}

	req.Status = status
	req.UpdatedAt = time.Now()

	cp := *req
	return &cp, nil
}

func (s *fakeRequestStore) ListByAirport(ctx context.Context, icao string) ([]entities.ServiceRequest, error) {
	return s.filter(func(r *entities.ServiceRequest) bool { return r.AirportICAO == icao }), nil
}

func (s *fakeRequestStore) ListByPilot(ctx context.Context, pilotID string) ([]entities.ServiceRequest, error) {
	return s.filter(func(r *entities.ServiceRequest) bool { return r.PilotID == pilotID }), nil
}

func (s *fakeRequestStore) ListByCrew(ctx context.Context, crewID string) ([]entities.ServiceRequest, error) {
	return s.filter(func(r *entities.ServiceRequest) bool {
		return r.GroundCrewID != nil && *r.GroundCrewID == crewID
	}), nil
}

func (s *fakeRequestStore) ListOpen(ctx context.Context, icao string) ([]entities.ServiceRequest, error) {
	return s.filter(func(r *entities.ServiceRequest) bool {
		return r.Status == constants.StatusOpen && (icao == "" || r.AirportICAO == icao)
	}), nil
}

func (s *fakeRequestStore) filter(keep func(*entities.ServiceRequest) bool) []entities.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []entities.ServiceRequest{}
	for _, r := range s.reqs {
		if keep(r) {
			out = append(out, *r)
		}
	}
	return out
}

type fakeChatStore struct {
	mu   sync.Mutex
	seq  int
	msgs []entities.ChatMessage
}

func (s *fakeChatStore) InsertMessage(ctx context.Context, msg *entities.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	msg.ID = fmt.Sprintf("msg-%d", s.seq)
	msg.CreatedAt = time.Now()
	s.msgs = append(s.msgs, *msg)
	return nil
}

func (s *fakeChatStore) ListMessages(ctx context.Context, requestID string) ([]entities.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []entities.ChatMessage{}
	for _, m := range s.msgs {
		if m.RequestID == requestID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]gormModels.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]gormModels.User)}
}

func (s *fakeUserStore) GetUserByID(ctx context.Context, id string) (*gormModels.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := user
	return &cp, nil
}

func (s *fakeUserStore) UpsertUser(ctx context.Context, user *gormModels.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = *user
	return nil
}

type testEnv struct {
	handlers *Handlers
	requests *fakeRequestStore
	hub      *ws.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	requests := newFakeRequestStore()
	hub := ws.NewHub(nil)

	deps := &Dependencies{
		Services: &Services{
			Request: services.NewRequestService(requests, hub),
			Chat:    services.NewChatService(&fakeChatStore{}, requests, hub),
			User:    services.NewUserService(newFakeUserStore()),
			Signer:  common.NewTokenSignerService([]byte("test-secret")),
		},
		Hub:     hub,
		Metrics: testMetrics(),
	}

	return &testEnv{
		handlers: NewHandlers(deps),
		requests: requests,
		hub:      hub,
	}
}

// testRouter mounts the handlers the way the real route table does, with a
// middleware standing in for token validation
func testRouter(h *Handlers, claims auth.UserClaims) http.Handler {
	r := chi.NewRouter()

	if claims != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(auth.SetUserClaims(req.Context(), claims)))
			})
		})
	}

	r.Get("/api/requests", h.ListRequests())
	r.Post("/api/requests", h.CreateRequest())
	r.Get("/api/requests/open", h.ListOpenRequests())
	r.Post("/api/requests/{id}/claim", h.ClaimRequest())
	r.Post("/api/requests/{id}/status", h.UpdateRequestStatus())
	r.Get("/api/requests/{id}/messages", h.ListMessages())
	r.Post("/api/requests/{id}/messages", h.PostMessage())
	r.Get("/api/auth/user", h.GetAuthUser())
	r.Post("/api/auth/session", h.CreateSession())
	return r
}

func pilotClaims(id string) auth.UserClaims {
	return &auth.SessionClaims{UserUUID: id, DisplayNameValue: "Pilot " + id}
}

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Decode envelope (%d %s): %v", rec.Code, rec.Body.String(), err)
	}
	return rec, env
}

func createRequestBody() map[string]any {
	return map[string]any{
		"airportIcao":  "IRFD",
		"serviceType":  "fuel",
		"gate":         "A3",
		"flightNumber": "GL123",
		"description":  "Full tanks please",
	}
}

func TestCreateRequestHandler(t *testing.T) {
	env := newTestEnv(t)
	router := testRouter(env.handlers, pilotClaims("pilot-1"))

	rec, resp := doJSON(t, router, http.MethodPost, "/api/requests", createRequestBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if resp.Status != "success" {
		t.Errorf("Expected success envelope, got %s", resp.Status)
	}

	var req entities.ServiceRequest
	if err := json.Unmarshal(resp.Data, &req); err != nil {
		t.Fatalf("Decode request: %v", err)
	}
	if req.Status != constants.StatusOpen || req.PilotID != "pilot-1" {
		t.Errorf("Unexpected request: %+v", req)
	}
}

func TestCreateRequestHandler_Validation(t *testing.T) {
	env := newTestEnv(t)
	router := testRouter(env.handlers, pilotClaims("pilot-1"))

	body := createRequestBody()
	body["serviceType"] = "valet_parking"

	rec, resp := doJSON(t, router, http.MethodPost, "/api/requests", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if resp.Code != apperrors.CodeValidation {
		t.Errorf("Expected %s, got %s", apperrors.CodeValidation, resp.Code)
	}
}

func TestCreateRequestHandler_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	router := testRouter(env.handlers, nil)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/requests", createRequestBody())
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rec.Code)
	}
}

func TestClaimRequestHandler_ConflictAndNotFound(t *testing.T) {
	env := newTestEnv(t)
	pilot := testRouter(env.handlers, pilotClaims("pilot-1"))
	crew1 := testRouter(env.handlers, pilotClaims("crew-1"))
	crew2 := testRouter(env.handlers, pilotClaims("crew-2"))

	_, created := doJSON(t, pilot, http.MethodPost, "/api/requests", createRequestBody())
	var req entities.ServiceRequest
	json.Unmarshal(created.Data, &req)

	rec, _ := doJSON(t, crew1, http.MethodPost, "/api/requests/"+req.ID+"/claim", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for first claim, got %d", rec.Code)
	}

	rec, resp := doJSON(t, crew2, http.MethodPost, "/api/requests/"+req.ID+"/claim", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for second claim, got %d", rec.Code)
	}
	if resp.Code != apperrors.CodeClaimConflict {
		t.Errorf("Expected %s, got %s", apperrors.CodeClaimConflict, resp.Code)
	}

	rec, resp = doJSON(t, crew1, http.MethodPost, "/api/requests/missing/claim", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for missing request, got %d", rec.Code)
	}
	if resp.Code != apperrors.CodeNotFound {
		t.Errorf("Expected %s, got %s", apperrors.CodeNotFound, resp.Code)
	}
}

func TestUpdateRequestStatusHandler_ErrorMapping(t *testing.T) {
	env := newTestEnv(t)
	pilot := testRouter(env.handlers, pilotClaims("pilot-1"))
	crew := testRouter(env.handlers, pilotClaims("crew-1"))

	_, created := doJSON(t, pilot, http.MethodPost, "/api/requests", createRequestBody())
	var req entities.ServiceRequest
	json.Unmarshal(created.Data, &req)

	// open -> completed skips the claim: 422
	rec, resp := doJSON(t, pilot, http.MethodPost, "/api/requests/"+req.ID+"/status",
		map[string]string{"status": "completed"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d", rec.Code)
	}
	if resp.Code != apperrors.CodeInvalidTransit {
		t.Errorf("Expected %s, got %s", apperrors.CodeInvalidTransit, resp.Code)
	}

	doJSON(t, crew, http.MethodPost, "/api/requests/"+req.ID+"/claim", nil)

	// the pilot cannot advance the claimed request: 403
	rec, resp = doJSON(t, pilot, http.MethodPost, "/api/requests/"+req.ID+"/status",
		map[string]string{"status": "in_progress"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected 403, got %d", rec.Code)
	}
	if resp.Code != apperrors.CodeForbidden {
		t.Errorf("Expected %s, got %s", apperrors.CodeForbidden, resp.Code)
	}

	// the assigned crew member advances: 200
	rec, _ = doJSON(t, crew, http.MethodPost, "/api/requests/"+req.ID+"/status",
		map[string]string{"status": "in_progress"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestChatHandlers(t *testing.T) {
	env := newTestEnv(t)
	pilot := testRouter(env.handlers, pilotClaims("pilot-1"))
	crew := testRouter(env.handlers, pilotClaims("crew-1"))

	_, created := doJSON(t, pilot, http.MethodPost, "/api/requests", createRequestBody())
	var req entities.ServiceRequest
	json.Unmarshal(created.Data, &req)

	// chat is closed while the request is still open
	rec, resp := doJSON(t, pilot, http.MethodPost, "/api/requests/"+req.ID+"/messages",
		map[string]string{"message": "anyone there?"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409 on open request, got %d", rec.Code)
	}
	if resp.Code != apperrors.CodeInactiveRequest {
		t.Errorf("Expected %s, got %s", apperrors.CodeInactiveRequest, resp.Code)
	}

	doJSON(t, crew, http.MethodPost, "/api/requests/"+req.ID+"/claim", nil)

	rec, _ = doJSON(t, crew, http.MethodPost, "/api/requests/"+req.ID+"/messages",
		map[string]string{"message": "on my way"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, resp = doJSON(t, pilot, http.MethodGet, "/api/requests/"+req.ID+"/messages", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var msgs []entities.ChatMessage
	if err := json.Unmarshal(resp.Data, &msgs); err != nil {
		t.Fatalf("Decode messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Message != "on my way" {
		t.Errorf("Unexpected messages: %v", msgs)
	}
}

func TestListOpenRequestsHandler_Public(t *testing.T) {
	env := newTestEnv(t)
	pilot := testRouter(env.handlers, pilotClaims("pilot-1"))
	anonymous := testRouter(env.handlers, nil)

	doJSON(t, pilot, http.MethodPost, "/api/requests", createRequestBody())

	rec, resp := doJSON(t, anonymous, http.MethodGet, "/api/requests/open", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 without auth, got %d", rec.Code)
	}

	var reqs []entities.ServiceRequest
	if err := json.Unmarshal(resp.Data, &reqs); err != nil {
		t.Fatalf("Decode requests: %v", err)
	}
	if len(reqs) != 1 {
		t.Errorf("Expected one open request, got %d", len(reqs))
	}
}

func TestCreateSessionHandler(t *testing.T) {
	env := newTestEnv(t)
	router := testRouter(env.handlers, nil)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/auth/session",
		map[string]string{"userId": "user-1", "displayName": "Captain A"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var session struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &session); err != nil {
		t.Fatalf("Decode session: %v", err)
	}

	// The issued token must round-trip through the signer
	identity, err := common.NewTokenSignerService([]byte("test-secret")).ValidateToken(session.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if identity.UserID != "user-1" || identity.DisplayName != "Captain A" {
		t.Errorf("Unexpected identity: %+v", identity)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/api/auth/session", map[string]string{"displayName": "NoID"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for missing userId, got %d", rec.Code)
	}
}

func TestGetAuthUserHandler(t *testing.T) {
	env := newTestEnv(t)
	router := testRouter(env.handlers, pilotClaims("pilot-9"))

	rec, resp := doJSON(t, router, http.MethodGet, "/api/auth/user", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var user gormModels.User
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		t.Fatalf("Decode user: %v", err)
	}
	if user.ID != "pilot-9" || user.DisplayName != "Pilot pilot-9" {
		t.Errorf("Unexpected user: %+v", user)
	}
}
