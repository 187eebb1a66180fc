package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"petadopt/api/handler"
	"petadopt/api/middleware"
	"petadopt/api/routes"
	"petadopt/internal/entity"
	"petadopt/internal/repository/repotest"
	"petadopt/internal/service"
	"petadopt/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type captureSender struct {
	mu     sync.Mutex
	tokens []string
}

func (s *captureSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = append(s.tokens, token)
	return nil
}

func (s *captureSender) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tokens) == 0 {
		return ""
	}
	return s.tokens[len(s.tokens)-1]
}

type testServer struct {
	echo       *echo.Echo
	auth       *service.AuthService
	adopters   *repotest.MemoryDirectory[entity.Adopter, *entity.Adopter]
	volunteers *repotest.MemoryDirectory[entity.Volunteer, *entity.Volunteer]
	staff      *repotest.MemoryDirectory[entity.Staff, *entity.Staff]
	emails     *captureSender
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger, _ := test.NewNullLogger()
	s := &testServer{
		echo:       echo.New(),
		adopters:   repotest.NewMemoryDirectory[entity.Adopter](),
		volunteers: repotest.NewMemoryDirectory[entity.Volunteer](),
		staff:      repotest.NewMemoryDirectory[entity.Staff](),
		emails:     &captureSender{},
	}
	directories := service.Directories{Adopters: s.adopters, Volunteers: s.volunteers, Staff: s.staff}
	issuer := service.JWTAccessIssuer{Manager: &utils.JWTManager{Secret: []byte("test-secret"), Issuer: "petadopt-test"}}
	s.auth = service.NewAuthService(
		directories,
		nil,
		s.emails,
		service.BcryptPasswordHasher{Cost: bcrypt.MinCost},
		issuer,
		service.RealClock{},
		service.AuthConfig{},
		nil,
		logger,
	)

	validate := validator.New()
	router := routes.NewRouter(s.echo, middleware.AuthMiddleware{Tokens: s.auth})
	router.Auth = handler.NewAuthHandler(s.auth, validate, logger)
	router.Profiles = handler.NewProfileHandler(service.NewProfileService(directories, nil, logger), validate, logger)
	router.Volunteers = handler.NewVolunteerHandler(service.NewVolunteerService(s.volunteers, service.RealClock{}, time.UTC), logger)
	router.RegisterRoutes()
	return s
}

func (s *testServer) do(t *testing.T, method string, path string, body string, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, kind string, email string, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login/"+kind, `{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Token
}

// activate stands in for an existing staff member approving the account.
func (s *testServer) activate(email string) {
	s.staff.Stored(email).Status = entity.StaffActive
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const adopterBody = `{
	"first_name": "John",
	"last_name": "Doe",
	"email": "a@x.com",
	"password": "secret123",
	"living_situation": "owns_house",
	"consents": ["terms_agreed"]
}`

func TestRegisterAdopter(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register/adopter", adopterBody, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	body := decode(t, rec)
	assert.Equal(t, "Registration successful!", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "adopter", user["role"])
	consents := user["consents"].([]any)
	require.Len(t, consents, 1)
	assert.Equal(t, entity.ConsentTermsLabel, consents[0].(map[string]any)["consent_type"])

	rec = s.do(t, http.MethodPost, "/api/auth/register/adopter", adopterBody, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, service.MsgEmailRegistered, decode(t, rec)["message"])
}

func TestRegister_BadRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "malformed json", path: "/api/auth/register/adopter", body: `{"email":`},
		{name: "missing living situation", path: "/api/auth/register/adopter", body: `{"first_name":"J","last_name":"D","email":"j@x.com","password":"secret123"}`},
		{name: "unknown availability", path: "/api/auth/register/volunteer", body: `{"first_name":"B","last_name":"W","email":"b@x.com","password":"secret123","availability":["holidays"]}`},
		{name: "unknown field", path: "/api/auth/register/staff", body: `{"first_name":"J","last_name":"S","email":"s@x.com","password":"secret123","role":"adopter"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, tt.path, tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/auth/register/adopter", adopterBody, "").Code)

	token := s.login(t, "adopter", "a@x.com", "secret123")
	rec := s.do(t, http.MethodGet, "/api/auth/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "adopter", decode(t, rec)["role"])

	wrong := s.do(t, http.MethodPost, "/api/auth/login/adopter", `{"email":"a@x.com","password":"nope"}`, "")
	unknown := s.do(t, http.MethodPost, "/api/auth/login/adopter", `{"email":"z@x.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestMe_RequiresValidToken(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/auth/me", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/auth/me", "", "invalid_token").Code)
}

func TestPasswordResetFlow(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/auth/register/adopter", adopterBody, "").Code)

	known := s.do(t, http.MethodPost, "/api/auth/password/forgot", `{"email":"a@x.com"}`, "")
	unknown := s.do(t, http.MethodPost, "/api/auth/password/forgot", `{"email":"nobody@x.com"}`, "")
	require.Equal(t, http.StatusOK, known.Code)
	require.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())

	token := s.emails.last()
	require.NotEmpty(t, token)

	rec := s.do(t, http.MethodPost, "/api/auth/password/reset", `{"token":"`+token+`","password":"newSecret456"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, service.MsgResetCompleted, decode(t, rec)["message"])

	rec = s.do(t, http.MethodPost, "/api/auth/password/reset", `{"token":"`+token+`","password":"again789"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MsgResetInvalid, decode(t, rec)["message"])

	s.login(t, "adopter", "a@x.com", "newSecret456")
}

func TestProfileAccess(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/auth/register/adopter", adopterBody, "").Code)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/auth/register/adopter",
		`{"first_name":"Eve","last_name":"E","email":"e@x.com","password":"secret123","living_situation":"apartment"}`, "").Code)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/auth/register/staff",
		`{"first_name":"Jane","last_name":"Smith","email":"staff@x.com","password":"password123"}`, "").Code)

	ownerID := s.adopters.Stored("a@x.com").ID.String()
	path := "/api/auth/profile/adopter/" + ownerID

	s.activate("staff@x.com")
	owner := s.login(t, "adopter", "a@x.com", "secret123")
	other := s.login(t, "adopter", "e@x.com", "secret123")
	staff := s.login(t, "staff", "staff@x.com", "password123")

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, "", owner).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, "", staff).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, path, "", other).Code)

	rec := s.do(t, http.MethodPut, path, `{"phone":"555-0100","role":"staff"}`, owner)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "555-0100", body["phone"])
	assert.Equal(t, "adopter", body["role"])
}

func TestAvailableVolunteers_StaffOnly(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/auth/register/volunteer",
		`{"first_name":"Bob","last_name":"W","email":"v@x.com","password":"secret123","availability":["anytime"]}`, "").Code)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/auth/register/staff",
		`{"first_name":"Jane","last_name":"Smith","email":"staff@x.com","password":"password123"}`, "").Code)

	s.activate("staff@x.com")
	volunteer := s.login(t, "volunteer", "v@x.com", "secret123")
	staff := s.login(t, "staff", "staff@x.com", "password123")

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/volunteers/available", "", volunteer).Code)

	rec := s.do(t, http.MethodGet, "/api/volunteers/available", "", staff)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "v@x.com", users[0]["email"])
}

func TestStaffRegistration_NeedsActivation(t *testing.T) {
	s := newTestServer(t)
	const newStaff = `{"first_name":"Mallory","last_name":"M","email":"new@x.com","password":"password123"}`

	rec := s.do(t, http.MethodPost, "/api/auth/register/staff", newStaff, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "inactive", decode(t, rec)["user"].(map[string]any)["status"])

	rec = s.do(t, http.MethodPost, "/api/auth/login/staff", `{"email":"new@x.com","password":"password123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, service.MsgStaffInactive, decode(t, rec)["message"])
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/volunteers/available", "", "").Code)

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/auth/register/staff",
		`{"first_name":"Jane","last_name":"Smith","email":"staff@x.com","password":"password123"}`, "").Code)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/auth/register/adopter", adopterBody, "").Code)
	s.activate("staff@x.com")
	admin := s.login(t, "staff", "staff@x.com", "password123")
	adopter := s.login(t, "adopter", "a@x.com", "secret123")

	path := "/api/staff/" + s.staff.Stored("new@x.com").ID.String() + "/status"
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPut, path, `{"status":"active"}`, adopter).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, path, `{"status":"retired"}`, admin).Code)

	rec = s.do(t, http.MethodPut, path, `{"status":"active"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "active", decode(t, rec)["status"])
	assert.True(t, s.staff.Stored("new@x.com").IsActive())
}

type failingChecker struct{ err error }

func (f failingChecker) HealthCheck(context.Context) error { return f.err }

func TestHealth(t *testing.T) {
	e := echo.New()
	logger, hook := test.NewNullLogger()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, handler.NewHealthHandler(failingChecker{}, logger).Check(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, handler.NewHealthHandler(failingChecker{err: context.DeadlineExceeded}, logger).Check(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
