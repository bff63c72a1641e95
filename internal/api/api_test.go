package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamestore/internal/api"
	"github.com/mcoot/gamestore/internal/api/apierr"
	"github.com/mcoot/gamestore/internal/api/response"
	"github.com/mcoot/gamestore/internal/factory"
	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		Storefront:  app.Storefront,
		AuthService: app.AuthService,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func registerAndLogin(t *testing.T, ts *testServer, username, email string) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/accounts/register", map[string]string{
		"username": username,
		"email":    email,
		"password": "pw-" + username,
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/v1/accounts/login", map[string]string{
		"email":    email,
		"password": "pw-" + username,
	}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[response.AuthResponse](t, rr).SessionToken
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)
	ts.app.AddGame("Portal", 9.99, "", "")

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	health := decode[response.Health](t, rr)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 1, health.Games)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/accounts/register", map[string]string{
		"username": "alice",
		"email":    "a@x.io",
		"password": "pw1",
		"dob":      "1990-04-01",
	}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/api/v1/accounts/login", rr.Header().Get("Location"))
	registered := decode[response.RegisterResponse](t, rr)
	assert.Positive(t, registered.UserID)
	assert.NotEmpty(t, registered.Message)

	rr = ts.request(http.MethodPost, "/api/v1/accounts/login", map[string]string{
		"email":    "a@x.io",
		"password": "pw1",
	}, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	loggedIn := decode[response.AuthResponse](t, rr)
	assert.Equal(t, registered.UserID, loggedIn.User.ID)
	assert.Equal(t, "alice", loggedIn.User.Name)
	assert.NotEmpty(t, loggedIn.SessionToken)

	rr = ts.request(http.MethodGet, "/api/v1/accounts/me", nil, loggedIn.SessionToken)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice", decode[response.User](t, rr).Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	registerAndLogin(t, ts, "alice", "a@x.io")

	rr := ts.request(http.MethodPost, "/api/v1/accounts/register", map[string]string{
		"username": "alice2",
		"email":    "a@x.io",
		"password": "pw2",
	}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeEmailExists, decode[apierr.ErrorResponse](t, rr).Error.Code)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/accounts/register", map[string]string{
		"username": "alice",
		"email":    "",
		"password": "pw1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeValidationFailed, decode[apierr.ErrorResponse](t, rr).Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decode[apierr.ErrorResponse](t, rec).Error.Code)
}

func TestLoginDoesNotRevealWhichFieldWasWrong(t *testing.T) {
	ts := newTestServer(t)
	registerAndLogin(t, ts, "alice", "a@x.io")

	wrongPassword := ts.request(http.MethodPost, "/api/v1/accounts/login", map[string]string{
		"email": "a@x.io", "password": "nope",
	}, "")
	unknownEmail := ts.request(http.MethodPost, "/api/v1/accounts/login", map[string]string{
		"email": "ghost@x.io", "password": "nope",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)
	id := ts.app.AddGame("Portal", 9.99, "", "")

	rr := ts.request(http.MethodGet, "/api/v1/accounts/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/"+itoa(id)+"/purchase", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/library", nil, "bogus-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts, "alice", "a@x.io")

	rr := ts.request(http.MethodPost, "/api/v1/accounts/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/accounts/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestListAndSearchGames(t *testing.T) {
	ts := newTestServer(t)
	ts.app.AddGame("Zelda", 59.99, "Nintendo", "Nintendo EPD")
	ts.app.AddGame("Celeste", 19.99, "", "")
	ts.app.AddGame("Portal", 9.99, "Valve", "Valve")

	rr := ts.request(http.MethodGet, "/api/v1/games", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[response.GameList](t, rr)
	require.Len(t, list.Games, 3)
	assert.Equal(t, "Celeste", list.Games[0].Name)
	assert.Equal(t, "Portal", list.Games[1].Name)
	assert.Equal(t, "Zelda", list.Games[2].Name)

	rr = ts.request(http.MethodGet, "/api/v1/games?q=ZEL", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	list = decode[response.GameList](t, rr)
	require.Len(t, list.Games, 1)
	assert.Equal(t, "Zelda", list.Games[0].Name)
}

func TestGetGameDetail(t *testing.T) {
	ts := newTestServer(t)
	withRefs := ts.app.AddGame("Zelda", 59.99, "Nintendo", "Nintendo EPD")
	bare := ts.app.AddGame("Prototype", 0, "", "")

	rr := ts.request(http.MethodGet, "/api/v1/games/"+itoa(withRefs), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	detail := decode[response.GameDetail](t, rr)
	assert.Equal(t, "Zelda", detail.Name)
	require.NotNil(t, detail.Publisher)
	assert.Equal(t, "Nintendo", detail.Publisher.Name)
	require.NotNil(t, detail.Developer)
	assert.Equal(t, "Nintendo EPD", detail.Developer.Name)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+itoa(bare), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	detail = decode[response.GameDetail](t, rr)
	assert.Nil(t, detail.Publisher)
	assert.Nil(t, detail.Developer)
	assert.Nil(t, detail.ReleaseDate)

	rr = ts.request(http.MethodGet, "/api/v1/games/999", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, decode[apierr.ErrorResponse](t, rr).Error.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/0", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPurchaseAndLibrary(t *testing.T) {
	ts := newTestServer(t)
	portal := ts.app.AddGame("Portal", 9.99, "", "")
	token := registerAndLogin(t, ts, "bob", "b@x.io")

	rr := ts.request(http.MethodPost, "/api/v1/games/"+itoa(portal)+"/purchase", nil, token)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/api/v1/library", rr.Header().Get("Location"))

	rr = ts.request(http.MethodPost, "/api/v1/games/"+itoa(portal)+"/purchase", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeAlreadyOwned, decode[apierr.ErrorResponse](t, rr).Error.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/4242/purchase", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/library", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	lib := decode[response.Library](t, rr)
	require.Len(t, lib.Items, 1)
	assert.Equal(t, "Portal", lib.Items[0].Game.Name)
	assert.True(t, lib.Items[0].PurchasedAt.Equal(ts.app.MockClock.Now()))
}

func TestGamesByPublisherAndDeveloper(t *testing.T) {
	ts := newTestServer(t)
	zelda := ts.app.AddGame("Zelda", 59.99, "Nintendo", "Nintendo EPD")
	ts.app.AddGame("Portal", 9.99, "Valve", "Valve")

	rr := ts.request(http.MethodGet, "/api/v1/games/"+itoa(zelda), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	detail := decode[response.GameDetail](t, rr)

	rr = ts.request(http.MethodGet, "/api/v1/publishers/"+itoa(model.GameID(detail.Publisher.ID))+"/games", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[response.GameList](t, rr)
	require.Len(t, list.Games, 1)
	assert.Equal(t, "Zelda", list.Games[0].Name)

	rr = ts.request(http.MethodGet, "/api/v1/developers/"+itoa(model.GameID(detail.Developer.ID))+"/games", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[response.GameList](t, rr).Games, 1)

	rr = ts.request(http.MethodGet, "/api/v1/developers/abc/games", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	app := factory.NewTestApp()
	handler := api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		Storefront:  app.Storefront,
		AuthService: app.AuthService,
		CORSOrigins: []string{"https://shop.example"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/games", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "https://shop.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func itoa(id model.GameID) string {
	return strconv.FormatInt(int64(id), 10)
}
