package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"storerating/configs"
	"storerating/pkg/testdb"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "Adm1n!pass"
)

type apiClient struct {
	t *testing.T
	r http.Handler
}

func newAPI(t *testing.T, refreshRole bool) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.New(t)
	log, _ := test.NewNullLogger()
	cfg := &configs.Config{
		JWTSecret:       "routes-secret",
		JWTTTL:          time.Hour,
		AuthRefreshRole: refreshRole,
		CORSOrigins:     []string{"*"},
		RequestTimeout:  5 * time.Second,
		AdminName:       "System Administrator Account",
		AdminEmail:      adminEmail,
		AdminPassword:   adminPassword,
	}
	require.NoError(t, configs.SeedAdmin(db, cfg, log))
	return &apiClient{t: t, r: NewRouter(db, cfg, log)}
}

func (a *apiClient) do(method, path, token string, body any) (int, map[string]any) {
	a.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func (a *apiClient) login(email, password string) string {
	a.t.Helper()
	code, body := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, code, body)
	return body["token"].(string)
}

func TestHealthAndMetrics(t *testing.T) {
	api := newAPI(t, false)

	code, body := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])

	w := httptest.NewRecorder()
	api.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "store_rating_http_requests_total")
}

func TestRegisterAndDuplicate(t *testing.T) {
	api := newAPI(t, false)
	user := gin.H{
		"name":     "Alexandra Catherine Johnson",
		"email":    "alex@example.com",
		"password": "Passw0rd!",
		"address":  "12 Market Street",
	}

	code, body := api.do(http.MethodPost, "/api/auth/register", "", user)
	require.Equal(t, http.StatusCreated, code, body)
	assert.NotEmpty(t, body["token"])
	u := body["user"].(map[string]any)
	assert.Equal(t, "user", u["role"])
	assert.NotContains(t, u, "password")

	code, body = api.do(http.MethodPost, "/api/auth/register", "", user)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "User already exists with this email", body["error"])

	code, body = api.do(http.MethodPost, "/api/auth/register", "", gin.H{"name": "short", "email": "x", "password": "weak"})
	assert.Equal(t, http.StatusBadRequest, code)
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")

	code, _ = api.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alex@example.com", "password": "Wrong!pass1"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestOwnerPromotionAndRatingFlow(t *testing.T) {
	api := newAPI(t, false)
	admin := api.login(adminEmail, adminPassword)

	// admin สร้าง user A กับ rater B
	code, body := api.do(http.MethodPost, "/api/admin/users", admin, gin.H{
		"name": "Owner To Be Promoted Soon", "email": "a@example.com",
		"password": "Owner#123", "address": "1 Owner Way",
	})
	require.Equal(t, http.StatusCreated, code, body)
	code, body = api.do(http.MethodPost, "/api/admin/users", admin, gin.H{
		"name": "Regular Rating Customer", "email": "b@example.com",
		"password": "Rater#123", "address": "2 Rater Way",
	})
	require.Equal(t, http.StatusCreated, code, body)

	staleA := api.login("a@example.com", "Owner#123")

	code, body = api.do(http.MethodPost, "/api/admin/stores", admin, gin.H{
		"name": "Corner Grocery", "email": "grocery@example.com",
		"address": "1 Corner Road", "ownerEmail": "a@example.com",
	})
	require.Equal(t, http.StatusCreated, code, body)
	storeID := body["storeId"].(float64)

	code, _ = api.do(http.MethodPost, "/api/admin/stores", admin, gin.H{
		"name": "Second Shop", "email": "second@example.com",
		"address": "9 Other Road", "ownerEmail": "a@example.com",
	})
	assert.Equal(t, http.StatusConflict, code)

	// token เก่ายังเป็น user จนกว่าจะ login ใหม่
	code, _ = api.do(http.MethodGet, "/api/store-owner/dashboard", staleA, nil)
	assert.Equal(t, http.StatusForbidden, code)

	ownerA := api.login("a@example.com", "Owner#123")
	code, _ = api.do(http.MethodGet, "/api/stores", ownerA, nil)
	assert.Equal(t, http.StatusForbidden, code)

	b := api.login("b@example.com", "Rater#123")
	code, body = api.do(http.MethodPost, "/api/stores/rating", b, gin.H{"storeId": storeID, "rating": 3})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "created", body["result"])

	code, body = api.do(http.MethodPost, "/api/stores/rating", b, gin.H{"storeId": storeID, "rating": 5})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "updated", body["result"])

	code, _ = api.do(http.MethodPost, "/api/stores/rating", b, gin.H{"storeId": storeID, "rating": 6})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = api.do(http.MethodPost, "/api/stores/rating", b, gin.H{"storeId": 999, "rating": 4})
	assert.Equal(t, http.StatusNotFound, code)

	code, body = api.do(http.MethodGet, "/api/stores?sortBy=rating&sortOrder=desc", b, nil)
	require.Equal(t, http.StatusOK, code)
	stores := body["stores"].([]any)
	require.Len(t, stores, 1)
	s := stores[0].(map[string]any)
	assert.Equal(t, 5.0, s["overallRating"])
	assert.Equal(t, 1.0, s["totalRatings"])
	assert.Equal(t, 5.0, s["userRating"])

	code, body = api.do(http.MethodGet, "/api/store-owner/dashboard", ownerA, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, true, body["hasStore"])
	assert.Equal(t, 5.0, body["averageRating"])
	raters := body["ratingUsers"].([]any)
	require.Len(t, raters, 1)
	assert.Equal(t, "b@example.com", raters[0].(map[string]any)["email"])

	code, body = api.do(http.MethodGet, "/api/admin/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3.0, body["totalUsers"])
	assert.Equal(t, 1.0, body["totalStores"])
	assert.Equal(t, 1.0, body["totalRatings"])

	code, body = api.do(http.MethodGet, "/api/admin/users?role=store_owner", admin, nil)
	require.Equal(t, http.StatusOK, code)
	users := body["users"].([]any)
	require.Len(t, users, 1)
	ownerID := users[0].(map[string]any)["id"].(float64)

	code, body = api.do(http.MethodGet, "/api/admin/users/"+strconv.Itoa(int(ownerID)), admin, nil)
	require.Equal(t, http.StatusOK, code)
	detail := body["user"].(map[string]any)
	assert.Equal(t, 5.0, detail["rating"])
	assert.Equal(t, storeID, detail["storeId"])

	code, _ = api.do(http.MethodGet, "/api/admin/users/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = api.do(http.MethodGet, "/api/admin/users/9999", admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRefreshRoleHonorsPromotion(t *testing.T) {
	api := newAPI(t, true)
	admin := api.login(adminEmail, adminPassword)

	code, body := api.do(http.MethodPost, "/api/admin/users", admin, gin.H{
		"name": "Owner To Be Promoted Soon", "email": "a@example.com",
		"password": "Owner#123", "address": "1 Owner Way",
	})
	require.Equal(t, http.StatusCreated, code, body)
	stale := api.login("a@example.com", "Owner#123")

	code, _ = api.do(http.MethodPost, "/api/admin/stores", admin, gin.H{
		"name": "Corner Grocery", "email": "grocery@example.com",
		"address": "1 Corner Road", "ownerEmail": "a@example.com",
	})
	require.Equal(t, http.StatusCreated, code)

	code, _ = api.do(http.MethodGet, "/api/store-owner/dashboard", stale, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodGet, "/api/stores", stale, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestPasswordUpdateAndMe(t *testing.T) {
	api := newAPI(t, false)
	admin := api.login(adminEmail, adminPassword)

	code, body := api.do(http.MethodGet, "/api/auth/me", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "admin", body["user"].(map[string]any)["role"])

	code, _ = api.do(http.MethodPut, "/api/auth/update-password", admin, gin.H{
		"currentPassword": "nope", "newPassword": "N3w!passw",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = api.do(http.MethodPut, "/api/auth/update-password", admin, gin.H{
		"currentPassword": adminPassword, "newPassword": "N3w!passw",
	})
	require.Equal(t, http.StatusOK, code, body)
	api.login(adminEmail, "N3w!passw")

	code, _ = api.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRequestBindingRules(t *testing.T) {
	api := newAPI(t, false)
	admin := api.login(adminEmail, adminPassword)

	code, body := api.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["fields"], "password")

	code, body = api.do(http.MethodPost, "/api/admin/users", admin, gin.H{
		"name": "Owner To Be Promoted Soon", "email": "a@example.com",
		"password": "Owner#123", "role": "superuser",
	})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Role must be one of admin, user, store_owner", body["fields"].(map[string]any)["role"])

	code, body = api.do(http.MethodPost, "/api/admin/stores", admin, gin.H{
		"name": "Corner Grocery", "email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, code)
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "address")

	code, body = api.do(http.MethodPut, "/api/auth/update-password", admin, gin.H{
		"currentPassword": adminPassword, "newPassword": "nouppercase!",
	})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Password must contain at least one uppercase letter and one special character",
		body["fields"].(map[string]any)["newPassword"])

	code, _ = api.do(http.MethodPost, "/api/auth/login", "", "not an object")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRatingBinding(t *testing.T) {
	api := newAPI(t, false)
	admin := api.login(adminEmail, adminPassword)
	code, body := api.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Regular Rating Customer", "email": "b@example.com", "password": "Rater#123",
	})
	require.Equal(t, http.StatusCreated, code, body)
	token := body["token"].(string)

	code, body = api.do(http.MethodPost, "/api/stores/rating", token, gin.H{"rating": 0})
	require.Equal(t, http.StatusBadRequest, code)
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "storeId is required", fields["storeId"])
	assert.Contains(t, fields, "rating")

	code, _ = api.do(http.MethodGet, "/api/admin/dashboard", admin, nil)
	assert.Equal(t, http.StatusOK, code)
}
