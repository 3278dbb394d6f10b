package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/blog-service/internal/api/http"
	"github.com/spec-kit/blog-service/internal/api/http/handlers"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/observability"
	"github.com/spec-kit/blog-service/internal/service"
	"github.com/spec-kit/blog-service/internal/store"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler("blog-service-test", "test"),
		Users:  handlers.NewUsersHandler(service.NewUserService(store.New[domain.User](), bcrypt.MinCost)),
		Posts:  handlers.NewPostsHandler(service.NewPostService(store.New[domain.BlogPost]())),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	status, raw := doRaw(t, app, method, path, body)
	if len(raw) == 0 {
		return status, nil
	}
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return status, decoded
}

func doRaw(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func firstDetail(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	detail, ok := body["detail"].([]any)
	require.True(t, ok, "detail should be an array, got %v", body["detail"])
	require.NotEmpty(t, detail)
	entry, ok := detail[0].(map[string]any)
	require.True(t, ok)
	return entry
}

const janePayload = `{"email": "jane@example.com", "password": "Password1!", "first_name": "Jane"}`

func TestUserLifecycle(t *testing.T) {
	app := newTestApp()

	status, created := doJSON(t, app, http.MethodPost, "/users/", janePayload)
	require.Equal(t, http.StatusCreated, status)
	id, ok := created["id"].(string)
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", created["email"])
	assert.Equal(t, "USER", created["role"])
	assert.Equal(t, true, created["is_active"])
	assert.Equal(t, "Jane", created["first_name"])
	assert.Nil(t, created["last_name"])

	// The password field never appears in any read representation.
	_, present := created["password"]
	assert.False(t, present)

	status, fetched := doJSON(t, app, http.MethodGet, "/users/"+id, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, fetched)
	_, present = fetched["password"]
	assert.False(t, present)

	status, updated := doJSON(t, app, http.MethodPatch, "/users/"+id, `{"first_name": "Janet"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Janet", updated["first_name"])
	// Everything else stays byte-identical.
	assert.Equal(t, created["email"], updated["email"])
	assert.Equal(t, created["role"], updated["role"])
	assert.Equal(t, created["is_active"], updated["is_active"])
	assert.Equal(t, created["last_name"], updated["last_name"])

	status, raw := doRaw(t, app, http.MethodDelete, "/users/"+id, "")
	assert.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, raw)

	status, notFound := doJSON(t, app, http.MethodGet, "/users/"+id, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", notFound["detail"])
}

func TestUserCreateIdempotent(t *testing.T) {
	app := newTestApp()

	status, first := doJSON(t, app, http.MethodPost, "/users/", janePayload)
	require.Equal(t, http.StatusCreated, status)

	status, second := doJSON(t, app, http.MethodPost, "/users/", janePayload)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, first["id"], second["id"])
}

func TestUserCreateValidation(t *testing.T) {
	app := newTestApp()

	status, body := doJSON(t, app, http.MethodPost, "/users/",
		`{"email": "not-an-email", "password": "Password1"}`)
	require.Equal(t, http.StatusUnprocessableEntity, status)

	entry := firstDetail(t, body)
	assert.Equal(t, "value_error", entry["type"])
	assert.Equal(t, []any{"body", "email"}, entry["loc"])
	assert.Equal(t, "not-an-email", entry["input"])
}

func TestUserCreateUnknownField(t *testing.T) {
	app := newTestApp()

	status, body := doJSON(t, app, http.MethodPost, "/users/",
		`{"email": "a@b.co", "password": "Password1", "is_admin": true}`)
	require.Equal(t, http.StatusUnprocessableEntity, status)

	entry := firstDetail(t, body)
	assert.Equal(t, "extra_forbidden", entry["type"])
	assert.Equal(t, []any{"body", "is_admin"}, entry["loc"])
	assert.Equal(t, "Extra inputs are not permitted", entry["msg"])
	assert.Equal(t, true, entry["input"])
}

func TestListUnknownQueryParam(t *testing.T) {
	app := newTestApp()

	for _, path := range []string{"/users/?foo=bar", "/posts/?foo=bar"} {
		status, body := doJSON(t, app, http.MethodGet, path, "")
		require.Equal(t, http.StatusUnprocessableEntity, status, path)

		entry := firstDetail(t, body)
		assert.Equal(t, "value_error", entry["type"])
		assert.Equal(t, []any{"query", "foo"}, entry["loc"])
		assert.Equal(t, "Unknown query parameter", entry["msg"])
		assert.Equal(t, "bar", entry["input"])
	}
}

func TestListLimitOutOfRange(t *testing.T) {
	app := newTestApp()

	status, body := doJSON(t, app, http.MethodGet, "/users/?skip=0&limit=1000", "")
	require.Equal(t, http.StatusUnprocessableEntity, status)

	entry := firstDetail(t, body)
	assert.Equal(t, "less_than_equal", entry["type"])
	assert.Equal(t, []any{"query", "limit"}, entry["loc"])
	assert.Equal(t, "Input should be less than or equal to 100", entry["msg"])

	status, body = doJSON(t, app, http.MethodGet, "/users/?skip=-1", "")
	require.Equal(t, http.StatusUnprocessableEntity, status)
	entry = firstDetail(t, body)
	assert.Equal(t, "greater_than_equal", entry["type"])

	status, body = doJSON(t, app, http.MethodGet, "/users/?limit=abc", "")
	require.Equal(t, http.StatusUnprocessableEntity, status)
	entry = firstDetail(t, body)
	assert.Equal(t, "int_parsing", entry["type"])
}

func TestListPagination(t *testing.T) {
	app := newTestApp()

	emails := []string{"a@x.co", "b@x.co", "c@x.co"}
	for _, e := range emails {
		status, _ := doJSON(t, app, http.MethodPost, "/users/",
			`{"email": "`+e+`", "password": "Password1"}`)
		require.Equal(t, http.StatusCreated, status)
	}

	status, raw := doRaw(t, app, http.MethodGet, "/users/?skip=1&limit=1", "")
	require.Equal(t, http.StatusOK, status)

	var listed []map[string]any
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "b@x.co", listed[0]["email"])
}

func TestMalformedPathID(t *testing.T) {
	app := newTestApp()

	status, body := doJSON(t, app, http.MethodGet, "/users/not-a-uuid", "")
	require.Equal(t, http.StatusUnprocessableEntity, status)

	entry := firstDetail(t, body)
	assert.Equal(t, "uuid_parsing", entry["type"])
	assert.Equal(t, []any{"path", "user_id"}, entry["loc"])
	assert.Equal(t, "not-a-uuid", entry["input"])
}

const postPayload = `{
	"title": "Hi",
	"slug": "hi-there",
	"content": "0123456789",
	"author_id": "a1b2c3d4-e5f6-4890-8234-567890abcdef"
}`

func TestPostCreateScenario(t *testing.T) {
	app := newTestApp()

	status, created := doJSON(t, app, http.MethodPost, "/posts/", postPayload)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, false, created["is_published"])
	assert.Equal(t, created["created_at"], created["updated_at"])
	assert.Nil(t, created["excerpt"])

	// Repeating the identical POST is idempotent by slug.
	status, repeated := doJSON(t, app, http.MethodPost, "/posts/", postPayload)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, created["id"], repeated["id"])
}

func TestPostPublishRefreshesTimestamp(t *testing.T) {
	app := newTestApp()

	status, created := doJSON(t, app, http.MethodPost, "/posts/", postPayload)
	require.Equal(t, http.StatusCreated, status)
	id := created["id"].(string)

	time.Sleep(5 * time.Millisecond)

	status, updated := doJSON(t, app, http.MethodPatch, "/posts/"+id, `{"is_published": true}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, updated["is_published"])
	assert.Equal(t, created["title"], updated["title"])
	assert.Equal(t, created["slug"], updated["slug"])
	assert.Equal(t, created["content"], updated["content"])

	before, err := time.Parse(time.RFC3339Nano, created["updated_at"].(string))
	require.NoError(t, err)
	after, err := time.Parse(time.RFC3339Nano, updated["updated_at"].(string))
	require.NoError(t, err)
	assert.True(t, after.After(before), "updated_at should be strictly greater")
	assert.Equal(t, created["created_at"], updated["created_at"])
}

func TestPostPatchNullKeepsExcerpt(t *testing.T) {
	app := newTestApp()

	payload := `{
		"title": "Hi", "slug": "with-excerpt", "content": "0123456789",
		"author_id": "a1b2c3d4-e5f6-4890-8234-567890abcdef", "excerpt": "A teaser."
	}`
	status, created := doJSON(t, app, http.MethodPost, "/posts/", payload)
	require.Equal(t, http.StatusCreated, status)
	id := created["id"].(string)

	status, updated := doJSON(t, app, http.MethodPatch, "/posts/"+id, `{"excerpt": null}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "A teaser.", updated["excerpt"])
}

func TestPostDeleteThenGet(t *testing.T) {
	app := newTestApp()

	status, created := doJSON(t, app, http.MethodPost, "/posts/", postPayload)
	require.Equal(t, http.StatusCreated, status)
	id := created["id"].(string)

	status, raw := doRaw(t, app, http.MethodDelete, "/posts/"+id, "")
	assert.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, raw)

	status, body := doJSON(t, app, http.MethodGet, "/posts/"+id, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Blog post not found", body["detail"])

	status, _ = doJSON(t, app, http.MethodDelete, "/posts/"+id, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealthProbes(t *testing.T) {
	app := newTestApp()

	status, live := doJSON(t, app, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", live["status"])

	status, ready := doJSON(t, app, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", ready["status"])
}
