package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/mkoster/tally/internal/store"
)

type habitPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	CheckIns    []string `json:"checkIns"`
	OwnerID     *string  `json:"ownerId"`
	Streak      int      `json:"streak"`
}

type sessionPayload struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

func newTestApp(t *testing.T) (*fiber.App, store.Store) {
	t.Helper()

	documents, err := store.NewFileStore(filepath.Join(t.TempDir(), "tally-test.json"))
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, NewHandler(documents, "test-secret-key"))
	return app, documents
}

func jsonRequest(t *testing.T, method string, path string, token string, body any) *http.Request {
	t.Helper()

	var buffer bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buffer).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	request := httptest.NewRequest(method, path, &buffer)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func decodeBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func registerTestUser(t *testing.T, app *fiber.App, email string) sessionPayload {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": "Correct1Horse",
	})
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected register status 200, got %d", response.StatusCode)
	}

	var session sessionPayload
	decodeBody(t, response, &session)
	if session.Token == "" {
		t.Fatalf("expected register to issue a token")
	}
	return session
}

func createTestHabit(t *testing.T, app *fiber.App, token string, name string) habitPayload {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/habits", token, map[string]string{"name": name})
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("create habit request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected create status 201, got %d", response.StatusCode)
	}

	var habit habitPayload
	decodeBody(t, response, &habit)
	return habit
}
