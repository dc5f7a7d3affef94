//go:build integration

// Package integration exercises the fully wired HTTP API against an
// in-memory database and redis.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budgetsnap/backend/config"
	"github.com/budgetsnap/backend/internal/infra/dependency"
	"github.com/budgetsnap/backend/internal/integration/persistence/model"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	err = db.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.ReceiptModel{},
		&model.CategoryModel{},
		&model.TipModel{},
		&model.NotificationModel{},
		&model.UserProfileModel{},
		&model.UserSettingsModel{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mini := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Upload.Dir = t.TempDir()
	// No AI credentials in tests; keep the degraded path fast.
	cfg.Gemini.APIKey = ""
	cfg.Gemini.MaxAttempts = 1
	cfg.Gemini.BaseDelay = time.Millisecond
	cfg.Gemini.AttemptTimeout = time.Second

	injector, err := dependency.NewInjector(cfg, db, redisClient, func() bool { return true }, slog.Default())
	if err != nil {
		t.Fatalf("wire dependencies: %v", err)
	}
	if err := injector.SeedSystemCategories(context.Background()); err != nil {
		t.Fatalf("seed categories: %v", err)
	}

	return injector.Router.Setup(cfg.Server.Environment)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var decoded map[string]any
	if len(rec.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, decoded
}

func registerUser(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()

	status, body := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":        email,
		"display_name": "Test User",
		"password":     "correct horse battery",
	})
	if status != http.StatusCreated {
		t.Fatalf("register status = %d, body %v", status, body)
	}
	token, ok := body["access_token"].(string)
	if !ok || token == "" {
		t.Fatalf("register response missing access token: %v", body)
	}
	return token
}

func TestAuthFlow(t *testing.T) {
	engine := newTestServer(t)

	registerUser(t, engine, "flow@example.com")

	status, body := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "flow@example.com",
		"password": "correct horse battery",
	})
	if status != http.StatusOK {
		t.Fatalf("login status = %d, body %v", status, body)
	}
	refresh := body["refresh_token"].(string)

	status, body = doJSON(t, engine, http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{
		"refresh_token": refresh,
	})
	if status != http.StatusOK {
		t.Fatalf("refresh status = %d, body %v", status, body)
	}
	if body["access_token"] == "" {
		t.Fatal("refresh returned no access token")
	}

	status, _ = doJSON(t, engine, http.MethodPost, "/api/v1/auth/logout", "", map[string]any{
		"refresh_token": refresh,
	})
	if status != http.StatusOK {
		t.Fatalf("logout status = %d", status)
	}

	status, _ = doJSON(t, engine, http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{
		"refresh_token": refresh,
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("refresh after logout status = %d, want 401", status)
	}

	status, _ = doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "flow@example.com",
		"password": "wrong password!",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", status)
	}
}

func TestReceiptLifecycle(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "receipts@example.com")

	status, body := doJSON(t, engine, http.MethodPost, "/api/v1/receipts", token, map[string]any{
		"store_name": "Corner Market",
		"date":       "2026-08-20",
		"items": []map[string]any{
			{"name": "Milk", "price": 3.50, "quantity": 2, "category": "food"},
			{"name": "Soap", "price": 2.00, "quantity": 1, "category": "personal"},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, body %v", status, body)
	}
	receiptID := body["id"].(string)
	if got := body["total_amount"].(float64); got != 9.0 {
		t.Fatalf("total_amount = %v, want 9", got)
	}

	status, body = doJSON(t, engine, http.MethodGet, "/api/v1/receipts", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	if got := body["count"].(float64); got != 1 {
		t.Fatalf("count = %v, want 1", got)
	}

	status, body = doJSON(t, engine, http.MethodPut, "/api/v1/receipts/"+receiptID, token, map[string]any{
		"store_name": "Corner Market East",
	})
	if status != http.StatusOK {
		t.Fatalf("update status = %d, body %v", status, body)
	}
	if body["store_name"] != "Corner Market East" {
		t.Fatalf("store_name = %v after update", body["store_name"])
	}

	status, _ = doJSON(t, engine, http.MethodDelete, "/api/v1/receipts/"+receiptID, token, nil)
	if status != http.StatusNoContent {
		t.Fatalf("delete status = %d", status)
	}

	status, _ = doJSON(t, engine, http.MethodGet, "/api/v1/receipts/"+receiptID, token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", status)
	}
}

func TestReceiptsRequireAuth(t *testing.T) {
	engine := newTestServer(t)

	status, _ := doJSON(t, engine, http.MethodGet, "/api/v1/receipts", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list status = %d, want 401", status)
	}
}

func TestScanFallsBackWithoutAI(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "scan@example.com")

	status, body := doJSON(t, engine, http.MethodPost, "/api/v1/scan/text", token, map[string]any{
		"text": "CORNER MARKET\nMilk 3.50\nTOTAL 3.50",
	})
	if status != http.StatusOK {
		t.Fatalf("scan status = %d, body %v", status, body)
	}
	if body["manual_entry_required"] != true {
		t.Fatalf("manual_entry_required = %v, want true without AI", body["manual_entry_required"])
	}

	// Extraction alone persists nothing.
	status, body = doJSON(t, engine, http.MethodGet, "/api/v1/receipts", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	if got := body["count"].(float64); got != 0 {
		t.Fatalf("receipt count after scan = %v, want 0", got)
	}
}

func TestUploadPersistsAndNotifies(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "upload@example.com")

	status, body := doJSON(t, engine, http.MethodPost, "/api/v1/receipts/upload", token, map[string]any{
		"image":      "aGVsbG8=",
		"image_type": "image/png",
	})
	if status != http.StatusCreated {
		t.Fatalf("upload status = %d, body %v", status, body)
	}
	if body["manual_entry_required"] != true {
		t.Fatalf("manual_entry_required = %v, want true without AI", body["manual_entry_required"])
	}
	created, ok := body["receipt"].(map[string]any)
	if !ok || created["id"] == "" {
		t.Fatalf("upload response missing receipt: %v", body)
	}

	// A degraded upload still persists a receipt and raises a notification.
	status, body = doJSON(t, engine, http.MethodGet, "/api/v1/receipts", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	if got := body["count"].(float64); got != 1 {
		t.Fatalf("receipt count after upload = %v, want 1", got)
	}

	status, body = doJSON(t, engine, http.MethodGet, "/api/v1/notifications", token, nil)
	if status != http.StatusOK {
		t.Fatalf("notifications status = %d", status)
	}
	if got := body["unread_count"].(float64); got < 1 {
		t.Fatalf("unread_count = %v, want at least 1", got)
	}
	first := body["notifications"].([]any)[0].(map[string]any)

	status, _ = doJSON(t, engine, http.MethodPatch,
		"/api/v1/notifications/"+first["id"].(string)+"/read", token, nil)
	if status != http.StatusOK {
		t.Fatalf("mark read status = %d", status)
	}

	status, body = doJSON(t, engine, http.MethodGet, "/api/v1/notifications/unread-count", token, nil)
	if status != http.StatusOK {
		t.Fatalf("unread-count status = %d", status)
	}
	if got := body["unread_count"].(float64); got != 0 {
		t.Fatalf("unread_count after mark read = %v, want 0", got)
	}
}

func TestCategoriesSeededAndScoped(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "categories@example.com")

	status, body := doJSON(t, engine, http.MethodGet, "/api/v1/categories", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	seeded := body["categories"].([]any)
	if len(seeded) != 10 {
		t.Fatalf("seeded categories = %d, want 10", len(seeded))
	}

	status, body = doJSON(t, engine, http.MethodPost, "/api/v1/categories", token, map[string]any{
		"name":   "coffee",
		"color":  "#A855F7",
		"budget": 60.0,
	})
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, body %v", status, body)
	}
	customID := body["id"].(string)

	// System categories are shared and cannot be removed.
	var systemID string
	for _, raw := range seeded {
		cat := raw.(map[string]any)
		if cat["is_system"] == true {
			systemID = cat["id"].(string)
			break
		}
	}
	status, _ = doJSON(t, engine, http.MethodDelete, "/api/v1/categories/"+systemID, token, nil)
	if status != http.StatusForbidden {
		t.Fatalf("delete system category status = %d, want 403", status)
	}

	status, _ = doJSON(t, engine, http.MethodDelete, "/api/v1/categories/"+customID, token, nil)
	if status != http.StatusNoContent {
		t.Fatalf("delete custom category status = %d", status)
	}
}

func TestAnalyticsSummary(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "analytics@example.com")

	today := time.Now().UTC().Format("2006-01-02")
	status, body := doJSON(t, engine, http.MethodPost, "/api/v1/receipts", token, map[string]any{
		"store_name": "Grocer",
		"date":       today,
		"items": []map[string]any{
			{"name": "Bread", "price": 4.00, "quantity": 1, "category": "food"},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create receipt status = %d, body %v", status, body)
	}

	status, body = doJSON(t, engine, http.MethodGet, "/api/v1/analytics/spending?period=month", token, nil)
	if status != http.StatusOK {
		t.Fatalf("summary status = %d", status)
	}
	if got := body["total"].(float64); got != 4.0 {
		t.Fatalf("total = %v, want 4", got)
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7).Format("2006-01-02")
	status, body = doJSON(t, engine, http.MethodGet,
		"/api/v1/analytics/spending?start_date="+weekAgo+"&end_date="+today, token, nil)
	if status != http.StatusOK {
		t.Fatalf("explicit range status = %d", status)
	}
	if got := body["total"].(float64); got != 4.0 {
		t.Fatalf("explicit range total = %v, want 4", got)
	}

	status, body = doJSON(t, engine, http.MethodGet, "/api/v1/analytics/categories?period=month", token, nil)
	if status != http.StatusOK {
		t.Fatalf("breakdown status = %d", status)
	}
	shares := body["categories"].([]any)
	if len(shares) != 1 {
		t.Fatalf("category shares = %d, want 1", len(shares))
	}

	status, _ = doJSON(t, engine, http.MethodGet, "/api/v1/analytics/spending?period=decade", token, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("invalid period status = %d, want 400", status)
	}
}

func TestProfileAndSettings(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "profile@example.com")

	status, body := doJSON(t, engine, http.MethodGet, "/api/v1/profile", token, nil)
	if status != http.StatusOK {
		t.Fatalf("get profile status = %d", status)
	}
	if body["email"] != "profile@example.com" {
		t.Fatalf("profile email = %v", body["email"])
	}

	status, body = doJSON(t, engine, http.MethodPut, "/api/v1/profile", token, map[string]any{
		"display_name": "Budget Hawk",
	})
	if status != http.StatusOK {
		t.Fatalf("update profile status = %d, body %v", status, body)
	}
	if body["display_name"] != "Budget Hawk" {
		t.Fatalf("display_name = %v after update", body["display_name"])
	}

	status, body = doJSON(t, engine, http.MethodPost, "/api/v1/profile/avatar", token, map[string]any{
		"image":      "aGVsbG8=",
		"image_type": "image/png",
	})
	if status != http.StatusOK {
		t.Fatalf("avatar upload status = %d, body %v", status, body)
	}
	if url, _ := body["avatar_url"].(string); url == "" {
		t.Fatalf("avatar_url missing: %v", body)
	}

	status, body = doJSON(t, engine, http.MethodPut, "/api/v1/profile/budget", token, map[string]any{
		"monthly_budget": 1200.0,
		"budget_targets": map[string]float64{"food": 400},
	})
	if status != http.StatusOK {
		t.Fatalf("update budget status = %d, body %v", status, body)
	}
	if got := body["monthly_budget"].(float64); got != 1200.0 {
		t.Fatalf("monthly_budget = %v", got)
	}

	status, body = doJSON(t, engine, http.MethodPut, "/api/v1/settings", token, map[string]any{
		"theme":    "dark",
		"currency": "EUR",
	})
	if status != http.StatusOK {
		t.Fatalf("update settings status = %d, body %v", status, body)
	}
	if body["theme"] != "dark" || body["currency"] != "EUR" {
		t.Fatalf("settings = %v/%v after update", body["theme"], body["currency"])
	}

	status, body = doJSON(t, engine, http.MethodPut, "/api/v1/settings/notifications", token, map[string]any{
		"email":         false,
		"push":          true,
		"budget_alerts": true,
	})
	if status != http.StatusOK {
		t.Fatalf("update notification settings status = %d, body %v", status, body)
	}
	toggles := body["notifications"].(map[string]any)
	if toggles["email"] != false || toggles["push"] != true {
		t.Fatalf("notification toggles = %v after update", toggles)
	}

	status, _ = doJSON(t, engine, http.MethodPut, "/api/v1/settings", token, map[string]any{
		"theme": "sepia",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("invalid theme status = %d, want 400", status)
	}
}

func TestTipsServeStaticSetWithoutAI(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "tips@example.com")

	status, body := doJSON(t, engine, http.MethodGet, "/api/v1/tips?limit=3", token, nil)
	if status != http.StatusOK {
		t.Fatalf("tips status = %d", status)
	}
	tips := body["tips"].([]any)
	if len(tips) == 0 || len(tips) > 3 {
		t.Fatalf("tips count = %d, want 1..3", len(tips))
	}
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestServer(t)

	status, body := doJSON(t, engine, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK {
		t.Fatalf("health status = %d", status)
	}
	if body["database"] != "connected" {
		t.Fatalf("database health = %v, want connected", body["database"])
	}
	if body["ai"] != "unconfigured" {
		t.Fatalf("ai availability = %v, want unconfigured without API key", body["ai"])
	}
}
