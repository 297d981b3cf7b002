package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/provider"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupRouterForTest(t *testing.T) (*gin.Engine, *provider.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	models.DB = db
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.JWT.SecretKey = "router-test-admin-secret-0123456789abcdef"
	cfg.JWT.ExpireHours = 1
	cfg.UserJWT.SecretKey = "router-test-user-secret-0123456789abcdef"
	cfg.UserJWT.ExpireHours = 1
	cfg.Blog.PageSize = 10

	container := provider.NewContainer(cfg)
	return SetupRouter(cfg, container), container
}

func registerRouterTestUser(t *testing.T, c *provider.Container, username string) (*models.User, string) {
	t.Helper()
	user, err := c.UserAuthService.Register(service.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "Strong-Pass-1",
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", username, err)
	}
	token, _, err := c.UserAuthService.GenerateUserJWT(user, 1)
	if err != nil {
		t.Fatalf("token for %s failed: %v", username, err)
	}
	return user, token
}

func TestAnonymousWriteRedirectsToLogin(t *testing.T) {
	r, _ := setupRouterForTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(`{"title":"x","text":"y"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status want 302 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/api/v1/auth/login" {
		t.Fatalf("location want /api/v1/auth/login got %s", loc)
	}
}

func TestForeignPostMutationRedirectsToDetail(t *testing.T) {
	r, c := setupRouterForTest(t)

	author, _ := registerRouterTestUser(t, c, "routeauthor")
	_, intruderToken := registerRouterTestUser(t, c, "routeintruder")

	post, err := c.PostService.Create(author.ID, service.PostMutationInput{
		Title:   "Mine",
		Text:    "Body",
		PubDate: time.Now().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", post.ID), strings.NewReader(`{"title":"Taken","text":"Over"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+intruderToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status want 303 got %d", w.Code)
	}
	wantLoc := fmt.Sprintf("/api/v1/posts/%d", post.ID)
	if loc := w.Header().Get("Location"); loc != wantLoc {
		t.Fatalf("location want %s got %s", wantLoc, loc)
	}

	var kept models.Post
	if err := models.DB.First(&kept, post.ID).Error; err != nil {
		t.Fatalf("reload post failed: %v", err)
	}
	if kept.Title != "Mine" {
		t.Fatalf("denied edit must not change the post, title got %s", kept.Title)
	}
}

func TestListingPageFallsBackToFirst(t *testing.T) {
	r, c := setupRouterForTest(t)

	author, _ := registerRouterTestUser(t, c, "routelister")
	for i := 0; i < 3; i++ {
		if _, err := c.PostService.Create(author.ID, service.PostMutationInput{
			Title:   fmt.Sprintf("Post %d", i),
			Text:    "Body",
			PubDate: time.Now().Add(-time.Duration(i+1) * time.Hour),
		}); err != nil {
			t.Fatalf("create post failed: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts?page=abc", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
		Pagination struct {
			Page  int   `json:"page"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Pagination.Page != 1 {
		t.Fatalf("garbage page param should resolve to page 1, got %d", resp.Pagination.Page)
	}
	if resp.Pagination.Total != 3 {
		t.Fatalf("total want 3 got %d", resp.Pagination.Total)
	}
}

func TestHiddenPostDetailAnswersNotFound(t *testing.T) {
	r, c := setupRouterForTest(t)

	author, authorToken := registerRouterTestUser(t, c, "routedrafter")
	hidden := false
	post, err := c.PostService.Create(author.ID, service.PostMutationInput{
		Title:       "Draft",
		Text:        "Not ready",
		PubDate:     time.Now().Add(-time.Hour),
		IsPublished: &hidden,
	})
	if err != nil {
		t.Fatalf("create draft failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", post.ID), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("hidden post for a stranger wants 404, got %d", resp.StatusCode)
	}

	// The author keeps seeing their own draft.
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", post.ID), nil)
	req2.Header.Set("Authorization", "Bearer "+authorToken)
	r.ServeHTTP(w2, req2)

	var resp2 struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &resp2); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp2.StatusCode != 0 {
		t.Fatalf("author should see own draft, got status_code %d", resp2.StatusCode)
	}
}
