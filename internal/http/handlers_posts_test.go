package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/David-H-L/Backend/internal/auth"
	"github.com/David-H-L/Backend/internal/models"
	"github.com/David-H-L/Backend/internal/service"
	"github.com/David-H-L/Backend/internal/store"
	"github.com/David-H-L/Backend/internal/ws"
)

type testApp struct {
	router *gin.Engine
	stores store.Stores
	tokens *auth.Manager
	users  *service.UserService
	posts  *service.PostService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Vote{}, &models.Message{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	stores := store.NewGorm(db)
	tokens := auth.NewManager("test-secret", time.Hour)
	hub := ws.NewHub()
	go hub.Run()

	api := &API{
		Posts: service.NewPostService(stores.Posts, stores.Users),
		Users: service.NewUserService(stores.Users, tokens),
		Votes: service.NewVoteService(stores.Votes),
		Chat:  service.NewChatService(stores.Messages, stores.Users, hub),
	}
	router := gin.New()
	Setup(router, api, hub, tokens, "*")

	return &testApp{
		router: router,
		stores: stores,
		tokens: tokens,
		users:  api.Users,
		posts:  api.Posts,
	}
}

var emailSeq int

func (app *testApp) signup(t *testing.T, role string) (*models.User, string) {
	t.Helper()
	emailSeq++
	u, err := app.users.Create(context.Background(), service.CreateUserInput{
		FirstName:        "Test",
		LastName:         "User",
		PhoneNumber:      "5551234567",
		PhoneCountryCode: "+56",
		Country:          "Chile",
		City:             "Santiago",
		Email:            fmt.Sprintf("h%d@example.com", emailSeq),
		Role:             role,
		Password:         "s3cret",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	token, err := app.tokens.Generate(u.ID, u.Role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return u, token
}

func (app *testApp) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope (%d): %v: %s", rec.Code, err, rec.Body.String())
	}
	return rec, env
}

func TestCreatePostEndpoint(t *testing.T) {
	app := newTestApp(t)
	_, token := app.signup(t, "")

	rec, env := app.do(t, http.MethodPost, "/api/v1/posts", token,
		map[string]string{"title": "T", "content": "C"})
	if rec.Code != http.StatusCreated || !env.OK {
		t.Fatalf("status = %d, env = %+v", rec.Code, env)
	}

	data, _ := json.Marshal(env.Data)
	var post models.Post
	if err := json.Unmarshal(data, &post); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if post.Status != models.PostActive || post.TotalVotes != 0 {
		t.Fatalf("post = %+v", post)
	}
}

func TestCreatePostRequiresAuth(t *testing.T) {
	app := newTestApp(t)
	rec, env := app.do(t, http.MethodPost, "/api/v1/posts", "",
		map[string]string{"title": "T", "content": "C"})
	if rec.Code != http.StatusUnauthorized || env.OK {
		t.Fatalf("status = %d, env = %+v", rec.Code, env)
	}
}

func TestGetPostsPopularSortEndpoint(t *testing.T) {
	app := newTestApp(t)
	owner, _ := app.signup(t, "")
	ctx := context.Background()

	for i, votes := range []int{5, 10, 3} {
		p, err := app.posts.Create(ctx, owner.ID, service.CreatePostInput{
			Title: fmt.Sprintf("p%d", i), Content: "C",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := app.stores.Posts.Update(ctx, p.ID, owner.ID, map[string]any{"total_votes": votes}); err != nil {
			t.Fatalf("set votes: %v", err)
		}
	}

	rec, env := app.do(t, http.MethodGet, "/api/v1/posts?sort=popular&limit=2", "", nil)
	if rec.Code != http.StatusOK || !env.OK {
		t.Fatalf("status = %d, env = %+v", rec.Code, env)
	}

	data, _ := json.Marshal(env.Data)
	var page service.PostPage
	if err := json.Unmarshal(data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Posts) != 2 {
		t.Fatalf("len = %d, want 2", len(page.Posts))
	}
	if page.Posts[0].TotalVotes != 10 || page.Posts[1].TotalVotes != 5 {
		t.Fatalf("order = [%d, %d], want [10, 5]",
			page.Posts[0].TotalVotes, page.Posts[1].TotalVotes)
	}
	if page.Meta.Total != 3 || page.Meta.Limit != 2 || page.Meta.TotalPages != 2 {
		t.Fatalf("meta = %+v", page.Meta)
	}
}

func TestDeletePostByNonOwnerEndpoint(t *testing.T) {
	app := newTestApp(t)
	owner, _ := app.signup(t, "")
	_, intruderToken := app.signup(t, "")
	ctx := context.Background()

	post, err := app.posts.Create(ctx, owner.ID, service.CreatePostInput{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec, env := app.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", post.ID), intruderToken, nil)
	if rec.Code != http.StatusForbidden || env.OK {
		t.Fatalf("status = %d, env = %+v", rec.Code, env)
	}

	got, err := app.posts.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.PostActive {
		t.Fatalf("status changed to %q", got.Status)
	}
}

func TestDeletePostByAdminEndpoint(t *testing.T) {
	app := newTestApp(t)
	owner, _ := app.signup(t, "")
	_, adminToken := app.signup(t, "admin")
	ctx := context.Background()

	post, err := app.posts.Create(ctx, owner.ID, service.CreatePostInput{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec, env := app.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", post.ID), adminToken, nil)
	if rec.Code != http.StatusOK || !env.OK {
		t.Fatalf("status = %d, env = %+v", rec.Code, env)
	}
	got, _ := app.posts.Get(ctx, post.ID)
	if got.Status != models.PostDeleted {
		t.Fatalf("status = %q, want DELETED", got.Status)
	}
}

func TestDuplicateEmailEndpoint(t *testing.T) {
	app := newTestApp(t)
	body := map[string]string{
		"firstName":        "Ana",
		"lastName":         "Pérez",
		"phoneNumber":      "5551234567",
		"phoneCountryCode": "+56",
		"country":          "Chile",
		"city":             "Santiago",
		"email":            "dup@example.com",
		"password":         "hunter2",
	}
	rec, env := app.do(t, http.MethodPost, "/api/v1/users", "", body)
	if rec.Code != http.StatusCreated || !env.OK {
		t.Fatalf("first signup: status = %d, env = %+v", rec.Code, env)
	}
	rec, env = app.do(t, http.MethodPost, "/api/v1/users", "", body)
	if rec.Code != http.StatusConflict || env.OK {
		t.Fatalf("duplicate signup: status = %d, env = %+v", rec.Code, env)
	}
}

func TestUpdateUserRoleEndpoint(t *testing.T) {
	app := newTestApp(t)
	target, targetToken := app.signup(t, "")
	_, adminToken := app.signup(t, "admin")

	body := map[string]string{"role": "admin"}
	rec, env := app.do(t, http.MethodPatch, "/api/v1/users/"+target.ID, targetToken, body)
	if rec.Code != http.StatusForbidden || env.OK {
		t.Fatalf("self promotion: status = %d, env = %+v", rec.Code, env)
	}

	rec, env = app.do(t, http.MethodPatch, "/api/v1/users/"+target.ID, adminToken, body)
	if rec.Code != http.StatusOK || !env.OK {
		t.Fatalf("admin promotion: status = %d, env = %+v", rec.Code, env)
	}
	got, err := app.users.Get(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Fatalf("role = %q, want admin", got.Role)
	}
}

func TestProfileEndpoint(t *testing.T) {
	app := newTestApp(t)
	u, token := app.signup(t, "")

	rec, env := app.do(t, http.MethodGet, "/api/v1/profile", token, nil)
	if rec.Code != http.StatusOK || !env.OK {
		t.Fatalf("status = %d, env = %+v", rec.Code, env)
	}
	data, _ := json.Marshal(env.Data)
	var got models.User
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("id = %q, want %q", got.ID, u.ID)
	}
	if bytes.Contains(data, []byte("s3cret")) {
		t.Fatal("password leaked in response")
	}
}

func TestUnknownRouteEnvelope(t *testing.T) {
	app := newTestApp(t)
	rec, env := app.do(t, http.MethodGet, "/api/v1/nothing-here", "", nil)
	if rec.Code != http.StatusNotFound || env.OK {
		t.Fatalf("status = %d, env = %+v", rec.Code, env)
	}
}
