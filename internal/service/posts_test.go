package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/David-H-L/Backend/internal/apperr"
	"github.com/David-H-L/Backend/internal/auth"
	"github.com/David-H-L/Backend/internal/models"
	"github.com/David-H-L/Backend/internal/query"
)

func newPostEnv(t *testing.T) (*PostService, *UserService) {
	t.Helper()
	stores := testStores(t)
	tokens := auth.NewManager("test-secret", time.Hour)
	return NewPostService(stores.Posts, stores.Users), NewUserService(stores.Users, tokens)
}

func TestCreatePost(t *testing.T) {
	posts, users := newPostEnv(t)
	ctx := context.Background()
	owner := seedUser(t, users, "")

	post, err := posts.Create(ctx, owner.ID, CreatePostInput{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Status != models.PostActive {
		t.Fatalf("status = %q, want ACTIVE", post.Status)
	}
	if post.TotalVotes != 0 {
		t.Fatalf("totalVotes = %d, want 0", post.TotalVotes)
	}
	if post.ID == 0 {
		t.Fatal("expected assigned id")
	}
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	posts, _ := newPostEnv(t)
	_, err := posts.Create(context.Background(), "2c1f0a30-0000-4000-8000-000000000000",
		CreatePostInput{Title: "T", Content: "C"})
	wantKind(t, err, apperr.NotFound)
}

func TestCreatePostValidation(t *testing.T) {
	posts, users := newPostEnv(t)
	ctx := context.Background()
	owner := seedUser(t, users, "")

	if _, err := posts.Create(ctx, owner.ID, CreatePostInput{Title: "", Content: "C"}); apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("missing title: got %v", err)
	}
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := posts.Create(ctx, owner.ID, CreatePostInput{Title: string(long), Content: "C"}); apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("long title: got %v", err)
	}
}

func TestCreatePostAccentedTitleLength(t *testing.T) {
	posts, users := newPostEnv(t)
	ctx := context.Background()
	owner := seedUser(t, users, "")

	// 255 characters but 510 bytes; the bound counts characters.
	title := strings.Repeat("ñ", 255)
	if _, err := posts.Create(ctx, owner.ID, CreatePostInput{Title: title, Content: "C"}); err != nil {
		t.Fatalf("255-char accented title: %v", err)
	}
	if _, err := posts.Create(ctx, owner.ID, CreatePostInput{Title: title + "ñ", Content: "C"}); apperr.KindOf(err) != apperr.Validation {
		t.Fatal("256-char title accepted")
	}
}

func TestUpdatePostEmptyField(t *testing.T) {
	posts, users := newPostEnv(t)
	ctx := context.Background()
	owner := seedUser(t, users, "")
	p, err := posts.Create(ctx, owner.ID, CreatePostInput{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	empty := ""
	_, err = posts.Update(ctx, p.ID, owner.ID, UpdatePostInput{Title: &empty})
	wantKind(t, err, apperr.Validation)
	if got := apperr.MessageOf(err); got != "Title cannot be empty" {
		t.Fatalf("message = %q", got)
	}
}

func TestListPostsDefaultsToActive(t *testing.T) {
	posts, users := newPostEnv(t)
	ctx := context.Background()
	owner := seedUser(t, users, "")

	p1, _ := posts.Create(ctx, owner.ID, CreatePostInput{Title: "keep", Content: "C"})
	p2, _ := posts.Create(ctx, owner.ID, CreatePostInput{Title: "drop", Content: "C"})
	if _, err := posts.Delete(ctx, p2.ID, owner.ID, false); err != nil {
		t.Fatalf("delete: %v", err)
	}

	page, err := posts.List(ctx, query.PostFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Posts) != 1 || page.Posts[0].ID != p1.ID {
		t.Fatalf("expected only the active post, got %d posts", len(page.Posts))
	}
	for _, p := range page.Posts {
		if p.Status != models.PostActive {
			t.Fatalf("unexpected status %q in default listing", p.Status)
		}
	}

	// The deleted post is still reachable when asked for explicitly.
	page, err = posts.List(ctx, query.PostFilter{Status: models.PostDeleted})
	if err != nil {
		t.Fatalf("list deleted: %v", err)
	}
	if len(page.Posts) != 1 || page.Posts[0].ID != p2.ID {
		t.Fatalf("expected the deleted post, got %d posts", len(page.Posts))
	}
}

func TestListPostsPopularSort(t *testing.T) {
	posts, users := newPostEnv(t)
	ctx := context.Background()
	owner := seedUser(t, users, "")

	votes := []int{5, 10, 3}
	for i, v := range votes {
		p, err := posts.Create(ctx, owner.ID, CreatePostInput{Title: fmt.Sprintf("p%d", i), Content: "C"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		// Vote counts are set out of band; no API operation changes them.
		if _, err := posts.posts.Update(ctx, p.ID, owner.ID, map[string]any{"total_votes": v}); err != nil {
			t.Fatalf("set votes: %v", err)
		}
	}

	page, err := posts.List(ctx, query.PostFilter{Sort: query.SortPopular, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Posts) != 2 {
		t.Fatalf("len = %d, want 2", len(page.Posts))
	}
	if page.Posts[0].TotalVotes != 10 || page.Posts[1].TotalVotes != 5 {
		t.Fatalf("order = [%d, %d], want [10, 5]", page.Posts[0].TotalVotes, page.Posts[1].TotalVotes)
	}
	if page.Meta.Total != 3 || page.Meta.TotalPages != 2 {
		t.Fatalf("meta = %+v", page.Meta)
	}
}

func TestListPostsPagination(t *testing.T) {
	posts, users := newPostEnv(t)
	ctx := context.Background()
	owner := seedUser(t, users, "")
	for i := 0; i < 5; i++ {
		if _, err := posts.Create(ctx, owner.ID, CreatePostInput{Title: fmt.Sprintf("p%d", i), Content: "C"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, err := posts.List(ctx, query.PostFilter{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Posts) != 2 {
		t.Fatalf("len = %d, want 2", len(page.Posts))
	}
	if page.Meta.Page != 2 || page.Meta.Limit != 2 || page.Meta.Total != 5 || page.Meta.TotalPages != 3 {
		t.Fatalf("meta = %+v", page.Meta)
	}

	// Past the last page: valid request, empty set.
	page, err = posts.List(ctx, query.PostFilter{Page: 9, Limit: 2})
	if err != nil {
		t.Fatalf("list past end: %v", err)
	}
	if len(page.Posts) != 0 {
		t.Fatalf("len = %d, want 0", len(page.Posts))
	}
}

func TestUpdatePostOwnership(t *testing.T) {
	posts, users := newPostEnv(t)
	ctx := context.Background()
	owner := seedUser(t, users, "")
	other := seedUser(t, users, "")

	post, err := posts.Create(ctx, owner.ID, CreatePostInput{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "changed"
	_, err = posts.Update(ctx, post.ID, other.ID, UpdatePostInput{Title: &title})
	wantKind(t, err, apperr.Authorization)

	// Admins get no update override either.
	admin := seedUser(t, users, "admin")
	_, err = posts.Update(ctx, post.ID, admin.ID, UpdatePostInput{Title: &title})
	wantKind(t, err, apperr.Authorization)

	affected, err := posts.Update(ctx, post.ID, owner.ID, UpdatePostInput{Title: &title})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected = %d, want 1", affected)
	}
	got, _ := posts.Get(ctx, post.ID)
	if got.Title != "changed" {
		t.Fatalf("title = %q", got.Title)
	}
}

func TestDeletePostAuthorization(t *testing.T) {
	posts, users := newPostEnv(t)
	ctx := context.Background()
	owner := seedUser(t, users, "")
	other := seedUser(t, users, "")
	admin := seedUser(t, users, "admin")

	post, err := posts.Create(ctx, owner.ID, CreatePostInput{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = posts.Delete(ctx, post.ID, other.ID, false)
	wantKind(t, err, apperr.Authorization)
	got, _ := posts.Get(ctx, post.ID)
	if got.Status != models.PostActive {
		t.Fatalf("status changed to %q after denied delete", got.Status)
	}

	// Admin may delete someone else's post.
	affected, err := posts.Delete(ctx, post.ID, admin.ID, true)
	if err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected = %d, want 1", affected)
	}
	got, _ = posts.Get(ctx, post.ID)
	if got.Status != models.PostDeleted {
		t.Fatalf("status = %q, want DELETED", got.Status)
	}
}

func TestDeletePostMissing(t *testing.T) {
	posts, users := newPostEnv(t)
	owner := seedUser(t, users, "")
	_, err := posts.Delete(context.Background(), 999, owner.ID, false)
	wantKind(t, err, apperr.NotFound)
}
