package service

import (
	"context"
	"errors"
	"log"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/David-H-L/Backend/internal/apperr"
	"github.com/David-H-L/Backend/internal/models"
	"github.com/David-H-L/Backend/internal/query"
	"github.com/David-H-L/Backend/internal/store"
)

const (
	maxTitleLength   = 255
	maxContentLength = 10000
)

// PostService orchestrates post lifecycle and listing.
type PostService struct {
	posts store.PostStore
	users store.UserStore
}

func NewPostService(posts store.PostStore, users store.UserStore) *PostService {
	return &PostService{posts: posts, users: users}
}

type CreatePostInput struct {
	Title   string
	Content string
}

// Create validates the input, requires the author to exist, and
// stores a new ACTIVE post with zero votes.
func (s *PostService) Create(ctx context.Context, userID string, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, apperr.New(apperr.Validation, "Missing required fields: title, content")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLength {
		return nil, apperr.New(apperr.Validation, "Title must be 255 characters or less")
	}
	if utf8.RuneCountInString(in.Content) > maxContentLength {
		return nil, apperr.New(apperr.Validation, "Content must be 10,000 characters or less")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		log.Printf("post create: author lookup: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error creating post", err)
	}

	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		UserID:     userID,
		TotalVotes: 0,
		Status:     models.PostActive,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		log.Printf("post create: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error creating post", err)
	}
	return post, nil
}

// PostPage is a listing window plus its pagination metadata.
type PostPage struct {
	Posts []models.Post        `json:"posts"`
	Meta  query.PaginationMeta `json:"meta"`
}

// List returns the filtered, sorted, paginated posts. Status defaults
// to ACTIVE, so soft-deleted and flagged posts stay out of listings
// unless a caller asks for them explicitly.
func (s *PostService) List(ctx context.Context, f query.PostFilter) (*PostPage, error) {
	posts, total, err := s.posts.List(ctx, f)
	if err != nil {
		log.Printf("post list: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error fetching posts", err)
	}
	page, limit, _ := query.Window(f.Page, f.Limit)
	if posts == nil {
		posts = []models.Post{}
	}
	return &PostPage{Posts: posts, Meta: query.Meta(page, limit, total)}, nil
}

// Get loads a post with its author.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Post not found")
		}
		log.Printf("post get: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error fetching post", err)
	}
	return post, nil
}

type UpdatePostInput struct {
	Title   *string
	Content *string
}

// Update re-validates the provided fields, checks ownership, then
// applies the change. The read and the write are separate store
// calls; the write re-checks ownership in its predicate.
func (s *PostService) Update(ctx context.Context, id uint, actorID string, in UpdatePostInput) (int64, error) {
	fields := map[string]any{}
	if in.Title != nil {
		if *in.Title == "" {
			return 0, apperr.New(apperr.Validation, "Title cannot be empty")
		}
		if utf8.RuneCountInString(*in.Title) > maxTitleLength {
			return 0, apperr.New(apperr.Validation, "Title must be 255 characters or less")
		}
		fields["title"] = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return 0, apperr.New(apperr.Validation, "Content cannot be empty")
		}
		if utf8.RuneCountInString(*in.Content) > maxContentLength {
			return 0, apperr.New(apperr.Validation, "Content must be 10,000 characters or less")
		}
		fields["content"] = *in.Content
	}
	if len(fields) == 0 {
		return 0, apperr.New(apperr.Validation, "No fields to update")
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.New(apperr.NotFound, "Post not found")
		}
		log.Printf("post update: lookup: %v", err)
		return 0, apperr.Wrap(apperr.Internal, "Error updating post", err)
	}
	if !CanUpdatePost(actorID, post.UserID) {
		return 0, apperr.New(apperr.Authorization, "Unauthorized: You can only update your own posts")
	}

	affected, err := s.posts.Update(ctx, id, actorID, fields)
	if err != nil {
		log.Printf("post update: %v", err)
		return 0, apperr.Wrap(apperr.Internal, "Error updating post", err)
	}
	if affected == 0 {
		return 0, apperr.New(apperr.NotFound, "Post not found")
	}
	return affected, nil
}

// Delete soft-deletes a post: owner or admin only, status flips to
// DELETED and the row stays.
func (s *PostService) Delete(ctx context.Context, id uint, actorID string, isAdmin bool) (int64, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.New(apperr.NotFound, "Post not found")
		}
		log.Printf("post delete: lookup: %v", err)
		return 0, apperr.Wrap(apperr.Internal, "Error deleting post", err)
	}
	if !CanDeletePost(actorID, post.UserID, isAdmin) {
		return 0, apperr.New(apperr.Authorization, "Unauthorized: You can only delete your own posts")
	}

	affected, err := s.posts.SoftDelete(ctx, id, actorID, isAdmin)
	if err != nil {
		log.Printf("post delete: %v", err)
		return 0, apperr.Wrap(apperr.Internal, "Error deleting post", err)
	}
	if affected == 0 {
		return 0, apperr.New(apperr.NotFound, "Post not found")
	}
	return affected, nil
}
