// Package store is the persistence boundary. Services depend on the
// per-entity interfaces here, never on GORM directly, so the core
// stays testable against any backing implementation.
package store

import (
	"context"

	"github.com/David-H-L/Backend/internal/models"
	"github.com/David-H-L/Backend/internal/query"
)

// PostStore persists posts. Mutations are ownership-scoped: the
// write itself re-checks the owner so a stale authorization read
// cannot widen access.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	// GetByID loads a post with its author, or gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// List returns the filtered window plus the total matching count.
	List(ctx context.Context, f query.PostFilter) ([]models.Post, int64, error)
	// Update applies fields to the post only if ownerID owns it.
	// Returns rows affected.
	Update(ctx context.Context, id uint, ownerID string, fields map[string]any) (int64, error)
	// SoftDelete flips status to DELETED. Admins bypass the ownership
	// condition. Returns rows affected.
	SoftDelete(ctx context.Context, id uint, ownerID string, asAdmin bool) (int64, error)
}

// UserStore persists users. Users are hard-deleted.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// EmailInUse reports whether email belongs to any user other than
	// excludeID (pass "" to check all rows).
	EmailInUse(ctx context.Context, email, excludeID string) (bool, error)
	List(ctx context.Context, f query.UserFilter) ([]models.User, error)
	Update(ctx context.Context, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// VoteStore persists poll entities. Hard-deleted.
type VoteStore interface {
	Create(ctx context.Context, vote *models.Vote) error
	GetByID(ctx context.Context, id uint) (*models.Vote, error)
	List(ctx context.Context, f query.VoteFilter) ([]models.Vote, error)
	Update(ctx context.Context, id uint, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// MessageStore persists chat messages.
type MessageStore interface {
	Create(ctx context.Context, msg *models.Message) error
	// Conversation returns messages exchanged between two users,
	// oldest first, capped at limit.
	Conversation(ctx context.Context, userA, userB string, limit int) ([]models.Message, error)
}

// Stores bundles the per-entity stores for wiring.
type Stores struct {
	Posts    PostStore
	Users    UserStore
	Votes    VoteStore
	Messages MessageStore
}
