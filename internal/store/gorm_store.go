package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/David-H-L/Backend/internal/models"
	"github.com/David-H-L/Backend/internal/query"
)

// NewGorm builds the GORM-backed store set.
func NewGorm(db *gorm.DB) Stores {
	return Stores{
		Posts:    &gormPostStore{db: db},
		Users:    &gormUserStore{db: db},
		Votes:    &gormVoteStore{db: db},
		Messages: &gormMessageStore{db: db},
	}
}

// containsCI builds a portable case-insensitive substring condition.
// LOWER/LIKE behaves the same on SQLite and Postgres, unlike ILIKE.
func containsCI(db *gorm.DB, column, value string) *gorm.DB {
	return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(value)+"%")
}

type gormPostStore struct {
	db *gorm.DB
}

func (s *gormPostStore) Create(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *gormPostStore) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *gormPostStore) List(ctx context.Context, f query.PostFilter) ([]models.Post, int64, error) {
	status := f.Status
	if status == "" {
		status = models.PostActive
	}
	conditions := func(db *gorm.DB) *gorm.DB {
		db = db.Where("status = ?", status)
		if f.UserID != "" {
			db = db.Where("user_id = ?", f.UserID)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Scopes(conditions).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if f.Sort == query.SortPopular {
		order = "total_votes DESC, created_at DESC"
	}
	_, limit, offset := query.Window(f.Page, f.Limit)

	var posts []models.Post
	err := s.db.WithContext(ctx).
		Scopes(conditions).
		Preload("Author").
		Order(order).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *gormPostStore) Update(ctx context.Context, id uint, ownerID string, fields map[string]any) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (s *gormPostStore) SoftDelete(ctx context.Context, id uint, ownerID string, asAdmin bool) (int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id)
	if !asAdmin {
		tx = tx.Where("user_id = ?", ownerID)
	}
	res := tx.Update("status", models.PostDeleted)
	return res.RowsAffected, res.Error
}

type gormUserStore struct {
	db *gorm.DB
}

func (s *gormUserStore) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) EmailInUse(ctx context.Context, email, excludeID string) (bool, error) {
	tx := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *gormUserStore) List(ctx context.Context, f query.UserFilter) ([]models.User, error) {
	tx := s.db.WithContext(ctx)
	if f.FirstName != "" {
		tx = containsCI(tx, "first_name", f.FirstName)
	}
	if f.LastName != "" {
		tx = containsCI(tx, "last_name", f.LastName)
	}
	if f.Email != "" {
		tx = containsCI(tx, "email", f.Email)
	}
	if f.Country != "" {
		tx = containsCI(tx, "country", f.Country)
	}
	if f.City != "" {
		tx = containsCI(tx, "city", f.City)
	}
	if f.Role != "" {
		tx = tx.Where("role = ?", f.Role)
	}

	var users []models.User
	err := tx.Order("created_at DESC").Limit(query.FlatListLimit).Find(&users).Error
	return users, err
}

func (s *gormUserStore) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (s *gormUserStore) Delete(ctx context.Context, id string) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	return res.RowsAffected, res.Error
}

type gormVoteStore struct {
	db *gorm.DB
}

func (s *gormVoteStore) Create(ctx context.Context, vote *models.Vote) error {
	return s.db.WithContext(ctx).Create(vote).Error
}

func (s *gormVoteStore) GetByID(ctx context.Context, id uint) (*models.Vote, error) {
	var vote models.Vote
	if err := s.db.WithContext(ctx).First(&vote, id).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

func (s *gormVoteStore) List(ctx context.Context, f query.VoteFilter) ([]models.Vote, error) {
	tx := s.db.WithContext(ctx)
	if f.Name != "" {
		tx = containsCI(tx, "name", f.Name)
	}
	if f.Finished != nil {
		tx = tx.Where("finished = ?", *f.Finished)
	}
	if f.StartAt != nil {
		tx = tx.Where("date >= ?", *f.StartAt)
	}
	if f.EndsAt != nil {
		tx = tx.Where("date <= ?", *f.EndsAt)
	}

	var votes []models.Vote
	err := tx.Order("created_at DESC").Limit(query.FlatListLimit).Find(&votes).Error
	return votes, err
}

func (s *gormVoteStore) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (s *gormVoteStore) Delete(ctx context.Context, id uint) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.Vote{}, id)
	return res.RowsAffected, res.Error
}

type gormMessageStore struct {
	db *gorm.DB
}

func (s *gormMessageStore) Create(ctx context.Context, msg *models.Message) error {
	return s.db.WithContext(ctx).Create(msg).Error
}

func (s *gormMessageStore) Conversation(ctx context.Context, userA, userB string, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > query.FlatListLimit {
		limit = query.FlatListLimit
	}
	var msgs []models.Message
	err := s.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}
