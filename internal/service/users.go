package service

import (
	"context"
	"errors"
	"log"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/David-H-L/Backend/internal/apperr"
	"github.com/David-H-L/Backend/internal/auth"
	"github.com/David-H-L/Backend/internal/models"
	"github.com/David-H-L/Backend/internal/query"
	"github.com/David-H-L/Backend/internal/store"
)

// UserService orchestrates account lifecycle and login.
type UserService struct {
	users  store.UserStore
	tokens *auth.Manager
}

func NewUserService(users store.UserStore, tokens *auth.Manager) *UserService {
	return &UserService{users: users, tokens: tokens}
}

type CreateUserInput struct {
	FirstName        string
	LastName         string
	PhoneNumber      string
	PhoneCountryCode string
	Country          string
	City             string
	Email            string
	Role             string
	Password         string
}

// Create registers a new account. Emails are unique; passwords are
// stored as bcrypt hashes, never verbatim.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.PhoneNumber == "" {
		return nil, apperr.New(apperr.Validation, "Missing required fields: firstName, lastName, email, phoneNumber")
	}
	if !query.EmailValid(in.Email) {
		return nil, apperr.New(apperr.Validation, "Invalid email format")
	}
	role := models.RoleUser
	if in.Role != "" {
		role = models.Role(in.Role)
		if !role.Valid() {
			return nil, apperr.New(apperr.Validation, "Invalid role. Allowed: super_admin, admin, user")
		}
	}
	if err := validateUserBounds(in); err != nil {
		return nil, err
	}

	inUse, err := s.users.EmailInUse(ctx, in.Email, "")
	if err != nil {
		log.Printf("user create: email check: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error creating user", err)
	}
	if inUse {
		return nil, apperr.New(apperr.Conflict, "Email is already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("user create: hash: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error creating user", err)
	}

	user := &models.User{
		ID:               uuid.NewString(),
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		PhoneNumber:      in.PhoneNumber,
		PhoneCountryCode: in.PhoneCountryCode,
		Country:          in.Country,
		City:             in.City,
		Email:            in.Email,
		Role:             role,
		Password:         string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		log.Printf("user create: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error creating user", err)
	}
	return user, nil
}

func validateUserBounds(in CreateUserInput) error {
	switch {
	case !lengthBetween(in.FirstName, 2, 50):
		return apperr.New(apperr.Validation, "firstName must be 2-50 characters")
	case !lengthBetween(in.LastName, 2, 50):
		return apperr.New(apperr.Validation, "lastName must be 2-50 characters")
	case !lengthBetween(in.PhoneNumber, 7, 15):
		return apperr.New(apperr.Validation, "phoneNumber must be 7-15 characters")
	case !lengthBetween(in.PhoneCountryCode, 1, 5):
		return apperr.New(apperr.Validation, "phoneCountryCode must be 1-5 characters")
	case !lengthBetween(in.Country, 2, 50):
		return apperr.New(apperr.Validation, "country must be 2-50 characters")
	case !lengthBetween(in.City, 2, 50):
		return apperr.New(apperr.Validation, "city must be 2-50 characters")
	case !lengthBetween(in.Password, 4, 150):
		return apperr.New(apperr.Validation, "password must be 4-150 characters")
	}
	return nil
}

// lengthBetween counts characters, not bytes. Accented names are the
// common case here and must not burn two units per rune.
func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// LoginResult carries the authenticated user and a session token.
type LoginResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Login verifies credentials and issues a JWT.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperr.New(apperr.Validation, "Missing required fields: email, password")
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.Auth, "Invalid email or password")
		}
		log.Printf("login: lookup: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error logging in", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.New(apperr.Auth, "Invalid email or password")
	}
	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		log.Printf("login: token: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error logging in", err)
	}
	return &LoginResult{User: user, Token: token}, nil
}

// Get loads one user by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		log.Printf("user get: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error fetching user", err)
	}
	return user, nil
}

// List returns users matching the filter, newest first, capped.
func (s *UserService) List(ctx context.Context, f query.UserFilter) ([]models.User, error) {
	users, err := s.users.List(ctx, f)
	if err != nil {
		log.Printf("user list: %v", err)
		return nil, apperr.Wrap(apperr.Internal, "Error fetching users", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

type UpdateUserInput struct {
	FirstName        *string
	LastName         *string
	PhoneNumber      *string
	PhoneCountryCode *string
	Country          *string
	City             *string
	Email            *string
	Role             *string
	Password         *string
}

// Update applies the provided fields. An email change re-checks
// uniqueness against every other row.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (int64, error) {
	fields := map[string]any{}
	set := func(col, val string, min, max int) error {
		if !lengthBetween(val, min, max) {
			return apperr.Newf(apperr.Validation, "%s must be %d-%d characters", col, min, max)
		}
		fields[col] = val
		return nil
	}
	if in.FirstName != nil {
		if err := set("first_name", *in.FirstName, 2, 50); err != nil {
			return 0, err
		}
	}
	if in.LastName != nil {
		if err := set("last_name", *in.LastName, 2, 50); err != nil {
			return 0, err
		}
	}
	if in.PhoneNumber != nil {
		if err := set("phone_number", *in.PhoneNumber, 7, 15); err != nil {
			return 0, err
		}
	}
	if in.PhoneCountryCode != nil {
		if err := set("phone_country_code", *in.PhoneCountryCode, 1, 5); err != nil {
			return 0, err
		}
	}
	if in.Country != nil {
		if err := set("country", *in.Country, 2, 50); err != nil {
			return 0, err
		}
	}
	if in.City != nil {
		if err := set("city", *in.City, 2, 50); err != nil {
			return 0, err
		}
	}
	if in.Email != nil {
		if !query.EmailValid(*in.Email) {
			return 0, apperr.New(apperr.Validation, "Invalid email format")
		}
		inUse, err := s.users.EmailInUse(ctx, *in.Email, id)
		if err != nil {
			log.Printf("user update: email check: %v", err)
			return 0, apperr.Wrap(apperr.Internal, "Error updating user", err)
		}
		if inUse {
			return 0, apperr.New(apperr.Conflict, "Email is already used by another user")
		}
		fields["email"] = *in.Email
	}
	if in.Role != nil {
		role := models.Role(*in.Role)
		if !role.Valid() {
			return 0, apperr.New(apperr.Validation, "Invalid role. Allowed: super_admin, admin, user")
		}
		fields["role"] = *in.Role
	}
	if in.Password != nil {
		if !lengthBetween(*in.Password, 4, 150) {
			return 0, apperr.New(apperr.Validation, "password must be 4-150 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("user update: hash: %v", err)
			return 0, apperr.Wrap(apperr.Internal, "Error updating user", err)
		}
		fields["password"] = string(hash)
	}
	if len(fields) == 0 {
		return 0, apperr.New(apperr.Validation, "No fields to update")
	}

	affected, err := s.users.Update(ctx, id, fields)
	if err != nil {
		log.Printf("user update: %v", err)
		return 0, apperr.Wrap(apperr.Internal, "Error updating user", err)
	}
	if affected == 0 {
		return 0, apperr.New(apperr.NotFound, "User not found")
	}
	return affected, nil
}

// Delete removes the user row for good. Users are not soft-deleted.
func (s *UserService) Delete(ctx context.Context, id string) (int64, error) {
	affected, err := s.users.Delete(ctx, id)
	if err != nil {
		log.Printf("user delete: %v", err)
		return 0, apperr.Wrap(apperr.Internal, "Error deleting user", err)
	}
	if affected == 0 {
		return 0, apperr.New(apperr.NotFound, "User not found")
	}
	return affected, nil
}
