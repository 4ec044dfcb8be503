package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/David-H-L/Backend/internal/apperr"
	"github.com/David-H-L/Backend/internal/models"
	"github.com/David-H-L/Backend/internal/store"
)

func testStores(t *testing.T) store.Stores {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Vote{}, &models.Message{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.NewGorm(db)
}

var userSeq int

// seedUser registers a user through the service so the password is
// hashed exactly as production does it.
func seedUser(t *testing.T, users *UserService, role string) *models.User {
	t.Helper()
	userSeq++
	u, err := users.Create(context.Background(), CreateUserInput{
		FirstName:        "Test",
		LastName:         "User",
		PhoneNumber:      "5551234567",
		PhoneCountryCode: "+56",
		Country:          "Chile",
		City:             "Santiago",
		Email:            fmt.Sprintf("user%d@example.com", userSeq),
		Role:             role,
		Password:         "s3cret",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %v, got nil", kind)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("error kind = %v, want %v (err: %v)", got, kind, err)
	}
}
