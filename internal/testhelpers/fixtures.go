package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const TestPassword = "password123"

// CreateUser inserts a user with a profile and returns it.
func CreateUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &model.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	profile := &model.UserProfile{
		UserID:   user.ID,
		Username: "user_" + user.ID.String()[:8],
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return user
}

// CreateRecipe inserts a recipe owned by userID.
func CreateRecipe(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, ingredients ...string) *model.Recipe {
	t.Helper()

	recipe := &model.Recipe{
		UserID:       userID,
		Name:         name,
		Description:  name + " description",
		Category:     "Dinner",
		Ingredients:  model.JSONBStringArray(ingredients),
		Instructions: model.JSONBStringArray{"Cook it"},
		Calories:     400,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	return recipe
}
