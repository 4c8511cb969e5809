package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Profile is the account view returned to the owner.
type Profile struct {
	UserID             uuid.UUID `json:"user_id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Username           string    `json:"username"`
	Bio                string    `json:"bio"`
	DietaryPreferences []string  `json:"dietary_preferences"`
	Allergies          []string  `json:"allergies"`
}

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	db := s.db.WithContext(ctx)

	var user model.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	var profile model.UserProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	prefs, allergies, err := s.Preferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		UserID:             user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Username:           profile.Username,
		Bio:                profile.Bio,
		DietaryPreferences: prefs,
		Allergies:          allergies,
	}, nil
}

// Preferences returns the dietary preferences and allergies of a user.
func (s *ProfileService) Preferences(ctx context.Context, userID uuid.UUID) ([]string, []string, error) {
	db := s.db.WithContext(ctx)

	prefs := []string{}
	if err := db.Model(&model.DietaryPreference{}).Where("user_id = ?", userID).Order("created_at").Pluck("preference_type", &prefs).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load dietary preferences: %w", err)
	}
	allergies := []string{}
	if err := db.Model(&model.Allergen{}).Where("user_id = ?", userID).Order("created_at").Pluck("allergen_name", &allergies).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load allergens: %w", err)
	}
	return prefs, allergies, nil
}

// UpdateProfile updates a user's profile
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*Profile, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile model.UserProfile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			return notFound(err)
		}

		if req.Username != "" {
			profile.Username = req.Username
		}
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}

		if req.DietaryPreferences != nil {
			if err := replacePreferences(tx, userID, req.DietaryPreferences); err != nil {
				return err
			}
		}
		if req.Allergies != nil {
			if err := replaceAllergens(tx, userID, req.Allergies); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(ctx, userID)
}

// ReplaceAllergies overwrites the allergy list of a user.
func (s *ProfileService) ReplaceAllergies(ctx context.Context, userID uuid.UUID, allergies []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceAllergens(tx, userID, allergies)
	})
}

func (s *ProfileService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return notFound(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.WithContext(ctx).Model(&user).Update("password_hash", string(hashed)).Error
}

// DeleteAccount removes the user and everything they own.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var planIDs []uuid.UUID
		if err := tx.Model(&model.DietPlan{}).Where("user_id = ?", userID).Pluck("id", &planIDs).Error; err != nil {
			return err
		}
		if len(planIDs) > 0 {
			if err := tx.Where("diet_plan_id IN ?", planIDs).Delete(&model.DietPlanMeal{}).Error; err != nil {
				return err
			}
		}
		// Reviews and favorites left by others on this user's recipes go too.
		ownRecipes := tx.Unscoped().Model(&model.Recipe{}).Select("id").Where("user_id = ?", userID)
		for _, m := range []interface{}{&model.RecipeReview{}, &model.RecipeFavorite{}} {
			if err := tx.Where("recipe_id IN (?)", ownRecipes).Delete(m).Error; err != nil {
				return err
			}
		}
		owned := []interface{}{
			&model.RecipeReview{},
			&model.Notification{},
			&model.WeightEntry{},
			&model.ChatMessage{},
			&model.MealTracking{},
			&model.DietPlan{},
			&model.MealPlan{},
			&model.GeneratedRecipe{},
			&model.NutritionAnalysis{},
			&model.GroceryItem{},
			&model.RecipeFavorite{},
			&model.Recipe{},
			&model.DietaryPreference{},
			&model.Allergen{},
			&model.UserProfile{},
		}
		for _, m := range owned {
			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}
		res := tx.Unscoped().Delete(&model.User{}, "id = ?", userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
