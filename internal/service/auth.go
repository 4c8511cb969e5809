package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

// Register creates the user with profile, preferences and allergens, and returns a token.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (string, *model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if count > 0 {
		return "", nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := model.UserProfile{
			UserID:   user.ID,
			Username: req.Username,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		if err := replacePreferences(tx, user.ID, req.DietaryPreferences); err != nil {
			return err
		}
		return replaceAllergens(tx, user.ID, req.Allergies)
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.GenerateToken(&types.TokenClaims{UserID: user.ID, Username: req.Username})
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	var profile model.UserProfile
	s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile)

	return s.GenerateToken(&types.TokenClaims{UserID: user.ID, Username: profile.Username})
}

func (s *AuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func replacePreferences(tx *gorm.DB, userID uuid.UUID, prefs []string) error {
	if err := tx.Where("user_id = ?", userID).Delete(&model.DietaryPreference{}).Error; err != nil {
		return err
	}
	for _, p := range cleanList(prefs) {
		if err := tx.Create(&model.DietaryPreference{UserID: userID, PreferenceType: p}).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceAllergens(tx *gorm.DB, userID uuid.UUID, allergens []string) error {
	if err := tx.Where("user_id = ?", userID).Delete(&model.Allergen{}).Error; err != nil {
		return err
	}
	for _, a := range cleanList(allergens) {
		if err := tx.Create(&model.Allergen{UserID: userID, AllergenName: a}).Error; err != nil {
			return err
		}
	}
	return nil
}

// cleanList trims entries and drops blanks and duplicates.
func cleanList(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
