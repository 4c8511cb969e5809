// Package seed fills a development database with demo accounts and
// AI-generated recipes.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// DemoPassword is shared by every demo account.
const DemoPassword = "testpassword123"

const batchSize = 5

type User struct {
	Name               string
	Email              string
	Username           string
	DietaryPreferences []string
	Allergies          []string
}

var DemoUsers = []User{
	{Name: "John Doe", Email: "john.doe@example.com", Username: "johndoe", DietaryPreferences: []string{"vegetarian", "gluten-free"}, Allergies: []string{"nuts", "dairy"}},
	{Name: "Jane Smith", Email: "jane.smith@example.com", Username: "janesmith", DietaryPreferences: []string{"high-protein"}},
	{Name: "Bob Wilson", Email: "bob.wilson@example.com", Username: "bobwilson"},
	{Name: "Alice Cooper", Email: "alice.cooper@example.com", Username: "alicecooper", Allergies: []string{"shellfish"}},
}

var DemoRecipes = []types.GenerateRecipeRequest{
	{Ingredients: "pasta, tomatoes, basil", Cuisine: "Italian"},
	{Ingredients: "kale, quinoa, chickpeas", MealType: "Lunch", DietaryRestrictions: "vegan"},
	{Ingredients: "banana, oats, greek yogurt", MealType: "Breakfast"},
	{Ingredients: "chicken thighs, garam masala, coconut milk", Cuisine: "Indian"},
	{Ingredients: "salmon, lemon, dill", Cuisine: "Mediterranean"},
	{Ingredients: "tofu, broccoli, soy sauce", Cuisine: "Chinese", DietaryRestrictions: "vegetarian"},
	{Ingredients: "black beans, corn, tortillas", Cuisine: "Mexican"},
	{Ingredients: "rice noodles, shrimp, lime", Cuisine: "Thai"},
	{Ingredients: "almond flour, eggs, butter", DietaryRestrictions: "gluten-free"},
	{Ingredients: "potatoes, leeks, cream", MealType: "Dinner"},
}

// Seeder creates demo data through the regular services.
type Seeder struct {
	auth      *service.AuthService
	generator *service.RecipeGeneratorService
	pause     time.Duration
}

// New creates a Seeder. pause is the delay between recipe batches.
func New(auth *service.AuthService, generator *service.RecipeGeneratorService, pause time.Duration) *Seeder {
	return &Seeder{auth: auth, generator: generator, pause: pause}
}

// Users registers each user that does not exist yet and returns the ID of
// every account, new or existing, in input order.
func (s *Seeder) Users(ctx context.Context, users []User) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		_, user, err := s.auth.Register(ctx, &types.RegisterRequest{
			Name:               u.Name,
			Email:              u.Email,
			Password:           DemoPassword,
			Username:           u.Username,
			DietaryPreferences: u.DietaryPreferences,
			Allergies:          u.Allergies,
		})
		switch {
		case err == nil:
			log.Printf("[Seed] created user %s", u.Email)
			ids = append(ids, user.ID)
		case errors.Is(err, service.ErrUserExists):
			id, err := s.existingUser(ctx, u.Email)
			if err != nil {
				return ids, err
			}
			log.Printf("[Seed] user %s already exists, skipping", u.Email)
			ids = append(ids, id)
		default:
			return ids, fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
	}
	return ids, nil
}

func (s *Seeder) existingUser(ctx context.Context, email string) (uuid.UUID, error) {
	token, err := s.auth.Login(ctx, email, DemoPassword)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to log in as %s: %w", email, err)
	}
	claims, err := s.auth.ValidateToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to read token for %s: %w", email, err)
	}
	return claims.UserID, nil
}

// Recipes generates and saves one recipe per request for userID. Failed
// generations are logged and skipped. It returns how many recipes were saved.
func (s *Seeder) Recipes(ctx context.Context, userID uuid.UUID, requests []types.GenerateRecipeRequest) (int, error) {
	saved := 0
	for i := range requests {
		if i > 0 && i%batchSize == 0 && s.pause > 0 {
			select {
			case <-ctx.Done():
				return saved, ctx.Err()
			case <-time.After(s.pause):
			}
		}

		view, err := s.generator.Generate(ctx, userID, &requests[i])
		if err != nil {
			log.Printf("[Seed] failed to generate recipe from %q: %v", requests[i].Ingredients, err)
			continue
		}
		recipe, err := s.generator.Save(ctx, userID, view.ID)
		if err != nil {
			log.Printf("[Seed] failed to save recipe %q: %v", view.Recipe.Title, err)
			continue
		}
		log.Printf("[Seed] created recipe: %s", recipe.Name)
		saved++
	}
	return saved, nil
}
