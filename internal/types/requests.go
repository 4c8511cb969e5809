package types

import "encoding/json"

type RegisterRequest struct {
	Name               string   `json:"name" binding:"required"`
	Email              string   `json:"email" binding:"required,email"`
	Password           string   `json:"password" binding:"required,min=8"`
	Username           string   `json:"username" binding:"required"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest replaces preference and allergy lists when they are non-nil.
type UpdateProfileRequest struct {
	Username           string   `json:"username,omitempty"`
	Bio                *string  `json:"bio,omitempty"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Cuisine      string   `json:"cuisine"`
	Difficulty   string   `json:"difficulty"`
	CookingTime  string   `json:"cooking_time"`
	ImageURL     string   `json:"image_url"`
	Ingredients  []string `json:"ingredients" binding:"required"`
	Instructions []string `json:"instructions" binding:"required"`
	Calories     float64  `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fat          float64  `json:"fat"`
}

// RecipeSearch holds the filters of a recipe listing.
type RecipeSearch struct {
	Query    string
	Category string
	Exclude  []string
}

type GenerateRecipeRequest struct {
	Ingredients         string `json:"ingredients" binding:"required"`
	Cuisine             string `json:"cuisine"`
	MealType            string `json:"meal_type"`
	DietaryRestrictions string `json:"dietary_restrictions"`
}

type GenerateMealPlanRequest struct {
	DietaryPreferences string `json:"dietary_preferences"`
	Allergies          string `json:"allergies"`
	Days               int    `json:"days"`
}

// SaveMealPlanRequest accepts either a flat meals list or grouped days.
type SaveMealPlanRequest struct {
	PlanName string          `json:"plan_name"`
	Goal     string          `json:"goal"`
	Meals    json.RawMessage `json:"meals"`
	Days     json.RawMessage `json:"days"`
}

type GenerateDietPlanRequest struct {
	Goal      float64  `json:"goal"`
	Days      int      `json:"days"`
	Allergies []string `json:"allergies"`
}

type DietMealRequest struct {
	Day         FlexString `json:"day"`
	MealType    string     `json:"meal_type"`
	MealName    string     `json:"meal_name"`
	Description string     `json:"description"`
	Ingredients []string   `json:"ingredients"`
	PrepTime    FlexString `json:"prep_time"`
}

type SaveDietPlanRequest struct {
	PlanName string            `json:"plan_name" binding:"required"`
	Goal     string            `json:"goal" binding:"required"`
	Meals    []DietMealRequest `json:"meals" binding:"required"`
}

// TrackingUpdate sets the status of a meal for today. A nil status clears it.
type TrackingUpdate struct {
	MealID string  `json:"meal_id"`
	Status *string `json:"status"`
}

type TrackMealsRequest struct {
	Updates []TrackingUpdate `json:"updates" binding:"required"`
}

type AnalyzeNutritionRequest struct {
	Ingredients string `json:"ingredients" binding:"required"`
}

type AnalysisData struct {
	Ingredients json.RawMessage `json:"ingredients"`
	Analysis    json.RawMessage `json:"analysis"`
}

type SaveAnalysisRequest struct {
	AnalysisName string       `json:"analysis_name" binding:"required"`
	AnalysisData AnalysisData `json:"analysis_data"`
}

type GroceryItemRequest struct {
	Item     string `json:"item" binding:"required"`
	Quantity string `json:"quantity"`
}

type GroceryBatchRequest struct {
	Items []GroceryItemRequest `json:"items" binding:"required,dive"`
}

type UpdateGroceryItemRequest struct {
	Quantity *string `json:"quantity"`
	Checked  *bool   `json:"checked"`
}

// ReviewRequest creates or edits the caller's review. A new review needs a
// rating. On edit, a missing rating keeps the old one.
type ReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type WeightRequest struct {
	Weight float64 `json:"weight" binding:"required"`
	Date   string  `json:"date"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// AdminUserUpdate edits an account. Nil fields are left unchanged.
type AdminUserUpdate struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	IsAdmin *bool   `json:"is_admin"`
}
