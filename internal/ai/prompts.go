package ai

import (
	"fmt"
	"strings"
)

// RecipePrompt asks for a single recipe as JSON.
func RecipePrompt(ingredients, cuisine, mealType, restrictions string) string {
	return fmt.Sprintf(`Create a recipe with the following requirements:
- Main ingredients: %s
- Cuisine style: %s
- Meal type: %s
- Dietary restrictions: %s

Provide the recipe in JSON format with these fields: title, description, ingredients (as a list of strings), instructions (as a list of strings), cooking_time (e.g., "30 minutes"), difficulty, category, nutritional_info (as a JSON object with calories, protein, carbs and fat as numbers).
Only return the JSON, no additional text.`,
		ingredients, orAny(cuisine), orAny(mealType), orNone(restrictions))
}

// MealPlanPrompt asks for a plan of exactly days days.
func MealPlanPrompt(days int, preferences, allergies string) string {
	return fmt.Sprintf(`Create a %[1]d-day meal plan with the following requirements:
- Dietary preferences: %[2]s
- Allergies: %[3]s

IMPORTANT: You must generate exactly %[1]d days in the meal plan. Each day must have a unique day name like "Day 1", "Day 2", up to "Day %[1]d".

Format your response as a JSON object with a single key "days".
The value of "days" should be a list of exactly %[1]d day objects.
Each day object should have a "day" name (e.g., "Day 1") and a list of "meals".
Each meal object should have "type", "name", "description", "ingredients" (as a list of strings), and "prep_time".

Example format:
{
  "days": [
    {
      "day": "Day 1",
      "meals": [
        {
          "type": "Breakfast",
          "name": "Oatmeal",
          "description": "...",
          "ingredients": ["1 cup oats", "2 cups milk"],
          "prep_time": "5 minutes"
        }
      ]
    }
  ]
}

Only return the JSON object, with no additional text or markdown.`,
		days, orNone(preferences), orNone(allergies))
}

// DietPlanPrompt asks for a weight gain or loss plan with three meals a day.
func DietPlanPrompt(days int, goalType string, goalKg float64, allergies string) string {
	portions := "calorie-controlled portions"
	if goalType == "gain" {
		portions = "calorie-dense foods, larger portions"
	}
	title := goalType
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	return fmt.Sprintf(`Create a %[1]d-day diet plan for weight %[2]s of %[3]g kg. Allergies: %[4]s.

Requirements:
- EXACTLY %[1]d days (1 to %[1]d)
- Each day: 3 meals (Breakfast, Lunch, Dinner)
- For %[2]s: %[5]s
- Avoid: %[4]s

Return JSON: {"plan_name": "Weight %[6]s Plan", "meals": [array of %[7]d meal objects with day, meal_type, meal_name, description, ingredients array, prep_time]}`,
		days, goalType, goalKg, orNone(allergies), portions, title, days*3)
}

// NutritionPrompt asks for a structured nutrition summary of ingredients.
func NutritionPrompt(ingredients string) string {
	return fmt.Sprintf(`Analyze the nutritional content of these ingredients: %s

Provide a breakdown as a JSON object with these fields: calories (number), protein (grams, number), carbs (grams, number), fat (grams, number), vitamins (list of strings naming key vitamins and minerals), benefits (list of strings), concerns (list of strings covering potential concerns or allergies), summary (short paragraph).
Only return the JSON object.`, ingredients)
}

// MacrosPrompt asks for an approximate macronutrient breakdown.
func MacrosPrompt(ingredients []string) string {
	return "You are a nutrition expert. Respond only with JSON like {\"calories\":0,\"protein\":0,\"carbs\":0,\"fat\":0}.\n" +
		"Provide an approximate macronutrient breakdown for the following ingredients:\n" +
		strings.Join(ingredients, "\n")
}

// ChatPrompt asks the recipe assistant for a plain-text answer to message.
func ChatPrompt(message string) string {
	return fmt.Sprintf(`You are a helpful Recipe Assistant. Your goal is to provide clear and simple cooking instructions.

When a user asks for a recipe, you must provide:
1. A list of ingredients.
2. The step-by-step method for preparing the dish.

Use simple, easy-to-understand language. Do not use any special formatting like asterisks, bullet points, or hash symbols. Just use plain text and paragraphs.

For example, if the user asks for "pancakes", a good response would be:

To make pancakes, you will need these ingredients:
1 cup of all-purpose flour
2 tablespoons of sugar
2 teaspoons of baking powder
1 cup of milk
1 egg

Here is the method to make them:
First, mix together the flour, sugar and baking powder.
Whisk the milk and egg, pour them into the dry ingredients and stir until just combined.
Cook scoops of batter on a hot oiled pan until bubbles appear, then flip and cook until browned.

The user asked: %q`, message)
}

func orAny(s string) string {
	if strings.TrimSpace(s) == "" {
		return "any"
	}
	return s
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
