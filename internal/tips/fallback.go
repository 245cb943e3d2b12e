package tips

var baseTips = []string{
	"Stay hydrated by drinking at least 8 glasses of water daily",
	"Aim for 7-9 hours of quality sleep each night",
	"Incorporate both cardio and strength training in your routine",
	"Focus on whole foods and minimize processed foods",
	"Consider consulting with a nutritionist for personalized advice",
}

var goalTips = map[string][]string{
	"lose": {
		"Create a moderate calorie deficit of 300-500 calories per day",
		"Focus on protein-rich foods to maintain muscle mass while losing fat",
		"Incorporate high-fiber foods to help you feel full longer",
	},
	"maintain": {
		"Balance your macronutrients for sustained energy throughout the day",
		"Listen to your body's hunger and fullness cues",
		"Maintain consistent meal timing for metabolic regularity",
	},
	"gain": {
		"Aim for a calorie surplus of 300-500 calories per day for lean mass gain",
		"Prioritize protein intake to support muscle growth and recovery",
		"Consider nutrient-dense calorie sources rather than empty calories",
	},
}

var basePlan = []Meal{
	{Name: "Breakfast", Time: "8:00 AM", Items: "Oatmeal with berries and nuts", Calories: "350 kcal"},
	{Name: "Lunch", Time: "12:30 PM", Items: "Grilled chicken salad with quinoa and vegetables", Calories: "450 kcal"},
	{Name: "Snack", Time: "3:30 PM", Items: "Greek yogurt with honey and almonds", Calories: "200 kcal"},
	{Name: "Dinner", Time: "7:00 PM", Items: "Baked salmon with roasted vegetables and sweet potato", Calories: "500 kcal"},
}

// dietSwaps replaces meal items by meal name for a diet preference.
var dietSwaps = map[string]map[string]string{
	"vegetarian": {
		"Lunch":  "Vegetable stir-fry with tofu and brown rice",
		"Dinner": "Lentil curry with whole grain naan",
	},
	"vegan": {
		"Breakfast": "Smoothie bowl with plant-based protein, fruits, and seeds",
		"Lunch":     "Chickpea and vegetable curry with quinoa",
		"Dinner":    "Vegan Buddha bowl with tempeh and tahini dressing",
		"Snack":     "Hummus with vegetable sticks",
	},
	"lowCarb": {
		"Breakfast": "Vegetable omelette with avocado",
		"Lunch":     "Grilled chicken Caesar salad (no croutons)",
		"Dinner":    "Zucchini noodles with meatballs and marinara sauce",
		"Snack":     "Cheese and nuts",
	},
	"highProtein": {
		"Breakfast": "Scrambled eggs with spinach and turkey bacon",
		"Lunch":     "Grilled chicken breast with steamed broccoli and quinoa",
		"Dinner":    "Lean steak with asparagus and sweet potato",
		"Snack":     "Protein shake with banana",
	},
}

// FallbackTips returns the first two goal tips followed by the first three
// base tips. Unknown goals get only the base tips.
func FallbackTips(goal string) []string {
	specific := goalTips[goal]
	if len(specific) > 2 {
		specific = specific[:2]
	}
	out := make([]string, 0, len(specific)+3)
	out = append(out, specific...)
	out = append(out, baseTips[:3]...)
	return out
}

func FallbackDietPlan(dietPreference string) []Meal {
	plan := make([]Meal, len(basePlan))
	copy(plan, basePlan)

	swaps, ok := dietSwaps[dietPreference]
	if !ok {
		return plan
	}
	for i := range plan {
		if items, ok := swaps[plan[i].Name]; ok {
			plan[i].Items = items
		}
	}
	return plan
}
