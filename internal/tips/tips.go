// Package tips turns a user's fitness profile into advice: a handful of tips
// and a one-day meal plan. The generative provider is optional; every step of
// the degradation ladder is a pure function so it can be tested in isolation.
package tips

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"

	"fitshop/internal/fitness"
)

const (
	maxTips           = 5
	minExtractedTips  = 3
	minLineLengthHint = 20
)

var ErrInvalidStructure = errors.New("invalid response structure from AI")

type Profile struct {
	Weight         float64
	Height         float64
	Age            float64
	Gender         string
	Activity       string
	BMI            float64
	DietPreference string
	Goal           string
}

type Meal struct {
	Name     string `json:"name"`
	Time     string `json:"time"`
	Items    string `json:"items"`
	Calories string `json:"calories"`
}

type Advice struct {
	Tips     []string `json:"tips"`
	DietPlan []Meal   `json:"dietPlan"`
}

// Source records which rung of the ladder produced an Advice.
type Source string

const (
	SourceProvider  Source = "provider"
	SourceExtracted Source = "extracted"
	SourceFallback  Source = "fallback"
)

// BuildPrompt renders the request sent to the generative model. The model is
// asked for a bare JSON object with 5 tips and a 4-5 meal plan.
func BuildPrompt(p Profile) string {
	var b strings.Builder
	b.WriteString("You are an expert fitness and nutrition consultant. Please provide personalized advice based on the following user profile:\n\n")
	b.WriteString("USER PROFILE:\n")
	fmt.Fprintf(&b, "- Weight: %s kg\n", formatNumber(p.Weight))
	fmt.Fprintf(&b, "- Height: %s cm\n", formatNumber(p.Height))
	fmt.Fprintf(&b, "- Age: %s years\n", formatNumber(p.Age))
	fmt.Fprintf(&b, "- Gender: %s\n", p.Gender)
	fmt.Fprintf(&b, "- Activity Level: %s\n", p.Activity)
	fmt.Fprintf(&b, "- BMI: %s (%s)\n", formatNumber(p.BMI), fitness.BMICategory(p.BMI))
	fmt.Fprintf(&b, "- Diet Preference: %s\n", p.DietPreference)
	fmt.Fprintf(&b, "- Goal: %s\n\n", p.Goal)
	b.WriteString("REQUEST:\n")
	b.WriteString("1. Provide 5 concise, actionable health and fitness tips specific to this user's profile\n")
	b.WriteString("2. Create a sample daily diet plan with 4-5 meals (breakfast, lunch, snack, dinner) that includes:\n")
	b.WriteString("   - Meal names\n")
	b.WriteString("   - Suggested timing (e.g., \"8:00 AM\")\n")
	fmt.Fprintf(&b, "   - Specific food items appropriate for their %s diet\n", p.DietPreference)
	b.WriteString("   - Approximate calories per meal\n")
	fmt.Fprintf(&b, "   - Total daily calories should align with their %s goal\n\n", p.Goal)
	b.WriteString("RESPONSE FORMAT:\n")
	b.WriteString("Return ONLY a JSON object with this exact structure:\n")
	b.WriteString(`{
  "tips": ["tip1", "tip2", "tip3", "tip4", "tip5"],
  "dietPlan": [
    {
      "name": "Meal Name",
      "time": "HH:MM AM/PM",
      "items": "Food description",
      "calories": "XXX kcal"
    }
  ]
}`)
	b.WriteString("\n\nImportant: Return only valid JSON without any additional text, explanations, or markdown formatting.\n")
	return b.String()
}

var fenceRe = regexp.MustCompile("```json|```")

// ParseStructured accepts model output that is (possibly code-fenced) JSON
// carrying both a tips array and a dietPlan array.
func ParseStructured(text string) (Advice, error) {
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))

	var raw struct {
		Tips     *[]string `json:"tips"`
		DietPlan *[]Meal   `json:"dietPlan"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return Advice{}, fmt.Errorf("parse advice: %w", err)
	}
	if raw.Tips == nil || raw.DietPlan == nil {
		return Advice{}, ErrInvalidStructure
	}
	return Advice{Tips: *raw.Tips, DietPlan: *raw.DietPlan}, nil
}

var listItemRe = regexp.MustCompile(`(?m)^[ \t]*(?:\d+\.[ \t]|[-•*][ \t])(.+)$`)

// ExtractTips pulls up to five tips out of free-form text: numbered or
// bulleted lines first, otherwise any reasonably long line that does not look
// like a fragment of JSON.
func ExtractTips(text string) []string {
	out := make([]string, 0, maxTips)

	for _, m := range listItemRe.FindAllStringSubmatch(text, -1) {
		tip := strings.TrimSpace(m[1])
		if tip == "" {
			continue
		}
		out = append(out, tip)
		if len(out) == maxTips {
			return out
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= minLineLengthHint || strings.ContainsAny(line, "{}") {
			continue
		}
		out = append(out, line)
		if len(out) == maxTips {
			break
		}
	}
	return out
}

// FromUnstructured is the middle rung: extracted tips if there are enough of
// them, fallback tips otherwise, and always the fallback diet plan.
func FromUnstructured(text string, p Profile) (Advice, Source) {
	plan := FallbackDietPlan(p.DietPreference)
	if extracted := ExtractTips(text); len(extracted) >= minExtractedTips {
		return Advice{Tips: extracted, DietPlan: plan}, SourceExtracted
	}
	return Advice{Tips: FallbackTips(p.Goal), DietPlan: plan}, SourceFallback
}

// Fallback is the bottom rung, used when no provider answer is available.
func Fallback(p Profile) Advice {
	return Advice{
		Tips:     FallbackTips(p.Goal),
		DietPlan: FallbackDietPlan(p.DietPreference),
	}
}

func formatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}
