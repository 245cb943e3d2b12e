package tips

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProfile = Profile{
	Weight:         70,
	Height:         175,
	Age:            30,
	Gender:         "male",
	Activity:       "sedentary",
	BMI:            22.9,
	DietPreference: "vegan",
	Goal:           "lose",
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testProfile)

	assert.Contains(t, prompt, "- Weight: 70 kg")
	assert.Contains(t, prompt, "- BMI: 22.9 (Normal weight)")
	assert.Contains(t, prompt, "appropriate for their vegan diet")
	assert.Contains(t, prompt, "align with their lose goal")
	assert.Contains(t, prompt, `"dietPlan"`)
}

func TestParseStructured(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		tips    int
		meals   int
	}{
		{
			name:  "plain json",
			text:  `{"tips":["a","b"],"dietPlan":[{"name":"Lunch","time":"12:00 PM","items":"Rice","calories":"400 kcal"}]}`,
			tips:  2,
			meals: 1,
		},
		{
			name:  "fenced json",
			text:  "```json\n{\"tips\":[\"a\"],\"dietPlan\":[]}\n```",
			tips:  1,
			meals: 0,
		},
		{
			name:    "missing diet plan",
			text:    `{"tips":["a"]}`,
			wantErr: true,
		},
		{
			name:    "not json",
			text:    "Here are some tips for you",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advice, err := ParseStructured(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, advice.Tips, tt.tips)
			assert.Len(t, advice.DietPlan, tt.meals)
		})
	}
}

func TestParseStructured_MissingArrayIsInvalidStructure(t *testing.T) {
	_, err := ParseStructured(`{"dietPlan":[]}`)
	assert.ErrorIs(t, err, ErrInvalidStructure)
}

func TestExtractTips_NumberedAndBulleted(t *testing.T) {
	text := strings.Join([]string{
		"Sure! Here is my advice:",
		"1. Drink more water",
		"2. Sleep eight hours",
		"- Walk after dinner",
		"* Lift weights twice a week",
		"• Eat more vegetables",
		"3. This sixth one is dropped",
	}, "\n")

	got := ExtractTips(text)
	assert.Equal(t, []string{
		"Drink more water",
		"Sleep eight hours",
		"Walk after dinner",
		"Lift weights twice a week",
		"Eat more vegetables",
	}, got)
}

func TestExtractTips_LongLinesFallback(t *testing.T) {
	text := "short\nThis line is long enough to count as a tip\n{ \"broken\": json that is quite long }\nAnother sufficiently long line of advice"
	got := ExtractTips(text)
	assert.Equal(t, []string{
		"This line is long enough to count as a tip",
		"Another sufficiently long line of advice",
	}, got)
}

func TestFromUnstructured(t *testing.T) {
	advice, src := FromUnstructured("1. one\n2. two\n3. three", testProfile)
	assert.Equal(t, SourceExtracted, src)
	assert.Equal(t, []string{"one", "two", "three"}, advice.Tips)
	assert.Equal(t, FallbackDietPlan("vegan"), advice.DietPlan)

	advice, src = FromUnstructured("1. only one", testProfile)
	assert.Equal(t, SourceFallback, src)
	assert.Equal(t, FallbackTips("lose"), advice.Tips)
}

func TestFallbackTips(t *testing.T) {
	got := FallbackTips("gain")
	require.Len(t, got, 5)
	assert.Equal(t, "Aim for a calorie surplus of 300-500 calories per day for lean mass gain", got[0])
	assert.Equal(t, "Prioritize protein intake to support muscle growth and recovery", got[1])
	assert.Equal(t, baseTips[:3], got[2:])

	assert.Equal(t, baseTips[:3], FallbackTips("unknown"))
}

func TestFallbackDietPlan(t *testing.T) {
	plain := FallbackDietPlan("")
	assert.Equal(t, basePlan, plain)

	veg := FallbackDietPlan("vegetarian")
	require.Len(t, veg, 4)
	assert.Equal(t, "Oatmeal with berries and nuts", veg[0].Items)
	assert.Equal(t, "Vegetable stir-fry with tofu and brown rice", veg[1].Items)
	assert.Equal(t, "Lentil curry with whole grain naan", veg[3].Items)

	// the shared base plan must not be modified
	assert.Equal(t, "Grilled chicken salad with quinoa and vegetables", basePlan[1].Items)
}
