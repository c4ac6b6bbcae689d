package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proposal-manager/internal/model"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "wrapped in prose",
			input: "Here is the proposal you asked for:\n{\"a\":1}\nLet me know if you need changes.",
			want:  `{"a":1}`,
		},
		{
			name:  "code fence",
			input: "```json\n{\"a\":{\"b\":2}}\n```",
			want:  `{"a":{"b":2}}`,
		},
		{
			name:  "nested braces use the outermost span",
			input: `prefix {"outer":{"inner":true}} suffix`,
			want:  `{"outer":{"inner":true}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, json.Valid([]byte(got)))
		})
	}
}

func TestExtractJSON_ContentRoundTripThroughProse(t *testing.T) {
	original := model.ProposalContent{
		WhySanDiego: "Binational institutions and a dense clean-energy sector.",
		GovernmentalResources: []model.ResourceItem{
			{Name: "City Hall", URL: "https://www.sandiego.gov", Description: "Municipal government.", MeetingFocus: "Local governance."},
		},
		AcademicResources:  []model.ResourceItem{},
		NonprofitResources: []model.ResourceItem{},
		CulturalActivities: []model.CulturalActivity{
			{Name: "Balboa Park", URL: "https://balboapark.org", Price: "Free", Description: "Museums.", Accessibility: "Trolley."},
		},
	}
	b, err := json.Marshal(original)
	require.NoError(t, err)

	wrapped := "Here is the result:\n" + string(b) + "\nThanks!"
	raw, err := ExtractJSON(wrapped)
	require.NoError(t, err)

	var parsed model.ProposalContent
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))
	assert.Equal(t, original, parsed)
}

func TestExtractJSON_NoObject(t *testing.T) {
	for _, input := range []string{"", "no braces here", "only } closing", "{ only opening"} {
		_, err := ExtractJSON(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestBuildGenerationPrompt_IncludesInputs(t *testing.T) {
	prompt := BuildGenerationPrompt(
		map[string]interface{}{"subject": "Energy Policy"},
		map[string]interface{}{"participants": []string{"Maria Lopez"}},
		[]map[string]interface{}{{"name": "UCSD", "category": "academic"}},
	)
	assert.Contains(t, prompt, "Energy Policy")
	assert.Contains(t, prompt, "Maria Lopez")
	assert.Contains(t, prompt, "UCSD")
}

func TestBuildGenerationPrompt_LimitsCandidates(t *testing.T) {
	resources := make([]map[string]interface{}, candidateResourceLimit+10)
	for i := range resources {
		resources[i] = map[string]interface{}{"name": "r", "n": i}
	}
	prompt := BuildGenerationPrompt(nil, nil, resources)
	// The candidate past the cap never reaches the prompt.
	assert.NotContains(t, prompt, `"n": `+itoa(candidateResourceLimit+5))
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
