package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_Accepts(t *testing.T) {
	b, err := json.Marshal(sampleContent())
	require.NoError(t, err)
	assert.NoError(t, ValidateJSON(b))
}

func TestValidateJSON_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "missing why_san_diego",
			raw: `{"governmental_resources":[],"academic_resources":[],
				"nonprofit_resources":[],"cultural_activities":[]}`,
		},
		{
			name: "empty why_san_diego",
			raw: `{"why_san_diego":"","governmental_resources":[],"academic_resources":[],
				"nonprofit_resources":[],"cultural_activities":[]}`,
		},
		{
			name: "resource missing meeting_focus",
			raw: `{"why_san_diego":"x","governmental_resources":[
				{"name":"A","url":"https://a.example.com","description":"d"}],
				"academic_resources":[],"nonprofit_resources":[],"cultural_activities":[]}`,
		},
		{
			name: "activity missing accessibility",
			raw: `{"why_san_diego":"x","governmental_resources":[],"academic_resources":[],
				"nonprofit_resources":[],"cultural_activities":[
				{"name":"A","url":"https://a.example.com","price":"Free","description":"d"}]}`,
		},
		{
			name: "unknown status",
			raw: `{"why_san_diego":"x","governmental_resources":[
				{"name":"A","url":"https://a.example.com","description":"d","meeting_focus":"m","status":"archived"}],
				"academic_resources":[],"nonprofit_resources":[],"cultural_activities":[]}`,
		},
		{
			name: "not an object",
			raw:  `["just","an","array"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateJSON([]byte(tt.raw)))
		})
	}
}

func TestValidateMap(t *testing.T) {
	m := map[string]interface{}{
		"why_san_diego":          "Strong binational institutions.",
		"governmental_resources": []interface{}{},
		"academic_resources":     []interface{}{},
		"nonprofit_resources":    []interface{}{},
		"cultural_activities":    []interface{}{},
	}
	assert.NoError(t, ValidateMap(m))

	delete(m, "cultural_activities")
	assert.Error(t, ValidateMap(m))
}
