package docparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjectData_ProjectNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "embedded in sentence",
			text: "Grant award E/VRF-2025-0055 covers the spring cohort.",
			want: "E/VRF-2025-0055",
		},
		{
			name: "first match wins",
			text: "E/ABC-2024-0001 supersedes E/XYZ-2023-0009.",
			want: "E/ABC-2024-0001",
		},
		{
			name: "absent",
			text: "No grant number mentioned anywhere.",
			want: "",
		},
		{
			name: "wrong shape not matched",
			text: "Reference E/AB-2025-0055 uses only two letters.",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := ParseProjectData(tt.text)
			assert.Equal(t, tt.want, meta.ProjectNumber)
		})
	}
}

func TestParseProjectData_Dates(t *testing.T) {
	t.Run("first two dates in document order become start and end", func(t *testing.T) {
		meta := ParseProjectData("The visit runs 3/10/2025 through 3/21/2025, with a reception on 3/22/2025.")
		assert.Equal(t, "3/10/2025", meta.StartDate)
		assert.Equal(t, "3/21/2025", meta.EndDate)
	})

	t.Run("long-form month dates", func(t *testing.T) {
		meta := ParseProjectData("Arrival: January 5, 2025. Departure: January 17, 2025.")
		assert.Equal(t, "January 5, 2025", meta.StartDate)
		assert.Equal(t, "January 17, 2025", meta.EndDate)
	})

	t.Run("fewer than two dates leaves both absent", func(t *testing.T) {
		meta := ParseProjectData("Kickoff on 4/1/2025 only.")
		assert.Empty(t, meta.StartDate)
		assert.Empty(t, meta.EndDate)
	})

	t.Run("no semantic validation on ordering", func(t *testing.T) {
		// An unrelated earlier date wins the start slot; documented heuristic.
		meta := ParseProjectData("Signed 1/1/2020. Program runs 6/1/2025 to 6/15/2025.")
		assert.Equal(t, "1/1/2020", meta.StartDate)
		assert.Equal(t, "6/1/2025", meta.EndDate)
	})
}

func TestParseProjectData_Participants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "plural", text: "We expect 12 participants this cycle.", want: 12},
		{name: "singular", text: "1 participant will attend remotely.", want: 1},
		{name: "case insensitive", text: "Twelve was revised to 8 PARTICIPANTS.", want: 8},
		{name: "absent", text: "Attendance is not yet known.", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseProjectData(tt.text).EstimatedParticipants)
		})
	}
}

func TestParseProjectData_LabelledFields(t *testing.T) {
	text := "subject: Renewable Energy Policy\nPROJECT TYPE: Multi-Regional Project\n"
	meta := ParseProjectData(text)
	assert.Equal(t, "Renewable Energy Policy", meta.Subject)
	assert.Equal(t, "Multi-Regional Project", meta.ProjectType)
}

func TestParseProjectData_Objectives(t *testing.T) {
	t.Run("dot and paren numbering", func(t *testing.T) {
		text := "Objectives:\n1. Examine local governance\n2) Meet civic leaders\n"
		meta := ParseProjectData(text)
		assert.Equal(t, []string{"Examine local governance", "Meet civic leaders"}, meta.ProjectObjectives)
	})

	t.Run("continuation lines fold into the item", func(t *testing.T) {
		text := "1. Examine approaches to\nrenewable energy policy\n2. Meet with legislators\n"
		meta := ParseProjectData(text)
		require.Len(t, meta.ProjectObjectives, 2)
		assert.Equal(t, "Examine approaches to renewable energy policy", meta.ProjectObjectives[0])
	})

	t.Run("blank line terminates an item", func(t *testing.T) {
		text := "1. First objective\n\nUnrelated paragraph text.\n"
		meta := ParseProjectData(text)
		assert.Equal(t, []string{"First objective"}, meta.ProjectObjectives)
	})

	t.Run("no numbered list", func(t *testing.T) {
		assert.Empty(t, ParseProjectData("Plain prose only.").ProjectObjectives)
	})
}

func TestParseProjectData_AllAbsent(t *testing.T) {
	meta := ParseProjectData("An unrelated memo about office supplies.")
	assert.Equal(t, ProjectMetadata{}, meta)
	assert.Empty(t, meta.Map())
}

func TestParseBiosObjectives(t *testing.T) {
	text := "Maria Lopez: Director of energy programs at a regional ministry.\n" +
		"She leads a team of twelve.\n" +
		"\n" +
		"Jan Novak: Municipal planner focused on grid modernization.\n" +
		"\n" +
		"Learning Objectives:\n" +
		"Understand state-level regulation\n" +
		"Observe utility partnerships\n"

	meta := ParseBiosObjectives(text)

	require.Len(t, meta.Participants, 2)
	assert.Equal(t, "Maria Lopez", meta.Participants[0].Name)
	assert.Equal(t, "Director of energy programs at a regional ministry. She leads a team of twelve.", meta.Participants[0].Bio)
	assert.Equal(t, "Jan Novak", meta.Participants[1].Name)

	assert.Equal(t, []string{"Understand state-level regulation", "Observe utility partnerships"}, meta.LearningObjectives)
}

func TestParseBiosObjectives_SkipsProjectDataLabels(t *testing.T) {
	text := "Subject: Energy Policy\nMaria Lopez: Energy director.\n"
	meta := ParseBiosObjectives(text)
	require.Len(t, meta.Participants, 1)
	assert.Equal(t, "Maria Lopez", meta.Participants[0].Name)
}
