package docparse

import (
	"regexp"
	"strconv"
	"strings"
)

// ProjectMetadata is the best-effort structured record pulled from a
// project-data document. Every field is optional: a pattern that does not
// match leaves its field at the zero value, which is a normal outcome, not
// an error.
type ProjectMetadata struct {
	ProjectNumber         string   `json:"project_number,omitempty"`
	StartDate             string   `json:"start_date,omitempty"`
	EndDate               string   `json:"end_date,omitempty"`
	EstimatedParticipants int      `json:"estimated_participants,omitempty"`
	Subject               string   `json:"subject,omitempty"`
	ProjectType           string   `json:"project_type,omitempty"`
	ProjectObjectives     []string `json:"project_objectives,omitempty"`
}

type Participant struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// BiosMetadata holds what can be pulled from a bios & objectives document.
type BiosMetadata struct {
	Participants       []Participant `json:"participants,omitempty"`
	LearningObjectives []string      `json:"learning_objectives,omitempty"`
}

var (
	// State Department grant numbering convention, e.g. E/VRF-2025-0055.
	projectNumberRe = regexp.MustCompile(`E/[A-Z]{3}-\d{4}-\d{4}`)

	// Either 1/5/2025-style or "January 5, 2025"-style dates.
	dateRe = regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|[A-Z][a-z]+ \d{1,2}, \d{4}`)

	participantRe = regexp.MustCompile(`(?i)(\d+)\s*participants?`)
	subjectRe     = regexp.MustCompile(`(?i)Subject:\s*(.+)`)
	typeRe        = regexp.MustCompile(`(?i)Project Type:\s*(.+)`)

	numberedItemRe   = regexp.MustCompile(`^\s*\d+[.)]\s*(.*)$`)
	nameLabelRe      = regexp.MustCompile(`^([A-Z][A-Za-z .'-]+):\s*(.*)$`)
	objectivesRe     = regexp.MustCompile(`(?i)(?:learning )?objectives?:\s*`)
	objectivesLineRe = regexp.MustCompile(`(?i)^\s*(?:learning )?objectives?:`)
)

// ParseProjectData extracts structured metadata from the flat text of a
// project-data document. The date heuristic takes the first two date-like
// substrings in document order as start/end with no semantic validation;
// unrelated dates earlier in the text will win. Known limitation.
func ParseProjectData(text string) ProjectMetadata {
	var meta ProjectMetadata

	if m := projectNumberRe.FindString(text); m != "" {
		meta.ProjectNumber = m
	}

	if dates := dateRe.FindAllString(text, 2); len(dates) >= 2 {
		meta.StartDate = dates[0]
		meta.EndDate = dates[1]
	}

	if m := participantRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			meta.EstimatedParticipants = n
		}
	}

	if m := subjectRe.FindStringSubmatch(text); m != nil {
		meta.Subject = strings.TrimSpace(m[1])
	}
	if m := typeRe.FindStringSubmatch(text); m != nil {
		meta.ProjectType = strings.TrimSpace(m[1])
	}

	meta.ProjectObjectives = parseNumberedList(text)

	return meta
}

// parseNumberedList collects numbered-list items ("1." or "1)" at line
// start). Each item runs until the next numbered item or a blank line;
// continuation lines are folded in with a space.
func parseNumberedList(text string) []string {
	var items []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			item := strings.TrimSpace(strings.Join(current, " "))
			if item != "" {
				items = append(items, item)
			}
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if m := numberedItemRe.FindStringSubmatch(line); m != nil {
			flush()
			current = []string{strings.TrimSpace(m[1])}
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current != nil {
			current = append(current, strings.TrimSpace(line))
		}
	}
	flush()

	return items
}

// ParseBiosObjectives extracts participant name/bio pairs ("Name: bio" blocks)
// and learning objectives from a bios & objectives document.
func ParseBiosObjectives(text string) BiosMetadata {
	var meta BiosMetadata

	var current *Participant
	flush := func() {
		if current != nil {
			current.Bio = strings.TrimSpace(current.Bio)
			if current.Bio != "" {
				meta.Participants = append(meta.Participants, *current)
			}
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		// The objectives heading shape-matches a name label; it starts the
		// objectives section, not a participant.
		if objectivesLineRe.MatchString(line) {
			flush()
			continue
		}
		if m := nameLabelRe.FindStringSubmatch(line); m != nil {
			flush()
			// Labelled metadata lines use the same shape as names; skip the
			// ones the project-data parser owns.
			label := strings.TrimSpace(m[1])
			if strings.EqualFold(label, "subject") || strings.EqualFold(label, "project type") {
				continue
			}
			current = &Participant{Name: label, Bio: strings.TrimSpace(m[2])}
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current != nil {
			if current.Bio != "" {
				current.Bio += " "
			}
			current.Bio += strings.TrimSpace(line)
		}
	}
	flush()

	if loc := objectivesRe.FindStringIndex(text); loc != nil {
		rest := text[loc[1]:]
		if end := strings.Index(rest, "\n\n"); end >= 0 {
			rest = rest[:end]
		}
		for _, line := range strings.Split(rest, "\n") {
			if s := strings.TrimSpace(line); s != "" {
				meta.LearningObjectives = append(meta.LearningObjectives, s)
			}
		}
	}

	return meta
}

// Map flattens the metadata for JSONB storage alongside the document row.
func (m ProjectMetadata) Map() map[string]interface{} {
	out := map[string]interface{}{}
	if m.ProjectNumber != "" {
		out["project_number"] = m.ProjectNumber
	}
	if m.StartDate != "" {
		out["start_date"] = m.StartDate
	}
	if m.EndDate != "" {
		out["end_date"] = m.EndDate
	}
	if m.EstimatedParticipants > 0 {
		out["estimated_participants"] = m.EstimatedParticipants
	}
	if m.Subject != "" {
		out["subject"] = m.Subject
	}
	if m.ProjectType != "" {
		out["project_type"] = m.ProjectType
	}
	if len(m.ProjectObjectives) > 0 {
		out["project_objectives"] = m.ProjectObjectives
	}
	return out
}

func (m BiosMetadata) Map() map[string]interface{} {
	out := map[string]interface{}{}
	if len(m.Participants) > 0 {
		out["participants"] = m.Participants
	}
	if len(m.LearningObjectives) > 0 {
		out["learning_objectives"] = m.LearningObjectives
	}
	return out
}
