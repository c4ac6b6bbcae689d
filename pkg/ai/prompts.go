package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

const proposalGenerationPrompt = `You are a specialized assistant for the San Diego Diplomacy Council, responsible for writing professional proposals for the International Visitor Leadership Program (IVLP).

## CONTEXT
The San Diego Diplomacy Council responds to project solicitations from the U.S. Department of State. For each project you must produce a proposal explaining why San Diego is the ideal destination.

## PROPOSAL STRUCTURE (FOLLOW EXACTLY)

1. **Why San Diego?**
   One persuasive paragraph explaining why San Diego is ideal for this specific project.
   - Mention the strategic geographic position where relevant
   - Mention the unique resources available
   - Tailor it to the project theme

2. **Governmental Resources** — for each resource:
   - Organization name
   - URL (official website)
   - Description (2-3 sentences)
   - Meeting focus: the specific purpose of the meeting for this project

3. **Academic Resources** — same format as governmental

4. **Nonprofit Resources** — same format as governmental

5. **Cultural Activities** — for each activity:
   - Name, URL, price, description, and accessibility (how to get there)

## RULES

1. Propose real, relevant San Diego organizations based on your knowledge
2. You may draw on the provided resource database but are not limited to it
3. Provide official website URLs (.gov, .edu, .org sites)
4. The meeting focus must be SPECIFIC to the project, never generic
5. Formal, diplomatic, governmental tone
6. Tailor "Why San Diego?" to the specific project theme
7. REQUIRED: propose AT LEAST 3-5 resources in EACH category (governmental, academic, nonprofit, cultural)
8. Propose recognized, credible, relevant organizations

## OUTPUT FORMAT

Respond with ONLY a single JSON object — no commentary, no markdown, no code fences:
{
  "why_san_diego": "...",
  "governmental_resources": [
    {"name": "Full organization name", "url": "https://official-site.gov", "description": "Detailed description of the organization and its activities", "meeting_focus": "Specific purpose of this meeting for the project"}
  ],
  "academic_resources": [
    {"name": "...", "url": "https://...", "description": "...", "meeting_focus": "..."}
  ],
  "nonprofit_resources": [
    {"name": "...", "url": "https://...", "description": "...", "meeting_focus": "..."}
  ],
  "cultural_activities": [
    {"name": "...", "url": "https://...", "price": "e.g. $25 per person, Free, $10-30", "description": "...", "accessibility": "e.g. Located in Balboa Park, accessible by trolley"}
  ]
}

IMPORTANT: do NOT include "id" or "status" fields. Propose only the resources you judge relevant.`

const chatSystemPrompt = `You are an AI assistant for the San Diego Diplomacy Council. You help users:
1. Improve their IVLP proposals
2. Find relevant San Diego resources
3. Rephrase proposal sections
4. Answer questions about the process

You have access to the current project details, its documents, the current proposal, and the San Diego resource database. Be professional, precise, and helpful. If you do not know, say so.`

// candidateResourceLimit caps how many library entries are inlined into the
// generation prompt; the model is told how many more exist.
const candidateResourceLimit = 20

// BuildGenerationPrompt assembles the user prompt for a proposal generation
// call from the project record (with its extracted document content), the
// optional bios & objectives metadata, and the candidate resource library.
func BuildGenerationPrompt(projectData, biosObjectives map[string]interface{}, resources []map[string]interface{}) string {
	var b strings.Builder

	b.WriteString("## PROJECT TO ANALYZE\n\n### Project Data\n")
	b.WriteString(marshalIndent(projectData))
	b.WriteString("\n")

	if len(biosObjectives) > 0 {
		b.WriteString("\n### Bios & Objectives\n")
		b.WriteString(marshalIndent(biosObjectives))
		b.WriteString("\n")
	}

	b.WriteString("\n### Existing Database Resources (OPTIONAL — for reference)\n")
	if len(resources) > 0 {
		sample := resources
		if len(sample) > candidateResourceLimit {
			sample = sample[:candidateResourceLimit]
		}
		b.WriteString("You may draw on these existing resources but are NOT limited to them.\n\n")
		b.WriteString(marshalIndent(sample))
		if extra := len(resources) - len(sample); extra > 0 {
			fmt.Fprintf(&b, "\n... (and %d more resources available)\n", extra)
		}
	} else {
		b.WriteString("No resources in the database. Propose resources from your knowledge of San Diego.\n")
	}

	b.WriteString(`
---

## GENERATION INSTRUCTIONS

1. Analyze the project theme and objectives above
2. For EACH category (governmental, academic, nonprofit, cultural):
   - Propose 3-5 RELEVANT and REAL resources
   - Use organizations that exist in San Diego, with official URLs
   - Write a clear 2-3 sentence description
   - Write a meeting focus SPECIFIC to THIS project
3. Quality over quantity: credible, recognized organizations only

Now generate a complete proposal as a single JSON object.
`)

	return b.String()
}

// BuildChatPrompt produces the chat system prompt with the aggregated
// project context appended.
func BuildChatPrompt(projectContext map[string]interface{}) string {
	return chatSystemPrompt + "\n\n## CURRENT PROJECT CONTEXT\n" + marshalIndent(projectContext) + "\n"
}

func marshalIndent(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
