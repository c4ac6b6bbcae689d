package model

// Go models for the proposal content contract exchanged between the AI
// generation step, the editor, and the exporters. The shape mirrors
// proposal.schema.json used for validation.

// Item statuses are client-side annotations layered onto generated or
// manually-added entries. "deleted" is a tombstone: the entry stays in the
// array and is filtered out at render and export time only.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusEdited   = "edited"
	StatusDeleted  = "deleted"
)

type ResourceItem struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	Description  string `json:"description"`
	MeetingFocus string `json:"meeting_focus"`
	Status       string `json:"status,omitempty"`
}

type CulturalActivity struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	URL           string `json:"url"`
	Price         string `json:"price"`
	Description   string `json:"description"`
	Accessibility string `json:"accessibility"`
	Status        string `json:"status,omitempty"`
}

type ProposalContent struct {
	WhySanDiego           string             `json:"why_san_diego"`
	GovernmentalResources []ResourceItem     `json:"governmental_resources"`
	AcademicResources     []ResourceItem     `json:"academic_resources"`
	NonprofitResources    []ResourceItem     `json:"nonprofit_resources"`
	CulturalActivities    []CulturalActivity `json:"cultural_activities"`
}

// Active returns a copy of the content with tombstoned entries filtered out
// of every category. The receiver is left untouched; deleted items are never
// spliced from the stored arrays.
func (c *ProposalContent) Active() *ProposalContent {
	out := &ProposalContent{WhySanDiego: c.WhySanDiego}
	for _, r := range c.GovernmentalResources {
		if r.Status != StatusDeleted {
			out.GovernmentalResources = append(out.GovernmentalResources, r)
		}
	}
	for _, r := range c.AcademicResources {
		if r.Status != StatusDeleted {
			out.AcademicResources = append(out.AcademicResources, r)
		}
	}
	for _, r := range c.NonprofitResources {
		if r.Status != StatusDeleted {
			out.NonprofitResources = append(out.NonprofitResources, r)
		}
	}
	for _, a := range c.CulturalActivities {
		if a.Status != StatusDeleted {
			out.CulturalActivities = append(out.CulturalActivities, a)
		}
	}
	return out
}

// ResourceURLs collects every non-empty URL across the four categories, in
// category then item order.
func (c *ProposalContent) ResourceURLs() []string {
	var urls []string
	for _, r := range c.GovernmentalResources {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	for _, r := range c.AcademicResources {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	for _, r := range c.NonprofitResources {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	for _, a := range c.CulturalActivities {
		if a.URL != "" {
			urls = append(urls, a.URL)
		}
	}
	return urls
}

// DropURLs physically removes entries whose URL is present in the given set.
// Generation uses this to drop unreachable AI suggestions before the content
// is ever persisted; it is independent of the editor's tombstone mechanism.
func (c *ProposalContent) DropURLs(invalid map[string]bool) {
	if len(invalid) == 0 {
		return
	}
	keepItems := func(in []ResourceItem) []ResourceItem {
		out := in[:0]
		for _, r := range in {
			if !invalid[r.URL] {
				out = append(out, r)
			}
		}
		return out
	}
	c.GovernmentalResources = keepItems(c.GovernmentalResources)
	c.AcademicResources = keepItems(c.AcademicResources)
	c.NonprofitResources = keepItems(c.NonprofitResources)

	acts := c.CulturalActivities[:0]
	for _, a := range c.CulturalActivities {
		if !invalid[a.URL] {
			acts = append(acts, a)
		}
	}
	c.CulturalActivities = acts
}
