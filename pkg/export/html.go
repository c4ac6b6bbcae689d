package export

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"proposal-manager/internal/domain"
	"proposal-manager/internal/model"
)

//go:embed templates/proposal.html
var proposalTemplate string

//go:embed templates/style.css
var proposalStyle string

// ContactInfo is the point of contact block printed in the proposal header.
type ContactInfo struct {
	OrgName string
	Name    string
	Title   string
	Phone   string
	Email   string
}

// DefaultContact matches the organization's standing proposal header.
var DefaultContact = ContactInfo{
	OrgName: "San Diego Diplomacy Council",
	Name:    "Lulu Bonning",
	Title:   "Executive Director",
	Phone:   "(619) 289-8642",
	Email:   "lulu@sandiegodiplomacy.org",
}

type htmlData struct {
	Project *domain.Project
	Content *model.ProposalContent
	Contact ContactInfo
	Style   template.CSS
}

// RenderHTML produces the fixed-layout proposal document as a standalone
// HTML page with the stylesheet inlined. Tombstoned entries are filtered
// here, at render time; the stored content keeps them.
func RenderHTML(project *domain.Project, content *model.ProposalContent, contact ContactInfo) (string, error) {
	tpl, err := template.New("proposal").Funcs(template.FuncMap{
		"urlLabel": URLLabel,
	}).Parse(proposalTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tpl.Execute(&buf, htmlData{
		Project: project,
		Content: content.Active(),
		Contact: contact,
		Style:   template.CSS(proposalStyle),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// URLLabel shortens a resource URL to a tidy eTLD+1 label for display
// ("https://www.sandiego.gov/police" -> "sandiego.gov").
func URLLabel(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	candidate := rawURL
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Hostname() == "" {
		return rawURL
	}
	host := parsed.Hostname()
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}
