package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"proposal-manager/internal/domain"
	"proposal-manager/internal/model"
)

// BuildDocx assembles the proposal as a WordprocessingML package. The layout
// mirrors the HTML/PDF export: header block, Why San Diego, the three
// resource sections, then cultural activities; tombstoned entries are
// filtered out.
func BuildDocx(project *domain.Project, content *model.ProposalContent, contact ContactInfo) ([]byte, error) {
	c := content.Active()
	var d docBuilder

	title := project.ProjectTitle
	if title == "" {
		title = project.Name
	}
	d.heading1(title)

	if project.Subject != "" {
		d.field("Subject", project.Subject)
	}
	if project.ProjectType != "" {
		d.field("Project Type", project.ProjectType)
	}
	if project.ProjectNumber != "" {
		d.field("Project Number", project.ProjectNumber)
	}
	d.field("NPA", contact.OrgName)
	if project.StartDate != "" {
		d.field("Project Dates", project.StartDate+" – "+project.EndDate)
	}
	if project.EstimatedParticipants > 0 {
		d.field("Participants", fmt.Sprintf("%d", project.EstimatedParticipants))
	}
	d.plain(fmt.Sprintf("Point of Contact: %s, %s", contact.Name, contact.Title))
	d.plain(contact.Phone)
	d.plain(contact.Email)
	d.plain("")

	d.heading2("Why San Diego?")
	d.plain(c.WhySanDiego)

	d.resourceSection("Governmental Resources", c.GovernmentalResources)
	d.resourceSection("Academic Resources", c.AcademicResources)
	d.resourceSection("Nonprofit Resources", c.NonprofitResources)

	d.heading2("Cultural Activities")
	for _, a := range c.CulturalActivities {
		d.heading3(a.Name)
		if a.URL != "" {
			d.plain(a.URL)
		}
		if a.Price != "" {
			d.plain("Price: " + a.Price)
		}
		d.plain(a.Description)
		if a.Accessibility != "" {
			d.labelled("Accessibility", a.Accessibility)
		}
		d.plain("")
	}

	return packDocx(d.String())
}

func (d *docBuilder) resourceSection(title string, items []model.ResourceItem) {
	d.heading2(title)
	for _, r := range items {
		d.heading3(r.Name)
		if r.URL != "" {
			d.plain(r.URL)
		}
		d.plain(r.Description)
		if r.MeetingFocus != "" {
			d.labelled("Meeting Focus", r.MeetingFocus)
		}
		d.plain("")
	}
}

// docBuilder accumulates w:p elements for word/document.xml.
type docBuilder struct {
	b strings.Builder
}

func (d *docBuilder) String() string { return d.b.String() }

func (d *docBuilder) para(props string, runs ...string) {
	d.b.WriteString("<w:p>")
	if props != "" {
		d.b.WriteString("<w:pPr>" + props + "</w:pPr>")
	}
	for _, r := range runs {
		d.b.WriteString(r)
	}
	d.b.WriteString("</w:p>")
}

// run emits a text run; size is in half-points, zero means inherit.
func run(text string, bold, italic bool, size int) string {
	var props strings.Builder
	if bold {
		props.WriteString("<w:b/>")
	}
	if italic {
		props.WriteString("<w:i/>")
	}
	if size > 0 {
		fmt.Fprintf(&props, `<w:sz w:val="%d"/>`, size)
	}
	var b strings.Builder
	b.WriteString("<w:r>")
	if props.Len() > 0 {
		b.WriteString("<w:rPr>" + props.String() + "</w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">` + escapeXML(text) + "</w:t></w:r>")
	return b.String()
}

func (d *docBuilder) heading1(text string) {
	d.para(`<w:spacing w:after="240"/>`, run(text, true, false, 36))
}

func (d *docBuilder) heading2(text string) {
	d.para(`<w:spacing w:before="240" w:after="120"/>`, run(text, true, false, 28))
}

func (d *docBuilder) heading3(text string) {
	d.para(`<w:spacing w:before="120"/>`, run(text, true, false, 23))
}

func (d *docBuilder) plain(text string) {
	d.para("", run(text, false, false, 0))
}

func (d *docBuilder) field(label, value string) {
	d.para("", run(label+": ", true, false, 0), run(value, false, false, 0))
}

func (d *docBuilder) labelled(label, value string) {
	d.para("", run(label+": ", false, true, 0), run(value, false, false, 0))
}

func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentFooter = `<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
	`<w:pgMar w:top="1080" w:right="1296" w:bottom="1080" w:left="1296"/></w:sectPr></w:body></w:document>`

func packDocx(body string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name, data string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentHeader + body + documentFooter},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.data)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
