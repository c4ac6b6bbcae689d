package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses move draft -> in_review -> approved; the server stores
// whatever the client sends.
const (
	ProjectStatusDraft    = "draft"
	ProjectStatusInReview = "in_review"
	ProjectStatusApproved = "approved"
)

type Project struct {
	ID                    uuid.UUID  `json:"id"`
	Name                  string     `json:"name"`
	ProjectNumber         string     `json:"project_number,omitempty"`
	Status                string     `json:"status"`
	ProjectTitle          string     `json:"project_title,omitempty"`
	ProjectType           string     `json:"project_type,omitempty"`
	StartDate             string     `json:"start_date,omitempty"`
	EndDate               string     `json:"end_date,omitempty"`
	EstimatedParticipants int        `json:"estimated_participants,omitempty"`
	SponsoringAgency      string     `json:"sponsoring_agency,omitempty"`
	Subject               string     `json:"subject,omitempty"`
	ProjectDescription    string     `json:"project_description,omitempty"`
	ProjectObjectives     []string   `json:"project_objectives,omitempty"`
	CreatedBy             string     `json:"created_by,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// Document types uploaded against a project. One document per (project, type).
const (
	DocumentTypeProjectData    = "project_data"
	DocumentTypeBiosObjectives = "bios_objectives"
)

type Document struct {
	ID                uuid.UUID              `json:"id"`
	ProjectID         uuid.UUID              `json:"project_id"`
	Type              string                 `json:"type"`
	FileName          string                 `json:"file_name"`
	FileURL           string                 `json:"file_url"`
	FileSize          int64                  `json:"file_size"`
	ExtractedContent  string                 `json:"extracted_content,omitempty"`
	ExtractedMetadata map[string]interface{} `json:"extracted_metadata,omitempty"`
	UploadedBy        string                 `json:"uploaded_by,omitempty"`
	UploadedAt        time.Time              `json:"uploaded_at"`
}

type Proposal struct {
	ID        uuid.UUID              `json:"id"`
	ProjectID uuid.UUID              `json:"project_id"`
	Version   int                    `json:"version"`
	Status    string                 `json:"status"`
	Content   map[string]interface{} `json:"content"`
	PDFUrl    string                 `json:"pdf_url,omitempty"`
	CreatedBy string                 `json:"created_by,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ProposalHistory is an audit row recording the prior content of a proposal
// before an update. It is never consulted for conflict resolution.
type ProposalHistory struct {
	ID            uuid.UUID              `json:"id"`
	ProposalID    uuid.UUID              `json:"proposal_id"`
	Version       int                    `json:"version"`
	Content       map[string]interface{} `json:"content"`
	ChangeSummary string                 `json:"change_summary,omitempty"`
	EditedBy      string                 `json:"edited_by,omitempty"`
	EditedAt      time.Time              `json:"edited_at"`
}

const (
	ResourceCategoryGovernmental = "governmental"
	ResourceCategoryAcademic     = "academic"
	ResourceCategoryNonprofit    = "nonprofit"
	ResourceCategoryCultural     = "cultural"
)

// Resource is a library entry fed to generation as a candidate; inactive
// rows are retained but excluded from candidate lists.
type Resource struct {
	ID            uuid.UUID `json:"id"`
	Category      string    `json:"category"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	URL           string    `json:"url,omitempty"`
	MeetingFocus  string    `json:"meeting_focus,omitempty"`
	Price         string    `json:"price,omitempty"`
	Accessibility string    `json:"accessibility,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Conversation struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
