package sop

// ContentType selects the per-format rendering strategy for a section.
type ContentType string

const (
	ContentText      ContentType = "text"
	ContentImage     ContentType = "image"
	ContentTable     ContentType = "table"
	ContentFlowchart ContentType = "flowchart"
	ContentLatex     ContentType = "latex"
)

// ContentTypes lists every valid content type, in dispatch-table order.
func ContentTypes() []ContentType {
	return []ContentType{ContentText, ContentImage, ContentTable, ContentFlowchart, ContentLatex}
}

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentText, ContentImage, ContentTable, ContentFlowchart, ContentLatex:
		return true
	}
	return false
}

// Section is one titled, typed block of document content.
type Section struct {
	Title       string            `json:"title" db:"title"`
	Content     string            `json:"content" db:"content"`
	ContentType ContentType       `json:"content_type" db:"content_type"`
	AIGenerated bool              `json:"ai_generated" db:"ai_generated"`
	Locked      bool              `json:"locked" db:"locked"`
	Order       int               `json:"order" db:"section_order"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Clone returns an independent copy of the section, including its
// metadata map. Used for version snapshots and whole-document copies.
func (s *Section) Clone() Section {
	out := *s
	if s.Metadata != nil {
		out.Metadata = make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
