package sop

import (
	"encoding/json"
	"sort"
	"time"
)

// Document is an ordered set of sections plus metadata, version history
// and approval state. Mutation methods assume a single synchronous caller;
// there is no internal locking.
type Document struct {
	ID           string            `json:"id" db:"id"`
	Title        string            `json:"title" db:"title"`
	DocNumber    string            `json:"doc_number" db:"doc_number"`
	Sections     []Section         `json:"sections"`
	CreatedBy    string            `json:"created_by" db:"created_by"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	LastModified time.Time         `json:"last_modified" db:"last_modified"`
	Versions     []DocumentVersion `json:"versions"`
	Approved     bool              `json:"approved" db:"approved"`
	Approver     string            `json:"approver,omitempty" db:"approver"`
	Metadata     Metadata          `json:"metadata"`
	TemplateName string            `json:"template_name,omitempty" db:"template_name"`
}

// NewDocument creates an empty draft document.
func NewDocument(title, docNumber, createdBy string) *Document {
	now := time.Now().UTC()
	return &Document{
		Title:        title,
		DocNumber:    docNumber,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		LastModified: now,
	}
}

// AddSection appends a section. When order is negative the section is
// placed after the existing ones; otherwise the requested order decides
// placement. Either way the sequence is re-sorted and order values are
// re-derived as indices, keeping 0..N-1 contiguous. Titles are not checked
// for uniqueness here; lookups return the first match.
func (d *Document) AddSection(title, content string, contentType ContentType, order int) {
	if order < 0 {
		order = len(d.Sections)
	}
	d.Sections = append(d.Sections, Section{
		Title:       title,
		Content:     content,
		ContentType: contentType,
		Order:       order,
	})
	sort.SliceStable(d.Sections, func(i, j int) bool {
		return d.Sections[i].Order < d.Sections[j].Order
	})
	d.reorderSections()
}

// RemoveSection removes every section whose title matches, then closes
// order gaps. Removing an absent title is a no-op.
func (d *Document) RemoveSection(title string) {
	kept := d.Sections[:0]
	for _, sec := range d.Sections {
		if sec.Title != title {
			kept = append(kept, sec)
		}
	}
	d.Sections = kept
	d.reorderSections()
}

// GetSection returns the first section with the given title, or nil.
func (d *Document) GetSection(title string) *Section {
	for i := range d.Sections {
		if d.Sections[i].Title == title {
			return &d.Sections[i]
		}
	}
	return nil
}

// UpdateSection overwrites a section's content and provenance flag. It
// returns false, without mutating anything, when the section is absent or
// locked. This is the only sanctioned content-mutation path and the one
// that enforces the lock invariant.
func (d *Document) UpdateSection(title, content string, aiGenerated bool) bool {
	sec := d.GetSection(title)
	if sec == nil || sec.Locked {
		return false
	}
	sec.Content = content
	sec.AIGenerated = aiGenerated
	d.LastModified = time.Now().UTC()
	return true
}

// LogVersion appends a new audit-trail entry snapshotting the current
// sections. Version IDs are count+1 and strictly monotonic; history is
// append-only and survives unlock.
func (d *Document) LogVersion(user, role, changes string) {
	d.Versions = append(d.Versions, DocumentVersion{
		VersionID:       len(d.Versions) + 1,
		Timestamp:       time.Now().UTC(),
		User:            user,
		Role:            role,
		Changes:         changes,
		ContentSnapshot: cloneSections(d.Sections),
	})
	d.LastModified = time.Now().UTC()
}

// Approve marks the document approved, locks every section, and logs a
// terminal "Document approved" version. Not guarded against repeat calls;
// callers should check Approved first.
func (d *Document) Approve(user string) {
	d.Approved = true
	d.Approver = user
	for i := range d.Sections {
		d.Sections[i].Locked = true
	}
	d.LogVersion(user, "approver", "Document approved")
}

// Unlock is the administrative reversal of approval: it clears the
// approved flag and unlocks every section unconditionally. Version history
// is kept intact.
func (d *Document) Unlock() {
	d.Approved = false
	d.Approver = ""
	for i := range d.Sections {
		d.Sections[i].Locked = false
	}
	d.LastModified = time.Now().UTC()
}

// Clone returns a fully independent copy of the document: sections,
// versions with their snapshots, metadata and asset payloads.
func (d *Document) Clone() *Document {
	out := *d
	out.Sections = cloneSections(d.Sections)
	if d.Versions != nil {
		out.Versions = make([]DocumentVersion, len(d.Versions))
		for i := range d.Versions {
			out.Versions[i] = d.Versions[i].Clone()
		}
	}
	out.Metadata = d.Metadata.Clone()
	return &out
}

// reorderSections re-derives order as the section's index, closing gaps
// left by removals.
func (d *Document) reorderSections() {
	for i := range d.Sections {
		d.Sections[i].Order = i
	}
}

// Serialize encodes the document as indented JSON. Timestamps marshal as
// RFC 3339 (ISO-8601); the encoding round-trips through Deserialize with
// every field intact, including nested version snapshots.
func (d *Document) Serialize() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Deserialize decodes a document previously produced by Serialize.
func Deserialize(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
