package sop

import "time"

// DocumentVersion is one immutable audit-trail entry: a full snapshot of
// the document's sections tied to the actor who logged it. VersionIDs are
// 1-based and never reused.
type DocumentVersion struct {
	VersionID       int       `json:"version_id" db:"version_id"`
	Timestamp       time.Time `json:"timestamp" db:"timestamp"`
	User            string    `json:"user" db:"user_name"`
	Role            string    `json:"role" db:"role"` // "doer", "reviewer", "approver", "admin"
	Changes         string    `json:"changes" db:"changes"`
	ContentSnapshot []Section `json:"content_snapshot"`
}

// Clone returns an independent copy of the version, including its
// snapshot sections.
func (v *DocumentVersion) Clone() DocumentVersion {
	out := *v
	out.ContentSnapshot = cloneSections(v.ContentSnapshot)
	return out
}

func cloneSections(in []Section) []Section {
	if in == nil {
		return nil
	}
	out := make([]Section, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
