package sop

import (
	"bytes"
	"testing"
	"time"
)

func TestSectionOrderStaysContiguous(t *testing.T) {
	type step struct {
		op    string // "add" or "remove"
		title string
		order int
	}
	tests := []struct {
		name       string
		steps      []step
		wantTitles []string
	}{
		{
			name: "appends in call order",
			steps: []step{
				{op: "add", title: "Purpose", order: -1},
				{op: "add", title: "Scope", order: -1},
				{op: "add", title: "Procedure", order: -1},
			},
			wantTitles: []string{"Purpose", "Scope", "Procedure"},
		},
		{
			name: "removal closes gaps",
			steps: []step{
				{op: "add", title: "Purpose", order: -1},
				{op: "add", title: "Scope", order: -1},
				{op: "add", title: "Procedure", order: -1},
				{op: "remove", title: "Scope"},
			},
			wantTitles: []string{"Purpose", "Procedure"},
		},
		{
			name: "explicit order inserts mid-sequence",
			steps: []step{
				{op: "add", title: "Scope", order: -1},
				{op: "add", title: "Procedure", order: -1},
				{op: "add", title: "Purpose", order: 0},
			},
			wantTitles: []string{"Scope", "Purpose", "Procedure"},
		},
		{
			name: "remove absent title is a no-op",
			steps: []step{
				{op: "add", title: "Purpose", order: -1},
				{op: "remove", title: "Missing"},
			},
			wantTitles: []string{"Purpose"},
		},
		{
			name: "interleaved adds and removes",
			steps: []step{
				{op: "add", title: "A", order: -1},
				{op: "add", title: "B", order: -1},
				{op: "remove", title: "A"},
				{op: "add", title: "C", order: -1},
				{op: "add", title: "D", order: 0},
				{op: "remove", title: "C"},
			},
			wantTitles: []string{"B", "D"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument("Test", "SOP-001", "tester")
			for _, s := range tt.steps {
				switch s.op {
				case "add":
					doc.AddSection(s.title, "", ContentText, s.order)
				case "remove":
					doc.RemoveSection(s.title)
				}
			}
			if len(doc.Sections) != len(tt.wantTitles) {
				t.Fatalf("got %d sections, want %d", len(doc.Sections), len(tt.wantTitles))
			}
			for i, sec := range doc.Sections {
				if sec.Order != i {
					t.Errorf("section %q has order %d, want index %d", sec.Title, sec.Order, i)
				}
				if sec.Title != tt.wantTitles[i] {
					t.Errorf("section at %d is %q, want %q", i, sec.Title, tt.wantTitles[i])
				}
			}
		})
	}
}

func TestUpdateSection(t *testing.T) {
	t.Run("locked section never changes", func(t *testing.T) {
		doc := NewDocument("Test", "SOP-001", "tester")
		doc.AddSection("Purpose", "original", ContentText, -1)
		doc.Sections[0].Locked = true

		if doc.UpdateSection("Purpose", "changed", false) {
			t.Fatal("UpdateSection returned true for a locked section")
		}
		if got := doc.Sections[0].Content; got != "original" {
			t.Errorf("content = %q, want %q", got, "original")
		}
	})

	t.Run("unlocked section updates content and timestamp", func(t *testing.T) {
		doc := NewDocument("Test", "SOP-001", "tester")
		doc.AddSection("Purpose", "original", ContentText, -1)
		before := doc.LastModified

		time.Sleep(time.Millisecond)
		if !doc.UpdateSection("Purpose", "changed", true) {
			t.Fatal("UpdateSection returned false for an unlocked section")
		}
		sec := doc.GetSection("Purpose")
		if sec.Content != "changed" {
			t.Errorf("content = %q, want %q", sec.Content, "changed")
		}
		if !sec.AIGenerated {
			t.Error("ai_generated flag not set")
		}
		if !doc.LastModified.After(before) {
			t.Error("last_modified not advanced")
		}
	})

	t.Run("missing section fails without mutating", func(t *testing.T) {
		doc := NewDocument("Test", "SOP-001", "tester")
		if doc.UpdateSection("Missing", "x", false) {
			t.Fatal("UpdateSection returned true for a missing section")
		}
	})
}

func TestApprove(t *testing.T) {
	doc := NewDocument("Test", "SOP-001", "tester")
	doc.AddSection("Purpose", "P", ContentText, -1)
	doc.AddSection("Scope", "S", ContentText, -1)
	doc.LogVersion("alice", "doer", "initial draft")

	doc.Approve("bob")

	if !doc.Approved {
		t.Error("approved flag not set")
	}
	if doc.Approver != "bob" {
		t.Errorf("approver = %q, want %q", doc.Approver, "bob")
	}
	for _, sec := range doc.Sections {
		if !sec.Locked {
			t.Errorf("section %q not locked after approval", sec.Title)
		}
	}
	if len(doc.Versions) != 2 {
		t.Fatalf("got %d versions, want 2", len(doc.Versions))
	}
	last := doc.Versions[len(doc.Versions)-1]
	if last.Changes != "Document approved" {
		t.Errorf("changes = %q, want %q", last.Changes, "Document approved")
	}
	if last.Role != "approver" {
		t.Errorf("role = %q, want %q", last.Role, "approver")
	}

	doc.Unlock()
	if doc.Approved {
		t.Error("approved flag still set after unlock")
	}
	for _, sec := range doc.Sections {
		if sec.Locked {
			t.Errorf("section %q still locked after unlock", sec.Title)
		}
	}
	if len(doc.Versions) != 2 {
		t.Error("unlock must not prune version history")
	}
}

func TestLogVersionMonotonicAndSnapshotIsolation(t *testing.T) {
	doc := NewDocument("Test", "SOP-001", "tester")
	doc.AddSection("Purpose", "v1", ContentText, -1)

	for i := 1; i <= 4; i++ {
		doc.LogVersion("alice", "doer", "edit")
		if got := doc.Versions[i-1].VersionID; got != i {
			t.Errorf("call %d produced version_id %d", i, got)
		}
	}

	// Mutating the live document must not reach into stored snapshots.
	snapshot := doc.Versions[0].ContentSnapshot
	doc.UpdateSection("Purpose", "mutated", false)
	doc.Sections[0].Metadata = map[string]string{"k": "v"}
	if snapshot[0].Content != "v1" {
		t.Errorf("snapshot content = %q, want %q", snapshot[0].Content, "v1")
	}
	if snapshot[0].Metadata != nil {
		t.Error("snapshot metadata aliases live section")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	doc := NewDocument("Thermal Cycling Test", "SOP-TC-001", "alice")
	doc.ID = "doc-1"
	doc.AddSection("Purpose", "Ensure modules survive thermal cycling.", ContentText, -1)
	doc.AddSection("Limits", "| A | B |\n|---|---|\n| 1 | 2 |", ContentTable, -1)
	doc.Sections[0].Metadata = map[string]string{"translated": "true"}
	doc.Metadata = Metadata{
		Company:       "Acme Labs",
		Revision:      "B",
		EffectiveDate: "2026-09-01",
		Standards:     []string{"IEC 61215"},
		CompanyLogo: &AssetRecord{
			Name:     "logo.png",
			Format:   "PNG",
			Size:     128,
			Width:    40,
			Height:   40,
			Base64:   "aGVsbG8=",
			MIMEType: "image/png",
		},
		Flowcharts: []AssetRecord{{
			Name:     "flow.pdf",
			Format:   "PDF",
			Size:     256,
			Raw:      []byte{0x25, 0x50, 0x44, 0x46},
			MIMEType: "application/pdf",
		}},
		Extra: map[string]string{"division": "QA"},
	}
	doc.LogVersion("alice", "doer", "initial draft")
	doc.Approve("bob")

	data, err := doc.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	// Field-by-field equality via a second encoding: time.Time carries a
	// monotonic clock reading that never survives JSON, so byte comparison
	// of the canonical encoding is the meaningful equality here.
	data2, err := got.Serialize()
	if err != nil {
		t.Fatalf("re-Serialize: %v", err)
	}
	if !bytes.Equal(data, data2) {
		t.Error("round-trip changed the document encoding")
	}
	if len(got.Versions) != 2 || got.Versions[1].Changes != "Document approved" {
		t.Error("version history did not survive the round trip")
	}
	if got.Metadata.CompanyLogo == nil || got.Metadata.CompanyLogo.Base64 != "aGVsbG8=" {
		t.Error("logo asset did not survive the round trip")
	}
	if got.Metadata.Extra["division"] != "QA" {
		t.Error("extension map did not survive the round trip")
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := NewDocument("Test", "SOP-001", "tester")
	doc.AddSection("Purpose", "P", ContentText, -1)
	doc.Metadata.EquipmentPhotos = []AssetRecord{{Name: "a.png", Base64: "eA=="}}
	doc.Metadata.Standards = []string{"IEC 61215"}
	doc.LogVersion("alice", "doer", "draft")

	cp := doc.Clone()
	cp.Sections[0].Content = "changed"
	cp.Metadata.EquipmentPhotos[0].Name = "b.png"
	cp.Metadata.Standards[0] = "IEC 61730"
	cp.Versions[0].ContentSnapshot[0].Content = "changed"

	if doc.Sections[0].Content != "P" {
		t.Error("clone shares sections with the original")
	}
	if doc.Metadata.EquipmentPhotos[0].Name != "a.png" {
		t.Error("clone shares asset records with the original")
	}
	if doc.Metadata.Standards[0] != "IEC 61215" {
		t.Error("clone shares the standards slice with the original")
	}
	if doc.Versions[0].ContentSnapshot[0].Content != "P" {
		t.Error("clone shares version snapshots with the original")
	}
}
