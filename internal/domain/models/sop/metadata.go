package sop

// Metadata is the document's open key/value bag, with the keys the
// exporters depend on promoted to named fields. Caller-defined keys land
// in Extra. The three asset carriers (CompanyLogo, EquipmentPhotos,
// Flowcharts) hold externally-produced records verbatim.
type Metadata struct {
	Company          string            `json:"company,omitempty"`
	Revision         string            `json:"revision,omitempty"`
	EffectiveDate    string            `json:"effective_date,omitempty"`
	Standards        []string          `json:"standards,omitempty"`
	Description      string            `json:"description,omitempty"`
	TranslatedTo     string            `json:"translated_to,omitempty"`
	OriginalLanguage string            `json:"original_language,omitempty"`
	CompanyLogo      *AssetRecord      `json:"company_logo,omitempty"`
	EquipmentPhotos  []AssetRecord     `json:"equipment_photos,omitempty"`
	Flowcharts       []AssetRecord     `json:"flowcharts,omitempty"`
	Extra            map[string]string `json:"extra,omitempty"`
}

// InfoPair is one labeled metadata value for key/value renderings.
type InfoPair struct {
	Label string
	Value string
}

// InfoPairs returns the non-empty metadata fields as display pairs, in a
// stable order. Standards and Description are excluded: they feed content
// generation, not the document info table. Asset carriers are excluded
// because they are rendered separately.
func (m *Metadata) InfoPairs() []InfoPair {
	fields := []InfoPair{
		{"Company", m.Company},
		{"Revision", m.Revision},
		{"Effective Date", m.EffectiveDate},
		{"Translated To", m.TranslatedTo},
		{"Original Language", m.OriginalLanguage},
	}
	pairs := make([]InfoPair, 0, len(fields)+len(m.Extra))
	for _, f := range fields {
		if f.Value != "" {
			pairs = append(pairs, f)
		}
	}
	for _, k := range sortedKeys(m.Extra) {
		if v := m.Extra[k]; v != "" {
			pairs = append(pairs, InfoPair{Label: titleize(k), Value: v})
		}
	}
	return pairs
}

// Clone returns an independent copy of the metadata, including asset
// payloads and the extension map.
func (m *Metadata) Clone() Metadata {
	out := *m
	if m.CompanyLogo != nil {
		logo := m.CompanyLogo.Clone()
		out.CompanyLogo = &logo
	}
	if m.Standards != nil {
		out.Standards = append([]string(nil), m.Standards...)
	}
	out.EquipmentPhotos = cloneAssets(m.EquipmentPhotos)
	out.Flowcharts = cloneAssets(m.Flowcharts)
	if m.Extra != nil {
		out.Extra = make(map[string]string, len(m.Extra))
		for k, v := range m.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

func cloneAssets(in []AssetRecord) []AssetRecord {
	if in == nil {
		return nil
	}
	out := make([]AssetRecord, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
