package types

// Patch is a partial CvRecord proposed for merging into a base record.
// Pointer fields distinguish "absent" from "present but empty": a nil field
// leaves the base untouched, a non-nil field is applied per its merge policy.
// List fields use nil-vs-empty for the same distinction.
type Patch struct {
	Personal       *Personal       `json:"personal,omitempty"`
	Summary        *string         `json:"summary,omitempty"`
	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Skills         *Skills         `json:"skills,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	Languages      []Language      `json:"languages,omitempty"`
	Target         *Target         `json:"target,omitempty"`
	UserAdditions  []UserAddition  `json:"user_additions,omitempty"`
}

// IsEmpty reports whether the patch carries no changes at all
func (p *Patch) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Personal == nil && p.Summary == nil && p.Experience == nil &&
		p.Education == nil && p.Skills == nil && p.Certifications == nil &&
		p.Projects == nil && p.Languages == nil && p.Target == nil &&
		p.UserAdditions == nil
}
