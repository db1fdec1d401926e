// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// CvRecord is the canonical, schema-valid résumé data structure.
// Every field is always present; optional fields default to their unit value
// (empty string, empty list, empty struct) rather than being absent.
type CvRecord struct {
	Personal       Personal        `json:"personal"`
	Summary        string          `json:"summary"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         Skills          `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	Languages      []Language      `json:"languages"`
	Target         Target          `json:"target"`
	UserAdditions  []UserAddition  `json:"user_additions"`
}

// Personal holds contact and headline information
type Personal struct {
	Name     string   `json:"name"`
	Email    string   `json:"email" validate:"omitempty,email"`
	Phone    string   `json:"phone"`
	Location string   `json:"location"`
	Headline string   `json:"headline"`
	Links    []string `json:"links"`
}

// Experience represents one work history entry.
// Position and Company form the entry's identity and are required.
type Experience struct {
	Position     string   `json:"position"`
	Company      string   `json:"company"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education represents one education entry.
// Degree and Institution form the entry's identity and are required.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Skills groups hard and soft skills as duplicate-free lists
type Skills struct {
	Hard []string `json:"hard"`
	Soft []string `json:"soft"`
}

// UnmarshalJSON accepts both the canonical {hard, soft} object and the legacy
// flat list of strings, which is normalized into {hard: <list>, soft: []}.
func (s *Skills) UnmarshalJSON(data []byte) error {
	var legacy []string
	if err := json.Unmarshal(data, &legacy); err == nil {
		s.Hard = legacy
		s.Soft = []string{}
		return nil
	}

	type skillsAlias Skills
	var canonical skillsAlias
	if err := json.Unmarshal(data, &canonical); err != nil {
		return err
	}
	*s = Skills(canonical)
	return nil
}

// Certification represents one certification entry, identified by Name.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Project represents one project entry, identified by Name.
type Project struct {
	Name         string   `json:"name"`
	Summary      string   `json:"summary,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty"`
}

// Language represents one spoken-language entry, identified by Language.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// Target describes the role the candidate is aiming for
type Target struct {
	Role      string `json:"role,omitempty"`
	Seniority string `json:"seniority,omitempty"`
	Sector    string `json:"sector,omitempty"`
}

// UserAddition is one raw question/answer pair collected during the
// gap-filling dialogue. The list is append-only and never deduplicated; it is
// the audit trail of user input and is cleared only on finalization.
type UserAddition struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
