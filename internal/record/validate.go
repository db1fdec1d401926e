package record

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-builder/internal/types"
)

// Parse decodes record JSON (typically a Language Model Service response) and
// normalizes it into a canonical CvRecord. Unknown top-level keys are dropped
// by decoding; the schema is closed.
func Parse(jsonText string) (*types.CvRecord, error) {
	var rec types.CvRecord
	if err := json.Unmarshal([]byte(jsonText), &rec); err != nil {
		return nil, &ParseError{
			Message: "failed to decode record JSON",
			Cause:   err,
		}
	}
	return Normalize(&rec)
}

// Normalize produces a new CvRecord satisfying every schema invariant:
// all optional fields defaulted, list entries deduplicated by identity key,
// skills trimmed and duplicate-free. It returns a ValidationError listing the
// failing field paths when list entries are missing their identity fields,
// since such entries cannot participate in deduplication.
func Normalize(rec *types.CvRecord) (*types.CvRecord, error) {
	out := Clone(rec)
	fillDefaults(out)

	var errs []FieldError
	checkIdentityFields(out, &errs)
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	out.Experience = dedupByKey(out.Experience, ExperienceKey)
	out.Education = dedupByKey(out.Education, EducationKey)
	out.Certifications = dedupByKey(out.Certifications, CertificationKey)
	out.Projects = dedupByKey(out.Projects, ProjectKey)
	out.Languages = dedupByKey(out.Languages, LanguageKey)

	out.Skills.Hard = NormalizeSkillList(out.Skills.Hard)
	out.Skills.Soft = NormalizeSkillList(out.Skills.Soft)
	out.Personal.Links = NormalizeSkillList(out.Personal.Links)

	// An unparseable email is normalized away rather than rejected; contact
	// details can be re-collected during the question loop.
	if out.Personal.Email != "" {
		validate := validator.New()
		if err := validate.Var(out.Personal.Email, "email"); err != nil {
			out.Personal.Email = ""
		}
	}

	return out, nil
}

// fillDefaults replaces nil collections with their empty unit values so the
// record is always total.
func fillDefaults(rec *types.CvRecord) {
	if rec.Personal.Links == nil {
		rec.Personal.Links = []string{}
	}
	if rec.Experience == nil {
		rec.Experience = []types.Experience{}
	}
	if rec.Education == nil {
		rec.Education = []types.Education{}
	}
	if rec.Skills.Hard == nil {
		rec.Skills.Hard = []string{}
	}
	if rec.Skills.Soft == nil {
		rec.Skills.Soft = []string{}
	}
	if rec.Certifications == nil {
		rec.Certifications = []types.Certification{}
	}
	if rec.Projects == nil {
		rec.Projects = []types.Project{}
	}
	if rec.Languages == nil {
		rec.Languages = []types.Language{}
	}
	if rec.UserAdditions == nil {
		rec.UserAdditions = []types.UserAddition{}
	}
}

// checkIdentityFields collects field errors for list entries whose identity
// fields are empty after trimming.
func checkIdentityFields(rec *types.CvRecord, errs *[]FieldError) {
	for i, e := range rec.Experience {
		requireField(errs, fmt.Sprintf("experience[%d].position", i), e.Position)
		requireField(errs, fmt.Sprintf("experience[%d].company", i), e.Company)
	}
	for i, e := range rec.Education {
		requireField(errs, fmt.Sprintf("education[%d].degree", i), e.Degree)
		requireField(errs, fmt.Sprintf("education[%d].institution", i), e.Institution)
	}
	for i, c := range rec.Certifications {
		requireField(errs, fmt.Sprintf("certifications[%d].name", i), c.Name)
	}
	for i, p := range rec.Projects {
		requireField(errs, fmt.Sprintf("projects[%d].name", i), p.Name)
	}
	for i, l := range rec.Languages {
		requireField(errs, fmt.Sprintf("languages[%d].language", i), l.Language)
	}
}

func requireField(errs *[]FieldError, path, value string) {
	if strings.TrimSpace(value) == "" {
		*errs = append(*errs, FieldError{
			Field:   path,
			Message: "required identity field is empty",
		})
	}
}

// dedupByKey keeps the first occurrence of each identity key, preserving the
// relative order of survivors.
func dedupByKey[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, exists := seen[k]; exists {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// NormalizeSkillList trims entries, drops empties, and removes duplicates
// case-insensitively while preserving the first occurrence's casing and order.
func NormalizeSkillList(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		trimmed := strings.TrimSpace(skill)
		if trimmed == "" {
			continue
		}
		k := strings.ToLower(trimmed)
		if _, exists := seen[k]; exists {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
