// Package merge implements the deterministic merge algorithm that folds
// partial patches into a canonical CvRecord. Merging is a pure computation:
// it never performs I/O, never mutates its inputs, and never fails — every
// conflict resolves through the non-destructive-overwrite and
// dedup-keeps-first policies.
package merge

import (
	"strings"

	"github.com/jonathan/cv-builder/internal/record"
	"github.com/jonathan/cv-builder/internal/types"
)

// Merge combines a base record with a partial patch into a new record.
//
// Policies per field:
//   - personal, target: shallow overwrite, patch fields win when non-empty
//   - summary: overwrite only with a non-empty value
//   - list sections: union by identity key; a patch item sharing an identity
//     with a base item is dropped, not used to edit the base item (patches add
//     entries; edits go through whole-record replace)
//   - skills: set union, trimmed, case-preserving, duplicate-insensitive
//   - user_additions: append-only, never deduplicated
func Merge(base *types.CvRecord, patch *types.Patch) *types.CvRecord {
	out := record.Clone(base)
	if patch == nil {
		return out
	}

	if patch.Personal != nil {
		mergePersonal(&out.Personal, patch.Personal)
	}
	if patch.Summary != nil && strings.TrimSpace(*patch.Summary) != "" {
		out.Summary = *patch.Summary
	}

	out.Experience = unionByKey(out.Experience, patch.Experience, record.ExperienceKey)
	out.Education = unionByKey(out.Education, patch.Education, record.EducationKey)
	out.Certifications = unionByKey(out.Certifications, patch.Certifications, record.CertificationKey)
	out.Projects = unionByKey(out.Projects, patch.Projects, record.ProjectKey)
	out.Languages = unionByKey(out.Languages, patch.Languages, record.LanguageKey)

	if patch.Skills != nil {
		out.Skills.Hard = record.NormalizeSkillList(append(out.Skills.Hard, patch.Skills.Hard...))
		out.Skills.Soft = record.NormalizeSkillList(append(out.Skills.Soft, patch.Skills.Soft...))
	}
	if patch.Target != nil {
		mergeTarget(&out.Target, patch.Target)
	}

	out.UserAdditions = append(out.UserAdditions, patch.UserAdditions...)

	return out
}

// mergePersonal overwrites base fields with non-empty patch fields. An empty
// patch name never erases a previously captured one.
func mergePersonal(base *types.Personal, patch *types.Personal) {
	if strings.TrimSpace(patch.Name) != "" {
		base.Name = patch.Name
	}
	if strings.TrimSpace(patch.Email) != "" {
		base.Email = patch.Email
	}
	if strings.TrimSpace(patch.Phone) != "" {
		base.Phone = patch.Phone
	}
	if strings.TrimSpace(patch.Location) != "" {
		base.Location = patch.Location
	}
	if strings.TrimSpace(patch.Headline) != "" {
		base.Headline = patch.Headline
	}
	if len(patch.Links) > 0 {
		base.Links = record.NormalizeSkillList(patch.Links)
	}
}

func mergeTarget(base *types.Target, patch *types.Target) {
	if strings.TrimSpace(patch.Role) != "" {
		base.Role = patch.Role
	}
	if strings.TrimSpace(patch.Seniority) != "" {
		base.Seniority = patch.Seniority
	}
	if strings.TrimSpace(patch.Sector) != "" {
		base.Sector = patch.Sector
	}
}

// unionByKey concatenates base then patch and keeps the first occurrence of
// each identity key. Base items retain their relative order; surviving patch
// items are appended after them. Patch items without any identity content are
// dropped since they could never be deduplicated.
func unionByKey[T any](base, patch []T, key func(T) string) []T {
	out := make([]T, 0, len(base)+len(patch))
	seen := make(map[string]struct{}, len(base)+len(patch))

	for _, item := range base {
		k := key(item)
		if _, exists := seen[k]; exists {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	for _, item := range patch {
		k := key(item)
		if record.KeyIsEmpty(k) {
			continue
		}
		if _, exists := seen[k]; exists {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}
