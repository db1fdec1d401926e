package record

import "github.com/jonathan/cv-builder/internal/types"

// Clone returns a deep copy of the record. Merges and state transitions
// operate on copies so that previously returned snapshots are never mutated.
func Clone(rec *types.CvRecord) *types.CvRecord {
	if rec == nil {
		return nil
	}

	out := *rec
	out.Personal.Links = cloneStrings(rec.Personal.Links)
	out.Skills.Hard = cloneStrings(rec.Skills.Hard)
	out.Skills.Soft = cloneStrings(rec.Skills.Soft)

	out.Experience = make([]types.Experience, len(rec.Experience))
	for i, e := range rec.Experience {
		e.Achievements = cloneStrings(e.Achievements)
		out.Experience[i] = e
	}

	out.Education = append([]types.Education(nil), rec.Education...)
	out.Certifications = append([]types.Certification(nil), rec.Certifications...)
	out.Languages = append([]types.Language(nil), rec.Languages...)
	out.UserAdditions = append([]types.UserAddition(nil), rec.UserAdditions...)

	out.Projects = make([]types.Project, len(rec.Projects))
	for i, p := range rec.Projects {
		p.Technologies = cloneStrings(p.Technologies)
		out.Projects[i] = p
	}

	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
