package merge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// PathUpdate is a single targeted change proposed by the Language Model
// Service: a dot-path into the record plus a JSON value. Path updates are
// normalized into the regular patch shape before merging, so they follow the
// same policies as section patches.
type PathUpdate struct {
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

// PathError represents a path update that cannot be normalized into a patch
type PathError struct {
	Path    string
	Message string
	Cause   error
}

func (e *PathError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("path update %q: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("path update %q: %s", e.Path, e.Message)
}

func (e *PathError) Unwrap() error {
	return e.Cause
}

// sectionAliases tolerates legacy section names seen in model output
var sectionAliases = map[string]string{
	"certificates": "certifications",
	"work":         "experience",
	"positions":    "experience",
}

// Apply normalizes the path update into a patch and merges it into base.
func Apply(base *types.CvRecord, upd PathUpdate) (*types.CvRecord, error) {
	patch, err := upd.ToPatch()
	if err != nil {
		return nil, err
	}
	return Merge(base, patch), nil
}

// ToPatch converts the path update into an equivalent Patch. Values
// addressing a list section may be either a single item (wrapped into a
// one-element list) or an array; scalar and object targets follow their
// field's overwrite policy.
func (u PathUpdate) ToPatch() (*types.Patch, error) {
	path := strings.TrimSpace(u.Path)
	if path == "" {
		return nil, &PathError{Path: u.Path, Message: "empty path"}
	}
	if len(u.Value) == 0 {
		return nil, &PathError{Path: u.Path, Message: "missing value"}
	}

	segments := strings.Split(path, ".")
	head := segments[0]
	if alias, ok := sectionAliases[head]; ok {
		head = alias
	}

	patch := &types.Patch{}
	switch head {
	case "summary":
		s, err := decodeString(u.Value)
		if err != nil {
			return nil, &PathError{Path: u.Path, Message: "summary value must be a string", Cause: err}
		}
		patch.Summary = &s

	case "personal":
		if err := u.decodePersonal(segments, patch); err != nil {
			return nil, err
		}

	case "target":
		if err := u.decodeTarget(segments, patch); err != nil {
			return nil, err
		}

	case "skills":
		if err := u.decodeSkills(segments, patch); err != nil {
			return nil, err
		}

	case "experience":
		items, err := decodeList[types.Experience](u.Value)
		if err != nil {
			return nil, &PathError{Path: u.Path, Message: "invalid experience value", Cause: err}
		}
		patch.Experience = items

	case "education":
		items, err := decodeList[types.Education](u.Value)
		if err != nil {
			return nil, &PathError{Path: u.Path, Message: "invalid education value", Cause: err}
		}
		patch.Education = items

	case "certifications":
		items, err := decodeList[types.Certification](u.Value)
		if err != nil {
			return nil, &PathError{Path: u.Path, Message: "invalid certifications value", Cause: err}
		}
		patch.Certifications = items

	case "projects":
		items, err := decodeList[types.Project](u.Value)
		if err != nil {
			return nil, &PathError{Path: u.Path, Message: "invalid projects value", Cause: err}
		}
		patch.Projects = items

	case "languages":
		items, err := decodeList[types.Language](u.Value)
		if err != nil {
			return nil, &PathError{Path: u.Path, Message: "invalid languages value", Cause: err}
		}
		patch.Languages = items

	default:
		return nil, &PathError{Path: u.Path, Message: "unknown record section"}
	}

	return patch, nil
}

func (u PathUpdate) decodePersonal(segments []string, patch *types.Patch) error {
	personal := &types.Personal{}
	if len(segments) == 1 {
		if err := json.Unmarshal(u.Value, personal); err != nil {
			return &PathError{Path: u.Path, Message: "invalid personal value", Cause: err}
		}
		patch.Personal = personal
		return nil
	}

	if segments[1] == "links" {
		links, err := decodeList[string](u.Value)
		if err != nil {
			return &PathError{Path: u.Path, Message: "invalid links value", Cause: err}
		}
		personal.Links = links
		patch.Personal = personal
		return nil
	}

	s, err := decodeString(u.Value)
	if err != nil {
		return &PathError{Path: u.Path, Message: "personal field value must be a string", Cause: err}
	}
	switch segments[1] {
	case "name":
		personal.Name = s
	case "email":
		personal.Email = s
	case "phone":
		personal.Phone = s
	case "location":
		personal.Location = s
	case "headline":
		personal.Headline = s
	default:
		return &PathError{Path: u.Path, Message: "unknown personal field"}
	}
	patch.Personal = personal
	return nil
}

func (u PathUpdate) decodeTarget(segments []string, patch *types.Patch) error {
	target := &types.Target{}
	if len(segments) == 1 {
		if err := json.Unmarshal(u.Value, target); err != nil {
			return &PathError{Path: u.Path, Message: "invalid target value", Cause: err}
		}
		patch.Target = target
		return nil
	}

	s, err := decodeString(u.Value)
	if err != nil {
		return &PathError{Path: u.Path, Message: "target field value must be a string", Cause: err}
	}
	switch segments[1] {
	case "role":
		target.Role = s
	case "seniority":
		target.Seniority = s
	case "sector":
		target.Sector = s
	default:
		return &PathError{Path: u.Path, Message: "unknown target field"}
	}
	patch.Target = target
	return nil
}

func (u PathUpdate) decodeSkills(segments []string, patch *types.Patch) error {
	skills := &types.Skills{}
	if len(segments) == 1 {
		// Skills.UnmarshalJSON tolerates both {hard, soft} and a flat list.
		if err := json.Unmarshal(u.Value, skills); err != nil {
			return &PathError{Path: u.Path, Message: "invalid skills value", Cause: err}
		}
		patch.Skills = skills
		return nil
	}

	list, err := decodeList[string](u.Value)
	if err != nil {
		return &PathError{Path: u.Path, Message: "invalid skill list value", Cause: err}
	}
	switch segments[1] {
	case "hard":
		skills.Hard = list
	case "soft":
		skills.Soft = list
	default:
		return &PathError{Path: u.Path, Message: "unknown skills field"}
	}
	patch.Skills = skills
	return nil
}

// decodeList accepts either an array of T or a single T, wrapping the latter
// into a one-element list.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	var list []T
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var single T
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return []T{single}, nil
}

func decodeString(raw json.RawMessage) (string, error) {
	var s string
	err := json.Unmarshal(raw, &s)
	return s, err
}
