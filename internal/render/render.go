// Package render turns a finalized CvRecord into an output document. Visual
// layout quality is not a correctness concern here; the renderers exist so a
// finalized record has somewhere to go.
package render

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Renderer produces a document from a finalized, validated record
type Renderer interface {
	Render(rec *types.CvRecord, templateID string) ([]byte, error)
}

// Template identifiers understood by the built-in renderer
const (
	TemplatePlain = "plain"
	TemplateLaTeX = "latex"
)

// UnknownTemplateError indicates a template id the renderer does not support
type UnknownTemplateError struct {
	TemplateID string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template %q", e.TemplateID)
}

// BuiltinRenderer renders records with the built-in templates
type BuiltinRenderer struct{}

// NewBuiltinRenderer creates a renderer with the built-in templates
func NewBuiltinRenderer() *BuiltinRenderer {
	return &BuiltinRenderer{}
}

// Render produces the document for the given template id. An empty template
// id selects the plain template.
func (r *BuiltinRenderer) Render(rec *types.CvRecord, templateID string) ([]byte, error) {
	switch templateID {
	case "", TemplatePlain:
		return []byte(renderPlain(rec)), nil
	case TemplateLaTeX:
		return []byte(renderLaTeX(rec)), nil
	default:
		return nil, &UnknownTemplateError{TemplateID: templateID}
	}
}

func renderPlain(rec *types.CvRecord) string {
	var sb strings.Builder

	writeHeader(&sb, rec)
	if rec.Summary != "" {
		writeSection(&sb, "SUMMARY")
		sb.WriteString(rec.Summary + "\n")
	}

	if len(rec.Experience) > 0 {
		writeSection(&sb, "EXPERIENCE")
		for _, e := range rec.Experience {
			sb.WriteString(fmt.Sprintf("%s — %s", e.Position, e.Company))
			if dates := formatDates(e.StartDate, e.EndDate); dates != "" {
				sb.WriteString(" (" + dates + ")")
			}
			sb.WriteString("\n")
			if e.Description != "" {
				sb.WriteString(e.Description + "\n")
			}
			for _, a := range e.Achievements {
				sb.WriteString("  - " + a + "\n")
			}
		}
	}

	if len(rec.Education) > 0 {
		writeSection(&sb, "EDUCATION")
		for _, e := range rec.Education {
			sb.WriteString(fmt.Sprintf("%s, %s", e.Degree, e.Institution))
			if dates := formatDates(e.StartDate, e.EndDate); dates != "" {
				sb.WriteString(" (" + dates + ")")
			}
			sb.WriteString("\n")
		}
	}

	if len(rec.Skills.Hard) > 0 || len(rec.Skills.Soft) > 0 {
		writeSection(&sb, "SKILLS")
		if len(rec.Skills.Hard) > 0 {
			sb.WriteString("Hard: " + strings.Join(rec.Skills.Hard, ", ") + "\n")
		}
		if len(rec.Skills.Soft) > 0 {
			sb.WriteString("Soft: " + strings.Join(rec.Skills.Soft, ", ") + "\n")
		}
	}

	if len(rec.Certifications) > 0 {
		writeSection(&sb, "CERTIFICATIONS")
		for _, c := range rec.Certifications {
			sb.WriteString(c.Name)
			if c.Issuer != "" {
				sb.WriteString(", " + c.Issuer)
			}
			if c.Date != "" {
				sb.WriteString(" (" + c.Date + ")")
			}
			sb.WriteString("\n")
		}
	}

	if len(rec.Projects) > 0 {
		writeSection(&sb, "PROJECTS")
		for _, p := range rec.Projects {
			sb.WriteString(p.Name)
			if p.Summary != "" {
				sb.WriteString(" — " + p.Summary)
			}
			sb.WriteString("\n")
			if len(p.Technologies) > 0 {
				sb.WriteString("  " + strings.Join(p.Technologies, ", ") + "\n")
			}
		}
	}

	if len(rec.Languages) > 0 {
		writeSection(&sb, "LANGUAGES")
		for _, l := range rec.Languages {
			sb.WriteString(l.Language)
			if l.Proficiency != "" {
				sb.WriteString(" (" + l.Proficiency + ")")
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func writeHeader(sb *strings.Builder, rec *types.CvRecord) {
	sb.WriteString(rec.Personal.Name + "\n")
	if rec.Personal.Headline != "" {
		sb.WriteString(rec.Personal.Headline + "\n")
	}
	contact := joinNonEmpty(" | ", rec.Personal.Email, rec.Personal.Phone, rec.Personal.Location)
	if contact != "" {
		sb.WriteString(contact + "\n")
	}
	for _, link := range rec.Personal.Links {
		sb.WriteString(link + "\n")
	}
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString("\n" + title + "\n")
	sb.WriteString(strings.Repeat("-", len(title)) + "\n")
}

func formatDates(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " – " + end
	case start != "":
		return start + " – present"
	case end != "":
		return "until " + end
	default:
		return ""
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sep)
}
