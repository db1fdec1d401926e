package render

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// renderLaTeX produces a minimal single-column article document. Every value
// passes through EscapeLaTeX before insertion.
func renderLaTeX(rec *types.CvRecord) string {
	var sb strings.Builder

	sb.WriteString("\\documentclass[11pt]{article}\n")
	sb.WriteString("\\usepackage[margin=1in]{geometry}\n")
	sb.WriteString("\\usepackage{enumitem}\n")
	sb.WriteString("\\pagestyle{empty}\n")
	sb.WriteString("\\begin{document}\n\n")

	sb.WriteString(fmt.Sprintf("{\\Large\\bfseries %s}\\\\\n", EscapeLaTeX(rec.Personal.Name)))
	if rec.Personal.Headline != "" {
		sb.WriteString(EscapeLaTeX(rec.Personal.Headline) + "\\\\\n")
	}
	contact := joinNonEmpty(" \\textbar{} ",
		EscapeLaTeX(rec.Personal.Email),
		EscapeLaTeX(rec.Personal.Phone),
		EscapeLaTeX(rec.Personal.Location))
	if contact != "" {
		sb.WriteString(contact + "\\\\\n")
	}
	sb.WriteString("\n")

	if rec.Summary != "" {
		latexSection(&sb, "Summary")
		sb.WriteString(EscapeLaTeX(rec.Summary) + "\n\n")
	}

	if len(rec.Experience) > 0 {
		latexSection(&sb, "Experience")
		for _, e := range rec.Experience {
			sb.WriteString(fmt.Sprintf("\\textbf{%s} --- %s", EscapeLaTeX(e.Position), EscapeLaTeX(e.Company)))
			if dates := formatDates(e.StartDate, e.EndDate); dates != "" {
				sb.WriteString(" \\hfill " + EscapeLaTeX(dates))
			}
			sb.WriteString("\\\\\n")
			if e.Description != "" {
				sb.WriteString(EscapeLaTeX(e.Description) + "\\\\\n")
			}
			if len(e.Achievements) > 0 {
				sb.WriteString("\\begin{itemize}[noitemsep]\n")
				for _, a := range e.Achievements {
					sb.WriteString("  \\item " + EscapeLaTeX(a) + "\n")
				}
				sb.WriteString("\\end{itemize}\n")
			}
			sb.WriteString("\n")
		}
	}

	if len(rec.Education) > 0 {
		latexSection(&sb, "Education")
		for _, e := range rec.Education {
			sb.WriteString(fmt.Sprintf("\\textbf{%s}, %s", EscapeLaTeX(e.Degree), EscapeLaTeX(e.Institution)))
			if dates := formatDates(e.StartDate, e.EndDate); dates != "" {
				sb.WriteString(" \\hfill " + EscapeLaTeX(dates))
			}
			sb.WriteString("\\\\\n")
		}
		sb.WriteString("\n")
	}

	if len(rec.Skills.Hard) > 0 || len(rec.Skills.Soft) > 0 {
		latexSection(&sb, "Skills")
		if len(rec.Skills.Hard) > 0 {
			sb.WriteString("\\textbf{Hard:} " + EscapeLaTeX(strings.Join(rec.Skills.Hard, ", ")) + "\\\\\n")
		}
		if len(rec.Skills.Soft) > 0 {
			sb.WriteString("\\textbf{Soft:} " + EscapeLaTeX(strings.Join(rec.Skills.Soft, ", ")) + "\\\\\n")
		}
		sb.WriteString("\n")
	}

	if len(rec.Certifications) > 0 {
		latexSection(&sb, "Certifications")
		for _, c := range rec.Certifications {
			line := c.Name
			if c.Issuer != "" {
				line += ", " + c.Issuer
			}
			if c.Date != "" {
				line += " (" + c.Date + ")"
			}
			sb.WriteString(EscapeLaTeX(line) + "\\\\\n")
		}
		sb.WriteString("\n")
	}

	if len(rec.Projects) > 0 {
		latexSection(&sb, "Projects")
		for _, p := range rec.Projects {
			sb.WriteString("\\textbf{" + EscapeLaTeX(p.Name) + "}")
			if p.Summary != "" {
				sb.WriteString(" --- " + EscapeLaTeX(p.Summary))
			}
			sb.WriteString("\\\\\n")
		}
		sb.WriteString("\n")
	}

	if len(rec.Languages) > 0 {
		latexSection(&sb, "Languages")
		parts := make([]string, 0, len(rec.Languages))
		for _, l := range rec.Languages {
			part := l.Language
			if l.Proficiency != "" {
				part += " (" + l.Proficiency + ")"
			}
			parts = append(parts, EscapeLaTeX(part))
		}
		sb.WriteString(strings.Join(parts, ", ") + "\n\n")
	}

	sb.WriteString("\\end{document}\n")
	return sb.String()
}

func latexSection(sb *strings.Builder, title string) {
	sb.WriteString("\\section*{" + title + "}\n")
}
