package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func sampleRecord() *types.CvRecord {
	return &types.CvRecord{
		Personal: types.Personal{
			Name:     "Ada Lovelace",
			Headline: "Engineer & Mathematician",
			Email:    "ada@example.com",
			Location: "London",
			Links:    []string{"https://example.com/ada"},
		},
		Summary: "Analytical engine programmer",
		Experience: []types.Experience{
			{
				Position:     "Engineer",
				Company:      "Acme",
				StartDate:    "2020-01",
				Achievements: []string{"Shipped the thing"},
			},
		},
		Education: []types.Education{
			{Degree: "BSc Mathematics", Institution: "University of London", EndDate: "1840"},
		},
		Skills: types.Skills{Hard: []string{"Go", "SQL"}, Soft: []string{"Mentoring"}},
		Languages: []types.Language{
			{Language: "English", Proficiency: "native"},
		},
	}
}

func TestRender_PlainTemplate(t *testing.T) {
	out, err := NewBuiltinRenderer().Render(sampleRecord(), TemplatePlain)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Ada Lovelace")
	assert.Contains(t, text, "SUMMARY")
	assert.Contains(t, text, "Analytical engine programmer")
	assert.Contains(t, text, "Engineer — Acme")
	assert.Contains(t, text, "2020-01 – present")
	assert.Contains(t, text, "  - Shipped the thing")
	assert.Contains(t, text, "Hard: Go, SQL")
	assert.Contains(t, text, "English (native)")
}

func TestRender_EmptyTemplateDefaultsToPlain(t *testing.T) {
	r := NewBuiltinRenderer()
	plain, err := r.Render(sampleRecord(), "")
	require.NoError(t, err)
	explicit, err := r.Render(sampleRecord(), TemplatePlain)
	require.NoError(t, err)
	assert.Equal(t, explicit, plain)
}

func TestRender_LaTeXTemplate(t *testing.T) {
	rec := sampleRecord()
	rec.Personal.Headline = "Engineer & Mathematician"

	out, err := NewBuiltinRenderer().Render(rec, TemplateLaTeX)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, `\documentclass`)
	assert.Contains(t, text, `\end{document}`)
	assert.Contains(t, text, "Ada Lovelace")
	assert.Contains(t, text, `Engineer \& Mathematician`, "special characters must be escaped")
	assert.NotContains(t, text, "Engineer & Mathematician")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := NewBuiltinRenderer().Render(sampleRecord(), "pdf")
	require.Error(t, err)

	tmplErr, ok := err.(*UnknownTemplateError)
	require.True(t, ok, "error should be UnknownTemplateError type")
	assert.Equal(t, "pdf", tmplErr.TemplateID)
}

func TestRender_SkipsEmptySections(t *testing.T) {
	rec := &types.CvRecord{Personal: types.Personal{Name: "Ada"}}

	out, err := NewBuiltinRenderer().Render(rec, TemplatePlain)
	require.NoError(t, err)

	text := string(out)
	assert.NotContains(t, text, "EXPERIENCE")
	assert.NotContains(t, text, "CERTIFICATIONS")
}

func TestFormatDates(t *testing.T) {
	assert.Equal(t, "2020 – 2022", formatDates("2020", "2022"))
	assert.Equal(t, "2020 – present", formatDates("2020", ""))
	assert.Equal(t, "until 2022", formatDates("", "2022"))
	assert.Equal(t, "", formatDates("", ""))
}
