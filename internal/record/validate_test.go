package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func TestParse_FillsDefaults(t *testing.T) {
	rec, err := Parse(`{"personal": {"name": "Ada Lovelace"}, "summary": "Engineer"}`)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", rec.Personal.Name)
	assert.Equal(t, "Engineer", rec.Summary)
	assert.NotNil(t, rec.Experience)
	assert.Empty(t, rec.Experience)
	assert.NotNil(t, rec.Education)
	assert.NotNil(t, rec.Skills.Hard)
	assert.NotNil(t, rec.Skills.Soft)
	assert.NotNil(t, rec.Certifications)
	assert.NotNil(t, rec.Projects)
	assert.NotNil(t, rec.Languages)
	assert.NotNil(t, rec.UserAdditions)
	assert.NotNil(t, rec.Personal.Links)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse(`{not json`)
	require.Error(t, err)

	parseErr, ok := err.(*ParseError)
	require.True(t, ok, "error should be ParseError type")
	assert.Contains(t, parseErr.Error(), "failed to decode record JSON")
}

func TestNormalize_DeduplicatesByIdentityKeepingFirst(t *testing.T) {
	rec := &types.CvRecord{
		Experience: []types.Experience{
			{Position: "Engineer", Company: "Acme", Description: "first"},
			{Position: "eng", Company: "Other"},
			{Position: "Engineer ", Company: " ACME", Description: "second"},
		},
	}

	out, err := Normalize(rec)
	require.NoError(t, err)

	require.Len(t, out.Experience, 2)
	assert.Equal(t, "first", out.Experience[0].Description)
	assert.Equal(t, "Other", out.Experience[1].Company)
}

func TestNormalize_PreservesEntryOrder(t *testing.T) {
	rec := &types.CvRecord{
		Projects: []types.Project{
			{Name: "gamma"},
			{Name: "alpha"},
			{Name: "beta"},
		},
	}

	out, err := Normalize(rec)
	require.NoError(t, err)

	require.Len(t, out.Projects, 3)
	assert.Equal(t, "gamma", out.Projects[0].Name)
	assert.Equal(t, "alpha", out.Projects[1].Name)
	assert.Equal(t, "beta", out.Projects[2].Name)
}

func TestNormalize_MissingIdentityFields(t *testing.T) {
	rec := &types.CvRecord{
		Experience: []types.Experience{
			{Position: "Engineer", Company: "  "},
		},
		Languages: []types.Language{
			{Language: ""},
		},
	}

	_, err := Normalize(rec)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 2)
	assert.Equal(t, "experience[0].company", validationErr.Errors[0].Field)
	assert.Equal(t, "languages[0].language", validationErr.Errors[1].Field)
}

func TestNormalize_ClearsInvalidEmail(t *testing.T) {
	rec := &types.CvRecord{
		Personal: types.Personal{Name: "Ada", Email: "not-an-email"},
	}

	out, err := Normalize(rec)
	require.NoError(t, err)
	assert.Empty(t, out.Personal.Email)
}

func TestNormalize_KeepsValidEmail(t *testing.T) {
	rec := &types.CvRecord{
		Personal: types.Personal{Name: "Ada", Email: "ada@example.com"},
	}

	out, err := Normalize(rec)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", out.Personal.Email)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	rec := &types.CvRecord{
		Skills: types.Skills{Hard: []string{"Go", "go", "  SQL "}},
	}

	out, err := Normalize(rec)
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "SQL"}, out.Skills.Hard)
	assert.Equal(t, []string{"Go", "go", "  SQL "}, rec.Skills.Hard, "input must stay untouched")
}

func TestNormalizeSkillList_TrimsAndDeduplicates(t *testing.T) {
	out := NormalizeSkillList([]string{" Go ", "go", "", "SQL", "sql", "Kubernetes"})
	assert.Equal(t, []string{"Go", "SQL", "Kubernetes"}, out)
}

func TestNormalizeSkillList_Empty(t *testing.T) {
	out := NormalizeSkillList(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
