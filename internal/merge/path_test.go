package merge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func TestToPatch_Summary(t *testing.T) {
	upd := PathUpdate{Path: "summary", Value: json.RawMessage(`"New summary"`)}

	patch, err := upd.ToPatch()
	require.NoError(t, err)
	require.NotNil(t, patch.Summary)
	assert.Equal(t, "New summary", *patch.Summary)
}

func TestToPatch_PersonalField(t *testing.T) {
	upd := PathUpdate{Path: "personal.email", Value: json.RawMessage(`"ada@example.com"`)}

	patch, err := upd.ToPatch()
	require.NoError(t, err)
	require.NotNil(t, patch.Personal)
	assert.Equal(t, "ada@example.com", patch.Personal.Email)
}

func TestToPatch_PersonalLinks(t *testing.T) {
	upd := PathUpdate{Path: "personal.links", Value: json.RawMessage(`["https://example.com"]`)}

	patch, err := upd.ToPatch()
	require.NoError(t, err)
	require.NotNil(t, patch.Personal)
	assert.Equal(t, []string{"https://example.com"}, patch.Personal.Links)
}

func TestToPatch_SingleListItemIsWrapped(t *testing.T) {
	upd := PathUpdate{
		Path:  "experience",
		Value: json.RawMessage(`{"position": "CTO", "company": "Startup"}`),
	}

	patch, err := upd.ToPatch()
	require.NoError(t, err)
	require.Len(t, patch.Experience, 1)
	assert.Equal(t, "CTO", patch.Experience[0].Position)
}

func TestToPatch_ListValue(t *testing.T) {
	upd := PathUpdate{
		Path:  "languages",
		Value: json.RawMessage(`[{"language": "French", "proficiency": "B2"}]`),
	}

	patch, err := upd.ToPatch()
	require.NoError(t, err)
	require.Len(t, patch.Languages, 1)
	assert.Equal(t, "French", patch.Languages[0].Language)
}

func TestToPatch_SectionAlias(t *testing.T) {
	upd := PathUpdate{
		Path:  "certificates",
		Value: json.RawMessage(`{"name": "CKA"}`),
	}

	patch, err := upd.ToPatch()
	require.NoError(t, err)
	require.Len(t, patch.Certifications, 1)
	assert.Equal(t, "CKA", patch.Certifications[0].Name)
}

func TestToPatch_SkillsLegacyFlatList(t *testing.T) {
	upd := PathUpdate{Path: "skills", Value: json.RawMessage(`["Go", "SQL"]`)}

	patch, err := upd.ToPatch()
	require.NoError(t, err)
	require.NotNil(t, patch.Skills)
	assert.Equal(t, []string{"Go", "SQL"}, patch.Skills.Hard)
	assert.Empty(t, patch.Skills.Soft)
}

func TestToPatch_SkillsSublist(t *testing.T) {
	upd := PathUpdate{Path: "skills.soft", Value: json.RawMessage(`["Mentoring"]`)}

	patch, err := upd.ToPatch()
	require.NoError(t, err)
	require.NotNil(t, patch.Skills)
	assert.Equal(t, []string{"Mentoring"}, patch.Skills.Soft)
}

func TestToPatch_TargetField(t *testing.T) {
	upd := PathUpdate{Path: "target.role", Value: json.RawMessage(`"Staff Engineer"`)}

	patch, err := upd.ToPatch()
	require.NoError(t, err)
	require.NotNil(t, patch.Target)
	assert.Equal(t, "Staff Engineer", patch.Target.Role)
}

func TestToPatch_UnknownSection(t *testing.T) {
	upd := PathUpdate{Path: "salary", Value: json.RawMessage(`"1"`)}

	_, err := upd.ToPatch()
	require.Error(t, err)

	pathErr, ok := err.(*PathError)
	require.True(t, ok, "error should be PathError type")
	assert.Contains(t, pathErr.Error(), "unknown record section")
}

func TestToPatch_EmptyPath(t *testing.T) {
	_, err := PathUpdate{Path: "  ", Value: json.RawMessage(`"x"`)}.ToPatch()
	require.Error(t, err)
}

func TestToPatch_MissingValue(t *testing.T) {
	_, err := PathUpdate{Path: "summary"}.ToPatch()
	require.Error(t, err)
}

func TestToPatch_WrongValueType(t *testing.T) {
	_, err := PathUpdate{Path: "summary", Value: json.RawMessage(`42`)}.ToPatch()
	require.Error(t, err)
}

func TestApply_CreatesSectionOnEmptyRecord(t *testing.T) {
	base := &types.CvRecord{}
	upd := PathUpdate{
		Path:  "certifications",
		Value: json.RawMessage(`{"name": "CKA", "issuer": "CNCF"}`),
	}

	out, err := Apply(base, upd)
	require.NoError(t, err)
	require.Len(t, out.Certifications, 1)
	assert.Equal(t, "CKA", out.Certifications[0].Name)
	assert.Empty(t, base.Certifications, "base must stay untouched")
}
