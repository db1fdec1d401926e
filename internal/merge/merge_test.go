package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func baseRecord() *types.CvRecord {
	return &types.CvRecord{
		Personal: types.Personal{Name: "Ada Lovelace", Email: "ada@example.com"},
		Summary:  "Analytical engine programmer",
		Experience: []types.Experience{
			{Position: "Engineer", Company: "Acme", Description: "built things"},
			{Position: "Analyst", Company: "Babbage & Co"},
		},
		Skills:        types.Skills{Hard: []string{"Go", "SQL"}, Soft: []string{"Mentoring"}},
		UserAdditions: []types.UserAddition{},
	}
}

func TestMerge_NilPatchReturnsClone(t *testing.T) {
	base := baseRecord()
	out := Merge(base, nil)

	assert.Equal(t, base.Personal, out.Personal)
	assert.Equal(t, base.Summary, out.Summary)
	assert.Equal(t, base.Experience, out.Experience)
	assert.Equal(t, base.Skills, out.Skills)

	out.Personal.Name = "changed"
	out.Experience[0].Description = "changed"
	assert.Equal(t, "Ada Lovelace", base.Personal.Name)
	assert.Equal(t, "built things", base.Experience[0].Description)
}

func TestMerge_DoesNotMutateBase(t *testing.T) {
	base := baseRecord()
	patch := &types.Patch{
		Experience: []types.Experience{{Position: "CTO", Company: "Startup"}},
		Skills:     &types.Skills{Hard: []string{"Rust"}},
	}

	_ = Merge(base, patch)

	assert.Len(t, base.Experience, 2)
	assert.Equal(t, []string{"Go", "SQL"}, base.Skills.Hard)
}

func TestMerge_EmptySummaryNeverErases(t *testing.T) {
	base := baseRecord()
	empty := "   "
	out := Merge(base, &types.Patch{Summary: &empty})
	assert.Equal(t, "Analytical engine programmer", out.Summary)

	replacement := "Updated summary"
	out = Merge(base, &types.Patch{Summary: &replacement})
	assert.Equal(t, "Updated summary", out.Summary)
}

func TestMerge_PersonalNonEmptyFieldsWin(t *testing.T) {
	base := baseRecord()
	out := Merge(base, &types.Patch{
		Personal: &types.Personal{Name: "", Phone: "+44 123", Location: "London"},
	})

	assert.Equal(t, "Ada Lovelace", out.Personal.Name, "empty patch name must not erase")
	assert.Equal(t, "ada@example.com", out.Personal.Email)
	assert.Equal(t, "+44 123", out.Personal.Phone)
	assert.Equal(t, "London", out.Personal.Location)
}

func TestMerge_ListUnionKeepsFirstOnIdentityCollision(t *testing.T) {
	base := baseRecord()
	patch := &types.Patch{
		Experience: []types.Experience{
			// Same identity as base entry modulo case and whitespace.
			{Position: "engineer ", Company: " ACME", Description: "patched"},
			{Position: "CTO", Company: "Startup"},
		},
	}

	out := Merge(base, patch)

	require.Len(t, out.Experience, 3)
	assert.Equal(t, "built things", out.Experience[0].Description, "base entry wins the collision")
	assert.Equal(t, "Analyst", out.Experience[1].Position)
	assert.Equal(t, "CTO", out.Experience[2].Position, "new entries append after base")
}

func TestMerge_IsIdempotent(t *testing.T) {
	base := baseRecord()
	patch := &types.Patch{
		Experience: []types.Experience{{Position: "CTO", Company: "Startup"}},
		Skills:     &types.Skills{Hard: []string{"Rust", "go"}},
	}

	once := Merge(base, patch)
	twice := Merge(once, patch)

	assert.Equal(t, once.Experience, twice.Experience)
	assert.Equal(t, once.Skills, twice.Skills)
}

func TestMerge_SkipsPatchEntriesWithoutIdentity(t *testing.T) {
	base := baseRecord()
	patch := &types.Patch{
		Experience: []types.Experience{{Position: "  ", Company: "", Description: "orphan"}},
	}

	out := Merge(base, patch)
	assert.Len(t, out.Experience, 2)
}

func TestMerge_SkillsUnionCaseInsensitive(t *testing.T) {
	base := baseRecord()
	out := Merge(base, &types.Patch{
		Skills: &types.Skills{Hard: []string{"go", " Rust ", "sql"}, Soft: []string{"mentoring", "Writing"}},
	})

	assert.Equal(t, []string{"Go", "SQL", "Rust"}, out.Skills.Hard)
	assert.Equal(t, []string{"Mentoring", "Writing"}, out.Skills.Soft)
}

func TestMerge_UserAdditionsAppendOnly(t *testing.T) {
	base := baseRecord()
	addition := types.UserAddition{Question: "Any certifications?", Answer: "None"}

	out := Merge(base, &types.Patch{UserAdditions: []types.UserAddition{addition}})
	out = Merge(out, &types.Patch{UserAdditions: []types.UserAddition{addition}})

	require.Len(t, out.UserAdditions, 2, "raw Q/A pairs are never deduplicated")
	assert.Equal(t, addition, out.UserAdditions[0])
	assert.Equal(t, addition, out.UserAdditions[1])
}

func TestMerge_TargetFields(t *testing.T) {
	base := baseRecord()
	out := Merge(base, &types.Patch{Target: &types.Target{Role: "Staff Engineer"}})
	assert.Equal(t, "Staff Engineer", out.Target.Role)

	out = Merge(out, &types.Patch{Target: &types.Target{Seniority: "staff"}})
	assert.Equal(t, "Staff Engineer", out.Target.Role, "empty target fields must not erase")
	assert.Equal(t, "staff", out.Target.Seniority)
}
