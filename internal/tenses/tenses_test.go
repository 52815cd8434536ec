package tenses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllHasTwelveTenses(t *testing.T) {
	all := All()
	require.Len(t, all, 12)

	for _, tmpl := range all {
		assert.Len(t, tmpl.Active, 3, tmpl.ID)
		assert.Len(t, tmpl.Passive, 3, tmpl.ID)
		for _, v := range []Voice{VoiceActive, VoicePassive} {
			for _, f := range []Form{FormAffirmative, FormNegative, FormInterrogative} {
				e, ok := tmpl.Lookup(v, f)
				assert.True(t, ok, "%s %s %s", tmpl.ID, v, f)
				assert.NotEmpty(t, e.Structure)
				assert.NotEmpty(t, e.Example)
			}
		}
	}
}

func TestEveryTimeAspectCombinationExists(t *testing.T) {
	for _, tm := range Times() {
		for _, a := range Aspects() {
			_, ok := Get(ID(tm, a))
			assert.True(t, ok, ID(tm, a))
		}
	}
}

func TestGetPastPerfect(t *testing.T) {
	tmpl, ok := Get("past-perfect")
	require.True(t, ok)
	assert.Equal(t, "Past Perfect Tense", tmpl.Title)

	e, ok := tmpl.Lookup(VoiceActive, FormAffirmative)
	require.True(t, ok)
	assert.Equal(t, "Subject + had + Past Participle", e.Structure)
	assert.Equal(t, "I had finished my work before he arrived.", e.Example)
}

func TestID(t *testing.T) {
	tests := []struct {
		time, aspect, want string
	}{
		{"present", "simple", "present-simple"},
		{"past", "perfect continuous", "past-perfect-continuous"},
		{"future", "perfect-continuous", "future-perfect-continuous"},
		{"", "simple", ""},
		{"past", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ID(tt.time, tt.aspect))
	}
}

func TestTitleUnknown(t *testing.T) {
	assert.Equal(t, UnknownTitle, Title("present-imaginary"))
	assert.Equal(t, "Future Continuous Tense", Title("future-continuous"))
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].Title = "mutated"
	assert.Equal(t, "Present Simple Tense", All()[0].Title)
}

func TestEntriesAreCopied(t *testing.T) {
	want := All()[0].Active[0].Example

	a := All()
	a[0].Active[0].Example = "mutated"
	a[0].Passive[0].Structure = "mutated"
	assert.Equal(t, want, All()[0].Active[0].Example)

	g, ok := Get(a[0].ID)
	require.True(t, ok)
	assert.Equal(t, want, g.Active[0].Example)
	assert.NotEqual(t, "mutated", g.Passive[0].Structure)

	g.Active[0].Example = "mutated"
	again, _ := Get(a[0].ID)
	assert.Equal(t, want, again.Active[0].Example)

	ByTime("present")[0].Active[0].Example = "mutated"
	assert.Equal(t, want, All()[0].Active[0].Example)
}

func TestByTime(t *testing.T) {
	past := ByTime("past")
	require.Len(t, past, 4)
	assert.Equal(t, "past-simple", past[0].ID)
}
