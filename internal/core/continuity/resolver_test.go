package continuity

import (
	"context"
	"testing"

	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/core/model"
	"github.com/agenthands/webtoon/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(mock *MockLLM) *Resolver {
	return NewResolver(mock, config.DefaultPrompts())
}

func TestResolveCreatesNewCharacter(t *testing.T) {
	mockJSON := `[
		{
			"id": "NEW",
			"name": "Yeonghee",
			"aliases": ["the mysterious woman"],
			"appearance": "long trench coat",
			"outfit": "trench coat",
			"expression": "tearful",
			"emotion": "desperate",
			"action": "enters the office",
			"is_new_character_suggestion": true,
			"confidence_for_merge": 0.0,
			"reasoning": "no existing record matches"
		}
	]`

	mock := &MockLLM{Response: mockJSON}
	r := newResolver(mock)
	st := store.New()

	views := r.Resolve(context.Background(), "cut_001", "A woman in a trench coat entered.", "", st)

	require.Len(t, views, 1)
	assert.Equal(t, "char_001", views[0].ID)
	assert.Equal(t, "Yeonghee", views[0].Name)
	assert.Equal(t, "enters the office", views[0].Action)

	rec, ok := st.Get("char_001")
	require.True(t, ok)
	assert.Equal(t, "cut_001", rec.FirstSeenCut)
	assert.True(t, rec.HasAlias("the mysterious woman"))
}

// Two cuts mentioning the same character by the same canonical name must
// resolve to the same id, not mint a second one.
func TestIdentityStability(t *testing.T) {
	st := store.New()

	mock := &MockLLM{Response: `[{"id": "NEW", "name": "Yeonghee", "is_new_character_suggestion": true}]`}
	r := newResolver(mock)
	first := r.Resolve(context.Background(), "cut_001", "Yeonghee arrived.", "", st)
	require.Len(t, first, 1)

	mock.Response = `[{"id": "char_001", "name": "Yeonghee", "is_new_character_suggestion": false, "confidence_for_merge": 0.95}]`
	second := r.Resolve(context.Background(), "cut_002", "Yeonghee spoke.", "", st)
	require.Len(t, second, 1)

	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 1, st.Len(), "no duplicate identity minted")
}

// The two-cut scenario: create on cut 1, merge an alias on cut 2.
func TestMergeScenario(t *testing.T) {
	st := store.New()
	r := newResolver(&MockLLM{ResponseQueue: []string{
		`[{"id": "NEW", "name": "Yeonghee", "is_new_character_suggestion": true, "action": "enters", "emotion": "anxious"}]`,
		`[{"id": "char_001", "name": "Yeonghee", "aliases": ["that woman"], "is_new_character_suggestion": false, "action": "pleads", "emotion": "tearful"}]`,
	}})

	r.Resolve(context.Background(), "cut_001", "Yeonghee entered.", "", st)
	r.Resolve(context.Background(), "cut_002", "That woman pleaded.", "", st)

	rec, ok := st.Get("char_001")
	require.True(t, ok)
	assert.True(t, rec.HasAlias("that woman"))
	assert.Equal(t, "cut_002", rec.LastSeenCut)
	assert.Len(t, rec.AllActions, 2)
	assert.Len(t, rec.AllEmotions, 2)
	assert.Equal(t, "enters", rec.AllActions["cut_001"])
	assert.Equal(t, "pleads", rec.AllActions["cut_002"])
}

// An oracle-proposed id that is not in the store degrades to a fresh
// identity instead of corrupting the store. This can duplicate an identity;
// that is the documented trade-off, not a defect to fix here.
func TestHallucinatedIDTreatedAsNew(t *testing.T) {
	st := store.New()
	r := newResolver(&MockLLM{Response: `[{"id": "char_042", "name": "Cheolsu", "is_new_character_suggestion": false, "confidence_for_merge": 0.8}]`})

	views := r.Resolve(context.Background(), "cut_001", "Cheolsu stood up.", "", st)

	require.Len(t, views, 1)
	assert.Equal(t, "char_001", views[0].ID)
	assert.False(t, st.Has("char_042"))
	rec, ok := st.Get("char_001")
	require.True(t, ok)
	assert.Equal(t, "cut_001", rec.FirstSeenCut)
}

func TestNonCharIDTreatedAsNew(t *testing.T) {
	st := store.New()
	r := newResolver(&MockLLM{Response: `[{"id": "detective-1", "name": "Cheolsu", "is_new_character_suggestion": false}]`})

	views := r.Resolve(context.Background(), "cut_001", "text", "", st)

	require.Len(t, views, 1)
	assert.Equal(t, "char_001", views[0].ID)
}

// Views mirror the store's current name/appearance/outfit, layered with the
// cut's own expression/emotion/action.
func TestViewsMirrorStoreValues(t *testing.T) {
	st := store.New()
	r := newResolver(&MockLLM{ResponseQueue: []string{
		`[{"id": "NEW", "name": "Yeonghee", "appearance": "long black hair", "outfit": "trench coat", "is_new_character_suggestion": true}]`,
		`[{"id": "char_001", "name": "Yeonghee", "is_new_character_suggestion": false, "expression": "smiling", "action": "waves"}]`,
	}})

	r.Resolve(context.Background(), "cut_001", "intro", "", st)
	views := r.Resolve(context.Background(), "cut_002", "wave", "", st)

	require.Len(t, views, 1)
	// Appearance/outfit were not restated in cut 2; the store's values carry.
	assert.Equal(t, "long black hair", views[0].Appearance)
	assert.Equal(t, "trench coat", views[0].Outfit)
	assert.Equal(t, "smiling", views[0].Expression)
	assert.Equal(t, "waves", views[0].Action)
}

func TestStoreSummaryReachesPrompt(t *testing.T) {
	st := store.New()
	st.Create("cut_001", mentionFor(st, "Yeonghee"))

	mock := &MockLLM{Response: `[]`}
	r := newResolver(mock)
	r.Resolve(context.Background(), "cut_002", "some text", "some context", st)

	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "Yeonghee")
	assert.Contains(t, mock.Prompts[0], "some context")
	assert.Contains(t, mock.Prompts[0], "some text")
}

func mentionFor(st *store.Store, name string) model.CharacterMention {
	return model.CharacterMention{ID: st.NewCharacterID(), Name: name}
}

func TestResolveDegradesWithoutOracle(t *testing.T) {
	st := store.New()
	r := NewResolver(nil, config.DefaultPrompts())

	views := r.Resolve(context.Background(), "cut_001", "text", "", st)

	assert.Empty(t, views)
	assert.Equal(t, 0, st.Len())
}

func TestResolveDegradesOnOracleError(t *testing.T) {
	st := store.New()
	r := newResolver(&MockLLM{Err: errOracleDown})

	views := r.Resolve(context.Background(), "cut_001", "text", "", st)

	assert.Empty(t, views)
	assert.Equal(t, 0, st.Len())
}

func TestResolveDegradesOnMalformedResponse(t *testing.T) {
	st := store.New()
	r := newResolver(&MockLLM{Response: "I am not JSON at all."})

	views := r.Resolve(context.Background(), "cut_001", "text", "", st)

	assert.Empty(t, views)
	assert.Equal(t, 0, st.Len())
}
