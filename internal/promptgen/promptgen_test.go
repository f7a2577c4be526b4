package promptgen

import (
	"context"
	"errors"
	"testing"

	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/core/model"
	"github.com/stretchr/testify/assert"
)

type MockLLM struct {
	Response string
	Err      error
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func sampleElements() model.CutElements {
	return model.CutElements{
		CutID: "cut_001",
		Characters: []model.CharacterView{
			{Name: "Yeonghee", Appearance: "long black hair", Outfit: "trench coat", Action: "pleading", Expression: "tearful"},
		},
		Composition: model.Composition{ShotType: "close-up", CameraAngle: "eye level", FocusElement: "her eyes"},
		Background: model.Background{
			LocationType:  "indoor",
			SpecificPlace: "detective office",
			TimeOfDay:     "afternoon",
			Weather:       "rain",
			KeyProps:      []string{"desk", "window"},
			Atmosphere:    "heavy",
		},
	}
}

func TestBuildDraft(t *testing.T) {
	g := NewGenerator(nil, config.StyleConfig{ArtStyle: "clean webtoon style", ColorPalette: "vivid colors"}, config.DefaultPrompts())

	draft := g.BuildDraft(sampleElements())

	assert.Contains(t, draft, "Yeonghee")
	assert.Contains(t, draft, "trench coat")
	assert.Contains(t, draft, "close-up")
	assert.Contains(t, draft, "focusing on her eyes")
	assert.Contains(t, draft, "detective office")
	assert.Contains(t, draft, "weather is rain")
	assert.Contains(t, draft, "desk, window")
	assert.Contains(t, draft, "Art style: clean webtoon style.")
	assert.Contains(t, draft, "Color palette: vivid colors.")
}

func TestBuildDraftUsesDefaultsForMissingFields(t *testing.T) {
	g := NewGenerator(nil, config.StyleConfig{}, config.DefaultPrompts())

	draft := g.BuildDraft(model.CutElements{CutID: "cut_001"})

	assert.Contains(t, draft, "medium shot")
	assert.Contains(t, draft, "a generic place")
	assert.NotContains(t, draft, "Art style")
}

func TestGenerateUsesEnhancedPrompt(t *testing.T) {
	g := NewGenerator(&MockLLM{Response: "  a polished image prompt\n"}, config.StyleConfig{}, config.DefaultPrompts())

	prompt := g.Generate(context.Background(), sampleElements())

	assert.Equal(t, "a polished image prompt", prompt)
}

func TestGenerateFallsBackToDraft(t *testing.T) {
	style := config.StyleConfig{ArtStyle: "webtoon"}

	withErr := NewGenerator(&MockLLM{Err: errors.New("down")}, style, config.DefaultPrompts())
	withEmpty := NewGenerator(&MockLLM{Response: "   "}, style, config.DefaultPrompts())
	withNil := NewGenerator(nil, style, config.DefaultPrompts())

	for name, g := range map[string]*Generator{"error": withErr, "empty": withEmpty, "nil": withNil} {
		prompt := g.Generate(context.Background(), sampleElements())
		assert.Contains(t, prompt, "Yeonghee", name)
		assert.Contains(t, prompt, "Art style: webtoon.", name)
	}
}
