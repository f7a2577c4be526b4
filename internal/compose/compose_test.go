package compose

import (
	"testing"

	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestComposeReturnsBaseWhenNoDialogues(t *testing.T) {
	base := []byte("image bytes")
	c := NewTextOverlay()

	out := c.Compose(base, nil, []model.BubbleGuidance{{DialogueID: "dlg_001_001"}}, config.StyleConfig{})

	assert.Equal(t, base, out)
}

func TestComposeAppendsDialogueOverlay(t *testing.T) {
	base := []byte("image bytes")
	c := NewTextOverlay()

	dialogues := []model.Dialogue{
		{ID: "dlg_001_001", SpeakerID: "char_001", Text: "Please find my cat.", Nuance: "desperate"},
		{ID: "dlg_001_002", SpeakerNameGuess: "voice", Text: "Who is there?"},
	}
	guidance := []model.BubbleGuidance{
		{DialogueID: "dlg_001_001", SuggestedArea: "upper right", StyleHint: "plain"},
	}

	out := c.Compose(base, dialogues, guidance, config.StyleConfig{})

	s := string(out)
	assert.Contains(t, s, "image bytes")
	assert.Contains(t, s, "dlg_001_001")
	assert.Contains(t, s, "char_001")
	assert.Contains(t, s, "upper right")
	// Unattributed dialogue falls back to the name guess.
	assert.Contains(t, s, "voice")
	// Dialogue with no guidance renders with placeholders instead of failing.
	assert.Contains(t, s, "dlg_001_002")
}

// A guidance entry pointing at a dialogue id that does not exist in the cut
// must not break composition; it is simply dropped from the overlay.
func TestComposeToleratesOrphanGuidance(t *testing.T) {
	c := NewTextOverlay()

	dialogues := []model.Dialogue{{ID: "dlg_001_001", Text: "hello"}}
	guidance := []model.BubbleGuidance{
		{DialogueID: "dlg_999_999", SuggestedArea: "nowhere"},
		{DialogueID: "dlg_001_001", SuggestedArea: "bottom center"},
	}

	out := c.Compose([]byte("img"), dialogues, guidance, config.StyleConfig{})

	s := string(out)
	assert.Contains(t, s, "bottom center")
	assert.NotContains(t, s, "nowhere")
}
