package compose

import (
	"fmt"
	"strings"

	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/core/model"
)

// Compositor renders a cut's dialogues and bubble guidance onto a generated
// base image. The base image is returned unchanged when there is nothing to
// render.
type Compositor interface {
	Compose(base []byte, dialogues []model.Dialogue, guidance []model.BubbleGuidance, style config.StyleConfig) []byte
}

// TextOverlay is a compositor that appends a textual annotation block to the
// image bytes instead of rasterizing bubbles. It keeps the pipeline total
// until a raster compositing service is plugged in, and doubles as the
// human-readable layout dump for downstream renderers.
type TextOverlay struct{}

func NewTextOverlay() *TextOverlay {
	return &TextOverlay{}
}

func (t *TextOverlay) Compose(base []byte, dialogues []model.Dialogue, guidance []model.BubbleGuidance, style config.StyleConfig) []byte {
	if len(dialogues) == 0 {
		return base
	}

	byDialogue := make(map[string]model.BubbleGuidance, len(guidance))
	for _, g := range guidance {
		// Guidance for unknown dialogue ids is simply unusable; keep it out
		// of the overlay rather than failing.
		byDialogue[g.DialogueID] = g
	}

	var b strings.Builder
	b.WriteString("\n--- Applied Dialogues ---\n")
	for _, d := range dialogues {
		speaker := d.SpeakerID
		if speaker == "" {
			speaker = d.SpeakerNameGuess
		}
		g := byDialogue[d.ID]
		b.WriteString(fmt.Sprintf("  Dialogue ID: %s, Speaker: %s, Text: %q (Nuance: %s), Bubble Suggestion: %s (%s)\n",
			d.ID, orNA(speaker), d.Text, orNA(d.Nuance), orNA(g.SuggestedArea), orNA(g.StyleHint)))
	}

	out := make([]byte, 0, len(base)+b.Len())
	out = append(out, base...)
	out = append(out, []byte(b.String())...)
	return out
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
