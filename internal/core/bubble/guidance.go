package bubble

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/core/common"
	"github.com/agenthands/webtoon/internal/core/model"
	"github.com/agenthands/webtoon/internal/llm"
)

// Guider asks the oracle for speech bubble placement hints. It holds no
// state; the output is a function of the cut's dialogues, character views,
// and composition.
type Guider struct {
	LLM     llm.LLMClient
	Prompts config.Prompts
}

func NewGuider(llmClient llm.LLMClient, prompts config.Prompts) *Guider {
	return &Guider{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// Guide returns placement guidance for the cut's dialogues. An empty dialogue
// list short-circuits without an oracle call. The oracle is instructed to
// reference only the given dialogue ids, but that contract is not enforced
// here; consumers must tolerate entries whose dialogue_id matches nothing.
func (g *Guider) Guide(ctx context.Context, dialogues []model.Dialogue, characters []model.CharacterView, composition model.Composition) []model.BubbleGuidance {
	if len(dialogues) == 0 {
		return nil
	}
	if g.LLM == nil {
		return nil
	}

	prompt := fmt.Sprintf(g.Prompts.Bubbles,
		characterSummary(characters),
		dialogueSummary(dialogues),
		compositionJSON(composition),
	)

	response, err := g.LLM.Generate(ctx, prompt)
	if err != nil {
		log.Printf("bubble: guidance request failed: %v", err)
		return nil
	}

	guidance, err := common.ParseJSON[[]model.BubbleGuidance](response)
	if err != nil {
		log.Printf("bubble: failed to parse guidance: %v", err)
		return nil
	}

	return guidance
}

func characterSummary(characters []model.CharacterView) string {
	lines := make([]string, 0, len(characters))
	for _, c := range characters {
		lines = append(lines, fmt.Sprintf("character id: %s, name: %s, current action/position cue: %s (%s expression)",
			c.ID, c.Name, c.Action, c.Expression))
	}
	return strings.Join(lines, "\n")
}

func dialogueSummary(dialogues []model.Dialogue) string {
	lines := make([]string, 0, len(dialogues))
	for _, d := range dialogues {
		speaker := d.SpeakerID
		if speaker == "" {
			speaker = d.SpeakerNameGuess
		}
		lines = append(lines, fmt.Sprintf("dialogue id: %s, speaker (assumed): %s, text: %q, nuance: %s",
			d.ID, speaker, d.Text, d.Nuance))
	}
	return strings.Join(lines, "\n")
}

func compositionJSON(composition model.Composition) string {
	data, err := json.Marshal(composition)
	if err != nil {
		return "{}"
	}
	return string(data)
}
