package extract

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/core/bubble"
	"github.com/agenthands/webtoon/internal/core/common"
	"github.com/agenthands/webtoon/internal/core/continuity"
	"github.com/agenthands/webtoon/internal/core/model"
	"github.com/agenthands/webtoon/internal/llm"
	"github.com/agenthands/webtoon/internal/store"
)

// Extractor coordinates all per-cut element extraction: character continuity,
// composition, background, dialogue separation, speaker attribution, and
// bubble guidance. All oracle failures degrade to empty values; ProcessCut
// always returns a well-formed CutElements.
type Extractor struct {
	LLM      llm.LLMClient
	Resolver *continuity.Resolver
	Guider   *bubble.Guider
	Prompts  config.Prompts
}

func NewExtractor(llmClient llm.LLMClient, prompts config.Prompts) *Extractor {
	return &Extractor{
		LLM:      llmClient,
		Resolver: continuity.NewResolver(llmClient, prompts),
		Guider:   bubble.NewGuider(llmClient, prompts),
		Prompts:  prompts,
	}
}

// rawDialogue is the oracle's pre-attribution dialogue shape.
type rawDialogue struct {
	SpeakerNameGuess string `json:"speaker_name_guess"`
	Text             string `json:"text"`
	Nuance           string `json:"nuance"`
}

// Composition infers the cut's visual staging. Returns the zero descriptor
// when the oracle is unavailable or the response is unusable.
func (e *Extractor) Composition(ctx context.Context, cutText, sceneContext string) model.Composition {
	if e.LLM == nil {
		return model.Composition{}
	}

	prompt := fmt.Sprintf(e.Prompts.Composition, sceneContext, cutText)
	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		log.Printf("extract: composition inference failed: %v", err)
		return model.Composition{}
	}

	composition, err := common.ParseJSON[model.Composition](response)
	if err != nil {
		log.Printf("extract: failed to parse composition: %v", err)
		return model.Composition{}
	}
	return composition
}

// Background infers the cut's setting. Same degrade policy as Composition.
func (e *Extractor) Background(ctx context.Context, cutText, sceneContext string) model.Background {
	if e.LLM == nil {
		return model.Background{}
	}

	prompt := fmt.Sprintf(e.Prompts.Background, sceneContext, cutText)
	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		log.Printf("extract: background inference failed: %v", err)
		return model.Background{}
	}

	background, err := common.ParseJSON[model.Background](response)
	if err != nil {
		log.Printf("extract: failed to parse background: %v", err)
		return model.Background{}
	}
	return background
}

// Dialogues extracts the cut's quoted lines and assigns dialogue ids. The
// counter restarts for every cut; global uniqueness comes from the
// cut-derived prefix.
func (e *Extractor) Dialogues(ctx context.Context, cutID, cutText string) []model.Dialogue {
	if e.LLM == nil {
		return nil
	}

	prompt := fmt.Sprintf(e.Prompts.Dialogues, cutText)
	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		log.Printf("extract: dialogue separation failed: %v", err)
		return nil
	}

	raw, err := common.ParseJSON[[]rawDialogue](response)
	if err != nil {
		log.Printf("extract: failed to parse dialogues: %v", err)
		return nil
	}

	prefix := strings.TrimPrefix(cutID, "cut_")
	dialogues := make([]model.Dialogue, 0, len(raw))
	for i, d := range raw {
		dialogues = append(dialogues, model.Dialogue{
			ID:               fmt.Sprintf("dlg_%s_%03d", prefix, i+1),
			SpeakerNameGuess: d.SpeakerNameGuess,
			Text:             d.Text,
			Nuance:           d.Nuance,
		})
	}
	return dialogues
}

// AttributeSpeakers resolves each dialogue's speaker id by exact name or
// alias match: first against the cut's own character views, then against the
// whole identity store, in that order. First match wins; no fuzzy matching.
// Dialogues with no match keep an empty speaker id.
func (e *Extractor) AttributeSpeakers(dialogues []model.Dialogue, views []model.CharacterView, st *store.Store) []model.Dialogue {
	for i := range dialogues {
		guess := dialogues[i].SpeakerNameGuess
		if guess == "" {
			continue
		}

		assigned := ""
		for _, view := range views {
			rec, ok := st.Get(view.ID)
			if !ok {
				continue
			}
			if rec.Name == guess || rec.HasAlias(guess) {
				assigned = view.ID
				break
			}
		}
		if assigned == "" {
			if id, ok := st.FindBySpeakerName(guess); ok {
				assigned = id
			}
		}

		dialogues[i].SpeakerID = assigned
	}
	return dialogues
}

// ProcessCut runs the whole extraction sequence for one cut, in order:
// continuity resolution, composition, background, dialogue separation,
// speaker attribution, bubble guidance.
func (e *Extractor) ProcessCut(ctx context.Context, cutID, cutText, sceneContext string, st *store.Store) model.CutElements {
	characters := e.Resolver.Resolve(ctx, cutID, cutText, sceneContext, st)

	composition := e.Composition(ctx, cutText, sceneContext)
	background := e.Background(ctx, cutText, sceneContext)

	dialogues := e.Dialogues(ctx, cutID, cutText)
	dialogues = e.AttributeSpeakers(dialogues, characters, st)

	guidance := e.Guider.Guide(ctx, dialogues, characters, composition)

	return model.CutElements{
		CutID:          cutID,
		OriginalText:   cutText,
		Characters:     characters,
		Composition:    composition,
		Background:     background,
		Dialogues:      dialogues,
		BubbleGuidance: guidance,
	}
}
