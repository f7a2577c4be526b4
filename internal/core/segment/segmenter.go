package segment

import (
	"context"
	"fmt"
	"log"

	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/core/common"
	"github.com/agenthands/webtoon/internal/core/model"
	"github.com/agenthands/webtoon/internal/llm"
	"github.com/agenthands/webtoon/internal/store"
)

// Segmenter splits a whole novel into the ordered cut list via the
// segmentation oracle. Cut ids are minted by the store so the id sequence
// stays consistent with the rest of the run.
type Segmenter struct {
	LLM     llm.LLMClient
	Prompts config.Prompts
}

func NewSegmenter(llmClient llm.LLMClient, prompts config.Prompts) *Segmenter {
	return &Segmenter{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// segmentedScene is the oracle's per-cut shape; the placeholder id is
// discarded and replaced with a store-minted cut id.
type segmentedScene struct {
	IDPlaceholder string `json:"id_placeholder"`
	Text          string `json:"text"`
}

// Segment returns the ordered cuts of the novel. When the oracle is
// unavailable, fails, or returns nothing usable, the whole novel degrades to
// a single cut so the pipeline still yields output.
func (s *Segmenter) Segment(ctx context.Context, novelText string, st *store.Store) []model.Cut {
	scenes := s.callOracle(ctx, novelText)

	cuts := make([]model.Cut, 0, len(scenes))
	for _, scene := range scenes {
		if scene.Text == "" {
			continue
		}
		cuts = append(cuts, model.Cut{
			ID:   st.NewCutID(),
			Text: scene.Text,
		})
	}

	if len(cuts) == 0 {
		log.Printf("segment: no scenes from oracle; treating the whole text as one cut")
		cuts = append(cuts, model.Cut{
			ID:   st.NewCutID(),
			Text: novelText,
		})
	}

	log.Printf("segment: split novel into %d cut(s)", len(cuts))
	return cuts
}

func (s *Segmenter) callOracle(ctx context.Context, novelText string) []segmentedScene {
	if s.LLM == nil {
		return nil
	}

	prompt := fmt.Sprintf(s.Prompts.Segmentation, novelText)
	response, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		log.Printf("segment: segmentation request failed: %v", err)
		return nil
	}

	scenes, err := common.ParseJSON[[]segmentedScene](response)
	if err != nil {
		log.Printf("segment: failed to parse scenes: %v", err)
		return nil
	}
	return scenes
}
