package core

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/agenthands/webtoon/internal/compose"
	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/core/extract"
	"github.com/agenthands/webtoon/internal/core/model"
	"github.com/agenthands/webtoon/internal/core/segment"
	"github.com/agenthands/webtoon/internal/image"
	"github.com/agenthands/webtoon/internal/llm"
	"github.com/agenthands/webtoon/internal/promptgen"
	"github.com/agenthands/webtoon/internal/store"
)

// Pipeline converts a web novel into a sequence of webtoon cuts:
// segmentation, per-cut element extraction, image prompt generation, image
// generation, and dialogue compositing. Cuts are processed strictly in
// segmentation order because each cut's scene context and the identity store
// depend on the fully-completed state left by the previous cut. Every stage
// degrades instead of aborting: a run always yields one result per cut.
type Pipeline struct {
	Segmenter  *segment.Segmenter
	Extractor  *extract.Extractor
	PromptGen  *promptgen.Generator
	Images     image.Generator
	Compositor compose.Compositor

	style               config.StyleConfig
	contextExcerptRunes int
}

// NewPipeline wires the pipeline from config. llmClient and images may be
// nil; the run then proceeds degraded with empty extraction results and no
// panel images.
func NewPipeline(llmClient llm.LLMClient, cfg *config.Config, images image.Generator, compositor compose.Compositor) *Pipeline {
	excerpt := cfg.Pipeline.ContextExcerptRunes
	if excerpt <= 0 {
		excerpt = 500
	}
	if compositor == nil {
		compositor = compose.NewTextOverlay()
	}

	return &Pipeline{
		Segmenter:           segment.NewSegmenter(llmClient, cfg.Prompts),
		Extractor:           extract.NewExtractor(llmClient, cfg.Prompts),
		PromptGen:           promptgen.NewGenerator(llmClient, cfg.Style, cfg.Prompts),
		Images:              images,
		Compositor:          compositor,
		style:               cfg.Style,
		contextExcerptRunes: excerpt,
	}
}

// Run executes one full conversion. Each run owns a fresh identity store;
// stores are never shared across runs or persisted.
func (p *Pipeline) Run(ctx context.Context, novelText string) (*model.RunResult, error) {
	runID := uuid.New().String()
	log.Printf("pipeline: run %s starting", runID)

	st := store.New()
	cuts := p.Segmenter.Segment(ctx, novelText, st)
	leadingExcerpt := leadingRunes(novelText, p.contextExcerptRunes)

	results := make([]model.CutResult, 0, len(cuts))
	for i, cut := range cuts {
		previousText := ""
		if i > 0 {
			previousText = cuts[i-1].Text
		}
		sceneContext := buildSceneContext(previousText, leadingExcerpt)

		log.Printf("pipeline: run %s processing %s", runID, cut.ID)
		results = append(results, p.processCut(ctx, cut, sceneContext, st))
	}

	log.Printf("pipeline: run %s completed with %d cut(s), %d character(s) in store", runID, len(results), st.Len())
	return &model.RunResult{
		RunID: runID,
		Cuts:  results,
	}, nil
}

func (p *Pipeline) processCut(ctx context.Context, cut model.Cut, sceneContext string, st *store.Store) model.CutResult {
	elements := p.Extractor.ProcessCut(ctx, cut.ID, cut.Text, sceneContext, st)
	prompt := p.PromptGen.Generate(ctx, elements)

	result := model.CutResult{
		Elements:    elements,
		ImagePrompt: prompt,
	}

	if p.Images != nil {
		images, err := p.Images.Generate(ctx, prompt)
		if err != nil {
			log.Printf("pipeline: image generation for %s failed: %v", cut.ID, err)
		} else if len(images) > 0 {
			result.Image = images[0]
			result.Composed = p.Compositor.Compose(images[0], elements.Dialogues, elements.BubbleGuidance, p.style)
		}
	}

	return result
}

// buildSceneContext assembles the context string handed to every per-cut
// oracle call: the previous cut's text verbatim, then a leading excerpt of
// the whole work.
func buildSceneContext(previousCutText, leadingExcerpt string) string {
	return fmt.Sprintf("Previous cut: %s\n\nOverall context of the scene under analysis: %s", previousCutText, leadingExcerpt)
}

func leadingRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
