package promptgen

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/core/model"
	"github.com/agenthands/webtoon/internal/llm"
)

// Generator turns a cut's extracted elements into a text-to-image prompt:
// a rule-based draft assembled from characters, composition, background, and
// the global style, optionally rewritten by the oracle for the image model.
type Generator struct {
	LLM     llm.LLMClient
	Style   config.StyleConfig
	Prompts config.Prompts
}

func NewGenerator(llmClient llm.LLMClient, style config.StyleConfig, prompts config.Prompts) *Generator {
	return &Generator{
		LLM:     llmClient,
		Style:   style,
		Prompts: prompts,
	}
}

// Generate returns the image prompt for a cut. The oracle enhancement pass is
// best-effort; without it the rule-based draft is used as-is.
func (g *Generator) Generate(ctx context.Context, elements model.CutElements) string {
	draft := g.BuildDraft(elements)
	if g.LLM == nil {
		return draft
	}

	response, err := g.LLM.Generate(ctx, fmt.Sprintf(g.Prompts.Enhance, draft))
	if err != nil {
		log.Printf("promptgen: enhancement failed, using draft prompt: %v", err)
		return draft
	}
	enhanced := strings.TrimSpace(response)
	if enhanced == "" {
		return draft
	}
	return enhanced
}

// BuildDraft assembles the rule-based prompt from the cut's elements.
func (g *Generator) BuildDraft(elements model.CutElements) string {
	var parts []string

	charDescs := make([]string, 0, len(elements.Characters))
	for _, c := range elements.Characters {
		charDescs = append(charDescs, fmt.Sprintf("%s (%s, wearing %s) is %s with an expression of %s.",
			orDefault(c.Name, "Unknown character"),
			orDefault(c.Appearance, "N/A"),
			orDefault(c.Outfit, "N/A"),
			orDefault(c.Action, "N/A"),
			orDefault(c.Expression, "N/A")))
	}
	if len(charDescs) > 0 {
		parts = append(parts, strings.Join(charDescs, " "))
	}

	comp := elements.Composition
	compDesc := fmt.Sprintf("Scene composition: %s, %s",
		orDefault(comp.ShotType, "medium shot"),
		orDefault(comp.CameraAngle, "eye level"))
	if comp.FocusElement != "" {
		compDesc += fmt.Sprintf(", focusing on %s", comp.FocusElement)
	}
	parts = append(parts, compDesc+".")

	bg := elements.Background
	bgDesc := fmt.Sprintf("Background: %s (%s) at %s",
		orDefault(bg.SpecificPlace, "a generic place"),
		orDefault(bg.LocationType, "outdoor"),
		orDefault(bg.TimeOfDay, "daytime"))
	if bg.Weather != "" {
		bgDesc += fmt.Sprintf(", weather is %s", bg.Weather)
	}
	if len(bg.KeyProps) > 0 {
		bgDesc += fmt.Sprintf(". Key props: %s", strings.Join(bg.KeyProps, ", "))
	}
	if bg.Atmosphere != "" {
		bgDesc += fmt.Sprintf(". Overall atmosphere: %s", bg.Atmosphere)
	}
	parts = append(parts, bgDesc+".")

	if g.Style.ArtStyle != "" {
		parts = append(parts, fmt.Sprintf("Art style: %s.", g.Style.ArtStyle))
	}
	if g.Style.ColorPalette != "" {
		parts = append(parts, fmt.Sprintf("Color palette: %s.", g.Style.ColorPalette))
	}

	return strings.Join(parts, " ")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
