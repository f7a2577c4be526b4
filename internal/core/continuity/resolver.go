package continuity

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/core/common"
	"github.com/agenthands/webtoon/internal/core/model"
	"github.com/agenthands/webtoon/internal/llm"
	"github.com/agenthands/webtoon/internal/store"
)

// Resolver maintains character identity continuity across the ordered cut
// sequence. Per cut it asks the oracle which characters are present, decides
// merge-vs-create against the identity store, applies the mutation, and
// produces the cut's point-in-time character views.
type Resolver struct {
	LLM     llm.LLMClient
	Prompts config.Prompts
}

func NewResolver(llmClient llm.LLMClient, prompts config.Prompts) *Resolver {
	return &Resolver{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// Resolve runs identification and store mutation for one cut and returns the
// resolved character views. With no oracle available, or on a malformed
// response, it returns an empty view list and leaves the store untouched.
func (r *Resolver) Resolve(ctx context.Context, cutID, cutText, sceneContext string, st *store.Store) []model.CharacterView {
	mentions := r.Identify(ctx, cutText, sceneContext, st)
	return r.Apply(cutID, mentions, st)
}

// Identify asks the oracle to enumerate the characters present in the cut and
// settles each mention's identity. The oracle's merge proposal is taken as
// authoritative for ambiguous matches; the resolver performs no similarity
// scoring of its own. A mention flagged new, carrying no usable id, or
// referencing an id absent from the store gets a freshly minted id. The
// absent-id case is a silent degrade by design: a hallucinated id must not
// corrupt the store, even at the cost of a possible duplicate identity.
func (r *Resolver) Identify(ctx context.Context, cutText, sceneContext string, st *store.Store) []model.CharacterMention {
	if r.LLM == nil {
		return nil
	}

	prompt := fmt.Sprintf(r.Prompts.Characters, st.Summary(), sceneContext, cutText)

	response, err := r.LLM.Generate(ctx, prompt)
	if err != nil {
		log.Printf("continuity: character identification failed: %v", err)
		return nil
	}

	mentions, err := common.ParseJSON[[]model.CharacterMention](response)
	if err != nil {
		log.Printf("continuity: failed to parse character mentions: %v", err)
		return nil
	}

	for i := range mentions {
		m := &mentions[i]
		switch {
		case m.IsNewSuggestion, m.ID == "", m.ID == "NEW", !strings.HasPrefix(m.ID, "char_"):
			m.ID = st.NewCharacterID()
			m.ActuallyNew = true
		case !st.Has(m.ID):
			newID := st.NewCharacterID()
			log.Printf("continuity: oracle referenced unknown id '%s'; treating '%s' as new (%s)", m.ID, m.Name, newID)
			m.ID = newID
			m.ActuallyNew = true
		default:
			m.ActuallyNew = false
		}
	}

	return mentions
}

// Apply mutates the store for each resolved mention and builds the per-cut
// view list, layering this cut's expression/emotion/action over the current
// store values for name, appearance, and outfit.
func (r *Resolver) Apply(cutID string, mentions []model.CharacterMention, st *store.Store) []model.CharacterView {
	views := make([]model.CharacterView, 0, len(mentions))

	for _, m := range mentions {
		var rec *model.CharacterRecord
		if m.ActuallyNew {
			rec = st.Create(cutID, m)
			log.Printf("continuity: new character '%s' (%s) added to store", m.Name, m.ID)
		} else {
			var ok bool
			rec, ok = st.Merge(cutID, m)
			if !ok {
				// Unreachable after Identify's id policy, kept so a bad
				// caller cannot panic the pipeline.
				log.Printf("continuity: character %s marked existing but missing from store; skipping update", m.ID)
			}
		}

		view := model.CharacterView{
			ID:         m.ID,
			Name:       m.Name,
			Appearance: m.Appearance,
			Outfit:     m.Outfit,
			Expression: m.Expression,
			Emotion:    m.Emotion,
			Action:     m.Action,
		}
		if rec != nil {
			view.Name = rec.Name
			view.Appearance = rec.Appearance
			view.Outfit = rec.Outfit
		}
		views = append(views, view)
	}

	return views
}
