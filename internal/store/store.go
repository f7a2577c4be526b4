package store

import (
	"fmt"
	"strings"

	"github.com/agenthands/webtoon/internal/core/model"
)

// Store is the character identity database for one pipeline run. It is owned
// exclusively by that run, mutated only between cuts by the continuity
// resolver, and never persisted. It also owns the id counters so that id
// assignment is a function of store state rather than extractor state.
type Store struct {
	records map[string]*model.CharacterRecord
	order   []string // insertion order, for deterministic scans and summaries
	charSeq int
	cutSeq  int
}

func New() *Store {
	return &Store{
		records: make(map[string]*model.CharacterRecord),
	}
}

// NewCharacterID mints the next character id. Ids are never reused within a
// run.
func (s *Store) NewCharacterID() string {
	s.charSeq++
	return fmt.Sprintf("char_%03d", s.charSeq)
}

// NewCutID mints the next cut id.
func (s *Store) NewCutID() string {
	s.cutSeq++
	return fmt.Sprintf("cut_%03d", s.cutSeq)
}

func (s *Store) Get(id string) (*model.CharacterRecord, bool) {
	rec, ok := s.records[id]
	return rec, ok
}

func (s *Store) Has(id string) bool {
	_, ok := s.records[id]
	return ok
}

func (s *Store) Len() int {
	return len(s.records)
}

// All returns every record in insertion order.
func (s *Store) All() []*model.CharacterRecord {
	out := make([]*model.CharacterRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

// Create inserts a new record for a mention whose id has already been minted.
// first/last seen are both the creating cut.
func (s *Store) Create(cutID string, m model.CharacterMention) *model.CharacterRecord {
	rec := &model.CharacterRecord{
		ID:           m.ID,
		Name:         m.Name,
		Aliases:      dedupe(m.Aliases),
		Appearance:   m.Appearance,
		Outfit:       m.Outfit,
		FirstSeenCut: cutID,
		LastSeenCut:  cutID,
		AllActions:   map[string]string{cutID: m.Action},
		AllEmotions:  map[string]string{cutID: m.Emotion},
	}
	s.records[m.ID] = rec
	s.order = append(s.order, m.ID)
	return rec
}

// Merge folds a mention into an existing record, following the field-update
// rules: name overwritten by a non-empty value, aliases grow monotonically,
// appearance/outfit overwritten only by non-empty values, last seen always
// advanced, and this cut's action/emotion recorded.
func (s *Store) Merge(cutID string, m model.CharacterMention) (*model.CharacterRecord, bool) {
	rec, ok := s.records[m.ID]
	if !ok {
		return nil, false
	}

	if m.Name != "" {
		rec.Name = m.Name
	}
	for _, alias := range m.Aliases {
		if alias != "" && !rec.HasAlias(alias) {
			rec.Aliases = append(rec.Aliases, alias)
		}
	}
	if m.Appearance != "" {
		rec.Appearance = m.Appearance
	}
	if m.Outfit != "" {
		rec.Outfit = m.Outfit
	}
	rec.LastSeenCut = cutID
	if rec.AllActions == nil {
		rec.AllActions = make(map[string]string)
	}
	if rec.AllEmotions == nil {
		rec.AllEmotions = make(map[string]string)
	}
	rec.AllActions[cutID] = m.Action
	rec.AllEmotions[cutID] = m.Emotion

	return rec, true
}

// FindBySpeakerName returns the id of the first record (in insertion order)
// whose name or aliases exactly match the given name. No fuzzy matching.
func (s *Store) FindBySpeakerName(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, id := range s.order {
		rec := s.records[id]
		if rec.Name == name || rec.HasAlias(name) {
			return id, true
		}
	}
	return "", false
}

// Summary renders a compact one-line-per-character digest of the store for
// injection into continuity prompts. Returns "none" when the store is empty.
func (s *Store) Summary() string {
	if len(s.order) == 0 {
		return "none"
	}

	var b strings.Builder
	for i, id := range s.order {
		rec := s.records[id]
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(fmt.Sprintf("- ID: %s, name: %s", rec.ID, orUnknown(rec.Name)))
		if len(rec.Aliases) > 0 {
			b.WriteString(fmt.Sprintf(" (aliases: %s)", strings.Join(rec.Aliases, ", ")))
		}
		b.WriteString(fmt.Sprintf(", key traits: %s, %s", rec.Appearance, rec.Outfit))
	}
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
