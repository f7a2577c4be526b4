package model

// CharacterRecord is the persistent identity of a character across a whole
// pipeline run. Created once, mutated on every later cut that mentions the
// same identity, never deleted.
type CharacterRecord struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Aliases      []string          `json:"aliases"`
	Appearance   string            `json:"appearance,omitempty"`
	Outfit       string            `json:"outfit,omitempty"`
	FirstSeenCut string            `json:"first_seen_cut"`
	LastSeenCut  string            `json:"last_seen_cut"`
	AllActions   map[string]string `json:"all_actions"`  // cut id -> action
	AllEmotions  map[string]string `json:"all_emotions"` // cut id -> emotion
}

// HasAlias reports whether the given referring expression was ever observed
// for this character. Exact match only, no fuzzy matching.
func (r *CharacterRecord) HasAlias(name string) bool {
	for _, a := range r.Aliases {
		if a == name {
			return true
		}
	}
	return false
}

// CharacterMention is one oracle-proposed observation of a character inside a
// single cut, prior to identity resolution. The ID field carries the oracle's
// suggestion on input; after resolution it holds the final store id.
type CharacterMention struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Aliases         []string `json:"aliases"`
	Appearance      string   `json:"appearance"`
	Outfit          string   `json:"outfit"`
	Expression      string   `json:"expression"`
	Emotion         string   `json:"emotion"`
	Action          string   `json:"action"`
	IsNewSuggestion bool     `json:"is_new_character_suggestion"`
	Confidence      float64  `json:"confidence_for_merge"`
	Reasoning       string   `json:"reasoning"`

	// ActuallyNew is the resolver's decision, which may override the
	// oracle's suggestion (e.g. for hallucinated ids).
	ActuallyNew bool `json:"-"`
}

// CharacterView is the point-in-time representation of a character within one
// cut: name/appearance/outfit mirror the store record at resolution time,
// expression/emotion/action are valid only for that cut.
type CharacterView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Appearance string `json:"appearance,omitempty"`
	Outfit     string `json:"outfit,omitempty"`
	Expression string `json:"expression,omitempty"`
	Emotion    string `json:"emotion,omitempty"`
	Action     string `json:"action,omitempty"`
}
