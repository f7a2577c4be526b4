package model

// Cut is one segmented narrative unit of the source novel, corresponding to
// one output panel.
type Cut struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Composition describes the visual staging of a cut.
type Composition struct {
	CameraAngle        string `json:"camera_angle,omitempty"`
	ShotType           string `json:"shot_type,omitempty"`
	CharacterPlacement string `json:"character_placement,omitempty"`
	FocusElement       string `json:"focus_element,omitempty"`
}

// Background describes the setting of a cut.
type Background struct {
	LocationType  string   `json:"location_type,omitempty"`
	SpecificPlace string   `json:"specific_place,omitempty"`
	TimeOfDay     string   `json:"time_of_day,omitempty"`
	Weather       string   `json:"weather,omitempty"`
	KeyProps      []string `json:"key_props,omitempty"`
	Atmosphere    string   `json:"atmosphere,omitempty"`
}

// Dialogue is one directly-quoted line within a cut. SpeakerID is empty when
// speaker attribution found no matching identity.
type Dialogue struct {
	ID               string `json:"id"`
	SpeakerNameGuess string `json:"speaker_name_guess"`
	SpeakerID        string `json:"speaker_id,omitempty"`
	Text             string `json:"text"`
	Nuance           string `json:"nuance,omitempty"`
}

// BubbleGuidance is an oracle-suggested speech bubble placement for one
// dialogue. Entries whose DialogueID matches nothing in the cut are unusable
// but must be tolerated by consumers.
type BubbleGuidance struct {
	DialogueID    string `json:"dialogue_id"`
	SpeakerRefID  string `json:"speaker_ref_id,omitempty"`
	SuggestedArea string `json:"suggested_area,omitempty"`
	StyleHint     string `json:"bubble_style_hint,omitempty"`
	TailDirection string `json:"tail_direction,omitempty"`
}

// CutElements is the full extraction result for one cut. Built fresh per cut,
// never persisted beyond the run's output collection.
type CutElements struct {
	CutID          string           `json:"cut_id"`
	OriginalText   string           `json:"original_text_for_cut"`
	Characters     []CharacterView  `json:"characters"`
	Composition    Composition      `json:"composition"`
	Background     Background       `json:"background"`
	Dialogues      []Dialogue       `json:"dialogues"`
	BubbleGuidance []BubbleGuidance `json:"speech_bubble_guidance"`
}

// CutResult is one fully-processed panel: extracted elements plus the
// generated image and the dialogue-composited final image. Image fields stay
// nil for stages that failed or were skipped.
type CutResult struct {
	Elements    CutElements `json:"elements"`
	ImagePrompt string      `json:"image_prompt,omitempty"`
	Image       []byte      `json:"-"`
	Composed    []byte      `json:"-"`
}

// RunResult is the output of one pipeline run: exactly one CutResult per
// segmented cut, in segmentation order.
type RunResult struct {
	RunID string      `json:"run_id"`
	Cuts  []CutResult `json:"cuts"`
}
