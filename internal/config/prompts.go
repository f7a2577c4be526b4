package config

// DefaultPrompts returns the built-in oracle prompt templates. Placeholders
// are positional fmt.Sprintf arguments; the argument order for each template
// is documented inline and must match the call sites.
func DefaultPrompts() Prompts {
	return Prompts{
		// args: novel text
		Segmentation: `Split the following web novel text into individual webtoon cuts (panels).
Each cut should be delimited by a shift in time, place, key event, or narrative turning point.
Respond with ONLY a JSON array. Each element must be an object with exactly two keys:
- "id_placeholder": a temporary id such as "temp_id_1" (real ids are assigned later)
- "text": the novel text belonging to that cut

[WEB NOVEL TEXT]
---
%s
---

Example response:
[
{"id_placeholder": "temp_id_1", "text": "contents of the first cut..."},
{"id_placeholder": "temp_id_2", "text": "contents of the second cut..."}
]`,

		// args: character database summary, scene context, cut text
		Characters: `You are an expert at analyzing fiction for character continuity and detail extraction.

[INSTRUCTIONS]
1. Identify every character appearing in the "current cut text", using the "scene context" for disambiguation.
2. Consult the "existing character database" and decide whether each character matches an existing entry.
   - Judge identity by name, aliases, consistency of appearance/behavior, and narrative flow.
   - If a pronoun or generic phrase ("the mysterious woman", "she") refers to a known character, fold it into that character.
3. For each character produce a JSON object with these keys:
   - "id": the character's id. Use the existing id for a known character, or the literal string "NEW" for a new one.
   - "name": the character's primary name.
   - "aliases": list of other names or referring expressions used in the text.
   - "appearance": appearance description (extend any existing description).
   - "outfit": outfit description (extend any existing description).
   - "expression": facial expression in this cut.
   - "emotion": emotional state in this cut.
   - "action": main action in this cut.
   - "is_new_character_suggestion": true for a new character, false for an update of a known one.
   - "reasoning": short justification for the identity decision.
   - "confidence_for_merge": confidence (0.0-1.0) for a merge decision; 0.0 for new characters.

[EXISTING CHARACTER DATABASE]
%s

[SCENE CONTEXT]
%s

[CURRENT CUT TEXT]
%s

Respond with a JSON array of those objects and nothing else.`,

		// args: scene context, cut text
		Composition: `Based on the "current cut text" and "scene context" below, set the visual staging of this webtoon cut.
Respond with a JSON object with these keys: "camera_angle", "shot_type" (e.g. close-up, full shot, bust shot), "character_placement" (where the characters sit in frame), "focus_element" (the visually dominant element of the cut).

[SCENE CONTEXT]
%s

[CURRENT CUT TEXT]
%s

Respond with a JSON object only.`,

		// args: scene context, cut text
		Background: `Based on the "current cut text" and "scene context" below, describe the background of this webtoon cut in detail.
Respond with a JSON object with these keys: "location_type" (indoor/outdoor), "specific_place", "time_of_day", "weather" (if applicable), "key_props" (list of notable props), "atmosphere".

[SCENE CONTEXT]
%s

[CURRENT CUT TEXT]
%s

Respond with a JSON object only.`,

		// args: cut text
		Dialogues: `Extract every directly quoted line of dialogue ("...") from the "current cut text" below.
For each line produce a JSON object with these keys:
- "id_placeholder": a temporary id (real ids are assigned later)
- "speaker_name_guess": the most likely speaker; when no name is available, guess a label such as "man 1" or "voice"
- "text": the spoken text
- "nuance": the tone or implied emotion of the line (e.g. shout, whisper, resolute, joyful, sorrowful)

[CURRENT CUT TEXT]
%s

Respond with a JSON array of those objects and nothing else.`,

		// args: character summary, dialogue summary, composition JSON
		Bubbles: `Produce speech bubble placement guidance for a webtoon cut, taking the character information, dialogue information, and composition below into account together.
Respond with a JSON array, one object per dialogue, with these keys:
- "dialogue_id": id of the dialogue this entry refers to
- "speaker_ref_id": id of the speaking character (from the character information below)
- "suggested_area": rough bubble placement (e.g. "upper right of character A", "bottom center of frame"), considering character positions and key visual elements
- "bubble_style_hint": shape or style of the bubble (e.g. "plain", "thought cloud", "spiky shout", "wavering outline"), reflecting the dialogue's nuance
- "tail_direction": where the bubble tail should point (e.g. "toward the speaker's mouth")

[CHARACTERS IN CUT]
%s

[DIALOGUES IN CUT]
%s

[COMPOSITION]
%s

Respond with a JSON array only.`,

		// args: draft prompt
		Enhance: `Rewrite the draft prompt below into a prompt well suited for a text-to-image model.

[DRAFT PROMPT]
%s

Respond with the prompt text only, nothing else.`,
	}
}
