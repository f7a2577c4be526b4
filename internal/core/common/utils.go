package common

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedBlock = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)\\s*```")

// ParseJSON cleans and unmarshals a JSON payload out of an oracle response
// into a type T. It handles common LLM quirks: markdown code fences around
// the payload, and prose before or after the JSON itself. T may be an object
// or a list type. On failure the error carries the cleaned payload so the raw
// response can be retained in diagnostics.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr := strings.TrimSpace(response)
	if m := fencedBlock.FindStringSubmatch(jsonStr); m != nil {
		jsonStr = m[1]
	}

	// Locate the outermost object or list, whichever starts first.
	objStart := strings.IndexByte(jsonStr, '{')
	listStart := strings.IndexByte(jsonStr, '[')

	start, closer := objStart, byte('}')
	if objStart == -1 || (listStart != -1 && listStart < objStart) {
		start, closer = listStart, ']'
	}
	if start == -1 {
		return zero, fmt.Errorf("no JSON payload found in response")
	}

	end := strings.LastIndexByte(jsonStr, closer)
	if end <= start {
		return zero, fmt.Errorf("unterminated JSON payload in response")
	}
	jsonStr = jsonStr[start : end+1]

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}

	return result, nil
}
