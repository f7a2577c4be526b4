package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name string `json:"name"`
}

func TestParseJSONBareObject(t *testing.T) {
	result, err := ParseJSON[sample](`{"name": "Yeonghee"}`)
	assert.NoError(t, err)
	assert.Equal(t, "Yeonghee", result.Name)
}

func TestParseJSONFencedBlock(t *testing.T) {
	response := "Here is the result:\n```json\n{\"name\": \"Cheolsu\"}\n```\nLet me know if you need anything else."
	result, err := ParseJSON[sample](response)
	assert.NoError(t, err)
	assert.Equal(t, "Cheolsu", result.Name)
}

func TestParseJSONFenceWithoutLanguageTag(t *testing.T) {
	result, err := ParseJSON[sample]("```\n{\"name\": \"Ruby\"}\n```")
	assert.NoError(t, err)
	assert.Equal(t, "Ruby", result.Name)
}

func TestParseJSONList(t *testing.T) {
	response := "The dialogues are:\n[{\"name\": \"a\"}, {\"name\": \"b\"}]"
	result, err := ParseJSON[[]sample](response)
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "b", result[1].Name)
}

func TestParseJSONListContainingObjects(t *testing.T) {
	// The list opens before any object brace; the whole list must be taken.
	result, err := ParseJSON[[]sample](`[{"name": "x"}]`)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestParseJSONNoPayload(t *testing.T) {
	_, err := ParseJSON[sample]("I could not find any characters in this text.")
	assert.Error(t, err)
}

func TestParseJSONMalformed(t *testing.T) {
	_, err := ParseJSON[sample](`{"name": `)
	assert.Error(t, err)
}
