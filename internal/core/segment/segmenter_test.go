package segment

import (
	"context"
	"testing"

	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockLLM struct {
	Response string
	Err      error
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func TestSegmentAssignsOrderedCutIDs(t *testing.T) {
	mock := &MockLLM{Response: `[
		{"id_placeholder": "temp_id_1", "text": "The office door opened."},
		{"id_placeholder": "temp_id_2", "text": "Rain started outside."},
		{"id_placeholder": "temp_id_3", "text": "Her face filled the frame."}
	]`}
	s := NewSegmenter(mock, config.DefaultPrompts())
	st := store.New()

	cuts := s.Segment(context.Background(), "full novel text", st)

	require.Len(t, cuts, 3)
	assert.Equal(t, "cut_001", cuts[0].ID)
	assert.Equal(t, "cut_002", cuts[1].ID)
	assert.Equal(t, "cut_003", cuts[2].ID)
	assert.Equal(t, "Rain started outside.", cuts[1].Text)
}

func TestSegmentSkipsEmptyScenes(t *testing.T) {
	mock := &MockLLM{Response: `[{"text": "a"}, {"text": ""}, {"text": "b"}]`}
	s := NewSegmenter(mock, config.DefaultPrompts())

	cuts := s.Segment(context.Background(), "novel", store.New())

	require.Len(t, cuts, 2)
	assert.Equal(t, "cut_002", cuts[1].ID)
}

func TestSegmentDegradesToSingleCut(t *testing.T) {
	for name, s := range map[string]*Segmenter{
		"no oracle":       NewSegmenter(nil, config.DefaultPrompts()),
		"oracle error":    NewSegmenter(&MockLLM{Err: assert.AnError}, config.DefaultPrompts()),
		"malformed":       NewSegmenter(&MockLLM{Response: "not json"}, config.DefaultPrompts()),
		"empty scene set": NewSegmenter(&MockLLM{Response: "[]"}, config.DefaultPrompts()),
	} {
		cuts := s.Segment(context.Background(), "the whole novel", store.New())
		require.Len(t, cuts, 1, name)
		assert.Equal(t, "cut_001", cuts[0].ID, name)
		assert.Equal(t, "the whole novel", cuts[0].Text, name)
	}
}
