package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agenthands/webtoon/internal/core/segment"
	"github.com/agenthands/webtoon/internal/store"
)

var segmentCmd = &cobra.Command{
	Use:   "segment [file]",
	Short: "Segment a webnovel chapter into cuts without extraction",
	Long: `Segment reads a webnovel chapter from a file (or stdin when the
argument is "-" or omitted) and prints the cut boundaries as JSON.
No character extraction or image generation is performed.`,
	Example: "  webtoon segment chapter_01.txt",
	Args:    cobra.MaximumNArgs(1),
	RunE:    segmentCommand,
}

func segmentCommand(cmd *cobra.Command, args []string) error {
	novel, err := readNovel(args)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	llmClient := buildLLM(cmd.Context(), cfg)

	cuts := segment.NewSegmenter(llmClient, cfg.Prompts).Segment(cmd.Context(), novel, store.New())

	data, err := json.MarshalIndent(cuts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cuts: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
