package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agenthands/webtoon/internal/compose"
	"github.com/agenthands/webtoon/internal/core"
	"github.com/agenthands/webtoon/internal/image"
)

var convertOutDir string

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a webnovel chapter into webtoon cuts",
	Long: `Convert reads a webnovel chapter from a file (or stdin when the
argument is "-" or omitted) and runs the full pipeline: segmentation,
character-aware extraction, prompt generation, image rendering and
dialogue composition.

Per cut it writes cut_<id>.png (when an image was rendered) and a
combined elements.json under the output directory.`,
	Example: "  webtoon convert chapter_01.txt -o output/chapter_01",
	Args:    cobra.MaximumNArgs(1),
	RunE:    convertCommand,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutDir, "out", "o", "output", "output directory for cut images and elements")
}

func convertCommand(cmd *cobra.Command, args []string) error {
	novel, err := readNovel(args)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	ctx := cmd.Context()
	llmClient := buildLLM(ctx, cfg)

	var images image.Generator
	if cfg.Stability.APIKey != "" {
		images = image.NewStabilityClient(cfg.Stability)
	} else {
		log.Printf("Warning: no Stability api key configured; cuts will carry no images")
	}

	pipeline := core.NewPipeline(llmClient, cfg, images, compose.NewTextOverlay())
	result, err := pipeline.Run(ctx, novel)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.MkdirAll(convertOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	type cutElements struct {
		CutID       string `json:"cut_id"`
		Elements    any    `json:"elements"`
		ImagePrompt string `json:"image_prompt,omitempty"`
	}
	elements := make([]cutElements, 0, len(result.Cuts))

	for _, cut := range result.Cuts {
		img := cut.Composed
		if len(img) == 0 {
			img = cut.Image
		}
		if len(img) > 0 {
			name := filepath.Join(convertOutDir, fmt.Sprintf("%s.png", cut.Elements.CutID))
			if err := os.WriteFile(name, img, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
			log.Printf("Wrote %s (%d bytes)", name, len(img))
		}
		elements = append(elements, cutElements{
			CutID:       cut.Elements.CutID,
			Elements:    cut.Elements,
			ImagePrompt: cut.ImagePrompt,
		})
	}

	data, err := json.MarshalIndent(elements, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal elements: %w", err)
	}
	elemPath := filepath.Join(convertOutDir, "elements.json")
	if err := os.WriteFile(elemPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", elemPath, err)
	}

	log.Printf("Run %s finished: %d cuts, elements at %s", result.RunID, len(result.Cuts), elemPath)
	return nil
}

func readNovel(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}
