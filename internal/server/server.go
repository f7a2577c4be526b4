package server

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/webtoon/internal/compose"
	"github.com/agenthands/webtoon/internal/config"
	"github.com/agenthands/webtoon/internal/core"
	"github.com/agenthands/webtoon/internal/core/segment"
	"github.com/agenthands/webtoon/internal/image"
	"github.com/agenthands/webtoon/internal/llm"
	"github.com/agenthands/webtoon/internal/store"
)

type Server struct {
	Config    *config.Config
	LLM       llm.LLMClient
	Pipeline  *core.Pipeline
	Segmenter *segment.Segmenter
}

// NewServer loads config and wires the conversion pipeline. A missing oracle
// client is not fatal: the server still answers and every conversion runs
// degraded.
func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	var llmClient llm.LLMClient
	if cfg.LLM.APIKey == "" && cfg.LLM.Provider != "ollama" {
		log.Printf("Warning: no LLM api key configured; extraction will run degraded")
	} else {
		llmClient, err = llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			log.Printf("Warning: failed to initialize LLM client: %v; extraction will run degraded", err)
			llmClient = nil
		}
	}

	var images image.Generator
	if cfg.Stability.APIKey != "" {
		images = image.NewStabilityClient(cfg.Stability)
	} else {
		log.Printf("Warning: no Stability api key configured; cuts will carry no images")
	}

	return &Server{
		Config:    cfg,
		LLM:       llmClient,
		Pipeline:  core.NewPipeline(llmClient, cfg, images, compose.NewTextOverlay()),
		Segmenter: segment.NewSegmenter(llmClient, cfg.Prompts),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.POST("/segment", s.Segment)
	r.POST("/convert", s.Convert)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type SegmentRequest struct {
	NovelText string `json:"novel_text"`
}

func (s *Server) Segment(c *gin.Context) {
	var req SegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NovelText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cuts := s.Segmenter.Segment(c.Request.Context(), req.NovelText, store.New())
	c.JSON(http.StatusOK, gin.H{"cuts": cuts})
}

type ConvertRequest struct {
	NovelText string `json:"novel_text"`
}

// cutSummary elides raw image bytes from the API response; clients fetch the
// byte counts to know which stages produced output.
type cutSummary struct {
	Elements      any    `json:"elements"`
	ImagePrompt   string `json:"image_prompt,omitempty"`
	ImageBytes    int    `json:"image_bytes"`
	ComposedBytes int    `json:"composed_bytes"`
}

func (s *Server) Convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NovelText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := s.Pipeline.Run(c.Request.Context(), req.NovelText)
	if err != nil {
		log.Printf("Failed to run conversion: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert"})
		return
	}

	summaries := make([]cutSummary, 0, len(result.Cuts))
	for _, cut := range result.Cuts {
		summaries = append(summaries, cutSummary{
			Elements:      cut.Elements,
			ImagePrompt:   cut.ImagePrompt,
			ImageBytes:    len(cut.Image),
			ComposedBytes: len(cut.Composed),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id": result.RunID,
		"cuts":   summaries,
	})
}
