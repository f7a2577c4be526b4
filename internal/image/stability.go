package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/agenthands/webtoon/internal/config"
)

const DefaultAPIHost = "https://api.stability.ai"

// Generator produces panel images from a text prompt. Implementations return
// one byte slice per requested sample.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([][]byte, error)
}

// StabilityClient is a Stability AI text-to-image REST client.
type StabilityClient struct {
	cfg        config.StabilityConfig
	apiHost    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewStabilityClient(cfg config.StabilityConfig) *StabilityClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 180 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &StabilityClient{
		cfg:     cfg,
		apiHost: DefaultAPIHost,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
	}
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type generationRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CFGScale    float64      `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
	Seed        int          `json:"seed,omitempty"` // 0 = random, omitted
	StylePreset string       `json:"style_preset,omitempty"`
	Sampler     string       `json:"sampler,omitempty"`
}

type generationArtifact struct {
	Base64       string `json:"base64"`
	FinishReason string `json:"finishReason"`
}

type generationResponse struct {
	Artifacts []generationArtifact `json:"artifacts"`
}

// Generate requests image samples for the prompt. Missing api key or engine
// id is a precondition failure, not a transport error; either way the caller
// gets no image for this cut and the pipeline moves on. Nothing is retried.
func (c *StabilityClient) Generate(ctx context.Context, prompt string) ([][]byte, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("stability: api_key is not configured")
	}
	if c.cfg.EngineID == "" {
		return nil, fmt.Errorf("stability: engine_id is not configured")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	payload := c.buildRequest(prompt)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("stability: failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/generation/%s/text-to-image", c.apiHost, c.cfg.EngineID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stability: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("stability: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stability: engine '%s' returned %d: %s", c.cfg.EngineID, resp.StatusCode, respBody)
	}

	var result generationResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("stability: failed to decode response: %w", err)
	}

	var images [][]byte
	for _, artifact := range result.Artifacts {
		switch artifact.FinishReason {
		case "SUCCESS":
			data, err := base64.StdEncoding.DecodeString(artifact.Base64)
			if err != nil {
				log.Printf("stability: failed to decode artifact: %v", err)
				continue
			}
			images = append(images, data)
		case "CONTENT_FILTERED":
			log.Printf("stability: an image was filtered by the content policy")
		default:
			log.Printf("stability: artifact finished with reason %s", artifact.FinishReason)
		}
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("stability: no images generated")
	}
	return images, nil
}

func (c *StabilityClient) buildRequest(prompt string) generationRequest {
	width, height := c.cfg.Width, c.cfg.Height
	if width == 0 || height == 0 {
		defWidth, defHeight := engineDefaultSize(c.cfg.EngineID)
		if width == 0 {
			width = defWidth
		}
		if height == 0 {
			height = defHeight
		}
	}

	samples := c.cfg.Samples
	if samples == 0 {
		samples = 1
	}
	steps := c.cfg.Steps
	if steps == 0 {
		steps = 40
	}
	cfgScale := c.cfg.CFGScale
	if cfgScale == 0 {
		cfgScale = 7.0
	}

	prompts := []textPrompt{{Text: prompt, Weight: 1.0}}
	if c.cfg.NegativePrompt != "" {
		prompts = append(prompts, textPrompt{Text: c.cfg.NegativePrompt, Weight: -1.0})
	}

	return generationRequest{
		TextPrompts: prompts,
		CFGScale:    cfgScale,
		Height:      height,
		Width:       width,
		Samples:     samples,
		Steps:       steps,
		Seed:        c.cfg.Seed,
		StylePreset: c.cfg.StylePreset,
		Sampler:     c.cfg.Sampler,
	}
}

// SDXL and SD3 engines default to 1024x1024, older engines to 512x512.
func engineDefaultSize(engineID string) (int, int) {
	if strings.Contains(engineID, "xl") || strings.Contains(engineID, "stable-diffusion-3") {
		return 1024, 1024
	}
	return 512, 512
}
