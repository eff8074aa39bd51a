package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
)

const DefaultModel = "gemini-2.5-flash"

const maxCrossReferences = 4

type GeminiConfig struct {
	APIKey string
	Model  string
}

// generator is the slice of the genai client the oracle needs.
type generator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type modelsGenerator struct {
	models *genai.Models
	model  string
}

func (g modelsGenerator) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
}

// Gemini implements Oracle on the Gemini API.
type Gemini struct {
	gen    generator
	logger *zap.Logger
}

// NewGemini creates the Gemini oracle. A missing API key fails with ErrMissingCredential.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &Error{Op: "init", Kind: KindCredential}
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newGemini(modelsGenerator{models: client.Models, model: cfg.Model}, logger), nil
}

func newGemini(gen generator, logger *zap.Logger) *Gemini {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gemini{gen: gen, logger: logger.Named("oracle")}
}

type wireCommentary struct {
	Theological     string `json:"theological"`
	Patristic       string `json:"patristic"`
	PatristicSource string `json:"patristicSource"`
	Jerusalem       string `json:"jerusalem"`
}

func (g *Gemini) SearchVerses(ctx context.Context, req SearchRequest) ([]FoundVerse, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   searchSchema(),
		Temperature:      genai.Ptr[float32](0.1),
	}

	var verses []FoundVerse
	if err := g.call(ctx, "search", searchPrompt(req), cfg, &verses); err != nil {
		return nil, err
	}
	return verses, nil
}

func (g *Gemini) GenerateCommentary(ctx context.Context, verse bible.Verse) (bible.CommentaryContent, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   commentarySchema(),
		Temperature:      genai.Ptr[float32](0.4),
	}

	var wire wireCommentary
	if err := g.call(ctx, "commentary", commentaryPrompt(verse), cfg, &wire); err != nil {
		return bible.CommentaryContent{}, err
	}
	if strings.TrimSpace(wire.Theological) == "" {
		return bible.CommentaryContent{}, &Error{Op: "commentary", Kind: KindMalformed, Err: fmt.Errorf("theological field is empty")}
	}

	return bible.CommentaryContent{
		Theological:     strings.TrimSpace(wire.Theological),
		Patristic:       strings.TrimSpace(wire.Patristic),
		PatristicSource: strings.TrimSpace(wire.PatristicSource),
		Jerusalem:       strings.TrimSpace(wire.Jerusalem),
	}, nil
}

func (g *Gemini) GenerateCrossReferences(ctx context.Context, verse bible.Verse) ([]bible.CrossReference, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   crossReferenceSchema(),
		Temperature:      genai.Ptr[float32](0.3),
	}

	var refs []bible.CrossReference
	if err := g.call(ctx, "cross-references", crossReferencePrompt(verse), cfg, &refs); err != nil {
		return nil, err
	}

	out := make([]bible.CrossReference, 0, len(refs))
	for _, r := range refs {
		if strings.TrimSpace(r.Reference) == "" {
			continue
		}
		out = append(out, r)
		if len(out) == maxCrossReferences {
			break
		}
	}
	return out, nil
}

// call runs one structured generation and decodes the JSON answer into out.
func (g *Gemini) call(ctx context.Context, op, prompt string, cfg *genai.GenerateContentConfig, out any) error {
	resp, err := g.gen.GenerateContent(ctx, prompt, cfg)
	if err != nil {
		g.logger.Warn("generate content failed", zap.String("op", op), zap.Error(err))
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	if resp == nil {
		return &Error{Op: op, Kind: KindEmpty}
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return &Error{Op: op, Kind: KindRefused, Err: fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)}
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return &Error{Op: op, Kind: KindRefused, Err: fmt.Errorf("candidate stopped for safety")}
	}

	text := stripCodeFence(resp.Text())
	if text == "" {
		return &Error{Op: op, Kind: KindEmpty}
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		g.logger.Debug("undecodable oracle answer", zap.String("op", op), zap.String("text", text))
		return &Error{Op: op, Kind: KindMalformed, Err: err}
	}
	return nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add despite the JSON mime type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
