package reason

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/Gelembjuk/ai-group-chats/internal/domain"
)

// GeminiConfig carries what the client needs from the application config.
type GeminiConfig struct {
	ProjectID string
	Location  string
	ModelName string
}

// GeminiDeliberator implements domain.Deliberator on Vertex AI (Gemini).
type GeminiDeliberator struct {
	client    *genai.Client
	modelName string
	identity  domain.Person
}

// NewGeminiDeliberator creates the reasoning adapter for an agent identity.
func NewGeminiDeliberator(ctx context.Context, cfg GeminiConfig, identity domain.Person) (*GeminiDeliberator, error) {
	if cfg.ProjectID == "" || cfg.Location == "" {
		return nil, fmt.Errorf("gemini deliberator: project id and location must be set")
	}

	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.ProjectID,
		Location: cfg.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &GeminiDeliberator{
		client:    client,
		modelName: modelName,
		identity:  identity,
	}, nil
}

// Deliberate runs one think-then-act pass against Gemini. The full annotated
// history goes in as conversation content; the privacy contract and the
// SAY/PASS protocol go in as the system instruction.
func (g *GeminiDeliberator) Deliberate(
	ctx context.Context,
	view domain.ContextView,
	instructions string,
	inbound domain.Message,
) (domain.Deliberation, error) {
	system := BuildSystemPrompt(g.identity, view, instructions)

	// The history already contains the inbound message (the store appends it
	// before the context is assembled), so no extra turn is added here.
	var contents []*genai.Content
	for _, e := range view.History {
		var role genai.Role = genai.RoleUser
		if e.Speaker == g.identity {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(RenderEntry(e), role))
	}

	temp := float32(0.7)
	topP := float32(0.9)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   outputTokens,
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return domain.Deliberation{}, fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return domain.Deliberation{}, fmt.Errorf("gemini returned empty text")
	}

	return ParseReply(text), nil
}
