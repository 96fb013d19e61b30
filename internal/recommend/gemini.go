package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"respira/internal/core/model"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

const systemInstruction = `Eres un experto en relajación y regulación emocional. Tu objetivo es seleccionar la mejor técnica de respiración basada en el estado actual del usuario.

Las técnicas disponibles son:
1. RELAX_4_7_8: Para pánico, ansiedad severa o insomnio. Muy sedante.
2. BOX_BREATHING (Caja): Para nervios, falta de concentración o estrés agudo.
3. DIAPHRAGMATIC (Diafragmática): Para tensión general, miedo moderado o estrés físico.
4. SLOW_PACED (Lenta): Para alteración leve o mantenimiento de calma.

Analiza la entrada del usuario y decide cuál es la mejor opción.
Genera una explicación breve, empática y directa (máximo 2 frases) de por qué esta técnica ayudará ahora mismo.`

// generator is the subset of *genai.Models used by GeminiProvider.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider asks Google Gemini for a structured recommendation.
type GeminiProvider struct {
	models generator
	model  string
}

// NewGeminiProvider creates a provider backed by the Gemini API.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return newGeminiProvider(client.Models, modelName), nil
}

func newGeminiProvider(models generator, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiProvider{models: models, model: modelName}
}

// Recommend sends the request with a JSON response schema limited to the catalog.
func (g *GeminiProvider) Recommend(ctx context.Context, req Request) (Recommendation, error) {
	userContext := fmt.Sprintf("Usuario selecciona botón: %q. Texto adicional opcional: %q.", req.Emotion, req.Description)

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(userContext), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema(),
	})
	if err != nil {
		return Recommendation{}, fmt.Errorf("gemini: generate: %w", err)
	}
	if resp == nil {
		return Recommendation{}, fmt.Errorf("%w: no response", ErrMalformed)
	}
	return parseRecommendation(resp.Text())
}

func responseSchema() *genai.Schema {
	ids := make([]string, 0, len(model.TechniqueIDs))
	for _, id := range model.TechniqueIDs {
		ids = append(ids, string(id))
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"techniqueId": {Type: genai.TypeString, Enum: ids},
			"reasoning":   {Type: genai.TypeString},
		},
		Required: []string{"techniqueId", "reasoning"},
	}
}

func parseRecommendation(text string) (Recommendation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Recommendation{}, fmt.Errorf("%w: empty response text", ErrMalformed)
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		return Recommendation{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	id, err := model.ParseTechniqueID(string(rec.TechniqueID))
	if err != nil {
		return Recommendation{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	rec.TechniqueID = id
	rec.Reasoning = strings.TrimSpace(rec.Reasoning)
	return rec, nil
}
