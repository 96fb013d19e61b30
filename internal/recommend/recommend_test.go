package recommend

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"respira/internal/core/model"
)

type providerFunc func(ctx context.Context, req Request) (Recommendation, error)

func (fn providerFunc) Recommend(ctx context.Context, req Request) (Recommendation, error) {
	return fn(ctx, req)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

var anxious = Request{Emotion: "Tengo un ataque de pánico"}

func TestServicePassesThroughValidAnswer(t *testing.T) {
	service := NewService(providerFunc(func(ctx context.Context, req Request) (Recommendation, error) {
		return Recommendation{TechniqueID: model.Relax478, Reasoning: "Calma profunda."}, nil
	}), Options{Logger: quietLogger()})

	technique, rec := service.Resolve(context.Background(), anxious)
	assert.Equal(t, model.Relax478, rec.TechniqueID)
	assert.False(t, rec.Fallback)
	assert.Equal(t, model.Relax478, technique.ID)
}

func TestServiceFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		provider providerFunc
		req      Request
	}{
		{
			name: "provider error",
			provider: func(ctx context.Context, req Request) (Recommendation, error) {
				return Recommendation{}, errors.New("network down")
			},
			req: anxious,
		},
		{
			name: "unknown technique",
			provider: func(ctx context.Context, req Request) (Recommendation, error) {
				return Recommendation{TechniqueID: "WIM_HOF", Reasoning: "x"}, nil
			},
			req: anxious,
		},
		{
			name: "empty reasoning",
			provider: func(ctx context.Context, req Request) (Recommendation, error) {
				return Recommendation{TechniqueID: model.SlowPaced}, nil
			},
			req: anxious,
		},
		{
			name: "empty request",
			provider: func(ctx context.Context, req Request) (Recommendation, error) {
				t.Fatal("provider must not be called for an empty request")
				return Recommendation{}, nil
			},
			req: Request{Emotion: "  ", Description: "\n"},
		},
		{
			name: "timeout",
			provider: func(ctx context.Context, req Request) (Recommendation, error) {
				<-ctx.Done()
				return Recommendation{}, ctx.Err()
			},
			req: anxious,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(tt.provider, Options{Timeout: 10 * time.Millisecond, Logger: quietLogger()})
			rec := service.Recommend(context.Background(), tt.req)
			assert.Equal(t, model.BoxBreathing, rec.TechniqueID)
			assert.Equal(t, FallbackReasoning, rec.Reasoning)
			assert.True(t, rec.Fallback)
		})
	}
}

func TestServiceCustomFallback(t *testing.T) {
	service := NewService(providerFunc(func(ctx context.Context, req Request) (Recommendation, error) {
		return Recommendation{}, errors.New("boom")
	}), Options{Fallback: model.SlowPaced, Logger: quietLogger()})

	technique, rec := service.Resolve(context.Background(), anxious)
	assert.Equal(t, model.SlowPaced, technique.ID)
	assert.True(t, rec.Fallback)
	assert.Equal(t, FallbackReasoningFor(model.SlowPaced), rec.Reasoning)
	assert.NotContains(t, rec.Reasoning, "cuadrada")
}

func TestFallbackReasoningNamesTheFallbackTechnique(t *testing.T) {
	mentions := map[model.TechniqueID]string{
		model.Relax478:      "4-7-8",
		model.BoxBreathing:  "cuadrada",
		model.Diaphragmatic: "diafragmática",
		model.SlowPaced:     "lenta",
	}
	failing := providerFunc(func(ctx context.Context, req Request) (Recommendation, error) {
		return Recommendation{}, errors.New("boom")
	})

	for _, id := range model.TechniqueIDs {
		t.Run(string(id), func(t *testing.T) {
			service := NewService(failing, Options{Fallback: id, Logger: quietLogger()})
			technique, rec := service.Resolve(context.Background(), anxious)
			assert.Equal(t, id, technique.ID)
			require.Contains(t, mentions, id)
			assert.Contains(t, rec.Reasoning, mentions[id])
		})
	}
}

func TestKeywordProvider(t *testing.T) {
	tests := []struct {
		req  Request
		want model.TechniqueID
	}{
		{req: Request{Emotion: "Tengo un ataque de pánico"}, want: model.Relax478},
		{req: Request{Emotion: "Estoy nerviosa"}, want: model.BoxBreathing},
		{req: Request{Emotion: "Tengo miedo"}, want: model.Diaphragmatic},
		{req: Request{Emotion: "Estoy alterada"}, want: model.SlowPaced},
		{req: Request{Emotion: "Necesito relajarme"}, want: model.SlowPaced},
		{req: Request{Description: "Siento un nudo en el pecho"}, want: model.Diaphragmatic},
		{req: Request{Description: "I can't focus before the exam"}, want: model.BoxBreathing},
		{req: Request{Description: "hmm"}, want: model.SlowPaced},
	}

	provider := NewKeywordProvider()
	for _, tt := range tests {
		rec, err := provider.Recommend(context.Background(), tt.req)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rec.TechniqueID, "%+v", tt.req)
		assert.NoError(t, rec.Validate())
	}
}

func TestEveryEmotionOptionHasAnAnswer(t *testing.T) {
	service := NewService(NewKeywordProvider(), Options{Logger: quietLogger()})
	for _, emotion := range model.EmotionOptions {
		rec := service.Recommend(context.Background(), Request{Emotion: emotion})
		assert.False(t, rec.Fallback, emotion)
	}
}

type fakeModels struct {
	text   string
	err    error
	model  string
	config *genai.GenerateContentConfig
}

func (fake *fakeModels) GenerateContent(ctx context.Context, modelName string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	fake.model = modelName
	fake.config = config
	if fake.err != nil {
		return nil, fake.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(fake.text, genai.RoleModel)}},
	}, nil
}

func TestGeminiProviderParsesStructuredAnswer(t *testing.T) {
	fake := &fakeModels{text: `{"techniqueId":"DIAPHRAGMATIC","reasoning":" Relaja el cuerpo. "}`}
	provider := newGeminiProvider(fake, "")

	rec, err := provider.Recommend(context.Background(), Request{Emotion: "Tengo miedo"})
	require.NoError(t, err)
	assert.Equal(t, model.Diaphragmatic, rec.TechniqueID)
	assert.Equal(t, "Relaja el cuerpo.", rec.Reasoning)
	assert.Equal(t, DefaultGeminiModel, fake.model)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	assert.Len(t, fake.config.ResponseSchema.Properties["techniqueId"].Enum, 4)
}

func TestGeminiProviderRejectsBadAnswers(t *testing.T) {
	for _, text := range []string{"", "not json", `{"techniqueId":"YOGA","reasoning":"x"}`} {
		provider := newGeminiProvider(&fakeModels{text: text}, "gemini-test")
		_, err := provider.Recommend(context.Background(), anxious)
		assert.ErrorIs(t, err, ErrMalformed, text)
	}

	provider := newGeminiProvider(&fakeModels{err: errors.New("quota")}, "gemini-test")
	_, err := provider.Recommend(context.Background(), anxious)
	assert.Error(t, err)
}

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), " ", "")
	assert.Error(t, err)
}
