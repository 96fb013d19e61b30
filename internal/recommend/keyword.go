package recommend

import (
	"context"
	"strings"

	"respira/internal/core/model"
)

// KeywordProvider is an offline heuristic used when no API key is configured.
// It never fails for a non-empty request.
type KeywordProvider struct{}

// NewKeywordProvider returns the offline provider.
func NewKeywordProvider() *KeywordProvider {
	return &KeywordProvider{}
}

type keywordRule struct {
	technique model.TechniqueID
	keywords  []string
	reasoning string
}

// Ordered by severity: the first matching rule wins.
var keywordRules = []keywordRule{
	{
		technique: model.Relax478,
		keywords:  []string{"pánico", "panico", "panic", "ansiedad", "anxiety", "insomnio", "no puedo dormir", "insomnia", "ahogo"},
		reasoning: "La técnica 4-7-8 alarga la exhalación y actúa como un sedante natural; te ayudará a bajar la intensidad de lo que sientes ahora.",
	},
	{
		technique: model.BoxBreathing,
		keywords:  []string{"nervios", "nerviosa", "nervioso", "nervous", "concentr", "focus", "estrés", "estres", "stress", "examen", "reunión"},
		reasoning: "La respiración en caja marca un ritmo estable que calma los nervios y te devuelve la concentración.",
	},
	{
		technique: model.Diaphragmatic,
		keywords:  []string{"miedo", "fear", "scared", "tensión", "tension", "pecho", "nudo", "dolor", "tense"},
		reasoning: "Respirar con el diafragma relaja la tensión del cuerpo y reduce el ritmo cardíaco cuando el miedo aprieta.",
	},
	{
		technique: model.SlowPaced,
		keywords:  []string{"alterada", "alterado", "upset", "relajar", "relax", "calma", "calm", "inquiet"},
		reasoning: "Una respiración lenta y constante equilibra tu sistema nervioso y te ayuda a mantener la calma.",
	},
}

// Recommend matches the request text against keyword rules.
func (provider *KeywordProvider) Recommend(ctx context.Context, req Request) (Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return Recommendation{}, err
	}

	text := strings.ToLower(req.Emotion + " " + req.Description)
	for _, rule := range keywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return Recommendation{TechniqueID: rule.technique, Reasoning: rule.reasoning}, nil
			}
		}
	}

	// Nothing recognizable: the gentlest option.
	last := keywordRules[len(keywordRules)-1]
	return Recommendation{TechniqueID: last.technique, Reasoning: last.reasoning}, nil
}
