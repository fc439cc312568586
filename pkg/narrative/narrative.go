// Package narrative generates a free-text analysis of a supplier's
// contracting pattern through an OpenAI-compatible chat API. It is strictly
// best-effort: a failure here never blocks the views built from the graph.
package narrative

import (
	"context"
	"fmt"

	"github.com/procurewatch/backend/internal/util"
	"github.com/procurewatch/backend/pkg/analytics"
	"github.com/procurewatch/backend/pkg/format"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const analysisPrompt = `Analiza esta información de un proveedor del Estado:
- Nombre: %s
- Total de adjudicaciones: %d
- Valor promedio de contratos: %s
- %% de adjudicaciones rápidas: %s
- Número de compradores únicos: %d

Proporciona:
1. Análisis de patrones de contratación
2. Posibles banderas rojas o puntos de atención
3. Recomendaciones para supervisión
4. Comparación con patrones típicos del mercado`

// Config selects the chat endpoint and model. BaseURL is optional and allows
// pointing at any OpenAI-compatible server.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client wraps the chat API for supplier analysis.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(cfg Config) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	api := openai.NewClient(opts...)

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Client{
		api:   &api,
		model: model,
	}
}

// Analyze asks the model for a contracting-pattern analysis of the profile.
// Transient failures are retried twice; a persistent failure is returned to
// the caller, who treats it as non-fatal.
func (c *Client) Analyze(ctx context.Context, profile analytics.SupplierProfile) (string, error) {
	prompt := fmt.Sprintf(
		analysisPrompt,
		profile.Name,
		profile.TotalAwards,
		format.Currency(profile.AvgContractValue, "PEN"),
		format.Percent(profile.QuickAwardRatio),
		profile.UniqueBuyers,
	)

	return util.RetryWithContext(ctx, 2, func(ctx context.Context) (string, error) {
		resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:       openai.ChatModel(c.model),
			Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
			Temperature: openai.Float(0),
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("empty completion for supplier %q", profile.Name)
		}
		return resp.Choices[0].Message.Content, nil
	})
}
