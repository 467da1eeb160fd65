package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"thesis-radar/models"
)

// Generator issues one structured-output model call. The production
// implementation talks to Gemini; tests substitute canned responses.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// Client is the orchestration layer between thesis/target state and the
// generative model: it builds prompts, declares output schemas and parses
// responses into typed results. It holds no business logic of its own.
type Client struct {
	gen    Generator
	logger *zap.Logger
}

// NewClient connects to the Gemini API.
func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{
		gen:    &geminiGenerator{client: client, model: model},
		logger: logger,
	}, nil
}

// NewClientWithGenerator wires a custom Generator, used by tests.
func NewClientWithGenerator(gen Generator, logger *zap.Logger) *Client {
	return &Client{gen: gen, logger: logger}
}

// SuggestTheses proposes five acquisition theses, optionally steered by
// user-supplied strategic constraints.
func (c *Client) SuggestTheses(ctx context.Context, constraints string) ([]SuggestedThesis, error) {
	raw, err := c.gen.Generate(ctx, buildSuggestThesesPrompt(constraints), suggestedThesesSchema())
	if err != nil {
		return nil, err
	}
	var theses []SuggestedThesis
	if err := json.Unmarshal([]byte(raw), &theses); err != nil {
		return nil, fmt.Errorf("malformed thesis suggestions: %w", err)
	}
	c.logger.Info("suggested theses", zap.Int("count", len(theses)))
	return theses, nil
}

// InterpretThesis expands a thesis into a calibrated search plan.
func (c *Client) InterpretThesis(ctx context.Context, thesis models.Thesis) (*Calibration, error) {
	raw, err := c.gen.Generate(ctx, buildInterpretThesisPrompt(thesis), calibrationSchema())
	if err != nil {
		return nil, err
	}
	var cal Calibration
	if err := json.Unmarshal([]byte(raw), &cal); err != nil {
		return nil, fmt.Errorf("malformed calibration: %w", err)
	}
	c.logger.Info("interpreted thesis",
		zap.String("thesis_id", thesis.ID),
		zap.Float64("relevance_score", cal.RelevanceScore),
		zap.Int("workflow_steps", len(cal.Workflow)))
	return &cal, nil
}

// ExecuteSearch runs a calibrated search and returns 15-25 candidates.
func (c *Client) ExecuteSearch(ctx context.Context, cal Calibration) ([]CandidateTarget, error) {
	return c.searchTargets(ctx, buildExecuteSearchPrompt(cal))
}

// GenerateTargets searches directly from the thesis, without a calibration.
func (c *Client) GenerateTargets(ctx context.Context, thesis models.Thesis) ([]CandidateTarget, error) {
	return c.searchTargets(ctx, buildGenerateTargetsPrompt(thesis))
}

func (c *Client) searchTargets(ctx context.Context, prompt string) ([]CandidateTarget, error) {
	raw, err := c.gen.Generate(ctx, prompt, candidateTargetsSchema())
	if err != nil {
		return nil, err
	}
	var candidates []CandidateTarget
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		return nil, fmt.Errorf("malformed target candidates: %w", err)
	}
	c.logger.Info("search returned candidates", zap.Int("count", len(candidates)))
	return candidates, nil
}

// RefreshSignals re-scores the given targets. The model answers by company
// name; rows are matched back to stored ids case-insensitively and rows for
// unknown names are dropped.
func (c *Client) RefreshSignals(ctx context.Context, thesis models.Thesis, targets []models.Target) ([]TargetUpdate, error) {
	if len(targets) == 0 {
		return nil, nil
	}
	raw, err := c.gen.Generate(ctx, buildRefreshSignalsPrompt(thesis, targets), signalUpdatesSchema())
	if err != nil {
		return nil, err
	}
	var rows []signalUpdate
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, fmt.Errorf("malformed signal updates: %w", err)
	}

	idsByName := make(map[string]string, len(targets))
	for _, t := range targets {
		idsByName[strings.ToLower(t.Name)] = t.ID
	}
	updates := make([]TargetUpdate, 0, len(rows))
	for _, row := range rows {
		id, ok := idsByName[strings.ToLower(row.Name)]
		if !ok {
			c.logger.Warn("signal update for unknown company dropped", zap.String("name", row.Name))
			continue
		}
		updates = append(updates, TargetUpdate{ID: id, SignalScore: row.SignalScore, TopSignal: row.TopSignal})
	}
	c.logger.Info("refreshed signals",
		zap.String("thesis_id", thesis.ID),
		zap.Int("targets", len(targets)),
		zap.Int("matched", len(updates)))
	return updates, nil
}

// GenerateDeepDive assembles the research dossier for one target from two
// concurrent model calls, one for the strategic sections and one for the
// financial ones.
func (c *Client) GenerateDeepDive(ctx context.Context, thesis models.Thesis, target models.Target) (*DeepDiveContent, error) {
	var rawStrategic, rawFinancial string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rawStrategic, err = c.gen.Generate(gctx, buildDeepDiveStrategicPrompt(thesis, target), deepDiveStrategicSchema())
		return err
	})
	g.Go(func() error {
		var err error
		rawFinancial, err = c.gen.Generate(gctx, buildDeepDiveFinancialPrompt(thesis, target), deepDiveFinancialSchema())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var dive DeepDiveContent
	if err := json.Unmarshal([]byte(rawStrategic), &dive); err != nil {
		return nil, fmt.Errorf("malformed deep dive (strategic half): %w", err)
	}
	if err := json.Unmarshal([]byte(rawFinancial), &dive); err != nil {
		return nil, fmt.Errorf("malformed deep dive (financial half): %w", err)
	}
	c.logger.Info("generated deep dive",
		zap.String("target_id", target.ID),
		zap.String("name", target.Name))
	return &dive, nil
}

// GenerateMarketMap clusters the thesis's known companies, plus the market
// around them, into named strategic categories.
func (c *Client) GenerateMarketMap(ctx context.Context, thesis models.Thesis, targets []models.Target) (*MarketMap, error) {
	raw, err := c.gen.Generate(ctx, buildMarketMapPrompt(thesis, targets), marketMapSchema())
	if err != nil {
		return nil, err
	}
	var m MarketMap
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("malformed market map: %w", err)
	}
	c.logger.Info("generated market map",
		zap.String("thesis_id", thesis.ID),
		zap.Int("categories", len(m.Categories)))
	return &m, nil
}
