package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"proposal-manager/internal/domain"
	"proposal-manager/internal/model"
)

const (
	DefaultModel = "claude-sonnet-4-20250514"

	generationMaxTokens = 6000
	chatMaxTokens       = 2048
)

// Client wraps the Anthropic API for proposal generation and the project
// chat assistant.
type Client struct {
	llm   anthropic.Client
	model anthropic.Model
	log   *zap.Logger
}

func NewClient(apiKey, modelName string, log *zap.Logger) *Client {
	if modelName == "" {
		modelName = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		llm:   anthropic.NewClient(option.WithAPIKey(apiKey)),
		model: anthropic.Model(modelName),
		log:   log,
	}
}

// GenerateProposal asks the model for a complete proposal and parses its
// reply under the content contract: one JSON object located by brace span,
// strict unmarshal, then schema validation. Any failure along that path
// fails the generation; no partial content is returned.
func (c *Client) GenerateProposal(ctx context.Context, projectData, biosObjectives map[string]interface{}, resources []map[string]interface{}) (*model.ProposalContent, error) {
	userPrompt := BuildGenerationPrompt(projectData, biosObjectives, resources)

	text, err := c.complete(ctx, generationMaxTokens, proposalGenerationPrompt, []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
	})
	if err != nil {
		return nil, fmt.Errorf("generation call failed: %w", err)
	}

	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("parse generation output: %w", err)
	}

	var content model.ProposalContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, fmt.Errorf("parse generation output: %w", err)
	}
	if err := model.ValidateJSON([]byte(raw)); err != nil {
		return nil, fmt.Errorf("generation output rejected: %w", err)
	}

	c.log.Info("generated proposal content",
		zap.Int("governmental", len(content.GovernmentalResources)),
		zap.Int("academic", len(content.AcademicResources)),
		zap.Int("nonprofit", len(content.NonprofitResources)),
		zap.Int("cultural", len(content.CulturalActivities)))

	return &content, nil
}

// Chat answers a project conversation turn. The reply is free-form text.
func (c *Client) Chat(ctx context.Context, messages []domain.Message, projectContext map[string]interface{}) (string, error) {
	params := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == "assistant" {
			params = append(params, anthropic.NewAssistantMessage(block))
		} else {
			params = append(params, anthropic.NewUserMessage(block))
		}
	}

	text, err := c.complete(ctx, chatMaxTokens, BuildChatPrompt(projectContext), params)
	if err != nil {
		return "", fmt.Errorf("chat call failed: %w", err)
	}
	return text, nil
}

func (c *Client) complete(ctx context.Context, maxTokens int64, system string, messages []anthropic.MessageParam) (string, error) {
	msg, err := c.llm.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  messages,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("model returned no text content")
	}
	return b.String(), nil
}
