package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"cvscreen/dreamteam/internal/logger"
)

type geminiService struct {
	client    *genai.Client
	modelName string
}

func NewGeminiService(ctx context.Context, apiKey, modelName string) (LLMClient, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: modelName,
	}, nil
}

func (g *geminiService) Name() string {
	return "gemini"
}

// GenerateJSON implements LLMClient.
func (g *geminiService) GenerateJSON(ctx context.Context, prompt Prompt) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if prompt.Temperature > 0 {
		temperature := prompt.Temperature
		config.Temperature = &temperature
	}
	if prompt.System != "" {
		config.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt.User), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		logger.Log.WithField("model", g.modelName).Warn("Gemini returned no text content")
		return "", errors.New("no text content in response")
	}

	return text, nil
}
