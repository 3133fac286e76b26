// Package ai обращается к Gemini для классификации сообщений и звуков.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// DefaultModel модель Gemini по умолчанию
const DefaultModel = "gemini-2.0-flash"

// generator подмножество *genai.Models, нужное классификатору
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClassifier классифицирует инциденты через Gemini generateContent
type GeminiClassifier struct {
	models generator
	model  string
	logger *logrus.Logger
}

// NewGeminiClassifier создает клиент Gemini API
func NewGeminiClassifier(ctx context.Context, apiKey, model string, logger *logrus.Logger) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newGeminiClassifier(client.Models, model, logger), nil
}

func newGeminiClassifier(gen generator, model string, logger *logrus.Logger) *GeminiClassifier {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClassifier{models: gen, model: model, logger: logger}
}

// ClassifyText определяет тип и срочность инцидента по тексту сообщения
func (c *GeminiClassifier) ClassifyText(ctx context.Context, text string) (*models.Classification, error) {
	prompt := fmt.Sprintf(textClassificationPrompt, strings.Join(models.IncidentTypes, `", "`), text)
	raw, err := c.generate(ctx, []*genai.Part{genai.NewPartFromText(prompt)})
	if err != nil {
		return nil, err
	}
	return parseClassification(raw, false)
}

// ClassifyAudio определяет звук и соответствующий ему тип инцидента
func (c *GeminiClassifier) ClassifyAudio(ctx context.Context, audio []byte, mimeType string) (*models.Classification, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}
	if mimeType == "" {
		mimeType = "audio/wav"
	}
	prompt := fmt.Sprintf(audioClassificationPrompt, strings.Join(models.IncidentTypes, `", "`))
	raw, err := c.generate(ctx, []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(audio, mimeType),
	})
	if err != nil {
		return nil, err
	}
	return parseClassification(raw, true)
}

// SafetyTips генерирует count общих советов по безопасности
func (c *GeminiClassifier) SafetyTips(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		count = 6
	}
	raw, err := c.generate(ctx, []*genai.Part{genai.NewPartFromText(fmt.Sprintf(safetyTipsPrompt, count))})
	if err != nil {
		return nil, err
	}
	return parseTips(raw)
}

func (c *GeminiClassifier) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := c.models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("Gemini generateContent failed: %w", err)
	}
	text := responseText(resp)
	if c.logger != nil {
		c.logger.WithField("model", c.model).Debugf("Gemini raw response: %s", text)
	}
	if text == "" {
		return "", fmt.Errorf("empty Gemini response: %w", models.ErrInvalidClassification)
	}
	return text, nil
}

// responseText склеивает текстовые части первого кандидата
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// extractJSON вырезает фрагмент от первой open до последней close, если модель добавила текст вокруг
func extractJSON(text string, open, close byte) string {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}

func parseClassification(raw string, audio bool) (*models.Classification, error) {
	var c models.Classification
	if err := json.Unmarshal([]byte(extractJSON(raw, '{', '}')), &c); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidClassification, err)
	}
	if c.IncidentType == "" || c.Urgency == "" {
		return nil, fmt.Errorf("%w: incident_type and urgency are required", models.ErrInvalidClassification)
	}
	if audio && c.Sound == "" {
		c.Sound = c.IncidentType
	}
	return &c, nil
}

func parseTips(raw string) ([]string, error) {
	trimmed := extractJSON(raw, '[', ']')
	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("%w: safety tips are not a JSON array", models.ErrInvalidClassification)
	}
	var tips []string
	if err := json.Unmarshal([]byte(trimmed), &tips); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidClassification, err)
	}
	out := tips[:0]
	for _, tip := range tips {
		if tip = strings.TrimSpace(tip); tip != "" {
			out = append(out, tip)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no safety tips returned", models.ErrInvalidClassification)
	}
	return out, nil
}
