package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/progprogect/NutritionBot/config"
)

// Extraction failure classes. Callers map these to user-facing replies,
// everything else is an internal error.
var (
	ErrExtractTimeout   = errors.New("extraction timed out")
	ErrExtractMalformed = errors.New("extraction returned malformed payload")
	ErrExtractUpstream  = errors.New("extraction upstream error")
)

// ParsedItem is one food line as the model declares it. ResolvedGrams is
// only set when the model states a mass outright, otherwise the unit
// table converts qty+unit.
type ParsedItem struct {
	Name              string   `json:"name"`
	Qty               float64  `json:"qty"`
	Unit              string   `json:"unit"`
	ResolvedGrams     *float64 `json:"grams,omitempty"`
	Per100g           Per100g  `json:"per100"`
	DensityGPerML     *float64 `json:"density_g_per_ml,omitempty"`
	DefaultPieceGrams *float64 `json:"default_piece_grams,omitempty"`
}

type parsedMeal struct {
	Items []ParsedItem `json:"items"`
}

type OpenAIService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewOpenAIService(cfg *config.Config) *OpenAIService {
	return &OpenAIService{
		apiKey:  cfg.OpenAIKey,
		baseURL: cfg.OpenAIBaseURL,
		model:   cfg.OpenAIModel,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

const extractionSystemPrompt = `You are a nutrition extraction engine. ` +
	`The user describes food in free text (Russian or English). Extract every ` +
	`distinct food item with its quantity, unit, per-100g macros, and, when you ` +
	`are confident, an explicit gram weight. Use realistic nutrition values. ` +
	`Allowed units: g, ml, piece, slice, tsp, tbsp, cup, glass, can, bottle.`

var mealSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "qty": {"type": "number"},
          "unit": {"type": "string", "enum": ["g","ml","piece","slice","tsp","tbsp","cup","glass","can","bottle"]},
          "grams": {"type": ["number","null"]},
          "per100": {
            "type": "object",
            "properties": {
              "kcal": {"type": "number"},
              "p": {"type": "number"},
              "f": {"type": "number"},
              "c": {"type": "number"},
              "fiber": {"type": "number"}
            },
            "required": ["kcal","p","f","c","fiber"],
            "additionalProperties": false
          },
          "density_g_per_ml": {"type": ["number","null"]},
          "default_piece_grams": {"type": ["number","null"]}
        },
        "required": ["name","qty","unit","grams","per100","density_g_per_ml","default_piece_grams"],
        "additionalProperties": false
      }
    }
  },
  "required": ["items"],
  "additionalProperties": false
}`)

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat interface{}   `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ParseFoodText extracts food items from a free-text description.
func (s *OpenAIService) ParseFoodText(ctx context.Context, text string) ([]ParsedItem, error) {
	messages := []chatMessage{
		{Role: "system", Content: extractionSystemPrompt},
		{Role: "user", Content: text},
	}
	return s.completeMeal(ctx, messages)
}

// ParseFoodImage extracts food items from a photo, with an optional
// caption giving context (e.g. portion hints).
func (s *OpenAIService) ParseFoodImage(ctx context.Context, imageURL, caption string) ([]ParsedItem, error) {
	userContent := []map[string]interface{}{
		{"type": "image_url", "image_url": map[string]string{"url": imageURL}},
	}
	prompt := "Identify the food on this photo and estimate portions."
	if caption != "" {
		prompt += " Caption from the user: " + caption
	}
	userContent = append(userContent, map[string]interface{}{"type": "text", "text": prompt})

	messages := []chatMessage{
		{Role: "system", Content: extractionSystemPrompt},
		{Role: "user", Content: userContent},
	}
	return s.completeMeal(ctx, messages)
}

func (s *OpenAIService) completeMeal(ctx context.Context, messages []chatMessage) ([]ParsedItem, error) {
	reqBody := chatRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0,
		ResponseFormat: map[string]interface{}{
			"type": "json_schema",
			"json_schema": map[string]interface{}{
				"name":   "meal_extraction",
				"strict": true,
				"schema": mealSchema,
			},
		},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("create extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrExtractTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrExtractUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read extraction response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrExtractUpstream, resp.StatusCode, truncate(string(body), 300))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractMalformed, err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ErrExtractMalformed)
	}

	var meal parsedMeal
	if err := json.Unmarshal([]byte(cr.Choices[0].Message.Content), &meal); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractMalformed, err)
	}
	return meal.Items, nil
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe sends a WAV recording to the speech-to-text endpoint and
// returns the recognized text.
func (s *OpenAIService) Transcribe(ctx context.Context, wav []byte, filename string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create transcription form: %w", err)
	}
	if _, err := part.Write(wav); err != nil {
		return "", fmt.Errorf("write transcription audio: %w", err)
	}
	if err := w.WriteField("model", "whisper-1"); err != nil {
		return "", fmt.Errorf("write transcription model field: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close transcription form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("create transcription request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrExtractTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrExtractUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcription response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrExtractUpstream, resp.StatusCode, truncate(string(body), 300))
	}

	var tr transcriptionResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractMalformed, err)
	}
	return tr.Text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
