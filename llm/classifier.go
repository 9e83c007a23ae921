package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Choice struct {
	Message Message `json:"message"`
}

type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

// Classifier calls an OpenAI-compatible chat-completions endpoint to
// map a transaction description to one category name. Temperature is
// pinned to zero so repeated calls stay near-deterministic.
type Classifier struct {
	Endpoint string
	APIKey   string
	Model    string
	Client   *http.Client
}

func NewClassifier(endpoint, apiKey, model string) *Classifier {
	return &Classifier{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Model:    model,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

const systemPrompt = `Eres un asistente de categorización financiera. Analiza la descripción de la transacción y asigna la categoría EXACTA de la lista.

Reglas:
1. Devuelve SOLO el nombre exacto de UNA categoría de la lista
2. Si quieres precisar, responde un JSON {"category": "...", "subcategory": "..."}
3. Si no hay coincidencia clara, usa "Otros"
4. NO agregues explicaciones`

// classifierReply is the structured variant the model may answer with.
type classifierReply struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

// ClassifyCategory returns the model's category pick for a description,
// plus an optional free-text subcategory. The caller validates the name
// against its known category set.
func (c *Classifier) ClassifyCategory(ctx context.Context, description string, categories []string) (string, string, error) {
	prompt := fmt.Sprintf("Categorías disponibles:\n- %s\n\nDescripción de la transacción: %q\n\nCategoría:",
		strings.Join(categories, "\n- "), description)

	reqBody := ChatRequest{
		Model:       c.Model,
		MaxTokens:   60,
		Temperature: 0,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", "", fmt.Errorf("classifier returned no choices")
	}

	return parseReply(chatResp.Choices[0].Message.Content)
}

// parseReply accepts either a bare category name or a small JSON object
// {category, subcategory}.
func parseReply(content string) (string, string, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") {
		var reply classifierReply
		if err := json.Unmarshal([]byte(trimmed), &reply); err == nil && reply.Category != "" {
			return strings.TrimSpace(reply.Category), strings.TrimSpace(reply.Subcategory), nil
		}
	}
	return strings.Trim(trimmed, `"`), "", nil
}
