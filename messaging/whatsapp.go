package messaging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const graphAPIBase = "https://graph.facebook.com/v18.0"

// WhatsAppClient posts text replies through the WhatsApp Cloud API.
type WhatsAppClient struct {
	Token   string
	PhoneID string
	BaseURL string
	Client  *http.Client
}

func NewWhatsAppClient(token, phoneID string) *WhatsAppClient {
	return &WhatsAppClient{
		Token:   token,
		PhoneID: phoneID,
		BaseURL: graphAPIBase,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Text             whatsAppText `json:"text"`
}

func (c *WhatsAppClient) Send(to, text string) error {
	if c.Token == "" {
		return fmt.Errorf("WHATSAPP_TOKEN not configured")
	}

	body, err := json.Marshal(whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Text:             whatsAppText{Body: text},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", c.BaseURL, c.PhoneID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp send returned status %d", resp.StatusCode)
	}
	return nil
}
