package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PushSender entrega notificaciones push vía el endpoint HTTP estilo
// Expo: POST {to, title, body, data}.
type PushSender struct {
	URL    string
	Client *http.Client
}

func NewPushSender(url string) *PushSender {
	return &PushSender{
		URL: url,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type pushRequest struct {
	To    string                 `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

func (p *PushSender) Enviar(to, titulo, cuerpo string, data map[string]interface{}) error {
	payload, err := json.Marshal(pushRequest{
		To:    to,
		Title: titulo,
		Body:  cuerpo,
		Data:  data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	resp, err := p.Client.Post(p.URL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
