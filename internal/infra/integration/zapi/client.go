package zapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.z-api.io"

var ErrNotConfigured = errors.New("z-api não configurada: ZAPI_INSTANCE ou ZAPI_TOKEN ausente")

type Config struct {
	BaseURL    string
	InstanceID string
	Token      string
	// ClientToken é o token de segurança da conta, enviado no header Client-Token quando presente.
	ClientToken string
	// Timeout zero deixa o http.Client sem timeout.
	Timeout time.Duration
}

type Client struct {
	baseURL     string
	instanceID  string
	token       string
	clientToken string
	http        *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		instanceID:  cfg.InstanceID,
		token:       cfg.Token,
		clientToken: cfg.ClientToken,
		http:        &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Configured() bool {
	return c.instanceID != "" && c.token != ""
}

// SendText envia uma mensagem de texto simples para o telefone informado.
func (c *Client) SendText(ctx context.Context, phone, message string) (*SendTextResponse, error) {
	if !c.Configured() {
		log.Println("⚠️ Z-API: ZAPI_INSTANCE ou ZAPI_TOKEN não configurados")
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(sendTextRequest{Phone: phone, Message: message})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar payload z-api: %w", err)
	}

	url := fmt.Sprintf("%s/instances/%s/token/%s/send-text", c.baseURL, c.instanceID, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição z-api: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.clientToken != "" {
		req.Header.Set("Client-Token", c.clientToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("❌ Z-API: Erro ao enviar mensagem: %v", err)
		return nil, fmt.Errorf("erro na conexão com z-api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta z-api: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "Failed to send message"}
		var payload errorResponse
		if json.Unmarshal(respBody, &payload) == nil {
			switch {
			case payload.Message != "":
				apiErr.Message = payload.Message
			case payload.Error != "":
				apiErr.Message = payload.Error
			}
		}
		log.Printf("❌ Z-API: API retornou status %d: %s", resp.StatusCode, string(respBody))
		return nil, apiErr
	}

	var result SendTextResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		log.Printf("❌ Z-API: Erro ao parsear resposta: %v", err)
		return nil, fmt.Errorf("resposta inválida da z-api: %w", err)
	}

	log.Printf("✅ Z-API: Mensagem enviada para %s (messageId=%s)", phone, result.MessageID)
	return &result, nil
}
