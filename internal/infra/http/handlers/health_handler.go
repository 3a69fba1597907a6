package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// PingFunc checa o store (db.PingContext, supabase.Client.Ping).
type PingFunc func(ctx context.Context) error

// ConnState é o que o health precisa da conexão AMQP.
type ConnState interface {
	IsClosed() bool
}

type HealthHandler struct {
	StoreName      string
	StorePing      PingFunc
	RabbitMQ       ConnState
	ZAPIConfigured bool
	StartTime      time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

type LivenessResponse struct {
	Message string `json:"message"`
}

// NewHealthHandler aceita ping e rabbit nil (store em memória, fila desligada).
func NewHealthHandler(storeName string, ping PingFunc, rabbit ConnState, zapiConfigured bool) *HealthHandler {
	return &HealthHandler{
		StoreName:      storeName,
		StorePing:      ping,
		RabbitMQ:       rabbit,
		ZAPIConfigured: zapiConfigured,
		StartTime:      time.Now(),
	}
}

func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{Message: "🔥 HajaBot ativo!"})
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	// Check store
	if h.StorePing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := h.StorePing(ctx); err != nil {
			deps[h.StoreName] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps[h.StoreName] = "healthy"
		}
	} else {
		deps[h.StoreName] = "in-process"
	}

	// Check RabbitMQ
	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	// Check Z-API
	if h.ZAPIConfigured {
		deps["zapi"] = "configured"
	} else {
		deps["zapi"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" && v != "in-process" {
			status = "degraded"
			break
		}
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
