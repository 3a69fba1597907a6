package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	metrics "github.com/xavierca1/hajabot/internal/infra/http/middleware"
)

type Router struct {
	Health         *HealthHandler
	Webhook        *WebhookHandler
	Form           *FormHandler
	Send           *SendHandler
	Leads          *LeadsHandler
	AllowedOrigins []string
}

func (rt Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Metrics)

	origins := rt.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
	}))

	r.Get("/", rt.Health.HandleRoot)
	r.Get("/health", rt.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/webhook", rt.Webhook.Handle)
		r.Post("/form", rt.Form.Handle)
		r.Post("/send", rt.Send.Handle)

		r.Get("/leads", rt.Leads.HandleList)
		r.Get("/leads/{id}/messages", rt.Leads.HandleMessages)
		r.Put("/leads/{id}", rt.Leads.HandleUpdate)
	})

	return r
}
