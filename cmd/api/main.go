package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/hajabot/internal/config"
	"github.com/xavierca1/hajabot/internal/infra/database"
	"github.com/xavierca1/hajabot/internal/infra/http/handlers"
	"github.com/xavierca1/hajabot/internal/infra/integration/supabase"
	"github.com/xavierca1/hajabot/internal/infra/integration/zapi"
	"github.com/xavierca1/hajabot/internal/infra/mail"
	"github.com/xavierca1/hajabot/internal/infra/memory"
	"github.com/xavierca1/hajabot/internal/infra/queue"
	"github.com/xavierca1/hajabot/internal/usecase"
)

type stores struct {
	leads    usecase.LeadRepository
	messages usecase.MessageRepository
	ping     handlers.PingFunc
	close    func()
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Repositórios
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Falha ao abrir store %s: %v", cfg.StoreDriver, err)
	}
	defer st.close()

	// 2. Gateway e fila
	gateway := zapi.NewClient(zapi.Config{
		BaseURL:     cfg.ZAPIBaseURL,
		InstanceID:  cfg.ZAPIInstance,
		Token:       cfg.ZAPIToken,
		ClientToken: cfg.ZAPIClientToken,
		Timeout:     cfg.ZAPITimeout,
	})

	var events usecase.LeadEventPublisher
	var rabbitState handlers.ConnState
	if cfg.RabbitMQURL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("⚠️ RabbitMQ indisponível, eventos de lead desligados: %v", err)
		} else {
			defer rabbit.Close()
			events = queue.NewProducer(rabbit.Ch)
			rabbitState = rabbit.Conn

			// 3. Worker (consome a fila e avisa a equipe por e-mail)
			if cfg.MailConfigured() {
				notifier := mail.NewEmailNotifier(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, cfg.NotifyEmail)
				worker := queue.NewWorker(rabbit.Ch, notifier)
				go func() {
					if err := worker.Start(ctx, queue.QueueName); err != nil {
						log.Printf("❌ Worker parou: %v", err)
					}
				}()
			}
		}
	}

	// 4. UseCases
	ingestUC := usecase.NewIngestWebhookUseCase(st.leads, st.messages, gateway, events, cfg.WebhookReuseLead)
	formUC := usecase.NewCaptureFormUseCase(st.leads, events)
	sendUC := usecase.NewManualDispatchUseCase(gateway, st.leads, st.messages)
	queryUC := usecase.NewLeadQueryUseCase(st.leads, st.messages)

	// 5. Handlers e router
	router := handlers.Router{
		Health:         handlers.NewHealthHandler(string(cfg.StoreDriver), st.ping, rabbitState, gateway.Configured()),
		Webhook:        handlers.NewWebhookHandler(ingestUC),
		Form:           handlers.NewFormHandler(formUC, cfg.FormRateLimit),
		Send:           handlers.NewSendHandler(sendUC),
		Leads:          handlers.NewLeadsHandler(queryUC),
		AllowedOrigins: cfg.AllowedOrigins,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🔥 HajaBot server rodando na porta %s", cfg.Port)
		logEnvironment(cfg)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Servidor caiu: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("⚠️ Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Erro no shutdown: %v", err)
	}
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.DBAutoMigrate {
			if err := database.Migrate(ctx, db); err != nil {
				db.Close()
				return nil, err
			}
			log.Println("✅ Schema aplicado")
		}
		return &stores{
			leads:    database.NewLeadRepository(db),
			messages: database.NewMessageRepository(db),
			ping:     db.PingContext,
			close:    func() { db.Close() },
		}, nil

	case config.StoreMemory:
		log.Println("⚠️ Store em memória: dados somem ao reiniciar")
		return &stores{
			leads:    memory.NewLeadStore(),
			messages: memory.NewMessageStore(),
			close:    func() {},
		}, nil

	default:
		client := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseTimeout)
		return &stores{
			leads:    supabase.NewLeadRepository(client),
			messages: supabase.NewMessageRepository(client),
			ping:     client.Ping,
			close:    func() {},
		}, nil
	}
}

func logEnvironment(cfg *config.Config) {
	status := cfg.Status()
	keys := make([]string, 0, len(status))
	for k := range status {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	log.Println("Environment check:")
	for _, k := range keys {
		mark := "✅ Set"
		if status[k] == "missing" {
			mark = "❌ Missing"
		}
		log.Printf("- %s: %s", k, mark)
	}
}
