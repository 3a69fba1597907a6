package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/hajabot/internal/config"
	"github.com/xavierca1/hajabot/internal/infra/integration/zapi"
)

func main() {
	phone := flag.String("phone", "", "telefone de destino, ex: 5511999999999")
	message := flag.String("message", "Teste de envio do HajaBot ✅", "texto da mensagem")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	if *phone == "" {
		log.Fatal("❌ Informe o telefone com -phone")
	}

	cfg := config.Load()
	if !cfg.ZAPIConfigured() {
		log.Fatal("❌ ZAPI_INSTANCE e ZAPI_TOKEN devem estar configurados no .env")
	}

	client := zapi.NewClient(zapi.Config{
		BaseURL:     cfg.ZAPIBaseURL,
		InstanceID:  cfg.ZAPIInstance,
		Token:       cfg.ZAPIToken,
		ClientToken: cfg.ZAPIClientToken,
		Timeout:     30 * time.Second,
	})

	fmt.Println("🔄 Enviando mensagem pela Z-API...")
	fmt.Printf("   Telefone: %s\n", *phone)
	fmt.Printf("   Mensagem: %s\n\n", *message)

	res, err := client.SendText(context.Background(), *phone, *message)
	if err != nil {
		log.Fatalf("Erro ao enviar mensagem: %v", err)
	}

	fmt.Println("✅ Mensagem enviada!")
	fmt.Printf("   zaapId: %s\n", res.ZaapID)
	fmt.Printf("   messageId: %s\n", res.MessageID)
}
