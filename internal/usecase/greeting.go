package usecase

import (
	"fmt"
	"strings"
)

const greetingTemplate = "Olá %s! 👋\n\nObrigado por entrar em contato conosco!\n\nRecebemos sua mensagem e nossa equipe entrará em contato em breve.\n\nComo podemos ajudar você hoje?"

// ComposeGreeting monta a resposta automática do webhook.
func ComposeGreeting(senderName string) string {
	name := strings.TrimSpace(senderName)
	if name == "" {
		name = "cliente"
	}
	return fmt.Sprintf(greetingTemplate, name)
}
