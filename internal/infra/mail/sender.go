package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/hajabot/internal/infra/queue"
)

var newLeadTemplate = template.Must(template.New("new_lead").Parse(`<h2>🔥 Novo lead no HajaBot</h2>
<p><strong>Origem:</strong> {{.Source}}</p>
<p><strong>Nome:</strong> {{.Name}}</p>
<p><strong>Telefone:</strong> {{.Phone}}</p>
{{- if .Message}}
<p><strong>Mensagem:</strong> {{.Message}}</p>
{{- end}}
{{- if .PostalCode}}
<p><strong>CEP:</strong> {{.PostalCode}}</p>
{{- end}}
{{- if .Plan}}
<p><strong>Plano:</strong> {{.Plan}}</p>
{{- end}}
<p><small>Lead {{.LeadID}} criado em {{.CreatedAt}}</small></p>
`))

func NewEmailNotifier(host string, port int, user, password, from, to string) *EmailNotifier {
	return &EmailNotifier{
		From:   from,
		To:     to,
		Dialer: gomail.NewDialer(host, port, user, password),
	}
}

func renderNewLead(data NewLeadEmailData) (string, error) {
	var body bytes.Buffer
	if err := newLeadTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

// NotifyNewLead manda um e-mail para a equipe com os dados do lead.
func (s *EmailNotifier) NotifyNewLead(ctx context.Context, payload queue.LeadCreatedPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := NewLeadEmailData{
		LeadID:     payload.LeadID,
		Source:     payload.Source,
		Name:       payload.Name,
		Phone:      payload.Phone,
		Message:    payload.Message,
		PostalCode: payload.PostalCode,
		Plan:       payload.Plan,
		CreatedAt:  payload.CreatedAt.Format("02/01/2006 15:04"),
	}

	body, err := renderNewLead(data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("Novo lead: %s (%s)", payload.Name, payload.Phone))
	m.SetBody("text/html", body)

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	log.Printf("📧 Aviso do lead %s enviado para %s", payload.LeadID, s.To)
	return nil
}
