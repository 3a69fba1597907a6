package mail

import "gopkg.in/gomail.v2"

// NewLeadEmailData alimenta o template do aviso de lead novo.
type NewLeadEmailData struct {
	LeadID     string
	Source     string
	Name       string
	Phone      string
	Message    string
	PostalCode string
	Plan       string
	CreatedAt  string
}

// Dialer é o que o *gomail.Dialer oferece para envio.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailNotifier struct {
	From   string
	To     string
	Dialer Dialer
}
