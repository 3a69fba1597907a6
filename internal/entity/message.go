package entity

import (
	"errors"
	"time"
)

type Direction string

const (
	DirectionReceived Direction = "recebida"
	DirectionSent     Direction = "enviada"
)

// Message é uma linha do histórico de conversa de um lead. Imutável depois de criada.
type Message struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"id_lead"`
	Text      string    `json:"texto"`
	Direction Direction `json:"tipo"`
	Timestamp time.Time `json:"horario"`
}

func NewMessage(leadID, text string, direction Direction) (*Message, error) {
	if leadID == "" {
		return nil, errors.New("id_lead é obrigatório")
	}
	if direction != DirectionReceived && direction != DirectionSent {
		return nil, errors.New("tipo de mensagem inválido")
	}
	return &Message{
		LeadID:    leadID,
		Text:      text,
		Direction: direction,
	}, nil
}
