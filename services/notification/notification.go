package notification

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message []byte) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message []byte) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast(message)
}

// Event là thông điệp gửi qua websocket
type Event struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type MessageBuilder struct {
	event Event
}

func NewMessageBuilder(eventType string) *MessageBuilder {
	return &MessageBuilder{event: Event{Type: eventType}}
}

func (b *MessageBuilder) Message(format string, args ...interface{}) *MessageBuilder {
	b.event.Message = fmt.Sprintf(format, args...)
	return b
}

func (b *MessageBuilder) Data(data interface{}) *MessageBuilder {
	b.event.Data = data
	return b
}

func (b *MessageBuilder) Build() ([]byte, error) {
	return json.Marshal(b.event)
}
