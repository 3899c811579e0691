package services

import (
	"context"

	"workmarket/internal/domain"
	"workmarket/internal/store"
	"workmarket/internal/validate"
)

type MessageService struct {
	DB *store.DB
}

func NewMessageService(db *store.DB) *MessageService {
	return &MessageService{DB: db}
}

type SendMessageInput struct {
	From string `json:"from" validate:"required,max=64"`
	To   string `json:"to" validate:"required,max=64"`
	Text string `json:"text" validate:"required,max=2000"`
}

// List returns all messages, or only those sent or received by participant.
func (s *MessageService) List(ctx context.Context, participant string) ([]domain.Message, error) {
	out := []domain.Message{}
	err := s.DB.View(ctx, func(doc *store.Document) error {
		for _, m := range doc.Messages {
			if participant == "" || m.From == participant || m.To == participant {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}

func (s *MessageService) Send(ctx context.Context, in SendMessageInput) (domain.Message, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Message{}, err
	}
	m := domain.Message{
		ID:        newID(prefixMessage),
		From:      validate.Text(in.From),
		To:        validate.Text(in.To),
		Text:      validate.Text(in.Text),
		CreatedAt: now(),
	}
	if m.From == "" || m.To == "" || m.Text == "" {
		return domain.Message{}, domain.Errorf(domain.KindInvalidInput, "from, to and text are required")
	}
	err := s.DB.Update(ctx, func(doc *store.Document) error {
		doc.Messages = append(doc.Messages, m)
		return nil
	})
	if err != nil {
		return domain.Message{}, err
	}
	return m, nil
}
