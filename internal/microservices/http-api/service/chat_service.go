package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"takosu/internal/microservices/http-api/dto"
	"takosu/internal/microservices/http-api/models"
	"takosu/internal/microservices/http-api/repository"
	"takosu/internal/microservices/notify"
	"takosu/internal/shared"

	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrForbidden            = errors.New("you don't have permission to access this conversation")
	ErrEmptyMessage         = errors.New("message is empty")
)

// ChatService backs the help chat: one conversation per user, answered by admins.
type ChatService interface {
	// Conversation loads a conversation the viewer may read.
	Conversation(ctx context.Context, viewer shared.AuthClaims, id int64) (*models.Conversation, error)
	History(ctx context.Context, viewer shared.AuthClaims, id int64) ([]shared.MessageRecord, error)
	WaitForMessages(ctx context.Context, viewer shared.AuthClaims, id int64, after time.Time) ([]shared.MessageRecord, error)
	PostMessage(ctx context.Context, viewer shared.AuthClaims, id int64, text string) error

	// RedirectPath is where the help entry point sends the viewer.
	RedirectPath(ctx context.Context, viewer shared.AuthClaims) (string, error)
	ListConversations(ctx context.Context, viewer shared.AuthClaims) ([]dto.ConversationResponse, error)
}

type chatService struct {
	repo     repository.ConversationRepository
	longPoll *LongPoll
	media    string
	loc      *time.Location
}

func NewChatService(repo repository.ConversationRepository, longPoll *LongPoll, media string, loc *time.Location) ChatService {
	return &chatService{repo: repo, longPoll: longPoll, media: media, loc: loc}
}

func (s *chatService) Conversation(ctx context.Context, viewer shared.AuthClaims, id int64) (*models.Conversation, error) {
	conv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	if !viewer.IsAdmin && conv.UserID != viewer.UserID {
		return nil, ErrForbidden
	}
	return conv, nil
}

func (s *chatService) History(ctx context.Context, viewer shared.AuthClaims, id int64) ([]shared.MessageRecord, error) {
	if _, err := s.Conversation(ctx, viewer, id); err != nil {
		return nil, err
	}
	msgs, err := s.repo.ListMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.records(msgs, viewer, 0), nil
}

func (s *chatService) WaitForMessages(ctx context.Context, viewer shared.AuthClaims, id int64, after time.Time) ([]shared.MessageRecord, error) {
	if _, err := s.Conversation(ctx, viewer, id); err != nil {
		return nil, err
	}

	cursor := dto.Stamp(after)
	return waitFor(ctx, s.longPoll, notify.ChatTopic(id), func(ctx context.Context) ([]shared.MessageRecord, error) {
		msgs, err := s.repo.ListMessagesAfter(ctx, id, after)
		if err != nil {
			return nil, err
		}
		return s.records(msgs, viewer, cursor), nil
	})
}

// records keeps only messages whose stamp is strictly past cursor; the SQL
// filter compares timestamps, this compares the wire value.
func (s *chatService) records(msgs []models.HelpMessage, viewer shared.AuthClaims, cursor int64) []shared.MessageRecord {
	out := make([]shared.MessageRecord, 0, len(msgs))
	for i := range msgs {
		rec := dto.ToMessageRecord(&msgs[i], viewer.UserID, s.media, s.loc)
		if rec.Timestamp > cursor {
			out = append(out, rec)
		}
	}
	return out
}

func (s *chatService) PostMessage(ctx context.Context, viewer shared.AuthClaims, id int64, text string) error {
	conv, err := s.Conversation(ctx, viewer, id)
	if err != nil {
		return err
	}

	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	msg := &models.HelpMessage{
		ConversationID: conv.ID,
		SenderID:       viewer.UserID,
		Message:        text,
	}
	// an admin reply is addressed to the conversation owner, a user message to every admin
	if viewer.IsAdmin {
		owner := conv.UserID
		msg.RecipientID = &owner
	}

	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return err
	}

	s.longPoll.wake(ctx, notify.ChatTopic(conv.ID))
	return nil
}

func (s *chatService) RedirectPath(ctx context.Context, viewer shared.AuthClaims) (string, error) {
	if viewer.IsAdmin {
		return "/conversations/", nil
	}
	conv, err := s.repo.GetOrCreateForUser(ctx, viewer.UserID)
	if err != nil {
		return "", err
	}
	return dto.ConversationURL(conv.ID), nil
}

func (s *chatService) ListConversations(ctx context.Context, viewer shared.AuthClaims) ([]dto.ConversationResponse, error) {
	var (
		list []models.Conversation
		err  error
	)
	if viewer.IsAdmin {
		list, err = s.repo.ListAll(ctx)
	} else {
		list, err = s.repo.ListByUser(ctx, viewer.UserID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.ConversationResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.ToConversationResponse(&list[i]))
	}
	return out, nil
}
