package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"takosu/internal/microservices/http-api/dto"
	"takosu/internal/microservices/http-api/models"
	"takosu/internal/microservices/http-api/repository"
	"takosu/internal/shared"
)

const maxSubjectLen = 150

var (
	ErrEmptySuggestion   = errors.New("subject and message are required")
	ErrSubjectTooLong    = errors.New("subject is longer than 150 characters")
	ErrSuggestionsHidden = errors.New("only admins can read suggestions")
)

// SuggestionService is the suggestion box: any member writes, admins read.
type SuggestionService interface {
	Submit(ctx context.Context, viewer shared.AuthClaims, subject, message string) error
	List(ctx context.Context, viewer shared.AuthClaims) ([]dto.SuggestionResponse, error)
}

type suggestionService struct {
	repo repository.SuggestionRepository
	loc  *time.Location
}

func NewSuggestionService(repo repository.SuggestionRepository, loc *time.Location) SuggestionService {
	return &suggestionService{repo: repo, loc: loc}
}

func (s *suggestionService) Submit(ctx context.Context, viewer shared.AuthClaims, subject, message string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" || strings.TrimSpace(message) == "" {
		return ErrEmptySuggestion
	}
	if utf8.RuneCountInString(subject) > maxSubjectLen {
		return ErrSubjectTooLong
	}

	suggestion := &models.Suggestion{Subject: subject, Message: message}
	if viewer.UserID != "" {
		author := viewer.UserID
		suggestion.UserID = &author
	}
	return s.repo.Create(ctx, suggestion)
}

func (s *suggestionService) List(ctx context.Context, viewer shared.AuthClaims) ([]dto.SuggestionResponse, error) {
	if !viewer.IsAdmin {
		return nil, ErrSuggestionsHidden
	}

	list, err := s.repo.ListRecent(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SuggestionResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.ToSuggestionResponse(&list[i], s.loc))
	}
	return out, nil
}
