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
	ErrAnimeNotFound   = errors.New("anime not found")
	ErrEpisodeNotFound = errors.New("episode not found")
)

// CommentService backs the comment section under each episode.
type CommentService interface {
	Episode(ctx context.Context, animeTitle string, number int) (*models.Episode, error)
	History(ctx context.Context, animeTitle string, number int) ([]shared.CommentRecord, error)
	WaitForComments(ctx context.Context, animeTitle string, number int, after time.Time) ([]shared.CommentRecord, error)
	// PostComment stores content when it is not blank; blank content is ignored.
	PostComment(ctx context.Context, viewer shared.AuthClaims, animeTitle string, number int, content string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	animeRepo   repository.AnimeRepository
	longPoll    *LongPoll
	loc         *time.Location
}

func NewCommentService(commentRepo repository.CommentRepository, animeRepo repository.AnimeRepository, longPoll *LongPoll, loc *time.Location) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		animeRepo:   animeRepo,
		longPoll:    longPoll,
		loc:         loc,
	}
}

func (s *commentService) Episode(ctx context.Context, animeTitle string, number int) (*models.Episode, error) {
	ep, err := s.animeRepo.GetEpisode(ctx, animeTitle, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEpisodeNotFound
		}
		return nil, err
	}
	return ep, nil
}

func (s *commentService) History(ctx context.Context, animeTitle string, number int) ([]shared.CommentRecord, error) {
	ep, err := s.Episode(ctx, animeTitle, number)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByEpisode(ctx, ep.ID)
	if err != nil {
		return nil, err
	}
	return s.records(comments, 0), nil
}

func (s *commentService) WaitForComments(ctx context.Context, animeTitle string, number int, after time.Time) ([]shared.CommentRecord, error) {
	ep, err := s.Episode(ctx, animeTitle, number)
	if err != nil {
		return nil, err
	}

	cursor := dto.Stamp(after)
	return waitFor(ctx, s.longPoll, notify.CommentTopic(ep.ID), func(ctx context.Context) ([]shared.CommentRecord, error) {
		comments, err := s.commentRepo.ListByEpisodeAfter(ctx, ep.ID, after)
		if err != nil {
			return nil, err
		}
		return s.records(comments, cursor), nil
	})
}

func (s *commentService) records(comments []models.Comment, cursor int64) []shared.CommentRecord {
	out := make([]shared.CommentRecord, 0, len(comments))
	for i := range comments {
		rec := dto.ToCommentRecord(&comments[i], s.loc)
		if rec.Timestamp > cursor {
			out = append(out, rec)
		}
	}
	return out
}

func (s *commentService) PostComment(ctx context.Context, viewer shared.AuthClaims, animeTitle string, number int, content string) error {
	ep, err := s.Episode(ctx, animeTitle, number)
	if err != nil {
		return err
	}

	if strings.TrimSpace(content) == "" {
		return nil
	}

	comment := &models.Comment{
		UserID:     viewer.UserID,
		AnimeTitle: ep.AnimeTitle,
		EpisodeID:  ep.ID,
		Content:    content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return err
	}

	s.longPoll.wake(ctx, notify.CommentTopic(ep.ID))
	return nil
}
