package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"takosu/internal/microservices/http-api/dto"
	"takosu/internal/microservices/http-api/models"
	"takosu/internal/microservices/http-api/repository"
	"takosu/internal/shared"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxIconSize bounds an uploaded profile icon.
const MaxIconSize = 2 << 20

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidIcon  = errors.New("icon must be a PNG, JPEG, GIF or WebP image")
	ErrIconTooLarge = errors.New("icon is larger than 2 MB")
)

var iconExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ProfileService lets members change their icon and keep a list of favorite anime.
type ProfileService interface {
	Profile(ctx context.Context, viewer shared.AuthClaims) (*dto.ProfileResponse, error)
	// UpdateIcon stores a new icon and returns its public URL. The previous
	// icon file is removed unless it is the shared default.
	UpdateIcon(ctx context.Context, viewer shared.AuthClaims, src io.Reader) (string, error)
	// ToggleFavorite flips an anime in or out of the favorites and reports
	// whether it is a favorite afterwards.
	ToggleFavorite(ctx context.Context, viewer shared.AuthClaims, title string) (bool, error)
}

type profileService struct {
	repo      repository.ProfileRepository
	animeRepo repository.AnimeRepository
	store     repository.MediaStore
	media     string
}

func NewProfileService(repo repository.ProfileRepository, animeRepo repository.AnimeRepository, store repository.MediaStore, media string) ProfileService {
	return &profileService{repo: repo, animeRepo: animeRepo, store: store, media: media}
}

func (s *profileService) load(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) Profile(ctx context.Context, viewer shared.AuthClaims) (*dto.ProfileResponse, error) {
	user, err := s.load(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToProfileResponse(user, s.media)
	return &resp, nil
}

// iconFolder mirrors the upload layout users/<username>/.
func iconFolder(username string) string {
	return path.Join("users", strings.ReplaceAll(username, " ", "_"))
}

func (s *profileService) UpdateIcon(ctx context.Context, viewer shared.AuthClaims, src io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(src, MaxIconSize+1))
	if err != nil {
		return "", fmt.Errorf("read icon: %w", err)
	}
	if len(data) > MaxIconSize {
		return "", ErrIconTooLarge
	}
	ext, ok := iconExtensions[http.DetectContentType(data)]
	if !ok {
		return "", ErrInvalidIcon
	}

	user, err := s.load(ctx, viewer.UserID)
	if err != nil {
		return "", err
	}

	icon := path.Join(iconFolder(user.Username), uuid.NewString()+ext)
	if err := s.store.Save(ctx, icon, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("save icon: %w", err)
	}
	if err := s.repo.UpdateIcon(ctx, user.ID, icon); err != nil {
		if delErr := s.store.Delete(ctx, icon); delErr != nil {
			slog.Warn("remove orphaned icon failed", "path", icon, "error", delErr)
		}
		return "", err
	}

	if old := user.Icon; old != "" && old != models.DefaultIcon {
		if err := s.store.Delete(ctx, old); err != nil {
			slog.Warn("remove previous icon failed", "user_id", user.ID, "path", old, "error", err)
		}
	}
	return dto.MediaURL(s.media, icon), nil
}

func (s *profileService) ToggleFavorite(ctx context.Context, viewer shared.AuthClaims, title string) (bool, error) {
	if _, err := s.animeRepo.GetByTitle(ctx, title); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrAnimeNotFound
		}
		return false, err
	}

	removed, err := s.repo.RemoveFavorite(ctx, viewer.UserID, title)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	if err := s.repo.AddFavorite(ctx, viewer.UserID, title); err != nil {
		return false, err
	}
	return true, nil
}
