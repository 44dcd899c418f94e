package handler

import (
	"context"
	"io"
	"time"

	"takosu/internal/microservices/http-api/dto"
	"takosu/internal/microservices/http-api/middleware"
	"takosu/internal/microservices/http-api/models"
	"takosu/internal/microservices/http-api/service"
	"takosu/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(username, password, email string) (*models.User, error) {
	args := m.Called(username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(username, password string) (string, string, *models.User, error) {
	args := m.Called(username, password)
	user, _ := args.Get(2).(*models.User)
	return args.String(0), args.String(1), user, args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(refreshToken string) (string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) RevokeToken(refreshToken string) error {
	return m.Called(refreshToken).Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) AccessTokenTTL() time.Duration {
	return 15 * time.Minute
}

// MockChatService mocks the ChatService interface
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Conversation(ctx context.Context, viewer shared.AuthClaims, id int64) (*models.Conversation, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockChatService) History(ctx context.Context, viewer shared.AuthClaims, id int64) ([]shared.MessageRecord, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.MessageRecord), args.Error(1)
}

func (m *MockChatService) WaitForMessages(ctx context.Context, viewer shared.AuthClaims, id int64, after time.Time) ([]shared.MessageRecord, error) {
	args := m.Called(ctx, viewer, id, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.MessageRecord), args.Error(1)
}

func (m *MockChatService) PostMessage(ctx context.Context, viewer shared.AuthClaims, id int64, text string) error {
	return m.Called(ctx, viewer, id, text).Error(0)
}

func (m *MockChatService) RedirectPath(ctx context.Context, viewer shared.AuthClaims) (string, error) {
	args := m.Called(ctx, viewer)
	return args.String(0), args.Error(1)
}

func (m *MockChatService) ListConversations(ctx context.Context, viewer shared.AuthClaims) ([]dto.ConversationResponse, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ConversationResponse), args.Error(1)
}

// MockCommentService mocks the CommentService interface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Episode(ctx context.Context, animeTitle string, number int) (*models.Episode, error) {
	args := m.Called(ctx, animeTitle, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Episode), args.Error(1)
}

func (m *MockCommentService) History(ctx context.Context, animeTitle string, number int) ([]shared.CommentRecord, error) {
	args := m.Called(ctx, animeTitle, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.CommentRecord), args.Error(1)
}

func (m *MockCommentService) WaitForComments(ctx context.Context, animeTitle string, number int, after time.Time) ([]shared.CommentRecord, error) {
	args := m.Called(ctx, animeTitle, number, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.CommentRecord), args.Error(1)
}

func (m *MockCommentService) PostComment(ctx context.Context, viewer shared.AuthClaims, animeTitle string, number int, content string) error {
	return m.Called(ctx, viewer, animeTitle, number, content).Error(0)
}

// MockCatalogService mocks the CatalogService interface
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Search(ctx context.Context, query string) ([]shared.AnimeSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.AnimeSummary), args.Error(1)
}

func (m *MockCatalogService) Categories(ctx context.Context) ([]shared.CategoryData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.CategoryData), args.Error(1)
}

func (m *MockCatalogService) Detail(ctx context.Context, title string) (*dto.AnimeDetailResponse, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AnimeDetailResponse), args.Error(1)
}

// MockProfileService mocks the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Profile(ctx context.Context, viewer shared.AuthClaims) (*dto.ProfileResponse, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileResponse), args.Error(1)
}

// UpdateIcon hands the mock the uploaded bytes instead of the reader.
func (m *MockProfileService) UpdateIcon(ctx context.Context, viewer shared.AuthClaims, src io.Reader) (string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	args := m.Called(ctx, viewer, string(data))
	return args.String(0), args.Error(1)
}

func (m *MockProfileService) ToggleFavorite(ctx context.Context, viewer shared.AuthClaims, title string) (bool, error) {
	args := m.Called(ctx, viewer, title)
	return args.Bool(0), args.Error(1)
}

// MockSuggestionService mocks the SuggestionService interface
type MockSuggestionService struct {
	mock.Mock
}

func (m *MockSuggestionService) Submit(ctx context.Context, viewer shared.AuthClaims, subject, message string) error {
	return m.Called(ctx, viewer, subject, message).Error(0)
}

func (m *MockSuggestionService) List(ctx context.Context, viewer shared.AuthClaims) ([]dto.SuggestionResponse, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.SuggestionResponse), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asViewer stands in for AuthMiddleware in handler tests.
func asViewer(claims shared.AuthClaims) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetViewer(c, claims)
		c.Next()
	}
}
