package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/unimate-app/unimate-api/internal/models"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
)

type chatPeerRepository interface {
	ListPeers(ctx context.Context, excludeID int64) ([]models.User, error)
}

type chatTokenMinter interface {
	Mint(userID string) (string, error)
}

// ChatService assembles the chat roster and a caller-scoped chat token.
type ChatService struct {
	repo      chatPeerRepository
	minter    chatTokenMinter
	logger    *zap.Logger
	staleness time.Duration
}

// NewChatService constructs a ChatService instance.
func NewChatService(repo chatPeerRepository, minter chatTokenMinter, logger *zap.Logger, staleness time.Duration) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if staleness <= 0 {
		staleness = 5 * time.Minute
	}
	return &ChatService{repo: repo, minter: minter, logger: logger, staleness: staleness}
}

// Roster returns the caller's peers plus a chat token minted for the caller.
func (s *ChatService) Roster(ctx context.Context, callerID int64) (*models.ChatRosterResponse, error) {
	users, err := s.repo.ListPeers(ctx, callerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}

	chatToken, err := s.minter.Mint(strconv.FormatInt(callerID, 10))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to create chat token")
	}

	now := time.Now().UTC()
	roster := make([]models.ChatUser, 0, len(users))
	for i := range users {
		u := &users[i]
		roster = append(roster, models.ChatUser{
			ID:       strconv.FormatInt(u.ID, 10),
			Name:     u.Username,
			IsOnline: u.OnlineAt(now, s.staleness),
		})
	}

	return &models.ChatRosterResponse{Users: roster, ChatToken: chatToken}, nil
}
