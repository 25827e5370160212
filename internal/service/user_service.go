package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/unimate-app/unimate-api/internal/models"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
)

type userRepository interface {
	ListPeers(ctx context.Context, excludeID int64) ([]models.User, error)
	Touch(ctx context.Context, id int64, ts time.Time) error
}

// UserService serves the peer roster and presence heartbeats.
type UserService struct {
	repo      userRepository
	logger    *zap.Logger
	staleness time.Duration
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, logger *zap.Logger, staleness time.Duration) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if staleness <= 0 {
		staleness = 5 * time.Minute
	}
	return &UserService{repo: repo, logger: logger, staleness: staleness}
}

// Peers returns every user except the caller, with presence derived from
// last-seen staleness.
func (s *UserService) Peers(ctx context.Context, callerID int64) ([]models.PeerUser, error) {
	users, err := s.repo.ListPeers(ctx, callerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}

	now := time.Now().UTC()
	peers := make([]models.PeerUser, 0, len(users))
	for i := range users {
		u := &users[i]
		peers = append(peers, models.PeerUser{
			ID:           u.ID,
			Username:     u.Username,
			IsOnline:     u.OnlineAt(now, s.staleness),
			University:   u.University,
			ProfileImage: u.ProfileImage,
		})
	}
	return peers, nil
}

// Heartbeat refreshes the caller's last-seen timestamp.
func (s *UserService) Heartbeat(ctx context.Context, userID int64) error {
	if err := s.repo.Touch(ctx, userID, time.Now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record heartbeat")
	}
	return nil
}
