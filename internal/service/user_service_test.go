package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unimate-app/unimate-api/internal/models"
)

func TestUserServicePeersPresence(t *testing.T) {
	recent := time.Now().UTC().Add(-time.Minute)
	stale := time.Now().UTC().Add(-time.Hour)
	repo := &mockUserRepo{peers: []models.User{
		{ID: 2, Username: "bob", University: "MUK", LastSeenAt: &recent},
		{ID: 3, Username: "carol", University: "KYU", LastSeenAt: &stale},
		{ID: 4, Username: "dave"},
	}}
	svc := NewUserService(repo, zap.NewNop(), 5*time.Minute)

	peers, err := svc.Peers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, peers, 3)

	assert.True(t, peers[0].IsOnline)
	assert.False(t, peers[1].IsOnline)

	// Never-seen users are offline.
	assert.False(t, peers[2].IsOnline)
}

func TestUserServiceHeartbeat(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewUserService(repo, zap.NewNop(), 5*time.Minute)

	require.NoError(t, svc.Heartbeat(context.Background(), 7))
	assert.Equal(t, []int64{7}, repo.touched)
}
