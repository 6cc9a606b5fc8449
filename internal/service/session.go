package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/repository"
	"github.com/manara-transit/backend/pkg/auth"
	"github.com/manara-transit/backend/pkg/clock"
)

type Tokens struct {
	AccessToken  string
	AccessTTL    time.Duration
	RefreshToken uuid.UUID
	RefreshTTL   time.Duration
}

type sessionIssuer struct {
	refreshSessionRepository repository.RefreshSession
	tokenManager             auth.TokenManager
	clock                    clock.Clocker
}

func newSessionIssuer(refreshSessionRepository repository.RefreshSession, tokenManager auth.TokenManager, clk clock.Clocker) *sessionIssuer {
	return &sessionIssuer{
		refreshSessionRepository: refreshSessionRepository,
		tokenManager:             tokenManager,
		clock:                    clk,
	}
}

func (s *sessionIssuer) createSession(ctx context.Context, user *domain.User, userAgent string, userIP string) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewJWT(auth.Subject{
		UserID:     user.ID,
		Email:      user.Email,
		IsVerified: user.IsVerified,
	})
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	res.RefreshToken, res.RefreshTTL, err = s.tokenManager.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token failed: %w", err)
	}

	refreshSessionID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate refresh session id failed: %w", err)
	}
	refreshSession := &domain.RefreshSession{
		ID:           refreshSessionID,
		UserID:       user.ID,
		RefreshToken: res.RefreshToken,
		UserAgent:    userAgent,
		IP:           userIP,
		ExpiresIn:    s.clock.Now().Add(res.RefreshTTL),
	}

	if err := s.refreshSessionRepository.Create(ctx, refreshSession); err != nil {
		return nil, fmt.Errorf("create refresh session failed: %w", err)
	}

	return &res, nil
}
