package diagnosis

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/storage"
)

var ErrNotAuthenticated = errors.New("authentication error, please log in again")

// Service runs one submission end to end: precondition check, the remote
// call with status rotation, then a wholesale profile refresh. The refresh
// settles before the caller sees the result, so a successful diagnosis is
// never rendered stale.
type Service struct {
	client         *Client
	profiles       storage.ProfileRepository
	status         *StatusBoard
	statusInterval time.Duration
	logger         internal.Logger
}

func NewService(client *Client, profiles storage.ProfileRepository, status *StatusBoard, logger internal.Logger) *Service {
	return &Service{
		client:         client,
		profiles:       profiles,
		status:         status,
		statusInterval: DefaultStatusInterval,
		logger:         logger,
	}
}

func (s *Service) Status() *StatusBoard {
	return s.status
}

// Submit posts the accepted file to the diagnosis endpoint. A missing user
// id fails before any network effect. On success the profile store is
// re-read; a lookup failure there is logged and fails open to no profile.
func (s *Service) Submit(ctx context.Context, session *internal.Session, candidate *internal.UploadCandidate, file io.Reader) (*internal.HealthProfile, error) {
	if session == nil || session.UserID == "" {
		return nil, ErrNotAuthenticated
	}
	userID := session.UserID

	cycler := NewCycler(StatusMessages(candidate.InputType), s.statusInterval, func(msg string) {
		s.status.Set(userID, msg)
	})
	cycler.Start()
	defer func() {
		cycler.Stop()
		s.status.Clear(userID)
	}()

	if err := s.client.Diagnose(ctx, userID, candidate.InputType, candidate.Filename, file); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		s.logger.Errorf("profile refresh after diagnosis failed for %s: %v", userID, err)
		return nil, nil
	}
	return profile, nil
}
