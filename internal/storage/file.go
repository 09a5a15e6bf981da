package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

// FileStorage backs the profile repository with a JSON file for development.
// Writes are debounced through a save worker so a burst of upserts produces
// one flush.
type FileStorage struct {
	profiles     map[string]*internal.HealthProfile // userID -> profile
	mu           sync.RWMutex
	profilesFile string
	saveChan     chan struct{}
	shutdownChan chan struct{}
	saveDelay    time.Duration
	logger       internal.Logger
}

func NewFileStorage(profilesFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		profiles:     make(map[string]*internal.HealthProfile),
		profilesFile: profilesFile,
		saveChan:     make(chan struct{}, 1),
		shutdownChan: make(chan struct{}),
		saveDelay:    500 * time.Millisecond,
		logger:       logger,
	}

	if err := s.loadProfiles(); err != nil {
		logger.Errorf("storage: failed to load profiles: %v", err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func (s *FileStorage) GetProfile(ctx context.Context, userID string) (*internal.HealthProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *profile
	return &cp, nil
}

func (s *FileStorage) UpsertProfile(ctx context.Context, profile *internal.HealthProfile) error {
	s.mu.Lock()
	cp := *profile
	s.profiles[profile.ID] = &cp
	s.mu.Unlock()

	select {
	case s.saveChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) Shutdown() {
	close(s.shutdownChan)
}

func (s *FileStorage) loadProfiles() error {
	file, err := os.Open(s.profilesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var profiles []*internal.HealthProfile
	if err := json.NewDecoder(file).Decode(&profiles); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range profiles {
		s.profiles[p.ID] = p
	}
	return nil
}

func (s *FileStorage) saveWorker() {
	for {
		select {
		case <-s.saveChan:
			time.Sleep(s.saveDelay)
			if err := s.saveProfiles(); err != nil {
				s.logger.Errorf("storage: failed to save profiles: %v", err)
			}
		case <-s.shutdownChan:
			if err := s.saveProfiles(); err != nil {
				s.logger.Errorf("storage: failed to save profiles on shutdown: %v", err)
			}
			return
		}
	}
}

func (s *FileStorage) saveProfiles() error {
	s.mu.RLock()
	profiles := make([]*internal.HealthProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.profilesFile, profiles)
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

var _ ProfileRepository = (*FileStorage)(nil)
