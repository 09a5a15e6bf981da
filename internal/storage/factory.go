package storage

import "github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"

func NewFileRepository(profilesFile string, logger internal.Logger) (ProfileRepository, error) {
	return NewFileStorage(profilesFile, logger)
}

func NewPostgresRepository(dsn string, logger internal.Logger) (ProfileRepository, error) {
	return NewPostgresStorage(dsn, logger)
}
