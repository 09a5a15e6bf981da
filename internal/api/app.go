package api

import (
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/auth"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/diagnosis"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Auth() auth.Provider
	ProfileRepo() storage.ProfileRepository
	Diagnosis() *diagnosis.Service
}
