package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) GetProfile(ctx context.Context, userID string) (*internal.HealthProfile, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, latest_diagnostic_response, updated_at FROM user_health_profiles WHERE id = $1`, userID)

	var profile internal.HealthProfile
	var raw []byte
	if err := row.Scan(&profile.ID, &raw, &profile.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		p.logger.Errorf("failed to fetch profile for %s: %v", userID, err)
		return nil, err
	}
	if len(raw) > 0 {
		var resp internal.DiagnosticResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			p.logger.Errorf("failed to decode diagnostic response for %s: %v", userID, err)
			return nil, err
		}
		profile.LatestDiagnosticResponse = &resp
	}
	return &profile, nil
}

func (p *PostgresStorage) UpsertProfile(ctx context.Context, profile *internal.HealthProfile) error {
	raw, err := json.Marshal(profile.LatestDiagnosticResponse)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO user_health_profiles (id, latest_diagnostic_response, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET latest_diagnostic_response = $2, updated_at = $3`,
		profile.ID, raw, profile.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert profile for %s: %v", profile.ID, err)
		return err
	}
	return nil
}

var _ ProfileRepository = (*PostgresStorage)(nil)
