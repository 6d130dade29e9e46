package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"adoptme/internal/common"
	"adoptme/internal/domain/model"
)

type AdoptionRepository interface {
	Create(ctx context.Context, tx *sql.Tx, adoption *model.Adoption) error
	FindAll(ctx context.Context) ([]model.Adoption, error)
	FindByID(ctx context.Context, id string) (*model.Adoption, error)
}

type pgAdoptionRepository struct {
	db *sql.DB
}

func NewPgAdoptionRepository(db *sql.DB) AdoptionRepository {
	return &pgAdoptionRepository{db: db}
}

// Create runs inside the adoption transaction.
func (r *pgAdoptionRepository) Create(ctx context.Context, tx *sql.Tx, adoption *model.Adoption) error {
	query := `INSERT INTO adoptions (id, owner, pet, date) VALUES ($1, $2, $3, $4)`
	_, err := tx.ExecContext(ctx, query, adoption.ID, adoption.Owner, adoption.Pet, adoption.Date)
	if err != nil {
		return fmt.Errorf("pgAdoptionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAdoptionRepository) FindAll(ctx context.Context) ([]model.Adoption, error) {
	query := `SELECT id, owner, pet, date FROM adoptions ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgAdoptionRepository.FindAll: %w", err)
	}
	defer rows.Close()

	adoptions := []model.Adoption{}
	for rows.Next() {
		adoption := model.Adoption{}
		if err := rows.Scan(&adoption.ID, &adoption.Owner, &adoption.Pet, &adoption.Date); err != nil {
			return nil, fmt.Errorf("pgAdoptionRepository.FindAll: %w", err)
		}
		adoptions = append(adoptions, adoption)
	}
	return adoptions, rows.Err()
}

func (r *pgAdoptionRepository) FindByID(ctx context.Context, id string) (*model.Adoption, error) {
	query := `SELECT id, owner, pet, date FROM adoptions WHERE id = $1`
	adoption := &model.Adoption{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&adoption.ID, &adoption.Owner, &adoption.Pet, &adoption.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAdoptionRepository.FindByID: %w", err)
	}
	return adoption, nil
}
