package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"adoptme/internal/common"
	"adoptme/internal/domain/model"
)

type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	InsertBatch(ctx context.Context, pets []*model.Pet) (int, error)
	FindAll(ctx context.Context) ([]model.Pet, error)
	FindByID(ctx context.Context, id string) (*model.Pet, error)
	Update(ctx context.Context, pet *model.Pet) error
	MarkAdopted(ctx context.Context, tx *sql.Tx, petID, ownerID string) error
	Delete(ctx context.Context, id string) error
}

type pgPetRepository struct {
	db *sql.DB
}

func NewPgPetRepository(db *sql.DB) PetRepository {
	return &pgPetRepository{db: db}
}

const petColumns = `id, name, specie, birth_date, image, adopted, owner, created_at, updated_at`

func (r *pgPetRepository) Create(ctx context.Context, pet *model.Pet) error {
	query := `INSERT INTO pets (id, name, specie, birth_date, image, adopted, owner)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, pet.ID, pet.Name, pet.Specie, pet.BirthDate, pet.Image, pet.Adopted, pet.Owner)
	if err != nil {
		return fmt.Errorf("pgPetRepository.Create: %w", err)
	}
	return nil
}

// InsertBatch persists generated pets one statement at a time and
// reports how many made it in. Used by the mock seeder only.
func (r *pgPetRepository) InsertBatch(ctx context.Context, pets []*model.Pet) (int, error) {
	created := 0
	for _, pet := range pets {
		if err := r.Create(ctx, pet); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (r *pgPetRepository) FindAll(ctx context.Context) ([]model.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgPetRepository.FindAll: %w", err)
	}
	defer rows.Close()

	pets := []model.Pet{}
	for rows.Next() {
		pet := model.Pet{}
		err := rows.Scan(&pet.ID, &pet.Name, &pet.Specie, &pet.BirthDate, &pet.Image, &pet.Adopted, &pet.Owner, &pet.CreatedAt, &pet.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("pgPetRepository.FindAll: %w", err)
		}
		pets = append(pets, pet)
	}
	return pets, rows.Err()
}

func (r *pgPetRepository) FindByID(ctx context.Context, id string) (*model.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE id = $1`
	pet := &model.Pet{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pet.ID, &pet.Name, &pet.Specie, &pet.BirthDate, &pet.Image, &pet.Adopted, &pet.Owner, &pet.CreatedAt, &pet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPetRepository.FindByID: %w", err)
	}
	return pet, nil
}

func (r *pgPetRepository) Update(ctx context.Context, pet *model.Pet) error {
	query := `UPDATE pets SET name = $1, specie = $2, birth_date = $3, image = $4, updated_at = now()
	          WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, pet.Name, pet.Specie, pet.BirthDate, pet.Image, pet.ID)
	if err != nil {
		return fmt.Errorf("pgPetRepository.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPetRepository.Update: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

// MarkAdopted flips the adopted flag inside the adoption transaction.
// The WHERE adopted = FALSE guard serializes concurrent adoptions of
// the same pet: the loser sees zero rows and gets the already-adopted
// error. Callers must have confirmed the pet exists beforehand.
func (r *pgPetRepository) MarkAdopted(ctx context.Context, tx *sql.Tx, petID, ownerID string) error {
	query := `UPDATE pets SET adopted = TRUE, owner = $2, updated_at = now()
	          WHERE id = $1 AND adopted = FALSE`
	result, err := tx.ExecContext(ctx, query, petID, ownerID)
	if err != nil {
		return fmt.Errorf("pgPetRepository.MarkAdopted: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPetRepository.MarkAdopted: %w", err)
	}
	if rows == 0 {
		return common.ErrPetAlreadyAdopted
	}
	return nil
}

func (r *pgPetRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgPetRepository.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPetRepository.Delete: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}
