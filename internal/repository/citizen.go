package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"yilin/internal/models"
	"yilin/internal/utils"
)

// CitizenRepository is the minimal directory behind author/citizen references.
// Accounts, credentials and sessions live in the identity service; this module
// only needs the summary rows that comments and votes point at.
type CitizenRepository struct {
	db *gorm.DB
}

func NewCitizenRepository(database *gorm.DB) *CitizenRepository {
	return &CitizenRepository{db: database}
}

type CreateCitizenInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// Create registers a citizen profile. A missing avatar gets a random emoji,
// same as new accounts elsewhere.
func (r *CitizenRepository) Create(ctx context.Context, in CreateCitizenInput) (*models.Citizen, error) {
	citizen := models.Citizen{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Avatar:    in.Avatar,
	}
	if citizen.Avatar == "" {
		citizen.Avatar = utils.GetRandomEmoji()
	}

	if err := r.db.WithContext(ctx).Create(&citizen).Error; err != nil {
		return nil, fmt.Errorf("failed to create citizen: %w", err)
	}
	return r.GetByID(ctx, citizen.ID)
}

// GetByID resolves one citizen to its summary fields.
func (r *CitizenRepository) GetByID(ctx context.Context, id uint) (*models.Citizen, error) {
	var citizen models.Citizen
	err := r.db.WithContext(ctx).First(&citizen, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCitizenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load citizen %d: %w", id, err)
	}
	return &citizen, nil
}
