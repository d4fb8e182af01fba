package services

import (
	"context"
	"strings"

	"github.com/senyabanana/farm-commons/internal/models"
	"github.com/senyabanana/farm-commons/internal/repository"
)

type UserService struct {
	Repo        *repository.Repositories
	Communities *CommunityService
}

// NewUserService создаёт новый экземпляр UserService.
func NewUserService(repo *repository.Repositories, communities *CommunityService) *UserService {
	return &UserService{Repo: repo, Communities: communities}
}

func validateUser(req models.UserRequest) error {
	if !req.Role.Valid() {
		return models.NewValidationError("invalid role, must be farmer or vendor")
	}
	if strings.TrimSpace(req.Name) == "" {
		return models.NewValidationError("missing required field: name")
	}
	if !isFinite(req.Latitude) || req.Latitude < -90 || req.Latitude > 90 {
		return models.NewValidationError("invalid latitude, must be within [-90, 90]")
	}
	if !isFinite(req.Longitude) || req.Longitude < -180 || req.Longitude > 180 {
		return models.NewValidationError("invalid longitude, must be within [-180, 180]")
	}
	return nil
}

// Register регистрирует фермера или закупщика и обновляет сообщества.
func (s *UserService) Register(ctx context.Context, req models.UserRequest) (string, error) {
	if err := validateUser(req); err != nil {
		return "", err
	}

	user := models.User{
		ID:        newID(),
		Name:      strings.TrimSpace(req.Name),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CreatedAt: now(),
	}
	err := s.Repo.Users(req.Role).Update(ctx, func(users []models.User) ([]models.User, error) {
		return append(users, user), nil
	})
	if err != nil {
		return "", err
	}

	switch req.Role {
	case models.Farmer:
		_, err = s.Communities.OnFarmerRegistered(ctx, user)
	case models.Vendor:
		_, err = s.Communities.OnVendorRegistered(ctx, user)
	}
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// Get возвращает пользователя по роли и идентификатору.
func (s *UserService) Get(ctx context.Context, role models.Role, userID string) (*models.User, bool, error) {
	table := s.Repo.Users(role)
	if table == nil {
		return nil, false, models.NewValidationError("invalid role, must be farmer or vendor")
	}
	users, err := table.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range users {
		if users[i].ID == userID {
			return &users[i], true, nil
		}
	}
	return nil, false, nil
}
