package services

import (
	"context"
	"sort"
	"strings"

	"github.com/senyabanana/farm-commons/internal/models"
	"github.com/senyabanana/farm-commons/internal/repository"
)

type TipService struct {
	Repo *repository.Repositories
}

// NewTipService создаёт новый экземпляр TipService.
func NewTipService(repo *repository.Repositories) *TipService {
	return &TipService{Repo: repo}
}

// Add добавляет совет и возвращает его идентификатор.
func (s *TipService) Add(ctx context.Context, req models.FarmingTipRequest) (string, error) {
	if err := requireText(
		"userId", req.UserID,
		"title", req.Title,
		"content", req.Content,
		"category", req.Category,
	); err != nil {
		return "", err
	}
	if !req.UserType.Valid() {
		return "", models.NewValidationError("invalid user type: " + string(req.UserType))
	}

	tip := models.FarmingTip{
		ID:        newID(),
		UserID:    req.UserID,
		UserName:  req.UserName,
		UserType:  req.UserType,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		Category:  strings.TrimSpace(req.Category),
		Likes:     0,
		LikedBy:   []string{},
		Timestamp: now(),
	}
	err := s.Repo.FarmingTips.Update(ctx, func(tips []models.FarmingTip) ([]models.FarmingTip, error) {
		return append(tips, tip), nil
	})
	if err != nil {
		return "", err
	}
	return tip.ID, nil
}

// Like отмечает совет как понравившийся пользователю.
// Возвращает false, если совета нет или пользователь уже отметил его.
func (s *TipService) Like(ctx context.Context, tipID, userID string) (bool, error) {
	if err := requireText("userId", userID); err != nil {
		return false, err
	}

	liked := false
	err := s.Repo.FarmingTips.Update(ctx, func(tips []models.FarmingTip) ([]models.FarmingTip, error) {
		for i := range tips {
			if tips[i].ID != tipID {
				continue
			}
			for _, id := range tips[i].LikedBy {
				if id == userID {
					return nil, repository.ErrNoChange
				}
			}
			tips[i].LikedBy = append(tips[i].LikedBy, userID)
			tips[i].Likes = len(tips[i].LikedBy)
			liked = true
			return tips, nil
		}
		return nil, repository.ErrNoChange
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func mostLiked(tips []models.FarmingTip) []models.FarmingTip {
	sort.SliceStable(tips, func(i, j int) bool {
		if tips[i].Likes != tips[j].Likes {
			return tips[i].Likes > tips[j].Likes
		}
		return tips[i].Timestamp.After(tips[j].Timestamp.Time)
	})
	return tips
}

// All возвращает все советы, самые популярные первыми.
func (s *TipService) All(ctx context.Context) ([]models.FarmingTip, error) {
	tips, err := s.Repo.FarmingTips.Load(ctx)
	if err != nil {
		return nil, err
	}
	return mostLiked(tips), nil
}

// ByCategory возвращает советы категории без учёта регистра.
func (s *TipService) ByCategory(ctx context.Context, category string) ([]models.FarmingTip, error) {
	tips, err := s.Repo.FarmingTips.Load(ctx)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	result := []models.FarmingTip{}
	for _, t := range tips {
		if strings.EqualFold(t.Category, category) {
			result = append(result, t)
		}
	}
	return mostLiked(result), nil
}
