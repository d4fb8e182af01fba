package services

import (
	"context"
	"strings"

	"github.com/senyabanana/farm-commons/internal/models"
	"github.com/senyabanana/farm-commons/internal/repository"
)

// ChatService ведёт журнал сообщений сообществ. Сообщения только добавляются.
type ChatService struct {
	Repo *repository.Repositories
}

// NewChatService создаёт новый экземпляр ChatService.
func NewChatService(repo *repository.Repositories) *ChatService {
	return &ChatService{Repo: repo}
}

// Append добавляет сообщение в чат сообщества. Возвращает false, если сообщества нет.
func (s *ChatService) Append(ctx context.Context, communityID, authorID, authorName string, authorRole models.Role, text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, models.NewValidationError("message content must not be empty")
	}
	if !authorRole.Valid() {
		return false, models.NewValidationError("invalid user type: " + string(authorRole))
	}

	found := false
	err := s.Repo.Communities.Update(ctx, func(communities []models.Community) ([]models.Community, error) {
		for i := range communities {
			if communities[i].ID != communityID {
				continue
			}
			communities[i].Messages = append(communities[i].Messages, models.Message{
				ID:        newID(),
				UserID:    authorID,
				UserName:  authorName,
				UserType:  authorRole,
				Content:   text,
				Timestamp: now(),
			})
			found = true
			return communities, nil
		}
		return nil, repository.ErrNoChange
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// Messages возвращает сообщения сообщества в порядке добавления.
func (s *ChatService) Messages(ctx context.Context, communityID string) ([]models.Message, bool, error) {
	communities, err := s.Repo.Communities.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, c := range communities {
		if c.ID == communityID {
			if c.Messages == nil {
				return []models.Message{}, true, nil
			}
			return c.Messages, true, nil
		}
	}
	return nil, false, nil
}
