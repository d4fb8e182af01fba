package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/senyabanana/farm-commons/internal/models"
	"github.com/senyabanana/farm-commons/internal/repository"

	"github.com/google/uuid"
)

// deadlineLayout - формат срока опроса.
const deadlineLayout = "2006-01-02"

type PollService struct {
	Repo   *repository.Repositories
	Chat   *ChatService
	Logger *log.Logger
}

// NewPollService создаёт новый экземпляр PollService.
func NewPollService(repo *repository.Repositories, chat *ChatService, logger *log.Logger) *PollService {
	return &PollService{Repo: repo, Chat: chat, Logger: logger}
}

// ReferenceCode генерирует код обязательства: P<4 символа опроса>-F<4 символа фермера>-<6 hex>.
func ReferenceCode(pollID, farmerID string) string {
	suffix := strings.ToUpper(uuid.New().String()[:6])
	return fmt.Sprintf("P%s-F%s-%s", prefix(pollID, 4), prefix(farmerID, 4), suffix)
}

func validatePoll(req models.PollRequest) error {
	if err := requireText(
		"communityId", req.CommunityID,
		"vendorId", req.VendorID,
		"product", req.Product,
		"unit", req.Unit,
		"deadline", req.Deadline,
	); err != nil {
		return err
	}
	if !isFinite(req.Quantity) || req.Quantity <= 0 {
		return models.NewValidationError("quantity must be a positive number")
	}
	if _, err := time.Parse(deadlineLayout, req.Deadline); err != nil {
		return models.NewValidationError("invalid deadline, expected YYYY-MM-DD")
	}
	return nil
}

// notify публикует системное сообщение от имени закупщика опроса.
// Ошибка публикации не отменяет уже сохранённое изменение опроса.
func (s *PollService) notify(ctx context.Context, poll models.Poll, text string) {
	ok, err := s.Chat.Append(ctx, poll.CommunityID, poll.VendorID, poll.VendorName, models.Vendor, text)
	if err != nil {
		s.Logger.Printf("failed to post notification for poll %s: %v", poll.ID, err)
		return
	}
	if !ok {
		s.Logger.Printf("community %s not found, notification for poll %s skipped", poll.CommunityID, poll.ID)
	}
}

// Create создаёт открытый опрос и сообщает о нём в чат сообщества.
func (s *PollService) Create(ctx context.Context, req models.PollRequest) (string, error) {
	if err := validatePoll(req); err != nil {
		return "", err
	}

	poll := models.Poll{
		ID:          newID(),
		CommunityID: req.CommunityID,
		VendorID:    req.VendorID,
		VendorName:  req.VendorName,
		Product:     strings.TrimSpace(req.Product),
		Quantity:    req.Quantity,
		Unit:        strings.TrimSpace(req.Unit),
		Deadline:    req.Deadline,
		Status:      models.OpenPoll,
		CreatedAt:   now(),
		Responses:   []models.Response{},
	}
	err := s.Repo.Polls.Update(ctx, func(polls []models.Poll) ([]models.Poll, error) {
		return append(polls, poll), nil
	})
	if err != nil {
		return "", err
	}

	s.notify(ctx, poll, fmt.Sprintf("I need %s %s of %s by %s. Please respond on poll if you can contribute.",
		formatQuantity(poll.Quantity), poll.Unit, poll.Product, poll.Deadline))
	return poll.ID, nil
}

// Respond записывает или обновляет обязательство фермера.
// Возвращает false, если опроса нет. Статус fulfilled назад не откатывается.
func (s *PollService) Respond(ctx context.Context, pollID string, req models.ResponseRequest) (bool, error) {
	_, ok, err := s.Pledge(ctx, pollID, req)
	return ok, err
}

// Pledge делает то же, что Respond, и возвращает опрос в том виде, в каком он был сохранён.
func (s *PollService) Pledge(ctx context.Context, pollID string, req models.ResponseRequest) (*models.Poll, bool, error) {
	if err := requireText("farmerId", req.FarmerID); err != nil {
		return nil, false, err
	}
	if !isFinite(req.Quantity) || req.Quantity < 0 {
		return nil, false, models.NewValidationError("quantity must be a non-negative number")
	}

	var saved *models.Poll
	var fulfilled *models.Poll
	err := s.Repo.Polls.Update(ctx, func(polls []models.Poll) ([]models.Poll, error) {
		for i := range polls {
			poll := &polls[i]
			if poll.ID != pollID {
				continue
			}
			ts := now()
			if existing := poll.ResponseBy(req.FarmerID); existing != nil {
				existing.Quantity = req.Quantity
				existing.UpdatedAt = &ts
				if existing.ReferenceCode == "" {
					existing.ReferenceCode = ReferenceCode(poll.ID, req.FarmerID)
				}
			} else {
				poll.Responses = append(poll.Responses, models.Response{
					FarmerID:      req.FarmerID,
					FarmerName:    req.FarmerName,
					Quantity:      req.Quantity,
					ReferenceCode: ReferenceCode(poll.ID, req.FarmerID),
					CreatedAt:     ts,
				})
			}

			if poll.Status == models.OpenPoll && poll.Committed() >= poll.Quantity {
				poll.Status = models.FulfilledPoll
				snapshot := *poll
				fulfilled = &snapshot
			}
			snapshot := *poll
			snapshot.Responses = append([]models.Response(nil), poll.Responses...)
			saved = &snapshot
			return polls, nil
		}
		return nil, repository.ErrNoChange
	})
	if err != nil {
		return nil, false, err
	}
	if saved == nil {
		return nil, false, nil
	}

	if fulfilled != nil {
		s.notify(ctx, *fulfilled, fmt.Sprintf("✅ Requirement for %s %s of %s has been met. Thank you to all farmers who contributed!",
			formatQuantity(fulfilled.Quantity), fulfilled.Unit, fulfilled.Product))
	}
	return saved, true, nil
}

// Close закрывает опрос. Закрыть может только создавший его закупщик, из любого статуса.
func (s *PollService) Close(ctx context.Context, pollID, vendorID string) (bool, error) {
	var closed *models.Poll
	err := s.Repo.Polls.Update(ctx, func(polls []models.Poll) ([]models.Poll, error) {
		for i := range polls {
			if polls[i].ID == pollID && polls[i].VendorID == vendorID {
				polls[i].Status = models.ClosedPoll
				snapshot := polls[i]
				closed = &snapshot
				return polls, nil
			}
		}
		return nil, repository.ErrNoChange
	})
	if err != nil {
		return false, err
	}
	if closed == nil {
		return false, nil
	}

	s.notify(ctx, *closed, fmt.Sprintf("❌ The poll for %s %s of %s has been closed.",
		formatQuantity(closed.Quantity), closed.Unit, closed.Product))
	return true, nil
}

// Delete удаляет опрос. Удалить может только создавший его закупщик.
func (s *PollService) Delete(ctx context.Context, pollID, vendorID string) (bool, error) {
	var removed *models.Poll
	err := s.Repo.Polls.Update(ctx, func(polls []models.Poll) ([]models.Poll, error) {
		for i := range polls {
			if polls[i].ID == pollID && polls[i].VendorID == vendorID {
				snapshot := polls[i]
				removed = &snapshot
				return append(polls[:i], polls[i+1:]...), nil
			}
		}
		return nil, repository.ErrNoChange
	})
	if err != nil {
		return false, err
	}
	if removed == nil {
		return false, nil
	}

	s.notify(ctx, *removed, fmt.Sprintf("The poll for %s %s of %s has been deleted.",
		formatQuantity(removed.Quantity), removed.Unit, removed.Product))
	return true, nil
}

// CommunityPolls возвращает опросы сообщества.
func (s *PollService) CommunityPolls(ctx context.Context, communityID string) ([]models.Poll, error) {
	polls, err := s.Repo.Polls.Load(ctx)
	if err != nil {
		return nil, err
	}
	result := []models.Poll{}
	for _, p := range polls {
		if p.CommunityID == communityID {
			result = append(result, p)
		}
	}
	return result, nil
}

// Get возвращает опрос по идентификатору.
func (s *PollService) Get(ctx context.Context, pollID string) (*models.Poll, bool, error) {
	polls, err := s.Repo.Polls.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range polls {
		if polls[i].ID == pollID {
			return &polls[i], true, nil
		}
	}
	return nil, false, nil
}

// UserPolls возвращает опросы, на которые ответил фермер, или опросы, созданные закупщиком.
// Закрытые опросы включаются только при includeClosed.
func (s *PollService) UserPolls(ctx context.Context, userID string, role models.Role, includeClosed bool) ([]models.Poll, error) {
	if !role.Valid() {
		return nil, models.NewValidationError("invalid role, must be farmer or vendor")
	}
	polls, err := s.Repo.Polls.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := []models.Poll{}
	for _, p := range polls {
		if p.Status == models.ClosedPoll && !includeClosed {
			continue
		}
		switch role {
		case models.Farmer:
			if p.ResponseBy(userID) != nil {
				result = append(result, p)
			}
		case models.Vendor:
			if p.VendorID == userID {
				result = append(result, p)
			}
		}
	}
	return result, nil
}
