package services

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"testing"

	"github.com/senyabanana/farm-commons/internal/geo"
	"github.com/senyabanana/farm-commons/internal/models"
	"github.com/senyabanana/farm-commons/internal/repository"
	"github.com/senyabanana/farm-commons/internal/storage"
)

// Координаты закупщика в тестах.
const (
	baseLat = 12.9716
	baseLon = 77.5946
)

type testEnv struct {
	repo        *repository.Repositories
	users       *UserService
	communities *CommunityService
	chat        *ChatService
	polls       *PollService
	market      *MarketService
	tips        *TipService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := repository.New(storage.NewMemory())
	logger := log.New(io.Discard, "", 0)
	communities := NewCommunityService(repo)
	chat := NewChatService(repo)
	return &testEnv{
		repo:        repo,
		users:       NewUserService(repo, communities),
		communities: communities,
		chat:        chat,
		polls:       NewPollService(repo, chat, logger),
		market:      NewMarketService(repo),
		tips:        NewTipService(repo),
	}
}

// latForDistance возвращает широту точки к северу от закупщика на расстоянии distanceKm.
func latForDistance(distanceKm float64) float64 {
	return baseLat + distanceKm/geo.EarthRadiusKm*180/math.Pi
}

// latAtBoundary возвращает широту, расстояние до которой не превышает радиус, но округляется до него.
func latAtBoundary() float64 {
	lat := latForDistance(RadiusKm)
	for geo.DistanceKm(baseLat, baseLon, lat, baseLon) > RadiusKm {
		lat = math.Nextafter(lat, baseLat)
	}
	return lat
}

func (e *testEnv) register(t *testing.T, role models.Role, name string, lat, lon float64) string {
	t.Helper()
	id, err := e.users.Register(context.Background(), models.UserRequest{
		Role:      role,
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		t.Fatalf("register %s %s: %v", role, name, err)
	}
	return id
}

// vendorCommunity регистрирует закупщика и возвращает его id и id его сообщества.
func (e *testEnv) vendorCommunity(t *testing.T, name string) (string, string) {
	t.Helper()
	vendorID := e.register(t, models.Vendor, name, baseLat, baseLon)
	communities, err := e.communities.UserCommunities(context.Background(), vendorID)
	if err != nil {
		t.Fatalf("user communities: %v", err)
	}
	if len(communities) != 1 {
		t.Fatalf("len(communities) = %d, want 1", len(communities))
	}
	return vendorID, communities[0].ID
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var errorResponse *models.ErrorResponse
	if !errors.As(err, &errorResponse) {
		t.Fatalf("error = %v, want *models.ErrorResponse", err)
	}
	if errorResponse.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", errorResponse.StatusCode, http.StatusBadRequest)
	}
}

func countMessages(t *testing.T, e *testEnv, communityID, prefix string) int {
	t.Helper()
	messages, ok, err := e.chat.Messages(context.Background(), communityID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if !ok {
		t.Fatalf("community %s not found", communityID)
	}
	n := 0
	for _, m := range messages {
		if strings.HasPrefix(m.Content, prefix) {
			n++
		}
	}
	return n
}
