package services

import (
	"context"
	"fmt"

	"github.com/senyabanana/farm-commons/internal/geo"
	"github.com/senyabanana/farm-commons/internal/models"
	"github.com/senyabanana/farm-commons/internal/repository"
)

// RadiusKm - радиус сообщества вокруг закупщика, граница включительно.
const RadiusKm = 50.0

type CommunityService struct {
	Repo *repository.Repositories
}

// NewCommunityService создаёт новый экземпляр CommunityService.
func NewCommunityService(repo *repository.Repositories) *CommunityService {
	return &CommunityService{Repo: repo}
}

func farmerMember(farmer models.User, distanceKm float64) models.Member {
	d := geo.Round2(distanceKm)
	return models.Member{
		ID:       farmer.ID,
		Name:     farmer.Name,
		Type:     models.Farmer,
		Distance: &d,
	}
}

// OnVendorRegistered создаёт сообщество закупщика и добавляет в него всех фермеров в радиусе.
func (s *CommunityService) OnVendorRegistered(ctx context.Context, vendor models.User) (*models.Community, error) {
	farmers, err := s.Repo.Farmers.Load(ctx)
	if err != nil {
		return nil, err
	}

	community := models.Community{
		ID:         newID(),
		Name:       fmt.Sprintf("%s's Community", vendor.Name),
		VendorID:   vendor.ID,
		VendorName: vendor.Name,
		Members:    []models.Member{{ID: vendor.ID, Name: vendor.Name, Type: models.Vendor}},
		Messages:   []models.Message{},
		CreatedAt:  now(),
	}
	for _, farmer := range farmers {
		distance := geo.DistanceKm(vendor.Latitude, vendor.Longitude, farmer.Latitude, farmer.Longitude)
		if geo.Within(distance, RadiusKm) && !community.HasMember(farmer.ID) {
			community.Members = append(community.Members, farmerMember(farmer, distance))
		}
	}

	err = s.Repo.Communities.Update(ctx, func(communities []models.Community) ([]models.Community, error) {
		return append(communities, community), nil
	})
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// OnFarmerRegistered добавляет фермера во все сообщества в радиусе и возвращает их число.
// Фермер, уже состоящий в сообществе, повторно не добавляется.
func (s *CommunityService) OnFarmerRegistered(ctx context.Context, farmer models.User) (int, error) {
	vendors, err := s.Repo.Vendors.Load(ctx)
	if err != nil {
		return 0, err
	}
	vendorByID := make(map[string]models.User, len(vendors))
	for _, v := range vendors {
		vendorByID[v.ID] = v
	}

	joined := 0
	err = s.Repo.Communities.Update(ctx, func(communities []models.Community) ([]models.Community, error) {
		for i := range communities {
			vendor, ok := vendorByID[communities[i].VendorID]
			if !ok {
				continue
			}
			distance := geo.DistanceKm(vendor.Latitude, vendor.Longitude, farmer.Latitude, farmer.Longitude)
			if !geo.Within(distance, RadiusKm) || communities[i].HasMember(farmer.ID) {
				continue
			}
			communities[i].Members = append(communities[i].Members, farmerMember(farmer, distance))
			joined++
		}
		if joined == 0 {
			return nil, repository.ErrNoChange
		}
		return communities, nil
	})
	if err != nil {
		return 0, err
	}
	return joined, nil
}

// Get возвращает сообщество по идентификатору.
func (s *CommunityService) Get(ctx context.Context, communityID string) (*models.Community, bool, error) {
	communities, err := s.Repo.Communities.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range communities {
		if communities[i].ID == communityID {
			return &communities[i], true, nil
		}
	}
	return nil, false, nil
}

// UserCommunities возвращает сообщества, в которых состоит пользователь.
func (s *CommunityService) UserCommunities(ctx context.Context, userID string) ([]models.CommunitySummary, error) {
	communities, err := s.Repo.Communities.Load(ctx)
	if err != nil {
		return nil, err
	}

	summaries := []models.CommunitySummary{}
	for _, c := range communities {
		if !c.HasMember(userID) {
			continue
		}
		summaries = append(summaries, models.CommunitySummary{
			ID:           c.ID,
			Name:         c.Name,
			VendorName:   c.VendorName,
			MemberCount:  len(c.Members),
			MessageCount: len(c.Messages),
		})
	}
	return summaries, nil
}
