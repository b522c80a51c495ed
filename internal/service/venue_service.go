package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/venue-next/internal/config"
	"github.com/venue-next/internal/models"
	"github.com/venue-next/internal/repository"
)

var codePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// VenueService 场馆管理服务
type VenueService struct {
	cfg       *config.Config
	venueRepo repository.VenueRepository
}

// NewVenueService 创建场馆服务
func NewVenueService(cfg *config.Config, venueRepo repository.VenueRepository) *VenueService {
	return &VenueService{cfg: cfg, venueRepo: venueRepo}
}

// VenueInput 创建/更新场馆输入
type VenueInput struct {
	Code     string
	Name     string
	Currency string
	Timezone string
	Address  string
	IsActive *bool
}

// Get 获取场馆
func (s *VenueService) Get(id uint) (*models.Venue, error) {
	if id == 0 {
		return nil, ErrVenueNotFound
	}
	venue, err := s.venueRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}
	return venue, nil
}

// GetActive 获取启用中的场馆
func (s *VenueService) GetActive(id uint) (*models.Venue, error) {
	venue, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !venue.IsActive {
		return nil, ErrVenueInactive
	}
	return venue, nil
}

// List 场馆列表
func (s *VenueService) List(filter repository.VenueListFilter) ([]models.Venue, int64, error) {
	return s.venueRepo.List(filter)
}

// Create 创建场馆
func (s *VenueService) Create(input VenueInput) (*models.Venue, error) {
	venue := &models.Venue{IsActive: true}
	if err := s.apply(venue, input); err != nil {
		return nil, err
	}
	existing, err := s.venueRepo.GetByCode(venue.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrVenueCodeExists
	}
	if err := s.venueRepo.Create(venue); err != nil {
		return nil, err
	}
	if !venue.IsActive {
		if err := s.venueRepo.Update(venue); err != nil {
			return nil, err
		}
	}
	return venue, nil
}

// Update 更新场馆
func (s *VenueService) Update(id uint, input VenueInput) (*models.Venue, error) {
	venue, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	oldCode := venue.Code
	if err := s.apply(venue, input); err != nil {
		return nil, err
	}
	if venue.Code != oldCode {
		existing, err := s.venueRepo.GetByCode(venue.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != venue.ID {
			return nil, ErrVenueCodeExists
		}
	}
	if err := s.venueRepo.Update(venue); err != nil {
		return nil, err
	}
	return venue, nil
}

func (s *VenueService) apply(venue *models.Venue, input VenueInput) error {
	code := strings.ToLower(strings.TrimSpace(input.Code))
	name := strings.TrimSpace(input.Name)
	if !codePattern.MatchString(code) || name == "" || len([]rune(name)) > 120 {
		return ErrVenueInvalid
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = s.cfg.Pricing.Currency()
	}
	if len(currency) != 3 {
		return ErrVenueInvalid
	}

	timezone := strings.TrimSpace(input.Timezone)
	if timezone == "" {
		timezone = s.cfg.Pricing.Timezone()
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return ErrVenueInvalid
	}

	venue.Code = code
	venue.Name = name
	venue.Currency = currency
	venue.Timezone = timezone
	venue.Address = strings.TrimSpace(input.Address)
	if input.IsActive != nil {
		venue.IsActive = *input.IsActive
	}
	return nil
}
