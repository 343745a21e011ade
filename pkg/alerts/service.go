package alerts

import (
	"fmt"
	"strings"

	"price-radar/pkg/catalog"
	"price-radar/pkg/clock"
	"price-radar/pkg/logger"
	"price-radar/pkg/models"

	"github.com/google/uuid"
)

// Service manages user price alerts.
type Service struct {
	store catalog.Store
	clock clock.Clock
}

func NewService(store catalog.Store, clk clock.Clock) *Service {
	return &Service{store: store, clock: clk}
}

// Create registers an active alert for a catalog product at its current price.
func (s *Service) Create(productID string, targetPrice int64, userID string) (models.PriceAlert, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return models.PriceAlert{}, models.ErrMissingUser
	}
	if targetPrice <= 0 {
		return models.PriceAlert{}, models.ErrInvalidTargetPrice
	}
	product, ok := s.store.Product(productID)
	if !ok {
		return models.PriceAlert{}, fmt.Errorf("product %q: %w", productID, models.ErrProductNotFound)
	}

	alert := models.PriceAlert{
		ID:           uuid.NewString(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		TargetPrice:  targetPrice,
		CurrentPrice: product.Price,
		Platform:     product.Platform,
		IsActive:     true,
		CreatedAt:    s.clock.Now(),
		UserID:       userID,
	}
	s.store.AddAlert(alert)

	logger.Logger.Info().
		Str("alert_id", alert.ID).
		Str("user_id", userID).
		Str("product_id", productID).
		Int64("target_price", targetPrice).
		Msg("price alert created")
	return alert, nil
}

// List returns the alerts of one user, or every alert when userID is empty.
func (s *Service) List(userID string) []models.PriceAlert {
	all := s.store.Alerts()
	if userID == "" {
		return all
	}
	out := []models.PriceAlert{}
	for _, a := range all {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}

func (s *Service) Delete(id string) error {
	if !s.store.DeleteAlert(id) {
		return fmt.Errorf("alert %q: %w", id, models.ErrAlertNotFound)
	}
	return nil
}

// Deactivate stops an alert from being evaluated without deleting it.
func (s *Service) Deactivate(id string) (models.PriceAlert, error) {
	alert, ok := s.store.DeactivateAlert(id)
	if !ok {
		return models.PriceAlert{}, fmt.Errorf("alert %q: %w", id, models.ErrAlertNotFound)
	}
	return alert, nil
}
