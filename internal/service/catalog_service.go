package service

import (
	"containerquote/internal/engine"
	"containerquote/internal/model"
	"containerquote/internal/repository"
	"context"
	"fmt"
)

// CatalogService handles configuration CRUD for administrators. Documents
// are compiled before they are stored, so a malformed configuration never
// reaches the storefront.
type CatalogService struct {
	configRepo repository.ConfigRepo
}

// NewCatalogService creates a new catalog service
func NewCatalogService(configRepo repository.ConfigRepo) *CatalogService {
	return &CatalogService{
		configRepo: configRepo,
	}
}

// Create validates and stores a new configuration
func (s *CatalogService) Create(ctx context.Context, cfg *model.Configuration) (string, error) {
	if _, err := engine.Compile(cfg); err != nil {
		return "", err
	}
	if cfg.ProductID == "" {
		return "", fmt.Errorf("%w: missing product id", engine.ErrMalformedConfig)
	}
	return s.configRepo.Create(ctx, cfg)
}

// GetByID retrieves a configuration by ID
func (s *CatalogService) GetByID(ctx context.Context, id string) (*model.Configuration, error) {
	return s.configRepo.GetByID(ctx, id)
}

// GetByProduct retrieves the configuration authored for a product
func (s *CatalogService) GetByProduct(ctx context.Context, productID string) (*model.Configuration, error) {
	return s.configRepo.GetByProduct(ctx, productID)
}

// List retrieves all configurations
func (s *CatalogService) List(ctx context.Context) ([]*model.Configuration, error) {
	return s.configRepo.List(ctx)
}

// Update validates and replaces an existing configuration
func (s *CatalogService) Update(ctx context.Context, cfg *model.Configuration) error {
	if _, err := engine.Compile(cfg); err != nil {
		return err
	}
	return s.configRepo.Update(ctx, cfg)
}

// Delete removes a configuration
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.configRepo.Delete(ctx, id)
}
