package service

import (
	"context"
	"errors"
	"fmt"

	"address-api/internal/geo"
	"address-api/internal/metrics"
	"address-api/internal/models"
	"address-api/internal/validation"
)

// AddressService contains the business logic for address CRUD and proximity queries
type AddressService struct {
	repo AddressRepository
}

// AddressRepository interface for dependency injection
type AddressRepository interface {
	Create(ctx context.Context, a models.NewAddress) (models.Address, error)
	Get(ctx context.Context, id int64) (models.Address, error)
	Update(ctx context.Context, id int64, u models.AddressUpdate) (models.Address, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]models.Address, error)
}

// NewAddressService creates a new address service
func NewAddressService(repo AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// Create validates and stores a new address
func (s *AddressService) Create(ctx context.Context, a models.NewAddress) (models.Address, error) {
	if err := validation.CheckNewAddress(a); err != nil {
		return models.Address{}, err
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return models.Address{}, fmt.Errorf("service: failed to create address: %w", err)
	}
	return created, nil
}

// Get returns the address with the given id
func (s *AddressService) Get(ctx context.Context, id int64) (models.Address, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Address{}, wrap("get", id, err)
	}
	return a, nil
}

// Update applies the supplied fields of u to an existing address
func (s *AddressService) Update(ctx context.Context, id int64, u models.AddressUpdate) (models.Address, error) {
	if err := validation.CheckUpdate(u); err != nil {
		return models.Address{}, err
	}

	updated, err := s.repo.Update(ctx, id, u)
	if err != nil {
		return models.Address{}, wrap("update", id, err)
	}
	return updated, nil
}

// Delete removes an address
func (s *AddressService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrap("delete", id, err)
	}
	return nil
}

// WithinDistance returns every stored address within q.Distance meters of q.Center.
// It scans the whole table; there is no spatial index.
func (s *AddressService) WithinDistance(ctx context.Context, q models.ProximityQuery) ([]models.Address, error) {
	if err := validation.CheckProximityQuery(q); err != nil {
		return nil, err
	}

	candidates, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list addresses: %w", err)
	}

	matched := geo.Filter(q.Center, q.Distance, candidates)
	metrics.ObserveProximityScan(len(candidates), len(matched))
	return matched, nil
}

func wrap(op string, id int64, err error) error {
	if errors.Is(err, models.ErrAddressNotFound) {
		return err
	}
	return fmt.Errorf("service: failed to %s address %d: %w", op, id, err)
}
