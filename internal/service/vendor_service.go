package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prs-backend/internal/model"
	"prs-backend/internal/repository"

	"gorm.io/gorm"
)

// --- DTOs ---

type CreateVendorRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
}

type UpdateVendorRequest struct {
	ID      string `json:"id" binding:"required"`
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
}

// --- Interface ---

type VendorService interface {
	CreateVendor(ctx context.Context, req CreateVendorRequest) (*model.Vendor, error)
	GetVendorByID(ctx context.Context, id string) (*model.Vendor, error)
	ListVendors(ctx context.Context) ([]model.Vendor, error)
	UpdateVendor(ctx context.Context, id string, req UpdateVendorRequest) error
	DeleteVendor(ctx context.Context, id string) error
}

type vendorService struct {
	repo repository.VendorRepository
}

func NewVendorService(repo repository.VendorRepository) VendorService {
	return &vendorService{repo: repo}
}

// requireNonBlank rejects values that pass required-binding but are all
// whitespace.
func requireNonBlank(fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be blank: %w", name, ErrValidation)
		}
	}
	return nil
}

func (s *vendorService) CreateVendor(ctx context.Context, req CreateVendorRequest) (*model.Vendor, error) {
	if err := requireNonBlank(map[string]string{
		"code":    req.Code,
		"name":    req.Name,
		"address": req.Address,
		"city":    req.City,
		"state":   req.State,
		"zip":     req.Zip,
	}); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("vendor code %q already exists: %w", req.Code, ErrValidation)
	}

	vendor := &model.Vendor{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Zip:     req.Zip,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) GetVendorByID(ctx context.Context, id string) (*model.Vendor, error) {
	vendorID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	vendor, err := s.repo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vendor %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	return s.repo.List(ctx)
}

func (s *vendorService) UpdateVendor(ctx context.Context, id string, req UpdateVendorRequest) error {
	if req.ID != id {
		return ErrIDMismatch
	}

	vendor, err := s.GetVendorByID(ctx, id)
	if err != nil {
		return err
	}

	if err := requireNonBlank(map[string]string{
		"code":    req.Code,
		"name":    req.Name,
		"address": req.Address,
		"city":    req.City,
		"state":   req.State,
		"zip":     req.Zip,
	}); err != nil {
		return err
	}

	if req.Code != vendor.Code {
		if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
			return fmt.Errorf("vendor code %q already exists: %w", req.Code, ErrValidation)
		}
	}

	vendor.Code = req.Code
	vendor.Name = req.Name
	vendor.Address = req.Address
	vendor.City = req.City
	vendor.State = req.State
	vendor.Zip = req.Zip
	vendor.Phone = req.Phone
	vendor.Email = req.Email

	if err := s.repo.Update(ctx, vendor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("vendor %s: %w", id, ErrConflict)
		}
		return err
	}
	return nil
}

func (s *vendorService) DeleteVendor(ctx context.Context, id string) error {
	vendor, err := s.GetVendorByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, vendor.ID)
}
