package service

import (
	"context"
	"errors"
	"fmt"

	"prs-backend/internal/model"
	"prs-backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateProductRequest struct {
	VendorID   string  `json:"vendor_id" binding:"required"`
	PartNumber string  `json:"part_number" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	Unit       string  `json:"unit"`
	PhotoPath  string  `json:"photo_path"`
}

type UpdateProductRequest struct {
	ID         string  `json:"id" binding:"required"`
	VendorID   string  `json:"vendor_id" binding:"required"`
	PartNumber string  `json:"part_number" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	Unit       string  `json:"unit"`
	PhotoPath  string  `json:"photo_path"`
}

// --- Interface ---

type ProductService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error)
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) error
	DeleteProduct(ctx context.Context, id string) error
}

type productService struct {
	repo       repository.ProductRepository
	vendorRepo repository.VendorRepository
}

func NewProductService(repo repository.ProductRepository, vendorRepo repository.VendorRepository) ProductService {
	return &productService{repo: repo, vendorRepo: vendorRepo}
}

func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	vendorID, err := parseID(req.VendorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.vendorRepo.FindByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vendor %s does not exist: %w", req.VendorID, ErrValidation)
		}
		return nil, err
	}

	product := &model.Product{
		VendorID:   vendorID,
		PartNumber: req.PartNumber,
		Name:       req.Name,
		Price:      decimal.NewFromFloat(req.Price),
		Unit:       req.Unit,
		PhotoPath:  req.PhotoPath,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.List(ctx)
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) error {
	if req.ID != id {
		return ErrIDMismatch
	}

	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return err
	}

	vendorID, err := parseID(req.VendorID)
	if err != nil {
		return err
	}
	if _, err := s.vendorRepo.FindByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("vendor %s does not exist: %w", req.VendorID, ErrValidation)
		}
		return err
	}

	product.VendorID = vendorID
	product.PartNumber = req.PartNumber
	product.Name = req.Name
	product.Price = decimal.NewFromFloat(req.Price)
	product.Unit = req.Unit
	product.PhotoPath = req.PhotoPath

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %s: %w", id, ErrConflict)
		}
		return err
	}
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, product.ID)
}
