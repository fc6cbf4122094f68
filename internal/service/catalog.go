package service

import (
	"context"
	"io"

	"order-backoffice/internal/dto"
	"order-backoffice/internal/model"
	"order-backoffice/internal/repository"
	"order-backoffice/internal/storage"

	"github.com/google/uuid"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]*model.Product, error)
	SaveProduct(ctx context.Context, req dto.ProductRequest) (*model.Product, error)
	AttachImage(ctx context.Context, productID, filename string, src io.Reader) (*model.Product, error)
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
	uploader    storage.Uploader
}

func NewCatalogService(productRepo repository.ProductRepository, uploader storage.Uploader) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
		uploader:    uploader,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *catalogServiceImpl) SaveProduct(ctx context.Context, req dto.ProductRequest) (*model.Product, error) {
	product := &model.Product{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	if err := s.productRepo.Upsert(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogServiceImpl) AttachImage(ctx context.Context, productID, filename string, src io.Reader) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	ref, err := s.uploader.Save("products", filename, src)
	if err != nil {
		return nil, err
	}

	product.ImageURL = ref
	if err := s.productRepo.Upsert(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
