package service

import (
	"context"
	"fmt"

	"approvals/internal/model"
	"approvals/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	DefaultCode   string          `json:"default_code"`
	UoM           string          `json:"uom"`
	PurchaseUoM   string          `json:"purchase_uom"`
	StandardPrice decimal.Decimal `json:"standard_price"`
	IsStorable    bool            `json:"is_storable"`
}

type LocationAvailability struct {
	LocationID   string          `json:"location_id"`
	LocationName string          `json:"location_name"`
	Available    decimal.Decimal `json:"available"`
}

type ProductAvailabilityResponse struct {
	Product   ProductResponse        `json:"product"`
	Total     decimal.Decimal        `json:"total_available"`
	Locations []LocationAvailability `json:"locations"`
}

type VendorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CatalogService interface {
	SearchProducts(ctx context.Context, term string, limit int) ([]ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
	ProductAvailability(ctx context.Context, id string, companyID *uuid.UUID) (*ProductAvailabilityResponse, error)
	SearchVendors(ctx context.Context, term string, limit int) ([]VendorResponse, error)
	FindOrCreateVendor(ctx context.Context, actor Actor, in VendorInput) (*VendorResponse, error)
}

type catalogService struct {
	products  repository.ProductRepository
	partners  repository.PartnerRepository
	locations repository.LocationRepository
	stock     repository.StockRepository
	trusted   *TrustedOps
	txManager repository.TransactionManager
}

func NewCatalogService(
	products repository.ProductRepository,
	partners repository.PartnerRepository,
	locations repository.LocationRepository,
	stock repository.StockRepository,
	trusted *TrustedOps,
	txManager repository.TransactionManager,
) CatalogService {
	return &catalogService{
		products:  products,
		partners:  partners,
		locations: locations,
		stock:     stock,
		trusted:   trusted,
		txManager: txManager,
	}
}

func (s *catalogService) SearchProducts(ctx context.Context, term string, limit int) ([]ProductResponse, error) {
	products, err := s.products.Search(ctx, term, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}
	return res, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(*product)
	return &resp, nil
}

// ProductAvailability lists unreserved stock per internal location. Locations
// without stock are left out.
func (s *catalogService) ProductAvailability(ctx context.Context, id string, companyID *uuid.UUID) (*ProductAvailabilityResponse, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	locations, err := s.locations.ListInternal(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	resp := &ProductAvailabilityResponse{
		Product:   toProductResponse(*product),
		Total:     decimal.Zero,
		Locations: make([]LocationAvailability, 0),
	}
	for _, loc := range locations {
		available, err := s.stock.AvailableQuantity(ctx, product.ID, loc.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read availability: %w", err)
		}
		if !available.IsPositive() {
			continue
		}
		resp.Total = resp.Total.Add(available)
		resp.Locations = append(resp.Locations, LocationAvailability{
			LocationID:   loc.ID.String(),
			LocationName: loc.CompleteName,
			Available:    available,
		})
	}
	return resp, nil
}

func (s *catalogService) SearchVendors(ctx context.Context, term string, limit int) ([]VendorResponse, error) {
	vendors, err := s.partners.SearchVendors(ctx, term, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to search vendors: %w", err)
	}
	res := make([]VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		res = append(res, toVendorResponse(v))
	}
	return res, nil
}

func (s *catalogService) FindOrCreateVendor(ctx context.Context, actor Actor, in VendorInput) (*VendorResponse, error) {
	var vendor *model.Partner
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		vendor, err = s.trusted.EnsureVendor(txCtx, actor, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toVendorResponse(*vendor)
	return &resp, nil
}

func (s *catalogService) loadProduct(ctx context.Context, raw string) (*model.Product, error) {
	id, err := parseID(raw, "product id")
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	return product, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func toProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		DefaultCode:   p.DefaultCode,
		UoM:           p.UoM,
		PurchaseUoM:   p.PurchaseUoM,
		StandardPrice: p.StandardPrice,
		IsStorable:    p.IsStorable,
	}
}

func toVendorResponse(p model.Partner) VendorResponse {
	return VendorResponse{ID: p.ID.String(), Name: p.Name, Email: p.Email, Phone: p.Phone}
}
