package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"approvals/internal/model"
	"approvals/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VendorInput names a vendor that may not exist yet.
type VendorInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// TrustedOps is the only path allowed to create master data on behalf of a
// requester. Every creation is audited.
type TrustedOps struct {
	products      repository.ProductRepository
	partners      repository.PartnerRepository
	supplierInfos repository.SupplierInfoRepository
	locations     repository.LocationRepository
	audit         AuditService
	mainStockCode string
}

func NewTrustedOps(
	products repository.ProductRepository,
	partners repository.PartnerRepository,
	supplierInfos repository.SupplierInfoRepository,
	locations repository.LocationRepository,
	audit AuditService,
	mainStockCode string,
) *TrustedOps {
	return &TrustedOps{
		products:      products,
		partners:      partners,
		supplierInfos: supplierInfos,
		locations:     locations,
		audit:         audit,
		mainStockCode: mainStockCode,
	}
}

// EnsureProduct finds a product by name or creates a purchasable, storable one.
func (t *TrustedOps) EnsureProduct(ctx context.Context, actor Actor, name, uom string, price decimal.Decimal) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("product name is required")
	}

	existing, err := t.products.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	if uom == "" {
		uom = model.DefaultUoM
	}
	product := &model.Product{
		Name:          name,
		UoM:           uom,
		PurchaseUoM:   uom,
		StandardPrice: price,
		PurchaseOK:    true,
		IsStorable:    true,
	}
	if err := t.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err := t.audit.Record(ctx, actor, AuditEntry{
		Action:     model.ActionCreateProduct,
		EntityID:   product.ID.String(),
		EntityName: product.Name,
		Details:    map[string]interface{}{"uom": uom, "standard_price": price.String()},
	}); err != nil {
		return nil, err
	}
	return product, nil
}

// EnsureVendor finds a company partner by case-insensitive name or creates a supplier.
func (t *TrustedOps) EnsureVendor(ctx context.Context, actor Actor, in VendorInput) (*model.Partner, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidInput("vendor name is required")
	}

	existing, err := t.partners.FindCompanyByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up vendor: %w", err)
	}

	vendor := &model.Partner{
		Name:         name,
		Type:         model.PartnerTypeSupplier,
		IsCompany:    true,
		SupplierRank: 1,
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		IsActive:     true,
	}
	if err := t.partners.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	if err := t.audit.Record(ctx, actor, AuditEntry{
		Action:     model.ActionCreateVendor,
		EntityID:   vendor.ID.String(),
		EntityName: vendor.Name,
	}); err != nil {
		return nil, err
	}
	return vendor, nil
}

// EnsureSupplierInfo links vendor and product with a minimum quantity of 1.
func (t *TrustedOps) EnsureSupplierInfo(ctx context.Context, actor Actor, vendorID, productID uuid.UUID, price decimal.Decimal) (*model.SupplierInfo, error) {
	existing, err := t.supplierInfos.Find(ctx, vendorID, productID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up supplier info: %w", err)
	}

	info := &model.SupplierInfo{
		PartnerID: vendorID,
		ProductID: productID,
		MinQty:    decimal.NewFromInt(1),
		Price:     price,
		CompanyID: actor.CompanyID,
	}
	if err := t.supplierInfos.Create(ctx, info); err != nil {
		return nil, fmt.Errorf("failed to create supplier info: %w", err)
	}

	if err := t.audit.Record(ctx, actor, AuditEntry{
		Action:   model.ActionCreateSupplierInfo,
		EntityID: info.ID.String(),
		Details: map[string]interface{}{
			"partner_id": vendorID.String(),
			"product_id": productID.String(),
			"price":      price.String(),
		},
	}); err != nil {
		return nil, err
	}
	return info, nil
}

// EnsureWorkstation finds an internal location by name or creates it under the main stock location.
func (t *TrustedOps) EnsureWorkstation(ctx context.Context, actor Actor, name string) (*model.StockLocation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("workstation name is required")
	}

	existing, err := t.locations.FindInternalByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up workstation: %w", err)
	}

	parent, err := t.locations.FindByCode(ctx, t.mainStockCode)
	if err != nil {
		return nil, notFound(err, "main stock location")
	}

	location := &model.StockLocation{
		Name:         name,
		CompleteName: parent.CompleteName + "/" + name,
		Usage:        model.LocationUsageInternal,
		ParentID:     &parent.ID,
		CompanyID:    parent.CompanyID,
	}
	if err := t.locations.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create workstation: %w", err)
	}

	if err := t.audit.Record(ctx, actor, AuditEntry{
		Action:     model.ActionCreateWorkstation,
		EntityID:   location.ID.String(),
		EntityName: location.CompleteName,
	}); err != nil {
		return nil, err
	}
	return location, nil
}
