// Package seed loads reference data (categories, budgets, locations, products
// and opening stock) from a YAML file and applies it idempotently.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"approvals/internal/model"
	"approvals/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type Category struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	ApprovalType string `yaml:"approval_type"`
	HasDate      bool   `yaml:"has_date"`
	HasPeriod    string `yaml:"has_period"`
	HasAmount    bool   `yaml:"has_amount"`
	HasQuantity  bool   `yaml:"has_quantity"`
	HasLocation  bool   `yaml:"has_location"`
	HasReference bool   `yaml:"has_reference"`
	HasPartner   bool   `yaml:"has_partner"`
	HasProduct   bool   `yaml:"has_product"`
}

type Budget struct {
	Name      string `yaml:"name"`
	Code      string `yaml:"code"`
	Ceiling   string `yaml:"ceiling"` // empty leaves the ceiling unset
	Unlimited bool   `yaml:"unlimited"`
}

type Location struct {
	Code   string `yaml:"code"`
	Name   string `yaml:"name"`
	Usage  string `yaml:"usage"`
	Parent string `yaml:"parent"` // code of an earlier location
}

type Product struct {
	Name          string `yaml:"name"`
	DefaultCode   string `yaml:"default_code"`
	UoM           string `yaml:"uom"`
	StandardPrice string `yaml:"standard_price"`
}

type Quant struct {
	Product  string `yaml:"product"`
	Location string `yaml:"location"`
	Quantity string `yaml:"quantity"`
}

// Data is the decoded seed file.
type Data struct {
	ApprovalCategories []Category `yaml:"approval_categories"`
	BudgetCategories   []Budget   `yaml:"budget_categories"`
	Locations          []Location `yaml:"locations"`
	Products           []Product  `yaml:"products"`
	Quants             []Quant    `yaml:"quants"`
}

// ParseYAML decodes and validates seed data.
func ParseYAML(data []byte) (Data, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Data{}, fmt.Errorf("seed: payload is empty")
	}
	var out Data
	if err := yaml.Unmarshal(data, &out); err != nil {
		return Data{}, fmt.Errorf("seed: decode: %w", err)
	}
	if err := out.validate(); err != nil {
		return Data{}, err
	}
	return out, nil
}

// LoadReader reads seed data from an io.Reader.
func LoadReader(r io.Reader) (Data, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Data{}, fmt.Errorf("seed: read: %w", err)
	}
	return ParseYAML(content)
}

// LoadFile loads seed data from path.
func LoadFile(path string) (Data, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("seed: read %s: %w", path, err)
	}
	data, parseErr := ParseYAML(content)
	if parseErr != nil {
		return Data{}, fmt.Errorf("seed: %s: %w", path, parseErr)
	}
	return data, nil
}

func (d Data) validate() error {
	for i, c := range d.ApprovalCategories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("seed: approval_categories[%d]: name is required", i)
		}
		switch c.ApprovalType {
		case "", model.ApprovalTypePurchase, model.ApprovalTypeOther:
		default:
			return fmt.Errorf("seed: approval_categories[%d]: unknown approval_type %q", i, c.ApprovalType)
		}
	}
	for i, b := range d.BudgetCategories {
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("seed: budget_categories[%d]: name is required", i)
		}
		if b.Ceiling != "" {
			if _, err := decimal.NewFromString(b.Ceiling); err != nil {
				return fmt.Errorf("seed: budget_categories[%d]: ceiling: %w", i, err)
			}
		}
	}
	codes := make(map[string]bool, len(d.Locations))
	for i, l := range d.Locations {
		if l.Code == "" || l.Name == "" {
			return fmt.Errorf("seed: locations[%d]: code and name are required", i)
		}
		if l.Parent != "" && !codes[l.Parent] {
			return fmt.Errorf("seed: locations[%d]: parent %q must be declared before it", i, l.Parent)
		}
		codes[l.Code] = true
	}
	for i, p := range d.Products {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("seed: products[%d]: name is required", i)
		}
		if p.StandardPrice != "" {
			if _, err := decimal.NewFromString(p.StandardPrice); err != nil {
				return fmt.Errorf("seed: products[%d]: standard_price: %w", i, err)
			}
		}
	}
	for i, q := range d.Quants {
		if q.Product == "" || q.Location == "" {
			return fmt.Errorf("seed: quants[%d]: product and location are required", i)
		}
		if _, err := decimal.NewFromString(q.Quantity); err != nil {
			return fmt.Errorf("seed: quants[%d]: quantity: %w", i, err)
		}
	}
	return nil
}

// Result counts the rows Apply created.
type Result struct {
	Categories int
	Budgets    int
	Locations  int
	Products   int
	Quants     int
}

// Seeder writes seed data through the repositories. Existing rows are left untouched.
type Seeder struct {
	txManager  repository.TransactionManager
	categories repository.CategoryRepository
	budgets    repository.BudgetRepository
	locations  repository.LocationRepository
	products   repository.ProductRepository
	stock      repository.StockRepository
	log        zerolog.Logger
}

func NewSeeder(
	txManager repository.TransactionManager,
	categories repository.CategoryRepository,
	budgets repository.BudgetRepository,
	locations repository.LocationRepository,
	products repository.ProductRepository,
	stock repository.StockRepository,
	log zerolog.Logger,
) *Seeder {
	return &Seeder{
		txManager:  txManager,
		categories: categories,
		budgets:    budgets,
		locations:  locations,
		products:   products,
		stock:      stock,
		log:        log,
	}
}

// Apply creates whatever is missing in one transaction.
func (s *Seeder) Apply(ctx context.Context, data Data) (Result, error) {
	var res Result
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		res = Result{}
		if err := s.applyCategories(txCtx, data.ApprovalCategories, &res); err != nil {
			return err
		}
		if err := s.applyBudgets(txCtx, data.BudgetCategories, &res); err != nil {
			return err
		}
		if err := s.applyLocations(txCtx, data.Locations, &res); err != nil {
			return err
		}
		if err := s.applyProducts(txCtx, data.Products, &res); err != nil {
			return err
		}
		return s.applyQuants(txCtx, data.Quants, &res)
	})
	if err != nil {
		return Result{}, err
	}

	s.log.Info().
		Int("categories", res.Categories).
		Int("budgets", res.Budgets).
		Int("locations", res.Locations).
		Int("products", res.Products).
		Int("quants", res.Quants).
		Msg("seed data applied")
	return res, nil
}

func (s *Seeder) applyCategories(ctx context.Context, items []Category, res *Result) error {
	for _, c := range items {
		_, err := s.categories.FindByName(ctx, c.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed: find category %s: %w", c.Name, err)
		}

		category := &model.ApprovalCategory{
			Name:         c.Name,
			Description:  c.Description,
			ApprovalType: orDefault(c.ApprovalType, model.ApprovalTypeOther),
			HasDate:      c.HasDate,
			HasPeriod:    orDefault(c.HasPeriod, model.PeriodNo),
			HasAmount:    c.HasAmount,
			HasQuantity:  c.HasQuantity,
			HasLocation:  c.HasLocation,
			HasReference: c.HasReference,
			HasPartner:   c.HasPartner,
			HasProduct:   c.HasProduct,
			IsActive:     true,
		}
		if err := s.categories.Create(ctx, category); err != nil {
			return fmt.Errorf("seed: create category %s: %w", c.Name, err)
		}
		res.Categories++
	}
	return nil
}

func (s *Seeder) applyBudgets(ctx context.Context, items []Budget, res *Result) error {
	for _, b := range items {
		_, err := s.budgets.FindByName(ctx, b.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed: find budget %s: %w", b.Name, err)
		}

		budget := &model.BudgetCategory{Name: b.Name, Code: b.Code, Unlimited: b.Unlimited}
		if b.Ceiling != "" {
			budget.Ceiling = decimal.NewNullDecimal(decimal.RequireFromString(b.Ceiling))
		}
		if err := s.budgets.Create(ctx, budget); err != nil {
			return fmt.Errorf("seed: create budget %s: %w", b.Name, err)
		}
		res.Budgets++
	}
	return nil
}

func (s *Seeder) applyLocations(ctx context.Context, items []Location, res *Result) error {
	for _, l := range items {
		_, err := s.locations.FindByCode(ctx, l.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed: find location %s: %w", l.Code, err)
		}

		location := &model.StockLocation{
			Name:         l.Name,
			CompleteName: l.Name,
			Code:         l.Code,
			Usage:        orDefault(l.Usage, model.LocationUsageInternal),
		}
		if l.Parent != "" {
			parent, err := s.locations.FindByCode(ctx, l.Parent)
			if err != nil {
				return fmt.Errorf("seed: parent location %s: %w", l.Parent, err)
			}
			location.ParentID = &parent.ID
			location.CompanyID = parent.CompanyID
			location.CompleteName = parent.CompleteName + "/" + l.Name
		}
		if err := s.locations.Create(ctx, location); err != nil {
			return fmt.Errorf("seed: create location %s: %w", l.Code, err)
		}
		res.Locations++
	}
	return nil
}

func (s *Seeder) applyProducts(ctx context.Context, items []Product, res *Result) error {
	for _, p := range items {
		_, err := s.products.FindByName(ctx, p.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed: find product %s: %w", p.Name, err)
		}

		uom := orDefault(p.UoM, model.DefaultUoM)
		product := &model.Product{
			Name:        p.Name,
			DefaultCode: p.DefaultCode,
			UoM:         uom,
			PurchaseUoM: uom,
			PurchaseOK:  true,
			IsStorable:  true,
		}
		if p.StandardPrice != "" {
			product.StandardPrice = decimal.RequireFromString(p.StandardPrice)
		}
		if err := s.products.Create(ctx, product); err != nil {
			return fmt.Errorf("seed: create product %s: %w", p.Name, err)
		}
		res.Products++
	}
	return nil
}

// applyQuants only sets opening stock where the product has none at the location.
func (s *Seeder) applyQuants(ctx context.Context, items []Quant, res *Result) error {
	for _, q := range items {
		product, err := s.products.FindByName(ctx, q.Product)
		if err != nil {
			return fmt.Errorf("seed: quant product %s: %w", q.Product, err)
		}
		location, err := s.locations.FindByCode(ctx, q.Location)
		if err != nil {
			return fmt.Errorf("seed: quant location %s: %w", q.Location, err)
		}

		count, err := s.stock.CountQuants(ctx, product.ID, location.ID)
		if err != nil {
			return fmt.Errorf("seed: count quants: %w", err)
		}
		if count > 0 {
			continue
		}

		quant := &model.StockQuant{
			ProductID:  product.ID,
			LocationID: location.ID,
			Quantity:   decimal.RequireFromString(q.Quantity),
		}
		if err := s.stock.CreateQuant(ctx, quant); err != nil {
			return fmt.Errorf("seed: create quant %s@%s: %w", q.Product, q.Location, err)
		}
		res.Quants++
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
