package service

import (
	"context"
	"errors"
	"fmt"

	"approvals/internal/model"
	"approvals/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PurchaseOrderBuilder creates one draft purchase order per approved purchase request.
type PurchaseOrderBuilder struct {
	requests    repository.ApprovalRepository
	orders      repository.PurchaseOrderRepository
	products    repository.ProductRepository
	sequences   repository.SequenceRepository
	attachments repository.AttachmentRepository
	trusted     *TrustedOps
	audit       AuditService
	log         zerolog.Logger
}

func NewPurchaseOrderBuilder(
	requests repository.ApprovalRepository,
	orders repository.PurchaseOrderRepository,
	products repository.ProductRepository,
	sequences repository.SequenceRepository,
	attachments repository.AttachmentRepository,
	trusted *TrustedOps,
	audit AuditService,
	log zerolog.Logger,
) *PurchaseOrderBuilder {
	return &PurchaseOrderBuilder{
		requests:    requests,
		orders:      orders,
		products:    products,
		sequences:   sequences,
		attachments: attachments,
		trusted:     trusted,
		audit:       audit,
		log:         log.With().Str("builder", "purchase_order").Logger(),
	}
}

func (b *PurchaseOrderBuilder) Name() string { return "purchase_order" }

func (b *PurchaseOrderBuilder) Applies(req *model.ApprovalRequest) bool {
	return req.Category != nil &&
		req.Category.ApprovalType == model.ApprovalTypePurchase &&
		req.PartnerID != nil &&
		req.PurchaseOrderID == nil
}

// Build must run inside the approval transaction.
func (b *PurchaseOrderBuilder) Build(ctx context.Context, actor Actor, req *model.ApprovalRequest) error {
	order, err := b.build(ctx, actor, req)
	if err != nil {
		b.log.Error().Err(err).Str("request", req.Name).Msg("purchase order creation failed")
		return err
	}
	b.log.Info().Str("request", req.Name).Str("order", order.Name).Int("lines", len(order.Lines)).Msg("purchase order created")
	return nil
}

func (b *PurchaseOrderBuilder) build(ctx context.Context, actor Actor, req *model.ApprovalRequest) (*model.PurchaseOrder, error) {
	if req.PartnerID == nil {
		return nil, ErrMissingVendor
	}
	if req.PurchaseOrderID != nil {
		return nil, ErrAlreadyFulfilled
	}

	now := actor.now()
	lines, err := b.orderLines(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	name, err := b.sequences.Next(ctx, "purchase_orders", "PO", now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate purchase order name: %w", err)
	}

	total := decimal.Zero
	for i := range lines {
		lines[i].DatePlanned = now
		total = total.Add(lines[i].Subtotal)
	}

	order := &model.PurchaseOrder{
		Name:        name,
		PartnerID:   *req.PartnerID,
		Origin:      req.Name,
		CompanyID:   req.CompanyID,
		State:       model.PurchaseStateDraft,
		AmountTotal: total,
		Lines:       lines,
	}
	if err := b.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}

	if err := b.requests.LinkPurchaseOrder(ctx, req.ID, order.ID); err != nil {
		if errors.Is(err, repository.ErrLinkAlreadySet) {
			return nil, ErrAlreadyFulfilled
		}
		return nil, fmt.Errorf("failed to link purchase order: %w", err)
	}
	req.PurchaseOrderID = &order.ID

	copied, err := b.copyQuotations(ctx, req, order)
	if err != nil {
		return nil, err
	}

	if err := b.audit.Record(ctx, actor, AuditEntry{
		Action:     model.ActionPurchaseOrderBuilt,
		EntityID:   req.ID.String(),
		EntityName: req.Name,
		Message:    fmt.Sprintf("Purchase order %s created", order.Name),
		Details: map[string]interface{}{
			"purchase_order_id": order.ID.String(),
			"lines":             len(order.Lines),
			"amount_total":      total.String(),
			"quotations":        copied,
		},
	}); err != nil {
		return nil, err
	}

	return order, nil
}

func (b *PurchaseOrderBuilder) orderLines(ctx context.Context, actor Actor, req *model.ApprovalRequest) ([]model.PurchaseOrderLine, error) {
	if len(req.Lines) == 0 {
		if !req.Amount.Valid {
			return nil, nil
		}
		qty := decimal.NewFromInt(1)
		if req.Quantity.Valid && req.Quantity.Decimal.IsPositive() {
			qty = req.Quantity.Decimal
		}
		return []model.PurchaseOrderLine{{
			Name:       req.Name,
			ProductQty: qty,
			ProductUoM: model.DefaultUoM,
			PriceUnit:  req.Amount.Decimal,
			Subtotal:   qty.Mul(req.Amount.Decimal),
		}}, nil
	}

	lines := make([]model.PurchaseOrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.ProductID == nil {
			name := l.Description
			if name == "" {
				name = req.Name
			}
			uom := l.UoM
			if uom == "" {
				uom = model.DefaultUoM
			}
			lines = append(lines, model.PurchaseOrderLine{
				Name:       name,
				ProductQty: l.Quantity,
				ProductUoM: uom,
				PriceUnit:  decimal.Zero,
				Subtotal:   decimal.Zero,
			})
			continue
		}

		product := l.Product
		if product == nil {
			p, err := b.products.FindByID(ctx, *l.ProductID)
			if err != nil {
				return nil, notFound(err, "product")
			}
			product = p
		}

		price := l.PriceUnit
		if !price.IsPositive() {
			price = product.StandardPrice
		}
		uom := l.UoM
		if uom == "" {
			uom = product.PurchaseUoM
		}
		name := l.Description
		if name == "" {
			name = product.Name
		}

		if _, err := b.trusted.EnsureSupplierInfo(ctx, actor, *req.PartnerID, product.ID, price); err != nil {
			return nil, err
		}

		productID := product.ID
		lines = append(lines, model.PurchaseOrderLine{
			ProductID:  &productID,
			Name:       name,
			ProductQty: l.Quantity,
			ProductUoM: uom,
			PriceUnit:  price,
			Subtotal:   l.Quantity.Mul(price),
		})
	}
	return lines, nil
}

func (b *PurchaseOrderBuilder) copyQuotations(ctx context.Context, req *model.ApprovalRequest, order *model.PurchaseOrder) (int, error) {
	quotes, err := b.attachments.ListByResource(ctx, model.ResModelApprovalRequest, req.ID, model.AttachmentQuotation)
	if err != nil {
		return 0, fmt.Errorf("failed to list quotations: %w", err)
	}
	for _, q := range quotes {
		copyOf := &model.Attachment{
			Name:        "Quotation - " + q.Name,
			ResModel:    model.ResModelPurchaseOrder,
			ResID:       order.ID,
			Description: model.AttachmentQuotation,
			Mimetype:    q.Mimetype,
			URL:         q.URL,
		}
		if err := b.attachments.Create(ctx, copyOf); err != nil {
			return 0, fmt.Errorf("failed to copy quotation %s: %w", q.Name, err)
		}
	}
	return len(quotes), nil
}
