package service

import (
	"context"
	"errors"
	"fmt"

	"approvals/internal/model"
	"approvals/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// StockTransferBuilder creates the internal transfer for an approved stock requisition.
type StockTransferBuilder struct {
	requests     repository.ApprovalRepository
	transfers    repository.StockTransferRepository
	stock        repository.StockRepository
	sequences    repository.SequenceRepository
	audit        AuditService
	categoryName string
	log          zerolog.Logger
}

func NewStockTransferBuilder(
	requests repository.ApprovalRepository,
	transfers repository.StockTransferRepository,
	stock repository.StockRepository,
	sequences repository.SequenceRepository,
	audit AuditService,
	categoryName string,
	log zerolog.Logger,
) *StockTransferBuilder {
	return &StockTransferBuilder{
		requests:     requests,
		transfers:    transfers,
		stock:        stock,
		sequences:    sequences,
		audit:        audit,
		categoryName: categoryName,
		log:          log.With().Str("builder", "stock_transfer").Logger(),
	}
}

func (b *StockTransferBuilder) Name() string { return "stock_transfer" }

// IsRequisition reports whether the request belongs to the stock requisition category.
func (b *StockTransferBuilder) IsRequisition(category *model.ApprovalCategory) bool {
	return category != nil && category.Name == b.categoryName
}

func (b *StockTransferBuilder) Applies(req *model.ApprovalRequest) bool {
	return b.IsRequisition(req.Category) &&
		req.SourceLocationID != nil &&
		req.DestLocationID != nil &&
		len(req.Lines) > 0 &&
		req.StockTransferID == nil
}

// CheckAvailability compares the demand per product with what is unreserved at
// the source location. It sets stock_checked only when nothing is short.
func (b *StockTransferBuilder) CheckAvailability(ctx context.Context, req *model.ApprovalRequest) error {
	return b.checkAvailability(ctx, req, b.stock.AvailableQuantity)
}

// lockedAvailable locks the product's quants at the location and sums what is
// still unreserved. The locks hold until the approval transaction ends.
func (b *StockTransferBuilder) lockedAvailable(ctx context.Context, productID, locationID uuid.UUID) (decimal.Decimal, error) {
	quants, err := b.stock.ListQuantsForUpdate(ctx, productID, locationID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to lock quants: %w", err)
	}
	total := decimal.Zero
	for _, q := range quants {
		if free := q.Available(); free.IsPositive() {
			total = total.Add(free)
		}
	}
	return total, nil
}

type availabilityFunc func(ctx context.Context, productID, locationID uuid.UUID) (decimal.Decimal, error)

func (b *StockTransferBuilder) checkAvailability(ctx context.Context, req *model.ApprovalRequest, availableOf availabilityFunc) error {
	if req.SourceLocationID == nil {
		return ErrMissingLocations
	}
	if len(req.Lines) == 0 {
		return ErrMissingLines
	}

	// lines for the same product draw on the same quants
	var order []uuid.UUID
	demand := map[uuid.UUID]*Shortage{}
	for _, l := range req.Lines {
		if l.ProductID == nil || !l.Quantity.IsPositive() {
			continue
		}
		d, ok := demand[*l.ProductID]
		if !ok {
			d = &Shortage{ProductID: *l.ProductID, Requested: decimal.Zero}
			if l.Product != nil {
				d.ProductName = l.Product.Name
			}
			demand[*l.ProductID] = d
			order = append(order, *l.ProductID)
		}
		d.Requested = d.Requested.Add(l.Quantity)
	}

	var shortages []Shortage
	for _, productID := range order {
		d := demand[productID]
		available, err := availableOf(ctx, productID, *req.SourceLocationID)
		if err != nil {
			return fmt.Errorf("failed to read availability: %w", err)
		}
		if d.Requested.GreaterThan(available) {
			d.Available = available
			shortages = append(shortages, *d)
		}
	}
	if len(shortages) > 0 {
		return &InsufficientStockError{Shortages: shortages}
	}

	if err := b.requests.SetStockChecked(ctx, req.ID, true); err != nil {
		return fmt.Errorf("failed to flag stock check: %w", err)
	}
	req.StockChecked = true
	return nil
}

// Build must run inside the approval transaction.
func (b *StockTransferBuilder) Build(ctx context.Context, actor Actor, req *model.ApprovalRequest) error {
	transfer, err := b.build(ctx, actor, req)
	if err != nil {
		b.log.Error().Err(err).Str("request", req.Name).Msg("stock transfer creation failed")
		return err
	}
	b.log.Info().Str("request", req.Name).Str("transfer", transfer.Name).Str("state", transfer.State).Msg("stock transfer created")
	return nil
}

func (b *StockTransferBuilder) build(ctx context.Context, actor Actor, req *model.ApprovalRequest) (*model.StockTransfer, error) {
	if req.SourceLocationID == nil || req.DestLocationID == nil {
		return nil, ErrMissingLocations
	}
	if len(req.Lines) == 0 {
		return nil, ErrMissingLines
	}
	if req.StockTransferID != nil {
		return nil, ErrAlreadyFulfilled
	}

	if err := b.checkAvailability(ctx, req, b.lockedAvailable); err != nil {
		return nil, err
	}

	name, err := b.sequences.Next(ctx, "stock_transfers", "INT", actor.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate transfer name: %w", err)
	}

	transfer := &model.StockTransfer{
		Name:             name,
		Origin:           req.Name,
		SourceLocationID: *req.SourceLocationID,
		DestLocationID:   *req.DestLocationID,
		CompanyID:        req.CompanyID,
		PartnerID:        req.PartnerID,
		MoveType:         model.MoveTypeDirect,
		State:            model.TransferStateDraft,
	}
	for _, l := range req.Lines {
		if l.ProductID == nil || !l.Quantity.IsPositive() {
			continue
		}
		moveName := l.Description
		if moveName == "" && l.Product != nil {
			moveName = l.Product.Name
		}
		uom := l.UoM
		if uom == "" {
			uom = model.DefaultUoM
		}
		transfer.Moves = append(transfer.Moves, model.StockMove{
			Name:             moveName,
			ProductID:        *l.ProductID,
			Quantity:         l.Quantity,
			UoM:              uom,
			SourceLocationID: *req.SourceLocationID,
			DestLocationID:   *req.DestLocationID,
			State:            model.TransferStateDraft,
		})
	}
	if len(transfer.Moves) == 0 {
		return nil, ErrMissingLines
	}

	if err := b.transfers.Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to create stock transfer: %w", err)
	}

	if err := b.requests.LinkStockTransfer(ctx, req.ID, transfer.ID); err != nil {
		if errors.Is(err, repository.ErrLinkAlreadySet) {
			return nil, ErrAlreadyFulfilled
		}
		return nil, fmt.Errorf("failed to link stock transfer: %w", err)
	}
	req.StockTransferID = &transfer.ID

	if err := b.confirmAndReserve(ctx, transfer); err != nil {
		return nil, err
	}

	if err := b.audit.Record(ctx, actor, AuditEntry{
		Action:     model.ActionStockTransferBuilt,
		EntityID:   req.ID.String(),
		EntityName: req.Name,
		Message:    fmt.Sprintf("Stock transfer %s created", transfer.Name),
		Details: map[string]interface{}{
			"stock_transfer_id": transfer.ID.String(),
			"moves":             len(transfer.Moves),
			"state":             transfer.State,
		},
	}); err != nil {
		return nil, err
	}

	return transfer, nil
}

// confirmAndReserve reserves each move against the source quants, locked FOR UPDATE.
func (b *StockTransferBuilder) confirmAndReserve(ctx context.Context, transfer *model.StockTransfer) error {
	allAssigned := true
	for i := range transfer.Moves {
		move := &transfer.Moves[i]

		quants, err := b.stock.ListQuantsForUpdate(ctx, move.ProductID, move.SourceLocationID)
		if err != nil {
			return fmt.Errorf("failed to lock quants: %w", err)
		}

		remaining := move.Quantity
		for _, q := range quants {
			if !remaining.IsPositive() {
				break
			}
			free := q.Available()
			if !free.IsPositive() {
				continue
			}
			take := decimal.Min(free, remaining)
			if err := b.stock.UpdateReserved(ctx, q.ID, q.ReservedQuantity.Add(take)); err != nil {
				return fmt.Errorf("failed to reserve stock: %w", err)
			}
			remaining = remaining.Sub(take)
		}

		move.ReservedQuantity = move.Quantity.Sub(remaining)
		if remaining.IsPositive() {
			move.State = model.TransferStateConfirmed
			allAssigned = false
		} else {
			move.State = model.TransferStateAssigned
		}
		if err := b.transfers.UpdateMove(ctx, move); err != nil {
			return fmt.Errorf("failed to update move: %w", err)
		}
	}

	transfer.State = model.TransferStateConfirmed
	if allAssigned {
		transfer.State = model.TransferStateAssigned
	}
	if err := b.transfers.Update(ctx, transfer); err != nil {
		return fmt.Errorf("failed to confirm transfer: %w", err)
	}
	return nil
}
