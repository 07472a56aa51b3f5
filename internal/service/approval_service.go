package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"approvals/internal/events"
	"approvals/internal/model"
	"approvals/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type ProductLineInput struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"` // creates an ad-hoc product when product_id is empty
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UoM         string          `json:"uom"`
	PriceUnit   decimal.Decimal `json:"price_unit"`
	VendorID    string          `json:"vendor_id"`
}

type AttachmentInput struct {
	Name      string `json:"name" binding:"required"`
	FieldName string `json:"field_name"`
	Mimetype  string `json:"mimetype"`
	URL       string `json:"url"`
}

type ApprovalRequestInput struct {
	CategoryID       string              `json:"category_id" binding:"required"`
	Reason           string              `json:"reason"`
	Amount           decimal.NullDecimal `json:"amount"`
	Quantity         decimal.NullDecimal `json:"quantity"`
	Date             *time.Time          `json:"date"`
	DateStart        *time.Time          `json:"date_start"`
	DateEnd          *time.Time          `json:"date_end"`
	Location         string              `json:"location"`
	Reference        string              `json:"reference"`
	BudgetCategoryID string              `json:"budget_category_id"`
	PartnerID        string              `json:"partner_id"`
	VendorName       string              `json:"vendor_name"`
	VendorEmail      string              `json:"vendor_email"`
	VendorPhone      string              `json:"vendor_phone"`
	SourceLocationID string              `json:"source_location_id"`
	DestLocationID   string              `json:"dest_location_id"`
	Lines            []ProductLineInput  `json:"lines"`
	Attachments      []AttachmentInput   `json:"attachments"`
	Submit           bool                `json:"submit"`
}

type DecisionInput struct {
	Reason string `json:"reason"`
}

type ListApprovalsQuery struct {
	Status     string
	EmployeeID string
	Page       int
	Limit      int
}

type ApprovalLineResponse struct {
	ID          string          `json:"id"`
	Sequence    int             `json:"sequence"`
	ProductID   string          `json:"product_id,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UoM         string          `json:"uom"`
	PriceUnit   decimal.Decimal `json:"price_unit"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	VendorID    string          `json:"vendor_id,omitempty"`
}

type ApprovalRequestResponse struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	Status             string                 `json:"status"`
	CategoryID         string                 `json:"category_id"`
	CategoryName       string                 `json:"category_name"`
	ApprovalType       string                 `json:"approval_type"`
	OwnerID            string                 `json:"owner_id"`
	EmployeeID         string                 `json:"employee_id,omitempty"`
	EmployeeName       string                 `json:"employee_name,omitempty"`
	ManagerID          string                 `json:"manager_id,omitempty"`
	ManagerName        string                 `json:"manager_name,omitempty"`
	PortalSubmission   bool                   `json:"portal_submission"`
	Reason             string                 `json:"reason"`
	Amount             decimal.NullDecimal    `json:"amount"`
	Quantity           decimal.NullDecimal    `json:"quantity"`
	Date               *time.Time             `json:"date,omitempty"`
	DateStart          *time.Time             `json:"date_start,omitempty"`
	DateEnd            *time.Time             `json:"date_end,omitempty"`
	Location           string                 `json:"location,omitempty"`
	Reference          string                 `json:"reference,omitempty"`
	BudgetCategoryID   string                 `json:"budget_category_id,omitempty"`
	PartnerID          string                 `json:"partner_id,omitempty"`
	PartnerName        string                 `json:"partner_name,omitempty"`
	SourceLocationID   string                 `json:"source_location_id,omitempty"`
	SourceLocationName string                 `json:"source_location_name,omitempty"`
	DestLocationID     string                 `json:"dest_location_id,omitempty"`
	DestLocationName   string                 `json:"dest_location_name,omitempty"`
	StockChecked       bool                   `json:"stock_checked"`
	PurchaseOrderID    string                 `json:"purchase_order_id,omitempty"`
	PurchaseOrderName  string                 `json:"purchase_order_name,omitempty"`
	StockTransferID    string                 `json:"stock_transfer_id,omitempty"`
	StockTransferName  string                 `json:"stock_transfer_name,omitempty"`
	DecidedBy          string                 `json:"decided_by,omitempty"`
	DecidedAt          string                 `json:"decided_at,omitempty"`
	RefusalReason      string                 `json:"refusal_reason,omitempty"`
	Lines              []ApprovalLineResponse `json:"lines"`
	CreatedAt          string                 `json:"created_at"`
	UpdatedAt          string                 `json:"updated_at"`
}

// --- Interface ---

//go:generate mockgen -source=approval_service.go -destination=../handler/mocks/approval_service_mock.go -package=mocks

type ApprovalService interface {
	Create(ctx context.Context, actor Actor, in ApprovalRequestInput) (*ApprovalRequestResponse, error)
	Update(ctx context.Context, actor Actor, id string, in ApprovalRequestInput) (*ApprovalRequestResponse, error)
	Submit(ctx context.Context, actor Actor, id string) (*ApprovalRequestResponse, error)
	Decide(ctx context.Context, actor Actor, id, outcome string, in DecisionInput) (*ApprovalRequestResponse, error)
	CheckStockAvailability(ctx context.Context, actor Actor, id string) (*ApprovalRequestResponse, error)
	Get(ctx context.Context, actor Actor, id string) (*ApprovalRequestResponse, error)
	List(ctx context.Context, actor Actor, q ListApprovalsQuery) ([]ApprovalRequestResponse, int64, error)
}

// transitions is the complete status graph; anything absent is refused.
var transitions = map[string][]string{
	model.RequestStatusNew:     {model.RequestStatusPending},
	model.RequestStatusPending: {model.RequestStatusNew, model.RequestStatusApproved, model.RequestStatusRefused},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to string) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrInvalidTransition)
	}
	return nil
}

type ApprovalServiceDeps struct {
	TxManager   repository.TransactionManager
	Requests    repository.ApprovalRepository
	Categories  repository.CategoryRepository
	Budgets     repository.BudgetRepository
	Partners    repository.PartnerRepository
	Products    repository.ProductRepository
	Locations   repository.LocationRepository
	Attachments repository.AttachmentRepository
	Sequences   repository.SequenceRepository
	Employees   EmployeeService
	Ledger      *BudgetLedger
	Resolver    *LocationResolver
	Trusted     *TrustedOps
	Transfers   *StockTransferBuilder
	Audit       AuditService
	Publisher   events.Publisher
	Log         zerolog.Logger

	// Strategies run in order on approval; the first that applies wins.
	Strategies  []FulfillmentStrategy
	SubmitHooks []SubmitHook
}

type approvalService struct {
	ApprovalServiceDeps
}

func NewApprovalService(deps ApprovalServiceDeps) ApprovalService {
	if deps.Publisher == nil {
		deps.Publisher = events.Nop{}
	}
	return &approvalService{ApprovalServiceDeps: deps}
}

// --- Implementation ---

func (s *approvalService) Create(ctx context.Context, actor Actor, in ApprovalRequestInput) (*ApprovalRequestResponse, error) {
	var req *model.ApprovalRequest
	var published []events.Event

	err := s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		category, err := s.loadCategory(txCtx, in.CategoryID)
		if err != nil {
			return err
		}

		req = &model.ApprovalRequest{
			CategoryID:       category.ID,
			OwnerID:          actor.UserID,
			CompanyID:        actor.CompanyID,
			Status:           model.RequestStatusNew,
			PortalSubmission: actor.Portal,
		}

		employee, err := s.assignEmployee(txCtx, req)
		if err != nil {
			return err
		}
		if err := s.applyInput(txCtx, actor, req, category, employee, in); err != nil {
			return err
		}

		name, err := s.Sequences.Next(txCtx, "approval_requests", "REQ", actor.now())
		if err != nil {
			return fmt.Errorf("failed to generate request name: %w", err)
		}
		req.Name = name

		lines := req.Lines
		req.Lines = nil
		if err := s.Requests.Create(txCtx, req); err != nil {
			return fmt.Errorf("failed to create approval request: %w", err)
		}
		if err := s.Requests.ReplaceLines(txCtx, req.ID, lines); err != nil {
			return fmt.Errorf("failed to save lines: %w", err)
		}
		req.Lines = lines
		req.Category = category

		if err := s.saveAttachments(txCtx, req.ID, in.Attachments); err != nil {
			return err
		}

		if err := s.Audit.Record(txCtx, actor, AuditEntry{
			Action:     model.ActionCreateRequest,
			EntityID:   req.ID.String(),
			EntityName: req.Name,
			Message:    "Request created",
			Details: map[string]interface{}{
				"category": category.Name,
				"lines":    len(lines),
			},
		}); err != nil {
			return err
		}
		published = append(published, s.event(events.TypeRequestCreated, actor, req))

		if in.Submit || actor.Portal {
			if err := s.submitLocked(txCtx, actor, req); err != nil {
				return err
			}
			published = append(published, s.event(events.TypeRequestSubmitted, actor, req))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, published)
	return s.Get(ctx, actor, req.ID.String())
}

// Update replaces the business fields and lines. A pending request goes back to new.
func (s *approvalService) Update(ctx context.Context, actor Actor, id string, in ApprovalRequestInput) (*ApprovalRequestResponse, error) {
	reqID, err := parseID(id, "request id")
	if err != nil {
		return nil, err
	}

	var published []events.Event
	err = s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := s.lockRequest(txCtx, actor, reqID)
		if err != nil {
			return err
		}
		if !req.IsEditable() {
			return fmt.Errorf("%s is %s: %w", req.Name, req.Status, ErrRequestLocked)
		}

		category := req.Category
		if in.CategoryID != "" && in.CategoryID != req.CategoryID.String() {
			if category, err = s.loadCategory(txCtx, in.CategoryID); err != nil {
				return err
			}
			req.CategoryID = category.ID
			req.Category = category
		}

		if req.Status == model.RequestStatusPending {
			if err := checkTransition(req.Status, model.RequestStatusNew); err != nil {
				return err
			}
			req.Status = model.RequestStatusNew
		}

		employee, err := s.assignEmployee(txCtx, req)
		if err != nil {
			return err
		}
		if err := s.applyInput(txCtx, actor, req, category, employee, in); err != nil {
			return err
		}

		if err := s.Requests.Update(txCtx, req); err != nil {
			return fmt.Errorf("failed to update approval request: %w", err)
		}
		if err := s.Requests.ReplaceLines(txCtx, req.ID, req.Lines); err != nil {
			return fmt.Errorf("failed to save lines: %w", err)
		}
		if err := s.saveAttachments(txCtx, req.ID, in.Attachments); err != nil {
			return err
		}

		if err := s.Audit.Record(txCtx, actor, AuditEntry{
			Action:     model.ActionUpdateRequest,
			EntityID:   req.ID.String(),
			EntityName: req.Name,
			Message:    "Request updated",
			Details:    map[string]interface{}{"lines": len(req.Lines)},
		}); err != nil {
			return err
		}
		published = append(published, s.event(events.TypeRequestUpdated, actor, req))

		if in.Submit {
			if err := s.submitLocked(txCtx, actor, req); err != nil {
				return err
			}
			published = append(published, s.event(events.TypeRequestSubmitted, actor, req))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, published)
	return s.Get(ctx, actor, id)
}

func (s *approvalService) Submit(ctx context.Context, actor Actor, id string) (*ApprovalRequestResponse, error) {
	reqID, err := parseID(id, "request id")
	if err != nil {
		return nil, err
	}

	var published []events.Event
	err = s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := s.lockRequest(txCtx, actor, reqID)
		if err != nil {
			return err
		}
		if err := s.submitLocked(txCtx, actor, req); err != nil {
			return err
		}
		published = append(published, s.event(events.TypeRequestSubmitted, actor, req))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, published)
	return s.Get(ctx, actor, id)
}

// submitLocked expects req to be row-locked by the caller's transaction.
func (s *approvalService) submitLocked(ctx context.Context, actor Actor, req *model.ApprovalRequest) error {
	if err := checkTransition(req.Status, model.RequestStatusPending); err != nil {
		return err
	}
	if err := s.admitBudget(ctx, actor, req); err != nil {
		return err
	}
	for _, hook := range s.SubmitHooks {
		if err := hook.OnSubmit(ctx, actor, req); err != nil {
			return err
		}
	}

	req.Status = model.RequestStatusPending
	if err := s.Requests.Update(ctx, req); err != nil {
		return fmt.Errorf("failed to submit approval request: %w", err)
	}

	return s.Audit.Record(ctx, actor, AuditEntry{
		Action:     model.ActionSubmitRequest,
		EntityID:   req.ID.String(),
		EntityName: req.Name,
		Message:    "Request submitted",
	})
}

// Decide approves or refuses a pending request. Approving an approved request
// is a no-op, so fulfillment documents are never duplicated.
func (s *approvalService) Decide(ctx context.Context, actor Actor, id, outcome string, in DecisionInput) (*ApprovalRequestResponse, error) {
	if outcome != model.RequestStatusApproved && outcome != model.RequestStatusRefused {
		return nil, invalidInput("unknown decision %q", outcome)
	}
	reqID, err := parseID(id, "request id")
	if err != nil {
		return nil, err
	}

	var published []events.Event
	err = s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := s.lockRequest(txCtx, actor, reqID)
		if err != nil {
			return err
		}

		if outcome == model.RequestStatusApproved && req.Status == model.RequestStatusApproved {
			return nil
		}
		if err := checkTransition(req.Status, outcome); err != nil {
			return err
		}

		if outcome == model.RequestStatusApproved {
			if err := s.admitBudget(txCtx, actor, req); err != nil {
				return err
			}
		}

		now := actor.now()
		req.Status = outcome
		req.DecidedBy = actor.userRef()
		req.DecidedAt = &now
		action, eventType, message := model.ActionApproveRequest, events.TypeRequestApproved, "Request approved"
		if outcome == model.RequestStatusRefused {
			req.RefusalReason = strings.TrimSpace(in.Reason)
			action, eventType, message = model.ActionRefuseRequest, events.TypeRequestRefused, "Request refused"
		}

		if err := s.Requests.Update(txCtx, req); err != nil {
			return fmt.Errorf("failed to record decision: %w", err)
		}
		if err := s.Audit.Record(txCtx, actor, AuditEntry{
			Action:     action,
			EntityID:   req.ID.String(),
			EntityName: req.Name,
			Message:    message,
			Details:    map[string]interface{}{"reason": req.RefusalReason},
		}); err != nil {
			return err
		}

		if outcome == model.RequestStatusApproved {
			if err := s.fulfill(txCtx, actor, req); err != nil {
				return err
			}
		}
		published = append(published, s.event(eventType, actor, req))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, published)
	return s.Get(ctx, actor, id)
}

func (s *approvalService) fulfill(ctx context.Context, actor Actor, req *model.ApprovalRequest) error {
	for _, strategy := range s.Strategies {
		if !strategy.Applies(req) {
			continue
		}
		if err := strategy.Build(ctx, actor, req); err != nil {
			return fmt.Errorf("%s fulfillment for %s: %w", strategy.Name(), req.Name, err)
		}
		return nil
	}
	return nil
}

// CheckStockAvailability is allowed in any status and is idempotent.
func (s *approvalService) CheckStockAvailability(ctx context.Context, actor Actor, id string) (*ApprovalRequestResponse, error) {
	reqID, err := parseID(id, "request id")
	if err != nil {
		return nil, err
	}

	var published []events.Event
	err = s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := s.lockRequest(txCtx, actor, reqID)
		if err != nil {
			return err
		}
		if err := s.Transfers.CheckAvailability(txCtx, req); err != nil {
			return err
		}
		if err := s.Audit.Record(txCtx, actor, AuditEntry{
			Action:     model.ActionStockChecked,
			EntityID:   req.ID.String(),
			EntityName: req.Name,
			Message:    "All requested products are available",
		}); err != nil {
			return err
		}
		published = append(published, s.event(events.TypeStockChecked, actor, req))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, published)
	return s.Get(ctx, actor, id)
}

// lockRequest row-locks the request. Requests a portal actor does not own are
// reported as not found.
func (s *approvalService) lockRequest(ctx context.Context, actor Actor, id uuid.UUID) (*model.ApprovalRequest, error) {
	req, err := s.Requests.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFound(err, "approval request")
	}
	if !actor.canAccess(req) {
		return nil, fmt.Errorf("approval request: %w", ErrNotFound)
	}
	return req, nil
}

func (s *approvalService) Get(ctx context.Context, actor Actor, id string) (*ApprovalRequestResponse, error) {
	reqID, err := parseID(id, "request id")
	if err != nil {
		return nil, err
	}
	req, err := s.Requests.FindByIDWithRelations(ctx, reqID)
	if err != nil {
		return nil, notFound(err, "approval request")
	}
	if !actor.canAccess(req) {
		return nil, fmt.Errorf("approval request: %w", ErrNotFound)
	}
	resp := toApprovalResponse(*req)
	return &resp, nil
}

// List shows portal users only their own requests.
func (s *approvalService) List(ctx context.Context, actor Actor, q ListApprovalsQuery) ([]ApprovalRequestResponse, int64, error) {
	filter := repository.ApprovalFilter{Status: q.Status, Page: q.Page, Limit: q.Limit}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if actor.Portal {
		owner := actor.UserID
		filter.OwnerID = &owner
	}
	employeeID, err := parseOptionalID(q.EmployeeID, "employee id")
	if err != nil {
		return nil, 0, err
	}
	filter.EmployeeID = employeeID

	requests, total, err := s.Requests.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch approval requests: %w", err)
	}

	res := make([]ApprovalRequestResponse, 0, len(requests))
	for _, r := range requests {
		res = append(res, toApprovalResponse(r))
	}
	return res, total, nil
}

// --- Helpers ---

func (s *approvalService) loadCategory(ctx context.Context, raw string) (*model.ApprovalCategory, error) {
	id, err := parseID(raw, "category id")
	if err != nil {
		return nil, err
	}
	category, err := s.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "approval category")
	}
	return category, nil
}

// assignEmployee recomputes employee and manager from the owner.
func (s *approvalService) assignEmployee(ctx context.Context, req *model.ApprovalRequest) (*model.Employee, error) {
	employee, err := s.Employees.ResolveEmployee(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	req.EmployeeID, req.ManagerID = nil, nil
	if employee != nil {
		id := employee.ID
		req.EmployeeID = &id
		req.ManagerID = employee.ParentID
	}
	return employee, nil
}

func (s *approvalService) admitBudget(ctx context.Context, actor Actor, req *model.ApprovalRequest) error {
	if req.BudgetCategoryID == nil || !req.Amount.Valid {
		return nil
	}
	budget, err := s.Budgets.FindByIDForUpdate(ctx, *req.BudgetCategoryID)
	if err != nil {
		return notFound(err, "budget category")
	}
	return s.Ledger.Admit(ctx, budget, req.Amount.Decimal, s.Ledger.PeriodStart(actor.now()), req.ID)
}

// applyInput copies the fields the category enables and builds the lines.
func (s *approvalService) applyInput(ctx context.Context, actor Actor, req *model.ApprovalRequest, category *model.ApprovalCategory, employee *model.Employee, in ApprovalRequestInput) error {
	req.Reason = strings.TrimSpace(in.Reason)

	req.Date = nil
	if category.HasDate {
		req.Date = in.Date
	}

	req.DateStart, req.DateEnd = nil, nil
	if category.HasPeriod != model.PeriodNo && category.HasPeriod != "" {
		if category.HasPeriod == model.PeriodRequired && (in.DateStart == nil || in.DateEnd == nil) {
			return invalidInput("period is required for %s", category.Name)
		}
		if in.DateStart != nil && in.DateEnd != nil && in.DateEnd.Before(*in.DateStart) {
			return invalidInput("period ends before it starts")
		}
		req.DateStart, req.DateEnd = in.DateStart, in.DateEnd
	}

	req.Amount = decimal.NullDecimal{}
	if category.HasAmount && in.Amount.Valid {
		if in.Amount.Decimal.IsNegative() {
			return invalidInput("amount must not be negative")
		}
		req.Amount = in.Amount
	}

	req.Quantity = decimal.NullDecimal{}
	if category.HasQuantity && in.Quantity.Valid {
		if in.Quantity.Decimal.IsNegative() {
			return invalidInput("quantity must not be negative")
		}
		req.Quantity = in.Quantity
	}

	req.Location = ""
	if category.HasLocation {
		req.Location = strings.TrimSpace(in.Location)
	}
	req.Reference = ""
	if category.HasReference {
		req.Reference = strings.TrimSpace(in.Reference)
	}

	budgetID, err := parseOptionalID(in.BudgetCategoryID, "budget category id")
	if err != nil {
		return err
	}
	if budgetID != nil {
		if _, err := s.Budgets.FindByID(ctx, *budgetID); err != nil {
			return notFound(err, "budget category")
		}
	}
	req.BudgetCategoryID = budgetID

	req.PartnerID = nil
	if category.HasPartner {
		if err := s.applyVendor(ctx, actor, req, in); err != nil {
			return err
		}
	}

	req.Lines = nil
	if category.HasProduct {
		lines, err := s.buildLines(ctx, actor, in.Lines)
		if err != nil {
			return err
		}
		req.Lines = lines
	}

	req.SourceLocationID, req.DestLocationID = nil, nil
	if s.Transfers != nil && s.Transfers.IsRequisition(category) {
		if err := s.applyLocations(ctx, actor, req, employee, in); err != nil {
			return err
		}
	}
	return nil
}

func (s *approvalService) applyVendor(ctx context.Context, actor Actor, req *model.ApprovalRequest, in ApprovalRequestInput) error {
	partnerID, err := parseOptionalID(in.PartnerID, "partner id")
	if err != nil {
		return err
	}
	if partnerID != nil {
		if _, err := s.Partners.FindByID(ctx, *partnerID); err != nil {
			return notFound(err, "vendor")
		}
		req.PartnerID = partnerID
		return nil
	}
	if strings.TrimSpace(in.VendorName) == "" {
		return nil
	}
	vendor, err := s.Trusted.EnsureVendor(ctx, actor, VendorInput{Name: in.VendorName, Email: in.VendorEmail, Phone: in.VendorPhone})
	if err != nil {
		return err
	}
	req.PartnerID = &vendor.ID
	return nil
}

func (s *approvalService) buildLines(ctx context.Context, actor Actor, inputs []ProductLineInput) ([]model.ApprovalProductLine, error) {
	lines := make([]model.ApprovalProductLine, 0, len(inputs))
	for i, in := range inputs {
		if !in.Quantity.IsPositive() {
			return nil, invalidInput("line %d: quantity must be greater than zero", i+1)
		}
		if in.PriceUnit.IsNegative() {
			return nil, invalidInput("line %d: unit price must not be negative", i+1)
		}

		line := model.ApprovalProductLine{
			Sequence:    (i + 1) * 10,
			Description: strings.TrimSpace(in.Description),
			Quantity:    in.Quantity,
			UoM:         strings.TrimSpace(in.UoM),
			PriceUnit:   in.PriceUnit,
		}

		productID, err := parseOptionalID(in.ProductID, "product id")
		if err != nil {
			return nil, err
		}
		var product *model.Product
		switch {
		case productID != nil:
			if product, err = s.Products.FindByID(ctx, *productID); err != nil {
				return nil, notFound(err, "product")
			}
		case strings.TrimSpace(in.Name) != "":
			if product, err = s.Trusted.EnsureProduct(ctx, actor, in.Name, line.UoM, in.PriceUnit); err != nil {
				return nil, err
			}
		case line.Description == "":
			return nil, invalidInput("line %d: a product or a description is required", i+1)
		}

		if product != nil {
			line.ProductID = &product.ID
			line.Product = product
			if line.UoM == "" {
				line.UoM = product.UoM
			}
			if line.Description == "" {
				line.Description = product.Name
			}
			if !line.PriceUnit.IsPositive() {
				line.PriceUnit = product.StandardPrice
			}
		}
		if line.UoM == "" {
			line.UoM = model.DefaultUoM
		}

		vendorID, err := parseOptionalID(in.VendorID, "vendor id")
		if err != nil {
			return nil, err
		}
		if vendorID != nil {
			if _, err := s.Partners.FindByID(ctx, *vendorID); err != nil {
				return nil, notFound(err, "vendor")
			}
			line.VendorID = vendorID
			if product != nil {
				info, err := s.Trusted.EnsureSupplierInfo(ctx, actor, *vendorID, product.ID, line.PriceUnit)
				if err != nil {
					return nil, err
				}
				line.SupplierInfoID = &info.ID
			}
		}

		line.ComputeSubtotal()
		lines = append(lines, line)
	}
	return lines, nil
}

// applyLocations defaults the destination to the employee's workstation and
// picks the source with the location resolver.
func (s *approvalService) applyLocations(ctx context.Context, actor Actor, req *model.ApprovalRequest, employee *model.Employee, in ApprovalRequestInput) error {
	destID, err := parseOptionalID(in.DestLocationID, "destination location id")
	if err != nil {
		return err
	}
	switch {
	case destID != nil:
		if _, err := s.Locations.FindByID(ctx, *destID); err != nil {
			return notFound(err, "destination location")
		}
		req.DestLocationID = destID
	case employee != nil:
		workstation, err := s.Trusted.EnsureWorkstation(ctx, actor, employee.Name)
		if err != nil {
			return err
		}
		req.DestLocationID = &workstation.ID
	}

	sourceID, err := parseOptionalID(in.SourceLocationID, "source location id")
	if err != nil {
		return err
	}
	if sourceID != nil {
		if _, err := s.Locations.FindByID(ctx, *sourceID); err != nil {
			return notFound(err, "source location")
		}
		req.SourceLocationID = sourceID
		return nil
	}

	source, err := s.Resolver.ResolveSourceLocation(ctx, demandsOf(req.Lines), actor.CompanyID)
	if err != nil {
		return err
	}
	if source != nil {
		req.SourceLocationID = &source.ID
	}
	return nil
}

func (s *approvalService) saveAttachments(ctx context.Context, requestID uuid.UUID, inputs []AttachmentInput) error {
	for _, in := range inputs {
		description := model.AttachmentSupporting
		if IsQuotation(in.FieldName, in.Name) {
			description = model.AttachmentQuotation
		}
		attachment := &model.Attachment{
			Name:        in.Name,
			ResModel:    model.ResModelApprovalRequest,
			ResID:       requestID,
			Description: description,
			Mimetype:    in.Mimetype,
			URL:         in.URL,
		}
		if err := s.Attachments.Create(ctx, attachment); err != nil {
			return fmt.Errorf("failed to save attachment %s: %w", in.Name, err)
		}
	}
	return nil
}

// IsQuotation classifies an uploaded file as a vendor quotation.
func IsQuotation(fieldName, fileName string) bool {
	if strings.Contains(strings.ToLower(fieldName), "quotation") {
		return true
	}
	lower := strings.ToLower(fileName)
	if strings.Contains(lower, "quote") {
		return true
	}
	switch filepath.Ext(lower) {
	case ".pdf", ".doc", ".docx":
		return true
	}
	return false
}

func (s *approvalService) event(eventType string, actor Actor, req *model.ApprovalRequest) events.Event {
	return events.Event{
		Type:            eventType,
		RequestID:       req.ID.String(),
		RequestName:     req.Name,
		Status:          req.Status,
		ActorID:         actor.UserID.String(),
		PurchaseOrderID: idString(req.PurchaseOrderID),
		StockTransferID: idString(req.StockTransferID),
		OccurredAt:      actor.now(),
	}
}

// publish runs after commit; failures are logged by the publishers.
func (s *approvalService) publish(ctx context.Context, published []events.Event) {
	for _, e := range published {
		s.Publisher.Publish(ctx, e)
		s.Log.Debug().Str("event", e.Type).Str("request", e.RequestName).Msg("approval event published")
	}
}

func idString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func toApprovalResponse(r model.ApprovalRequest) ApprovalRequestResponse {
	resp := ApprovalRequestResponse{
		ID:               r.ID.String(),
		Name:             r.Name,
		Status:           r.Status,
		CategoryID:       r.CategoryID.String(),
		OwnerID:          r.OwnerID.String(),
		EmployeeID:       idString(r.EmployeeID),
		ManagerID:        idString(r.ManagerID),
		PortalSubmission: r.PortalSubmission,
		Reason:           r.Reason,
		Amount:           r.Amount,
		Quantity:         r.Quantity,
		Date:             r.Date,
		DateStart:        r.DateStart,
		DateEnd:          r.DateEnd,
		Location:         r.Location,
		Reference:        r.Reference,
		BudgetCategoryID: idString(r.BudgetCategoryID),
		PartnerID:        idString(r.PartnerID),
		SourceLocationID: idString(r.SourceLocationID),
		DestLocationID:   idString(r.DestLocationID),
		StockChecked:     r.StockChecked,
		PurchaseOrderID:  idString(r.PurchaseOrderID),
		StockTransferID:  idString(r.StockTransferID),
		DecidedBy:        idString(r.DecidedBy),
		RefusalReason:    r.RefusalReason,
		Lines:            make([]ApprovalLineResponse, 0, len(r.Lines)),
		CreatedAt:        r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:        r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	if r.Category != nil {
		resp.CategoryName = r.Category.Name
		resp.ApprovalType = r.Category.ApprovalType
	}
	if r.Employee != nil {
		resp.EmployeeName = r.Employee.Name
	}
	if r.Manager != nil {
		resp.ManagerName = r.Manager.Name
	}
	if r.Partner != nil {
		resp.PartnerName = r.Partner.Name
	}
	if r.SourceLocation != nil {
		resp.SourceLocationName = r.SourceLocation.CompleteName
	}
	if r.DestLocation != nil {
		resp.DestLocationName = r.DestLocation.CompleteName
	}
	if r.PurchaseOrder != nil {
		resp.PurchaseOrderName = r.PurchaseOrder.Name
	}
	if r.StockTransfer != nil {
		resp.StockTransferName = r.StockTransfer.Name
	}
	if r.DecidedAt != nil {
		resp.DecidedAt = r.DecidedAt.Format("2006-01-02 15:04:05")
	}

	for _, l := range r.Lines {
		line := ApprovalLineResponse{
			ID:          l.ID.String(),
			Sequence:    l.Sequence,
			ProductID:   idString(l.ProductID),
			Description: l.Description,
			Quantity:    l.Quantity,
			UoM:         l.UoM,
			PriceUnit:   l.PriceUnit,
			Subtotal:    l.Subtotal,
			VendorID:    idString(l.VendorID),
		}
		if l.Product != nil {
			line.ProductName = l.Product.Name
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}
