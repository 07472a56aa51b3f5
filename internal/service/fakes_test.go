package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"time"

	"approvals/internal/events"
	"approvals/internal/model"
	"approvals/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// store is an in-memory database shared by the fake repositories.
// fakeTx snapshots it and restores the snapshot when the callback fails.
type store struct {
	now time.Time

	requests      map[uuid.UUID]model.ApprovalRequest
	categories    map[uuid.UUID]model.ApprovalCategory
	budgets       map[uuid.UUID]model.BudgetCategory
	employees     map[uuid.UUID]model.Employee
	users         map[uuid.UUID]model.User
	products      map[uuid.UUID]model.Product
	partners      map[uuid.UUID]model.Partner
	supplierInfos []model.SupplierInfo
	locations     []model.StockLocation
	quants        []model.StockQuant
	orders        []model.PurchaseOrder
	transfers     []model.StockTransfer
	attachments   []model.Attachment
	audits        []model.AuditLog
	sequences     map[string]int
}

func newStore(now time.Time) *store {
	return &store{
		now:        now,
		requests:   map[uuid.UUID]model.ApprovalRequest{},
		categories: map[uuid.UUID]model.ApprovalCategory{},
		budgets:    map[uuid.UUID]model.BudgetCategory{},
		employees:  map[uuid.UUID]model.Employee{},
		users:      map[uuid.UUID]model.User{},
		products:   map[uuid.UUID]model.Product{},
		partners:   map[uuid.UUID]model.Partner{},
		sequences:  map[string]int{},
	}
}

func (s *store) clone() store {
	c := *s
	c.requests = make(map[uuid.UUID]model.ApprovalRequest, len(s.requests))
	for id, r := range s.requests {
		r.Lines = slices.Clone(r.Lines)
		c.requests[id] = r
	}
	c.categories = maps.Clone(s.categories)
	c.budgets = maps.Clone(s.budgets)
	c.employees = maps.Clone(s.employees)
	c.users = maps.Clone(s.users)
	c.products = maps.Clone(s.products)
	c.partners = maps.Clone(s.partners)
	c.supplierInfos = slices.Clone(s.supplierInfos)
	c.locations = slices.Clone(s.locations)
	c.quants = slices.Clone(s.quants)
	c.orders = make([]model.PurchaseOrder, len(s.orders))
	for i, o := range s.orders {
		o.Lines = slices.Clone(o.Lines)
		c.orders[i] = o
	}
	c.transfers = make([]model.StockTransfer, len(s.transfers))
	for i, t := range s.transfers {
		t.Moves = slices.Clone(t.Moves)
		c.transfers[i] = t
	}
	c.attachments = slices.Clone(s.attachments)
	c.audits = slices.Clone(s.audits)
	c.sequences = maps.Clone(s.sequences)
	return c
}

type fakeTx struct {
	st *store
}

func (t *fakeTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	snapshot := t.st.clone()
	if err := fn(ctx); err != nil {
		*t.st = snapshot
		return err
	}
	return nil
}

// --- approval requests ---

type fakeRequests struct {
	st *store
}

func stripRequest(r *model.ApprovalRequest) {
	r.Category, r.Owner, r.Employee, r.Manager = nil, nil, nil, nil
	r.BudgetCategory, r.Partner = nil, nil
	r.SourceLocation, r.DestLocation = nil, nil
	r.PurchaseOrder, r.StockTransfer = nil, nil
	lines := slices.Clone(r.Lines)
	for i := range lines {
		lines[i].Product = nil
	}
	r.Lines = lines
}

func (f *fakeRequests) Create(_ context.Context, req *model.ApprovalRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = f.st.now
	}
	req.UpdatedAt = req.CreatedAt
	row := *req
	stripRequest(&row)
	f.st.requests[row.ID] = row
	return nil
}

func (f *fakeRequests) load(id uuid.UUID) (*model.ApprovalRequest, error) {
	row, ok := f.st.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	req := row
	req.Lines = slices.Clone(row.Lines)
	sort.SliceStable(req.Lines, func(i, j int) bool { return req.Lines[i].Sequence < req.Lines[j].Sequence })
	for i := range req.Lines {
		if pid := req.Lines[i].ProductID; pid != nil {
			if p, ok := f.st.products[*pid]; ok {
				req.Lines[i].Product = &p
			}
		}
	}
	if c, ok := f.st.categories[req.CategoryID]; ok {
		req.Category = &c
	}
	return &req, nil
}

func (f *fakeRequests) FindByID(_ context.Context, id uuid.UUID) (*model.ApprovalRequest, error) {
	return f.load(id)
}

func (f *fakeRequests) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*model.ApprovalRequest, error) {
	return f.load(id)
}

func (f *fakeRequests) FindByIDWithRelations(_ context.Context, id uuid.UUID) (*model.ApprovalRequest, error) {
	req, err := f.load(id)
	if err != nil {
		return nil, err
	}
	if u, ok := f.st.users[req.OwnerID]; ok {
		req.Owner = &u
	}
	if req.EmployeeID != nil {
		if e, ok := f.st.employees[*req.EmployeeID]; ok {
			req.Employee = &e
		}
	}
	if req.ManagerID != nil {
		if e, ok := f.st.employees[*req.ManagerID]; ok {
			req.Manager = &e
		}
	}
	if req.BudgetCategoryID != nil {
		if b, ok := f.st.budgets[*req.BudgetCategoryID]; ok {
			req.BudgetCategory = &b
		}
	}
	if req.PartnerID != nil {
		if p, ok := f.st.partners[*req.PartnerID]; ok {
			req.Partner = &p
		}
	}
	if req.SourceLocationID != nil {
		req.SourceLocation = f.st.location(*req.SourceLocationID)
	}
	if req.DestLocationID != nil {
		req.DestLocation = f.st.location(*req.DestLocationID)
	}
	if req.PurchaseOrderID != nil {
		req.PurchaseOrder = f.st.order(*req.PurchaseOrderID)
	}
	if req.StockTransferID != nil {
		req.StockTransfer = f.st.transfer(*req.StockTransferID)
	}
	return req, nil
}

func (f *fakeRequests) List(_ context.Context, filter repository.ApprovalFilter) ([]model.ApprovalRequest, int64, error) {
	var matched []model.ApprovalRequest
	for _, r := range f.st.requests {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.OwnerID != nil && r.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.EmployeeID != nil && (r.EmployeeID == nil || *r.EmployeeID != *filter.EmployeeID) {
			continue
		}
		matched = append(matched, r)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Name > matched[j].Name
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := min(start+filter.Limit, len(matched))
	return matched[start:end], total, nil
}

func (f *fakeRequests) Update(_ context.Context, req *model.ApprovalRequest) error {
	row, ok := f.st.requests[req.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	updated := *req
	stripRequest(&updated)
	updated.Lines = row.Lines
	updated.UpdatedAt = f.st.now
	f.st.requests[req.ID] = updated
	return nil
}

func (f *fakeRequests) ReplaceLines(_ context.Context, requestID uuid.UUID, lines []model.ApprovalProductLine) error {
	row, ok := f.st.requests[requestID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored := make([]model.ApprovalProductLine, 0, len(lines))
	for i := range lines {
		lines[i].RequestID = requestID
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
		lines[i].ComputeSubtotal()
		l := lines[i]
		l.Product = nil
		stored = append(stored, l)
	}
	row.Lines = stored
	f.st.requests[requestID] = row
	return nil
}

func (f *fakeRequests) SumApprovedAmount(_ context.Context, budgetCategoryID uuid.UUID, since time.Time, excludeID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range f.st.requests {
		if r.BudgetCategoryID == nil || *r.BudgetCategoryID != budgetCategoryID {
			continue
		}
		if r.Status != model.RequestStatusApproved || r.CreatedAt.Before(since) || r.ID == excludeID {
			continue
		}
		if r.Amount.Valid {
			total = total.Add(r.Amount.Decimal)
		}
	}
	return total, nil
}

func (f *fakeRequests) link(id uuid.UUID, set func(*model.ApprovalRequest) bool) error {
	row, ok := f.st.requests[id]
	if !ok || !set(&row) {
		return repository.ErrLinkAlreadySet
	}
	f.st.requests[id] = row
	return nil
}

func (f *fakeRequests) LinkPurchaseOrder(_ context.Context, id, orderID uuid.UUID) error {
	return f.link(id, func(r *model.ApprovalRequest) bool {
		if r.PurchaseOrderID != nil {
			return false
		}
		r.PurchaseOrderID = &orderID
		return true
	})
}

func (f *fakeRequests) LinkStockTransfer(_ context.Context, id, transferID uuid.UUID) error {
	return f.link(id, func(r *model.ApprovalRequest) bool {
		if r.StockTransferID != nil {
			return false
		}
		r.StockTransferID = &transferID
		return true
	})
}

func (f *fakeRequests) SetStockChecked(_ context.Context, id uuid.UUID, checked bool) error {
	row, ok := f.st.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.StockChecked = checked
	f.st.requests[id] = row
	return nil
}

func (f *fakeRequests) CountByEmployee(_ context.Context, employeeID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range f.st.requests {
		if r.EmployeeID != nil && *r.EmployeeID == employeeID {
			n++
		}
	}
	return n, nil
}

// --- categories and budgets ---

type fakeCategories struct {
	st *store
}

func (f *fakeCategories) FindByID(_ context.Context, id uuid.UUID) (*model.ApprovalCategory, error) {
	c, ok := f.st.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeCategories) FindByName(_ context.Context, name string) (*model.ApprovalCategory, error) {
	for _, c := range f.st.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategories) Create(_ context.Context, c *model.ApprovalCategory) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.st.categories[c.ID] = *c
	return nil
}

func (f *fakeCategories) ListActive(_ context.Context) ([]model.ApprovalCategory, error) {
	var out []model.ApprovalCategory
	for _, c := range f.st.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeBudgets struct {
	st *store
}

func (f *fakeBudgets) FindByID(_ context.Context, id uuid.UUID) (*model.BudgetCategory, error) {
	b, ok := f.st.budgets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (f *fakeBudgets) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.BudgetCategory, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBudgets) FindByName(_ context.Context, name string) (*model.BudgetCategory, error) {
	for _, b := range f.st.budgets {
		if b.Name == name {
			return &b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBudgets) Create(_ context.Context, b *model.BudgetCategory) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	f.st.budgets[b.ID] = *b
	return nil
}

func (f *fakeBudgets) List(_ context.Context) ([]model.BudgetCategory, error) {
	var out []model.BudgetCategory
	for _, b := range f.st.budgets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- people ---

type fakeEmployees struct {
	st *store
}

func (f *fakeEmployees) FindByID(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := f.st.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (f *fakeEmployees) FindByUserID(_ context.Context, userID uuid.UUID) (*model.Employee, error) {
	for _, e := range f.st.employees {
		if e.UserID != nil && *e.UserID == userID {
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployees) FindByWorkEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range f.st.employees {
		if strings.EqualFold(e.WorkEmail, email) {
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployees) ListUnlinkedWithEmail(_ context.Context) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range f.st.employees {
		if e.UserID == nil && e.WorkEmail != "" {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeEmployees) LinkUser(_ context.Context, id, userID uuid.UUID) error {
	e, ok := f.st.employees[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.UserID = &userID
	f.st.employees[id] = e
	return nil
}

func (f *fakeEmployees) Create(_ context.Context, e *model.Employee) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.st.employees[e.ID] = *e
	return nil
}

type fakeUsers struct {
	st *store
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.st.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f *fakeUsers) FindPortalUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.st.users {
		if u.Share && strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// --- catalog ---

type fakeProducts struct {
	st *store
}

func (f *fakeProducts) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.st.products[p.ID] = *p
	return nil
}

func (f *fakeProducts) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := f.st.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeProducts) FindByName(_ context.Context, name string) (*model.Product, error) {
	for _, p := range f.st.products {
		if strings.EqualFold(p.Name, name) {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProducts) Search(_ context.Context, term string, limit int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.st.products {
		if p.PurchaseOK && strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakePartners struct {
	st *store
}

func (f *fakePartners) Create(_ context.Context, p *model.Partner) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.st.partners[p.ID] = *p
	return nil
}

func (f *fakePartners) FindByID(_ context.Context, id uuid.UUID) (*model.Partner, error) {
	p, ok := f.st.partners[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakePartners) FindCompanyByName(_ context.Context, name string) (*model.Partner, error) {
	for _, p := range f.st.partners {
		if p.IsCompany && strings.EqualFold(p.Name, name) {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePartners) SearchVendors(_ context.Context, search string, limit int) ([]model.Partner, error) {
	var out []model.Partner
	for _, p := range f.st.partners {
		if p.IsVendor() && strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeSupplierInfos struct {
	st *store
}

func (f *fakeSupplierInfos) Find(_ context.Context, partnerID, productID uuid.UUID) (*model.SupplierInfo, error) {
	for _, s := range f.st.supplierInfos {
		if s.PartnerID == partnerID && s.ProductID == productID {
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSupplierInfos) Create(_ context.Context, info *model.SupplierInfo) error {
	if info.ID == uuid.Nil {
		info.ID = uuid.New()
	}
	f.st.supplierInfos = append(f.st.supplierInfos, *info)
	return nil
}

// --- stock ---

func (s *store) location(id uuid.UUID) *model.StockLocation {
	for _, l := range s.locations {
		if l.ID == id {
			return &l
		}
	}
	return nil
}

func (s *store) order(id uuid.UUID) *model.PurchaseOrder {
	for _, o := range s.orders {
		if o.ID == id {
			o.Lines = slices.Clone(o.Lines)
			return &o
		}
	}
	return nil
}

func (s *store) transfer(id uuid.UUID) *model.StockTransfer {
	for _, t := range s.transfers {
		if t.ID == id {
			t.Moves = slices.Clone(t.Moves)
			return &t
		}
	}
	return nil
}

func sortLocations(locations []model.StockLocation) {
	sort.SliceStable(locations, func(i, j int) bool {
		if locations[i].CompleteName != locations[j].CompleteName {
			return locations[i].CompleteName < locations[j].CompleteName
		}
		return locations[i].ID.String() < locations[j].ID.String()
	})
}

type fakeLocations struct {
	st *store
}

func (f *fakeLocations) Create(_ context.Context, l *model.StockLocation) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	f.st.locations = append(f.st.locations, *l)
	return nil
}

func (f *fakeLocations) FindByID(_ context.Context, id uuid.UUID) (*model.StockLocation, error) {
	if l := f.st.location(id); l != nil {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLocations) FindByCode(_ context.Context, code string) (*model.StockLocation, error) {
	for _, l := range f.st.locations {
		if l.Code == code {
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLocations) FindInternalByName(_ context.Context, name string) (*model.StockLocation, error) {
	internal := f.internal(nil)
	for _, l := range internal {
		if strings.Contains(strings.ToLower(l.Name), strings.ToLower(name)) {
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLocations) ListInternal(_ context.Context, companyID *uuid.UUID) ([]model.StockLocation, error) {
	return f.internal(companyID), nil
}

func (f *fakeLocations) internal(companyID *uuid.UUID) []model.StockLocation {
	var out []model.StockLocation
	for _, l := range f.st.locations {
		if l.Usage != model.LocationUsageInternal {
			continue
		}
		if companyID != nil && l.CompanyID != nil && *l.CompanyID != *companyID {
			continue
		}
		out = append(out, l)
	}
	sortLocations(out)
	return out
}

type fakeStock struct {
	st *store
}

func (f *fakeStock) AvailableQuantity(_ context.Context, productID, locationID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, q := range f.st.quants {
		if q.ProductID == productID && q.LocationID == locationID {
			total = total.Add(q.Available())
		}
	}
	return total, nil
}

func (f *fakeStock) ListQuantsForUpdate(_ context.Context, productID, locationID uuid.UUID) ([]model.StockQuant, error) {
	var out []model.StockQuant
	for _, q := range f.st.quants {
		if q.ProductID == productID && q.LocationID == locationID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f *fakeStock) UpdateReserved(_ context.Context, quantID uuid.UUID, reserved decimal.Decimal) error {
	for i := range f.st.quants {
		if f.st.quants[i].ID == quantID {
			f.st.quants[i].ReservedQuantity = reserved
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeStock) CreateQuant(_ context.Context, q *model.StockQuant) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	f.st.quants = append(f.st.quants, *q)
	return nil
}

func (f *fakeStock) CountQuants(_ context.Context, productID, locationID uuid.UUID) (int64, error) {
	var n int64
	for _, q := range f.st.quants {
		if q.ProductID == productID && q.LocationID == locationID {
			n++
		}
	}
	return n, nil
}

// --- fulfillment documents ---

type fakeOrders struct {
	st *store
}

func (f *fakeOrders) Create(_ context.Context, o *model.PurchaseOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Lines {
		o.Lines[i].ID = uuid.New()
		o.Lines[i].OrderID = o.ID
	}
	row := *o
	row.Lines = slices.Clone(o.Lines)
	f.st.orders = append(f.st.orders, row)
	return nil
}

func (f *fakeOrders) FindByIDWithLines(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	if o := f.st.order(id); o != nil {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTransfers struct {
	st *store
}

func (f *fakeTransfers) Create(_ context.Context, t *model.StockTransfer) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	for i := range t.Moves {
		t.Moves[i].ID = uuid.New()
		t.Moves[i].TransferID = t.ID
	}
	row := *t
	row.Moves = slices.Clone(t.Moves)
	f.st.transfers = append(f.st.transfers, row)
	return nil
}

func (f *fakeTransfers) Update(_ context.Context, t *model.StockTransfer) error {
	for i := range f.st.transfers {
		if f.st.transfers[i].ID == t.ID {
			moves := f.st.transfers[i].Moves
			f.st.transfers[i] = *t
			f.st.transfers[i].Moves = moves
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeTransfers) UpdateMove(_ context.Context, m *model.StockMove) error {
	for i := range f.st.transfers {
		for j := range f.st.transfers[i].Moves {
			if f.st.transfers[i].Moves[j].ID == m.ID {
				f.st.transfers[i].Moves[j] = *m
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeTransfers) FindByIDWithMoves(_ context.Context, id uuid.UUID) (*model.StockTransfer, error) {
	if t := f.st.transfer(id); t != nil {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAttachments struct {
	st *store
}

func (f *fakeAttachments) Create(_ context.Context, a *model.Attachment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = f.st.now
	f.st.attachments = append(f.st.attachments, *a)
	return nil
}

func (f *fakeAttachments) ListByResource(_ context.Context, resModel string, resID uuid.UUID, description string) ([]model.Attachment, error) {
	var out []model.Attachment
	for _, a := range f.st.attachments {
		if a.ResModel != resModel || a.ResID != resID {
			continue
		}
		if description != "" && a.Description != description {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeSequences struct {
	st *store
}

func (f *fakeSequences) Next(_ context.Context, table, code string, day time.Time) (string, error) {
	prefix := code + "-" + day.Format("20060102") + "-"
	f.st.sequences[table+prefix]++
	return fmt.Sprintf("%s%05d", prefix, f.st.sequences[table+prefix]), nil
}

type fakeAuditRepo struct {
	st *store
}

func (f *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.st.audits = append(f.st.audits, *entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, entityID string, page, limit int) ([]model.AuditLog, int64, error) {
	var out []model.AuditLog
	for _, a := range f.st.audits {
		if entityID == "" || a.EntityID == entityID {
			out = append(out, a)
		}
	}
	total := int64(len(out))
	start := min((page-1)*limit, len(out))
	end := min(start+limit, len(out))
	return out[start:end], total, nil
}

// --- events ---

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// --- fixture ---

const requisitionName = "Stock Requisition"

// fixture wires the real services over the in-memory store.
type fixture struct {
	st        *store
	published *recordingPublisher

	requests  *fakeRequests
	ledger    *BudgetLedger
	resolver  *LocationResolver
	trusted   *TrustedOps
	purchase  *PurchaseOrderBuilder
	transfer  *StockTransferBuilder
	employees EmployeeService
	audit     AuditService
	svc       ApprovalService

	mainStock model.StockLocation
}

type fixtureOption func(*ApprovalServiceDeps, *BudgetPolicy)

func withUnsetCeiling(policy string) fixtureOption {
	return func(_ *ApprovalServiceDeps, p *BudgetPolicy) { p.UnsetCeiling = policy }
}

func withSubmitHook(h SubmitHook) fixtureOption {
	return func(d *ApprovalServiceDeps, _ *BudgetPolicy) { d.SubmitHooks = append(d.SubmitHooks, h) }
}

var fixtureNow = time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)

func newFixture(opts ...fixtureOption) *fixture {
	st := newStore(fixtureNow)
	f := &fixture{st: st, published: &recordingPublisher{}}

	f.mainStock = model.StockLocation{ID: uuid.New(), Name: "Stock", CompleteName: "WH/Stock", Code: "WH/Stock", Usage: model.LocationUsageInternal}
	st.locations = append(st.locations, f.mainStock)

	tx := &fakeTx{st: st}
	f.requests = &fakeRequests{st: st}
	categories := &fakeCategories{st: st}
	budgets := &fakeBudgets{st: st}
	employees := &fakeEmployees{st: st}
	users := &fakeUsers{st: st}
	products := &fakeProducts{st: st}
	partners := &fakePartners{st: st}
	supplierInfos := &fakeSupplierInfos{st: st}
	locations := &fakeLocations{st: st}
	stock := &fakeStock{st: st}
	orders := &fakeOrders{st: st}
	transfers := &fakeTransfers{st: st}
	attachments := &fakeAttachments{st: st}
	sequences := &fakeSequences{st: st}

	deps := ApprovalServiceDeps{}
	policy := BudgetPolicy{}
	for _, opt := range opts {
		opt(&deps, &policy)
	}

	log := zerolog.Nop()
	f.audit = NewAuditService(&fakeAuditRepo{st: st})
	f.ledger = NewBudgetLedger(f.requests, policy)
	f.resolver = NewLocationResolver(stock, locations, "WH/Stock")
	f.trusted = NewTrustedOps(products, partners, supplierInfos, locations, f.audit, "WH/Stock")
	f.purchase = NewPurchaseOrderBuilder(f.requests, orders, products, sequences, attachments, f.trusted, f.audit, log)
	f.transfer = NewStockTransferBuilder(f.requests, transfers, stock, sequences, f.audit, requisitionName, log)
	f.employees = NewEmployeeService(employees, users, f.requests, tx, f.audit, log)

	deps.TxManager = tx
	deps.Requests = f.requests
	deps.Categories = categories
	deps.Budgets = budgets
	deps.Partners = partners
	deps.Products = products
	deps.Locations = locations
	deps.Attachments = attachments
	deps.Sequences = sequences
	deps.Employees = f.employees
	deps.Ledger = f.ledger
	deps.Resolver = f.resolver
	deps.Trusted = f.trusted
	deps.Transfers = f.transfer
	deps.Audit = f.audit
	deps.Publisher = f.published
	deps.Log = log
	deps.Strategies = []FulfillmentStrategy{f.purchase, f.transfer}
	f.svc = NewApprovalService(deps)
	return f
}

func (f *fixture) actor(userID uuid.UUID) Actor {
	return Actor{UserID: userID, Now: fixtureNow}
}

func (f *fixture) addUser(email string, portal bool) model.User {
	u := model.User{ID: uuid.New(), Username: email, Email: email, Share: portal, Role: "staff"}
	if portal {
		u.Role = "portal"
	}
	f.st.users[u.ID] = u
	return u
}

func (f *fixture) addEmployee(name, email string, userID *uuid.UUID, parentID *uuid.UUID) model.Employee {
	e := model.Employee{ID: uuid.New(), Name: name, WorkEmail: email, UserID: userID, ParentID: parentID}
	f.st.employees[e.ID] = e
	return e
}

func (f *fixture) addCategory(c model.ApprovalCategory) model.ApprovalCategory {
	c.ID = uuid.New()
	c.IsActive = true
	if c.HasPeriod == "" {
		c.HasPeriod = model.PeriodNo
	}
	f.st.categories[c.ID] = c
	return c
}

func (f *fixture) purchaseCategory() model.ApprovalCategory {
	return f.addCategory(model.ApprovalCategory{
		Name:         "Purchase Request",
		ApprovalType: model.ApprovalTypePurchase,
		HasAmount:    true,
		HasQuantity:  true,
		HasPartner:   true,
		HasProduct:   true,
		HasReference: true,
	})
}

func (f *fixture) requisitionCategory() model.ApprovalCategory {
	return f.addCategory(model.ApprovalCategory{
		Name:         requisitionName,
		ApprovalType: model.ApprovalTypeOther,
		HasProduct:   true,
	})
}

func (f *fixture) addBudget(name string, ceiling *int64, unlimited bool) model.BudgetCategory {
	b := model.BudgetCategory{ID: uuid.New(), Name: name, Unlimited: unlimited}
	if ceiling != nil {
		b.Ceiling = decimal.NewNullDecimal(decimal.NewFromInt(*ceiling))
	}
	f.st.budgets[b.ID] = b
	return b
}

func (f *fixture) addVendor(name string) model.Partner {
	p := model.Partner{ID: uuid.New(), Name: name, Type: model.PartnerTypeSupplier, IsCompany: true, SupplierRank: 1, IsActive: true}
	f.st.partners[p.ID] = p
	return p
}

func (f *fixture) addProduct(name string, price int64) model.Product {
	p := model.Product{ID: uuid.New(), Name: name, UoM: "Units", PurchaseUoM: "Box", StandardPrice: decimal.NewFromInt(price), PurchaseOK: true, IsStorable: true}
	f.st.products[p.ID] = p
	return p
}

func (f *fixture) addLocation(completeName string) model.StockLocation {
	parts := strings.Split(completeName, "/")
	l := model.StockLocation{ID: uuid.New(), Name: parts[len(parts)-1], CompleteName: completeName, Code: completeName, Usage: model.LocationUsageInternal}
	f.st.locations = append(f.st.locations, l)
	return l
}

func (f *fixture) addQuant(productID, locationID uuid.UUID, qty int64) {
	f.st.quants = append(f.st.quants, model.StockQuant{ID: uuid.New(), ProductID: productID, LocationID: locationID, Quantity: decimal.NewFromInt(qty)})
}

// addApprovedSpend stores an approved request that counts against budget.
func (f *fixture) addApprovedSpend(budgetID, categoryID uuid.UUID, amount int64) {
	id := uuid.New()
	f.st.requests[id] = model.ApprovalRequest{
		ID:               id,
		Name:             "REQ-PAST-" + id.String()[:8],
		CategoryID:       categoryID,
		OwnerID:          uuid.New(),
		Status:           model.RequestStatusApproved,
		Amount:           decimal.NewNullDecimal(decimal.NewFromInt(amount)),
		BudgetCategoryID: &budgetID,
		CreatedAt:        fixtureNow.Add(-24 * time.Hour),
	}
}

func (f *fixture) stored(id string) model.ApprovalRequest {
	return f.st.requests[uuid.MustParse(id)]
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func nullDec(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

func ptr[T any](v T) *T { return &v }
