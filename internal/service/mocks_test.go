package service

import (
	"context"

	"prs-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. They keep entities in maps
// keyed by ID and report missing rows with gorm.ErrRecordNotFound, the same
// signal the real gorm-backed repositories produce.

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

type fakeVendorRepo struct {
	vendors map[uuid.UUID]*model.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: make(map[uuid.UUID]*model.Vendor)}
}

func (f *fakeVendorRepo) Create(_ context.Context, vendor *model.Vendor) error {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	stored := *vendor
	f.vendors[vendor.ID] = &stored
	return nil
}

func (f *fakeVendorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vendor, error) {
	vendor, ok := f.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *vendor
	return &copied, nil
}

func (f *fakeVendorRepo) FindByCode(_ context.Context, code string) (*model.Vendor, error) {
	for _, vendor := range f.vendors {
		if vendor.Code == code {
			copied := *vendor
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVendorRepo) List(_ context.Context) ([]model.Vendor, error) {
	out := make([]model.Vendor, 0, len(f.vendors))
	for _, vendor := range f.vendors {
		out = append(out, *vendor)
	}
	return out, nil
}

func (f *fakeVendorRepo) Update(_ context.Context, vendor *model.Vendor) error {
	if _, ok := f.vendors[vendor.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *vendor
	f.vendors[vendor.ID] = &stored
	return nil
}

func (f *fakeVendorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.vendors, id)
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	stored := *product
	f.products[product.ID] = &stored
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(f.products))
	for _, product := range f.products {
		out = append(out, *product)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *model.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *product
	f.products[product.ID] = &stored
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

type fakeRequestRepo struct {
	requests map[uuid.UUID]*model.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uuid.UUID]*model.Request)}
}

func (f *fakeRequestRepo) Create(_ context.Context, request *model.Request) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	stored := *request
	f.requests[request.ID] = &stored
	return nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Request, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestRepo) List(_ context.Context) ([]model.Request, error) {
	out := make([]model.Request, 0, len(f.requests))
	for _, request := range f.requests {
		out = append(out, *request)
	}
	return out, nil
}

func (f *fakeRequestRepo) ListReviewExcluding(_ context.Context, userID uuid.UUID) ([]model.Request, error) {
	var out []model.Request
	for _, request := range f.requests {
		if request.Status == model.RequestStatusReview && request.UserID != userID {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) MaxRequestNumber(_ context.Context, prefix string) (string, error) {
	max := ""
	for _, request := range f.requests {
		n := request.RequestNumber
		if len(n) >= len(prefix) && n[:len(prefix)] == prefix && n > max {
			max = n
		}
	}
	return max, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, request *model.Request) error {
	if _, ok := f.requests[request.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *request
	f.requests[request.ID] = &stored
	return nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.requests, id)
	return nil
}

// fakeLineItemRepo resolves TotalForRequest against the product fake, the
// same join the SQL implementation performs.
type fakeLineItemRepo struct {
	items    map[uuid.UUID]*model.LineItem
	products *fakeProductRepo
}

func newFakeLineItemRepo(products *fakeProductRepo) *fakeLineItemRepo {
	return &fakeLineItemRepo{items: make(map[uuid.UUID]*model.LineItem), products: products}
}

func (f *fakeLineItemRepo) Create(_ context.Context, item *model.LineItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeLineItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.LineItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeLineItemRepo) List(_ context.Context) ([]model.LineItem, error) {
	out := make([]model.LineItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeLineItemRepo) ListByRequestID(_ context.Context, requestID uuid.UUID) ([]model.LineItem, error) {
	var out []model.LineItem
	for _, item := range f.items {
		if item.RequestID == requestID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeLineItemRepo) Update(_ context.Context, item *model.LineItem) error {
	if _, ok := f.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeLineItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeLineItemRepo) TotalForRequest(_ context.Context, requestID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range f.items {
		if item.RequestID != requestID {
			continue
		}
		product, ok := f.products.products[item.ProductID]
		if !ok {
			continue
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

// fakeTxManager runs the unit of work directly on the caller's context.
type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// captureHub records workflow events pushed through the broadcaster.
type captureHub struct {
	ch chan []byte
}

func newCaptureHub() *captureHub {
	return &captureHub{ch: make(chan []byte, 8)}
}

func (h *captureHub) GetBroadcast() chan []byte {
	return h.ch
}
