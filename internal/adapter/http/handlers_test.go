package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/configs"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/adapter/http/middleware"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/adapter/repo"
	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/logging"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/security"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

func init() { gin.SetMode(gin.TestMode) }

// ---- fakes ----

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*usecase.UserRecord // by email
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: make(map[string]*usecase.UserRecord)} }

func (r *memUserRepo) Create(_ context.Context, u *usecase.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*usecase.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*usecase.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*usecase.OrderRecord
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*usecase.OrderRecord)}
}

func (r *memOrderRepo) Create(_ context.Context, o *usecase.OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*usecase.OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID string) ([]usecase.OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []usecase.OrderRecord
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListAll(_ context.Context, status string) ([]usecase.OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []usecase.OrderRecord
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatusIf(_ context.Context, id, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (r *memOrderRepo) UpdatePaymentStatus(_ context.Context, id, ps string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return repo.ErrNotFound
	}
	o.PaymentStatus = ps
	return nil
}

type memMenuRepo struct {
	mu    sync.Mutex
	items map[string]domain.MenuItem
}

func newMemMenuRepo(items ...domain.MenuItem) *memMenuRepo {
	r := &memMenuRepo{items: make(map[string]domain.MenuItem)}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *memMenuRepo) List(context.Context) ([]domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.MenuItem
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *memMenuRepo) GetByID(_ context.Context, id string) (domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return domain.MenuItem{}, repo.ErrNotFound
	}
	return it, nil
}

func (r *memMenuRepo) Update(_ context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return repo.ErrNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *memMenuRepo) ReserveStock(_ context.Context, id string, qty int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok || it.StockQuantity < qty {
		return false, nil
	}
	it.StockQuantity -= qty
	r.items[id] = it
	return true, nil
}

func (r *memMenuRepo) ReleaseStock(_ context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it := r.items[id]
	it.StockQuantity += qty
	r.items[id] = it
	return nil
}

type memAddressRepo struct {
	mu    sync.Mutex
	addrs map[string]domain.Address
}

func newMemAddressRepo() *memAddressRepo { return &memAddressRepo{addrs: make(map[string]domain.Address)} }

func (r *memAddressRepo) ListByUser(_ context.Context, userID string) ([]domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Address
	for _, a := range r.addrs {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAddressRepo) GetByID(_ context.Context, id string) (domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.addrs[id]
	if !ok {
		return domain.Address{}, repo.ErrNotFound
	}
	return a, nil
}

func (r *memAddressRepo) Create(_ context.Context, a *domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addrs[a.ID] = *a
	return nil
}

func (r *memAddressRepo) Update(_ context.Context, a *domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.addrs[a.ID]; !ok {
		return repo.ErrNotFound
	}
	r.addrs[a.ID] = *a
	return nil
}

func (r *memAddressRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.addrs, id)
	return nil
}

func (r *memAddressRepo) ClearDefault(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.addrs {
		if a.UserID == userID && a.IsDefault {
			a.IsDefault = false
			r.addrs[id] = a
		}
	}
	return nil
}

type memIdem struct {
	mu     sync.Mutex
	locked map[string]bool
	known  map[string]string
}

func newMemIdem() *memIdem {
	return &memIdem{locked: make(map[string]bool), known: make(map[string]string)}
}

func (f *memIdem) TryLock(_ context.Context, scope, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := scope + "/" + key
	if f.locked[k] {
		return false, nil
	}
	f.locked[k] = true
	return true, nil
}

func (f *memIdem) Unlock(_ context.Context, scope, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.locked, scope+"/"+key)
	return nil
}

func (f *memIdem) Remember(_ context.Context, scope, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.known[scope+"/"+key] = value
	return nil
}

func (f *memIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.known[scope+"/"+key]
	return v, ok, nil
}

type memStatusCache struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemStatusCache() *memStatusCache { return &memStatusCache{m: make(map[string]string)} }

func (f *memStatusCache) SetStatus(_ context.Context, id, s string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[id] = s
	return nil
}

func (f *memStatusCache) GetStatus(_ context.Context, id string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.m[id]
	return s, ok, nil
}

type nopPublisher struct{}

func (nopPublisher) PublishStatusChanged(context.Context, usecase.OrderStatusChangedMsg) error {
	return nil
}

// ---- harness ----

type testEnv struct {
	router *gin.Engine
	cfg    configs.Config
	users  *memUserRepo
	orders *memOrderRepo
	menu   *memMenuRepo
	addrs  *memAddressRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	var cfg configs.Config
	cfg.Security.JWTSecret = "test-secret"
	cfg.Security.Issuer = "garden-api"
	cfg.Security.Audience = "garden-app"
	cfg.Security.TTL = time.Hour
	cfg.Pricing.Currency = "INR"
	cfg.Pricing.DeliveryFee = 4000
	cfg.Pricing.TaxBasisPoints = 500

	env := &testEnv{
		cfg:    cfg,
		users:  newMemUserRepo(),
		orders: newMemOrderRepo(),
		addrs:  newMemAddressRepo(),
		menu: newMemMenuRepo(
			domain.MenuItem{ID: "m1", Name: "Paneer Tikka", Price: domain.NewMoney(24900, "INR"), StockQuantity: 10, IsAvailable: true},
			domain.MenuItem{ID: "m2", Name: "Garlic Naan", Price: domain.NewMoney(5900, "INR"), StockQuantity: 10, IsAvailable: true},
		),
	}

	pricing := usecase.Pricing{Currency: "INR", DeliveryFee: 4000, TaxBasisPoints: 500}
	place := usecase.NewPlaceOrder(env.orders, env.menu, newMemIdem(), pricing)
	update := usecase.NewUpdateOrderStatus(env.orders, newMemStatusCache(), nopPublisher{}, logging.New("test"))
	inventory := usecase.NewInventory(env.menu, nil)

	env.router = NewRouter(Handlers{
		Auth:    NewAuthHandler(cfg, env.users),
		Menu:    NewMenuHandler(env.menu, nil),
		Orders:  NewOrderHandler(place, env.orders, newMemStatusCache()),
		Address: NewAddressHandler(env.addrs),
		Admin:   NewAdminHandler(env.orders, update, inventory),
	}, middleware.NewAuthz(cfg))
	return env
}

func (e *testEnv) token(t *testing.T, userID string, role domain.Role) string {
	t.Helper()
	tok, err := security.IssueToken(e.cfg, userID, role)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestSignupLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, "POST", "/api/auth/signup", "", gin.H{
		"name": "Asha", "email": "Asha@Example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		User  userResp `json:"user"`
		Token string   `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "customer", resp.User.Role)
	assert.Equal(t, "asha@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)

	// duplicate email
	w = env.request(t, "POST", "/api/auth/signup", "", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// login with the same credentials
	w = env.request(t, "POST", "/api/auth/login", "", gin.H{
		"email": "asha@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// wrong password
	w = env.request(t, "POST", "/api/auth/login", "", gin.H{
		"email": "asha@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// unknown email
	w = env.request(t, "POST", "/api/auth/login", "", gin.H{
		"email": "ghost@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)
	w := env.request(t, "POST", "/api/auth/signup", "", gin.H{
		"name": "X", "email": "not-an-email", "password": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrdersRequireAuth(t *testing.T) {
	env := newTestEnv(t)
	w := env.request(t, "GET", "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, "GET", "/api/orders", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesForbiddenForCustomers(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "u1", domain.RoleCustomer)
	w := env.request(t, "GET", "/api/admin/orders", tok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPlaceOrderEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "u1", domain.RoleCustomer)

	items := `[{"id":"m1","name":"Paneer Tikka","price":24900,"quantity":2}]`
	w := env.request(t, "POST", "/api/orders", tok, gin.H{
		"userId": "u1", "items": items, "total": 56845, "addressId": "a1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got orderResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, "cash_on_delivery", got.PaymentMethod)
	// 49800 + 4000 + 2490
	assert.Equal(t, int64(56290), got.Total)

	// history shows it
	w = env.request(t, "GET", "/api/orders?userId=u1", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []orderResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// detail, own order
	w = env.request(t, "GET", "/api/orders/"+got.ID, tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// someone else cannot read it
	other := env.token(t, "u2", domain.RoleCustomer)
	w = env.request(t, "GET", "/api/orders/"+got.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPlaceOrderForAnotherUserForbidden(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "u1", domain.RoleCustomer)
	w := env.request(t, "POST", "/api/orders", tok, gin.H{
		"userId": "u2", "items": "[]",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPlaceOrderOutOfStock(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "u1", domain.RoleCustomer)
	items := `[{"id":"m1","name":"Paneer Tikka","price":24900,"quantity":99}]`
	w := env.request(t, "POST", "/api/orders", tok, gin.H{"userId": "u1", "items": items})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "u1", domain.RoleCustomer)
	w := env.request(t, "POST", "/api/orders", tok, gin.H{"userId": "u1", "items": "[]"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminStatusFlow(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.orders.Create(context.Background(), &usecase.OrderRecord{
		ID: "o1", UserID: "u1", Status: "pending", PaymentStatus: "unpaid",
	}))
	admin := env.token(t, "adm", domain.RoleAdmin)

	// queue listing
	w := env.request(t, "GET", "/api/admin/orders?status=pending", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Orders []orderResp `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(t, listResp.Orders, 1)

	// legal move
	w = env.request(t, "PATCH", "/api/admin/orders", admin, gin.H{"orderId": "o1", "status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// backwards move is rejected
	w = env.request(t, "PATCH", "/api/admin/orders", admin, gin.H{"orderId": "o1", "status": "pending"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// unknown order
	w = env.request(t, "PATCH", "/api/admin/orders", admin, gin.H{"orderId": "ghost", "status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// nothing to update
	w = env.request(t, "PATCH", "/api/admin/orders", admin, gin.H{"orderId": "o1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminInventoryEndpoints(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, "adm", domain.RoleAdmin)

	w := env.request(t, "GET", "/api/admin/inventory", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var inv struct {
		Items   []menuItemResp       `json:"items"`
		Metrics inventoryMetricsResp `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
	assert.Equal(t, 2, inv.Metrics.TotalItems)

	w = env.request(t, "PUT", "/api/admin/inventory/m1", admin, gin.H{"price": 25900, "stockQuantity": 5})
	require.Equal(t, http.StatusOK, w.Code)
	var item menuItemResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, int64(25900), item.Price)
	assert.Equal(t, 5, item.StockQuantity)
	// untouched field survives
	assert.Equal(t, "Paneer Tikka", item.Name)
}

func TestMenuPublic(t *testing.T) {
	env := newTestEnv(t)
	w := env.request(t, "GET", "/api/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []menuItemResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestAddressLifecycle(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "u1", domain.RoleCustomer)

	w := env.request(t, "POST", "/api/addresses", tok, gin.H{
		"street": "12 MG Road", "city": "Bengaluru", "zip": "560001", "isDefault": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first addressResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.True(t, first.IsDefault)

	// a second default demotes the first
	w = env.request(t, "POST", "/api/addresses", tok, gin.H{
		"street": "7 Park Street", "city": "Kolkata", "zip": "700016", "isDefault": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, "GET", "/api/addresses?userId=u1", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var addrs []addressResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &addrs))
	require.Len(t, addrs, 2)
	defaults := 0
	for _, a := range addrs {
		if a.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)

	// other users cannot touch it
	other := env.token(t, "u2", domain.RoleCustomer)
	w = env.request(t, "DELETE", "/api/addresses/"+first.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, "DELETE", "/api/addresses/"+first.ID, tok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
