package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	couponrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/coupon"
	customerrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/customer"
	adminsvc "github.com/iseungsang01/tarot-manager-app/internal/service/admin"
	customersvc "github.com/iseungsang01/tarot-manager-app/internal/service/customer"
	stampsvc "github.com/iseungsang01/tarot-manager-app/internal/service/stamp"
)

const testAdminPassword = "secret-pass"

type fakeCustomerRepo struct {
	byID map[string]domain.Customer
}

func newFakeCustomerRepo(customers ...domain.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{byID: make(map[string]domain.Customer)}
	for _, c := range customers {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(_ context.Context, in customerrepo.CreateInput) (*domain.Customer, error) {
	for _, c := range r.byID {
		if c.PhoneNumber == in.PhoneNumber {
			return nil, domain.ErrAlreadyExists
		}
	}
	now := time.Now()
	c := domain.Customer{
		ID:          "cust-" + in.PhoneNumber,
		PhoneNumber: in.PhoneNumber,
		Nickname:    in.Nickname,
		Birthday:    in.Birthday,
		FirstVisit:  now,
		LastVisit:   now,
	}
	r.byID[c.ID] = c
	clone := c
	return &clone, nil
}

func (r *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	for _, c := range r.byID {
		if c.PhoneNumber == phone {
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := c
	return &clone, nil
}

func (r *fakeCustomerRepo) List(_ context.Context) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) ListWithBirthday(_ context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, c := range r.byID {
		if c.Birthday != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) ConditionalUpdate(_ context.Context, id string, ch customerrepo.Changes, expectedVersion int64) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if c.Version != expectedVersion {
		return nil, domain.ErrConflict
	}
	if ch.Nickname != nil {
		c.Nickname = *ch.Nickname
	}
	if ch.Birthday != nil {
		b := *ch.Birthday
		c.Birthday = &b
	}
	if ch.CurrentStamps != nil {
		c.CurrentStamps = *ch.CurrentStamps
	}
	if ch.TotalStamps != nil {
		c.TotalStamps = *ch.TotalStamps
	}
	if ch.Coupons != nil {
		c.Coupons = *ch.Coupons
	}
	if ch.VisitCount != nil {
		c.VisitCount = *ch.VisitCount
	}
	if ch.LastVisit != nil {
		c.LastVisit = *ch.LastVisit
	}
	c.Version++
	r.byID[id] = c
	clone := c
	return &clone, nil
}

func (r *fakeCustomerRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeCustomerRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(r.byID))
	r.byID = make(map[string]domain.Customer)
	return n, nil
}

type fakeCouponRepo struct {
	customers *fakeCustomerRepo
	coupons   []domain.Coupon
}

func (r *fakeCouponRepo) Create(_ context.Context, in couponrepo.CreateInput) (*domain.Coupon, error) {
	c := domain.Coupon{ID: in.Code, CustomerID: in.CustomerID, Code: in.Code, IssuedAt: time.Now(), ValidFrom: in.ValidFrom, ValidUntil: in.ValidUntil}
	r.coupons = append(r.coupons, c)
	clone := c
	return &clone, nil
}

func (r *fakeCouponRepo) IssueWithReset(ctx context.Context, in couponrepo.CreateInput, expectedVersion int64, newCouponCount int) (*domain.Coupon, *domain.Customer, error) {
	zero := 0
	updated, err := r.customers.ConditionalUpdate(ctx, in.CustomerID, customerrepo.Changes{CurrentStamps: &zero, Coupons: &newCouponCount}, expectedVersion)
	if err != nil {
		return nil, nil, err
	}
	coupon, err := r.Create(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return coupon, updated, nil
}

func (r *fakeCouponRepo) GetByID(_ context.Context, id string) (*domain.Coupon, error) {
	for _, c := range r.coupons {
		if c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCouponRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Coupon, error) {
	var out []domain.Coupon
	for _, c := range r.coupons {
		if c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCouponRepo) List(_ context.Context, _ couponrepo.ListFilter, _ time.Time) ([]couponrepo.WithCustomer, error) {
	out := make([]couponrepo.WithCustomer, 0, len(r.coupons))
	for _, c := range r.coupons {
		out = append(out, couponrepo.WithCustomer{Coupon: c})
	}
	return out, nil
}

func (r *fakeCouponRepo) FindPendingStamp(_ context.Context, _ string, _ time.Time) (*domain.Coupon, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeCouponRepo) CountBirthdaySince(_ context.Context, _ string, _ time.Time) (int, error) {
	return 0, nil
}

func (r *fakeCouponRepo) SetUsed(_ context.Context, id string, used bool) (*domain.Coupon, error) {
	for i, c := range r.coupons {
		if c.ID == id {
			r.coupons[i].IsUsed = used
			clone := r.coupons[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCouponRepo) Delete(_ context.Context, id string) error {
	for i, c := range r.coupons {
		if c.ID == id {
			r.coupons = append(r.coupons[:i], r.coupons[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeCouponRepo) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type fakeVisitRepo struct {
	visits []domain.Visit
}

func (r *fakeVisitRepo) Insert(_ context.Context, customerID string, stampsAdded int) (*domain.Visit, error) {
	v := domain.Visit{ID: int64(len(r.visits) + 1), CustomerID: customerID, VisitDate: time.Now(), StampsAdded: stampsAdded}
	r.visits = append(r.visits, v)
	clone := v
	return &clone, nil
}

func (r *fakeVisitRepo) ListRecent(_ context.Context, customerID string, limit int) ([]domain.Visit, error) {
	var out []domain.Visit
	for i := len(r.visits) - 1; i >= 0 && len(out) < limit; i-- {
		if r.visits[i].CustomerID == customerID {
			out = append(out, r.visits[i])
		}
	}
	return out, nil
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestRouter(t *testing.T, customers *fakeCustomerRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	coupons := &fakeCouponRepo{customers: customers}
	visits := &fakeVisitRepo{}

	return buildRouter(logDiscard(), nil, Deps{
		CustomerSvc: customersvc.New(customers),
		StampSvc:    stampsvc.New(customers, coupons, visits, 7),
		AdminSvc:    adminsvc.New(string(hash), "test-secret", time.Hour),
		CouponRepo:  coupons,
		VisitRepo:   visits,
	})
}

func doJSON(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, newFakeCustomerRepo())
	rec := doJSON(router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestLookupCustomer_RegistersThenFinds(t *testing.T) {
	router := newTestRouter(t, newFakeCustomerRepo())

	rec := doJSON(router, http.MethodPost, "/api/customers/lookup", `{"phoneNumber":"01012345678","nickname":"달토끼"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("first lookup: expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"registered":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	rec = doJSON(router, http.MethodPost, "/api/customers/lookup", `{"phoneNumber":"010-1234-5678"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("second lookup: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(router, http.MethodPost, "/api/customers/lookup", `{"phoneNumber":"1234"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad phone: expected 400, got %d", rec.Code)
	}
}

func TestAddStamps_FullCardConflict(t *testing.T) {
	customers := newFakeCustomerRepo(domain.Customer{
		ID: "cust-1", PhoneNumber: "010-1234-5678", Nickname: "고객", CurrentStamps: 10, TotalStamps: 10,
	})
	router := newTestRouter(t, customers)

	rec := doJSON(router, http.MethodPost, "/api/customers/cust-1/stamps", `{"count":1}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("full card: expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(router, http.MethodPost, "/api/customers/cust-1/coupons", "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("issue coupon: expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(router, http.MethodPost, "/api/customers/cust-1/coupons", "", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("second issue: expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	router := newTestRouter(t, newFakeCustomerRepo())

	rec := doJSON(router, http.MethodGet, "/admin/customers", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}

	rec = doJSON(router, http.MethodGet, "/admin/customers", "", "not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}
}

func TestAdminLogin_IssuesWorkingToken(t *testing.T) {
	router := newTestRouter(t, newFakeCustomerRepo())

	rec := doJSON(router, http.MethodPost, "/admin/login", `{"password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}

	rec = doJSON(router, http.MethodPost, "/admin/login", `{"password":"`+testAdminPassword+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Token == "" {
		t.Fatalf("token missing from login response: %s", rec.Body.String())
	}

	rec = doJSON(router, http.MethodGet, "/admin/customers", "", body.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("authorized listing: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCorrectStamps_AdminOverride(t *testing.T) {
	customers := newFakeCustomerRepo(domain.Customer{
		ID: "cust-1", PhoneNumber: "010-1234-5678", Nickname: "고객", CurrentStamps: 7, TotalStamps: 50,
	})
	router := newTestRouter(t, customers)

	rec := doJSON(router, http.MethodPost, "/admin/login", `{"password":"`+testAdminPassword+`"}`, "")
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("login: %v", err)
	}

	rec = doJSON(router, http.MethodPut, "/admin/customers/cust-1/stamps", `{"value":3}`, body.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("correct stamps: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	got := customers.byID["cust-1"]
	if got.CurrentStamps != 3 || got.TotalStamps != 46 {
		t.Fatalf("override result: %d current / %d total", got.CurrentStamps, got.TotalStamps)
	}

	// zero is a legal correction value and must bind
	rec = doJSON(router, http.MethodPut, "/admin/customers/cust-1/stamps", `{"value":0}`, body.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("zero correction: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}
