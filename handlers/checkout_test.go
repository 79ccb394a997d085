package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dairyfront/middleware"
	"dairyfront/models"
	"dairyfront/services/checkout"
	"dairyfront/services/session"
	"dairyfront/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleSessionStore hands every request the same session so handler tests
// can inspect it afterwards.
type singleSessionStore struct {
	sess *session.Session
}

func (s *singleSessionStore) Create(ctx context.Context) (*session.Session, error) {
	return s.sess, nil
}

func (s *singleSessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	if s.sess != nil && s.sess.ID == id {
		return s.sess, nil
	}
	return nil, session.ErrNotFound
}

func (s *singleSessionStore) Save(ctx context.Context, sess *session.Session) error { return nil }
func (s *singleSessionStore) Delete(ctx context.Context, id string) error           { return nil }

type stubBackend struct {
	balance  float64
	createID string
}

func (b *stubBackend) GetSavedAddress(ctx context.Context, token string) (*models.Address, error) {
	return nil, nil
}

func (b *stubBackend) GetWalletBalance(ctx context.Context, token string) (float64, error) {
	return b.balance, nil
}

func (b *stubBackend) CreateSubscription(ctx context.Context, token string, req models.CreateSubscriptionRequest) (string, error) {
	return b.createID, nil
}

type noopScheduler struct{}

func (noopScheduler) SchedulePaymentCompletion(ctx context.Context, task checkout.PaymentTask) error {
	return nil
}

func checkoutRouter(backend checkout.Backend, sess *session.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := &singleSessionStore{sess: sess}
	svc := &checkout.DefaultCheckoutService{Backend: backend, Sessions: store, Tasks: noopScheduler{}}
	h := NewCheckoutHandler(svc)

	r := gin.New()
	r.Use(middleware.SessionMiddleware(store))
	r.POST("/checkout/start", h.StartHandler)
	r.GET("/checkout", h.ViewHandler)
	r.POST("/checkout/confirm", h.ConfirmHandler)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestStartHandler_MissingProductRedirects(t *testing.T) {
	r := checkoutRouter(&stubBackend{}, &session.Session{ID: "s1"})

	w := doJSON(r, http.MethodPost, "/checkout/start", `{"quantity":2,"subscriptionType":"daily"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid subscription data. Please select a product first.", resp.Message)
	assert.Equal(t, "/products", resp.Redirect)
}

func TestStartHandler_ReturnsViewWithCost(t *testing.T) {
	r := checkoutRouter(&stubBackend{balance: 100}, &session.Session{ID: "s1"})

	body := `{"product":{"_id":"p1","name":"Milk","pricePerDay":50,"availability":true},"quantity":2,"subscriptionType":"daily"}`
	w := doJSON(r, http.MethodPost, "/checkout/start", body)

	require.Equal(t, http.StatusOK, w.Code)
	var view models.CheckoutView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, models.Plan15Days, view.Draft.SubscriptionPlan)
	assert.Equal(t, 1500.0, view.Cost.TotalCost)
	assert.Equal(t, 100.0, view.WalletBalance)
}

func TestViewHandler_NoCheckoutRedirects(t *testing.T) {
	r := checkoutRouter(&stubBackend{}, &session.Session{ID: "s1"})

	w := doJSON(r, http.MethodGet, "/checkout", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/products", resp.Redirect)
}

func TestConfirmHandler_ValidationFailureIs422(t *testing.T) {
	sess := &session.Session{
		ID: "s1",
		Checkout: &session.Checkout{
			Draft: &models.SubscriptionDraft{
				Product:          models.Product{ID: "p1", PricePerDay: 50, Availability: true},
				Quantity:         1,
				SubscriptionType: models.FrequencyDaily,
				SubscriptionPlan: models.Plan15Days,
				PaymentMethod:    models.PaymentOnline,
				// No address set.
			},
		},
	}
	r := checkoutRouter(&stubBackend{}, sess)

	w := doJSON(r, http.MethodPost, "/checkout/confirm", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var status models.CheckoutStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, models.CheckoutFailed, status.State)
	assert.Equal(t, "Street is required", status.Error)
}

func TestConfirmHandler_InFlightIs409(t *testing.T) {
	sess := &session.Session{
		ID: "s1",
		Checkout: &session.Checkout{
			Draft:    &models.SubscriptionDraft{Product: models.Product{ID: "p1", PricePerDay: 1}},
			InFlight: true,
		},
	}
	r := checkoutRouter(&stubBackend{}, sess)

	w := doJSON(r, http.MethodPost, "/checkout/confirm", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestConfirmHandler_Success(t *testing.T) {
	sess := &session.Session{
		ID: "s1",
		Checkout: &session.Checkout{
			Draft: &models.SubscriptionDraft{
				Product:          models.Product{ID: "p1", PricePerDay: 50, Availability: true},
				Quantity:         1,
				SubscriptionType: models.FrequencyDaily,
				SubscriptionPlan: models.Plan15Days,
				PaymentMethod:    models.PaymentOnline,
				Address: models.Address{
					Street: "12 Dairy Lane", City: "Pune", State: "Maharashtra", Pincode: "411001",
				},
			},
		},
	}
	r := checkoutRouter(&stubBackend{createID: "sub-5"}, sess)

	w := doJSON(r, http.MethodPost, "/checkout/confirm", "")

	require.Equal(t, http.StatusOK, w.Code)
	var status models.CheckoutStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, models.CheckoutAwaitingPayment, status.State)
	assert.Equal(t, "sub-5", status.SubscriptionID)
	assert.True(t, strings.HasPrefix(status.PaymentRef, "DEMO-"))
}
