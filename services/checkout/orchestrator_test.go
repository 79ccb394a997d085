package checkout

import (
	"context"
	"strings"
	"testing"

	"dairyfront/models"
	"dairyfront/services/session"
	"dairyfront/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	sessions map[string]*session.Session
	saves    int
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*session.Session)}
}

func (s *memStore) Create(ctx context.Context) (*session.Session, error) {
	sess := &session.Session{ID: "test-session"}
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *memStore) Get(ctx context.Context, id string) (*session.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

func (s *memStore) Save(ctx context.Context, sess *session.Session) error {
	s.saves++
	s.sessions[sess.ID] = sess
	return nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type fakeBackend struct {
	addr       *models.Address
	addrErr    error
	balance    float64
	balanceErr error

	createID    string
	createErr   error
	createCalls int
	lastRequest models.CreateSubscriptionRequest
}

func (b *fakeBackend) GetSavedAddress(ctx context.Context, token string) (*models.Address, error) {
	return b.addr, b.addrErr
}

func (b *fakeBackend) GetWalletBalance(ctx context.Context, token string) (float64, error) {
	return b.balance, b.balanceErr
}

func (b *fakeBackend) CreateSubscription(ctx context.Context, token string, req models.CreateSubscriptionRequest) (string, error) {
	b.createCalls++
	b.lastRequest = req
	return b.createID, b.createErr
}

type fakeScheduler struct {
	tasks []PaymentTask
}

func (s *fakeScheduler) SchedulePaymentCompletion(ctx context.Context, task PaymentTask) error {
	s.tasks = append(s.tasks, task)
	return nil
}

func testProduct() *models.Product {
	return &models.Product{
		ID:           "prod-1",
		Name:         "Full Cream Milk",
		Category:     "milk",
		PricePerDay:  50,
		Availability: true,
		Quantity:     100,
	}
}

func newTestService(backend *fakeBackend) (*DefaultCheckoutService, *memStore, *fakeScheduler) {
	store := newMemStore()
	scheduler := &fakeScheduler{}
	svc := &DefaultCheckoutService{Backend: backend, Sessions: store, Tasks: scheduler}
	return svc, store, scheduler
}

func startedSession(t *testing.T, svc *DefaultCheckoutService, store *memStore) *session.Session {
	t.Helper()
	sess, err := store.Create(context.Background())
	require.NoError(t, err)
	sess.UpstreamToken = "upstream-token"

	err = svc.Start(context.Background(), sess, models.CheckoutInput{
		Product:          testProduct(),
		Quantity:         2,
		SubscriptionType: models.FrequencyDaily,
	})
	require.NoError(t, err)
	return sess
}

func TestStart_RejectsMissingNavigationData(t *testing.T) {
	svc, store, _ := newTestService(&fakeBackend{})
	sess, _ := store.Create(context.Background())

	cases := []models.CheckoutInput{
		{},
		{Product: testProduct(), Quantity: 2},                               // no frequency
		{Product: testProduct(), SubscriptionType: models.FrequencyDaily},   // no quantity
		{Quantity: 2, SubscriptionType: models.FrequencyDaily},              // no product
		{Product: &models.Product{Name: "no id", PricePerDay: 10}, Quantity: 1, SubscriptionType: "daily"},
	}

	for _, input := range cases {
		err := svc.Start(context.Background(), sess, input)
		var entryErr *EntryError
		require.ErrorAs(t, err, &entryErr)
		assert.Equal(t, "/products", entryErr.Redirect)
		assert.Nil(t, sess.Checkout)
	}
}

func TestStart_RejectsInvalidPriceAndUnavailable(t *testing.T) {
	svc, store, _ := newTestService(&fakeBackend{})
	sess, _ := store.Create(context.Background())

	free := testProduct()
	free.PricePerDay = 0
	err := svc.Start(context.Background(), sess, models.CheckoutInput{
		Product: free, Quantity: 1, SubscriptionType: models.FrequencyDaily,
	})
	var entryErr *EntryError
	require.ErrorAs(t, err, &entryErr)
	assert.Contains(t, entryErr.Message, "invalid price")

	gone := testProduct()
	gone.Availability = false
	err = svc.Start(context.Background(), sess, models.CheckoutInput{
		Product: gone, Quantity: 1, SubscriptionType: models.FrequencyDaily,
	})
	require.ErrorAs(t, err, &entryErr)
	assert.Contains(t, entryErr.Message, "not available")
}

func TestStart_FetchesAddressAndWallet(t *testing.T) {
	saved := models.Address{Street: "12 Dairy Lane", City: "Pune", State: "Maharashtra", Pincode: "411001"}
	svc, store, _ := newTestService(&fakeBackend{addr: &saved, balance: 500})

	sess := startedSession(t, svc, store)

	require.NotNil(t, sess.Checkout)
	assert.True(t, sess.Checkout.HasAddress)
	assert.Equal(t, saved, sess.Checkout.Draft.Address)
	assert.Equal(t, 500.0, sess.Checkout.WalletBalance)
	assert.Empty(t, sess.Checkout.AddressError)
	assert.Empty(t, sess.Checkout.WalletError)
}

func TestStart_PartialFetchFailureDoesNotBlockTheOther(t *testing.T) {
	svc, store, _ := newTestService(&fakeBackend{
		addr:       &models.Address{Street: "s", City: "c", State: "st", Pincode: "411001"},
		balanceErr: upstream.ErrUnavailable,
	})

	sess := startedSession(t, svc, store)

	assert.True(t, sess.Checkout.HasAddress)
	assert.NotEmpty(t, sess.Checkout.WalletError)
	assert.Zero(t, sess.Checkout.WalletBalance)
}

func TestView_RecomputesCostFromDraft(t *testing.T) {
	svc, store, _ := newTestService(&fakeBackend{balance: 100})
	sess := startedSession(t, svc, store)

	view, err := svc.View(sess)
	require.NoError(t, err)
	assert.Equal(t, models.Plan15Days, view.Draft.SubscriptionPlan)
	assert.Equal(t, 15, view.Cost.TotalDeliveries)
	assert.Equal(t, 1500.0, view.Cost.TotalCost)

	require.NoError(t, svc.SetPlan(context.Background(), sess, models.Plan1Month))

	view, err = svc.View(sess)
	require.NoError(t, err)
	assert.Equal(t, 30, view.Cost.TotalDeliveries)
	assert.Equal(t, 3000.0, view.Cost.TotalCost)
}

func TestConfirm_InsufficientWalletNeverCallsBackend(t *testing.T) {
	backend := &fakeBackend{balance: 50}
	svc, store, _ := newTestService(backend)
	sess := startedSession(t, svc, store)

	require.NoError(t, svc.SetAddress(context.Background(), sess,
		models.Address{Street: "s", City: "c", State: "st", Pincode: "411001"}))
	require.NoError(t, svc.SetPaymentMethod(context.Background(), sess, models.PaymentWallet))

	status, err := svc.Confirm(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, models.CheckoutFailed, status.State)
	assert.Equal(t, "Insufficient wallet balance", status.Error)
	assert.Zero(t, backend.createCalls)
	// Draft survives for retry.
	require.NotNil(t, sess.Checkout.Draft)
	assert.False(t, sess.Checkout.InFlight)
}

func TestConfirm_InvalidAddressBlocksSubmission(t *testing.T) {
	backend := &fakeBackend{balance: 10000}
	svc, store, _ := newTestService(backend)
	sess := startedSession(t, svc, store)

	require.NoError(t, svc.SetAddress(context.Background(), sess,
		models.Address{Street: "s", City: "c", State: "st", Pincode: "12a456"}))

	status, err := svc.Confirm(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, models.CheckoutFailed, status.State)
	assert.Contains(t, status.Error, "Pincode")
	assert.Zero(t, backend.createCalls)
}

func TestConfirm_WalletPaymentConfirmsImmediately(t *testing.T) {
	backend := &fakeBackend{balance: 10000, createID: "sub-42"}
	svc, store, scheduler := newTestService(backend)
	sess := startedSession(t, svc, store)

	require.NoError(t, svc.SetAddress(context.Background(), sess,
		models.Address{Street: "s", City: "c", State: "st", Pincode: "411001"}))
	require.NoError(t, svc.SetPaymentMethod(context.Background(), sess, models.PaymentWallet))

	status, err := svc.Confirm(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, models.CheckoutConfirmed, status.State)
	assert.Equal(t, "sub-42", status.SubscriptionID)
	assert.Equal(t, "/profile", status.Redirect)
	assert.Equal(t, models.PaymentWallet, backend.lastRequest.PaymentMethod)
	// Draft destroyed on success; no deferred payment for wallet.
	assert.Nil(t, sess.Checkout.Draft)
	assert.Empty(t, scheduler.tasks)
}

func TestConfirm_OnlinePaymentSchedulesCompletion(t *testing.T) {
	backend := &fakeBackend{balance: 0, createID: "sub-77"}
	svc, store, scheduler := newTestService(backend)
	sess := startedSession(t, svc, store)

	require.NoError(t, svc.SetAddress(context.Background(), sess,
		models.Address{Street: "s", City: "c", State: "st", Pincode: "411001"}))

	status, err := svc.Confirm(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, models.CheckoutAwaitingPayment, status.State)
	assert.Equal(t, "sub-77", status.SubscriptionID)
	assert.True(t, strings.HasPrefix(status.PaymentRef, "DEMO-"))

	require.Len(t, scheduler.tasks, 1)
	task := scheduler.tasks[0]
	assert.Equal(t, sess.ID, task.SessionID)
	assert.Equal(t, "sub-77", task.SubscriptionID)
	assert.Equal(t, status.PaymentRef, task.PaymentRef)
	assert.Equal(t, "upstream-token", task.Token)
}

func TestConfirm_CreateFailurePreservesDraft(t *testing.T) {
	backend := &fakeBackend{
		balance:   10000,
		createErr: &upstream.APIError{Status: 409, Message: "Product is out of stock"},
	}
	svc, store, _ := newTestService(backend)
	sess := startedSession(t, svc, store)

	addr := models.Address{Street: "s", City: "c", State: "st", Pincode: "411001"}
	require.NoError(t, svc.SetAddress(context.Background(), sess, addr))
	require.NoError(t, svc.SetPlan(context.Background(), sess, models.Plan3Months))

	before := *sess.Checkout.Draft
	status, err := svc.Confirm(context.Background(), sess)
	require.NoError(t, err)

	// Server message is surfaced verbatim.
	assert.Equal(t, models.CheckoutFailed, status.State)
	assert.Equal(t, "Product is out of stock", status.Error)

	// The draft is untouched so the user can retry without re-entering.
	require.NotNil(t, sess.Checkout.Draft)
	assert.Equal(t, before, *sess.Checkout.Draft)
	assert.False(t, sess.Checkout.InFlight)

	// A retry after the backend recovers goes through.
	backend.createErr = nil
	backend.createID = "sub-okay"
	status, err = svc.Confirm(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutAwaitingPayment, status.State)
	assert.Equal(t, 2, backend.createCalls)
}

func TestConfirm_GenericMessageWhenBackendUnreachable(t *testing.T) {
	backend := &fakeBackend{balance: 10000, createErr: upstream.ErrUnavailable}
	svc, store, _ := newTestService(backend)
	sess := startedSession(t, svc, store)

	require.NoError(t, svc.SetAddress(context.Background(), sess,
		models.Address{Street: "s", City: "c", State: "st", Pincode: "411001"}))

	status, err := svc.Confirm(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "Failed to create subscription", status.Error)
}

func TestConfirm_RejectsConcurrentSubmission(t *testing.T) {
	svc, store, _ := newTestService(&fakeBackend{balance: 10000, createID: "sub-1"})
	sess := startedSession(t, svc, store)
	sess.Checkout.InFlight = true

	_, err := svc.Confirm(context.Background(), sess)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
}

func TestDiscard_DestroysDraft(t *testing.T) {
	svc, store, _ := newTestService(&fakeBackend{balance: 100})
	sess := startedSession(t, svc, store)

	require.NoError(t, svc.Discard(context.Background(), sess))
	assert.Nil(t, sess.Checkout)

	_, err := svc.View(sess)
	var entryErr *EntryError
	assert.ErrorAs(t, err, &entryErr)
}
