package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dairyfront/models"
	"dairyfront/services/session"
	"dairyfront/upstream"
	"dairyfront/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend is the slice of the upstream API the checkout flow needs.
type Backend interface {
	GetSavedAddress(ctx context.Context, token string) (*models.Address, error)
	GetWalletBalance(ctx context.Context, token string) (float64, error)
	CreateSubscription(ctx context.Context, token string, req models.CreateSubscriptionRequest) (string, error)
}

// PaymentTask describes the deferred second-phase payment call for an online
// subscription.
type PaymentTask struct {
	SessionID      string `json:"sessionId"`
	SubscriptionID string `json:"subscriptionId"`
	PaymentRef     string `json:"paymentRef"`
	Token          string `json:"token"`
}

// PaymentScheduler enqueues a payment task to run after a fixed delay.
type PaymentScheduler interface {
	SchedulePaymentCompletion(ctx context.Context, task PaymentTask) error
}

// EntryError is a checkout-entry rejection: the screen cannot be shown, the
// client should navigate to Redirect instead.
type EntryError struct {
	Message  string
	Redirect string
}

func (e *EntryError) Error() string { return e.Message }

// ErrSubmissionInFlight guards against duplicate concurrent submissions.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// DefaultCheckoutService drives the subscription checkout flow for a
// session: draft lifecycle, derived cost, and the submission state machine
// Idle -> Validating -> Submitting -> AwaitingPayment -> Confirmed | Failed.
type DefaultCheckoutService struct {
	Backend  Backend
	Sessions session.Store
	Tasks    PaymentScheduler
}

// Start validates the navigation contract from the product page and opens a
// fresh draft on the session. The saved address and wallet balance are
// fetched concurrently, each recording its own failure so one does not block
// the other.
func (s *DefaultCheckoutService) Start(ctx context.Context, sess *session.Session, input models.CheckoutInput) error {
	if input.Product == nil || input.Product.ID == "" || input.Quantity == 0 || input.SubscriptionType == "" {
		return &EntryError{
			Message:  "Invalid subscription data. Please select a product first.",
			Redirect: "/products",
		}
	}
	if input.Product.PricePerDay <= 0 {
		return &EntryError{
			Message:  "The selected product has an invalid price. Please choose another product.",
			Redirect: "/products",
		}
	}
	if !input.Product.Availability {
		return &EntryError{
			Message:  "The selected product is not available. Please choose another product.",
			Redirect: "/products",
		}
	}

	checkout := &session.Checkout{
		Draft: &models.SubscriptionDraft{
			Product:          *input.Product,
			Quantity:         input.Quantity,
			SubscriptionType: input.SubscriptionType,
			SubscriptionPlan: models.Plan15Days,
			PaymentMethod:    models.PaymentOnline,
		},
		Status: models.CheckoutStatus{State: models.CheckoutIdle, UpdatedAt: time.Now()},
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		addr, err := s.Backend.GetSavedAddress(ctx, sess.UpstreamToken)
		if err != nil {
			utils.GetLogger().Warn("Failed to fetch saved address", zap.Error(err))
			checkout.AddressError = "Could not load your saved address"
			return
		}
		if addr != nil {
			checkout.Draft.Address = *addr
			checkout.HasAddress = true
		}
	}()
	go func() {
		defer wg.Done()
		balance, err := s.Backend.GetWalletBalance(ctx, sess.UpstreamToken)
		if err != nil {
			utils.GetLogger().Warn("Failed to fetch wallet balance", zap.Error(err))
			checkout.WalletError = "Failed to fetch wallet balance"
			return
		}
		checkout.WalletBalance = balance
	}()
	wg.Wait()

	sess.Checkout = checkout
	return s.Sessions.Save(ctx, sess)
}

// View assembles the checkout screen payload; the cost breakdown is derived
// from the draft on every call.
func (s *DefaultCheckoutService) View(sess *session.Session) (*models.CheckoutView, error) {
	co := sess.Checkout
	if co == nil {
		return nil, &EntryError{
			Message:  "Invalid subscription data. Please select a product first.",
			Redirect: "/products",
		}
	}

	view := &models.CheckoutView{
		Draft:         co.Draft,
		HasAddress:    co.HasAddress,
		AddressError:  co.AddressError,
		WalletBalance: co.WalletBalance,
		WalletError:   co.WalletError,
		Status:        co.Status,
	}
	if co.Draft != nil {
		view.Cost = CalculateCost(co.Draft.Product.PricePerDay, co.Draft.Quantity,
			co.Draft.SubscriptionType, co.Draft.SubscriptionPlan)
	}
	return view, nil
}

func (s *DefaultCheckoutService) draft(sess *session.Session) (*models.SubscriptionDraft, error) {
	if sess.Checkout == nil || sess.Checkout.Draft == nil {
		return nil, &EntryError{
			Message:  "Invalid subscription data. Please select a product first.",
			Redirect: "/products",
		}
	}
	return sess.Checkout.Draft, nil
}

// SetPlan updates the plan choice on the draft.
func (s *DefaultCheckoutService) SetPlan(ctx context.Context, sess *session.Session, plan string) error {
	draft, err := s.draft(sess)
	if err != nil {
		return err
	}
	draft.SubscriptionPlan = plan
	return s.Sessions.Save(ctx, sess)
}

// SetAddress updates the delivery address on the draft. The address is only
// validated at submission, so partially filled forms are fine here.
func (s *DefaultCheckoutService) SetAddress(ctx context.Context, sess *session.Session, addr models.Address) error {
	draft, err := s.draft(sess)
	if err != nil {
		return err
	}
	draft.Address = addr
	return s.Sessions.Save(ctx, sess)
}

// SetPaymentMethod switches between wallet and online payment.
func (s *DefaultCheckoutService) SetPaymentMethod(ctx context.Context, sess *session.Session, method string) error {
	if method != models.PaymentWallet && method != models.PaymentOnline {
		return fmt.Errorf("unknown payment method: %s", method)
	}
	draft, err := s.draft(sess)
	if err != nil {
		return err
	}
	draft.PaymentMethod = method
	return s.Sessions.Save(ctx, sess)
}

// Discard destroys the draft, as when the user navigates away.
func (s *DefaultCheckoutService) Discard(ctx context.Context, sess *session.Session) error {
	sess.Checkout = nil
	return s.Sessions.Save(ctx, sess)
}

// validateDraft runs the submission preconditions in order and returns the
// first failure as a user-facing message.
func validateDraft(co *session.Checkout) error {
	draft := co.Draft
	if draft == nil || draft.Product.ID == "" {
		return errors.New("Invalid product data. Product ID is required.")
	}
	if draft.Quantity <= 0 {
		return errors.New("Please specify a valid quantity.")
	}
	if draft.SubscriptionType == "" {
		return errors.New("Please select a delivery frequency.")
	}
	if draft.SubscriptionPlan == "" {
		return errors.New("Please select a subscription plan.")
	}
	if err := ValidateAddress(draft.Address); err != nil {
		return err
	}
	if draft.PaymentMethod == models.PaymentWallet {
		cost := CalculateCost(draft.Product.PricePerDay, draft.Quantity,
			draft.SubscriptionType, draft.SubscriptionPlan)
		if co.WalletBalance < cost.TotalCost {
			return errors.New("Insufficient wallet balance")
		}
	}
	return nil
}

func (s *DefaultCheckoutService) fail(ctx context.Context, sess *session.Session, message string) (*models.CheckoutStatus, error) {
	co := sess.Checkout
	co.InFlight = false
	co.Status = models.CheckoutStatus{
		State:     models.CheckoutFailed,
		Error:     message,
		UpdatedAt: time.Now(),
	}
	utils.CheckoutSubmissions.WithLabelValues("failed").Inc()
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	status := co.Status
	return &status, nil
}

// Confirm runs the submission state machine. The draft is preserved on every
// failure so the user can retry without re-entering anything; it is
// destroyed once creation succeeds.
func (s *DefaultCheckoutService) Confirm(ctx context.Context, sess *session.Session) (*models.CheckoutStatus, error) {
	co := sess.Checkout
	if co == nil || co.Draft == nil {
		return nil, &EntryError{
			Message:  "Invalid subscription data. Please select a product first.",
			Redirect: "/products",
		}
	}
	if co.InFlight {
		return nil, ErrSubmissionInFlight
	}

	// Take the submission lock before any network call.
	co.InFlight = true
	co.Status = models.CheckoutStatus{State: models.CheckoutValidating, UpdatedAt: time.Now()}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		co.InFlight = false
		return nil, err
	}

	if err := validateDraft(co); err != nil {
		return s.fail(ctx, sess, err.Error())
	}

	draft := co.Draft
	co.Status = models.CheckoutStatus{State: models.CheckoutSubmitting, UpdatedAt: time.Now()}

	subID, err := s.Backend.CreateSubscription(ctx, sess.UpstreamToken, models.CreateSubscriptionRequest{
		ProductID:         draft.Product.ID,
		Quantity:          draft.Quantity,
		DeliveryFrequency: draft.SubscriptionType,
		SubscriptionPlan:  draft.SubscriptionPlan,
		Address:           draft.Address,
		PaymentMethod:     draft.PaymentMethod,
	})
	if err != nil {
		utils.GetLogger().Error("Subscription creation failed", zap.Error(err))
		return s.fail(ctx, sess, userMessage(err))
	}

	// Creation succeeded: the draft is done.
	co.Draft = nil
	co.InFlight = false

	if draft.PaymentMethod == models.PaymentWallet {
		// The backend creates and activates atomically for wallet payments.
		co.Status = models.CheckoutStatus{
			State:          models.CheckoutConfirmed,
			SubscriptionID: subID,
			Redirect:       "/profile",
			UpdatedAt:      time.Now(),
		}
		utils.CheckoutSubmissions.WithLabelValues("confirmed").Inc()
		if err := s.Sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		status := co.Status
		return &status, nil
	}

	// Online payment: report success now and complete payment after a fixed
	// delay. The outcome of that call never rolls back the creation.
	paymentRef := "DEMO-" + uuid.New().String()
	co.Status = models.CheckoutStatus{
		State:          models.CheckoutAwaitingPayment,
		SubscriptionID: subID,
		PaymentRef:     paymentRef,
		UpdatedAt:      time.Now(),
	}
	utils.CheckoutSubmissions.WithLabelValues("awaiting_payment").Inc()
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	if err := s.Tasks.SchedulePaymentCompletion(ctx, PaymentTask{
		SessionID:      sess.ID,
		SubscriptionID: subID,
		PaymentRef:     paymentRef,
		Token:          sess.UpstreamToken,
	}); err != nil {
		utils.GetLogger().Error("Failed to schedule payment completion",
			zap.String("subscriptionId", subID), zap.Error(err))
		co.Status.PaymentError = "Payment could not be initiated"
		if err := s.Sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
	}

	status := co.Status
	return &status, nil
}

// Status returns the current submission state for polling.
func (s *DefaultCheckoutService) Status(sess *session.Session) (*models.CheckoutStatus, error) {
	if sess.Checkout == nil {
		return nil, &EntryError{
			Message:  "No checkout in progress.",
			Redirect: "/products",
		}
	}
	status := sess.Checkout.Status
	return &status, nil
}

// userMessage surfaces a backend error message verbatim when there is one.
func userMessage(err error) string {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Failed to create subscription"
}
