package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"dairyfront/config"
	"dairyfront/models"
	"dairyfront/services/checkout"
	"dairyfront/services/session"
	"dairyfront/upstream"
	"dairyfront/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypePaymentComplete = "payment:complete"

// PaymentBackend is the upstream call the worker issues.
type PaymentBackend interface {
	CompletePayment(ctx context.Context, token, subscriptionID, paymentRef string) error
}

// AsynqScheduler enqueues payment-completion tasks to run after the
// configured delay.
type AsynqScheduler struct {
	client *asynq.Client
	delay  time.Duration
}

func NewAsynqScheduler(delay time.Duration) *AsynqScheduler {
	return &AsynqScheduler{
		client: asynq.NewClient(redisOpts()),
		delay:  delay,
	}
}

func (s *AsynqScheduler) SchedulePaymentCompletion(ctx context.Context, task checkout.PaymentTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	// MaxRetry(0): a failed completion call is recorded on the checkout,
	// never retried automatically; the user resubmits by hand.
	_, err = s.client.EnqueueContext(ctx,
		asynq.NewTask(TypePaymentComplete, payload),
		asynq.ProcessIn(s.delay),
		asynq.MaxRetry(0),
	)
	return err
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitPaymentWorker runs the async worker in background.
func InitPaymentWorker(backend PaymentBackend, sessions session.Store) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePaymentComplete, handlePaymentTask(backend, sessions))

	// Start async worker with retry logic
	go func() {
		log.Println("[PaymentWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[PaymentWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[PaymentWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handlePaymentTask issues the second-phase payment call and records its
// outcome on the session's checkout status. The outcome is independent of
// the already-created subscription, so failures are recorded, not retried,
// and the task itself never errors.
func handlePaymentTask(backend PaymentBackend, sessions session.Store) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p checkout.PaymentTask
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid payment task payload", zap.Error(err))
			return nil
		}

		payErr := backend.CompletePayment(ctx, p.Token, p.SubscriptionID, p.PaymentRef)

		sess, err := sessions.Get(ctx, p.SessionID)
		if err != nil {
			// Session may have expired while the task waited; the backend
			// still holds the authoritative subscription state.
			logger.Warn("Session gone before payment completion was recorded",
				zap.String("sessionId", p.SessionID), zap.Error(err))
			return nil
		}
		if sess.Checkout == nil || sess.Checkout.Status.SubscriptionID != p.SubscriptionID {
			logger.Warn("Checkout state no longer matches payment task",
				zap.String("subscriptionId", p.SubscriptionID))
			return nil
		}

		status := &sess.Checkout.Status
		status.UpdatedAt = time.Now()
		if payErr != nil {
			logger.Error("Payment completion failed",
				zap.String("subscriptionId", p.SubscriptionID), zap.Error(payErr))
			status.PaymentError = paymentUserMessage(payErr)
			utils.PaymentCompletions.WithLabelValues("failed").Inc()
		} else {
			status.State = models.CheckoutConfirmed
			status.PaymentDone = true
			status.PaymentError = ""
			status.Redirect = "/profile"
			utils.PaymentCompletions.WithLabelValues("succeeded").Inc()
		}

		if err := sessions.Save(ctx, sess); err != nil {
			logger.Error("Failed to record payment outcome", zap.Error(err))
		}
		return nil
	}
}

func paymentUserMessage(err error) string {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Payment failed"
}
