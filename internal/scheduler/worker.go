package scheduler

import (
	"context"
	"fmt"
	"strings"

	"estate_portal_backend/internal/email"
	"estate_portal_backend/platform/config"
	"estate_portal_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	sender  email.Sender
	baseURL string
	log     *logger.Logger
}

// WorkerConfig is what the worker reads from configuration.
type WorkerConfig interface {
	config.SchedulerConfig
	GetAppBaseURL() string
}

func NewWorker(cfg WorkerConfig, sender email.Sender, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := newWorker(sender, cfg.GetAppBaseURL(), log)
	w.server = server
	return w, nil
}

func newWorker(sender email.Sender, baseURL string, log *logger.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{
		mux:     mux,
		sender:  sender,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
	mux.HandleFunc(TaskInquiryNotify, w.handleInquiryNotify)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleInquiryNotify mails the builder (when the listing has a contact
// address) and acknowledges the customer.
func (w *Worker) handleInquiryNotify(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseInquiryNotifyPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	n := email.InquiryNotification{
		ListingName:   payload.ListingName,
		ListingURL:    w.baseURL + "/properties/" + payload.ListingID,
		CustomerName:  payload.CustomerName,
		CustomerEmail: payload.CustomerEmail,
		CustomerPhone: payload.CustomerPhone,
		Message:       payload.Message,
	}

	if payload.BuilderEmail != "" {
		if err := w.sender.SendInquiryNotification(ctx, payload.BuilderEmail, n); err != nil {
			return err
		}
	}
	if payload.CustomerEmail != "" {
		if err := w.sender.SendInquiryAcknowledgement(ctx, payload.CustomerEmail, n); err != nil {
			w.log.Warn("inquiry acknowledgement failed", "inquiryId", payload.InquiryID, "error", err)
		}
	}

	w.log.Info("inquiry notification sent", "inquiryId", payload.InquiryID)
	return nil
}
