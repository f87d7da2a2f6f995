package worker

// Processes order completion notifications: when the last unit of an order is
// marked completed, the heat report PDF is mailed to the configured address.
// Delivery is best effort; a failed send is logged, never retried (the report
// endpoints always allow regenerating the document on demand).

import (
	"context"
	"encoding/json"

	"github.com/sahilo5/delval-report-management/internal/infra"

	"github.com/rs/zerolog/log"
)

// NotifyJobPayload is the job envelope sent to QueueNotify.
type NotifyJobPayload struct {
	OrderNo string `json:"order_no"`
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

type NotifyWorker struct {
	mailer *infra.Mailer
}

func NewNotifyWorker(mailer *infra.Mailer) *NotifyWorker {
	return &NotifyWorker{mailer: mailer}
}

func (w *NotifyWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload NotifyJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notify_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Str("order_no", payload.OrderNo).Msg("notify_worker: empty to_email - skipping")
		return
	}

	if err := w.mailer.SendReport(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("order_no", payload.OrderNo).Msg("notify_worker: failed to send email")
		return
	}
	log.Info().Str("order_no", payload.OrderNo).Str("to", payload.ToEmail).Msg("notify_worker: completion report sent")
}
