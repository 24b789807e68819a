package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/AquaBuilt/aqua-built-backend/config"
	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/AquaBuilt/aqua-built-backend/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"
)

type EmailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// EmailService sends the operator digest after a contract has been parsed.
// It is best-effort: ingest never fails because a digest could not be sent.
type EmailService struct {
	config  *config.EmailConfig
	client  *resend.Client
	metrics *EmailMetrics
}

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return NewEmailServiceWithRegistry(cfg, prometheus.DefaultRegisterer)
}

func NewEmailServiceWithRegistry(cfg *config.EmailConfig, reg prometheus.Registerer) *EmailService {
	logger.GetLogger().Infow("Initializing email service",
		"from", cfg.FromAddress, "enabled", cfg.Enabled)
	client := resend.NewClient(cfg.ResendAPIKey)
	metrics := &EmailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aquabuilt_email_send_duration_seconds",
			Help:    "Time taken to send emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aquabuilt_email_errors_total",
			Help: "Total number of email sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aquabuilt_emails_sent_total",
			Help: "Total number of emails sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	return &EmailService{
		config:  cfg,
		client:  client,
		metrics: metrics,
	}
}

// digestData is the template payload for the operator digest.
type digestData struct {
	ClientName    string
	DbxCustomerID string
	ItemCount     int
	AddendumCount int
	GrandTotal    string
}

// SendExtractionDigest notifies the configured operator that a contract was
// parsed. Returns nil without sending when the digest is disabled or no
// recipient is configured.
func (s *EmailService) SendExtractionDigest(ctx context.Context, extraction *types.ContractExtraction) error {
	log := logger.GetLogger()
	if !s.config.Enabled || s.config.DigestRecipient == "" {
		log.Debugw("Extraction digest disabled, skipping send")
		return nil
	}

	startTime := time.Now()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	data := digestData{
		ClientName:    extraction.Location.ClientName,
		ItemCount:     len(extraction.Items),
		AddendumCount: len(extraction.Addenda),
		GrandTotal:    fmt.Sprintf("$%.2f", itemsGrandTotal(extraction.Items)),
	}
	if extraction.Location.DbxCustomerID != nil {
		data.DbxCustomerID = *extraction.Location.DbxCustomerID
	}

	tmpl, err := template.New("digest").Parse(digestEmailTemplate)
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to parse email template", "error", err)
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var htmlContent bytes.Buffer
	if err := tmpl.Execute(&htmlContent, data); err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to execute email template", "error", err)
		return fmt.Errorf("failed to execute template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{s.config.DigestRecipient},
		Subject: fmt.Sprintf("Contract parsed: %s", data.ClientName),
		Html:    htmlContent.String(),
	}

	_, err = s.client.Emails.Send(params)
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to send email",
			"error", err,
			"to", logger.MaskEmail(s.config.DigestRecipient))
		return fmt.Errorf("email send failed: %w", err)
	}

	s.metrics.sentCount.Inc()
	log.Infow("Extraction digest sent",
		"to", logger.MaskEmail(s.config.DigestRecipient),
		"items", data.ItemCount)

	return nil
}

// itemsGrandTotal sums leaf item amounts, skipping structural rows.
func itemsGrandTotal(items []types.OrderItem) float64 {
	var total float64
	for _, item := range items {
		if item.Type == types.ItemTypeItem {
			total += item.Amount
		}
	}
	return total
}

// Template constants
const digestEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Contract Parsed</title>
    <style>
        body {
            font-family: 'sans-serif';
            background-color: #f7f7f7;
            color: #333333;
            margin: 0;
            padding: 20px;
        }
        .container {
            max-width: 600px;
            margin: 20px auto;
            background-color: #ffffff;
            padding: 30px;
            border-radius: 12px;
            box-shadow: 0 4px 8px rgba(0, 0, 0, 0.05);
        }
        h1 {
            color: #1573F4;
            font-size: 24px;
            margin-bottom: 20px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
        }
        td {
            padding: 8px 4px;
            font-size: 15px;
            border-bottom: 1px solid #eeeeee;
        }
        td.label {
            color: #777777;
            width: 45%;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Contract parsed successfully</h1>
        <table>
            <tr><td class="label">Client</td><td>{{.ClientName}}</td></tr>
            <tr><td class="label">Customer ID</td><td>{{.DbxCustomerID}}</td></tr>
            <tr><td class="label">Line items</td><td>{{.ItemCount}}</td></tr>
            <tr><td class="label">Addendum pages</td><td>{{.AddendumCount}}</td></tr>
            <tr><td class="label">Grand total</td><td>{{.GrandTotal}}</td></tr>
        </table>
    </div>
</body>
</html>`
