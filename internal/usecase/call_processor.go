package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"
	"tripvoice-service/pkg/logger"
	"tripvoice-service/pkg/metrics"
	"tripvoice-service/pkg/parser"
	"tripvoice-service/templates"
)

// CallReport carries everything known about a finished call
type CallReport struct {
	CallID     string
	UserEmail  string
	UserName   string
	Timestamp  string
	Utterances []entity.Utterance
}

// CallProcessor runs the end-of-call pipeline: mine the transcript for a
// booking, summarize the conversation, persist the result and email it
type CallProcessor struct {
	extractor    *parser.Extractor
	summarizer   *parser.Summarizer
	bookings     repository.BookingRepository
	summaries    repository.CallSummaryRepository
	mailer       repository.SummaryMailer
	metrics      *metrics.Metrics
	logger       logger.Logger
	defaultEmail string
}

// NewCallProcessor creates a new call processor. The booking repository
// and mailer may be nil when those sinks are not configured.
func NewCallProcessor(
	extractor *parser.Extractor,
	summarizer *parser.Summarizer,
	bookings repository.BookingRepository,
	summaries repository.CallSummaryRepository,
	mailer repository.SummaryMailer,
	metrics *metrics.Metrics,
	logger logger.Logger,
	defaultEmail string,
) *CallProcessor {
	return &CallProcessor{
		extractor:    extractor,
		summarizer:   summarizer,
		bookings:     bookings,
		summaries:    summaries,
		mailer:       mailer,
		metrics:      metrics,
		logger:       logger,
		defaultEmail: defaultEmail,
	}
}

// ProcessCallEnd handles a completed call. Every sink runs even when an
// earlier one fails; failures are logged, counted and joined into the
// returned error.
func (p *CallProcessor) ProcessCallEnd(ctx context.Context, report *CallReport) (*entity.CallSummary, error) {
	start := time.Now()
	defer func() {
		p.metrics.ProcessingTime.Observe(time.Since(start).Seconds())
	}()

	p.metrics.CallsProcessed.Inc()
	p.logger.Info("Processing call end",
		"callId", report.CallID,
		"utterances", len(report.Utterances),
		"userEmail", report.UserEmail)

	var sinkErrs []error

	booking, rejectReason := p.extractor.ExtractBooking(report.Utterances)
	if rejectReason != "" {
		p.metrics.GateRejections.WithLabelValues(rejectReason).Inc()
		p.logger.Info("No confirmed booking in transcript",
			"callId", report.CallID,
			"reason", rejectReason)
		booking = nil
	} else {
		p.metrics.BookingsExtracted.Inc()
		booking.CallID = report.CallID
		if booking.CustomerEmail == "" {
			booking.CustomerEmail = report.UserEmail
		}
		if booking.CustomerName == "" {
			booking.CustomerName = report.UserName
		}

		if p.bookings != nil {
			if err := p.bookings.Upsert(ctx, booking); err != nil {
				p.metrics.ErrorsCount.WithLabelValues("booking_persist").Inc()
				p.logger.Error("Failed to persist booking",
					"callId", report.CallID,
					"bookingId", booking.BookingID,
					"error", err)
				sinkErrs = append(sinkErrs, fmt.Errorf("persist booking: %w", err))
			} else {
				p.logger.Info("Booking persisted",
					"callId", report.CallID,
					"bookingId", booking.BookingID)
			}
		}
	}

	structured := p.summarizer.Summarize(report.Utterances, booking)
	formatted := templates.FormatSummary(structured)

	summary := &entity.CallSummary{
		CallID:     report.CallID,
		Summary:    formatted,
		Structured: structured,
		Booking:    booking,
		Transcript: report.Utterances,
		UserName:   report.UserName,
		Timestamp:  report.Timestamp,
		CreatedAt:  time.Now(),
	}

	if err := p.summaries.Save(ctx, summary); err != nil {
		p.metrics.ErrorsCount.WithLabelValues("summary_store").Inc()
		p.logger.Error("Failed to store call summary", "callId", report.CallID, "error", err)
		sinkErrs = append(sinkErrs, fmt.Errorf("store summary: %w", err))
	}

	toEmail := report.UserEmail
	if toEmail == "" {
		toEmail = p.defaultEmail
	}

	if p.mailer != nil && toEmail != "" {
		if err := p.mailer.SendCallSummary(ctx, toEmail, summary); err != nil {
			p.metrics.ErrorsCount.WithLabelValues("summary_email").Inc()
			sinkErrs = append(sinkErrs, fmt.Errorf("email summary: %w", err))
		} else {
			p.metrics.SummariesEmailed.Inc()
		}
	} else {
		p.logger.Info("Skipping summary email", "callId", report.CallID, "toEmail", toEmail)
	}

	return summary, errors.Join(sinkErrs...)
}
