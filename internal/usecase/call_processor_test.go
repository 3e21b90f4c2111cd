package usecase

import (
	"context"
	"sync"
	"testing"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"
	"tripvoice-service/pkg/logger"
	"tripvoice-service/pkg/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	upserted []*entity.BookingRecord
	err      error
}

func (f *fakeBookingRepo) Upsert(ctx context.Context, booking *entity.BookingRecord) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, booking)
	return nil
}

func (f *fakeBookingRepo) FindByBookingID(ctx context.Context, bookingID string) (*entity.BookingRecord, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeBookingRepo) FindByCustomerEmail(ctx context.Context, email string) ([]*entity.BookingRecord, error) {
	return nil, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID, status string) error {
	return nil
}

type fakeSummaryStore struct {
	mu     sync.Mutex
	saved  []*entity.CallSummary
	err    error
	latest *entity.CallSummary
}

func (f *fakeSummaryStore) Save(ctx context.Context, summary *entity.CallSummary) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, summary)
	f.latest = summary
	return nil
}

func (f *fakeSummaryStore) GetByCallID(ctx context.Context, callID string) (*entity.CallSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.saved {
		if s.CallID == callID {
			return s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSummaryStore) GetLatest(ctx context.Context) (*entity.CallSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latest == nil {
		return nil, repository.ErrNotFound
	}
	return f.latest, nil
}

type fakeMailer struct {
	sentTo []string
	err    error
}

func (f *fakeMailer) SendCallSummary(ctx context.Context, toEmail string, summary *entity.CallSummary) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, toEmail)
	return nil
}

func newTestCallProcessor(bookings *fakeBookingRepo, store *fakeSummaryStore, mail *fakeMailer) *CallProcessor {
	log := logger.NewNopLogger()
	return NewCallProcessor(
		parser.NewExtractor(log),
		parser.NewSummarizer("Attar Travel Agency", log),
		bookings,
		store,
		mail,
		testMetrics,
		log,
		"fallback@example.com",
	)
}

func bookedTranscript() []entity.Utterance {
	return []entity.Utterance{
		{Role: "user", Message: "My name is Sarah, I want to fly from Bangalore to Jeddah on December 28."},
		{Role: "assistant", Message: "Your booking is confirmed on Air India AI 969 for ₹29,100 in Economy Class. Reference ABC1234567."},
	}
}

func TestProcessCallEndWithBooking(t *testing.T) {
	bookings := &fakeBookingRepo{}
	store := &fakeSummaryStore{}
	mail := &fakeMailer{}

	summary, err := newTestCallProcessor(bookings, store, mail).ProcessCallEnd(context.Background(), &CallReport{
		CallID:     "call-42",
		UserEmail:  "sarah@example.com",
		UserName:   "Sarah",
		Utterances: bookedTranscript(),
	})
	require.NoError(t, err)

	require.Len(t, bookings.upserted, 1)
	booked := bookings.upserted[0]
	assert.Equal(t, "call-42", booked.CallID)
	assert.Equal(t, "sarah@example.com", booked.CustomerEmail)
	assert.Equal(t, "ABC1234567", booked.BookingID)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "call-42", store.saved[0].CallID)
	assert.NotNil(t, store.saved[0].Booking)
	assert.Contains(t, summary.Structured.MainTopic, "Sarah contacted Attar Travel Agency")

	assert.Equal(t, []string{"sarah@example.com"}, mail.sentTo)
}

func TestProcessCallEndInquiryOnly(t *testing.T) {
	bookings := &fakeBookingRepo{}
	store := &fakeSummaryStore{}
	mail := &fakeMailer{}

	transcript := []entity.Utterance{
		{Role: "user", Message: "Hi, what flights do you have to Jeddah?"},
		{Role: "assistant", Message: "We have several daily departures."},
	}

	summary, err := newTestCallProcessor(bookings, store, mail).ProcessCallEnd(context.Background(), &CallReport{
		CallID:     "call-7",
		Utterances: transcript,
	})
	require.NoError(t, err)

	// No confirmation, so nothing persisted but the summary still exists
	assert.Empty(t, bookings.upserted)
	assert.Nil(t, summary.Booking)
	require.Len(t, store.saved, 1)

	// Missing user email falls back to the configured address
	assert.Equal(t, []string{"fallback@example.com"}, mail.sentTo)
}

func TestProcessCallEndMailerFailureStillStores(t *testing.T) {
	bookings := &fakeBookingRepo{}
	store := &fakeSummaryStore{}
	mail := &fakeMailer{err: assert.AnError}

	_, err := newTestCallProcessor(bookings, store, mail).ProcessCallEnd(context.Background(), &CallReport{
		CallID:     "call-9",
		UserEmail:  "x@example.com",
		Utterances: bookedTranscript(),
	})

	assert.Error(t, err)
	assert.Len(t, store.saved, 1)
	assert.Len(t, bookings.upserted, 1)
}

func TestProcessCallEndStoreFailureStillEmails(t *testing.T) {
	bookings := &fakeBookingRepo{}
	store := &fakeSummaryStore{err: assert.AnError}
	mail := &fakeMailer{}

	_, err := newTestCallProcessor(bookings, store, mail).ProcessCallEnd(context.Background(), &CallReport{
		CallID:     "call-10",
		UserEmail:  "x@example.com",
		Utterances: bookedTranscript(),
	})

	assert.Error(t, err)
	assert.Equal(t, []string{"x@example.com"}, mail.sentTo)
}

func TestProcessCallEndWithoutMailer(t *testing.T) {
	bookings := &fakeBookingRepo{}
	store := &fakeSummaryStore{}

	processor := NewCallProcessor(
		parser.NewExtractor(logger.NewNopLogger()),
		parser.NewSummarizer("Attar Travel Agency", logger.NewNopLogger()),
		bookings,
		store,
		nil,
		testMetrics,
		logger.NewNopLogger(),
		"",
	)

	_, err := processor.ProcessCallEnd(context.Background(), &CallReport{
		CallID:     "call-11",
		Utterances: bookedTranscript(),
	})
	require.NoError(t, err)
	assert.Len(t, store.saved, 1)
}
