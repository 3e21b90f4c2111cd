package repository

import (
	"context"
	"tripvoice-service/internal/domain/entity"
)

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	Upsert(ctx context.Context, booking *entity.BookingRecord) error
	FindByBookingID(ctx context.Context, bookingID string) (*entity.BookingRecord, error)
	FindByCustomerEmail(ctx context.Context, email string) ([]*entity.BookingRecord, error)
	UpdateStatus(ctx context.Context, bookingID string, status string) error
}
