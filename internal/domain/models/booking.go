package models

import (
	"time"

	"dng-api/internal/domain"
)

// Booking is a single bus-ticket reservation row.
type Booking struct {
	ID             int64                `json:"id"`
	BookingNumber  string               `json:"booking_number"`
	FullName       string               `json:"full_name"`
	Phone          string               `json:"phone"`
	PayerName      string               `json:"payer_name"`
	Destination    string               `json:"destination"`
	PickupPoint    string               `json:"pickup_point"`
	BusType        string               `json:"bus_type"`
	Price          string               `json:"price"`
	Status         domain.BookingStatus `json:"status"`
	Source         string               `json:"source"`
	TransactionRef *string              `json:"transaction_ref"`
	CreatedAt      time.Time            `json:"created_at"`
}

// NewBooking holds the cleaned values persisted by a create.
type NewBooking struct {
	BookingNumber string
	FullName      string
	Phone         string
	PayerName     string
	Destination   string
	PickupPoint   string
	BusType       string
	Price         string
	Status        domain.BookingStatus
	Source        string
}

// CreateBookingInput is the public submission before validation.
type CreateBookingInput struct {
	FullName    string `validate:"required"`
	Phone       string `validate:"required"`
	Destination string `validate:"required"`
	PickupPoint string `validate:"required"`
	BusType     string `validate:"required"`
	Price       string `validate:"required"`
	PayerName   string
}

// CreatedBooking is what a successful create reports back.
type CreatedBooking struct {
	ID            int64                `json:"id"`
	BookingNumber string               `json:"booking_number"`
	Status        domain.BookingStatus `json:"status"`
}

// PaymentConfirmation carries a client's payment reference.
type PaymentConfirmation struct {
	BookingNumber  string
	TransactionRef string
	PayerName      string
}

// BookingPage is one page of the admin listing.
type BookingPage struct {
	Rows []Booking `json:"rows"`
	domain.Pagination
}
