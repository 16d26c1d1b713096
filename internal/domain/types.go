package domain

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusPaid      BookingStatus = "Paid"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
)

// SourceClient tags rows submitted through the public booking endpoint.
const SourceClient = "client"

// ParseBookingStatus accepts only the four exact status names.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(s); st {
	case StatusPending, StatusPaid, StatusConfirmed, StatusCancelled:
		return st, true
	default:
		return "", false
	}
}

// Pagination carries paging params and totals.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}
