package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"dng-api/internal/domain"
	"dng-api/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type finderFunc func(ctx context.Context, code string) (models.Booking, error)

func (f finderFunc) GetByCode(ctx context.Context, code string) (models.Booking, error) {
	return f(ctx, code)
}

func TestDocsServiceGenerateReceipt(t *testing.T) {
	ref := "MOMO-77"
	var asked string
	svc := DocsService{Repo: finderFunc(func(_ context.Context, code string) (models.Booking, error) {
		asked = code
		return models.Booking{
			ID:             1,
			BookingNumber:  code,
			FullName:       "Akosua Ntim",
			Phone:          "0240000000",
			PayerName:      "Akosua Ntim",
			Destination:    "Tamale",
			PickupPoint:    "Kaneshie",
			BusType:        "STC",
			Price:          "220",
			Status:         domain.StatusPaid,
			TransactionRef: &ref,
			CreatedAt:      time.Now(),
		}, nil
	})}

	pdf, name, err := svc.GenerateReceipt(context.Background(), "abcdefghjklmnpqr")
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGHJKLMNPQR", asked)
	assert.Equal(t, "RECEIPT_ABCDEFGHJKLMNPQR.pdf", name)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestDocsServiceNotFound(t *testing.T) {
	svc := DocsService{Repo: finderFunc(func(context.Context, string) (models.Booking, error) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	})}
	_, _, err := svc.GenerateReceipt(context.Background(), "NOPE")
	assert.True(t, domain.IsNotFound(err))

	_, _, err = svc.GenerateReceipt(context.Background(), "")
	assert.True(t, domain.IsValidation(err))
}
