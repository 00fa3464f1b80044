package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
)

func TestStockAdjustmentRequestToInput(t *testing.T) {
	productID := id.New()

	t.Run("valid negative delta", func(t *testing.T) {
		req := StockAdjustmentRequest{
			ProductID: productID.String(),
			Quantity:  json.Number("-5"),
			Reason:    "SALE",
		}

		input, err := req.ToInput()
		require.NoError(t, err)
		assert.Equal(t, productID, input.ProductID)
		assert.Equal(t, int64(-5), input.QuantityDelta)
	})

	t.Run("fractional quantity rejected", func(t *testing.T) {
		req := StockAdjustmentRequest{
			ProductID: productID.String(),
			Quantity:  json.Number("2.5"),
			Reason:    "ADJUSTMENT",
		}

		_, err := req.ToInput()
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidFormat, appErr.Code)
	})

	t.Run("malformed product id rejected", func(t *testing.T) {
		req := StockAdjustmentRequest{
			ProductID: "not-a-uuid",
			Quantity:  json.Number("1"),
			Reason:    "ADJUSTMENT",
		}

		_, err := req.ToInput()
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidFormat, appErr.Code)
	})

	t.Run("malformed store id rejected", func(t *testing.T) {
		bad := "nope"
		req := StockAdjustmentRequest{
			ProductID: productID.String(),
			Quantity:  json.Number("1"),
			Reason:    "ADJUSTMENT",
			StoreID:   &bad,
		}

		_, err := req.ToInput()
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidFormat, appErr.Code)
	})
}

func TestMovementListRequestToFilter(t *testing.T) {
	t.Run("date only form", func(t *testing.T) {
		req := MovementListRequest{DateFrom: "2026-08-01", DateTo: "2026-08-31"}

		filter, err := req.ToFilter()
		require.NoError(t, err)
		require.NotNil(t, filter.DateFrom)
		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *filter.DateFrom)
	})

	t.Run("rfc3339 form", func(t *testing.T) {
		req := MovementListRequest{DateFrom: "2026-08-01T10:30:00+07:00"}

		filter, err := req.ToFilter()
		require.NoError(t, err)
		require.NotNil(t, filter.DateFrom)
		assert.Equal(t, 10, filter.DateFrom.Hour())
	})

	t.Run("garbage date rejected", func(t *testing.T) {
		req := MovementListRequest{DateFrom: "yesterday"}

		_, err := req.ToFilter()
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidFormat, appErr.Code)
	})
}
