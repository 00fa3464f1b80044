package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/domain/sales"
)

func validSaleRequest() CreateSaleRequest {
	return CreateSaleRequest{
		TenantID:      id.New().String(),
		StoreID:       id.New().String(),
		CashierUserID: id.New().String(),
		Items: []SaleItemRequest{
			{ProductID: id.New().String(), Qty: 2, UnitPriceCents: 750000},
		},
	}
}

func TestCreateSaleRequestToInput(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := validSaleRequest()
		method := "QRIS"
		req.PaymentMethod = &method

		tenantID, input, err := req.ToInput()
		require.NoError(t, err)
		assert.Equal(t, req.TenantID, tenantID.String())
		require.Len(t, input.Items, 1)
		assert.Equal(t, int64(2), input.Items[0].Qty)
		require.NotNil(t, input.PaymentMethod)
		assert.Equal(t, sales.MethodQRIS, *input.PaymentMethod)
	})

	t.Run("bad tenant id", func(t *testing.T) {
		req := validSaleRequest()
		req.TenantID = "12345"

		_, _, err := req.ToInput()
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidFormat, appErr.Code)
	})

	t.Run("bad item product id", func(t *testing.T) {
		req := validSaleRequest()
		req.Items[0].ProductID = "abc"

		_, _, err := req.ToInput()
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "sales.invalid_items", appErr.MessageKey)
	})
}

func TestSaleListRequestToFilter(t *testing.T) {
	tenantID := id.New()

	t.Run("offset carried as given", func(t *testing.T) {
		req := SaleListRequest{TenantID: tenantID.String(), Limit: 50, Offset: 75}

		got, filter, err := req.ToFilter()
		require.NoError(t, err)
		assert.Equal(t, tenantID, got)
		assert.Equal(t, 75, filter.Offset)
		assert.Equal(t, 50, filter.Limit)
	})

	t.Run("normalize clamps bounds", func(t *testing.T) {
		req := SaleListRequest{TenantID: tenantID.String(), Offset: -3}

		_, filter, err := req.ToFilter()
		require.NoError(t, err)

		filter.Normalize()
		assert.Equal(t, 0, filter.Offset)
		assert.Equal(t, 50, filter.Limit)
	})
}
