package validator

import (
	"testing"

	"go-pos-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSale() *model.Sale {
	return &model.Sale{
		OrderID:        "ORDER-1",
		UserID:         uuid.New(),
		TotalAmount:    10000,
		TotalItemCount: 2,
		PaymentMethod:  model.PaymentCash,
		Items: []model.SaleItem{
			{ProductID: uuid.New(), Name: "Kopi", UnitPrice: 5000, Quantity: 2, Subtotal: 10000},
		},
	}
}

func TestValidateStruct_AcceptsCompleteSale(t *testing.T) {
	assert.Empty(t, ValidateStruct(validSale()))
}

func TestValidateStruct_RejectsNilUserID(t *testing.T) {
	sale := validSale()
	sale.UserID = uuid.Nil

	errs := ValidateStruct(sale)
	require.NotEmpty(t, errs)
	assert.Equal(t, "uuid_required", errs[0].Tag)
}

func TestValidateStruct_RejectsNilProductIDInItems(t *testing.T) {
	sale := validSale()
	sale.Items[0].ProductID = uuid.Nil

	errs := ValidateStruct(sale)
	require.NotEmpty(t, errs)
	assert.Equal(t, "uuid_required", errs[0].Tag)
	assert.Contains(t, errs[0].FailedField, "ProductID")
}

func TestValidateStruct_RejectsUnknownPaymentMethod(t *testing.T) {
	sale := validSale()
	sale.PaymentMethod = "VOUCHER"

	errs := ValidateStruct(sale)
	require.NotEmpty(t, errs)
	assert.Equal(t, "oneof", errs[0].Tag)
}
