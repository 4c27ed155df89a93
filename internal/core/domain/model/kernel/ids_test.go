package kernel_test

import (
	"encoding/json"
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedIDs_New(t *testing.T) {
	require.NoError(t, kernel.NewOrderID().Validate())
	require.NoError(t, kernel.NewOrderItemID().Validate())
	require.NoError(t, kernel.NewCustomerID().Validate())
	require.NoError(t, kernel.NewProductID().Validate())
	require.NoError(t, kernel.NewPaymentID().Validate())

	assert.False(t, kernel.NewOrderID().IsEqual(kernel.NewOrderID()))
}

func TestTypedIDs_ZeroValueIsNotConstructed(t *testing.T) {
	var id kernel.CustomerID

	err := id.Validate()

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.Contains(t, err.Error(), "customer id")
}

func TestTypedIDs_FromUUID(t *testing.T) {
	u := kernel.NewUUID()

	orderID, err := kernel.OrderIDFromUUID(u)
	require.NoError(t, err)
	assert.True(t, u.IsEqual(orderID.UUID()))

	_, err = kernel.PaymentIDFromUUID(kernel.UUID{})
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestTypedIDs_FromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "canonical", input: "550e8400-e29b-41d4-a716-446655440000"},
		{name: "garbage", input: "order-1", wantErr: errs.ErrValueIsInvalid},
		{name: "nil uuid", input: "00000000-0000-0000-0000-000000000000", wantErr: errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := kernel.ProductIDFromString(tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestTypedIDs_EqualityByValue(t *testing.T) {
	a, err := kernel.OrderIDFromString("550e8400-e29b-41d4-a716-446655440000")
	require.NoError(t, err)
	b, err := kernel.OrderIDFromString("550e8400-e29b-41d4-a716-446655440000")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.Equal(t, a, b)
}

func TestTypedIDs_JSON(t *testing.T) {
	type payload struct {
		OrderID kernel.OrderID `json:"order_id"`
	}
	id := kernel.NewOrderID()

	data, err := json.Marshal(payload{OrderID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"order_id":"`+id.String()+`"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, id.IsEqual(decoded.OrderID))

	err = json.Unmarshal([]byte(`{"order_id":"nope"}`), &decoded)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
