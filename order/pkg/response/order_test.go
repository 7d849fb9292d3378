package response

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/restaurant/cart/pkg/domain"
)

func TestOrderUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Order
	}{
		{
			name: "camel case with numeric total",
			body: `{"id":12,"status":"Pendiente","total":26.88,"createdAt":"2025-03-01T10:00:00Z"}`,
			want: Order{ID: "12", Status: STATUS_PENDING, Total: decimal.RequireFromString("26.88"), CreatedAt: "2025-03-01T10:00:00Z"},
		},
		{
			name: "snake case with string total and nested item",
			body: `{"id":"A-1","total":"8.96","created_at":"2025-03-01","items":[{"item":{"id":3,"title":"Lomo"},"quantity":2,"precio":"4.00"}]}`,
			want: Order{
				ID:        "A-1",
				Total:     decimal.RequireFromString("8.96"),
				CreatedAt: "2025-03-01",
				Items:     []OrderItem{{ItemID: "3", Title: "Lomo", Quantity: 2, Price: decimal.RequireFromString("4.00")}},
			},
		},
		{
			name: "date fallback",
			body: `{"id":1,"total":0,"date":"today"}`,
			want: Order{ID: "1", Total: decimal.Zero, CreatedAt: "today"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Order{}
			require.NoError(t, json.Unmarshal([]byte(test.body), &got))
			assert.Equal(t, test.want.ID, got.ID)
			assert.Equal(t, test.want.Status, got.Status)
			assert.True(t, test.want.Total.Equal(got.Total))
			assert.Equal(t, test.want.CreatedAt, got.CreatedAt)
			require.Len(t, got.Items, len(test.want.Items))
			for i := range got.Items {
				assert.Equal(t, test.want.Items[i].ItemID, got.Items[i].ItemID)
				assert.Equal(t, test.want.Items[i].Title, got.Items[i].Title)
				assert.Equal(t, test.want.Items[i].Quantity, got.Items[i].Quantity)
				assert.True(t, test.want.Items[i].Price.Equal(got.Items[i].Price))
			}
			assert.IsType(t, domain.ID(""), got.ID)
		})
	}
}

func TestOrderCustomer(t *testing.T) {
	got := Order{}
	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"total":1,"cliente":{"nombres":"Ana","apellidos":"Quispe"}}`), &got))
	assert.Equal(t, "Ana Quispe", got.Customer.String())

	got = Order{}
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"total":1}`), &got))
	assert.Nil(t, got.Customer)
	assert.Equal(t, "unknown", got.Customer.String())
}
