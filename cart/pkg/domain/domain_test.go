package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/language"

	commonErrors "github.com/Alturino/restaurant/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
	return x.Equal(y)
})

func randomLine() Line {
	return Line{
		ID:        ID(fmt.Sprint(gofakeit.IntRange(1, 100000))),
		Name:      gofakeit.Dessert(),
		UnitPrice: decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Quantity:  gofakeit.IntRange(1, 250),
		ImageRef:  gofakeit.URL(),
	}
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
	}{
		{name: "empty cart", lines: []Line{}},
		{
			name: "decimal price and multi digit quantity",
			lines: []Line{
				{ID: "7", Name: "Ceviche", UnitPrice: decimal.RequireFromString("12.35"), Quantity: 12, ImageRef: "https://img/ceviche.png"},
				{ID: "abc-9", Name: "Chicha", UnitPrice: decimal.RequireFromString("0.99"), Quantity: 105},
			},
		},
		{
			name:  "random lines",
			lines: Merge([]Line{randomLine(), randomLine(), randomLine(), randomLine()}),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			blob, err := Encode(test.lines)
			require.NoError(t, err)

			decoded, err := Decode(blob)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(test.lines, decoded, decimalComparer))
		})
	}
}

func TestEncodeWireFormat(t *testing.T) {
	blob, err := Encode([]Line{
		{ID: "3", Name: "Lomo", UnitPrice: decimal.RequireFromString("8.50"), Quantity: 2},
		{ID: "x1", Name: "Agua", UnitPrice: decimal.RequireFromString("1"), Quantity: 1, ImageRef: "a.png"},
	})
	require.NoError(t, err)
	assert.JSONEq(
		t,
		`[{"id":3,"nombre":"Lomo","precio":8.5,"cantidad":2},{"id":"x1","nombre":"Agua","precio":1,"cantidad":1,"img":"a.png"}]`,
		blob,
	)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		blob    string
		want    []Line
		wantErr bool
	}{
		{
			name: "string price and string id",
			blob: `[{"id":"5","nombre":"Papa","precio":"4.20","cantidad":1}]`,
			want: []Line{{ID: "5", Name: "Papa", UnitPrice: decimal.RequireFromString("4.2"), Quantity: 1}},
		},
		{
			name: "duplicate ids are merged into first occurrence",
			blob: `[{"id":1,"nombre":"A","precio":8,"cantidad":1},{"id":2,"nombre":"B","precio":1,"cantidad":1},{"id":1,"nombre":"A","precio":8,"cantidad":2}]`,
			want: []Line{
				{ID: "1", Name: "A", UnitPrice: decimal.NewFromInt(8), Quantity: 3},
				{ID: "2", Name: "B", UnitPrice: decimal.NewFromInt(1), Quantity: 1},
			},
		},
		{name: "not json", blob: `{oops`, wantErr: true},
		{name: "object instead of array", blob: `{"id":1}`, wantErr: true},
		{name: "zero quantity", blob: `[{"id":1,"nombre":"A","precio":8,"cantidad":0}]`, wantErr: true},
		{name: "missing id", blob: `[{"nombre":"A","precio":8,"cantidad":1}]`, wantErr: true},
		{name: "bad price", blob: `[{"id":1,"nombre":"A","precio":"eight","cantidad":1}]`, wantErr: true},
		{name: "missing price", blob: `[{"id":1,"nombre":"A","cantidad":1}]`, wantErr: true},
		{name: "null price", blob: `[{"id":1,"nombre":"A","precio":null,"cantidad":1}]`, wantErr: true},
		{name: "empty price string", blob: `[{"id":1,"nombre":"A","precio":"","cantidad":1}]`, wantErr: true},
		{name: "quantity above bound", blob: `[{"id":1,"nombre":"A","precio":8,"cantidad":1000}]`, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lines, err := Decode(test.blob)
			if test.wantErr {
				assert.ErrorIs(t, err, ErrMalformedCart)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(test.want, lines, decimalComparer))
		})
	}
}

func TestIDJSON(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{id: "42", want: `42`},
		{id: "0", want: `0`},
		{id: "007", want: `"007"`},
		{id: "sku-1", want: `"sku-1"`},
	}
	for _, test := range tests {
		t.Run(test.id.String(), func(t *testing.T) {
			content, err := json.Marshal(test.id)
			require.NoError(t, err)
			assert.Equal(t, test.want, string(content))

			var decoded ID
			require.NoError(t, json.Unmarshal(content, &decoded))
			assert.Equal(t, test.id, decoded)
		})
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		rate  decimal.Decimal
		want  Totals
	}{
		{
			name:  "single line",
			lines: []Line{{ID: "1", Name: "A", UnitPrice: decimal.RequireFromString("8.00"), Quantity: 1}},
			rate:  DefaultTaxRate,
			want: Totals{
				Subtotal:   decimal.RequireFromString("8.00"),
				Tax:        decimal.RequireFromString("0.96"),
				GrandTotal: decimal.RequireFromString("8.96"),
			},
		},
		{
			name: "several lines",
			lines: []Line{
				{ID: "1", Name: "A", UnitPrice: decimal.RequireFromString("8.00"), Quantity: 3},
				{ID: "2", Name: "B", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 2},
			},
			rate: DefaultTaxRate,
			want: Totals{
				Subtotal:   decimal.RequireFromString("29.00"),
				Tax:        decimal.RequireFromString("3.48"),
				GrandTotal: decimal.RequireFromString("32.48"),
			},
		},
		{
			name: "empty",
			rate: DefaultTaxRate,
			want: Totals{Subtotal: decimal.Zero, Tax: decimal.Zero, GrandTotal: decimal.Zero},
		},
		{
			name:  "rounding happens once at the end",
			lines: []Line{{ID: "1", Name: "A", UnitPrice: decimal.RequireFromString("0.10"), Quantity: 3}},
			rate:  DefaultTaxRate,
			want: Totals{
				Subtotal:   decimal.RequireFromString("0.30"),
				Tax:        decimal.RequireFromString("0.04"),
				GrandTotal: decimal.RequireFromString("0.34"),
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ComputeTotals(test.lines, test.rate).Rounded()
			assert.Empty(t, cmp.Diff(test.want, got, decimalComparer))
		})
	}
}

func TestComputeTotalsDoesNotMutate(t *testing.T) {
	lines := []Line{randomLine(), randomLine()}
	before := make([]Line, len(lines))
	copy(before, lines)

	first := ComputeTotals(lines, DefaultTaxRate)
	second := ComputeTotals(lines, DefaultTaxRate)

	assert.Empty(t, cmp.Diff(before, lines, decimalComparer))
	assert.Empty(t, cmp.Diff(first, second, decimalComparer))
}

func TestSorted(t *testing.T) {
	lines := []Line{
		{ID: "3", Name: "zanahoria", Quantity: 1},
		{ID: "2", Name: "Ñandú", Quantity: 1},
		{ID: "1", Name: "ají", Quantity: 1},
		{ID: "5", Name: "nabo", Quantity: 1},
		{ID: "4", Name: "Ají", Quantity: 1},
	}
	before := make([]Line, len(lines))
	copy(before, lines)

	sorted := Sorted(lines, ParseLocale("es"))

	names := []string{}
	for _, l := range sorted {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"ají", "Ají", "nabo", "Ñandú", "zanahoria"}, names)
	assert.Equal(t, before, lines)
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, language.Spanish, ParseLocale("not a locale!"))
	assert.Equal(t, language.English, ParseLocale("en"))
}

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{name: "valid", item: Item{ID: "1", Name: "A", UnitPrice: decimal.NewFromInt(8)}},
		{name: "free item", item: Item{ID: "1", Name: "A", UnitPrice: decimal.Zero}},
		{name: "missing id", item: Item{Name: "A", UnitPrice: decimal.NewFromInt(8)}, wantErr: true},
		{name: "missing name", item: Item{ID: "1", UnitPrice: decimal.NewFromInt(8)}, wantErr: true},
		{name: "negative price", item: Item{ID: "1", Name: "A", UnitPrice: decimal.NewFromInt(-1)}, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.item.Validate()
			if test.wantErr {
				assert.ErrorIs(t, err, commonErrors.ErrInvalidItem)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMerge(t *testing.T) {
	merged := Merge([]Line{
		{ID: "1", Quantity: 1},
		{ID: "1", Quantity: 4},
		{ID: "2", Quantity: 2},
	})
	assert.Equal(t, []Line{{ID: "1", Quantity: 5}, {ID: "2", Quantity: 2}}, merged)
	assert.Equal(t, 7, Count(merged))
	assert.Equal(t, 1, Index(merged, "2"))
	assert.Equal(t, -1, Index(merged, "9"))
}

func TestMergeCapsQuantity(t *testing.T) {
	merged := Merge([]Line{
		{ID: "1", Quantity: MaxQuantity},
		{ID: "1", Quantity: 4},
	})
	assert.Equal(t, []Line{{ID: "1", Quantity: MaxQuantity}}, merged)
}

func TestAddQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		delta    int
		want     int
		wantErr  bool
	}{
		{name: "increment", quantity: 2, delta: 3, want: 5},
		{name: "decrement clamps to one", quantity: 2, delta: -5, want: 1},
		{name: "large negative delta clamps to one", quantity: 5, delta: math.MinInt, want: 1},
		{name: "up to bound", quantity: MaxQuantity - 1, delta: 1, want: MaxQuantity},
		{name: "past bound", quantity: MaxQuantity, delta: 1, wantErr: true},
		{name: "huge delta does not wrap", quantity: 5, delta: math.MaxInt, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := AddQuantity(test.quantity, test.delta)
			if test.wantErr {
				assert.ErrorIs(t, err, commonErrors.ErrInvalidItem)
				assert.Equal(t, test.quantity, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}
