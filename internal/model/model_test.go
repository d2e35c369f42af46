package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageListDecoding(t *testing.T) {
	cases := []struct {
		name string
		body string
		want ImageList
	}{
		{"json array", `["https://a/1.jpg", "https://a/2.jpg"]`, ImageList{"https://a/1.jpg", "https://a/2.jpg"}},
		{"array drops blanks", `["a.jpg", " ", ""]`, ImageList{"a.jpg"}},
		{"string holding json array", `"[\"a.jpg\",\"b.jpg\"]"`, ImageList{"a.jpg", "b.jpg"}},
		{"csv string", `"a.jpg, b.jpg ,,c.jpg"`, ImageList{"a.jpg", "b.jpg", "c.jpg"}},
		{"single url", `"https://cdn/x.png"`, ImageList{"https://cdn/x.png"}},
		{"data uri keeps commas", `"data:image/png;base64,AAAA"`, ImageList{"data:image/png;base64,AAAA"}},
		{"empty string", `""`, ImageList{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got ImageList
			require.NoError(t, json.Unmarshal([]byte(tc.body), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestImageListRejectsNumbers(t *testing.T) {
	var got ImageList
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
}

func TestImageListPointerNullMeansAbsent(t *testing.T) {
	var body struct {
		Images *ImageList `json:"images"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"images": null}`), &body))
	assert.Nil(t, body.Images)
}

func TestProductPatchColumns(t *testing.T) {
	name := "Zapatos"
	visible := false
	price := decimal.NewFromInt(1500)
	patch := ProductPatch{Name: &name, PriceCUP: &price, IsVisible: &visible, Images: []string{}}

	cols := patch.Columns()
	assert.Equal(t, "Zapatos", cols["name"])
	assert.Equal(t, price, cols["price_cup"])
	assert.Equal(t, false, cols["is_visible"])
	assert.Equal(t, pq.StringArray{}, cols["images"])
	assert.NotContains(t, cols, "price_usd")
	assert.NotContains(t, cols, "stock")

	assert.False(t, patch.Empty())
	assert.True(t, ProductPatch{}.Empty())
}

func TestProductPatchApplyKeepsUnsetFields(t *testing.T) {
	product := Product{
		Name:      "Camisa",
		PriceUSD:  decimal.NewFromInt(10),
		Category:  "ropa",
		Stock:     3,
		IsVisible: true,
		Images:    pq.StringArray{"a.jpg"},
	}
	stock := 0
	ProductPatch{Stock: &stock}.Apply(&product)

	assert.Equal(t, 0, product.Stock)
	assert.Equal(t, "Camisa", product.Name)
	assert.True(t, product.PriceUSD.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, pq.StringArray{"a.jpg"}, product.Images)
	assert.True(t, product.IsVisible)
}

func TestStoreHidesPasswordHash(t *testing.T) {
	store := Store{ID: uuid.New(), Name: "Modas Habana", PasswordHash: "$2a$10$secret"}
	body, err := json.Marshal(store)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret")
	assert.NotContains(t, string(body), "password")
}

func TestBeforeCreateHooks(t *testing.T) {
	store := &Store{}
	require.NoError(t, store.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, store.ID)

	product := &Product{}
	require.NoError(t, product.BeforeCreate(nil))
	assert.NotNil(t, product.Images)
}

func TestAmountDecoding(t *testing.T) {
	var body struct {
		CUP  Amount `json:"priceCup"`
		USD  Amount `json:"priceUsd"`
		Fee  Amount `json:"fee"`
		Gone Amount `json:"gone"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"priceCup": "250.50", "priceUsd": 3, "fee": "", "gone": null}`), &body))

	require.True(t, body.CUP.Valid)
	assert.True(t, decimal.RequireFromString("250.5").Equal(body.CUP.Decimal))
	require.True(t, body.USD.Valid)
	assert.True(t, decimal.NewFromInt(3).Equal(body.USD.Decimal))
	assert.False(t, body.Fee.Valid)
	assert.False(t, body.Gone.Valid)

	var bad Amount
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
}

func TestQuantityDecoding(t *testing.T) {
	var q Quantity
	require.NoError(t, json.Unmarshal([]byte(`"12"`), &q))
	assert.Equal(t, Quantity{Int: 12, Valid: true}, q)

	require.NoError(t, json.Unmarshal([]byte(`7`), &q))
	assert.Equal(t, Quantity{Int: 7, Valid: true}, q)

	require.NoError(t, json.Unmarshal([]byte(`""`), &q))
	assert.False(t, q.Valid)

	assert.Error(t, json.Unmarshal([]byte(`1.5`), &q))
}

func TestProductJSONCarriesLegacyImageField(t *testing.T) {
	raw, err := json.Marshal(Product{Name: "Camisa", Images: pq.StringArray{"a.jpg", "b.jpg"}})
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, []interface{}{"a.jpg", "b.jpg"}, body["images"])
	assert.Equal(t, `["a.jpg","b.jpg"]`, body["image_url"])
	assert.Equal(t, "Camisa", body["name"])

	raw, err = json.Marshal(CatalogEntry{Name: "Vestido"})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "[]", body["image_url"])

	// the legacy field decodes back to the same list
	assert.Equal(t, ImageList{"a.jpg", "b.jpg"}, ParseImages(`["a.jpg","b.jpg"]`))
}
