package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"top10/internal/models"
)

const newFormat = `{
	"asin": "B09B8V1LZ3",
	"product_title": "Echo Dot (5th Gen)",
	"product_price": "$49.99",
	"currency": "USD",
	"product_star_rating": "4.7",
	"product_num_ratings": "152,304",
	"product_url": "https://www.amazon.com/dp/B09B8V1LZ3",
	"product_photo": "https://m.media-amazon.com/images/I/echo.jpg",
	"features": ["  Better sound ", "", "Smart home hub"],
	"product_description": "<p>Our <b>best</b> sounding\n  Echo Dot</p>"
}`

const legacyFormat = `{
	"product_id": "B09B8V1LZ3",
	"title": "Echo Dot (5th Gen)",
	"price": {"current_price": 49.99, "currency": "USD"},
	"rating": 4.7,
	"reviews_count": 152304,
	"url": "https://www.amazon.com/dp/B09B8V1LZ3",
	"image": "https://m.media-amazon.com/images/I/echo.jpg",
	"about_product": ["Better sound", "Smart home hub"],
	"description": "Our best sounding Echo Dot"
}`

func TestTransform_NewAndLegacyAgree(t *testing.T) {
	tr := NewTransformer()

	fresh := tr.Transform(models.RawProduct(newFormat), 1, "mytag-20")
	legacy := tr.Transform(models.RawProduct(legacyFormat), 1, "mytag-20")

	want := models.Product{
		Rank:        1,
		Title:       "Echo Dot (5th Gen)",
		ASIN:        "B09B8V1LZ3",
		Price:       "$49.99",
		Currency:    "USD",
		Rating:      4.7,
		ReviewCount: 152304,
		Image:       "https://m.media-amazon.com/images/I/echo.jpg",
		URL:         "https://www.amazon.com/dp/B09B8V1LZ3?tag=mytag-20",
		Features:    []string{"Better sound", "Smart home hub"},
		Description: "Our best sounding Echo Dot",
	}

	assert.Equal(t, want, fresh)
	assert.Equal(t, want, legacy)
}

func TestTransform_DealsRecord(t *testing.T) {
	raw := `{
		"deal_id": "4a1f2c3d",
		"deal_type": "LIGHTNING_DEAL",
		"deal_title": "Anker USB C Charger, 20W",
		"deal_photo": "https://m.media-amazon.com/images/I/anker.jpg",
		"deal_url": "https://www.amazon.com/dp/B09B8V1LZ3",
		"product_asin": "B09B8V1LZ3",
		"deal_price": {"amount": 22.99, "currency": "USD"},
		"list_price": {"amount": 29.99, "currency": "USD"},
		"savings_percentage": 23
	}`

	p := NewTransformer().Transform(models.RawProduct(raw), 1, "deals-20")

	assert.Equal(t, "Anker USB C Charger, 20W", p.Title)
	assert.Equal(t, "https://m.media-amazon.com/images/I/anker.jpg", p.Image)
	assert.Equal(t, "B09B8V1LZ3", p.ASIN)
	assert.Equal(t, "$22.99", p.Price)
	assert.Equal(t, "https://www.amazon.com/dp/B09B8V1LZ3?tag=deals-20", p.URL)
	assert.NoError(t, NewValidator().Validate(p))
}

func TestTransform_ProductTitleBeatsDealTitle(t *testing.T) {
	p := NewTransformer().Transform(models.RawProduct(`{"deal_title":"Deal","name":"Name","deal_photo":"d.jpg","image":"i.jpg"}`), 1, "")

	assert.Equal(t, "Name", p.Title)
	assert.Equal(t, "i.jpg", p.Image)
}

func TestTransform_EmptyRecord(t *testing.T) {
	p := NewTransformer().Transform(models.RawProduct(`{}`), 3, "tag-20")

	assert.Equal(t, 3, p.Rank)
	assert.Equal(t, UntitledProduct, p.Title)
	assert.Empty(t, p.ASIN)
	assert.Equal(t, PriceUnknown, p.Price)
	assert.Equal(t, DefaultCurrency, p.Currency)
	assert.Zero(t, p.Rating)
	assert.Zero(t, p.ReviewCount)
	assert.Empty(t, p.Image)
	assert.Empty(t, p.URL)
	assert.NotNil(t, p.Features)
	assert.Empty(t, p.Features)
	assert.Empty(t, p.Description)
}

func TestTransform_ASINFromURL(t *testing.T) {
	p := NewTransformer().Transform(models.RawProduct(`{
		"deal_url": "https://www.amazon.com/gp/product/B0C1H26C46/ref=deal"
	}`), 1, "")

	assert.Equal(t, "B0C1H26C46", p.ASIN)
	assert.Equal(t, "https://www.amazon.com/gp/product/B0C1H26C46/ref=deal", p.URL)
}

func TestTransform_URLFromASIN(t *testing.T) {
	p := NewTransformer().Transform(models.RawProduct(`{"asin":"B0BSHF7WHW"}`), 1, "t-20")
	assert.Equal(t, "https://www.amazon.com/dp/B0BSHF7WHW?tag=t-20", p.URL)
}

func TestTransform_Price(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		cur  string
	}{
		{"string wins", `{"product_price":"$19.99","price":{"current_price":5}}`, "$19.99", "USD"},
		{"price string", `{"price":"£12.00","currency":"GBP"}`, "£12.00", "GBP"},
		{"price.value", `{"price":{"value":1299,"currency":"EUR"}}`, "€1,299.00", "EUR"},
		{"deal_price", `{"deal_price":{"amount":7.5,"currency":"usd"}}`, "$7.50", "USD"},
		{"unknown currency", `{"price":{"current_price":12.346},"currency":"CHF"}`, "12.35 CHF", "CHF"},
		{"blank string falls through", `{"product_price":"  ","deal_price":{"amount":3}}`, "$3.00", "USD"},
		{"missing", `{"price":null}`, PriceUnknown, "USD"},
	}

	tr := NewTransformer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tr.Transform(models.RawProduct(tt.raw), 1, "")
			assert.Equal(t, tt.want, p.Price)
			assert.Equal(t, tt.cur, p.Currency)
		})
	}
}

func TestTransform_RatingAndReviews(t *testing.T) {
	tests := []struct {
		raw     string
		rating  float64
		reviews int
	}{
		{`{"product_star_rating":"4.5","product_num_ratings":"34,521"}`, 4.5, 34521},
		{`{"rating":"4.2 out of 5 stars","reviews":"1,024 ratings"}`, 4.2, 1024},
		{`{"stars":3,"ratings_total":88}`, 3, 88},
		{`{"product_star_rating":"n/a","rating":4.1}`, 4.1, 0},
		{`{"product_star_rating":"unrated","product_num_ratings":"none"}`, 0, 0},
		{`{"rating":9.5}`, 5, 0},
		{`{"rating":-1}`, 0, 0},
		{`{"product_star_rating":"48 out of 5"}`, 5, 0},
	}

	tr := NewTransformer()

	for _, tt := range tests {
		p := tr.Transform(models.RawProduct(tt.raw), 1, "")
		if p.Rating != tt.rating || p.ReviewCount != tt.reviews {
			t.Errorf("%s: got rating=%v reviews=%d, want %v/%d", tt.raw, p.Rating, p.ReviewCount, tt.rating, tt.reviews)
		}
	}
}

func TestTransform_ImageFallbacks(t *testing.T) {
	p := NewTransformer().Transform(models.RawProduct(`{"images":["https://img/1.jpg","https://img/2.jpg"]}`), 1, "")
	assert.Equal(t, "https://img/1.jpg", p.Image)
}

func TestTransform_SingleStringFeature(t *testing.T) {
	p := NewTransformer().Transform(models.RawProduct(`{"product_features":" Waterproof "}`), 1, "")
	assert.Equal(t, []string{"Waterproof"}, p.Features)
}

func TestFormatPrice(t *testing.T) {
	tr := NewTransformer()

	require.Equal(t, "$12.34", tr.FormatPrice(12.34, "USD"))
	require.Equal(t, "¥1,500.00", tr.FormatPrice(1500, "jpy"))
	require.Equal(t, "0.99 SEK", tr.FormatPrice(0.99, "SEK"))
}
