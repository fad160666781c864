package domain

// EssentialProduct is the trimmed product shape returned by the product listing.
// Every field is nullable.
type EssentialProduct struct {
	ID              any      `json:"id"`
	Reference       any      `json:"reference"`
	Title           any      `json:"title"`
	Description     any      `json:"description"`
	GrossPrice      *float64 `json:"grossPrice"`
	PriceWithoutTax *float64 `json:"priceWithoutTax"`
	Stock           *float64 `json:"stock"`
	Status          any      `json:"status"`
	ImageURL        any      `json:"imageUrl"`
}

// ProjectProduct maps one upstream product record to an EssentialProduct.
// Prices fall back to the first price-list entry and stock falls back to the
// compound stock when the top-level values are absent.
func ProjectProduct(raw any) EssentialProduct {
	grossPrice := Field(raw, "gross_price")
	if grossPrice == nil {
		grossPrice = Field(raw, "prices", 0, "price")
	}
	priceWithoutTax := Field(raw, "price_without_tax")
	if priceWithoutTax == nil {
		priceWithoutTax = Field(raw, "prices", 0, "price_without_tax")
	}

	stock := CoerceNumber(Field(raw, "stock"))
	if stock == nil {
		stock = CoerceNumber(Field(raw, "compound", "stock", "stock"))
	}

	imageURL := OrNil(Field(raw, "images", "m"))
	if imageURL == nil {
		imageURL = OrNil(Field(raw, "images", "xs"))
	}

	return EssentialProduct{
		ID:              Field(raw, "id"),
		Reference:       OrNil(Field(raw, "reference")),
		Title:           OrNil(Field(raw, "title")),
		Description:     OrNil(Field(raw, "description")),
		GrossPrice:      CoerceNumber(grossPrice),
		PriceWithoutTax: CoerceNumber(priceWithoutTax),
		Stock:           stock,
		Status:          OrNil(Field(raw, "status")),
		ImageURL:        imageURL,
	}
}

// InStock reports whether the product carries a numeric stock above -1.
func (p EssentialProduct) InStock() bool {
	return p.Stock != nil && *p.Stock > -1
}

// ProductInput is the validated input of a product creation.
type ProductInput struct {
	Title        string
	Category     string
	Brand        string
	Reference    string
	LicensePlate string
	Description  string
	SupplyPrice  any
	GrossPrice   any
	TaxID        string
	TaxExemption string
}

// DefaultTaxID is used when a product is created without a tax id.
const DefaultTaxID = "NOR"

// UntitledProduct is the product title used when none is supplied.
const UntitledProduct = "Sem título"

// ProductTitle returns the title sent upstream, with the licence plate appended
// when one is given.
func (in ProductInput) ProductTitle() string {
	base := in.Title
	if base == "" {
		base = UntitledProduct
	}
	if in.LicensePlate != "" {
		return base + " (Matrícula: " + in.LicensePlate + ")"
	}
	return base
}
