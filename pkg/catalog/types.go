package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryRef is the slim category reference embedded in products.
type CategoryRef struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// TechnicalEntry is one label/value row of a product's technical data.
type TechnicalEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Document is a downloadable attachment, typically the technical sheet.
type Document struct {
	Name string
	URL  string
	Size string
	Type string
}

// Product is the storefront view of a catalog item. Availability is a
// display label derived from stock; Image is an absolute URL or empty.
type Product struct {
	ID            string
	Name          string
	Subtitle      string
	SKU           string
	Price         decimal.Decimal
	Unit          string
	Availability  string
	Stock         int
	Image         string
	Description   string
	TechnicalData []TechnicalEntry
	Documents     []Document
	Category      *CategoryRef
}

// Category is a storefront category card. Wide marks the cards that
// span two columns in the grid layout (first and last of the list).
type Category struct {
	ID          string
	Slug        string
	Name        string
	Description string
	HeroImage   string
	Wide        bool
}

// Professional is a directory entry for a registered professional.
type Professional struct {
	ID           string
	Name         string
	City         string
	ProfilePhoto string
	Gallery      []string
	Skills       []CategoryRef
	Username     string
	Email        string
}

// Customer is an admin-facing customer summary row.
type Customer struct {
	ID     string
	Name   string
	Email  string
	Status string
	Spent  decimal.Decimal
	Orders int
	Avatar string
}

// OrderItem is one line of an order.
type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order is an admin-facing order with its lines.
type Order struct {
	ID       string
	Customer string
	Email    string
	Status   string
	Amount   decimal.Decimal
	Date     string
	Items    []OrderItem
}

// mediaDoc is the backend's file object; only the URL is consumed.
type mediaDoc struct {
	URL string `json:"url"`
}

// documentID prefers the backend's stable document identifier and falls
// back to the numeric row id for older records.
func documentID(docID string, id int) string {
	if docID != "" {
		return docID
	}
	return strconv.Itoa(id)
}

// availabilityLabel renders stock as the Italian storefront label.
func availabilityLabel(stock int) string {
	if stock > 0 {
		return "Disponibile (" + strconv.Itoa(stock) + " pz)"
	}
	return "Esaurito"
}

// initials builds a two-letter avatar fallback from a display name.
func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(part))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
