package domain

import "strconv"

// Order is the relevant subset of a Shopify order webhook payload. Every
// nested structure is optional on the wire; consumers must tolerate zero
// values at any depth.
type Order struct {
	ID                  int64          `json:"id"`
	Name                string         `json:"name"`
	OrderNumber         int64          `json:"order_number"`
	TotalPrice          string         `json:"total_price"`
	Gateway             string         `json:"gateway"`
	PaymentGatewayNames []string       `json:"payment_gateway_names"`
	LineItems           []LineItem     `json:"line_items"`
	Customer            *Customer      `json:"customer"`
	ShippingAddress     *Address       `json:"shipping_address"`
	BillingAddress      *Address       `json:"billing_address"`
	Fulfillments        []Fulfillment  `json:"fulfillments"`
	ShippingLines       []ShippingLine `json:"shipping_lines"`
}

// DisplayID returns the order identifier used in customer-facing messages:
// the Shopify order name ("#1042") when present, the numeric id otherwise.
func (o *Order) DisplayID() string {
	if o.Name != "" {
		return o.Name
	}
	if o.ID != 0 {
		return strconv.FormatInt(o.ID, 10)
	}
	if o.OrderNumber != 0 {
		return strconv.FormatInt(o.OrderNumber, 10)
	}
	return ""
}

// PaymentMethod returns the gateway name, preferring the explicit gateway
// field over the first entry of payment_gateway_names.
func (o *Order) PaymentMethod() string {
	if o.Gateway != "" {
		return o.Gateway
	}
	if len(o.PaymentGatewayNames) > 0 {
		return o.PaymentGatewayNames[0]
	}
	return ""
}

type Customer struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Phone          string   `json:"phone"`
	DefaultAddress *Address `json:"default_address"`
}

// FullName joins first and last name, tolerating either being empty.
func (c *Customer) FullName() string {
	if c == nil {
		return ""
	}
	switch {
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	case c.FirstName != "":
		return c.FirstName
	default:
		return c.LastName
	}
}

type Address struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

type LineItem struct {
	Title       string               `json:"title"`
	Name        string               `json:"name"`
	Quantity    int                  `json:"quantity"`
	Fulfillment *LineItemFulfillment `json:"fulfillment"`
}

// DisplayName prefers title over the variant-qualified name.
func (li *LineItem) DisplayName() string {
	if li.Title != "" {
		return li.Title
	}
	return li.Name
}

// LineItemFulfillment is the per-item fulfillment stub some order payloads
// embed directly on a line item.
type LineItemFulfillment struct {
	TrackingNumber string `json:"tracking_number"`
}

type Fulfillment struct {
	TrackingNumber  string   `json:"tracking_number"`
	TrackingNumbers []string `json:"tracking_numbers"`
	TrackingURL     string   `json:"tracking_url"`
	TrackingURLs    []string `json:"tracking_urls"`
	TrackingCompany string   `json:"tracking_company"`
}

type ShippingLine struct {
	Title string `json:"title"`
	Code  string `json:"code"`
}
