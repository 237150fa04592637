package app

import (
	"fmt"
	"strings"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/domain"
)

// Approved WhatsApp template names. Positional parameter order below must
// match the placeholders registered with Meta.
const (
	TemplateOrderConfirmation   = "order_confirmation"
	TemplateOrderFulfilled      = "order_fulfilled"
	TemplateAdminNewOrder       = "admin_new_order"
	TemplateAdminOrderFulfilled = "admin_order_fulfilled"
)

const (
	fallbackCustomerName = "Customer"
	fallbackOrderID      = "Order"
	fallbackTotal        = "N/A"
	fallbackPhone        = "Not Provided"
	fallbackPayment      = "Not specified"
	fallbackAddress      = "Not Provided"
)

// ContactPhone resolves the customer-facing contact number for display,
// falling through customer phone, default-address phone and shipping-address
// phone before giving up.
func ContactPhone(order *domain.Order) string {
	if order.Customer != nil {
		if order.Customer.Phone != "" {
			return order.Customer.Phone
		}
		if order.Customer.DefaultAddress != nil && order.Customer.DefaultAddress.Phone != "" {
			return order.Customer.DefaultAddress.Phone
		}
	}
	if order.ShippingAddress != nil && order.ShippingAddress.Phone != "" {
		return order.ShippingAddress.Phone
	}
	return fallbackPhone
}

// FlattenAddress joins the order's shipping (or billing, when shipping is
// absent) address fields into one comma-separated line, skipping empty
// fields and scrubbing any doubled or dangling separators that sneak in from
// dirty source data.
func FlattenAddress(order *domain.Order) string {
	addr := order.ShippingAddress
	if addr == nil {
		addr = order.BillingAddress
	}
	if addr == nil {
		return fallbackAddress
	}

	fields := []string{addr.Address1, addr.Address2, addr.City, addr.Province, addr.Zip, addr.Country}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			parts = append(parts, strings.TrimSpace(f))
		}
	}
	if len(parts) == 0 {
		return fallbackAddress
	}

	joined := strings.Join(parts, ", ")
	for strings.Contains(joined, ", ,") {
		joined = strings.ReplaceAll(joined, ", ,", ",")
	}
	for strings.Contains(joined, ",,") {
		joined = strings.ReplaceAll(joined, ",,", ",")
	}
	return strings.Trim(joined, ", ")
}

// LineItemsList renders a 1-indexed listing of the order's line items, e.g.
// "1. Hair Oil - 2 nos", joined by sep. The unit stays singular for a
// quantity of one.
func LineItemsList(items []domain.LineItem, sep string) string {
	if len(items) == 0 {
		return "No items"
	}
	lines := make([]string, 0, len(items))
	for i, item := range items {
		name := item.DisplayName()
		if name == "" {
			name = "Item"
		}
		lines = append(lines, fmt.Sprintf("%d. %s - %d %s", i+1, name, item.Quantity, quantityUnit(item.Quantity)))
	}
	return strings.Join(lines, sep)
}

func quantityUnit(qty int) string {
	if qty > 1 {
		return "nos"
	}
	return "no"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// AdminNewOrderText is the free-text admin notification for a new order.
func AdminNewOrderText(order *domain.Order) string {
	return fmt.Sprintf(
		"New Order Received!\n\nOrder ID: %s\nCustomer: %s\nPhone: %s\nAddress: %s\nPayment: %s\n\nItems:\n%s\n\nTotal: Rs. %s",
		orDefault(order.DisplayID(), fallbackOrderID),
		orDefault(order.Customer.FullName(), fallbackCustomerName),
		ContactPhone(order),
		FlattenAddress(order),
		orDefault(order.PaymentMethod(), fallbackPayment),
		LineItemsList(order.LineItems, "\n"),
		orDefault(order.TotalPrice, fallbackTotal),
	)
}

// OrderConfirmationParams builds the positional parameters for the customer
// order-confirmation template.
func OrderConfirmationParams(order *domain.Order) []string {
	firstName := fallbackCustomerName
	if order.Customer != nil && order.Customer.FirstName != "" {
		firstName = order.Customer.FirstName
	}
	return []string{
		firstName,
		orDefault(order.DisplayID(), fallbackOrderID),
		orDefault(order.TotalPrice, fallbackTotal),
		LineItemsList(order.LineItems, ", "),
	}
}

// OrderFulfilledParams builds the positional parameters for the customer
// order-fulfilled template.
func OrderFulfilledParams(order *domain.Order, tracking domain.TrackingInfo) []string {
	firstName := fallbackCustomerName
	if order.Customer != nil && order.Customer.FirstName != "" {
		firstName = order.Customer.FirstName
	}
	return []string{
		firstName,
		orDefault(order.DisplayID(), fallbackOrderID),
		LineItemsList(order.LineItems, ", "),
		tracking.Number,
		tracking.Link,
	}
}

// AdminNewOrderParams builds the base positional parameters for the admin
// new-order template. The fanout prepends each recipient's name, so the
// registered template carries one more placeholder than listed here.
func AdminNewOrderParams(order *domain.Order) []string {
	return []string{
		orDefault(order.DisplayID(), fallbackOrderID),
		orDefault(order.Customer.FullName(), fallbackCustomerName),
		ContactPhone(order),
		FlattenAddress(order),
		orDefault(order.PaymentMethod(), fallbackPayment),
		LineItemsList(order.LineItems, ", "),
		orDefault(order.TotalPrice, fallbackTotal),
	}
}

// AdminOrderFulfilledParams builds the base positional parameters for the
// admin order-fulfilled template.
func AdminOrderFulfilledParams(order *domain.Order, tracking domain.TrackingInfo) []string {
	return []string{
		orDefault(order.DisplayID(), fallbackOrderID),
		orDefault(order.Customer.FullName(), fallbackCustomerName),
		ContactPhone(order),
		LineItemsList(order.LineItems, ", "),
		tracking.Number,
		tracking.Link,
	}
}
