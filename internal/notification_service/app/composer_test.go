package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/domain"
)

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:         450789469,
		Name:       "#1042",
		TotalPrice: "499.00",
		Gateway:    "Razorpay",
		LineItems: []domain.LineItem{
			{Title: "Ayurvedic Hair Oil", Quantity: 1},
			{Title: "Herbal Face Pack", Quantity: 2},
		},
		Customer: &domain.Customer{
			FirstName: "Priya",
			LastName:  "Sharma",
			Phone:     "9876543210",
		},
		ShippingAddress: &domain.Address{
			Address1: "12 MG Road",
			City:     "Coimbatore",
			Province: "Tamil Nadu",
			Zip:      "641001",
			Country:  "India",
		},
	}
}

func TestLineItemsList_Pluralization(t *testing.T) {
	items := []domain.LineItem{
		{Title: "Hair Oil", Quantity: 1},
		{Title: "Face Pack", Quantity: 2},
	}

	got := LineItemsList(items, "\n")

	assert.Equal(t, "1. Hair Oil - 1 no\n2. Face Pack - 2 nos", got)
}

func TestLineItemsList_Empty(t *testing.T) {
	assert.Equal(t, "No items", LineItemsList(nil, ", "))
}

func TestFlattenAddress_SkipsEmptyFields(t *testing.T) {
	order := &domain.Order{
		ShippingAddress: &domain.Address{
			Address1: "12 MG Road",
			Address2: "",
			City:     "Coimbatore",
			Zip:      "641001",
		},
	}

	assert.Equal(t, "12 MG Road, Coimbatore, 641001", FlattenAddress(order))
}

func TestFlattenAddress_CleansDoubledSeparators(t *testing.T) {
	order := &domain.Order{
		ShippingAddress: &domain.Address{
			Address1: "12 MG Road,",
			City:     ",Coimbatore",
		},
	}

	got := FlattenAddress(order)

	assert.NotContains(t, got, ",,")
	assert.NotContains(t, got, ", ,")
	assert.NotEmpty(t, got)
}

func TestFlattenAddress_FallsBackToBilling(t *testing.T) {
	order := &domain.Order{
		BillingAddress: &domain.Address{City: "Chennai", Country: "India"},
	}

	assert.Equal(t, "Chennai, India", FlattenAddress(order))
}

func TestFlattenAddress_NoAddress(t *testing.T) {
	assert.Equal(t, "Not Provided", FlattenAddress(&domain.Order{}))
}

func TestContactPhone_FallbackChain(t *testing.T) {
	order := &domain.Order{
		Customer: &domain.Customer{
			DefaultAddress: &domain.Address{Phone: "9812345678"},
		},
		ShippingAddress: &domain.Address{Phone: "9800000000"},
	}
	assert.Equal(t, "9812345678", ContactPhone(order))

	order.Customer.Phone = "9876543210"
	assert.Equal(t, "9876543210", ContactPhone(order))

	order.Customer = nil
	assert.Equal(t, "9800000000", ContactPhone(order))

	order.ShippingAddress = nil
	assert.Equal(t, "Not Provided", ContactPhone(order))
}

func TestOrderConfirmationParams(t *testing.T) {
	params := OrderConfirmationParams(sampleOrder())

	assert.Equal(t, []string{
		"Priya",
		"#1042",
		"499.00",
		"1. Ayurvedic Hair Oil - 1 no, 2. Herbal Face Pack - 2 nos",
	}, params)
}

func TestOrderConfirmationParams_Fallbacks(t *testing.T) {
	params := OrderConfirmationParams(&domain.Order{})

	assert.Equal(t, []string{"Customer", "Order", "N/A", "No items"}, params)
}

func TestAdminNewOrderParams_SevenPositions(t *testing.T) {
	params := AdminNewOrderParams(sampleOrder())

	assert.Len(t, params, 7)
	assert.Equal(t, "#1042", params[0])
	assert.Equal(t, "Priya Sharma", params[1])
	assert.Equal(t, "9876543210", params[2])
	assert.Equal(t, "12 MG Road, Coimbatore, Tamil Nadu, 641001, India", params[3])
	assert.Equal(t, "Razorpay", params[4])
	assert.Equal(t, "499.00", params[6])
}

func TestAdminOrderFulfilledParams_SixPositions(t *testing.T) {
	tracking := domain.TrackingInfo{Number: "AWB123", Link: "https://track.example/AWB123", Carrier: "Delhivery"}

	params := AdminOrderFulfilledParams(sampleOrder(), tracking)

	assert.Len(t, params, 6)
	assert.Equal(t, "AWB123", params[4])
	assert.Equal(t, "https://track.example/AWB123", params[5])
}

func TestOrderFulfilledParams(t *testing.T) {
	tracking := domain.TrackingInfo{
		Number:  domain.TrackingNumberUnavailable,
		Link:    domain.TrackingLinkUnavailable,
		Carrier: domain.TrackingCarrierUnspecified,
	}

	params := OrderFulfilledParams(sampleOrder(), tracking)

	assert.Equal(t, []string{
		"Priya",
		"#1042",
		"1. Ayurvedic Hair Oil - 1 no, 2. Herbal Face Pack - 2 nos",
		"Not Available",
		"No link",
	}, params)
}

func TestAdminNewOrderText(t *testing.T) {
	msg := AdminNewOrderText(sampleOrder())

	assert.Contains(t, msg, "Order ID: #1042")
	assert.Contains(t, msg, "Customer: Priya Sharma")
	assert.Contains(t, msg, "Phone: 9876543210")
	assert.Contains(t, msg, "Payment: Razorpay")
	assert.Contains(t, msg, "1. Ayurvedic Hair Oil - 1 no")
	assert.Contains(t, msg, "Total: Rs. 499.00")
}
