package domain

// TrackingInfo carries the best-available tracking details for an order.
// Fields are never empty: when a source is missing the sentinel default is
// kept so message templates always have something to render.
type TrackingInfo struct {
	Number  string `json:"number"`
	Link    string `json:"link"`
	Carrier string `json:"carrier"`
}

const (
	TrackingNumberUnavailable  = "Not Available"
	TrackingLinkUnavailable    = "No link"
	TrackingCarrierUnspecified = "Not specified"
)

// ExtractTracking resolves tracking number, link and carrier from an order's
// fulfillment data. Each field resolves independently; list-valued fields win
// over their singular counterparts, and line-item fulfillment stubs are the
// last resort for the number. Missing structures at any depth fall through to
// the defaults.
func ExtractTracking(order *Order) TrackingInfo {
	info := TrackingInfo{
		Number:  TrackingNumberUnavailable,
		Link:    TrackingLinkUnavailable,
		Carrier: TrackingCarrierUnspecified,
	}
	if order == nil {
		return info
	}

	if len(order.Fulfillments) > 0 {
		f := order.Fulfillments[0]

		if len(f.TrackingNumbers) > 0 && f.TrackingNumbers[0] != "" {
			info.Number = f.TrackingNumbers[0]
		} else if f.TrackingNumber != "" {
			info.Number = f.TrackingNumber
		}

		if len(f.TrackingURLs) > 0 && f.TrackingURLs[0] != "" {
			info.Link = f.TrackingURLs[0]
		} else if f.TrackingURL != "" {
			info.Link = f.TrackingURL
		}

		if f.TrackingCompany != "" {
			info.Carrier = f.TrackingCompany
		}
	}

	if info.Number == TrackingNumberUnavailable {
		for _, item := range order.LineItems {
			if item.Fulfillment != nil && item.Fulfillment.TrackingNumber != "" {
				info.Number = item.Fulfillment.TrackingNumber
				break
			}
		}
	}

	return info
}
