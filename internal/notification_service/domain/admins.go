package domain

import "strings"

// AdminRecipient is one entry of the admin notification roster.
type AdminRecipient struct {
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

const defaultAdminName = "Admin"

// ResolveAdmins builds the admin roster from three parallel comma-separated
// configuration strings. Names and contacts are index-aligned with numbers
// and may be shorter; a missing name defaults to "Admin" and a missing
// contact falls back to the raw number token. Numbers get the "91" dialing
// prefix prepended when absent — a deliberately naive policy, distinct from
// NormalizePhone, matching how admin numbers are provisioned.
//
// An empty numbers string yields an empty roster; callers treat that as a
// configuration problem, not a crash.
func ResolveAdmins(numbers, names, contacts string) []AdminRecipient {
	numberTokens := splitCSV(numbers)
	nameTokens := splitCSV(names)
	contactTokens := splitCSV(contacts)

	admins := make([]AdminRecipient, 0, len(numberTokens))
	for i, num := range numberTokens {
		if num == "" {
			continue
		}

		phone := num
		if !strings.HasPrefix(phone, countryDialingPrefix) {
			phone = countryDialingPrefix + phone
		}

		name := defaultAdminName
		if i < len(nameTokens) && nameTokens[i] != "" {
			name = nameTokens[i]
		}

		contact := num
		if i < len(contactTokens) && contactTokens[i] != "" {
			contact = contactTokens[i]
		}

		admins = append(admins, AdminRecipient{Phone: phone, Name: name, Contact: contact})
	}
	return admins
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
