package domain

import "strings"

// PaymentType is the payment method recorded for a trip.
type PaymentType string

const (
	PaymentTypeCredit PaymentType = "credit"
	PaymentTypeCash   PaymentType = "cash"

	// PaymentTypeAll is only meaningful as a filter value.
	PaymentTypeAll PaymentType = "all"
)

// KnownPaymentTypes is the closed set charted by the dashboard.
var KnownPaymentTypes = []PaymentType{PaymentTypeCredit, PaymentTypeCash}

// ParsePaymentType normalizes a raw payment label.
// TLC numeric codes (1 = credit card, 2 = cash) are accepted.
// Anything unrecognized is kept lower-cased so it can be bucketed as "other".
func ParsePaymentType(raw string) PaymentType {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "credit", "credit card", "card", "1":
		return PaymentTypeCredit
	case "cash", "2":
		return PaymentTypeCash
	case "":
		return PaymentType("unknown")
	}
	return PaymentType(s)
}

// IsKnown reports whether the payment type belongs to the charted set.
func (p PaymentType) IsKnown() bool {
	return p == PaymentTypeCredit || p == PaymentTypeCash
}

// Label returns the human readable name shown in the trips table.
func (p PaymentType) Label() string {
	switch p {
	case PaymentTypeCredit:
		return "Credit Card"
	case PaymentTypeCash:
		return "Cash"
	}
	return "Other"
}
