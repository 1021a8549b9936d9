package domain

import "time"

// PaymentInit is the gateway's response to initializing a transaction.
type PaymentInit struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// PaymentVerification is the gateway's answer for a reference: an opaque
// success/failure plus the settled amount in the currency's subunit.
type PaymentVerification struct {
	Reference      string    `json:"reference"`
	Success        bool      `json:"success"`
	AmountSubunits int64     `json:"amount_subunits"`
	PaidAt         time.Time `json:"paid_at"`
}
