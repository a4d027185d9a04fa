package models

// NotAvailable is the display default for every text field of a ViewRow.
const NotAvailable = "N/A"

type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusDeclined Status = "Declined"
	StatusPaid     Status = "Paid"
	StatusUnpaid   Status = "Unpaid"
	StatusUnknown  Status = NotAvailable
)

// Terminal reports whether an appeal in this status can no longer change.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// ViewRow is the flattened record a screen renders. Text fields default to
// "N/A"; timestamps keep the raw server value and default to nil.
type ViewRow struct {
	ID          string  `json:"id"`
	FineID      string  `json:"fineId"`
	FineName    string  `json:"fineName"`
	Description string  `json:"description"`
	Amount      string  `json:"amount"`
	IssuedAt    *string `json:"issuedAt"`
	PaidAt      *string `json:"paidAt"`
	ExpiresAt   *string `json:"expiresAt"`
	Station     string  `json:"station"`
	Officer     string  `json:"officer"`
	Driver      string  `json:"driver"`
	DriverID    string  `json:"driverId"`
	Reason      string  `json:"reason"`
	Status      Status  `json:"status"`
}

func NewViewRow() ViewRow {
	return ViewRow{
		ID:          NotAvailable,
		FineID:      NotAvailable,
		FineName:    NotAvailable,
		Description: NotAvailable,
		Amount:      NotAvailable,
		Station:     NotAvailable,
		Officer:     NotAvailable,
		Driver:      NotAvailable,
		DriverID:    NotAvailable,
		Reason:      NotAvailable,
		Status:      StatusUnknown,
	}
}
