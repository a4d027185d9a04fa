package mapper

import "finedesk/internal/models"

// ChargedFines maps entries of get-charged-fines/traffic-police/by-police-id.
type ChargedFines struct{}

func (ChargedFines) Type() string { return "charged_fines" }

func (ChargedFines) Map(raw models.RawRecord) models.ViewRow {
	row := models.NewViewRow()

	row.ID = raw.Text(na, p("id"))
	row.FineID = raw.Text(na, p("fine_id"), p("fineID"), p("fine", "id"))
	row.FineName = raw.Text(na, p("fine", "name"), p("fine", "title"))
	row.Description = raw.Text(na, p("fine", "description"))
	row.Amount = raw.Text(na, p("fine", "amount"), p("amount"))

	row.IssuedAt = optional(raw, issuedKeys...)
	row.PaidAt = optional(raw, paidKeys...)
	row.ExpiresAt = optional(raw, expiresKeys...)

	row.DriverID = raw.Text(na, p("driver_user_id"), p("driver_user", "id"))
	row.Driver = raw.Text(na, p("driver_user", "name"))
	row.Officer = raw.Text(na, p("traffic_police_id"), p("police_user_id"), p("issuing_police_officer", "name"))
	row.Station = raw.Text(na, p("station"), p("area"))
	row.Status = paymentStatus(row.PaidAt)

	return row
}
