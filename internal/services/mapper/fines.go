package mapper

import "finedesk/internal/models"

// Fines maps entries of /get-my-fines and /get-all-unpaid-fines. Those wrap
// the fine definition under "fine"; plain fine definitions are read too.
type Fines struct{}

func (Fines) Type() string { return "fines" }

func (Fines) Map(raw models.RawRecord) models.ViewRow {
	row := models.NewViewRow()

	row.FineID = raw.Text(na, p("fine", "id"), p("fine_id"), p("fineID"), p("fineId"), p("id"))
	row.ID = raw.Text(row.FineID, p("id"))
	row.FineName = raw.Text(na, p("fine", "name"), p("fine", "title"), p("name"), p("title"))
	row.Description = raw.Text(na, p("fine", "description"), p("description"))
	row.Amount = raw.Text(na, p("fine", "amount"), p("amount"))

	row.IssuedAt = optional(raw, issuedKeys...)
	row.PaidAt = optional(raw, paidKeys...)
	row.ExpiresAt = optional(raw, expiresKeys...)

	row.Station = raw.Text(na, p("station"), p("area"), p("police_station", "name"))
	row.Officer = raw.Text(na, p("issuing_police_officer", "name"), p("police_user_id"), p("policeUserId"))
	row.Driver = raw.Text(na, p("driver_user", "name"))
	row.DriverID = raw.Text(na, p("driver_user_id"), p("driver_user", "id"))
	row.Status = paymentStatus(row.PaidAt)

	return row
}
