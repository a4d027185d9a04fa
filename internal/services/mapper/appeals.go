package mapper

import (
	"strings"

	"finedesk/internal/models"
)

// Appeals maps entries of h-police/get-all-appeals. The appeal nests the
// charged fine, which nests the fine, the driver and the issuing officer.
type Appeals struct{}

func (Appeals) Type() string { return "appeals" }

func (Appeals) Map(raw models.RawRecord) models.ViewRow {
	row := models.NewViewRow()
	cf := raw.Record("charged_fine")

	row.ID = raw.Text(na, p("id"), p("appeal_id"))
	row.FineID = cf.Text(na, p("id"))
	if row.FineID == na {
		row.FineID = raw.Text(na, p("charged_fine_id"))
	}
	row.FineName = cf.Text(na, p("fine", "title"), p("fine", "name"))
	row.Description = cf.Text(na, p("fine", "description"))
	row.Amount = cf.Text(na, p("fine", "amount"))
	row.Reason = raw.Text(na, p("reason"), p("description"))

	row.IssuedAt = optional(cf, issuedKeys...)
	row.PaidAt = optional(cf, paidKeys...)
	row.ExpiresAt = optional(cf, expiresKeys...)

	row.Driver = cf.Text(na, p("driver_user", "name"))
	row.DriverID = cf.Text(na, p("driver_user", "id"), p("driver_user_id"))
	row.Officer = cf.Text(na, p("issuing_police_officer", "name"))
	row.Station = cf.Text(na, p("issuing_police_officer", "police_station", "name"), p("station"))
	row.Status = appealStatus(raw)

	return row
}

func appealStatus(raw models.RawRecord) models.Status {
	if acc := raw.Bool("accepted"); acc != nil {
		if *acc {
			return models.StatusAccepted
		}
		return models.StatusDeclined
	}
	if s, ok := raw.String("status"); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "accepted", "approved":
			return models.StatusAccepted
		case "declined", "rejected":
			return models.StatusDeclined
		}
	}
	return models.StatusPending
}
