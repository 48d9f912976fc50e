package report

import (
	"strconv"
	"strings"
)

// Amount is a monetary value encoded the way the summary consumers expect:
// shortest round-trip digits, always with a fractional part (58.0, not 58).
type Amount float64

func (a Amount) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(float64(a), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return []byte(s), nil
}

// SummaryRecord is one entry of the machine-readable summary.
type SummaryRecord struct {
	CustomerID    string `json:"customer_id"`
	Name          string `json:"name"`
	Total         Amount `json:"total"`
	Currency      string `json:"currency"`
	LoyaltyPoints int    `json:"loyalty_points"`
}

// Summary lists the same customers, in the same order, as the text report.
func (r *Report) Summary() []SummaryRecord {
	records := make([]SummaryRecord, 0, len(r.Customers))
	for _, c := range r.Customers {
		records = append(records, SummaryRecord{
			CustomerID:    c.CustomerID,
			Name:          c.Name,
			Total:         Amount(c.Total),
			Currency:      c.Currency,
			LoyaltyPoints: c.FlooredPoints(),
		})
	}
	return records
}
