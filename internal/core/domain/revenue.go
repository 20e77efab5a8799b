package domain

import "strconv"

// Revenue is one month of the revenue chart, in whole dollars.
type Revenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// Months are the revenue chart months in calendar order.
var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// CardData holds the dashboard summary cards. Totals are in cents.
type CardData struct {
	NumberOfInvoices  int64
	NumberOfCustomers int64
	TotalPaid         int64
	TotalPending      int64
}

// YAxis returns the chart labels for revenue: steps of 1000 from the highest
// month rounded up to the next thousand down to zero, plus that top value.
func YAxis(revenue []Revenue) (labels []string, top int64) {
	var highest int64
	for _, r := range revenue {
		if r.Revenue > highest {
			highest = r.Revenue
		}
	}
	top = ((highest + 999) / 1000) * 1000
	for i := top; i >= 0; i -= 1000 {
		labels = append(labels, "$"+strconv.FormatInt(i/1000, 10)+"K")
	}
	return labels, top
}
