package handler

import "github.com/99minutos/invoice-dashboard/internal/core/domain"

const dateLayout = "2006-01-02"

func toInvoiceResponse(inv *domain.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:            inv.ID,
		CustomerID:    inv.CustomerID,
		Amount:        inv.Amount,
		AmountDisplay: domain.FormatCurrency(inv.Amount),
		Status:        string(inv.Status),
		Date:          inv.Date.Format(dateLayout),
	}
}

func toInvoiceRows(rows []domain.InvoiceRow) []invoiceRowResponse {
	out := make([]invoiceRowResponse, 0, len(rows))
	for i := range rows {
		out = append(out, invoiceRowResponse{
			invoiceResponse: toInvoiceResponse(&rows[i].Invoice),
			Name:            rows[i].CustomerName,
			Email:           rows[i].CustomerEmail,
			ImageURL:        rows[i].ImageURL,
		})
	}
	return out
}

func toCustomerSummaries(summaries []domain.CustomerSummary) []customerSummaryResponse {
	out := make([]customerSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, customerSummaryResponse{
			ID:                  s.ID,
			Name:                s.Name,
			Email:               s.Email,
			ImageURL:            s.ImageURL,
			TotalInvoices:       s.TotalInvoices,
			TotalPending:        s.TotalPending,
			TotalPaid:           s.TotalPaid,
			TotalPendingDisplay: domain.FormatCurrency(s.TotalPending),
			TotalPaidDisplay:    domain.FormatCurrency(s.TotalPaid),
		})
	}
	return out
}
