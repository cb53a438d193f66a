// Package revenue computes reporting summaries over invoice rows already
// fetched from the database. Everything here is pure: no I/O, no retained
// state, inputs are never mutated.
package revenue

import (
	"sort"
	"strings"
	"time"

	"leadportal/internal/model"

	"github.com/shopspring/decimal"
)

// TopClientLimit caps the client ranking returned by Summarize.
const TopClientLimit = 5

// trailingMonths is the default monthly-series window when no start date is given.
const trailingMonths = 6

// Range is an inclusive date window applied to invoice issue dates.
type Range struct {
	Start time.Time
	End   time.Time
}

// ClientRevenue is one entry of the paid-revenue client ranking.
type ClientRevenue struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

// LeadTypeRevenue is paid revenue accumulated per lead-type tag.
type LeadTypeRevenue struct {
	LeadType string          `json:"lead_type"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// MonthRevenue is paid revenue for one calendar month, keyed "YYYY-MM".
type MonthRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Summary aggregates invoice totals, the paid/unpaid complement, client and
// lead-type rankings, and the monthly paid-revenue series.
//
// UnpaidInvoices and UnpaidRevenue are complements of the paid figures, so
// Overdue invoices count as unpaid here. BucketByStatus keeps the three-way
// split for callers that need Overdue separated.
type Summary struct {
	TotalSales        int               `json:"total_sales"`
	TotalRevenue      decimal.Decimal   `json:"total_revenue"`
	PaidInvoices      int               `json:"paid_invoices"`
	PaidRevenue       decimal.Decimal   `json:"paid_revenue"`
	UnpaidInvoices    int               `json:"unpaid_invoices"`
	UnpaidRevenue     decimal.Decimal   `json:"unpaid_revenue"`
	TopClients        []ClientRevenue   `json:"top_clients"`
	RevenueByLeadType []LeadTypeRevenue `json:"revenue_by_lead_type"`
	MonthlyRevenue    []MonthRevenue    `json:"monthly_revenue"`
}

// Bucket accumulates a count and a summed amount for one status.
type Bucket struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// StatusBuckets is the three-way paid / unpaid / overdue split.
type StatusBuckets struct {
	Paid    Bucket `json:"paid"`
	Unpaid  Bucket `json:"unpaid"`
	Overdue Bucket `json:"overdue"`
}

// Summarize computes a Summary over the given invoices. When r is non-nil,
// only invoices whose issue date falls inside the inclusive range participate,
// and the monthly series starts at r.Start instead of six months back.
func Summarize(invoices []model.Invoice, r *Range) Summary {
	return summarizeAt(invoices, r, time.Now())
}

func summarizeAt(invoices []model.Invoice, r *Range, now time.Time) Summary {
	s := Summary{
		TotalRevenue:      decimal.Zero,
		PaidRevenue:       decimal.Zero,
		UnpaidRevenue:     decimal.Zero,
		TopClients:        []ClientRevenue{},
		RevenueByLeadType: []LeadTypeRevenue{},
		MonthlyRevenue:    []MonthRevenue{},
	}

	filtered := filterByIssueDate(invoices, r)

	// Totals and the paid subset
	for _, inv := range filtered {
		s.TotalSales++
		s.TotalRevenue = s.TotalRevenue.Add(inv.Amount)
		if isPaid(inv.Status) {
			s.PaidInvoices++
			s.PaidRevenue = s.PaidRevenue.Add(inv.Amount)
		}
	}
	s.UnpaidInvoices = s.TotalSales - s.PaidInvoices
	s.UnpaidRevenue = s.TotalRevenue.Sub(s.PaidRevenue)

	// Top clients by paid revenue, ties kept in first-appearance order
	clientTotals := map[string]int{}
	var clients []ClientRevenue
	for _, inv := range filtered {
		if !isPaid(inv.Status) || inv.ClientName == "" {
			continue
		}
		idx, ok := clientTotals[inv.ClientName]
		if !ok {
			idx = len(clients)
			clientTotals[inv.ClientName] = idx
			clients = append(clients, ClientRevenue{Name: inv.ClientName, Revenue: decimal.Zero})
		}
		clients[idx].Revenue = clients[idx].Revenue.Add(inv.Amount)
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].Revenue.GreaterThan(clients[j].Revenue)
	})
	if len(clients) > TopClientLimit {
		clients = clients[:TopClientLimit]
	}
	s.TopClients = append(s.TopClients, clients...)

	// Paid revenue per lead type; untagged invoices are excluded
	typeTotals := map[string]int{}
	var types []LeadTypeRevenue
	for _, inv := range filtered {
		if !isPaid(inv.Status) || inv.LeadType == nil || *inv.LeadType == "" {
			continue
		}
		idx, ok := typeTotals[*inv.LeadType]
		if !ok {
			idx = len(types)
			typeTotals[*inv.LeadType] = idx
			types = append(types, LeadTypeRevenue{LeadType: *inv.LeadType, Revenue: decimal.Zero})
		}
		types[idx].Revenue = types[idx].Revenue.Add(inv.Amount)
	}
	sort.SliceStable(types, func(i, j int) bool {
		return types[i].Revenue.GreaterThan(types[j].Revenue)
	})
	s.RevenueByLeadType = append(s.RevenueByLeadType, types...)

	// Monthly paid-revenue series keyed by the paid date's calendar month
	threshold := now.AddDate(0, -trailingMonths, 0)
	if r != nil && !r.Start.IsZero() {
		threshold = r.Start
	}
	months := map[string]decimal.Decimal{}
	for _, inv := range filtered {
		if !isPaid(inv.Status) || inv.DatePaid == nil {
			continue
		}
		if inv.DatePaid.Before(threshold) {
			continue
		}
		key := inv.DatePaid.Format("2006-01")
		months[key] = months[key].Add(inv.Amount)
	}
	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys) // lexicographic == chronological for YYYY-MM
	for _, k := range keys {
		s.MonthlyRevenue = append(s.MonthlyRevenue, MonthRevenue{Month: k, Revenue: months[k]})
	}

	return s
}

// BucketByStatus folds invoices into the paid / unpaid / overdue split.
// Statuses are matched case-insensitively; anything unrecognized or missing
// lands in the unpaid bucket.
func BucketByStatus(invoices []model.Invoice) StatusBuckets {
	b := StatusBuckets{
		Paid:    Bucket{Amount: decimal.Zero},
		Unpaid:  Bucket{Amount: decimal.Zero},
		Overdue: Bucket{Amount: decimal.Zero},
	}
	for _, inv := range invoices {
		switch normalizeStatus(inv.Status) {
		case "paid":
			b.Paid.Count++
			b.Paid.Amount = b.Paid.Amount.Add(inv.Amount)
		case "overdue":
			b.Overdue.Count++
			b.Overdue.Amount = b.Overdue.Amount.Add(inv.Amount)
		default:
			b.Unpaid.Count++
			b.Unpaid.Amount = b.Unpaid.Amount.Add(inv.Amount)
		}
	}
	return b
}

func filterByIssueDate(invoices []model.Invoice, r *Range) []model.Invoice {
	if r == nil {
		return invoices
	}
	filtered := make([]model.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if !r.Start.IsZero() && inv.DateIssued.Before(r.Start) {
			continue
		}
		if !r.End.IsZero() && inv.DateIssued.After(r.End) {
			continue
		}
		filtered = append(filtered, inv)
	}
	return filtered
}

func isPaid(status string) bool {
	return normalizeStatus(status) == "paid"
}

func normalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "paid":
		return "paid"
	case "overdue":
		return "overdue"
	default:
		return "unpaid"
	}
}
