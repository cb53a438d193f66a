package revenue

import (
	"reflect"
	"testing"
	"time"

	"leadportal/internal/model"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func strptr(s string) *string { return &s }

func dateptr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func inv(client, status, amount string, opts ...func(*model.Invoice)) model.Invoice {
	i := model.Invoice{
		ClientName: client,
		Status:     status,
		Amount:     d(amount),
		DateIssued: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	for _, o := range opts {
		o(&i)
	}
	return i
}

func withPaidDate(year int, month time.Month, day int) func(*model.Invoice) {
	return func(i *model.Invoice) { i.DatePaid = dateptr(year, month, day) }
}

func withLeadType(t string) func(*model.Invoice) {
	return func(i *model.Invoice) { i.LeadType = strptr(t) }
}

func withIssueDate(year int, month time.Month, day int) func(*model.Invoice) {
	return func(i *model.Invoice) { i.DateIssued = time.Date(year, month, day, 0, 0, 0, 0, time.UTC) }
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestSummarizeEmptyInput(t *testing.T) {
	s := summarizeAt(nil, nil, testNow)

	if s.TotalSales != 0 || s.PaidInvoices != 0 || s.UnpaidInvoices != 0 {
		t.Fatalf("expected zero counts, got %+v", s)
	}
	if !s.TotalRevenue.IsZero() || !s.PaidRevenue.IsZero() || !s.UnpaidRevenue.IsZero() {
		t.Fatalf("expected zero revenue, got %+v", s)
	}
	if len(s.TopClients) != 0 || len(s.RevenueByLeadType) != 0 || len(s.MonthlyRevenue) != 0 {
		t.Fatalf("expected empty slices, got %+v", s)
	}
	if s.TopClients == nil || s.RevenueByLeadType == nil || s.MonthlyRevenue == nil {
		t.Fatal("slices must be non-nil so they marshal as [] not null")
	}
}

func TestSummarizeBasicExample(t *testing.T) {
	invoices := []model.Invoice{
		inv("A", "Paid", "100", withPaidDate(2025, 1, 10)),
		inv("B", "Unpaid", "50"),
	}

	s := summarizeAt(invoices, nil, testNow)

	if s.TotalSales != 2 {
		t.Fatalf("total sales = %d, want 2", s.TotalSales)
	}
	if !s.TotalRevenue.Equal(d("150")) {
		t.Fatalf("total revenue = %s, want 150", s.TotalRevenue)
	}
	if s.PaidInvoices != 1 || !s.PaidRevenue.Equal(d("100")) {
		t.Fatalf("paid = %d/%s, want 1/100", s.PaidInvoices, s.PaidRevenue)
	}
	if s.UnpaidInvoices != 1 || !s.UnpaidRevenue.Equal(d("50")) {
		t.Fatalf("unpaid = %d/%s, want 1/50", s.UnpaidInvoices, s.UnpaidRevenue)
	}
	if len(s.TopClients) != 1 || s.TopClients[0].Name != "A" || !s.TopClients[0].Revenue.Equal(d("100")) {
		t.Fatalf("top clients = %+v, want [{A 100}]", s.TopClients)
	}
}

func TestSummarizeComplementInvariant(t *testing.T) {
	cases := []struct {
		name     string
		invoices []model.Invoice
	}{
		{"mixed statuses", []model.Invoice{
			inv("A", "Paid", "100"),
			inv("B", "Unpaid", "25.50"),
			inv("C", "Overdue", "74.50"),
			inv("D", "", "10"),
		}},
		{"all paid", []model.Invoice{
			inv("A", "paid", "1"),
			inv("A", "PAID", "2"),
		}},
		{"none paid", []model.Invoice{
			inv("A", "Overdue", "5"),
			inv("B", "nonsense", "7"),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := summarizeAt(tc.invoices, nil, testNow)
			if s.PaidInvoices+s.UnpaidInvoices != s.TotalSales {
				t.Fatalf("count complement broken: %d + %d != %d", s.PaidInvoices, s.UnpaidInvoices, s.TotalSales)
			}
			if !s.PaidRevenue.Add(s.UnpaidRevenue).Equal(s.TotalRevenue) {
				t.Fatalf("revenue complement broken: %s + %s != %s", s.PaidRevenue, s.UnpaidRevenue, s.TotalRevenue)
			}
		})
	}
}

func TestSummarizeOverdueCountsAsUnpaid(t *testing.T) {
	invoices := []model.Invoice{
		inv("A", "Paid", "100"),
		inv("B", "Overdue", "40"),
	}
	s := summarizeAt(invoices, nil, testNow)
	if s.UnpaidInvoices != 1 || !s.UnpaidRevenue.Equal(d("40")) {
		t.Fatalf("overdue should fold into unpaid complement, got %d/%s", s.UnpaidInvoices, s.UnpaidRevenue)
	}
}

func TestSummarizeTopClients(t *testing.T) {
	invoices := []model.Invoice{
		inv("Alpha", "Paid", "10"),
		inv("Bravo", "Paid", "60"),
		inv("Charlie", "Paid", "30"),
		inv("Delta", "Paid", "30"), // ties with Charlie, appears later
		inv("Echo", "Paid", "20"),
		inv("Foxtrot", "Paid", "50"),
		inv("Alpha", "Paid", "5"),
		inv("Golf", "Unpaid", "999"), // unpaid never ranks
		inv("", "Paid", "123"),       // no client name, excluded
	}

	s := summarizeAt(invoices, nil, testNow)

	if len(s.TopClients) != TopClientLimit {
		t.Fatalf("top clients length = %d, want %d", len(s.TopClients), TopClientLimit)
	}
	wantNames := []string{"Bravo", "Foxtrot", "Charlie", "Delta", "Echo"}
	for i, want := range wantNames {
		if s.TopClients[i].Name != want {
			t.Fatalf("top clients order = %+v, want %v", s.TopClients, wantNames)
		}
	}
	for i := 1; i < len(s.TopClients); i++ {
		if s.TopClients[i].Revenue.GreaterThan(s.TopClients[i-1].Revenue) {
			t.Fatalf("top clients not sorted non-increasing: %+v", s.TopClients)
		}
	}
}

func TestSummarizeRevenueByLeadType(t *testing.T) {
	invoices := []model.Invoice{
		inv("A", "Paid", "100", withLeadType("Business Funding")),
		inv("B", "Paid", "40", withLeadType("Solar")),
		inv("C", "Paid", "60", withLeadType("Business Funding")),
		inv("D", "Paid", "75"),                          // no lead type, excluded
		inv("E", "Unpaid", "500", withLeadType("MCA")),  // unpaid, excluded
		inv("F", "Overdue", "300", withLeadType("MCA")), // overdue, excluded
	}

	s := summarizeAt(invoices, nil, testNow)

	want := []LeadTypeRevenue{
		{LeadType: "Business Funding", Revenue: d("160")},
		{LeadType: "Solar", Revenue: d("40")},
	}
	if len(s.RevenueByLeadType) != len(want) {
		t.Fatalf("lead type breakdown = %+v, want %+v", s.RevenueByLeadType, want)
	}
	for i := range want {
		if s.RevenueByLeadType[i].LeadType != want[i].LeadType || !s.RevenueByLeadType[i].Revenue.Equal(want[i].Revenue) {
			t.Fatalf("lead type breakdown = %+v, want %+v", s.RevenueByLeadType, want)
		}
	}
}

func TestSummarizeMonthlySeries(t *testing.T) {
	t.Run("separate months stay separate", func(t *testing.T) {
		invoices := []model.Invoice{
			inv("A", "Paid", "100", withPaidDate(2025, 2, 10)),
			inv("A", "Paid", "200", withPaidDate(2025, 4, 5)),
		}
		s := summarizeAt(invoices, nil, testNow)
		if len(s.MonthlyRevenue) != 2 {
			t.Fatalf("monthly series = %+v, want 2 entries", s.MonthlyRevenue)
		}
		if s.MonthlyRevenue[0].Month != "2025-02" || !s.MonthlyRevenue[0].Revenue.Equal(d("100")) {
			t.Fatalf("first month = %+v", s.MonthlyRevenue[0])
		}
		if s.MonthlyRevenue[1].Month != "2025-04" || !s.MonthlyRevenue[1].Revenue.Equal(d("200")) {
			t.Fatalf("second month = %+v", s.MonthlyRevenue[1])
		}
	})

	t.Run("same month merges", func(t *testing.T) {
		invoices := []model.Invoice{
			inv("A", "Paid", "100", withPaidDate(2025, 3, 1)),
			inv("B", "Paid", "50", withPaidDate(2025, 3, 28)),
		}
		s := summarizeAt(invoices, nil, testNow)
		if len(s.MonthlyRevenue) != 1 || !s.MonthlyRevenue[0].Revenue.Equal(d("150")) {
			t.Fatalf("monthly series = %+v, want one merged entry of 150", s.MonthlyRevenue)
		}
	})

	t.Run("six month trailing window", func(t *testing.T) {
		invoices := []model.Invoice{
			inv("A", "Paid", "100", withPaidDate(2024, 11, 1)), // before threshold
			inv("B", "Paid", "200", withPaidDate(2025, 1, 15)),
		}
		s := summarizeAt(invoices, nil, testNow) // now = 2025-06-01, threshold 2024-12-01
		if len(s.MonthlyRevenue) != 1 || s.MonthlyRevenue[0].Month != "2025-01" {
			t.Fatalf("monthly series = %+v, want only 2025-01", s.MonthlyRevenue)
		}
	})

	t.Run("explicit start date widens window", func(t *testing.T) {
		invoices := []model.Invoice{
			inv("A", "Paid", "100", withPaidDate(2024, 11, 1), withIssueDate(2024, 11, 1)),
			inv("B", "Paid", "200", withPaidDate(2025, 1, 15), withIssueDate(2025, 1, 15)),
		}
		r := &Range{
			Start: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}
		s := summarizeAt(invoices, r, testNow)
		if len(s.MonthlyRevenue) != 2 {
			t.Fatalf("monthly series = %+v, want both months inside explicit range", s.MonthlyRevenue)
		}
	})

	t.Run("paid without date paid is skipped", func(t *testing.T) {
		invoices := []model.Invoice{inv("A", "Paid", "100")}
		s := summarizeAt(invoices, nil, testNow)
		if len(s.MonthlyRevenue) != 0 {
			t.Fatalf("monthly series = %+v, want empty", s.MonthlyRevenue)
		}
	})
}

func TestSummarizeIssueDateFilter(t *testing.T) {
	invoices := []model.Invoice{
		inv("A", "Paid", "100", withIssueDate(2025, 1, 1)),
		inv("B", "Paid", "200", withIssueDate(2025, 2, 1)),
		inv("C", "Paid", "400", withIssueDate(2025, 3, 1)),
	}
	r := &Range{
		Start: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	s := summarizeAt(invoices, r, testNow)

	// Both bounds are inclusive
	if s.TotalSales != 2 || !s.TotalRevenue.Equal(d("600")) {
		t.Fatalf("filtered totals = %d/%s, want 2/600", s.TotalSales, s.TotalRevenue)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	invoices := []model.Invoice{
		inv("A", "Paid", "100", withPaidDate(2025, 1, 10), withLeadType("Solar")),
		inv("B", "Overdue", "50"),
		inv("C", "", "25"),
	}

	first := summarizeAt(invoices, nil, testNow)
	second := summarizeAt(invoices, nil, testNow)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("summarize not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestBucketByStatus(t *testing.T) {
	t.Run("three way split", func(t *testing.T) {
		invoices := []model.Invoice{
			inv("A", "Paid", "100"),
			inv("B", "paid", "50"),
			inv("C", "Unpaid", "30"),
			inv("D", "Overdue", "20"),
			inv("E", "OVERDUE", "5"),
		}

		b := BucketByStatus(invoices)

		if b.Paid.Count != 2 || !b.Paid.Amount.Equal(d("150")) {
			t.Fatalf("paid bucket = %+v", b.Paid)
		}
		if b.Unpaid.Count != 1 || !b.Unpaid.Amount.Equal(d("30")) {
			t.Fatalf("unpaid bucket = %+v", b.Unpaid)
		}
		if b.Overdue.Count != 2 || !b.Overdue.Amount.Equal(d("25")) {
			t.Fatalf("overdue bucket = %+v", b.Overdue)
		}
	})

	t.Run("missing and unknown statuses fold into unpaid", func(t *testing.T) {
		invoices := []model.Invoice{
			inv("A", "", "10"),
			inv("B", "", "20"),
			inv("C", "pending", "5"),
		}

		b := BucketByStatus(invoices)

		if b.Unpaid.Count != 3 || !b.Unpaid.Amount.Equal(d("35")) {
			t.Fatalf("unpaid bucket = %+v, want all rows folded in", b.Unpaid)
		}
		if b.Paid.Count != 0 || !b.Paid.Amount.IsZero() {
			t.Fatalf("paid bucket should be empty, got %+v", b.Paid)
		}
		if b.Overdue.Count != 0 || !b.Overdue.Amount.IsZero() {
			t.Fatalf("overdue bucket should be empty, got %+v", b.Overdue)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		b := BucketByStatus(nil)
		if b.Paid.Count != 0 || b.Unpaid.Count != 0 || b.Overdue.Count != 0 {
			t.Fatalf("expected zero counts, got %+v", b)
		}
		if !b.Paid.Amount.IsZero() || !b.Unpaid.Amount.IsZero() || !b.Overdue.Amount.IsZero() {
			t.Fatalf("expected zero amounts, got %+v", b)
		}
	})
}

func TestSummarizeMissingAmountTreatedAsZero(t *testing.T) {
	// Zero-value decimal stands in for a missing amount column
	invoices := []model.Invoice{
		{ClientName: "A", Status: "Paid", DateIssued: testNow},
		inv("B", "Paid", "10"),
	}
	s := summarizeAt(invoices, nil, testNow)
	if s.TotalSales != 2 || !s.TotalRevenue.Equal(d("10")) {
		t.Fatalf("totals = %d/%s, want 2/10", s.TotalSales, s.TotalRevenue)
	}
}
