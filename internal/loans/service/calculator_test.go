package service

import (
	"errors"
	"math"
	"testing"

	"estate_portal_backend/platform/apperr"
)

func approx(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestComputeEMI_ReferenceLoan(t *testing.T) {
	emi, err := ComputeEMI(8_000_000, 8.5, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if emi.Months != 240 {
		t.Fatalf("expected 240 months, got %d", emi.Months)
	}
	if !approx(emi.MonthlyRate, 0.0070833, 1e-7) {
		t.Fatalf("expected monthly rate 0.0070833, got %f", emi.MonthlyRate)
	}
	if !approx(emi.MonthlyPayment, 69425.85866924272, 1e-6) {
		t.Fatalf("unexpected monthly payment %f", emi.MonthlyPayment)
	}
	if !approx(emi.TotalPayment, emi.MonthlyPayment*240, 1e-6) {
		t.Fatalf("total payment must equal payment x months, got %f", emi.TotalPayment)
	}
	if !approx(emi.TotalInterest, emi.TotalPayment-8_000_000, 1e-6) {
		t.Fatalf("total interest must equal total minus principal, got %f", emi.TotalInterest)
	}

	rounded := emi.Rounded()
	if rounded.MonthlyPayment != 69426 || rounded.TotalPayment != 16662206 || rounded.TotalInterest != 8662206 {
		t.Fatalf("unexpected rounded values %+v", rounded)
	}
}

func TestComputeEMI_SecondReference(t *testing.T) {
	emi, err := ComputeEMI(5_000_000, 9, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(emi.MonthlyPayment, 50713.329, 1e-3) {
		t.Fatalf("unexpected monthly payment %f", emi.MonthlyPayment)
	}
	if !approx(emi.TotalPayment, 9128399.257, 1e-2) {
		t.Fatalf("unexpected total payment %f", emi.TotalPayment)
	}
}

func TestComputeEMI_ZeroRateSplitsPrincipal(t *testing.T) {
	emi, err := ComputeEMI(1_200_000, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emi.MonthlyPayment != 10_000 {
		t.Fatalf("expected 10000, got %f", emi.MonthlyPayment)
	}
	if emi.TotalInterest != 0 {
		t.Fatalf("expected no interest, got %f", emi.TotalInterest)
	}
}

func TestComputeEMI_InvalidParameters(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		tenure    int
	}{
		{"zero principal", 0, 8.5, 20},
		{"negative principal", -1, 8.5, 20},
		{"zero tenure", 1_000_000, 8.5, 0},
		{"negative rate", 1_000_000, -0.5, 20},
		{"NaN principal", math.NaN(), 8.5, 20},
		{"infinite rate", 1_000_000, math.Inf(1), 20},
		{"tenure too long", 1_000_000, 8.5, 51},
		{"overflowing rate", 1_000_000, 1e308, 20},
		{"principal beyond int64", 1e19, 8.5, 20},
		{"principal above limit", MaxAmount + 1, 0, 1},
		{"total above limit", MaxAmount, 8.5, 20},
		{"rate pushing total past limit", 1e12, 1e4, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			emi, err := ComputeEMI(tc.principal, tc.rate, tc.tenure)
			if err == nil {
				t.Fatalf("expected error, got %+v", emi)
			}
			if !errors.Is(err, ErrInvalidLoanParameters) {
				t.Fatalf("expected ErrInvalidLoanParameters, got %v", err)
			}
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation kind, got %v", apperr.GetKind(err))
			}
			if math.IsNaN(emi.MonthlyPayment) || math.IsInf(emi.MonthlyPayment, 0) {
				t.Fatalf("non-finite payment leaked: %f", emi.MonthlyPayment)
			}
		})
	}
}

func TestComputeEMI_LargePrincipalRoundsExactly(t *testing.T) {
	emi, err := ComputeEMI(MaxAmount/2, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := emi.Rounded()
	if r.TotalPayment != 500_000_000_000_000 {
		t.Fatalf("total payment = %d, want 500000000000000", r.TotalPayment)
	}
	if r.MonthlyPayment <= 0 || r.TotalInterest != 0 {
		t.Fatalf("unexpected rounding: %+v", r)
	}
}

func TestOversizedAmountsRejected(t *testing.T) {
	emi, err := ComputeEMI(1_000_000, 8.5, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Breakdown(1e300, emi); !errors.Is(err, ErrInvalidLoanParameters) {
		t.Fatalf("breakdown: expected ErrInvalidLoanParameters, got %v", err)
	}
	if _, err := Eligibility(1e300, 0, emi); !errors.Is(err, ErrInvalidLoanParameters) {
		t.Fatalf("eligibility income: expected ErrInvalidLoanParameters, got %v", err)
	}
	if _, err := Eligibility(100_000, 1e300, emi); !errors.Is(err, ErrInvalidLoanParameters) {
		t.Fatalf("eligibility emis: expected ErrInvalidLoanParameters, got %v", err)
	}
}

func TestDefaultLoanAmount(t *testing.T) {
	if got := DefaultLoanAmount(18_500_000); got != 14_800_000 {
		t.Fatalf("expected 14800000, got %f", got)
	}
}

func TestBreakdown(t *testing.T) {
	emi, _ := ComputeEMI(8_000_000, 8.5, 20)
	b, err := Breakdown(10_000_000, emi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.DownPayment != 2_000_000 {
		t.Fatalf("expected down payment 2000000, got %f", b.DownPayment)
	}
	if !approx(b.LoanToValuePercent, 80, 1e-9) {
		t.Fatalf("expected LTV 80, got %f", b.LoanToValuePercent)
	}
	if !approx(b.InterestSharePercent, 51.98715, 1e-4) {
		t.Fatalf("unexpected interest share %f", b.InterestSharePercent)
	}
	if !approx(b.PrincipalSharePercent+b.InterestSharePercent, 100, 1e-9) {
		t.Fatalf("shares must add to 100")
	}

	if _, err := Breakdown(5_000_000, emi); !errors.Is(err, ErrInvalidLoanParameters) {
		t.Fatalf("expected error for loan above price, got %v", err)
	}
}

func TestSchedule_PaysOffPrincipal(t *testing.T) {
	emi, _ := ComputeEMI(8_000_000, 8.5, 20)
	rows, err := Schedule(emi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 20 {
		t.Fatalf("expected 20 yearly rows, got %d", len(rows))
	}

	var principal, interest float64
	for i, row := range rows {
		principal += row.PrincipalPaid
		interest += row.InterestPaid
		if i > 0 && !approx(row.OpeningBalance, rows[i-1].ClosingBalance, 1e-6) {
			t.Fatalf("year %d opening balance does not continue previous year", row.Year)
		}
	}
	if !approx(principal, 8_000_000, 1e-4) {
		t.Fatalf("principal paid %f, want 8000000", principal)
	}
	if !approx(interest, emi.TotalInterest, 1) {
		t.Fatalf("interest paid %f, want about %f", interest, emi.TotalInterest)
	}
	if rows[19].ClosingBalance != 0 {
		t.Fatalf("expected zero closing balance, got %f", rows[19].ClosingBalance)
	}
	if rows[0].InterestPaid <= rows[19].InterestPaid {
		t.Fatalf("interest must decline over the tenure")
	}
}

func TestSchedule_ZeroRate(t *testing.T) {
	emi, _ := ComputeEMI(1_200_000, 0, 10)
	rows, err := Schedule(emi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, row := range rows {
		if !approx(row.PrincipalPaid, 120_000, 1e-6) || row.InterestPaid != 0 {
			t.Fatalf("unexpected row %+v", row)
		}
	}
}

func TestSchedule_RejectsEmptyEMI(t *testing.T) {
	if _, err := Schedule(EMI{}); !errors.Is(err, ErrInvalidLoanParameters) {
		t.Fatalf("expected ErrInvalidLoanParameters, got %v", err)
	}
}

func TestEligibility(t *testing.T) {
	emi, _ := ComputeEMI(8_000_000, 8.5, 20)

	ok, err := Eligibility(200_000, 10_000, emi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok.Eligible || ok.MaxAffordable != 70_000 {
		t.Fatalf("expected eligible with 70000 headroom, got %+v", ok)
	}
	if !approx(ok.MaxLoanAmount, 8_066_158.79, 0.01) {
		t.Fatalf("unexpected max loan %f", ok.MaxLoanAmount)
	}

	short, _ := Eligibility(150_000, 0, emi)
	if short.Eligible {
		t.Fatalf("expected not eligible")
	}
	if !approx(short.ShortfallAmount, emi.MonthlyPayment-60_000, 1e-9) {
		t.Fatalf("unexpected shortfall %f", short.ShortfallAmount)
	}

	if _, err := Eligibility(0, 0, emi); !errors.Is(err, ErrInvalidLoanParameters) {
		t.Fatalf("expected error for zero income, got %v", err)
	}
}
