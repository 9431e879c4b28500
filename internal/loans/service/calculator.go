package service

import (
	"math"

	"estate_portal_backend/platform/apperr"
)

const (
	// DefaultAnnualRatePercent and DefaultTenureYears seed the calculator
	// when a listing page opens it.
	DefaultAnnualRatePercent = 8.5
	DefaultTenureYears       = 20
	// DefaultLoanToValue is the share of the property price suggested as loan.
	DefaultLoanToValue = 0.8
	// MaxEMIIncomeShare is the part of monthly income lenders allow for EMIs.
	MaxEMIIncomeShare = 0.4
	MaxTenureYears    = 50
	// MaxAmount bounds every rupee input and total so rounded values stay
	// exact in float64 and far inside int64.
	MaxAmount = 1e15
)

// ErrInvalidLoanParameters is matched with errors.Is against every
// calculator input error.
var ErrInvalidLoanParameters = apperr.Validation("invalid loan parameters").WithCode("INVALID_LOAN_PARAMETERS")

func invalidLoan(message string, details map[string]any) *apperr.Error {
	return apperr.Validation(message).WithCode(ErrInvalidLoanParameters.Code).WithDetails(details)
}

// EMI is the unrounded result of the amortization formula.
type EMI struct {
	Principal         float64
	AnnualRatePercent float64
	TenureYears       int
	MonthlyRate       float64
	Months            int
	MonthlyPayment    float64
	TotalPayment      float64
	TotalInterest     float64
}

// RoundedEMI holds whole-rupee values for display.
type RoundedEMI struct {
	MonthlyPayment int64
	TotalPayment   int64
	TotalInterest  int64
}

// Rounded rounds each field independently to the nearest rupee.
func (e EMI) Rounded() RoundedEMI {
	return RoundedEMI{
		MonthlyPayment: roundRupees(e.MonthlyPayment),
		TotalPayment:   roundRupees(e.TotalPayment),
		TotalInterest:  roundRupees(e.TotalInterest),
	}
}

func roundRupees(v float64) int64 {
	return int64(math.Round(v))
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ComputeEMI returns the equated monthly installment for a loan. A zero rate
// spreads the principal evenly. Non-positive principal or tenure, tenure over
// MaxTenureYears, a negative rate, non-finite input, or a principal or total
// repayment above MaxAmount return ErrInvalidLoanParameters.
func ComputeEMI(principal, annualRatePercent float64, tenureYears int) (EMI, error) {
	details := map[string]any{}
	if !finite(principal) || principal <= 0 {
		details["principal"] = "must be a positive amount"
	} else if principal > MaxAmount {
		details["principal"] = "too large"
	}
	if !finite(annualRatePercent) || annualRatePercent < 0 {
		details["annualRatePercent"] = "must not be negative"
	}
	if tenureYears <= 0 || tenureYears > MaxTenureYears {
		details["tenureYears"] = "must be between 1 and 50 years"
	}
	if len(details) > 0 {
		return EMI{}, invalidLoan("invalid loan parameters", details)
	}

	monthlyRate := annualRatePercent / (12 * 100)
	months := tenureYears * 12

	var payment float64
	if monthlyRate == 0 {
		payment = principal / float64(months)
	} else {
		growth := math.Pow(1+monthlyRate, float64(months))
		payment = principal * monthlyRate * growth / (growth - 1)
	}

	total := payment * float64(months)
	if !finite(payment, total) || total > MaxAmount {
		return EMI{}, invalidLoan("loan parameters out of range", map[string]any{"totalPayment": "exceeds the supported amount"})
	}

	return EMI{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TenureYears:       tenureYears,
		MonthlyRate:       monthlyRate,
		Months:            months,
		MonthlyPayment:    payment,
		TotalPayment:      total,
		TotalInterest:     total - principal,
	}, nil
}

// DefaultLoanAmount suggests a loan of 80% of the property price.
func DefaultLoanAmount(propertyPrice int64) float64 {
	return float64(propertyPrice) * DefaultLoanToValue
}

// LoanBreakdown relates a loan to the property it finances.
type LoanBreakdown struct {
	PropertyPrice         float64
	DownPayment           float64
	LoanToValuePercent    float64
	PrincipalSharePercent float64
	InterestSharePercent  float64
}

// Breakdown splits the property price into down payment and loan, and the
// total repayment into principal and interest shares.
func Breakdown(propertyPrice float64, e EMI) (LoanBreakdown, error) {
	if !finite(propertyPrice) || propertyPrice <= 0 {
		return LoanBreakdown{}, invalidLoan("invalid property price", map[string]any{"propertyPrice": "must be a positive amount"})
	}
	if propertyPrice > MaxAmount {
		return LoanBreakdown{}, invalidLoan("invalid property price", map[string]any{"propertyPrice": "too large"})
	}
	if e.Principal > propertyPrice {
		return LoanBreakdown{}, invalidLoan("loan exceeds property price", map[string]any{"principal": "must not exceed property price"})
	}

	var principalShare, interestShare float64
	if e.TotalPayment > 0 {
		principalShare = e.Principal / e.TotalPayment * 100
		interestShare = e.TotalInterest / e.TotalPayment * 100
	}

	return LoanBreakdown{
		PropertyPrice:         propertyPrice,
		DownPayment:           propertyPrice - e.Principal,
		LoanToValuePercent:    e.Principal / propertyPrice * 100,
		PrincipalSharePercent: principalShare,
		InterestSharePercent:  interestShare,
	}, nil
}

// ScheduleYear is one row of the yearly amortization table.
type ScheduleYear struct {
	Year           int
	OpeningBalance float64
	PrincipalPaid  float64
	InterestPaid   float64
	ClosingBalance float64
}

// Schedule amortizes the loan month by month and reports yearly totals. The
// last installment absorbs floating point drift so the closing balance ends
// at zero.
func Schedule(e EMI) ([]ScheduleYear, error) {
	if e.Months <= 0 || e.Principal <= 0 {
		return nil, invalidLoan("invalid loan parameters", map[string]any{"emi": "compute the EMI first"})
	}

	rows := make([]ScheduleYear, 0, e.TenureYears)
	balance := e.Principal
	for month := 1; month <= e.Months; month++ {
		if (month-1)%12 == 0 {
			rows = append(rows, ScheduleYear{Year: (month-1)/12 + 1, OpeningBalance: balance})
		}
		row := &rows[len(rows)-1]

		interest := balance * e.MonthlyRate
		principalPaid := e.MonthlyPayment - interest
		if month == e.Months {
			principalPaid = balance
		}
		balance -= principalPaid

		row.InterestPaid += interest
		row.PrincipalPaid += principalPaid
		row.ClosingBalance = math.Max(balance, 0)
	}
	return rows, nil
}

// EligibilityResult compares an EMI against what the borrower's income allows.
type EligibilityResult struct {
	MonthlyIncome      float64
	ExistingEMIs       float64
	MaxAffordable      float64
	Eligible           bool
	MaxLoanAmount      float64
	IncomeSharePercent float64
	ShortfallAmount    float64
}

// Eligibility applies the 40% rule: all EMIs together may take at most 40% of
// monthly income. MaxLoanAmount is the principal the remaining headroom can
// service at the same rate and tenure.
func Eligibility(monthlyIncome, existingEMIs float64, e EMI) (EligibilityResult, error) {
	details := map[string]any{}
	if !finite(monthlyIncome) || monthlyIncome <= 0 {
		details["monthlyIncome"] = "must be a positive amount"
	} else if monthlyIncome > MaxAmount {
		details["monthlyIncome"] = "too large"
	}
	if !finite(existingEMIs) || existingEMIs < 0 {
		details["existingEmis"] = "must not be negative"
	} else if existingEMIs > MaxAmount {
		details["existingEmis"] = "too large"
	}
	if e.Months <= 0 {
		details["emi"] = "compute the EMI first"
	}
	if len(details) > 0 {
		return EligibilityResult{}, invalidLoan("invalid eligibility parameters", details)
	}

	headroom := math.Max(monthlyIncome*MaxEMIIncomeShare-existingEMIs, 0)

	var maxLoan float64
	if e.MonthlyRate == 0 {
		maxLoan = headroom * float64(e.Months)
	} else {
		growth := math.Pow(1+e.MonthlyRate, float64(e.Months))
		maxLoan = headroom * (growth - 1) / (e.MonthlyRate * growth)
	}

	return EligibilityResult{
		MonthlyIncome:      monthlyIncome,
		ExistingEMIs:       existingEMIs,
		MaxAffordable:      headroom,
		Eligible:           e.MonthlyPayment <= headroom,
		MaxLoanAmount:      maxLoan,
		IncomeSharePercent: (e.MonthlyPayment + existingEMIs) / monthlyIncome * 100,
		ShortfallAmount:    math.Max(e.MonthlyPayment-headroom, 0),
	}, nil
}
