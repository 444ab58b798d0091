package domain

import "github.com/shopspring/decimal"

// DashboardStats are the headline figures on the officer dashboard
type DashboardStats struct {
	TotalStudents        int64           `json:"totalStudents"`
	TotalActiveLoans     decimal.Decimal `json:"totalActiveLoans"`
	MonthlyDisbursements decimal.Decimal `json:"monthlyDisbursements"`
	RepaymentRatePercent decimal.Decimal `json:"repaymentRate"`
}
