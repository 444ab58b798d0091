package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/segyhp/helbflow/internal/cli"
	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/engine"
	"github.com/segyhp/helbflow/pkg/utils"
)

var (
	flagPrincipal string
	flagRate      string
	flagPayment   string
	flagYears     int
	flagStart     string
)

var scheduleCmd = &cobra.Command{
	Use:     "schedule",
	Short:   "Print a loan repayment schedule",
	Example: `  helbctl schedule --principal 100000 --rate 4 --payment 2500 --start 2025-01-01
  helbctl schedule --principal 100000 --rate 4 --years 5`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&flagPrincipal, "principal", "", "Loan principal")
	scheduleCmd.Flags().StringVar(&flagRate, "rate", "4", "Annual interest rate in percent")
	scheduleCmd.Flags().StringVar(&flagPayment, "payment", "", "Fixed monthly payment")
	scheduleCmd.Flags().IntVar(&flagYears, "years", 0, "Repayment period in years, used to derive the payment")
	scheduleCmd.Flags().StringVar(&flagStart, "start", "", "First due date (YYYY-MM-DD), defaults to the first of next month")
	_ = scheduleCmd.MarkFlagRequired("principal")
	scheduleCmd.MarkFlagsMutuallyExclusive("payment", "years")
	scheduleCmd.MarkFlagsOneRequired("payment", "years")

	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	terms, err := scheduleTerms(time.Now())
	if err != nil {
		return err
	}

	schedule, err := engine.NewAmortizationEngine().GenerateSchedule(terms)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("REPAYMENT SCHEDULE  %s at %s%%, %s per month",
		terms.Principal.StringFixed(2), terms.AnnualInterestRatePercent.String(), terms.MonthlyPayment.StringFixed(2))))
	fmt.Fprint(out, cli.RenderSchedule(schedule))
	return nil
}

// scheduleTerms builds loan terms from the command flags
func scheduleTerms(now time.Time) (domain.LoanTerms, error) {
	principal, err := utils.DecimalFromString(flagPrincipal)
	if err != nil {
		return domain.LoanTerms{}, fmt.Errorf("invalid --principal: %w", err)
	}
	rate, err := utils.DecimalFromString(flagRate)
	if err != nil {
		return domain.LoanTerms{}, fmt.Errorf("invalid --rate: %w", err)
	}

	var payment decimal.Decimal
	switch {
	case flagPayment != "":
		payment, err = utils.DecimalFromString(flagPayment)
		if err != nil {
			return domain.LoanTerms{}, fmt.Errorf("invalid --payment: %w", err)
		}
	case flagYears > 0:
		payment, err = engine.NewAmortizationEngine().MonthlyPaymentFor(principal, rate, flagYears*12)
		if err != nil {
			return domain.LoanTerms{}, err
		}
	default:
		return domain.LoanTerms{}, errors.New("either --payment or a positive --years is required")
	}

	start := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	if flagStart != "" {
		start, err = time.Parse("2006-01-02", flagStart)
		if err != nil {
			return domain.LoanTerms{}, fmt.Errorf("invalid --start: %w", err)
		}
	}

	return domain.LoanTerms{
		Principal:                 principal,
		AnnualInterestRatePercent: rate,
		MonthlyPayment:            payment,
		RepaymentStartDate:        start,
	}, nil
}
