package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/segyhp/helbflow/internal/cli"
	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/engine"
)

var flagBudgetFile string

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Evaluate budgets described in a TOML file",
	Long: `Evaluate per-category budgets against transactions from a TOML file:

  [[budget]]
  category = "food"
  amount = "5000"
  threshold = "80"

  [[transaction]]
  category = "food"
  amount = "1200.50"`,
	RunE: runBudget,
}

func init() {
	budgetCmd.Flags().StringVarP(&flagBudgetFile, "file", "f", "budget.toml", "Budget file")
	rootCmd.AddCommand(budgetCmd)
}

type budgetFile struct {
	Budgets      []budgetEntry              `toml:"budget"`
	Transactions []domain.CategorizedAmount `toml:"transaction"`
}

type budgetEntry struct {
	Category  string           `toml:"category"`
	Amount    decimal.Decimal  `toml:"amount"`
	Threshold *decimal.Decimal `toml:"threshold"`
}

func runBudget(cmd *cobra.Command, _ []string) error {
	periods, err := loadBudgetFile(flagBudgetFile)
	if err != nil {
		return err
	}

	statuses, err := engine.NewBudgetVarianceEngine().Evaluate(periods)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTitle("BUDGET STATUS  "+flagBudgetFile))
	if len(statuses) == 0 {
		fmt.Fprintln(out, "  No budgets found.")
		return nil
	}
	fmt.Fprint(out, cli.RenderBudget(statuses))
	return nil
}

// loadBudgetFile decodes path into budget periods. Every period receives the full transaction
// list; evaluation keeps only the matching category.
func loadBudgetFile(path string) ([]domain.BudgetPeriod, error) {
	var file budgetFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("read budget file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("read budget file: unknown key %q", undecoded[0].String())
	}

	periods := make([]domain.BudgetPeriod, 0, len(file.Budgets))
	for _, entry := range file.Budgets {
		period := domain.BudgetPeriod{
			Category:     entry.Category,
			BudgetAmount: entry.Amount,
			Transactions: file.Transactions,
		}
		if entry.Threshold != nil {
			period.AlertThresholdPercent = decimal.NewNullDecimal(*entry.Threshold)
		}
		periods = append(periods, period)
	}
	return periods, nil
}
