package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/segyhp/helbflow/internal/domain"
)

var (
	ColorBorder = lipgloss.Color("#575653")
	ColorText   = lipgloss.Color("#FFFCF0")
	ColorAccent = lipgloss.Color("#3AA99F")
	ColorGreen  = lipgloss.Color("#879A39")
	ColorOrange = lipgloss.Color("#DA702C")
	ColorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(ColorText).Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorOrange)

	stateStyles = map[domain.BudgetState]lipgloss.Style{
		domain.BudgetStateUnder:     cellStyle.Foreground(ColorGreen),
		domain.BudgetStateNearLimit: cellStyle.Foreground(ColorOrange),
		domain.BudgetStateOver:      cellStyle.Foreground(ColorRed).Bold(true),
	}
)

// RenderTitle renders a bold title line
func RenderTitle(title string) string {
	return titleStyle.Render(title)
}

// RenderSchedule renders an amortization schedule with a totals footer
func RenderSchedule(schedule *domain.RepaymentSchedule) string {
	rows := make([][]string, 0, len(schedule.Entries))
	for _, entry := range schedule.Entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", entry.Month),
			entry.DueDate.Format("2006-01-02"),
			entry.PaymentAmount.StringFixed(2),
			entry.PrincipalPortion.StringFixed(2),
			entry.InterestPortion.StringFixed(2),
			entry.RemainingBalance.StringFixed(2),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers("Month", "Due", "Payment", "Principal", "Interest", "Balance").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return cellStyle
			default:
				return numberStyle
			}
		})

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total principal %s, total interest %s over %d months\n",
		schedule.TotalPrincipal.StringFixed(2), schedule.TotalInterest.StringFixed(2), len(schedule.Entries))
	if schedule.Incomplete {
		b.WriteString(warnStyle.Render("Schedule stopped at the month cap with a balance still outstanding"))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderBudget renders one row per category status
func RenderBudget(statuses []domain.BudgetStatus) string {
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		percent := "n/a"
		if status.PercentUsed.Valid {
			percent = status.PercentUsed.Decimal.StringFixed(2) + "%"
		}
		rows = append(rows, []string{
			status.Category,
			status.BudgetAmount.StringFixed(2),
			status.SpentAmount.StringFixed(2),
			status.RemainingAmount.StringFixed(2),
			percent,
			string(status.State),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers("Category", "Budget", "Spent", "Remaining", "Used", "State").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			case col == 5 && row >= 0 && row < len(statuses):
				return stateStyles[statuses[row].State]
			default:
				return numberStyle
			}
		})

	return t.String() + "\n"
}
