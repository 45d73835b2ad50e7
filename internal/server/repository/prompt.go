package repository

import (
	"fmt"
	"strings"

	"wealth-backoffice/internal/entity"
	"wealth-backoffice/internal/rebalance"
)

// BuildRebalanceInsightsPrompt builds the prompt for rebalancing commentary.
func BuildRebalanceInsightsPrompt(account *entity.Account, report *rebalance.Report) string {
	var itemsBuilder strings.Builder
	for i, item := range report.Items {
		itemsBuilder.WriteString(fmt.Sprintf(
			"%d. Ticker: %s\n   Status: %s\n   Target: %.2f%%\n   Actual: %.2f%%\n   Variance: %.2f%%\n   Suggested: %s $%.2f\n\n",
			i+1, item.Ticker, item.Status, item.TargetPercentage, item.ActualPercentage, item.Variance, item.ActionType, item.ActionDollarAmount,
		))
	}

	promptTemplate := `You are a portfolio analyst reviewing a rebalancing report for the account "%s" (%s).

Total portfolio value: $%.2f
Target allocations cover %.2f%% of the portfolio.

Per-holding comparison against target:

%s
Write a short plain-language commentary (2 to 4 paragraphs) for an advisor reviewing this account. Highlight the largest deviations from target, any holdings that are not part of the target allocation, and targets that are not held yet. Do not give personalized financial advice, describe the numbers only. Respond with plain text, no markdown.`

	return fmt.Sprintf(promptTemplate, account.Name, account.Type, report.TotalActualValue, report.TotalTargetPercentage, itemsBuilder.String())
}
