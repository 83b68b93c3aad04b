package renderer

import (
	"fmt"

	"github.com/etnz/papertrade"
)

// Metrics renders the aggregate performance report as markdown.
func Metrics(m papertrade.PerformanceMetrics) string {
	out := "# Performance\n\n"
	var t table
	t.header("Metric", "Value")
	t.row("Closed trades", fmt.Sprintf("%d", m.TotalTrades))
	t.row("Profitable trades", fmt.Sprintf("%d", m.ProfitableTrades))
	t.row("Win rate", m.WinRate.StringFixed(2)+" %")
	t.row("Realized PnL", m.RealizedPnL.SignedString())
	t.row("Total volume", m.TotalVolume.String())
	return out + t.String()
}
