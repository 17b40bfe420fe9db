package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"invoicing-roi-api/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	savingsStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	costStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table. A row holding the single cell "---"
// draws a separator. Columns after the first are right-aligned.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + padRight(h, widths[i]) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i == 0 {
				cell = padRight(cell, widths[i])
			} else {
				cell = padLeft(cell, widths[i])
			}
			b.WriteString(valueStyle.Render(" " + cell + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")
	return b.String()
}

// padRight and padLeft pad by display width so that symbols such as × and
// box characters line up.
func padRight(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// RenderHorizontalBar renders one labelled bar of a bar chart. Negative and
// undefined values draw an empty bar.
func RenderHorizontalBar(label string, value, maxValue float64, labelWidth, maxWidth int, style lipgloss.Style, text string) string {
	barLen := 0
	if maxValue > 0 && value > 0 {
		barLen = int(value / maxValue * float64(maxWidth))
	}
	if barLen > maxWidth {
		barLen = maxWidth
	}
	bar := style.Render(strings.Repeat("█", barLen)) + dimStyle.Render(strings.Repeat("░", maxWidth-barLen))
	return fmt.Sprintf("  %s %s %s", mutedStyle.Render(padRight(label, labelWidth)), bar, valueStyle.Render(text))
}

// RenderInputs renders the parameters a calculation was made with.
func RenderInputs(calc *model.CalculationRecord) string {
	return RenderTable(Table{
		Title:   "Inputs",
		Headers: []string{"Parameter", "Value"},
		Rows: [][]string{
			{"Monthly invoices", FormatCount(calc.MonthlyInvoices)},
			{"Minutes per invoice", FormatCount(calc.TimePerInvoice)},
			{"Hourly rate", FormatCurrency(model.Number(calc.HourlyRate))},
			{"Error rate", FormatCount(calc.ErrorRate) + "%"},
			{"Cost per error", FormatCurrency(model.Number(calc.ErrorCost))},
			{"Solution cost", FormatCurrency(model.Number(calc.SolutionCost))},
			{"Created", calc.CreatedAt.Local().Format("2006-01-02 15:04")},
		},
	})
}

// RenderResult renders the output of a single calculation.
func RenderResult(results model.CalculationResult) string {
	savings := FormatCurrency(results.AnnualSavings)
	if results.AnnualSavings.Defined() && results.AnnualSavings >= 0 {
		savings = savingsStyle.Render(savings)
	} else {
		savings = errorStyle.Render(savings)
	}

	return RenderTable(Table{
		Title:   "Results",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Current annual cost", FormatCurrency(results.CurrentAnnualCost)},
			{"New annual cost", FormatCurrency(results.NewAnnualCost)},
			{"Annual savings", savings},
			{"---"},
			{"ROI", FormatPercent(results.ROI)},
			{"Payback period", FormatMonths(results.PaybackMonths)},
		},
	})
}

// RenderWarnings lists metrics that could not be computed.
func RenderWarnings(warnings []model.Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	for _, w := range warnings {
		b.WriteString("  ")
		b.WriteString(warnStyle.Render("! " + w.Field + ": " + w.Message))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderScenarios renders the scenario projections side by side.
func RenderScenarios(projections []model.ScenarioProjection) string {
	rows := make([][]string, 0, len(projections))
	for _, p := range projections {
		rows = append(rows, []string{
			p.Name,
			FormatMultiplier(p.Multiplier),
			FormatCurrency(p.Results.AnnualSavings),
			FormatPercent(p.Results.ROI),
			FormatMonths(p.Results.PaybackMonths),
		})
	}
	return RenderTable(Table{
		Title:   "Scenarios",
		Headers: []string{"Scenario", "Factor", "Savings", "ROI", "Payback"},
		Rows:    rows,
	})
}

// RenderScenarioSet renders the configured scenarios without results.
func RenderScenarioSet(scenarios []model.Scenario) string {
	rows := make([][]string, 0, len(scenarios))
	for _, s := range scenarios {
		rows = append(rows, []string{s.Name, FormatMultiplier(s.Multiplier)})
	}
	return RenderTable(Table{
		Headers: []string{"Scenario", "Multiplier"},
		Rows:    rows,
	})
}

// RenderHistory renders recent calculations, newest first.
func RenderHistory(records []model.CalculationRecord) string {
	if len(records) == 0 {
		return mutedStyle.Render("  No calculations yet.") + "\n"
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			ShortID(r.ID.String()),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			FormatCount(r.MonthlyInvoices),
			FormatCurrency(r.Results.AnnualSavings),
			FormatPercent(r.Results.ROI),
			FormatMonths(r.Results.PaybackMonths),
		})
	}
	return RenderTable(Table{
		Title:   "Recent Calculations",
		Headers: []string{"ID", "Created", "Invoices/mo", "Savings", "ROI", "Payback"},
		Rows:    rows,
	})
}

// RenderCharts renders the cost comparison, breakdown and savings timeline as bars.
func RenderCharts(charts model.Charts) string {
	const barWidth = 30
	var b strings.Builder

	b.WriteString("  " + headerStyle.Render("Annual Cost") + "\n")
	maxCost := 0.0
	for _, p := range charts.CostComparison {
		if p.Value.Defined() && float64(p.Value) > maxCost {
			maxCost = float64(p.Value)
		}
	}
	for _, p := range charts.CostComparison {
		b.WriteString(RenderHorizontalBar(p.Name, float64(p.Value), maxCost, 14, barWidth, costStyle, FormatCurrency(p.Value)))
		b.WriteString("\n")
	}

	b.WriteString("\n  " + headerStyle.Render("Current Cost Breakdown") + "\n")
	for _, s := range charts.Breakdown {
		text := FormatCurrency(s.Value) + "  " + mutedStyle.Render(FormatShare(s.Share))
		share := 0.0
		if s.Share.Defined() {
			share = float64(s.Share)
		}
		b.WriteString(RenderHorizontalBar(s.Name, share, 1, 14, barWidth, warnStyle, text))
		b.WriteString("\n")
	}

	b.WriteString("\n  " + headerStyle.Render("Cumulative Savings") + "\n")
	maxSavings := 0.0
	for _, t := range charts.Timeline {
		for _, v := range []model.Number{t.Savings, t.Investment} {
			if v.Defined() && float64(v) > maxSavings {
				maxSavings = float64(v)
			}
		}
	}
	for _, t := range charts.Timeline {
		b.WriteString(RenderHorizontalBar(t.Year, float64(t.Savings), maxSavings, 14, barWidth, savingsStyle, FormatCurrency(t.Savings)))
		b.WriteString("\n")
	}
	if len(charts.Timeline) > 0 {
		inv := charts.Timeline[0].Investment
		b.WriteString(RenderHorizontalBar("Investment", float64(inv), maxSavings, 14, barWidth, errorStyle, FormatCurrency(inv)))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderStatus renders server health and database connectivity.
func RenderStatus(health *model.HealthStatus, db *model.DBStatus) string {
	state := errorStyle.Render(health.Database)
	if db.Connected {
		state = savingsStyle.Render(health.Database)
	}

	rows := [][]string{
		{"Server", health.Message},
		{"Database", state},
		{"Driver", db.Driver},
		{"Host", db.Host},
		{"Name", db.Name},
		{"Ready state", readyStateName(db.ReadyState)},
		{"Checked at", health.Timestamp},
	}
	if db.LastError != "" {
		rows = append(rows, []string{"Last error", db.LastError})
	}
	return RenderTable(Table{
		Title: "Status",
		Rows:  rows,
	})
}

func readyStateName(state int) string {
	switch state {
	case model.ReadyStateConnected:
		return "connected"
	case model.ReadyStateConnecting:
		return "connecting"
	default:
		return "disconnected"
	}
}
