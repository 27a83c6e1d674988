package yfinance

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/tickertape-ai/tickertape/tabular"
)

// infoModules are the quoteSummary modules merged into the Info map,
// in merge order. Later modules win on key collisions.
var infoModules = []string{
	"assetProfile",
	"summaryDetail",
	"defaultKeyStatistics",
	"financialData",
	"price",
	"quoteType",
}

// quoteSummary fetches the named modules for a symbol and returns the
// decoded module payloads keyed by module name.
func (c *Client) quoteSummary(ctx context.Context, symbol string, modules ...string) (map[string]any, error) {
	query := url.Values{
		"modules":    []string{strings.Join(modules, ",")},
		"formatted":  []string{"false"},
		"corsDomain": []string{"finance.yahoo.com"},
	}
	var out quoteSummaryResponse
	if err := c.getJSON(ctx, c.baseURL, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), query, &out); err != nil {
		return nil, err
	}
	if out.QuoteSummary.Error != nil {
		return nil, out.QuoteSummary.Error
	}
	if len(out.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%s: no fundamentals data found", symbol)
	}
	return out.QuoteSummary.Result[0], nil
}

// Info returns the merged company profile, trading data, and key
// statistics for a symbol as a flat map.
func (c *Client) Info(ctx context.Context, symbol string) (map[string]any, error) {
	result, err := c.quoteSummary(ctx, symbol, infoModules...)
	if err != nil {
		return nil, err
	}

	info := map[string]any{}
	for _, module := range infoModules {
		payload, ok := result[module].(map[string]any)
		if !ok {
			continue
		}
		for key, value := range payload {
			if key == "maxAge" {
				continue
			}
			info[key] = unwrap(value)
		}
	}
	return info, nil
}

// Financials returns the annual income statement, balance sheet, and cash
// flow statement tables.
func (c *Client) Financials(ctx context.Context, symbol string) (income, balance, cashflow *tabular.Table, err error) {
	result, err := c.quoteSummary(ctx, symbol,
		"incomeStatementHistory", "balanceSheetHistory", "cashflowStatementHistory")
	if err != nil {
		return nil, nil, nil, err
	}
	income = statementTable(result, "incomeStatementHistory", "incomeStatementHistory")
	balance = statementTable(result, "balanceSheetHistory", "balanceSheetStatements")
	cashflow = statementTable(result, "cashflowStatementHistory", "cashflowStatements")
	return income, balance, cashflow, nil
}

// statementTable builds a statement table from a quoteSummary history
// module. Rows are indexed by period end date; columns are the union of
// the line items seen across periods, sorted by name.
func statementTable(result map[string]any, module, listKey string) *tabular.Table {
	statements := moduleList(result, module, listKey)

	columnSet := map[string]bool{}
	for _, statement := range statements {
		for key := range statement {
			if key == "endDate" || key == "maxAge" {
				continue
			}
			columnSet[key] = true
		}
	}
	columns := make([]string, 0, len(columnSet))
	for key := range columnSet {
		columns = append(columns, key)
	}
	sort.Strings(columns)

	table := tabular.NewIndexed("End Date", columns...)
	for _, statement := range statements {
		endDate, ok := epochValue(statement["endDate"])
		if !ok {
			continue
		}
		row := make([]any, 0, len(columns))
		for _, column := range columns {
			row = append(row, cellValue(statement[column]))
		}
		table.AppendAt(time.Unix(endDate, 0).UTC(), row...)
	}
	return table
}

// Recommendations returns the analyst upgrade and downgrade history.
func (c *Client) Recommendations(ctx context.Context, symbol string) (*tabular.Table, error) {
	result, err := c.quoteSummary(ctx, symbol, "upgradeDowngradeHistory")
	if err != nil {
		return nil, err
	}

	table := tabular.NewIndexed("Date", "Firm", "To Grade", "From Grade", "Action")
	for _, item := range moduleList(result, "upgradeDowngradeHistory", "history") {
		when, ok := epochValue(item["epochGradeDate"])
		if !ok {
			continue
		}
		table.AppendAt(time.Unix(when, 0).UTC(),
			cellValue(item["firm"]),
			cellValue(item["toGrade"]),
			cellValue(item["fromGrade"]),
			cellValue(item["action"]),
		)
	}
	return table, nil
}

// Earnings returns yearly revenue and earnings totals.
func (c *Client) Earnings(ctx context.Context, symbol string) (*tabular.Table, error) {
	result, err := c.quoteSummary(ctx, symbol, "earnings")
	if err != nil {
		return nil, err
	}

	table := tabular.New("Year", "Revenue", "Earnings")
	earnings, _ := result["earnings"].(map[string]any)
	chart, _ := earnings["financialsChart"].(map[string]any)
	yearly, _ := chart["yearly"].([]any)
	for _, entry := range yearly {
		year, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		table.Append(
			cellValue(year["date"]),
			cellValue(year["revenue"]),
			cellValue(year["earnings"]),
		)
	}
	return table, nil
}

// EarningsDates returns upcoming and past earnings report dates with EPS
// estimates and realized surprises, newest first.
func (c *Client) EarningsDates(ctx context.Context, symbol string) (*tabular.Table, error) {
	result, err := c.quoteSummary(ctx, symbol, "earningsHistory", "calendarEvents")
	if err != nil {
		return nil, err
	}

	type report struct {
		when     time.Time
		estimate any
		reported any
		surprise any
	}
	var reports []report

	for _, item := range moduleList(result, "earningsHistory", "history") {
		when, ok := epochValue(item["quarter"])
		if !ok {
			continue
		}
		reports = append(reports, report{
			when:     time.Unix(when, 0).UTC(),
			estimate: cellValue(item["epsEstimate"]),
			reported: cellValue(item["epsActual"]),
			surprise: cellValue(item["surprisePercent"]),
		})
	}

	// calendarEvents carries the scheduled dates that have no reported
	// EPS yet.
	calendar, _ := result["calendarEvents"].(map[string]any)
	upcoming, _ := calendar["earnings"].(map[string]any)
	dates, _ := upcoming["earningsDate"].([]any)
	for _, date := range dates {
		when, ok := epochValue(date)
		if !ok {
			continue
		}
		reports = append(reports, report{
			when:     time.Unix(when, 0).UTC(),
			estimate: cellValue(upcoming["earningsAverage"]),
		})
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].when.After(reports[j].when) })

	table := tabular.NewIndexed("Earnings Date", "EPS Estimate", "Reported EPS", "Surprise(%)")
	for _, r := range reports {
		table.AppendAt(r.when, r.estimate, r.reported, r.surprise)
	}
	return table, nil
}

// InstitutionalHolders returns the largest institutional holders.
func (c *Client) InstitutionalHolders(ctx context.Context, symbol string) (*tabular.Table, error) {
	result, err := c.quoteSummary(ctx, symbol, "institutionOwnership")
	if err != nil {
		return nil, err
	}

	table := tabular.New("Date Reported", "Holder", "pctHeld", "Shares", "Value", "pctChange")
	for _, item := range moduleList(result, "institutionOwnership", "ownershipList") {
		var reported any
		if when, ok := epochValue(item["reportDate"]); ok {
			reported = time.Unix(when, 0).UTC()
		}
		table.Append(
			reported,
			cellValue(item["organization"]),
			cellValue(item["pctHeld"]),
			cellValue(item["position"]),
			cellValue(item["value"]),
			cellValue(item["pctChange"]),
		)
	}
	return table, nil
}

// MajorHolders returns the ownership breakdown between insiders and
// institutions.
func (c *Client) MajorHolders(ctx context.Context, symbol string) (*tabular.Table, error) {
	result, err := c.quoteSummary(ctx, symbol, "majorHoldersBreakdown")
	if err != nil {
		return nil, err
	}

	breakdown, _ := result["majorHoldersBreakdown"].(map[string]any)
	table := tabular.New("Breakdown", "Value")
	for _, key := range []string{
		"insidersPercentHeld",
		"institutionsPercentHeld",
		"institutionsFloatPercentHeld",
		"institutionsCount",
	} {
		if value, ok := breakdown[key]; ok {
			table.Append(key, cellValue(value))
		}
	}
	return table, nil
}

// InsiderTransactions returns recent insider purchases and sales.
func (c *Client) InsiderTransactions(ctx context.Context, symbol string) (*tabular.Table, error) {
	result, err := c.quoteSummary(ctx, symbol, "insiderTransactions")
	if err != nil {
		return nil, err
	}

	table := tabular.New("Start Date", "Insider", "Position", "Transaction", "Shares", "Value", "Ownership")
	for _, item := range moduleList(result, "insiderTransactions", "transactions") {
		var started any
		if when, ok := epochValue(item["startDate"]); ok {
			started = time.Unix(when, 0).UTC()
		}
		table.Append(
			started,
			cellValue(item["filerName"]),
			cellValue(item["filerRelation"]),
			cellValue(item["transactionText"]),
			cellValue(item["shares"]),
			cellValue(item["value"]),
			cellValue(item["ownership"]),
		)
	}
	return table, nil
}

// moduleList extracts a list of objects nested under a module payload,
// e.g. upgradeDowngradeHistory.history.
func moduleList(result map[string]any, module, listKey string) []map[string]any {
	payload, _ := result[module].(map[string]any)
	items, _ := payload[listKey].([]any)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// unwrap flattens Yahoo's {"raw": ..., "fmt": ...} value wrappers down to
// the raw value, recursing into nested objects and lists.
func unwrap(v any) any {
	switch value := v.(type) {
	case map[string]any:
		if isWrapper(value) {
			return value["raw"]
		}
		out := make(map[string]any, len(value))
		for key, item := range value {
			out[key] = unwrap(item)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = unwrap(item)
		}
		return out
	default:
		return v
	}
}

func isWrapper(m map[string]any) bool {
	if _, ok := m["raw"]; !ok {
		return false
	}
	for key := range m {
		switch key {
		case "raw", "fmt", "longFmt":
		default:
			return false
		}
	}
	return true
}

// cellValue unwraps a statement value for use as a table cell. Yahoo
// reports missing numbers as empty objects, which become nil cells.
func cellValue(v any) any {
	value := unwrap(v)
	if m, ok := value.(map[string]any); ok && len(m) == 0 {
		return nil
	}
	return value
}

// epochValue extracts a Unix timestamp from a possibly wrapped value.
func epochValue(v any) (int64, bool) {
	switch value := unwrap(v).(type) {
	case float64:
		return int64(value), true
	case int64:
		return value, true
	default:
		return 0, false
	}
}
