package mcp

import (
	"context"

	"github.com/tickertape-ai/tickertape/tabular"
)

// Provider supplies market data for the tool catalog, one method per
// provider capability. Calls are synchronous and independent; the server
// holds no state across them. Tests substitute a fake implementation.
type Provider interface {
	// Info returns the company profile, key statistics, and quote fields
	// for a symbol as a flat object.
	Info(ctx context.Context, symbol string) (map[string]any, error)

	// History returns OHLCV price history over a period at an interval.
	History(ctx context.Context, symbol, period, interval string) (*tabular.Table, error)

	// Download returns merged price history for several symbols. The
	// groupBy mode controls merged column naming: "column" yields
	// "<Field> <SYMBOL>", "ticker" yields "<SYMBOL> <Field>".
	Download(ctx context.Context, symbols []string, period, interval, groupBy string) (*tabular.Table, error)

	// Financials returns the income statement, balance sheet, and cash
	// flow statement tables.
	Financials(ctx context.Context, symbol string) (income, balance, cashflow *tabular.Table, err error)

	// Recommendations returns analyst rating actions.
	Recommendations(ctx context.Context, symbol string) (*tabular.Table, error)

	// Search returns securities matching a free-text query. The caller
	// applies any result limit.
	Search(ctx context.Context, query string) ([]map[string]any, error)

	// Dividends returns the dividend payment history.
	Dividends(ctx context.Context, symbol string) (*tabular.Table, error)

	// Splits returns the stock split history.
	Splits(ctx context.Context, symbol string) (*tabular.Table, error)

	// Actions returns dividends and splits merged into one table.
	Actions(ctx context.Context, symbol string) (*tabular.Table, error)

	// CapitalGains returns capital gains distributions (funds only).
	CapitalGains(ctx context.Context, symbol string) (*tabular.Table, error)

	// Earnings returns yearly revenue and earnings figures.
	Earnings(ctx context.Context, symbol string) (*tabular.Table, error)

	// EarningsDates returns past and upcoming earnings dates. The caller
	// applies any row limit.
	EarningsDates(ctx context.Context, symbol string) (*tabular.Table, error)

	// InstitutionalHolders returns institutional ownership positions.
	InstitutionalHolders(ctx context.Context, symbol string) (*tabular.Table, error)

	// MajorHolders returns the major shareholders breakdown.
	MajorHolders(ctx context.Context, symbol string) (*tabular.Table, error)

	// InsiderTransactions returns reported insider transactions.
	InsiderTransactions(ctx context.Context, symbol string) (*tabular.Table, error)

	// News returns recent news items for a symbol. The caller applies any
	// item limit.
	News(ctx context.Context, symbol string) ([]map[string]any, error)

	// OptionExpirations returns available option expiration dates in
	// YYYY-MM-DD form.
	OptionExpirations(ctx context.Context, symbol string) ([]string, error)

	// OptionChain returns the call and put tables for one expiration date.
	OptionChain(ctx context.Context, symbol, expirationDate string) (calls, puts *tabular.Table, err error)

	// ISIN returns the ISIN identifier for a symbol, or "-" when it
	// cannot be resolved.
	ISIN(ctx context.Context, symbol string) (string, error)
}
