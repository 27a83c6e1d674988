package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/tickertape-ai/tickertape/tabular"
)

// ToolHandler executes one tool: extract arguments, call the provider,
// shape the result. Any returned error becomes an error envelope.
type ToolHandler func(ctx context.Context, provider Provider, args Arguments) (any, error)

// ToolDef pairs a tool descriptor with its handler.
type ToolDef struct {
	Tool    Tool
	Handler ToolHandler
}

func objectSchema(required []string, properties map[string]*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func symbolProperty() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Stock ticker symbol (e.g., AAPL, TSLA, GOOGL)",
	}
}

// catalog returns the full tool catalog in its canonical order. The
// descriptors are static data; each handler is a thin call-and-shape
// operation against the provider.
func catalog() []ToolDef {
	return []ToolDef{
		{
			Tool: Tool{
				Name:        "get_ticker_info",
				Description: "Get comprehensive information about a stock ticker including company details, financials, and key statistics",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				info, err := provider.Info(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol": symbol,
					"info":   info,
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_history",
				Description: "Get historical price data (OHLCV) for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
					"period": {
						Type:        "string",
						Description: "Time period: 1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max",
						Default:     json.RawMessage(`"1mo"`),
					},
					"interval": {
						Type:        "string",
						Description: "Data interval: 1m, 2m, 5m, 15m, 30m, 60m, 90m, 1h, 1d, 5d, 1wk, 1mo, 3mo",
						Default:     json.RawMessage(`"1d"`),
					},
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				period := args.StringOr("period", "1mo")
				interval := args.StringOr("interval", "1d")
				history, err := provider.History(ctx, symbol, period, interval)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol":   symbol,
					"period":   period,
					"interval": interval,
					"data":     tabular.Records(history),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_financials",
				Description: "Get financial statements including income statement, balance sheet, and cash flow",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				income, balance, cashflow, err := provider.Financials(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol":           symbol,
					"income_statement": tabular.Records(income),
					"balance_sheet":    tabular.Records(balance),
					"cash_flow":        tabular.Records(cashflow),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_recommendations",
				Description: "Get analyst recommendations and ratings for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				recommendations, err := provider.Recommendations(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol":          symbol,
					"recommendations": tabular.Records(recommendations),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "download_multiple",
				Description: "Download data for multiple tickers efficiently (bulk download)",
				InputSchema: objectSchema([]string{"symbols"}, map[string]*jsonschema.Schema{
					"symbols": {
						Type:        "array",
						Items:       &jsonschema.Schema{Type: "string"},
						Description: "List of ticker symbols",
					},
					"period": {
						Type:        "string",
						Description: "Time period",
						Default:     json.RawMessage(`"1mo"`),
					},
					"interval": {
						Type:        "string",
						Description: "Data interval",
						Default:     json.RawMessage(`"1d"`),
					},
					"group_by": {
						Type:        "string",
						Description: "Group merged columns by \"column\" or \"ticker\"",
						Default:     json.RawMessage(`"column"`),
					},
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbols, err := args.StringSlice("symbols")
				if err != nil {
					return nil, err
				}
				period := args.StringOr("period", "1mo")
				interval := args.StringOr("interval", "1d")
				groupBy := args.StringOr("group_by", "column")
				data, err := provider.Download(ctx, symbols, period, interval, groupBy)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbols":  symbols,
					"period":   period,
					"interval": interval,
					"data":     tabular.Records(data),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "search_tickers",
				Description: "Search for stocks, ETFs, and other securities by name or symbol",
				InputSchema: objectSchema([]string{"query"}, map[string]*jsonschema.Schema{
					"query": {
						Type:        "string",
						Description: "Search query (company name or ticker)",
					},
					"max_results": {
						Type:        "integer",
						Description: "Maximum number of results to return",
						Default:     json.RawMessage(`10`),
					},
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				query, err := args.String("query")
				if err != nil {
					return nil, err
				}
				maxResults := args.IntOr("max_results", 10)
				results, err := provider.Search(ctx, query)
				if err != nil {
					return nil, err
				}
				if maxResults >= 0 && len(results) > maxResults {
					results = results[:maxResults]
				}
				return map[string]any{
					"query":   query,
					"count":   len(results),
					"results": results,
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_dividends",
				Description: "Get historical dividend payments for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				dividends, err := provider.Dividends(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol":    symbol,
					"dividends": tabular.Records(dividends),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_splits",
				Description: "Get stock split history for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				splits, err := provider.Splits(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol": symbol,
					"splits": tabular.Records(splits),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_actions",
				Description: "Get all corporate actions (dividends + splits) for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				actions, err := provider.Actions(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol":  symbol,
					"actions": tabular.Records(actions),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_capital_gains",
				Description: "Get capital gains distributions for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				gains, err := provider.CapitalGains(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol":        symbol,
					"capital_gains": tabular.Records(gains),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_earnings",
				Description: "Get earnings data for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				earnings, err := provider.Earnings(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol":   symbol,
					"earnings": tabular.Records(earnings),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_earnings_dates",
				Description: "Get upcoming and past earnings dates/calendar for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
					"limit": {
						Type:        "integer",
						Description: "Number of earnings dates to return",
						Default:     json.RawMessage(`12`),
					},
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				limit := args.IntOr("limit", 12)
				dates, err := provider.EarningsDates(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol":         symbol,
					"earnings_dates": tabular.Records(dates.Head(limit)),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_analyst_price_targets",
				Description: "Get analyst price targets and consensus for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				info, err := provider.Info(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol": symbol,
					"price_targets": map[string]any{
						"current_price":              info["currentPrice"],
						"target_high_price":          info["targetHighPrice"],
						"target_low_price":           info["targetLowPrice"],
						"target_mean_price":          info["targetMeanPrice"],
						"target_median_price":        info["targetMedianPrice"],
						"number_of_analyst_opinions": info["numberOfAnalystOpinions"],
					},
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_institutional_holders",
				Description: "Get institutional ownership data for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				holders, err := provider.InstitutionalHolders(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol":                symbol,
					"institutional_holders": tabular.Records(holders),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_major_holders",
				Description: "Get major shareholders breakdown for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				holders, err := provider.MajorHolders(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol":        symbol,
					"major_holders": tabular.Records(holders),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_insider_transactions",
				Description: "Get insider transaction data (smart money activity) for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				transactions, err := provider.InsiderTransactions(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol":               symbol,
					"insider_transactions": tabular.Records(transactions),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_news",
				Description: "Get latest news articles for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
					"max_items": {
						Type:        "integer",
						Description: "Maximum number of news items",
						Default:     json.RawMessage(`10`),
					},
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				maxItems := args.IntOr("max_items", 10)
				news, err := provider.News(ctx, symbol)
				if err != nil {
					return nil, err
				}
				if maxItems >= 0 && len(news) > maxItems {
					news = news[:maxItems]
				}
				return map[string]any{
					"symbol": symbol,
					"count":  len(news),
					"news":   news,
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_options",
				Description: "Get available options expiration dates for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				expirations, err := provider.OptionExpirations(ctx, symbol)
				if err != nil {
					return nil, err
				}
				if expirations == nil {
					expirations = []string{}
				}
				return map[string]any{
					"symbol":           symbol,
					"expiration_dates": expirations,
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_option_chain",
				Description: "Get full options chain (calls and puts) for a specific expiration date",
				InputSchema: objectSchema([]string{"symbol", "expiration_date"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
					"expiration_date": {
						Type:        "string",
						Description: "Options expiration date (YYYY-MM-DD format)",
					},
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				expiration, err := args.String("expiration_date")
				if err != nil {
					return nil, err
				}
				calls, puts, err := provider.OptionChain(ctx, symbol, expiration)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol":          symbol,
					"expiration_date": expiration,
					"calls":           tabular.Records(calls),
					"puts":            tabular.Records(puts),
				}, nil
			},
		},
		{
			Tool: Tool{
				Name:        "get_ticker_isin",
				Description: "Get ISIN identifier for a ticker",
				InputSchema: objectSchema([]string{"symbol"}, map[string]*jsonschema.Schema{
					"symbol": symbolProperty(),
				}),
			},
			Handler: func(ctx context.Context, provider Provider, args Arguments) (any, error) {
				symbol, err := args.String("symbol")
				if err != nil {
					return nil, err
				}
				isin, err := provider.ISIN(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"symbol": symbol,
					"isin":   isin,
				}, nil
			},
		},
	}
}
