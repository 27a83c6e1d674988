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

var historyColumns = []string{"Open", "High", "Low", "Close", "Volume", "Dividends", "Stock Splits"}

// chart fetches one symbol's candles and corporate events.
func (c *Client) chart(ctx context.Context, symbol, period, interval string) (*chartResult, error) {
	query := url.Values{
		"range":                []string{period},
		"interval":             []string{interval},
		"events":               []string{"div,splits,capitalGains"},
		"includeAdjustedClose": []string{"true"},
	}
	var out chartResponse
	if err := c.getJSON(ctx, c.baseURL, "/v8/finance/chart/"+url.PathEscape(symbol), query, &out); err != nil {
		return nil, err
	}
	if out.Chart.Error != nil {
		return nil, out.Chart.Error
	}
	if len(out.Chart.Result) == 0 {
		return nil, fmt.Errorf("%s: no price data found, symbol may be delisted", symbol)
	}
	return &out.Chart.Result[0], nil
}

// History returns OHLCV candles for the period at the given interval,
// with dividend and split events merged in as columns.
func (c *Client) History(ctx context.Context, symbol, period, interval string) (*tabular.Table, error) {
	result, err := c.chart(ctx, symbol, period, interval)
	if err != nil {
		return nil, err
	}

	loc := location(result.Meta.ExchangeTimezoneName)
	intra := intraday(interval)

	indexName := "Date"
	if intra {
		indexName = "Datetime"
	}
	table := tabular.NewIndexed(indexName, historyColumns...)

	var quote chartQuote
	if len(result.Indicators.Quote) > 0 {
		quote = result.Indicators.Quote[0]
	}

	dividendAt := map[int64]float64{}
	splitAt := map[int64]float64{}
	if result.Events != nil {
		for _, d := range result.Events.Dividends {
			dividendAt[candleTime(d.Date, loc, intra).Unix()] = d.Amount
		}
		for _, s := range result.Events.Splits {
			splitAt[candleTime(s.Date, loc, intra).Unix()] = s.ratio()
		}
	}

	for i, ts := range result.Timestamp {
		when := candleTime(ts, loc, intra)
		table.AppendAt(when,
			floatCell(quote.Open, i),
			floatCell(quote.High, i),
			floatCell(quote.Low, i),
			floatCell(quote.Close, i),
			intCell(quote.Volume, i),
			dividendAt[when.Unix()],
			splitAt[when.Unix()],
		)
	}
	return table, nil
}

// Download fetches history for several symbols and merges the tables over
// the union of their timestamps. groupBy selects the column naming:
// "ticker" produces "AAPL Open", anything else produces "Open AAPL".
// A single symbol downloads to its plain history table.
func (c *Client) Download(ctx context.Context, symbols []string, period, interval, groupBy string) (*tabular.Table, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols specified")
	}

	type history struct {
		symbol string
		rows   map[int64][]any
	}

	histories := make([]history, 0, len(symbols))
	seen := map[int64]time.Time{}
	indexName := "Date"

	for _, symbol := range symbols {
		table, err := c.History(ctx, symbol, period, interval)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", symbol, err)
		}
		if len(symbols) == 1 {
			return table, nil
		}
		indexName = table.IndexName
		rows := make(map[int64][]any, table.Len())
		for i, ts := range table.Index {
			rows[ts.Unix()] = table.Rows[i]
			seen[ts.Unix()] = table.Index[i]
		}
		histories = append(histories, history{symbol: symbol, rows: rows})
	}

	stamps := make([]int64, 0, len(seen))
	for ts := range seen {
		stamps = append(stamps, ts)
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i] < stamps[j] })

	var columns []string
	if groupBy == "ticker" {
		for _, h := range histories {
			for _, field := range historyColumns {
				columns = append(columns, h.symbol+" "+field)
			}
		}
	} else {
		for _, field := range historyColumns {
			for _, h := range histories {
				columns = append(columns, field+" "+h.symbol)
			}
		}
	}

	merged := tabular.NewIndexed(indexName, columns...)
	for _, ts := range stamps {
		row := make([]any, 0, len(columns))
		if groupBy == "ticker" {
			for _, h := range histories {
				cells := h.rows[ts]
				for i := range historyColumns {
					row = append(row, rowCell(cells, i))
				}
			}
		} else {
			for i := range historyColumns {
				for _, h := range histories {
					row = append(row, rowCell(h.rows[ts], i))
				}
			}
		}
		merged.AppendAt(seen[ts], row...)
	}
	return merged, nil
}

// corporateEvents fetches the full dividend, split, and capital gain
// history for a symbol.
func (c *Client) corporateEvents(ctx context.Context, symbol string) (*chartEvents, *time.Location, error) {
	result, err := c.chart(ctx, symbol, "max", "1d")
	if err != nil {
		return nil, nil, err
	}
	events := result.Events
	if events == nil {
		events = &chartEvents{}
	}
	return events, location(result.Meta.ExchangeTimezoneName), nil
}

// Dividends returns the full dividend payment history.
func (c *Client) Dividends(ctx context.Context, symbol string) (*tabular.Table, error) {
	events, loc, err := c.corporateEvents(ctx, symbol)
	if err != nil {
		return nil, err
	}
	table := tabular.NewIndexed("Date", "Dividends")
	for _, d := range sortedDividends(events.Dividends) {
		table.AppendAt(candleTime(d.Date, loc, false), d.Amount)
	}
	return table, nil
}

// Splits returns the full stock split history as ratios.
func (c *Client) Splits(ctx context.Context, symbol string) (*tabular.Table, error) {
	events, loc, err := c.corporateEvents(ctx, symbol)
	if err != nil {
		return nil, err
	}
	table := tabular.NewIndexed("Date", "Stock Splits")
	for _, s := range sortedSplits(events.Splits) {
		table.AppendAt(candleTime(s.Date, loc, false), s.ratio())
	}
	return table, nil
}

// CapitalGains returns the capital gain distribution history. Only funds
// distribute capital gains, so for most symbols the table is empty.
func (c *Client) CapitalGains(ctx context.Context, symbol string) (*tabular.Table, error) {
	events, loc, err := c.corporateEvents(ctx, symbol)
	if err != nil {
		return nil, err
	}
	table := tabular.NewIndexed("Date", "Capital Gains")
	for _, g := range sortedCapitalGains(events.CapitalGains) {
		table.AppendAt(candleTime(g.Date, loc, false), g.Amount)
	}
	return table, nil
}

// Actions merges dividends and splits into one chronological table with
// zero fills where only one kind of event occurred.
func (c *Client) Actions(ctx context.Context, symbol string) (*tabular.Table, error) {
	events, loc, err := c.corporateEvents(ctx, symbol)
	if err != nil {
		return nil, err
	}

	type action struct {
		dividend float64
		split    float64
	}
	actions := map[int64]action{}
	for _, d := range events.Dividends {
		ts := candleTime(d.Date, loc, false).Unix()
		a := actions[ts]
		a.dividend = d.Amount
		actions[ts] = a
	}
	for _, s := range events.Splits {
		ts := candleTime(s.Date, loc, false).Unix()
		a := actions[ts]
		a.split = s.ratio()
		actions[ts] = a
	}

	stamps := make([]int64, 0, len(actions))
	for ts := range actions {
		stamps = append(stamps, ts)
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i] < stamps[j] })

	table := tabular.NewIndexed("Date", "Dividends", "Stock Splits")
	for _, ts := range stamps {
		a := actions[ts]
		table.AppendAt(time.Unix(ts, 0).In(loc), a.dividend, a.split)
	}
	return table, nil
}

func (s chartSplit) ratio() float64 {
	if s.Denominator == 0 {
		return 0
	}
	return s.Numerator / s.Denominator
}

// intraday reports whether an interval is finer than one day.
func intraday(interval string) bool {
	if strings.HasSuffix(interval, "mo") {
		return false
	}
	return strings.HasSuffix(interval, "m") || strings.HasSuffix(interval, "h")
}

// candleTime converts a candle timestamp to exchange-local time. Daily and
// coarser candles are floored to midnight so that event timestamps line up
// with their trading day.
func candleTime(ts int64, loc *time.Location, intra bool) time.Time {
	t := time.Unix(ts, 0).In(loc)
	if intra {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func floatCell(vals []*float64, i int) any {
	if i < len(vals) && vals[i] != nil {
		return *vals[i]
	}
	return nil
}

func intCell(vals []*int64, i int) any {
	if i < len(vals) && vals[i] != nil {
		return *vals[i]
	}
	return nil
}

func rowCell(row []any, i int) any {
	if i < len(row) {
		return row[i]
	}
	return nil
}

func sortedDividends(m map[string]chartDividend) []chartDividend {
	out := make([]chartDividend, 0, len(m))
	for _, d := range m {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func sortedSplits(m map[string]chartSplit) []chartSplit {
	out := make([]chartSplit, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func sortedCapitalGains(m map[string]chartCapitalGain) []chartCapitalGain {
	out := make([]chartCapitalGain, 0, len(m))
	for _, g := range m {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
