package yfinance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/tickertape-ai/tickertape/tabular"
)

const expirationFormat = "2006-01-02"

func (c *Client) optionChain(ctx context.Context, symbol string, query url.Values) (*optionsResult, error) {
	var out optionsResponse
	if err := c.getJSON(ctx, c.baseURL, "/v7/finance/options/"+url.PathEscape(symbol), query, &out); err != nil {
		return nil, err
	}
	if out.OptionChain.Error != nil {
		return nil, out.OptionChain.Error
	}
	if len(out.OptionChain.Result) == 0 {
		return nil, fmt.Errorf("%s: no options data found", symbol)
	}
	return &out.OptionChain.Result[0], nil
}

// OptionExpirations returns the available option expiration dates in
// YYYY-MM-DD form.
func (c *Client) OptionExpirations(ctx context.Context, symbol string) ([]string, error) {
	result, err := c.optionChain(ctx, symbol, nil)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(result.ExpirationDates))
	for _, ts := range result.ExpirationDates {
		dates = append(dates, time.Unix(ts, 0).UTC().Format(expirationFormat))
	}
	return dates, nil
}

// OptionChain returns the call and put contracts for one expiration date.
// Yahoo silently substitutes the nearest chain when asked for a date it
// does not list, so the response is verified against the request.
func (c *Client) OptionChain(ctx context.Context, symbol, expiration string) (calls, puts *tabular.Table, err error) {
	when, err := time.Parse(expirationFormat, expiration)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid expiration date %q, want YYYY-MM-DD", expiration)
	}

	query := url.Values{"date": []string{strconv.FormatInt(when.Unix(), 10)}}
	result, err := c.optionChain(ctx, symbol, query)
	if err != nil {
		return nil, nil, err
	}

	if len(result.Options) == 0 {
		return nil, nil, fmt.Errorf("%s: no option chain for expiration %s", symbol, expiration)
	}
	chain := result.Options[0]
	if got := time.Unix(chain.ExpirationDate, 0).UTC().Format(expirationFormat); got != expiration {
		return nil, nil, fmt.Errorf("%s: no option chain for expiration %s", symbol, expiration)
	}
	return contractTable(chain.Calls), contractTable(chain.Puts), nil
}

func contractTable(contracts []optionContract) *tabular.Table {
	table := tabular.New(
		"contractSymbol", "lastTradeDate", "strike", "lastPrice", "bid", "ask",
		"change", "percentChange", "volume", "openInterest", "impliedVolatility",
		"inTheMoney", "contractSize", "currency",
	)
	for _, contract := range contracts {
		table.Append(
			contract.ContractSymbol,
			time.Unix(contract.LastTradeDate, 0).UTC(),
			contract.Strike,
			contract.LastPrice,
			ptrCell(contract.Bid),
			ptrCell(contract.Ask),
			contract.Change,
			contract.PercentChange,
			ptrCell(contract.Volume),
			ptrCell(contract.OpenInterest),
			ptrCell(contract.ImpliedVolatility),
			contract.InTheMoney,
			contract.ContractSize,
			contract.Currency,
		)
	}
	return table
}

func ptrCell[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
