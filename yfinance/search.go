package yfinance

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

const (
	searchQuoteCount = 25
	searchNewsCount  = 25
)

func (c *Client) search(ctx context.Context, query string, quoteCount, newsCount int) (*searchResponse, error) {
	values := url.Values{
		"q":           []string{query},
		"quotesCount": []string{strconv.Itoa(quoteCount)},
		"newsCount":   []string{strconv.Itoa(newsCount)},
	}
	var out searchResponse
	if err := c.getJSON(ctx, c.baseURL, "/v1/finance/search", values, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search returns quote matches for a free-form query, such as a company
// name or a partial symbol.
func (c *Client) Search(ctx context.Context, query string) ([]map[string]any, error) {
	out, err := c.search(ctx, query, searchQuoteCount, 0)
	if err != nil {
		return nil, err
	}
	if out.Quotes == nil {
		return []map[string]any{}, nil
	}
	return out.Quotes, nil
}

// News returns recent news stories mentioning a symbol.
func (c *Client) News(ctx context.Context, symbol string) ([]map[string]any, error) {
	out, err := c.search(ctx, symbol, 0, searchNewsCount)
	if err != nil {
		return nil, err
	}
	if out.News == nil {
		return []map[string]any{}, nil
	}
	return out.News, nil
}

// ISIN resolves a ticker symbol to its ISIN via the Business Insider
// symbol suggest service. It returns "-" when no ISIN can be found.
func (c *Client) ISIN(ctx context.Context, symbol string) (string, error) {
	// Symbols with exchange suffixes or index prefixes have no ISIN.
	if strings.ContainsAny(symbol, "-^") {
		return "-", nil
	}

	query := url.Values{
		"max_results": []string{"25"},
		"query":       []string{symbol},
	}
	body, err := c.fetch(ctx, c.lookupURL, "/ajax/SearchController_Suggest", query)
	if err != nil {
		return "", err
	}

	// The response embeds entries of the form "SYMBOL|ISIN|..." in a
	// JavaScript payload.
	marker := `"` + strings.ToUpper(symbol) + `|`
	data := string(body)
	i := strings.Index(data, marker)
	if i < 0 {
		return "-", nil
	}
	isin := data[i+len(marker):]
	if j := strings.IndexAny(isin, `|"`); j >= 0 {
		isin = isin[:j]
	}
	if isin == "" {
		return "-", nil
	}
	return isin, nil
}
