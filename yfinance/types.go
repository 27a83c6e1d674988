package yfinance

// APIError is a failure reported inside a Yahoo Finance response envelope.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Code
}

// chart endpoint (/v8/finance/chart/{symbol})
type (
	chartResponse struct {
		Chart struct {
			Result []chartResult `json:"result"`
			Error  *APIError     `json:"error"`
		} `json:"chart"`
	}

	chartResult struct {
		Meta       chartMeta    `json:"meta"`
		Timestamp  []int64      `json:"timestamp"`
		Events     *chartEvents `json:"events"`
		Indicators struct {
			Quote    []chartQuote    `json:"quote"`
			Adjclose []chartAdjclose `json:"adjclose"`
		} `json:"indicators"`
	}

	chartMeta struct {
		Currency             string `json:"currency"`
		Symbol               string `json:"symbol"`
		InstrumentType       string `json:"instrumentType"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
		DataGranularity      string `json:"dataGranularity"`
		Range                string `json:"range"`
	}

	// Price arrays use pointers: Yahoo emits null for halted or missing
	// candles and those must survive normalization as null cells.
	chartQuote struct {
		Open   []*float64 `json:"open"`
		High   []*float64 `json:"high"`
		Low    []*float64 `json:"low"`
		Close  []*float64 `json:"close"`
		Volume []*int64   `json:"volume"`
	}

	chartAdjclose struct {
		Adjclose []*float64 `json:"adjclose"`
	}

	chartEvents struct {
		Dividends    map[string]chartDividend    `json:"dividends"`
		Splits       map[string]chartSplit       `json:"splits"`
		CapitalGains map[string]chartCapitalGain `json:"capitalGains"`
	}

	chartDividend struct {
		Amount float64 `json:"amount"`
		Date   int64   `json:"date"`
	}

	chartSplit struct {
		Date        int64   `json:"date"`
		Numerator   float64 `json:"numerator"`
		Denominator float64 `json:"denominator"`
		SplitRatio  string  `json:"splitRatio"`
	}

	chartCapitalGain struct {
		Amount float64 `json:"amount"`
		Date   int64   `json:"date"`
	}
)

// options endpoint (/v7/finance/options/{symbol})
type (
	optionsResponse struct {
		OptionChain struct {
			Result []optionsResult `json:"result"`
			Error  *APIError       `json:"error"`
		} `json:"optionChain"`
	}

	optionsResult struct {
		UnderlyingSymbol string             `json:"underlyingSymbol"`
		ExpirationDates  []int64            `json:"expirationDates"`
		Strikes          []float64          `json:"strikes"`
		Options          []optionChainDates `json:"options"`
	}

	optionChainDates struct {
		ExpirationDate int64            `json:"expirationDate"`
		Calls          []optionContract `json:"calls"`
		Puts           []optionContract `json:"puts"`
	}

	optionContract struct {
		ContractSymbol    string   `json:"contractSymbol"`
		Strike            float64  `json:"strike"`
		Currency          string   `json:"currency"`
		LastPrice         float64  `json:"lastPrice"`
		Change            float64  `json:"change"`
		PercentChange     float64  `json:"percentChange"`
		Volume            *int64   `json:"volume"`
		OpenInterest      *int64   `json:"openInterest"`
		Bid               *float64 `json:"bid"`
		Ask               *float64 `json:"ask"`
		ContractSize      string   `json:"contractSize"`
		Expiration        int64    `json:"expiration"`
		LastTradeDate     int64    `json:"lastTradeDate"`
		ImpliedVolatility *float64 `json:"impliedVolatility"`
		InTheMoney        bool     `json:"inTheMoney"`
	}
)

// search endpoint (/v1/finance/search)
type searchResponse struct {
	Count  int              `json:"count"`
	Quotes []map[string]any `json:"quotes"`
	News   []map[string]any `json:"news"`
}

// quoteSummary endpoint (/v10/finance/quoteSummary/{symbol}); module
// payloads are decoded dynamically per capability.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []map[string]any `json:"result"`
		Error  *APIError        `json:"error"`
	} `json:"quoteSummary"`
}
