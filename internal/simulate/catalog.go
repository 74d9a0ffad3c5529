package simulate

import "github.com/bobmcallan/folio/internal/models"

// DefaultPrice is the reference price used for tickers not in the catalog.
const DefaultPrice = 100.0

// catalog is the built-in instrument reference data. LastPrice anchors the
// end of every simulated series for the ticker.
var catalog = map[string]models.Instrument{
	"AAPL": {Ticker: "AAPL", Name: "Apple Inc.", Type: models.InstrumentTypeStock, Exchange: "NASDAQ", LastPrice: 227.52, DividendYield: 0.44},
	"MSFT": {Ticker: "MSFT", Name: "Microsoft Corporation", Type: models.InstrumentTypeStock, Exchange: "NASDAQ", LastPrice: 425.27, DividendYield: 0.72},
	"GOOGL": {Ticker: "GOOGL", Name: "Alphabet Inc.", Type: models.InstrumentTypeStock, Exchange: "NASDAQ", LastPrice: 166.57},
	"AMZN": {Ticker: "AMZN", Name: "Amazon.com, Inc.", Type: models.InstrumentTypeStock, Exchange: "NASDAQ", LastPrice: 186.40},
	"NVDA": {Ticker: "NVDA", Name: "NVIDIA Corporation", Type: models.InstrumentTypeStock, Exchange: "NASDAQ", LastPrice: 121.40, DividendYield: 0.03},
	"META": {Ticker: "META", Name: "Meta Platforms, Inc.", Type: models.InstrumentTypeStock, Exchange: "NASDAQ", LastPrice: 563.33, DividendYield: 0.35},
	"TSLA": {Ticker: "TSLA", Name: "Tesla, Inc.", Type: models.InstrumentTypeStock, Exchange: "NASDAQ", LastPrice: 248.98},
	"BRK.B": {Ticker: "BRK.B", Name: "Berkshire Hathaway Inc.", Type: models.InstrumentTypeStock, Exchange: "NYSE", LastPrice: 455.23},
	"JPM":  {Ticker: "JPM", Name: "JPMorgan Chase & Co.", Type: models.InstrumentTypeStock, Exchange: "NYSE", LastPrice: 224.80, DividendYield: 2.05},
	"JNJ":  {Ticker: "JNJ", Name: "Johnson & Johnson", Type: models.InstrumentTypeStock, Exchange: "NYSE", LastPrice: 160.11, DividendYield: 3.10},
	"V":    {Ticker: "V", Name: "Visa Inc.", Type: models.InstrumentTypeStock, Exchange: "NYSE", LastPrice: 290.35, DividendYield: 0.72},
	"XOM":  {Ticker: "XOM", Name: "Exxon Mobil Corporation", Type: models.InstrumentTypeStock, Exchange: "NYSE", LastPrice: 117.96, DividendYield: 3.22},
	"KO":   {Ticker: "KO", Name: "The Coca-Cola Company", Type: models.InstrumentTypeStock, Exchange: "NYSE", LastPrice: 69.93, DividendYield: 2.77},

	"SPY": {Ticker: "SPY", Name: "SPDR S&P 500 ETF Trust", Type: models.InstrumentTypeETF, Exchange: "ARCA", LastPrice: 571.04, ExpenseRatio: 0.0945, DividendYield: 1.22},
	"VOO": {Ticker: "VOO", Name: "Vanguard S&P 500 ETF", Type: models.InstrumentTypeETF, Exchange: "ARCA", LastPrice: 525.08, ExpenseRatio: 0.03, DividendYield: 1.31},
	"VTI": {Ticker: "VTI", Name: "Vanguard Total Stock Market ETF", Type: models.InstrumentTypeETF, Exchange: "ARCA", LastPrice: 282.03, ExpenseRatio: 0.03, DividendYield: 1.29},
	"QQQ": {Ticker: "QQQ", Name: "Invesco QQQ Trust", Type: models.InstrumentTypeETF, Exchange: "NASDAQ", LastPrice: 486.77, ExpenseRatio: 0.20, DividendYield: 0.58},
	"IWM": {Ticker: "IWM", Name: "iShares Russell 2000 ETF", Type: models.InstrumentTypeETF, Exchange: "ARCA", LastPrice: 219.86, ExpenseRatio: 0.19, DividendYield: 1.14},
	"VEA": {Ticker: "VEA", Name: "Vanguard FTSE Developed Markets ETF", Type: models.InstrumentTypeETF, Exchange: "ARCA", LastPrice: 50.84, ExpenseRatio: 0.05, DividendYield: 3.04},
	"VWO": {Ticker: "VWO", Name: "Vanguard FTSE Emerging Markets ETF", Type: models.InstrumentTypeETF, Exchange: "ARCA", LastPrice: 45.91, ExpenseRatio: 0.08, DividendYield: 3.42},
	"BND": {Ticker: "BND", Name: "Vanguard Total Bond Market ETF", Type: models.InstrumentTypeETF, Exchange: "NASDAQ", LastPrice: 73.57, ExpenseRatio: 0.03, DividendYield: 3.37},
	"AGG": {Ticker: "AGG", Name: "iShares Core U.S. Aggregate Bond ETF", Type: models.InstrumentTypeETF, Exchange: "ARCA", LastPrice: 99.23, ExpenseRatio: 0.03, DividendYield: 3.29},
	"GLD": {Ticker: "GLD", Name: "SPDR Gold Shares", Type: models.InstrumentTypeETF, Exchange: "ARCA", LastPrice: 246.33, ExpenseRatio: 0.40},
	"SCHD": {Ticker: "SCHD", Name: "Schwab U.S. Dividend Equity ETF", Type: models.InstrumentTypeETF, Exchange: "ARCA", LastPrice: 28.61, ExpenseRatio: 0.06, DividendYield: 3.38},
	"VIG": {Ticker: "VIG", Name: "Vanguard Dividend Appreciation ETF", Type: models.InstrumentTypeETF, Exchange: "ARCA", LastPrice: 196.48, ExpenseRatio: 0.06, DividendYield: 1.70},
}

// Lookup returns the catalog instrument for a ticker. Unknown tickers get a
// stock-typed placeholder at the default reference price.
func Lookup(ticker string) models.Instrument {
	if inst, ok := catalog[ticker]; ok {
		return inst
	}
	return models.Instrument{
		Ticker:    ticker,
		Name:      ticker,
		Type:      models.InstrumentTypeStock,
		LastPrice: DefaultPrice,
	}
}

// Instruments returns all catalog instruments.
func Instruments() []models.Instrument {
	out := make([]models.Instrument, 0, len(catalog))
	for _, inst := range catalog {
		out = append(out, inst)
	}
	return out
}
