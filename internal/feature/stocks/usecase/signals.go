package usecase

import (
	"context"

	"stock_dashboard/internal/feature/stocks/domain/entity"
	"stock_dashboard/internal/platform/cache"
)

// GetTradingSignals returns a synthesized technical view. There is no real
// indicator source upstream: each cache miss draws a fresh random view, and
// that draw is served until the signals TTL runs out.
func (u *StocksUsecase) GetTradingSignals(ctx context.Context, symbol string) (entity.TradingSignal, error) {
	symbol = normalizeSymbol(symbol)

	return cache.Resolve(ctx, u.engine, signalsKind, symbol, func(context.Context) (entity.TradingSignal, error) {
		return synthesizeSignals(u.rand), nil
	})
}

func synthesizeSignals(r randSource) entity.TradingSignal {
	between := func(lo, hi int) int { return lo + r.IntN(hi-lo+1) }

	score := r.IntN(101)
	var buy, hold, sell int
	switch {
	case score > 65:
		buy, hold, sell = between(5, 9), between(1, 3), between(0, 1)
	case score < 35:
		buy, hold, sell = between(0, 1), between(1, 3), between(5, 9)
	default:
		buy, hold, sell = between(2, 4), between(3, 5), between(2, 4)
	}

	rsi := 35 + r.Float64()*30
	macd := macdSentiment(rsi)
	bollinger := entity.Neutral
	if r.Float64() <= 0.5 {
		bollinger = bandSentiment(rsi)
	}

	return entity.TradingSignal{
		TechnicalAnalysis: entity.TechnicalAnalysis{
			Recommendation: recommendation(score),
			Score:          score,
			Buy:            buy,
			Hold:           hold,
			Sell:           sell,
		},
		Signals: []entity.Signal{
			{Name: "RSI (14)", Value: fixed(rsi, 1), Sentiment: rsiSentiment(rsi)},
			{Name: "MACD", Value: label(macd), Sentiment: macd},
			{Name: "Bollinger Bands", Value: label(bollinger), Sentiment: bollinger},
		},
	}
}

func recommendation(score int) string {
	switch {
	case score > 70:
		return "Strong Buy"
	case score > 60:
		return "Buy"
	case score > 40:
		return "Hold"
	case score > 30:
		return "Sell"
	default:
		return "Strong Sell"
	}
}

func rsiSentiment(rsi float64) entity.Sentiment {
	switch {
	case rsi > 70:
		return entity.Bearish
	case rsi < 30:
		return entity.Bullish
	default:
		return entity.Neutral
	}
}

func macdSentiment(rsi float64) entity.Sentiment {
	switch {
	case rsi > 50:
		return entity.Bullish
	case rsi < 40:
		return entity.Bearish
	default:
		return entity.Neutral
	}
}

func bandSentiment(rsi float64) entity.Sentiment {
	switch {
	case rsi > 60:
		return entity.Bearish
	case rsi < 40:
		return entity.Bullish
	default:
		return entity.Neutral
	}
}

func label(s entity.Sentiment) string {
	switch s {
	case entity.Bullish:
		return "Bullish"
	case entity.Bearish:
		return "Bearish"
	default:
		return "Neutral"
	}
}
