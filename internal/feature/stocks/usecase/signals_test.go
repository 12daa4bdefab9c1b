package usecase

import (
	"context"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_dashboard/internal/feature/stocks/domain/entity"
)

// TestSynthesizeSignals は多数のシードで値の範囲を検証します。
func TestSynthesizeSignals(t *testing.T) {
	t.Parallel()

	for seed := uint64(0); seed < 500; seed++ {
		s := synthesizeSignals(&lockedRand{r: rand.New(rand.NewPCG(seed, seed*31+7))})
		ta := s.TechnicalAnalysis

		require.GreaterOrEqual(t, ta.Score, 0)
		require.LessOrEqual(t, ta.Score, 100)
		switch {
		case ta.Score > 65:
			assert.True(t, ta.Buy >= 5 && ta.Buy <= 9, "buy %d", ta.Buy)
			assert.True(t, ta.Hold >= 1 && ta.Hold <= 3, "hold %d", ta.Hold)
			assert.True(t, ta.Sell >= 0 && ta.Sell <= 1, "sell %d", ta.Sell)
		case ta.Score < 35:
			assert.True(t, ta.Buy >= 0 && ta.Buy <= 1, "buy %d", ta.Buy)
			assert.True(t, ta.Hold >= 1 && ta.Hold <= 3, "hold %d", ta.Hold)
			assert.True(t, ta.Sell >= 5 && ta.Sell <= 9, "sell %d", ta.Sell)
		default:
			assert.True(t, ta.Buy >= 2 && ta.Buy <= 4, "buy %d", ta.Buy)
			assert.True(t, ta.Hold >= 3 && ta.Hold <= 5, "hold %d", ta.Hold)
			assert.True(t, ta.Sell >= 2 && ta.Sell <= 4, "sell %d", ta.Sell)
		}
		assert.Equal(t, recommendation(ta.Score), ta.Recommendation)

		require.Len(t, s.Signals, 3)
		assert.Equal(t, "RSI (14)", s.Signals[0].Name)
		rsi, err := strconv.ParseFloat(s.Signals[0].Value, 64)
		require.NoError(t, err)
		assert.True(t, rsi >= 35 && rsi <= 65, "rsi %v", rsi)
		assert.Equal(t, entity.Neutral, s.Signals[0].Sentiment)

		assert.Equal(t, "MACD", s.Signals[1].Name)
		assert.Equal(t, label(s.Signals[1].Sentiment), s.Signals[1].Value)
		assert.Equal(t, "Bollinger Bands", s.Signals[2].Name)
		assert.Equal(t, label(s.Signals[2].Sentiment), s.Signals[2].Value)
	}
}

// TestRecommendation は閾値の境界を検証します。
func TestRecommendation(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		100: "Strong Buy", 71: "Strong Buy", 70: "Buy", 61: "Buy", 60: "Hold",
		41: "Hold", 40: "Sell", 31: "Sell", 30: "Strong Sell", 0: "Strong Sell",
	}
	for score, want := range tests {
		assert.Equal(t, want, recommendation(score), "score %d", score)
	}
}

// TestGetTradingSignals は一度引いた値がキャッシュされることを検証します。
func TestGetTradingSignals(t *testing.T) {
	t.Parallel()

	u, store := newTestUsecase(t, &fakeMarket{})
	first, err := u.GetTradingSignals(context.Background(), "aapl")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := u.GetTradingSignals(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, 1, store.Len())
}
