package entity

type Sentiment string

const (
	Bullish Sentiment = "bullish"
	Bearish Sentiment = "bearish"
	Neutral Sentiment = "neutral"
)

// TradingSignal is the synthesized analyst view for a symbol.
type TradingSignal struct {
	TechnicalAnalysis TechnicalAnalysis `json:"technicalAnalysis"`
	Signals           []Signal          `json:"signals"`
}

type TechnicalAnalysis struct {
	Recommendation string `json:"recommendation"`
	Score          int    `json:"score"`
	Buy            int    `json:"buy"`
	Hold           int    `json:"hold"`
	Sell           int    `json:"sell"`
}

type Signal struct {
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	Sentiment Sentiment `json:"sentiment"`
}
