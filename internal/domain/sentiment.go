package domain

// SentimentRecord one volume-weighted sentiment observation from the feed.
type SentimentRecord struct {
	Volume    float64 `json:"volume"`
	Sentiment string  `json:"sentiment"`
}

// NewsItem single headline with its classified sentiment.
type NewsItem struct {
	Title     string `json:"title"`
	Sentiment string `json:"sentiment"`
}

// NewsFeed payload returned by the news endpoint.
type NewsFeed struct {
	News []NewsItem `json:"news"`
}

// SentimentSummary merged view of feed sentiment and news tone.
type SentimentSummary struct {
	// Score volume-weighted bullish share of sentiment records, [0,100].
	Score float64 `json:"score"`
	// NewsScore positive share of classified headlines, [0,100].
	NewsScore float64 `json:"news_score"`
	// Combined blend of Score and NewsScore, [0,100].
	Combined float64 `json:"combined"`
	Label    string  `json:"label"`
	// Articles number of headlines that carried a usable sentiment.
	Articles int `json:"articles"`
}

// NeutralSentimentSummary is the summary used when both feeds are empty
// or unavailable.
func NeutralSentimentSummary() SentimentSummary {
	return SentimentSummary{
		Score:     50,
		NewsScore: 50,
		Combined:  50,
		Label:     SignalNeutral,
	}
}
