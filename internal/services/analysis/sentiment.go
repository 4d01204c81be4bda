package analysis

import (
	"strings"

	"github.com/wlplease/dashboard/internal/domain"
)

// Sentiment blend weights and label thresholds.
const (
	sentimentWeight = 0.6
	newsWeight      = 0.4

	bullishLabelThreshold = 60.0
	bearishLabelThreshold = 40.0
)

// SummarizeSentiment merges feed records and news tone into one summary.
// Records without a directional sentiment are ignored, empty inputs resolve
// to the neutral midpoint.
func SummarizeSentiment(records []domain.SentimentRecord, news *domain.NewsFeed) domain.SentimentSummary {
	score := 50.0
	var bullishVolume, directionalVolume float64
	for _, rec := range records {
		if rec.Volume < 0 {
			continue
		}
		switch {
		case isBullish(rec.Sentiment):
			bullishVolume += rec.Volume
			directionalVolume += rec.Volume
		case isBearish(rec.Sentiment):
			directionalVolume += rec.Volume
		}
	}
	if directionalVolume > 0 {
		score = bullishVolume / directionalVolume * 100
	}

	newsScore := 50.0
	var positive, negative int
	if news != nil {
		for _, item := range news.News {
			switch {
			case isBullish(item.Sentiment):
				positive++
			case isBearish(item.Sentiment):
				negative++
			}
		}
	}
	articles := positive + negative
	if articles > 0 {
		newsScore = float64(positive) / float64(articles) * 100
	}

	combined := score*sentimentWeight + newsScore*newsWeight

	label := domain.SignalNeutral
	switch {
	case combined >= bullishLabelThreshold:
		label = domain.SignalBullish
	case combined <= bearishLabelThreshold:
		label = domain.SignalBearish
	}

	return domain.SentimentSummary{
		Score:     score,
		NewsScore: newsScore,
		Combined:  combined,
		Label:     label,
		Articles:  articles,
	}
}

func isBullish(sentiment string) bool {
	switch strings.ToLower(sentiment) {
	case "bullish", "positive", "buy":
		return true
	}
	return false
}

func isBearish(sentiment string) bool {
	switch strings.ToLower(sentiment) {
	case "bearish", "negative", "sell":
		return true
	}
	return false
}
