// Package dashboard
package dashboard

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/coingecko"
	"github.com/kardiachain/cryptoverse-backend/types"
	"github.com/kardiachain/cryptoverse-backend/utils"
)

const (
	NewsPageSize = 30

	newsTitleLen = 80
	newsBodyLen  = 150

	defaultNewsProject = "Crypto Update"
	defaultNewsTitle   = "Cryptocurrency Update"
	defaultNewsBody    = "Stay updated with the latest cryptocurrency developments and market trends."
	emptyNewsMessage   = "No news available at the moment"
)

type NewsCard struct {
	ID           string `json:"id"`
	ProjectName  string `json:"projectName"`
	ProjectImage string `json:"projectImage"`
	Date         string `json:"date"`
	Title        string `json:"title"`
	Body         string `json:"body"`
}

type NewsView struct {
	State State `json:"state"`
	// Fallback marks placeholder items shown after a failed fetch.
	Fallback bool       `json:"fallback"`
	Empty    bool       `json:"empty"`
	Message  string     `json:"message,omitempty"`
	Cards    []NewsCard `json:"cards"`
}

func NewNewsCard(n *types.NewsItem) NewsCard {
	card := NewsCard{
		ID:           n.ID,
		ProjectName:  n.ProjectName,
		ProjectImage: n.ProjectImage,
		Date:         utils.FormatDate(n.CreatedAt),
		Title:        n.UserTitle,
		Body:         n.Description,
	}
	if card.ProjectName == "" {
		card.ProjectName = defaultNewsProject
	}
	if card.Title == "" {
		card.Title = utils.Truncate(n.Description, newsTitleLen)
	}
	if card.Title == "" {
		card.Title = defaultNewsTitle
	}
	switch {
	case n.Description == "":
		card.Body = defaultNewsBody
	case utf8.RuneCountInString(n.Description) > newsBodyLen:
		card.Body = utils.Truncate(n.Description, newsBodyLen) + "..."
	}
	return card
}

// FallbackNews is shown in place of status updates when they cannot be
// fetched, so the page is never blank.
func FallbackNews(now time.Time) []*types.NewsItem {
	createdAt := now.UTC().Format(time.RFC3339)
	return []*types.NewsItem{
		{
			ID:           "1",
			ProjectName:  "Bitcoin",
			ProjectImage: "https://assets.coingecko.com/coins/images/1/thumb/bitcoin.png",
			UserTitle:    "Bitcoin Reaches New Heights",
			Description:  "Bitcoin continues its bullish trend as institutional adoption increases.",
			CreatedAt:    createdAt,
		},
		{
			ID:           "2",
			ProjectName:  "Ethereum",
			ProjectImage: "https://assets.coingecko.com/coins/images/279/thumb/ethereum.png",
			UserTitle:    "Ethereum 2.0 Updates",
			Description:  "Latest developments in Ethereum's transition to proof-of-stake.",
			CreatedAt:    createdAt,
		},
	}
}

type News struct {
	loader
	client coingecko.Client
	now    func() time.Time
	logger *zap.Logger

	items    []*types.NewsItem
	fallback bool
}

func NewNews(client coingecko.Client, logger *zap.Logger) *News {
	return &News{
		client: client,
		now:    time.Now,
		logger: logger.With(zap.String("page", "news")),
	}
}

func (n *News) Load(ctx context.Context) {
	ctx, gen := n.begin(ctx)
	lgr := n.logger.With(zap.String("method", "Load"))

	fallback := false
	items, err := n.client.StatusUpdates(ctx, NewsPageSize)
	switch {
	case err != nil && ctx.Err() != nil:
		items = nil
	case err != nil:
		lgr.Warn("cannot load status updates, using placeholders", zap.Error(err))
		items = FallbackNews(n.now())
		fallback = true
	}
	n.finish(gen, func() {
		n.items = items
		n.fallback = fallback
	})
}

func (n *News) View() NewsView {
	var v NewsView
	n.read(func(state State) {
		v.State = state
		v.Fallback = n.fallback
		v.Cards = make([]NewsCard, 0, len(n.items))
		for _, item := range n.items {
			v.Cards = append(v.Cards, NewNewsCard(item))
		}
		if state == StateReady && len(v.Cards) == 0 {
			v.Empty = true
			v.Message = emptyNewsMessage
		}
	})
	return v
}
