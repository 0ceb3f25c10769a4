package dto

import "github.com/cursorcontext/architect/internal/trending"

type TrendingResponse struct {
	Trending []trending.Entry `json:"trending"`
}
