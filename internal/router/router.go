package router

import (
	"net/http"

	"github.com/senyabanana/farm-commons/internal/handlers"
)

// Handlers собирает обработчики всех разделов API.
type Handlers struct {
	Stats       *handlers.StatsHandler
	Users       *handlers.UserHandler
	Communities *handlers.CommunityHandler
	Polls       *handlers.PollHandler
	Market      *handlers.MarketHandler
	Tips        *handlers.TipHandler
}

func InitRoutes(h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)
	mux.HandleFunc("GET /api/stats", h.Stats.GetStats)

	mux.HandleFunc("POST /api/users/register", h.Users.Register)
	mux.HandleFunc("GET /api/users/{role}/{userId}", h.Users.GetUser)
	mux.HandleFunc("GET /api/users/{role}/{userId}/communities", h.Users.GetUserCommunities)

	mux.HandleFunc("GET /api/communities/{communityId}", h.Communities.GetCommunity)
	mux.HandleFunc("GET /api/communities/{communityId}/messages", h.Communities.GetMessages)
	mux.HandleFunc("POST /api/communities/{communityId}/messages", h.Communities.PostMessage)
	mux.HandleFunc("GET /api/communities/{communityId}/polls", h.Communities.GetCommunityPolls)

	mux.HandleFunc("POST /api/polls/new", h.Polls.CreatePoll)
	mux.HandleFunc("GET /api/polls/my", h.Polls.GetUserPolls)
	mux.HandleFunc("GET /api/polls/{pollId}", h.Polls.GetPoll)
	mux.HandleFunc("PUT /api/polls/{pollId}/respond", h.Polls.RespondPoll)
	mux.HandleFunc("PUT /api/polls/{pollId}/close", h.Polls.ClosePoll)
	mux.HandleFunc("DELETE /api/polls/{pollId}", h.Polls.DeletePoll)

	mux.HandleFunc("POST /api/prices/new", h.Market.AddPrice)
	mux.HandleFunc("GET /api/prices", h.Market.GetLatestPrices)
	mux.HandleFunc("GET /api/prices/product/{product}", h.Market.GetProductPrices)
	mux.HandleFunc("GET /api/prices/vendor/{vendorId}", h.Market.GetVendorPrices)

	mux.HandleFunc("POST /api/tips/new", h.Tips.AddTip)
	mux.HandleFunc("GET /api/tips", h.Tips.GetTips)
	mux.HandleFunc("PUT /api/tips/{tipId}/like", h.Tips.LikeTip)

	return mux
}
