package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tripcart/auth"
	"tripcart/group"
	"tripcart/itinerary"
	"tripcart/live"
	"tripcart/middleware"
	"tripcart/plans"
	"tripcart/ratelim"
	"tripcart/trips"
	"tripcart/utils"
)

// Deps carries the handler sets that need wiring (AI pipeline, rates,
// mirror, hub). Plain collection-backed handlers stay package level.
type Deps struct {
	Plans     *plans.Handlers
	Itinerary *itinerary.Handlers
	Group     *group.Handlers
	Hub       *live.Hub
}

// RoutesWrapper registers every route. genLimiter guards the expensive AI
// endpoints, rateLimiter the ordinary mutations.
func RoutesWrapper(router *httprouter.Router, rateLimiter, genLimiter *ratelim.RateLimiter, deps Deps) {
	AddAuthRoutes(router, rateLimiter)
	AddTripRoutes(router, rateLimiter)
	AddPlanRoutes(router, rateLimiter, genLimiter, deps.Plans)
	AddItineraryRoutes(router, genLimiter, deps.Itinerary)
	AddRatesRoutes(router, rateLimiter, deps.Plans)
	AddGroupRoutes(router, rateLimiter, deps.Group)
	AddLiveRoutes(router, deps.Hub)
	AddUtilityRoutes(router)
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/anonymous", rl.Limit(auth.AnonymousLogin))
}

func AddTripRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/trips", rl.Limit(middleware.Authenticate(trips.CreateTrip)))
	router.GET("/api/trips", middleware.Authenticate(trips.GetUserTrips))
	router.POST("/api/trips/:tripid/join", rl.Limit(middleware.Authenticate(trips.JoinTrip)))
	router.PUT("/api/trips/:tripid/items/:itemid/status", rl.Limit(middleware.Authenticate(trips.UpdateItemStatus)))
}

func AddPlanRoutes(router *httprouter.Router, rl, gen *ratelim.RateLimiter, h *plans.Handlers) {
	router.POST("/api/plan/generate", gen.Limit(middleware.Authenticate(h.GeneratePlan)))
	router.GET("/api/plan", middleware.Authenticate(h.GetSession))
	router.PUT("/api/plan", rl.Limit(middleware.Authenticate(h.SaveSession)))
	router.DELETE("/api/plan", rl.Limit(middleware.Authenticate(h.ClearSession)))
	router.POST("/api/plan/items", rl.Limit(middleware.Authenticate(h.AddItem)))
	router.PUT("/api/plan/items/:itemid", rl.Limit(middleware.Authenticate(h.EditItem)))
	router.DELETE("/api/plan/locations/:locationid/items/:itemid", rl.Limit(middleware.Authenticate(h.DeleteItem)))
	router.POST("/api/plan/locations/:locationid/items/:itemid/toggle", rl.Limit(middleware.Authenticate(h.ToggleItem)))
}

func AddItineraryRoutes(router *httprouter.Router, gen *ratelim.RateLimiter, h *itinerary.Handlers) {
	router.POST("/api/itinerary/parse", gen.Limit(middleware.Authenticate(h.ParseItinerary)))
}

func AddRatesRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *plans.Handlers) {
	router.GET("/api/rates", middleware.OptionalAuth(h.GetRates))
	router.POST("/api/rates/refresh", rl.Limit(middleware.OptionalAuth(h.RefreshRates)))
	router.PUT("/api/rates", rl.Limit(middleware.Authenticate(h.OverrideRates)))
}

func AddGroupRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *group.Handlers) {
	router.GET("/api/trips/:tripid/group", middleware.Authenticate(h.GetMembers))
	router.POST("/api/trips/:tripid/group", rl.Limit(middleware.Authenticate(h.AddMember)))
	router.POST("/api/trips/:tripid/group/members/:memberid/items", rl.Limit(middleware.Authenticate(h.AssignItem)))
	router.POST("/api/trips/:tripid/group/chat", rl.Limit(middleware.Authenticate(h.SendMessage)))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/api/live/:tripid", middleware.Authenticate(live.FeedHandler(hub)))
}

func AddUtilityRoutes(router *httprouter.Router) {
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
	})
}
