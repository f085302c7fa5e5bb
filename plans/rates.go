package plans

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"tripcart/currency"
	"tripcart/models"
	"tripcart/rdx"
	"tripcart/utils"
)

// GET /api/rates
func (h *Handlers) GetRates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"rates": h.Rates.Snapshot()})
}

// POST /api/rates/refresh
// Falls back to the current snapshot when the API is unreachable; a stale
// table still beats an empty one.
func (h *Handlers) RefreshRates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	rates, err := h.Rates.Refresh(ctx)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"rates": h.Rates.Snapshot(), "stale": true})
		return
	}

	h.reapplyToSession(w, r, rates)
}

// PUT /api/rates
func (h *Handlers) OverrideRates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Rates) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	h.reapplyToSession(w, r, h.Rates.Override(body.Rates))
}

// reapplyToSession re-prices the session plan under the new snapshot when one
// exists, then responds with the rates and the updated plan.
func (h *Handlers) reapplyToSession(w http.ResponseWriter, r *http.Request, rates currency.Rates) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"rates": rates})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var plan models.ShoppingPlan
	if !rdx.LoadSessionJSON(ctx, userID, sessionShoppingPlan, &plan) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"rates": rates})
		return
	}
	var info models.TravelInfo
	rdx.LoadSessionJSON(ctx, userID, sessionTravelInfo, &info)

	ApplyRates(&plan, info.Budget, rates)
	rdx.SaveSessionJSON(ctx, userID, sessionShoppingPlan, plan)
	if tripID := r.URL.Query().Get("tripId"); tripID != "" {
		h.Mirror.SavePlan(tripID, plan)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"rates": rates, "plan": plan})
}
