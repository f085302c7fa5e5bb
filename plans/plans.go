package plans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"tripcart/currency"
	"tripcart/genai"
	"tripcart/models"
	"tripcart/mq"
	"tripcart/planner"
	"tripcart/rdx"
	"tripcart/trips"
	"tripcart/utils"
)

const (
	sessionTravelInfo   = "travelInfo"
	sessionShoppingPlan = "shoppingPlan"
)

type Handlers struct {
	Planner *planner.Service
	Rates   *currency.Provider
	Mirror  *trips.Mirror
}

func NewHandlers(svc *planner.Service, rates *currency.Provider, mirror *trips.Mirror) *Handlers {
	return &Handlers{Planner: svc, Rates: rates, Mirror: mirror}
}

// POST /api/plan/generate
func (h *Handlers) GeneratePlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var info models.TravelInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if info.Destination == "" || info.Budget <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Destination and a positive budget are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
	defer cancel()

	plan, err := h.Planner.Generate(ctx, info)
	if err != nil {
		switch {
		case errors.Is(err, genai.ErrMissingAPIKey):
			utils.RespondWithError(w, http.StatusInternalServerError, "AI service is not configured")
		case errors.Is(err, planner.ErrMalformedResponse):
			utils.RespondWithError(w, http.StatusBadGateway, "AI response could not be parsed, please try again")
		default:
			utils.RespondWithError(w, http.StatusBadGateway, "Plan generation failed")
		}
		return
	}

	rdx.SaveSessionJSON(ctx, userID, sessionTravelInfo, info)
	rdx.SaveSessionJSON(ctx, userID, sessionShoppingPlan, plan)

	if tripID := r.URL.Query().Get("tripId"); tripID != "" {
		h.Mirror.SavePlan(tripID, *plan)
	}

	utils.RespondWithJSON(w, http.StatusOK, plan)
}

// GET /api/plan
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := utils.M{"travelInfo": nil, "shoppingPlan": nil}
	var info models.TravelInfo
	if rdx.LoadSessionJSON(ctx, userID, sessionTravelInfo, &info) {
		resp["travelInfo"] = info
	}
	var plan models.ShoppingPlan
	if rdx.LoadSessionJSON(ctx, userID, sessionShoppingPlan, &plan) {
		resp["shoppingPlan"] = plan
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PUT /api/plan
func (h *Handlers) SaveSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		TravelInfo   *models.TravelInfo   `json:"travelInfo,omitempty"`
		ShoppingPlan *models.ShoppingPlan `json:"shoppingPlan,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if body.TravelInfo != nil {
		rdx.SaveSessionJSON(ctx, userID, sessionTravelInfo, body.TravelInfo)
	}
	if body.ShoppingPlan != nil {
		rdx.SaveSessionJSON(ctx, userID, sessionShoppingPlan, body.ShoppingPlan)
		if tripID := r.URL.Query().Get("tripId"); tripID != "" {
			h.Mirror.SavePlan(tripID, *body.ShoppingPlan)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Session saved"})
}

// DELETE /api/plan
// Starting a new trip drops both session keys.
func (h *Handlers) ClearSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rdx.ClearSession(ctx, userID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Session cleared"})
}

// loadSession fetches the user's plan and budget or writes the error response.
func loadSession(w http.ResponseWriter, r *http.Request) (string, *models.ShoppingPlan, int, bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return "", nil, 0, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var plan models.ShoppingPlan
	if !rdx.LoadSessionJSON(ctx, userID, sessionShoppingPlan, &plan) {
		utils.RespondWithError(w, http.StatusNotFound, "No active shopping plan")
		return "", nil, 0, false
	}
	var info models.TravelInfo
	rdx.LoadSessionJSON(ctx, userID, sessionTravelInfo, &info)
	return userID, &plan, info.Budget, true
}

func (h *Handlers) saveAndMirror(r *http.Request, userID string, plan *models.ShoppingPlan, tripID string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	rdx.SaveSessionJSON(ctx, userID, sessionShoppingPlan, plan)
	if tripID != "" {
		h.Mirror.SavePlan(tripID, *plan)
	}
}

// POST /api/plan/locations/:locationid/items/:itemid/toggle
func (h *Handlers) ToggleItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, plan, _, ok := loadSession(w, r)
	if !ok {
		return
	}

	var body struct {
		PurchasedBy string `json:"purchasedBy,omitempty"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	item, locationID, found := ToggleItem(plan, ps.ByName("locationid"), ps.ByName("itemid"), body.PurchasedBy)
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	}

	tripID := r.URL.Query().Get("tripId")
	h.saveAndMirror(r, userID, plan, tripID)
	if tripID != "" {
		h.Mirror.UpdateItemStatus(tripID, item.ID, item.Purchased, item.PurchasedBy)
		mq.Emit(r.Context(), models.ItemChange{
			Event:       models.ChangeUpdate,
			TripID:      tripID,
			ItemID:      item.ID,
			ProductName: item.Product,
			LocationID:  locationID,
			Purchased:   item.Purchased,
			PurchasedBy: item.PurchasedBy,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"item": item, "locationId": locationID, "plan": plan})
}

// POST /api/plan/items
func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, plan, budget, ok := loadSession(w, r)
	if !ok {
		return
	}

	var in NewItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if in.Product == "" || in.Price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Product name and a non-negative price are required")
		return
	}

	item, locationID, err := AddItem(plan, budget, in)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	tripID := r.URL.Query().Get("tripId")
	h.saveAndMirror(r, userID, plan, tripID)
	if tripID != "" {
		mq.Emit(r.Context(), models.ItemChange{
			Event:       models.ChangeInsert,
			TripID:      tripID,
			ItemID:      item.ID,
			ProductName: item.Product,
			LocationID:  locationID,
		})
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"item": item, "locationId": locationID, "plan": plan})
}

// PUT /api/plan/items/:itemid
func (h *Handlers) EditItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, plan, budget, ok := loadSession(w, r)
	if !ok {
		return
	}

	var in EditItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := EditItem(plan, budget, ps.ByName("itemid"), in)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	tripID := r.URL.Query().Get("tripId")
	h.saveAndMirror(r, userID, plan, tripID)
	if tripID != "" {
		locationID := in.NewLocationID
		if locationID == "" {
			locationID = in.LocationID
		}
		mq.Emit(r.Context(), models.ItemChange{
			Event:       models.ChangeUpdate,
			TripID:      tripID,
			ItemID:      item.ID,
			ProductName: item.Product,
			LocationID:  locationID,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"item": item, "plan": plan})
}

// DELETE /api/plan/locations/:locationid/items/:itemid
func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, plan, budget, ok := loadSession(w, r)
	if !ok {
		return
	}

	locationID := ps.ByName("locationid")
	itemID := ps.ByName("itemid")
	item, found := DeleteItem(plan, budget, locationID, itemID)
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	}

	tripID := r.URL.Query().Get("tripId")
	h.saveAndMirror(r, userID, plan, tripID)
	if tripID != "" {
		h.Mirror.DeleteItem(tripID, itemID)
		mq.Emit(r.Context(), models.ItemChange{
			Event:       models.ChangeDelete,
			TripID:      tripID,
			ItemID:      itemID,
			ProductName: item.Product,
			LocationID:  locationID,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"plan": plan})
}
