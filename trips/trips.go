package trips

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tripcart/db"
	"tripcart/models"
	"tripcart/mq"
	"tripcart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/trips
func CreateTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	trip := models.Trip{
		TripID:      utils.GenerateRandomString(13),
		UserID:      userID,
		Destination: info.Destination,
		StartDate:   info.StartDate,
		EndDate:     info.EndDate,
		Budget:      info.Budget,
		Preferences: info.Preferences,
		Purposes:    info.Purposes,
		Companions:  info.Companions,
		CreatedAt:   time.Now().Unix(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.TripsCollection.InsertOne(ctx, trip); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error inserting trip")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, trip)
}

// GET /api/trips
func GetUserTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := db.TripsCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trips")
		return
	}
	defer cursor.Close(ctx)

	trips := []models.Trip{}
	for cursor.Next(ctx) {
		var trip models.Trip
		if err := cursor.Decode(&trip); err == nil {
			trips = append(trips, trip)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, trips)
}

// POST /api/trips/:tripid/join
func JoinTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	tripID := ps.ByName("tripid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var trip models.Trip
	if err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	member := models.TripMember{TripID: tripID, UserID: userID, JoinedAt: time.Now().Unix()}
	if _, err := db.TripMembersCollection.InsertOne(ctx, member); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error joining trip")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, trip)
}

// PUT /api/trips/:tripid/items/:itemid/status
// Direct mirror-row update for companions tracking purchases; published to
// the change feed so every subscribed device patches its local plan.
func UpdateItemStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	tripID := ps.ByName("tripid")
	itemID := ps.ByName("itemid")

	var body struct {
		Purchased   bool   `json:"purchased"`
		PurchasedBy string `json:"purchasedBy,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"purchased": body.Purchased, "purchased_by": body.PurchasedBy}}
	res, err := db.ShoppingItemsCollection.UpdateOne(ctx, bson.M{"id": itemID, "trip_id": tripID}, update)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating item status")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	}

	var row models.MirrorItem
	if err := db.ShoppingItemsCollection.FindOne(ctx, bson.M{"id": itemID, "trip_id": tripID}).Decode(&row); err == nil {
		mq.Emit(ctx, models.ItemChange{
			Event:       models.ChangeUpdate,
			TripID:      tripID,
			ItemID:      itemID,
			ProductName: row.ProductName,
			LocationID:  row.LocationID,
			Purchased:   body.Purchased,
			PurchasedBy: body.PurchasedBy,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Item status updated"})
}
