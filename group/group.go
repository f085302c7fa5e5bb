package group

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"tripcart/db"
	"tripcart/live"
	"tripcart/models"
	"tripcart/utils"
)

const (
	selfName     = "나"
	selfEmoji    = "😊"
	defaultEmoji = "🙂"
)

type Handlers struct {
	Hub *live.Hub
}

func NewHandlers(hub *live.Hub) *Handlers {
	return &Handlers{Hub: hub}
}

// seedMembers creates the default roster: the creator plus every companion
// from the trip record, or a placeholder when the trip has none.
func seedMembers(ctx context.Context, tripID string) ([]models.GroupMember, error) {
	members := []models.GroupMember{
		{ID: "member-me", TripID: tripID, Name: selfName, Emoji: selfEmoji, Items: []models.ShoppingItem{}},
	}

	var trip models.Trip
	err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip)
	if err == nil && len(trip.Companions) > 0 {
		for i, name := range trip.Companions {
			members = append(members, models.GroupMember{
				ID:     fmt.Sprintf("member-companion-%d", i),
				TripID: tripID,
				Name:   name,
				Emoji:  defaultEmoji,
				Items:  []models.ShoppingItem{},
			})
		}
	} else {
		members = append(members, models.GroupMember{
			ID: "member-2", TripID: tripID, Name: "일행1", Emoji: defaultEmoji, Items: []models.ShoppingItem{},
		})
	}

	docs := make([]interface{}, len(members))
	for i, m := range members {
		docs[i] = m
	}
	if _, err := db.GroupMembersCollection.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return members, nil
}

// GET /api/trips/:tripid/group
func (h *Handlers) GetMembers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.GroupMembersCollection.Find(ctx, bson.M{"trip_id": tripID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching group members")
		return
	}
	defer cursor.Close(ctx)

	members := []models.GroupMember{}
	if err := cursor.All(ctx, &members); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding group members")
		return
	}

	if len(members) == 0 {
		members, err = seedMembers(ctx, tripID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error seeding group members")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, members)
}

// POST /api/trips/:tripid/group
func (h *Handlers) AddMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	var body struct {
		Name  string `json:"name"`
		Emoji string `json:"emoji,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Member name is required")
		return
	}
	if body.Emoji == "" {
		body.Emoji = defaultEmoji
	}

	member := models.GroupMember{
		ID:     fmt.Sprintf("member-%d", time.Now().UnixMilli()),
		TripID: tripID,
		Name:   body.Name,
		Emoji:  body.Emoji,
		Items:  []models.ShoppingItem{},
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.GroupMembersCollection.InsertOne(ctx, member); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding group member")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, member)
}

// POST /api/trips/:tripid/group/members/:memberid/items
func (h *Handlers) AssignItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")
	memberID := ps.ByName("memberid")

	var item models.ShoppingItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.ID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid item payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.GroupMembersCollection.UpdateOne(ctx,
		bson.M{"trip_id": tripID, "id": memberID},
		bson.M{"$push": bson.M{"items": item}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error assigning item")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Member not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Item assigned"})
}

// POST /api/trips/:tripid/group/chat
// Messages are relayed to every device on the trip's live feed; nothing is
// stored.
func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	var body struct {
		Member  string `json:"member"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if body.Member == "" {
		body.Member = selfName
	}

	msg := models.ChatMessage{Type: "chat", TripID: tripID, Member: body.Member, Message: body.Message}
	data, err := json.Marshal(msg)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error encoding message")
		return
	}
	h.Hub.Broadcast(tripID, data)

	utils.RespondWithJSON(w, http.StatusOK, msg)
}
