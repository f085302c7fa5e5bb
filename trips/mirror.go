package trips

import (
	"context"
	"log"
	"time"

	"tripcart/db"
	"tripcart/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Mirror is the write-behind queue for the remote shopping_items mirror.
// Writes are fire-and-forget: failures are logged and never surface to the
// caller, and the in-session plan stays authoritative.
type Mirror struct {
	tasks chan mirrorTask
	done  chan struct{}
}

type mirrorTask struct {
	desc string
	run  func(ctx context.Context) error
}

func NewMirror() *Mirror {
	return &Mirror{
		tasks: make(chan mirrorTask, 256),
		done:  make(chan struct{}),
	}
}

// Run processes the queue until Stop, then finishes whatever is still
// buffered before returning. Start it once from main.
func (m *Mirror) Run() {
	for {
		select {
		case task := <-m.tasks:
			m.runTask(task)
		case <-m.done:
			for {
				select {
				case task := <-m.tasks:
					m.runTask(task)
				default:
					return
				}
			}
		}
	}
}

func (m *Mirror) runTask(task mirrorTask) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := task.run(ctx); err != nil {
		log.Printf("mirror write failed (%s): %v", task.desc, err)
	}
}

func (m *Mirror) Stop() {
	close(m.done)
}

func (m *Mirror) enqueue(desc string, run func(ctx context.Context) error) {
	select {
	case m.tasks <- mirrorTask{desc: desc, run: run}:
	default:
		log.Printf("mirror queue full, dropping write (%s)", desc)
	}
}

// SavePlan replaces the trip's shopping_items rows with the plan's current
// items. Delete-then-insert keeps deletions in sync without row diffing.
func (m *Mirror) SavePlan(tripID string, plan models.ShoppingPlan) {
	rows := flattenPlan(tripID, plan)
	m.enqueue("save plan "+tripID, func(ctx context.Context) error {
		if _, err := db.ShoppingItemsCollection.DeleteMany(ctx, bson.M{"trip_id": tripID}); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		docs := make([]interface{}, len(rows))
		for i, row := range rows {
			docs[i] = row
		}
		_, err := db.ShoppingItemsCollection.InsertMany(ctx, docs)
		return err
	})
}

// UpdateItemStatus patches one mirror row's purchased pair.
func (m *Mirror) UpdateItemStatus(tripID, itemID string, purchased bool, purchasedBy string) {
	m.enqueue("update item "+itemID, func(ctx context.Context) error {
		update := bson.M{"$set": bson.M{"purchased": purchased, "purchased_by": purchasedBy}}
		_, err := db.ShoppingItemsCollection.UpdateOne(ctx, bson.M{"id": itemID, "trip_id": tripID}, update)
		return err
	})
}

// DeleteItem removes one mirror row.
func (m *Mirror) DeleteItem(tripID, itemID string) {
	m.enqueue("delete item "+itemID, func(ctx context.Context) error {
		_, err := db.ShoppingItemsCollection.DeleteOne(ctx, bson.M{"id": itemID, "trip_id": tripID})
		return err
	})
}

func flattenPlan(tripID string, plan models.ShoppingPlan) []models.MirrorItem {
	var rows []models.MirrorItem
	appendLoc := func(loc models.ShoppingLocation) {
		for _, item := range loc.Items {
			recommended := item.IsRecommended == nil || *item.IsRecommended
			rows = append(rows, models.MirrorItem{
				ID:             item.ID,
				TripID:         tripID,
				LocationID:     loc.ID,
				LocationName:   loc.Location,
				Category:       item.Category,
				ProductName:    item.Product,
				Brand:          item.Brand,
				EstimatedPrice: item.EstimatedPrice,
				LocalPrice:     item.LocalPrice,
				CurrencyCode:   item.CurrencyCode,
				Reason:         item.Reason,
				Priority:       item.Priority,
				Purchased:      item.Purchased,
				PurchasedBy:    item.PurchasedBy,
				ShopName:       item.ShopName,
				IsRecommended:  recommended,
			})
		}
	}
	appendLoc(plan.DutyFree.Departure)
	appendLoc(plan.DutyFree.Arrival)
	for _, loc := range plan.CityShopping {
		appendLoc(loc)
	}
	return rows
}
