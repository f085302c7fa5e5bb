package models

// ScheduleEntry is one day of the trip schedule. Location may name more
// than one city in a single label ("다낭, 호이안").
type ScheduleEntry struct {
	Day      int    `json:"day" bson:"day"`
	Date     string `json:"date" bson:"date"`
	Location string `json:"location" bson:"location"`
}

// TravelInfo is the trip intake payload. Immutable once submitted.
type TravelInfo struct {
	Destination string          `json:"destination" bson:"destination"`
	StartDate   string          `json:"startDate" bson:"start_date"`
	EndDate     string          `json:"endDate" bson:"end_date"`
	Budget      int             `json:"budget" bson:"budget"`
	Preferences []string        `json:"preferences" bson:"preferences"`
	Purposes    []string        `json:"purposes" bson:"purposes"`
	Companions  []string        `json:"companions,omitempty" bson:"companions,omitempty"`
	Schedule    []ScheduleEntry `json:"schedule,omitempty" bson:"schedule,omitempty"`
}

// Trip is the stored trip record, keyed by user.
type Trip struct {
	TripID      string   `json:"tripid" bson:"tripid"`
	UserID      string   `json:"user_id" bson:"user_id"`
	Destination string   `json:"destination" bson:"destination"`
	StartDate   string   `json:"start_date" bson:"start_date"`
	EndDate     string   `json:"end_date" bson:"end_date"`
	Budget      int      `json:"budget" bson:"budget"`
	Preferences []string `json:"preferences" bson:"preferences"`
	Purposes    []string `json:"purposes" bson:"purposes"`
	Companions  []string `json:"companions,omitempty" bson:"companions,omitempty"`
	CreatedAt   int64    `json:"created_at" bson:"created_at"`
}

// TripMember links a joined user to a trip.
type TripMember struct {
	TripID   string `json:"trip_id" bson:"trip_id"`
	UserID   string `json:"user_id" bson:"user_id"`
	JoinedAt int64  `json:"joined_at" bson:"joined_at"`
}
