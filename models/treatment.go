package models

// TreatmentOption is a bookable treatment with its fixed catalog of daily slots.
type TreatmentOption struct {
	ID    string   `bson:"id,omitempty" json:"id,omitempty" yaml:"id,omitempty"`
	Name  string   `bson:"name" json:"name" yaml:"name"`    // Unique; bookings reference it by name.
	Price float64  `bson:"price" json:"price" yaml:"price"` // Price in major currency units.
	Slots []string `bson:"slots" json:"slots" yaml:"slots"` // Offered time labels in display order.
}

// TreatmentName is the projection served by the specialty listing.
type TreatmentName struct {
	ID   string `bson:"id,omitempty" json:"id,omitempty"`
	Name string `bson:"name" json:"name"`
}

// Availability is the remaining capacity of one treatment on one date.
type Availability struct {
	TreatmentName  string   `bson:"name" json:"treatmentName"`
	Price          float64  `bson:"price" json:"price"`
	RemainingSlots []string `bson:"slots" json:"remainingSlots"`
}
