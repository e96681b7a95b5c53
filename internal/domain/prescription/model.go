package prescription

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the medicine order lifecycle state. Orders are created
// PENDING; the later states belong to pharmacy fulfilment.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Item is one prescribed medicine line.
type Item struct {
	ID           uuid.UUID `db:"id" json:"id"`
	MedicineName string    `db:"medicine_name" json:"medicineName"`
	Dosage       *string   `db:"dosage" json:"dosage"`
	Frequency    *string   `db:"frequency" json:"frequency"`
	Duration     *string   `db:"duration" json:"duration"`
	Instructions *string   `db:"instructions" json:"instructions"`
}

// Order is the medicine order raised from a prescription.
type Order struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	Status          OrderStatus `db:"status" json:"status"`
	DeliveryAddress string      `db:"delivery_address" json:"deliveryAddress,omitempty"`
	ContactPhone    string      `db:"contact_phone" json:"contactPhone,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt       *time.Time  `db:"updated_at" json:"updatedAt,omitempty"`
}

// Prescription is the read model returned to the patient: the prescription
// row with its items and the latest medicine order, if any. Display names
// fall back to placeholders when the doctor or hospital row is gone.
type Prescription struct {
	ID           uuid.UUID `json:"id"`
	Diagnosis    *string   `json:"diagnosis"`
	CreatedAt    time.Time `json:"createdAt"`
	DoctorName   string    `json:"doctorName"`
	HospitalName string    `json:"hospitalName"`
	Items        []Item    `json:"items"`
	Order        *Order    `json:"order"`
}

const (
	unknownDoctor   = "Unknown Doctor"
	unknownHospital = "Unknown Hospital"
)
