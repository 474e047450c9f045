package model

// Watering event origins
const (
	OriginOwner = "owner"
	OriginGuest = "guest"
)

// Plant document fields
const (
	FieldLastWatered = "last_watered"
	FieldDescription = "description"
	FieldOwner       = "owner"
	FieldIsDead      = "is_dead"
	FieldTimestamp   = "timestamp"
)
