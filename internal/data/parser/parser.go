package parser

import (
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-horti/internal/core/model"
	"github.com/penwyp/go-horti/internal/core/watering"
	"github.com/penwyp/go-horti/internal/util"
)

var (
	ErrMalformed    = errors.New("malformed document")
	ErrMissingField = errors.New("missing or invalid field")
)

// numbers are kept as json.Number so integral values can be told apart
var api = sonic.Config{UseNumber: true}.Froze()

// PlantDocument is the validated content of a plant-data file.
type PlantDocument struct {
	LastWatered int64
	Description string
	Owner       string
	IsDead      bool
}

// ParsePlantDocument decodes and validates a plant-data document. The
// document must be an object carrying an integral last_watered and string
// description and owner. is_dead is optional and ignored unless a bool.
func ParsePlantDocument(data []byte) (*PlantDocument, error) {
	var raw any
	if err := api.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformed)
	}

	lastWatered, ok := watering.IntegerField(obj, model.FieldLastWatered)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, model.FieldLastWatered)
	}
	description, ok := obj[model.FieldDescription].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, model.FieldDescription)
	}
	owner, ok := obj[model.FieldOwner].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, model.FieldOwner)
	}
	isDead, _ := obj[model.FieldIsDead].(bool)

	return &PlantDocument{
		LastWatered: lastWatered,
		Description: description,
		Owner:       owner,
		IsDead:      isDead,
	}, nil
}

// ParseVisitorLog decodes a visitor log into guest watering events. Anything
// other than a JSON list is reported as malformed.
func ParseVisitorLog(data []byte) ([]model.WateringEvent, error) {
	var raw any
	if err := api.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list", ErrMalformed)
	}
	return watering.GuestEvents(entries), nil
}

// ReadPlantFile reads and parses the plant-data file at path.
func ReadPlantFile(path string) (*PlantDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := ParsePlantDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadVisitorLog reads the visitor log at path. Visitor data is best effort:
// a missing, unreadable or malformed log yields no events.
func ReadVisitorLog(path string) []model.WateringEvent {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			util.LogDebug(fmt.Sprintf("Failed to read visitor log: %s - %v", path, err))
		}
		return nil
	}

	events, err := ParseVisitorLog(data)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Ignore malformed visitor log: %s - %v", path, err))
		return nil
	}
	return events
}
