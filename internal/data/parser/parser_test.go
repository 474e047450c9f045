package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/go-horti/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlantDocument(t *testing.T) {
	doc, err := ParsePlantDocument([]byte(`{
		"last_watered": 1700000000,
		"description": "a young poppy seedling",
		"owner": "alice",
		"is_dead": true,
		"generation": 2
	}`))

	require.NoError(t, err)
	assert.Equal(t, &PlantDocument{
		LastWatered: 1700000000,
		Description: "a young poppy seedling",
		Owner:       "alice",
		IsDead:      true,
	}, doc)
}

func TestParsePlantDocumentIsDeadDefaults(t *testing.T) {
	for _, content := range []string{
		`{"last_watered": 1, "description": "d", "owner": "o"}`,
		`{"last_watered": 1, "description": "d", "owner": "o", "is_dead": "yes"}`,
		`{"last_watered": 1, "description": "d", "owner": "o", "is_dead": 1}`,
	} {
		doc, err := ParsePlantDocument([]byte(content))
		require.NoError(t, err, content)
		assert.False(t, doc.IsDead, content)
	}
}

func TestParsePlantDocumentFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"not json", `last_watered = 1`, ErrMalformed},
		{"truncated", `{"last_watered": 1`, ErrMalformed},
		{"list instead of object", `[1, 2]`, ErrMalformed},
		{"missing last_watered", `{"description": "d", "owner": "o"}`, ErrMissingField},
		{"fractional last_watered", `{"last_watered": 1.5, "description": "d", "owner": "o"}`, ErrMissingField},
		{"string last_watered", `{"last_watered": "1", "description": "d", "owner": "o"}`, ErrMissingField},
		{"missing description", `{"last_watered": 1, "owner": "o"}`, ErrMissingField},
		{"numeric owner", `{"last_watered": 1, "description": "d", "owner": 7}`, ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlantDocument([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParseVisitorLog(t *testing.T) {
	events, err := ParseVisitorLog([]byte(`[
		{"timestamp": 1700000000, "user": "bob"},
		{"timestamp": "soon", "user": "eve"},
		{"user": "carol"},
		42,
		{"timestamp": 1700003600}
	]`))

	require.NoError(t, err)
	assert.Equal(t, []model.WateringEvent{
		{Timestamp: 1700000000, Origin: model.OriginGuest},
		{Timestamp: 1700003600, Origin: model.OriginGuest},
	}, events)
}

func TestParseVisitorLogNotAList(t *testing.T) {
	_, err := ParseVisitorLog([]byte(`{"timestamp": 1}`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ParseVisitorLog([]byte(`nope`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReadPlantFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plant.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"last_watered": 5, "description": "cactus", "owner": "alice"}`), 0644))

	doc, err := ReadPlantFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", doc.Owner)

	_, err = ReadPlantFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadVisitorLogBestEffort(t *testing.T) {
	dir := t.TempDir()

	assert.Empty(t, ReadVisitorLog(filepath.Join(dir, "missing.json")))

	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{{{`), 0644))
	assert.Empty(t, ReadVisitorLog(malformed))

	object := filepath.Join(dir, "object.json")
	require.NoError(t, os.WriteFile(object, []byte(`{"timestamp": 10}`), 0644))
	assert.Empty(t, ReadVisitorLog(object))

	valid := filepath.Join(dir, "visitors.json")
	require.NoError(t, os.WriteFile(valid, []byte(`[{"timestamp": 10}]`), 0644))
	assert.Len(t, ReadVisitorLog(valid), 1)
}
