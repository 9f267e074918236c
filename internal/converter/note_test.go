package converter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-client/internal/model"
)

func TestJSONToModel_DecodesUnderscoreID(t *testing.T) {
	raw := `{"_id":"65f0c1","title":"Groceries","content":"milk","__v":0}`

	var n NoteJSON
	require.NoError(t, json.Unmarshal([]byte(raw), &n))

	note := JSONToModel(n)
	assert.Equal(t, "65f0c1", note.ID)
	assert.Equal(t, "Groceries", note.Title)
	assert.Equal(t, "milk", note.Content)
	assert.True(t, note.CreatedAt.IsZero(), "Expected zero CreatedAt when absent")
}

func TestModelToJSON_OmitsZeroTimestamps(t *testing.T) {
	data, err := json.Marshal(ModelToJSON(model.Note{ID: "1", Title: "a", Content: "b"}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"_id":"1","title":"a","content":"b"}`, string(data))
}

func TestModelToJSON_KeepsTimestamps(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	n := ModelToJSON(model.Note{ID: "1", CreatedAt: created, UpdatedAt: created})

	require.NotNil(t, n.CreatedAt)
	require.NotNil(t, n.UpdatedAt)
	assert.True(t, created.Equal(JSONToModel(n).CreatedAt))
}

func TestJSONsToModels_EmptyIsNotNil(t *testing.T) {
	notes := JSONsToModels(nil)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}
