package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUnmarshal(t *testing.T) {
	var in PlayerInput
	err := json.Unmarshal([]byte(`{"name":"Hero","title":null,"experience":0,"banned":false}`), &in)
	require.NoError(t, err)

	name, ok := in.Name.Get()
	assert.True(t, ok)
	assert.Equal(t, "Hero", name)

	assert.False(t, in.Title.IsSet(), "explicit null is treated as absent")
	assert.False(t, in.Race.IsSet(), "missing key is absent")

	xp, ok := in.Experience.Get()
	assert.True(t, ok, "zero value is present")
	assert.Equal(t, 0, xp)

	banned, ok := in.Banned.Get()
	assert.True(t, ok)
	assert.False(t, banned)
}

func TestOptionalUnmarshalTypeMismatch(t *testing.T) {
	var in PlayerInput
	err := json.Unmarshal([]byte(`{"experience":"lots"}`), &in)
	assert.Error(t, err)
}

func TestOptionalMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A Optional[int] `json:"a"`
		B Optional[int] `json:"b"`
	}{A: Some(5), B: None[int]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":5,"b":null}`, string(out))
}
