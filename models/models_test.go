package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapRoundTrip(t *testing.T) {
	original := JSONMap{"report_id": float64(7), "helper": "alice"}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned JSONMap
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestJSONMapNil(t *testing.T) {
	var m JSONMap

	value, err := m.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	var scanned JSONMap
	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

func TestJSONMapScanString(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan(`{"acceptance_id": 3}`))
	assert.Equal(t, float64(3), m["acceptance_id"])
}

func TestStringArrayRoundTrip(t *testing.T) {
	original := StringArray{"https://cdn.example.com/evidence/1/a.jpg", "https://cdn.example.com/evidence/1/b.pdf"}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned StringArray
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}
