// SPDX-License-Identifier: MIT

package bn

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatBN_JSONRoundTrip(t *testing.T) {
	m := Asia()

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded CatBN
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.EqualTol(&decoded, 0), "decoded network must match exactly")

	// Re-encoding is bit-exact.
	again, err := json.Marshal(&decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestCatFromDocument_Validation(t *testing.T) {
	if _, err := CatFromDocument(&CatDocument{Kind: "something"}); !errors.Is(err, ErrBadDocument) {
		t.Fatalf("want ErrBadDocument, got %v", err)
	}

	doc := Asia().Document()
	doc.Vertices[0].Table = nil
	if _, err := CatFromDocument(doc); !errors.Is(err, ErrBadDocument) {
		t.Fatalf("missing table: want ErrBadDocument, got %v", err)
	}
}

func TestCatBN_DocumentOrder(t *testing.T) {
	doc := Asia().Document()

	require.Len(t, doc.Vertices, 8)
	assert.Equal(t, "asia", doc.Vertices[0].Label)
	assert.Equal(t, "xray", doc.Vertices[7].Label)
	assert.Equal(t, [2]string{"asia", "tub"}, doc.Edges[0])
}

func TestGaussBN_JSONRoundTrip(t *testing.T) {
	m := lineModel(t)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded GaussBN
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.EqualTol(&decoded, 0))

	again, err := json.Marshal(&decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}
