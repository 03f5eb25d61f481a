package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchBackend(t *testing.T, handler http.HandlerFunc) *OpenSearchProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewOpenSearchProvider(OpenSearchConfig{
		Addresses: []string{server.URL},
		Index:     "patents",
	}, logrus.New())
	require.NoError(t, err)
	return provider
}

func TestOpenSearchProvider_MapsHits(t *testing.T) {
	provider := newSearchBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/patents/_search", r.URL.Path)

		var dsl map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&dsl))
		body, _ := json.Marshal(dsl)
		assert.Contains(t, string(body), "simple_query_string")
		assert.Contains(t, string(body), `"default_operator":"and"`)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hits": {
				"hits": [
					{"_source": {
						"publication_number": "US7123456B2",
						"title": "Battery cooling manifold",
						"abstract": "A coolant manifold for battery packs.",
						"publication": {"date": "2001-03-15"}
					}},
					{"_source": {
						"title": "Unnumbered thermal record",
						"abstract": "No publication number on this one.",
						"publication": {"date": "bad-date"}
					}}
				]
			}
		}`))
	})

	patents, err := provider.Search(context.Background(), "battery cooling", []string{"battery", "cooling"}, 0)
	require.NoError(t, err)
	require.Len(t, patents, 2)

	first := patents[0]
	assert.Equal(t, "US7123456B2", first.PatentNumber)
	assert.Equal(t, "https://patents.google.com/patent/US7123456B2", first.URL)
	assert.Equal(t, 2001, first.FilingYear)
	assert.Greater(t, first.RelevanceScore, 0.0)
	assert.LessOrEqual(t, first.RelevanceScore, 1.0)

	second := patents[1]
	assert.Empty(t, second.PatentNumber)
	assert.True(t, strings.HasPrefix(second.URL, "https://patents.google.com/?q="))
	assert.Equal(t, 0, second.FilingYear)
}

func TestOpenSearchProvider_ErrorStatus(t *testing.T) {
	provider := newSearchBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := provider.Search(context.Background(), "battery", nil, 0)
	assert.Error(t, err)
}

func TestOpenSearchProvider_MalformedBody(t *testing.T) {
	provider := newSearchBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{not json"))
	})

	_, err := provider.Search(context.Background(), "battery", nil, 0)
	assert.Error(t, err)
}

func TestOpenSearchProvider_TruncatesLongAbstracts(t *testing.T) {
	long := strings.Repeat("thermal ", 400)
	provider := newSearchBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{
				"hits": []map[string]interface{}{
					{"_source": map[string]interface{}{
						"publication_number": "US1B2",
						"title":              "Long abstract",
						"abstract":           long,
					}},
				},
			},
		})
	})

	patents, err := provider.Search(context.Background(), "thermal", nil, 0)
	require.NoError(t, err)
	require.Len(t, patents, 1)
	assert.LessOrEqual(t, len(patents[0].Abstract), 1500)
}
