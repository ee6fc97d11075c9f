package places

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClient(server.URL, "test-key", 2*time.Second)
}

func TestClient_NearbySearch(t *testing.T) {
	var gotQuery url.Values
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{
					"place_id": "g_1506",
					"name": "Boteco X",
					"vicinity": "Rua Neo Alves, 50",
					"geometry": {"location": {"lat": -23.428, "lng": -51.937}}
				}
			]
		}`))
	})

	resp, err := client.NearbySearch(context.Background(), -23.427, -51.938, 1000, "bar")

	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "g_1506", resp.Results[0].PlaceID)
	assert.Equal(t, "Boteco X", resp.Results[0].Name)
	require.NotNil(t, resp.Results[0].Geometry)
	require.NotNil(t, resp.Results[0].Geometry.Location)
	assert.Equal(t, -23.428, resp.Results[0].Geometry.Location.Lat)

	assert.Equal(t, "test-key", gotQuery.Get("key"))
	assert.Equal(t, "-23.427,-51.938", gotQuery.Get("location"))
	assert.Equal(t, "1000", gotQuery.Get("radius"))
	assert.Equal(t, "bar", gotQuery.Get("keyword"))
}

func TestClient_NearbySearch_DefaultKeyword(t *testing.T) {
	var gotKeyword string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotKeyword = r.URL.Query().Get("keyword")
		w.Write([]byte(`{"status": "OK", "results": []}`))
	})

	_, err := client.NearbySearch(context.Background(), -23.427, -51.938, 1000, "")

	require.NoError(t, err)
	assert.Equal(t, DefaultKeyword, gotKeyword)
}

func TestClient_NearbySearch_EncodesSpecialCharacters(t *testing.T) {
	var gotRawQuery string
	var gotKeyword string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		gotKeyword = r.URL.Query().Get("keyword")
		w.Write([]byte(`{"status": "OK", "results": []}`))
	})

	_, err := client.NearbySearch(context.Background(), -23.427, -51.938, 1000, "bar & grill são João")

	require.NoError(t, err)
	assert.Equal(t, "bar & grill são João", gotKeyword)
	assert.NotContains(t, gotRawQuery, " ")
	assert.NotContains(t, gotRawQuery, "ã")
}

func TestClient_NearbySearch_MissingResultsYieldsEmptyList(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS"}`))
	})

	resp, err := client.NearbySearch(context.Background(), -23.427, -51.938, 1000, "bar")

	require.NoError(t, err)
	assert.Equal(t, "ZERO_RESULTS", resp.Status)
	assert.Empty(t, resp.Results)
}

func TestClient_NearbySearch_ServerError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	resp, err := client.NearbySearch(context.Background(), -23.427, -51.938, 1000, "bar")

	assert.Nil(t, resp)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusInternalServerError, provErr.StatusCode)
}

func TestClient_NearbySearch_MalformedBody(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "results": [`))
	})

	resp, err := client.NearbySearch(context.Background(), -23.427, -51.938, 1000, "bar")

	assert.Nil(t, resp)
	var provErr *ProviderError
	assert.ErrorAs(t, err, &provErr)
}

func TestClient_NearbySearch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"status": "OK", "results": []}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-key", 20*time.Millisecond)
	resp, err := client.NearbySearch(context.Background(), -23.427, -51.938, 1000, "bar")

	assert.Nil(t, resp)
	var provErr *ProviderError
	assert.ErrorAs(t, err, &provErr)
}

func TestClient_NearbySearch_ContextCanceled(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.NearbySearch(ctx, -23.427, -51.938, 1000, "bar")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_PlaceDetails(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"status": "OK",
			"result": {
				"place_id": "g_1506",
				"name": "Boteco X",
				"formatted_address": "Rua Neo Alves, 50 - Maringá",
				"geometry": {"location": {"lat": -23.428, "lng": -51.937}},
				"formatted_phone_number": "(44) 3222-0000",
				"website": "https://botecox.example",
				"opening_hours": {"open_now": true, "weekday_text": ["Monday: Closed"]}
			}
		}`))
	})

	resp, err := client.PlaceDetails(context.Background(), "g_1506")

	require.NoError(t, err)
	assert.Equal(t, "/place/details/json", gotPath)
	assert.Equal(t, "g_1506", gotQuery.Get("place_id"))
	// the field projection is a fixed contract
	assert.Equal(t,
		"place_id,name,formatted_address,geometry,formatted_phone_number,website,opening_hours",
		gotQuery.Get("fields"))

	require.NotNil(t, resp.Result)
	assert.Equal(t, "Boteco X", resp.Result.Name)
	assert.Equal(t, "(44) 3222-0000", resp.Result.PhoneNumber)
	require.NotNil(t, resp.Result.OpeningHours)
	require.NotNil(t, resp.Result.OpeningHours.OpenNow)
	assert.True(t, *resp.Result.OpeningHours.OpenNow)
}

func TestClient_PlaceReviews(t *testing.T) {
	var gotQuery url.Values
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"status": "OK",
			"result": {
				"name": "Boteco X",
				"rating": 4.5,
				"user_ratings_total": 120,
				"reviews": [{"author_name": "Ana", "rating": 5, "text": "Ótimo!", "time": 1700000000}]
			}
		}`))
	})

	resp, err := client.PlaceReviews(context.Background(), "g_1506")

	require.NoError(t, err)
	assert.Equal(t, "name,rating,reviews,user_ratings_total", gotQuery.Get("fields"))
	require.NotNil(t, resp.Result)
	assert.Equal(t, 4.5, resp.Result.Rating)
	assert.Equal(t, 120, resp.Result.UserRatingsTotal)
	require.Len(t, resp.Result.Reviews, 1)
	assert.Equal(t, "Ana", resp.Result.Reviews[0].AuthorName)
}

func TestClient_TextSearch(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"status": "OK", "results": [{"place_id": "g_1", "name": "Espetinho do João"}]}`))
	})

	resp, err := client.TextSearch(context.Background(), "espetinho perto da UEM", -23.427, -51.938, 1000)

	require.NoError(t, err)
	assert.Equal(t, "/place/textsearch/json", gotPath)
	assert.Equal(t, "espetinho perto da UEM", gotQuery.Get("query"))
	assert.Equal(t, "-23.427,-51.938", gotQuery.Get("location"))
	require.Len(t, resp.Results, 1)
}

func TestNotFound(t *testing.T) {
	assert.True(t, NotFound("NOT_FOUND"))
	assert.True(t, NotFound("INVALID_REQUEST"))
	assert.False(t, NotFound("OK"))
	assert.False(t, NotFound("ZERO_RESULTS"))
}
