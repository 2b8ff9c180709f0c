package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageDefaults(t *testing.T) {
	for _, target := range []string{"/api/ingredients/", "/api/ingredients/?page=0", "/api/ingredients/?page=abc", "/api/ingredients/?page=-3"} {
		page := ParsePage(httptest.NewRequest("GET", target, nil))
		assert.Equal(t, 1, page.Number, "target %s", target)
		assert.Equal(t, int64(0), page.Skip)
		assert.Equal(t, int64(PageSize), page.Limit)
	}
}

func TestParsePageSkip(t *testing.T) {
	page := ParsePage(httptest.NewRequest("GET", "/api/ingredients/?page=3", nil))
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, int64(2*PageSize), page.Skip)
}

func TestPaginatedSinglePage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/ingredients/", nil)
	env := Paginated(r, ParsePage(r), 2, []string{"a", "b"})

	assert.Equal(t, int64(2), env.Count)
	assert.Nil(t, env.Next)
	assert.Nil(t, env.Previous)
}

func TestPaginatedLinks(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/get-menu-items/?search=salad&page=2", nil)
	env := Paginated(r, ParsePage(r), 25, nil)

	require.NotNil(t, env.Next)
	assert.Contains(t, *env.Next, "page=3")
	assert.Contains(t, *env.Next, "search=salad", "other query params survive in page links")

	require.NotNil(t, env.Previous)
	assert.NotContains(t, *env.Previous, "page=", "link to the first page drops the page param")
}

func TestPaginatedLastPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/purchases/?page=3", nil)
	env := Paginated(r, ParsePage(r), 25, nil)

	assert.Nil(t, env.Next)
	require.NotNil(t, env.Previous)
	assert.Contains(t, *env.Previous, "page=2")
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithError(w, 404, "No ingredients found")

	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "No ingredients found", body["error"])
}

func TestRespondWithFieldErrors(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithFieldErrors(w, map[string]string{"price": "Price must be greater than or equal to zero."})

	assert.Equal(t, 400, w.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "price")
}
