package debug

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conversly/autoskola-bot/internal/loaders"
	"github.com/Conversly/autoskola-bot/internal/types"
)

type tableStore map[string][]types.Record

func (s tableStore) Fetch(_ context.Context, table, slug string) ([]types.Record, error) {
	if table == loaders.TableVehicles {
		return nil, errors.New("422 unknown field")
	}
	return loaders.FilterBySlug(s[table], slug), nil
}

func (s tableStore) FetchAll(_ context.Context, table string) ([]types.Record, error) {
	return s[table], nil
}

func (s tableStore) Ping(context.Context) error { return nil }

func TestInspect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := tableStore{
		loaders.TableSchools:   {{"slug": "demo", "naziv": "Autoškola Demo"}},
		loaders.TableLocations: {{"slug": "demo", "adresa": "Ilica 1"}, {"slug": "other", "adresa": "X"}},
	}
	r := gin.New()
	RegisterRoutes(r, NewService(store, false), "demo")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var res Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.OK)
	assert.Equal(t, "demo", res.Slug)
	assert.Equal(t, "Autoškola Demo", res.School.Name)

	assert.Equal(t, 1, res.Tables[loaders.TableLocations].Count)
	assert.Contains(t, res.Tables[loaders.TableVehicles].Error, "422 unknown field")
	assert.Zero(t, res.Tables[loaders.TableVehicles].Count)
	assert.Contains(t, res.Tables, loaders.TableFAQ)
}
