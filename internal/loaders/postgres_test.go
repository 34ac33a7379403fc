package loaders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Conversly/autoskola-bot/internal/types"
)

func TestMatchSlugRows(t *testing.T) {
	rows := []slugRow{
		{slug: "demo", fields: types.Record{"model": "Golf"}},
		{slug: "other", fields: types.Record{"model": "Yaris"}},
		{slug: "", fields: types.Record{"slug": "Demo", "model": "Astra"}},
		{slug: "", fields: types.Record{"slug": "other", "model": "Clio"}},
		{slug: "DEMO ", fields: types.Record{"slug": "other", "model": "Polo"}},
	}

	got := matchSlugRows(rows, "demo")

	var models []string
	for _, r := range got {
		models = append(models, r.Get(types.FieldModel))
	}
	assert.Equal(t, []string{"Golf", "Astra", "Polo"}, models)
}

func TestMatchSlugRows_NoRowsIsEmptyNotNil(t *testing.T) {
	got := matchSlugRows(nil, "demo")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
