package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeeai/appshell/pkg/catalog"
)

func TestFeature_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("bare string becomes a plain label", func(t *testing.T) {
		t.Parallel()

		var f catalog.Feature
		require.NoError(t, json.Unmarshal([]byte(`"Unlimited projects"`), &f))
		assert.Equal(t, "Unlimited projects", f.Main)
		assert.Nil(t, f.Detail)
	})

	t.Run("object with string sub", func(t *testing.T) {
		t.Parallel()

		var f catalog.Feature
		require.NoError(t, json.Unmarshal([]byte(`{"main":"Support","sub":"Email only"}`), &f))
		assert.Equal(t, "Support", f.Main)
		require.NotNil(t, f.Detail)
		assert.Equal(t, "Email only", f.Detail.For(catalog.DurationMonthly))
		assert.Equal(t, "Email only", f.Detail.For(catalog.DurationYearly))
	})

	t.Run("object with per-cycle sub", func(t *testing.T) {
		t.Parallel()

		var f catalog.Feature
		raw := `{"main":"Credits","sub":{"monthly":"100/mo","yearly":"1500/yr"}}`
		require.NoError(t, json.Unmarshal([]byte(raw), &f))
		assert.Equal(t, "Credits", f.Main)
		require.NotNil(t, f.Detail)
		assert.Equal(t, "100/mo", f.Detail.For(catalog.DurationMonthly))
		assert.Equal(t, "1500/yr", f.Detail.For(catalog.DurationYearly))
	})

	t.Run("object without sub", func(t *testing.T) {
		t.Parallel()

		var f catalog.Feature
		require.NoError(t, json.Unmarshal([]byte(`{"main":"API access"}`), &f))
		assert.Equal(t, "API access", f.Main)
		assert.Nil(t, f.Detail)
	})

	t.Run("malformed sub is rejected", func(t *testing.T) {
		t.Parallel()

		var f catalog.Feature
		assert.Error(t, json.Unmarshal([]byte(`{"main":"Support","sub":42}`), &f))
	})
}

func TestFeature_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("round-trips every wire shape", func(t *testing.T) {
		t.Parallel()

		features := []catalog.Feature{
			{Main: "Unlimited projects"},
			{Main: "Support", Detail: catalog.PlainDetail("Email only")},
			{Main: "Credits", Detail: catalog.ConditionalDetail{Monthly: "100/mo", Yearly: "1500/yr"}},
		}

		data, err := json.Marshal(features)
		require.NoError(t, err)

		var back []catalog.Feature
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, features, back)
	})
}

func TestPlan_DecodeJSON(t *testing.T) {
	t.Parallel()

	raw := `{
		"name": "Basic",
		"ai": "GPT-4",
		"features": [
			"Unlimited projects",
			{"main": "Credits", "sub": {"monthly": "100/mo", "yearly": "1500/yr"}}
		],
		"price": [
			{"duration": "monthly", "amount": 10},
			{"duration": "yearly", "amount": 100}
		]
	}`

	var p catalog.Plan
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "Basic", p.Name)
	assert.Equal(t, "GPT-4", p.AI)
	require.Len(t, p.Features, 2)
	assert.Equal(t, "Unlimited projects", p.Features[0].Main)
	require.NotNil(t, p.Features[1].Detail)
	assert.Equal(t, "1500/yr", p.Features[1].Detail.For(catalog.DurationYearly))

	price, ok := p.Price(catalog.DurationMonthly)
	require.True(t, ok)
	assert.Equal(t, float64(10), price.Amount)
	assert.False(t, p.IsFree())
}
