package service

import (
	"context"
	"testing"

	"marketplace-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogNames(entries []model.CatalogEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func TestPublicCatalogFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	havana := f.mem.AddProvince("La Habana")
	matanzas := f.mem.AddProvince("Matanzas")

	public := func(name, whatsapp string, province *uint) *model.Store {
		s := f.addVendor(t, name, whatsapp, "x")
		_, err := f.mem.Stores().UpdateSettings(ctx, s.ID, model.StoreSettings{
			Name: name, WhatsApp: whatsapp, IsPublicMarket: true, ProvinceID: province,
		})
		require.NoError(t, err)
		return s
	}

	inHavana := public("Habana", "5355500001", &havana)
	inMatanzas := public("Matanzas", "5355500002", &matanzas)
	nowhere := public("Sin Provincia", "5355500003", nil)
	suspended := public("Suspendida", "5355500004", &havana)
	private := f.addVendor(t, "Privada", "5355500005", "x")

	f.addProduct(t, inHavana.ID, "habana-visible", true)
	f.addProduct(t, inHavana.ID, "habana-oculto", false)
	f.addProduct(t, inMatanzas.ID, "matanzas-visible", true)
	f.addProduct(t, nowhere.ID, "sin-provincia", true)
	f.addProduct(t, suspended.ID, "suspendida-visible", true)
	f.addProduct(t, private.ID, "privada-visible", true)
	require.NoError(t, f.mem.Stores().SetSuspended(ctx, suspended.ID, true))

	all, err := f.catalog.Products(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"sin-provincia", "matanzas-visible", "habana-visible"}, catalogNames(all))

	byHavana, err := f.catalog.Products(ctx, &havana)
	require.NoError(t, err)
	assert.Equal(t, []string{"habana-visible"}, catalogNames(byHavana))
	require.NotNil(t, byHavana[0].StoreProvince)
	assert.Equal(t, "La Habana", *byHavana[0].StoreProvince)
	assert.Equal(t, "habana", byHavana[0].StoreSlug)

	for _, entry := range all {
		if entry.Name == "sin-provincia" {
			assert.Nil(t, entry.StoreProvince)
		}
	}

	// province listings are a subset of the global one
	allIDs := map[uint]bool{}
	for _, e := range all {
		allIDs[e.ID] = true
	}
	for _, pid := range []uint{havana, matanzas, 999} {
		entries, err := f.catalog.Products(ctx, &pid)
		require.NoError(t, err)
		for _, e := range entries {
			assert.True(t, allIDs[e.ID])
			assert.NotNil(t, e.StoreProvince)
		}
	}
}

func TestPublicConfigFallsBackToDefault(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cfg, err := f.catalog.PublicConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5350000000", cfg.WhatsApp)

	require.NoError(t, f.admin.SetSupportContact(ctx, "5351234567"))
	cfg, err = f.catalog.PublicConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5351234567", cfg.WhatsApp)
}

func TestProvincesSorted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.admin.Bootstrap(ctx, BootstrapConfig{
		AdminPassword: "changeme2026",
		Provinces:     model.DefaultProvinces,
	}))

	provinces, err := f.catalog.Provinces(ctx)
	require.NoError(t, err)
	require.Len(t, provinces, len(model.DefaultProvinces))
	for i := 1; i < len(provinces); i++ {
		assert.LessOrEqual(t, provinces[i-1].Name, provinces[i].Name)
	}
}
