package adapters

import (
	"context"
	"testing"

	"price-radar/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdapter struct {
	marketplace models.Marketplace
}

func (s stubAdapter) Marketplace() models.Marketplace { return s.marketplace }

func (s stubAdapter) Search(context.Context, string) ([]models.Product, error) {
	return nil, nil
}

func TestRegistry_LiveOrder(t *testing.T) {
	r := NewRegistry(stubAdapter{models.Snapdeal}, stubAdapter{models.Flipkart}, stubAdapter{models.Amazon})

	live := r.Live()
	require.Len(t, live, 3)
	assert.Equal(t, models.Flipkart, live[0].Marketplace())
	assert.Equal(t, models.Amazon, live[1].Marketplace())
	assert.Equal(t, models.Snapdeal, live[2].Marketplace())
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry(stubAdapter{models.Flipkart})

	_, ok := r.Get(models.Flipkart)
	assert.True(t, ok)
	_, ok = r.Get(models.Nykaa)
	assert.False(t, ok)
}

func TestRegistry_Status(t *testing.T) {
	r := NewRegistry(stubAdapter{models.Amazon})

	status := r.Status()
	assert.Len(t, status, len(models.Marketplaces))
	assert.Equal(t, PlatformStatus{Name: "Amazon", Live: true, Source: "live"}, status[models.Amazon])
	assert.Equal(t, PlatformStatus{Name: "Paytm Mall", Live: false, Source: "static"}, status[models.Paytm])
}
