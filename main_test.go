package main

import (
	"testing"

	"price-radar/pkg/config"
	"price-radar/pkg/models"
	"price-radar/pkg/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAdapters(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected []models.Marketplace
	}{
		{
			name:     "Nothing configured",
			env:      map[string]string{},
			expected: nil,
		},
		{
			name: "Flipkart needs both credentials",
			env: map[string]string{
				"FLIPKART_TRACKING_ID": "tracker",
			},
			expected: nil,
		},
		{
			name: "All adapters",
			env: map[string]string{
				"FLIPKART_TRACKING_ID": "tracker",
				"FLIPKART_API_KEY":     "key",
				"AMAZON_ACCESS_KEY":    "AKID",
				"AMAZON_PARTNER_TAG":   "radar-21",
				"SNAPDEAL_ENABLED":     "true",
				"MYNTRA_ENABLED":       "1",
			},
			expected: []models.Marketplace{models.Flipkart, models.Amazon, models.Snapdeal, models.Myntra},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var got []models.Marketplace
			for _, a := range buildAdapters(config.FromEnv()) {
				got = append(got, a.Marketplace())
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBuildDispatcher(t *testing.T) {
	d, client := buildDispatcher(config.FromEnv())
	assert.Nil(t, client)
	assert.IsType(t, notify.LogDispatcher{}, d)

	t.Setenv("REDIS_ADDR", "localhost:6379")
	d, client = buildDispatcher(config.FromEnv())
	require.NotNil(t, client)
	defer client.Close()
	assert.IsType(t, notify.Multi{}, d)
}
