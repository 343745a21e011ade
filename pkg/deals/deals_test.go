package deals

import (
	"testing"
	"time"

	"price-radar/pkg/catalog"
	"price-radar/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func dealIDs(t *testing.T, svc *Service, category, dealType string) []string {
	t.Helper()
	var ids []string
	for _, d := range svc.List(category, dealType) {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestService_List(t *testing.T) {
	svc := NewService(catalog.NewSeededStore(now), clock.NewFake(now))

	assert.Equal(t, []string{"1", "2", "3"}, dealIDs(t, svc, "", ""))
	assert.Equal(t, []string{"1", "2", "3"}, dealIDs(t, svc, "all", "all"))
	assert.Equal(t, []string{"1", "3"}, dealIDs(t, svc, "electronics", ""))
	assert.Equal(t, []string{"2"}, dealIDs(t, svc, "Fashion", "festival"))
	assert.Empty(t, dealIDs(t, svc, "Fashion", "flash"))
}

func TestService_HotAndTrending(t *testing.T) {
	svc := NewService(catalog.NewSeededStore(now), clock.NewFake(now))

	hot := svc.Hot()
	require.Len(t, hot, 2)
	assert.Equal(t, "1", hot[0].ID)
	assert.Equal(t, "3", hot[1].ID)

	trending := svc.Trending()
	require.Len(t, trending, 2)
	assert.Equal(t, "2", trending[1].ID)
}

func TestService_TimeLeft(t *testing.T) {
	clk := clock.NewFake(now)
	svc := NewService(catalog.NewSeededStore(now), clk)

	deals := svc.List("", "")
	assert.Equal(t, "2h 0m", deals[0].TimeLeft)
	assert.Equal(t, "1d 5h", deals[1].TimeLeft)

	clk.Advance(2*time.Hour + time.Minute)
	deals = svc.List("", "")
	assert.Equal(t, "expired", deals[0].TimeLeft)
	assert.Equal(t, "0h 59m", deals[2].TimeLeft)
}
