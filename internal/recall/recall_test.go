package recall_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/recall"
)

var now = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func client(lastVisit *time.Time) *models.Client {
	return &models.Client{Name: "Ana", Phone: "11999998888", LastVisit: lastVisit}
}

func daysAgo(n int) *time.Time {
	t := now.AddDate(0, 0, -n)
	return &t
}

func TestNeverVisitedIsDue(t *testing.T) {
	assert.True(t, recall.IsDue(client(nil), now, 180))
}

func TestOldVisitIsDue(t *testing.T) {
	assert.True(t, recall.IsDue(client(daysAgo(181)), now, 180))
}

func TestRecentVisitIsNotDue(t *testing.T) {
	assert.False(t, recall.IsDue(client(daysAgo(30)), now, 180))
	assert.False(t, recall.IsDue(client(daysAgo(180)), now, 180))
}

func TestZeroThresholdUsesDefault(t *testing.T) {
	assert.False(t, recall.IsDue(client(daysAgo(30)), now, 0))
	assert.True(t, recall.IsDue(client(daysAgo(recall.DefaultDays+1)), now, 0))
}

func TestDueFiltersAndKeepsOrder(t *testing.T) {
	clients := []models.Client{
		{Name: "a", LastVisit: daysAgo(200)},
		{Name: "b", LastVisit: daysAgo(10)},
		{Name: "c", LastVisit: nil},
	}

	due := recall.Due(clients, now, 180)

	assert.Len(t, due, 2)
	assert.Equal(t, "a", due[0].Name)
	assert.Equal(t, "c", due[1].Name)
}

func TestDueEmptyInput(t *testing.T) {
	assert.Empty(t, recall.Due(nil, now, 180))
}
