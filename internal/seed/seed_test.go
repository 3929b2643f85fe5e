package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwamena/ugrecover/internal/model"
	"github.com/kwamena/ugrecover/internal/session"
)

func TestForRoleDeterministic(t *testing.T) {
	a := ForRole(model.RoleSudo)
	b := ForRole(model.RoleSudo)

	require.Equal(t, len(a.Items), len(b.Items))
	for i := range a.Items {
		assert.Equal(t, a.Items[i].Name, b.Items[i].Name)
		assert.Equal(t, a.Items[i].PointID, b.Items[i].PointID)
	}
}

func TestSnapshotInvariants(t *testing.T) {
	data := ForRole(model.RoleSudo)

	require.NotEmpty(t, data.Points)
	require.NotEmpty(t, data.Officers)
	require.NotEmpty(t, data.Categories)
	require.NotEmpty(t, data.Items)
	require.NotEmpty(t, data.Claims)

	points := make(map[int64]*model.CollectionPoint, len(data.Points))
	held := make(map[int64]int)
	for i := range data.Points {
		points[data.Points[i].ID] = &data.Points[i]
	}

	for _, it := range data.Items {
		p, ok := points[it.PointID]
		require.True(t, ok, "item %d references unknown point %d", it.ID, it.PointID)
		assert.NotEmpty(t, it.Images, "item %d has no images", it.ID)
		assert.Positive(t, it.RetentionDays)
		if it.Status == model.ItemStatusAvailable || it.Status == model.ItemStatusPending {
			held[it.PointID]++
		}
		assert.Equal(t, p.Name, it.CheckpointOffice)
	}

	// Point counters agree with the items actually placed there.
	for id, p := range points {
		assert.Equal(t, held[id], p.CurrentItems, "point %d counter drifted", id)
		assert.LessOrEqual(t, p.CurrentItems, p.Capacity)
	}

	// Every officer assignment references a real point.
	for _, o := range data.Officers {
		if o.AssignedPointID != nil {
			_, ok := points[*o.AssignedPointID]
			assert.True(t, ok, "officer %d assigned to unknown point", o.ID)
		}
	}

	// Claims reference real, pending items.
	items := make(map[int64]model.LostItem, len(data.Items))
	for _, it := range data.Items {
		items[it.ID] = it
	}
	for _, c := range data.Claims {
		it, ok := items[c.ItemID]
		require.True(t, ok, "claim %d references unknown item", c.ID)
		assert.Equal(t, model.ItemStatusPending, it.Status)
		assert.Equal(t, it.Name, c.ItemName)
	}
}

func TestStudentSnapshotOnlyOwnClaims(t *testing.T) {
	data := ForRole(model.RoleStudent)

	require.NotEmpty(t, data.Claims)
	for _, c := range data.Claims {
		assert.True(t, strings.EqualFold(c.ClaimantEmail, DemoStudentEmail),
			"claim %d belongs to %s", c.ID, c.ClaimantEmail)
	}

	full := ForRole(model.RoleSudo)
	assert.Greater(t, len(full.Claims), len(data.Claims))
}

func TestSnapshotLoadsCleanly(t *testing.T) {
	s := session.New()
	s.Load(ForRole(model.RoleOfficer))

	require.NotEmpty(t, s.ListPoints())

	// Joined assignment fields survive the load.
	var assigned int
	for _, o := range s.ListOfficers() {
		if o.Assigned {
			assigned++
			assert.NotEmpty(t, o.AssignedPoint)
		}
	}
	assert.Positive(t, assigned)
}
