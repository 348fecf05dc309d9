package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teerapatch/rodhai/models"
)

func newFixture(t *testing.T) (*Store, *Roster, *Registry) {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	roster := NewRoster(store, NopNotifier{})
	registry := NewRegistry(store, roster, NopNotifier{})
	return store, roster, registry
}

func TestFreshInstallSeedsDemoData(t *testing.T) {
	_, roster, registry := newFixture(t)

	users := roster.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "mock-user-id", users[0].ID)
	assert.Equal(t, "user@line.me", users[0].Email)
	assert.Equal(t, 0, users[0].Points)
	assert.True(t, users[0].IsAdmin)

	vehicles := registry.List()
	require.Len(t, vehicles, 2)
	assert.Equal(t, "Toyota", vehicles[0].Brand)
	assert.Equal(t, models.StatusMissing, vehicles[0].Status)
	assert.Empty(t, vehicles[0].Tips)
	assert.Equal(t, "Honda", vehicles[1].Brand)
	require.Len(t, vehicles[1].Tips, 1)
	assert.Equal(t, "tip1", vehicles[1].Tips[0].ID)
	assert.Equal(t, models.TipPending, vehicles[1].Tips[0].Status)
}

func TestAddRequiresSession(t *testing.T) {
	_, _, registry := newFixture(t)

	_, err := registry.Add(Vehicle{LicensePlate: "1กก 999"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Len(t, registry.List(), 2)
}

func TestAddAssignsUniqueIDsAndMissingStatus(t *testing.T) {
	_, roster, registry := newFixture(t)
	require.True(t, roster.SignIn("mock-user-id"))

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		vehicle, err := registry.Add(Vehicle{LicensePlate: "1กก 999", Status: "found"})
		require.NoError(t, err)
		assert.Equal(t, models.StatusMissing, vehicle.Status)
		assert.Equal(t, "mock-user-id", vehicle.OwnerID)
		assert.Equal(t, "LINE User", vehicle.OwnerName)
		assert.NotNil(t, vehicle.Tips)
		assert.Empty(t, vehicle.Tips)
		assert.False(t, seen[vehicle.ID], "duplicate id %s", vehicle.ID)
		seen[vehicle.ID] = true
	}
	assert.Len(t, registry.List(), 7)
}

func TestAddTipWithoutSessionMutatesNothing(t *testing.T) {
	_, roster, registry := newFixture(t)

	err := registry.AddTip("2", Tip{Message: "seen at Ari"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	vehicle, ok := registry.GetByID("2")
	require.True(t, ok)
	assert.Len(t, vehicle.Tips, 1)

	for _, u := range roster.Users() {
		assert.Equal(t, 0, u.Points)
	}
}

func TestAddTipAwardsFixedPoints(t *testing.T) {
	_, roster, registry := newFixture(t)
	require.True(t, roster.SignIn("mock-user-id"))

	require.NoError(t, registry.AddTip("1", Tip{Message: "seen at Ari", Location: "Ari"}))

	vehicle, ok := registry.GetByID("1")
	require.True(t, ok)
	require.Len(t, vehicle.Tips, 1)
	assert.Equal(t, models.TipPending, vehicle.Tips[0].Status)
	assert.Equal(t, "mock-user-id", vehicle.Tips[0].TipperID)

	user := roster.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, models.TipAwardPoints, user.Points)

	// A second tip on the same report is allowed and pays again.
	require.NoError(t, registry.AddTip("1", Tip{Message: "still there"}))
	assert.Equal(t, 2*models.TipAwardPoints, roster.CurrentUser().Points)

	board := roster.Leaderboard()
	require.NotEmpty(t, board)
	assert.Equal(t, "mock-user-id", board[0].ID)
}

func TestAddTipUnknownVehicle(t *testing.T) {
	_, roster, registry := newFixture(t)
	require.True(t, roster.SignIn("mock-user-id"))

	err := registry.AddTip("no-such-id", Tip{Message: "ghost"})
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestUpdateTipStatusLeavesOthersUntouched(t *testing.T) {
	_, roster, registry := newFixture(t)
	require.True(t, roster.SignIn("mock-user-id"))

	require.NoError(t, registry.AddTip("2", Tip{Message: "another lead"}))

	require.NoError(t, registry.UpdateTipStatus("2", "tip1", models.TipApproved))

	vehicle, ok := registry.GetByID("2")
	require.True(t, ok)
	require.Len(t, vehicle.Tips, 2)
	assert.Equal(t, models.TipApproved, vehicle.Tips[0].Status)
	assert.Equal(t, models.TipPending, vehicle.Tips[1].Status)

	assert.ErrorIs(t, registry.UpdateTipStatus("2", "missing-tip", models.TipRejected), ErrTipNotFound)
	assert.ErrorIs(t, registry.UpdateTipStatus("zzz", "tip1", models.TipRejected), ErrVehicleNotFound)
}

func TestRegistryPersistsAcrossRestart(t *testing.T) {
	store, roster, registry := newFixture(t)
	require.True(t, roster.SignIn("mock-user-id"))

	added, err := registry.Add(Vehicle{LicensePlate: "1กก 999", Brand: "Mazda", Model: "2", Color: "red"})
	require.NoError(t, err)
	require.NoError(t, registry.AddTip(added.ID, Tip{Message: "parked on Soi 11"}))

	reloadedRoster := NewRoster(store, NopNotifier{})
	reloaded := NewRegistry(store, reloadedRoster, NopNotifier{})

	assert.Equal(t, registry.List(), reloaded.List())

	users := reloadedRoster.Users()
	require.Len(t, users, 1)
	assert.Equal(t, models.TipAwardPoints, users[0].Points)
}

func TestLogoutClearsSessionOnly(t *testing.T) {
	_, roster, _ := newFixture(t)
	require.True(t, roster.SignIn("mock-user-id"))
	require.NotNil(t, roster.CurrentUser())

	roster.Logout()
	assert.Nil(t, roster.CurrentUser())
	assert.Len(t, roster.Users(), 1)
}
