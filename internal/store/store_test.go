package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myrayzsiza/cse-340/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return s
}

func seedAccount(t *testing.T, s *Store, email string) int {
	t.Helper()
	id, err := s.RegisterAccount("Test", "User", email, "not-a-real-hash")
	require.NoError(t, err)
	return id
}

func seedVehicle(t *testing.T, s *Store, make, model string, price float64) int {
	t.Helper()
	id, err := s.AddVehicle(&models.Vehicle{
		Make:             make,
		Model:            model,
		Year:             2020,
		Description:      "A fine automobile",
		Image:            "/images/vehicles/no-image.png",
		Thumbnail:        "/images/vehicles/no-image-tn.png",
		Price:            price,
		Miles:            42000,
		Color:            "Blue",
		ClassificationID: 1,
	})
	require.NoError(t, err)
	return id
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Migrate())

	classifications, err := s.GetClassifications()
	require.NoError(t, err)
	require.NotEmpty(t, classifications, "seed classifications should survive a re-run")
}
