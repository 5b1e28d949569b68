package services

import (
	"math"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/require"
)

var chickenBreast = models.CatalogItem{
	ID:         "171077",
	Name:       "Chicken Breast",
	Calories:   165,
	Protein:    31,
	Carbs:      0,
	Fats:       3.6,
	Unit:       "100g",
	BrandOwner: "Generic",
	Source:     "SR Legacy",
}

func TestNewLogEntryScalesLinearly(t *testing.T) {
	entry, err := NewLogEntry(chickenBreast, 150)
	require.NoError(t, err)

	require.Equal(t, 247.5, entry.Calories)
	require.Equal(t, 46.5, entry.Protein)
	require.Equal(t, 0.0, entry.Carbs)
	require.InDelta(t, 5.4, entry.Fats, 1e-12)

	require.Equal(t, 150.0, entry.Amount)
	require.Equal(t, "g", entry.Unit)
	require.Equal(t, "Chicken Breast", entry.Name)
	require.Equal(t, "Generic", entry.BrandOwner)
	require.Equal(t, "SR Legacy", entry.Source)
	require.NotEmpty(t, entry.EntryID)
	require.False(t, entry.AddedAt.IsZero())
}

func TestNewLogEntryAt100GramsIsIdentity(t *testing.T) {
	entry, err := NewLogEntry(chickenBreast, 100)
	require.NoError(t, err)
	require.Equal(t, chickenBreast.Calories, entry.Calories)
	require.Equal(t, chickenBreast.Protein, entry.Protein)
}

func TestNewLogEntryRejectsBadAmounts(t *testing.T) {
	for _, amount := range []float64{-5, 0, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewLogEntry(chickenBreast, amount)
		require.ErrorIs(t, err, ErrInvalidAmount, "amount %v should be rejected", amount)
		require.True(t, IsValidation(err))
	}
}

func TestNewLogEntryAssignsUniqueIDs(t *testing.T) {
	a, err := NewLogEntry(chickenBreast, 50)
	require.NoError(t, err)
	b, err := NewLogEntry(chickenBreast, 50)
	require.NoError(t, err)
	require.NotEqual(t, a.EntryID, b.EntryID)
}
