package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func intPtr(n int) *int { return &n }

var slot10 = Slot{Date: "2026-03-12", Time: "10:00"}

func bookingsIn(slot Slot, services ...string) []models.Booking {
	out := make([]models.Booking, 0, len(services))
	for _, s := range services {
		out = append(out, models.Booking{Date: slot.Date, Time: slot.Time, Service: s})
	}
	return out
}

func TestEvaluateAdmitsBelowCapacity(t *testing.T) {
	table := NewCapacityTable(3, nil)
	existing := bookingsIn(slot10, "Botox", "Botox")

	assert.NoError(t, Evaluate([]string{"Botox"}, slot10, existing, table))
}

func TestEvaluateRejectsAtCapacity(t *testing.T) {
	table := NewCapacityTable(3, []models.Service{{Code: "Botox", Label: "Botox Treatment"}})
	existing := bookingsIn(slot10, "Botox", "Botox,Veneers", "Botox")

	err := Evaluate([]string{"Botox"}, slot10, existing, table)
	ce, ok := IsCapacity(err)
	require.True(t, ok)
	assert.Equal(t, "Botox", ce.ServiceID)
	assert.Equal(t, 3, ce.Capacity)
	assert.Contains(t, ce.Error(), "Botox Treatment")
	assert.Contains(t, ce.Error(), "choose another time")
}

func TestEvaluateFailsFastInCallerOrder(t *testing.T) {
	table := NewCapacityTable(1, nil)
	existing := bookingsIn(slot10, "Veneers", "Crown")

	err := Evaluate([]string{"Whitening", "Crown", "Veneers"}, slot10, existing, table)
	ce, ok := IsCapacity(err)
	require.True(t, ok)
	assert.Equal(t, "Crown", ce.ServiceID)
	assert.Equal(t, "Crown", ce.Label)
}

func TestEvaluateNoPartialAdmission(t *testing.T) {
	table := NewCapacityTable(3, []models.Service{{Code: "Veneers", Capacity: intPtr(1)}})
	existing := bookingsIn(slot10, "Veneers")

	assert.Error(t, Evaluate([]string{"Botox", "Veneers"}, slot10, existing, table))
}

func TestEvaluateCapacityOverride(t *testing.T) {
	table := NewCapacityTable(3, []models.Service{{Code: "Braces", Capacity: intPtr(5)}})
	existing := bookingsIn(slot10, "Braces", "Braces", "Braces", "Braces")

	assert.NoError(t, Evaluate([]string{"Braces"}, slot10, existing, table))
	assert.Equal(t, 1, Remaining("Braces", slot10, existing, table))
}

func TestEvaluateExactTokenMembership(t *testing.T) {
	table := NewCapacityTable(1, nil)
	existing := bookingsIn(slot10, "Veneers Plus", "Teeth Whitening Deluxe")

	assert.NoError(t, Evaluate([]string{"Veneers", "Teeth Whitening"}, slot10, existing, table))
}

func TestEvaluateIgnoresOtherSlots(t *testing.T) {
	table := NewCapacityTable(1, nil)
	existing := []models.Booking{
		{Date: "2026-03-12", Time: "11:00", Service: "Botox"},
		{Date: "2026-03-13", Time: "10:00", Service: "Botox"},
	}

	assert.NoError(t, Evaluate([]string{"Botox"}, slot10, existing, table))
}

func TestRemainingNeverNegative(t *testing.T) {
	table := NewCapacityTable(1, nil)
	existing := bookingsIn(slot10, "Botox", "Botox")

	assert.Equal(t, 0, Remaining("Botox", slot10, existing, table))
}
