package booking

import "github.com/BruksfildServices01/clinic-scheduler/internal/models"

// CapacityTable resolves effective capacity and display label per service
// identifier.
type CapacityTable struct {
	defaultCapacity int
	services        map[string]models.Service
}

func NewCapacityTable(defaultCapacity int, catalog []models.Service) CapacityTable {
	t := CapacityTable{
		defaultCapacity: defaultCapacity,
		services:        make(map[string]models.Service, len(catalog)),
	}
	for _, s := range catalog {
		t.services[s.Code] = s
	}
	return t
}

func (t CapacityTable) Capacity(id string) int {
	if s, ok := t.services[id]; ok && s.Capacity != nil && *s.Capacity > 0 {
		return *s.Capacity
	}
	return t.defaultCapacity
}

// Label falls back to the raw identifier for services missing from the
// catalog.
func (t CapacityTable) Label(id string) string {
	if s, ok := t.services[id]; ok && s.Label != "" {
		return s.Label
	}
	return id
}

// CountInSlot counts the bookings of slot whose service set contains id.
func CountInSlot(id string, slot Slot, existing []models.Booking) int {
	n := 0
	for _, b := range existing {
		if slot.Contains(b.Date, b.Time) && HasService(b.Service, id) {
			n++
		}
	}
	return n
}

// Evaluate admits the request as a whole or rejects it with a
// *CapacityError for the first requested service, in caller order, whose
// slot count has reached its capacity.
func Evaluate(requested []string, slot Slot, existing []models.Booking, table CapacityTable) error {
	for _, id := range requested {
		capacity := table.Capacity(id)
		if CountInSlot(id, slot, existing) >= capacity {
			return &CapacityError{
				ServiceID: id,
				Label:     table.Label(id),
				Capacity:  capacity,
				Slot:      slot,
			}
		}
	}
	return nil
}

// Remaining is the number of further bookings id can take in slot.
func Remaining(id string, slot Slot, existing []models.Booking, table CapacityTable) int {
	left := table.Capacity(id) - CountInSlot(id, slot, existing)
	if left < 0 {
		return 0
	}
	return left
}
