package booking

// Slot identifies a bookable window. Two bookings share a slot iff both the
// date and the time strings are identical.
type Slot struct {
	Date string
	Time string
}

func (s Slot) Key() string {
	return s.Date + "|" + s.Time
}

func (s Slot) String() string {
	return s.Date + " " + s.Time
}

// Contains reports whether a stored booking (date, time) falls in s.
func (s Slot) Contains(date, time string) bool {
	return s.Date == date && s.Time == time
}

type TimeSlot struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TimeSlots is the fixed set of appointment times offered each day.
var TimeSlots = []TimeSlot{
	{Value: "09:00", Label: "9:00 AM"},
	{Value: "10:00", Label: "10:00 AM"},
	{Value: "11:00", Label: "11:00 AM"},
	{Value: "12:00", Label: "12:00 PM"},
	{Value: "14:00", Label: "2:00 PM"},
	{Value: "15:00", Label: "3:00 PM"},
	{Value: "16:00", Label: "4:00 PM"},
	{Value: "17:00", Label: "5:00 PM"},
}

func IsTimeSlot(v string) bool {
	for _, ts := range TimeSlots {
		if ts.Value == v {
			return true
		}
	}
	return false
}

// TimeSlotLabel returns the display label of v, or v itself when it is not
// an enumerated slot.
func TimeSlotLabel(v string) string {
	for _, ts := range TimeSlots {
		if ts.Value == v {
			return ts.Label
		}
	}
	return v
}
