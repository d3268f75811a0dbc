package booking

import "strings"

// ServiceDelimiter is the separator of the bookings.service column. Every
// write goes through JoinServices and every read through ParseServices.
const ServiceDelimiter = ","

func JoinServices(ids []string) string {
	return strings.Join(ids, ServiceDelimiter)
}

// ParseServices splits a stored service column, trimming each identifier and
// dropping empty entries.
func ParseServices(stored string) []string {
	parts := strings.Split(stored, ServiceDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasService is an exact-token membership test: "Veneers" is not found in
// "Veneers Plus".
func HasService(stored, id string) bool {
	for _, s := range ParseServices(stored) {
		if s == id {
			return true
		}
	}
	return false
}

// normalizeServices flattens delimited entries, trims them and removes
// duplicates keeping the first occurrence.
func normalizeServices(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, id := range ParseServices(entry) {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
