package domain

// StockStatus classifies a pharmacy for map markers and list status dots.
type StockStatus string

const (
	// StatusGuard marks a pharmacy on the after-hours duty roster.
	StatusGuard StockStatus = "guard"
	// StatusAvailable marks a pharmacy with at least one available stock item.
	StatusAvailable StockStatus = "available"
	// StatusUnavailable marks a pharmacy with nothing in stock.
	StatusUnavailable StockStatus = "unavailable"
)

// Classify resolves the display status of a pharmacy. Priority order:
// duty roster first, then stock availability.
func Classify(isGuard, hasAvailableStock bool) StockStatus {
	switch {
	case isGuard:
		return StatusGuard
	case hasAvailableStock:
		return StatusAvailable
	default:
		return StatusUnavailable
	}
}

// MarkerColor returns the map marker color for a status. The same mapping
// drives the list-view status dot.
func (s StockStatus) MarkerColor() string {
	switch s {
	case StatusGuard:
		return "#3b82f6"
	case StatusAvailable:
		return "#10b981"
	default:
		return "#ef4444"
	}
}
