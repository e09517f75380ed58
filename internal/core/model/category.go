package model

// Category is the closed set of duty-status rows drawn on a log grid.
type Category int

const (
	CategoryOffDuty Category = iota
	CategorySleeperBerth
	CategoryDriving
	CategoryOnDutyNotDriving
	CategoryUnknown
)

// Status spellings used on the wire.
const (
	StatusOffDuty          = "off_duty"
	StatusSleeperBerth     = "sleeper_berth"
	StatusDriving          = "driving"
	StatusOnDutyNotDriving = "on_duty_not_driving"
	StatusUnknown          = "unknown"
)

// RowCount is the number of category rows on the grid.
const RowCount = 4

// Categories lists the drawable categories in row order.
var Categories = []Category{
	CategoryOffDuty,
	CategorySleeperBerth,
	CategoryDriving,
	CategoryOnDutyNotDriving,
}

// ParseCategory maps a wire status onto the enumeration. Anything outside the
// four known spellings is CategoryUnknown.
func ParseCategory(status string) Category {
	switch status {
	case StatusOffDuty:
		return CategoryOffDuty
	case StatusSleeperBerth:
		return CategorySleeperBerth
	case StatusDriving:
		return CategoryDriving
	case StatusOnDutyNotDriving:
		return CategoryOnDutyNotDriving
	default:
		return CategoryUnknown
	}
}

// Row returns the grid row of the category. Unknown statuses share row 0 with
// off duty and are told apart by their colour key only.
func (c Category) Row() int {
	switch c {
	case CategoryOffDuty:
		return 0
	case CategorySleeperBerth:
		return 1
	case CategoryDriving:
		return 2
	case CategoryOnDutyNotDriving:
		return 3
	default:
		return 0
	}
}

// Key returns the colour/identifier key of the category.
func (c Category) Key() string {
	switch c {
	case CategoryOffDuty:
		return StatusOffDuty
	case CategorySleeperBerth:
		return StatusSleeperBerth
	case CategoryDriving:
		return StatusDriving
	case CategoryOnDutyNotDriving:
		return StatusOnDutyNotDriving
	default:
		return StatusUnknown
	}
}

// Label returns the row caption printed beside the grid.
func (c Category) Label() string {
	switch c {
	case CategoryOffDuty:
		return "Off Duty"
	case CategorySleeperBerth:
		return "Sleeper Berth"
	case CategoryDriving:
		return "Driving"
	case CategoryOnDutyNotDriving:
		return "On Duty"
	default:
		return "Unknown"
	}
}

func (c Category) String() string {
	return c.Key()
}

// IsKnown reports whether the category is one of the four drawable rows.
func (c Category) IsKnown() bool {
	return c >= CategoryOffDuty && c <= CategoryOnDutyNotDriving
}
