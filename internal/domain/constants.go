package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes   = 15
	DefaultMinLeadTimeHours      = 2
	DefaultMaxHorizonDays        = 30
	DefaultMaxAppointmentsPerDay = 25

	// DefaultDurationMinutes длительность записи, чья услуга пропала из каталога
	DefaultDurationMinutes = 60

	// DefaultRecliningStationTag ресурс, который занимают услуги на кушетке
	DefaultRecliningStationTag = "reclining_station"

	DefaultStaffColor = "#000000"
)

// Business validation constants
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 240
	MaxHorizonDays         = 365
	MaxClientNameLength    = 200
	MaxNotesLength         = 500
	MaxOpenDatesDays       = 90
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
