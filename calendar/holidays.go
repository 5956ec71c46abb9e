package calendar

// Official non-working holidays of the RF production calendar, one table
// per year. Dates that already fall on a weekend are listed anyway; the
// weekday check makes them harmless. Each new year is appended here and
// passed to NewCalendar, no caller changes needed.

var Holidays2024 = []string{
	"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
	"2024-01-05", "2024-01-08",
	"2024-02-23",
	"2024-03-08",
	"2024-04-29", "2024-04-30", "2024-05-01",
	"2024-05-09", "2024-05-10",
	"2024-06-12",
	"2024-11-04",
	"2024-12-30", "2024-12-31",
}

var Holidays2025 = []string{
	"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-06",
	"2025-01-07", "2025-01-08",
	"2025-02-23",
	"2025-03-08",
	"2025-05-01", "2025-05-02",
	"2025-05-08", "2025-05-09",
	"2025-06-12", "2025-06-13",
	"2025-11-03", "2025-11-04",
	"2025-12-31",
}

var Holidays2026 = []string{
	"2026-01-01", "2026-01-02", "2026-01-05", "2026-01-06",
	"2026-01-07", "2026-01-08",
	"2026-02-23",
	"2026-03-08", "2026-03-09",
	"2026-05-01", "2026-05-09", "2026-05-11",
	"2026-06-12",
	"2026-11-04",
	"2026-12-31",
}
