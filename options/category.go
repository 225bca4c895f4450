package options

// CategoryEnum selects the textual forms a converter accepts for a cell.
type CategoryEnum int

const (
	CategoryTextNumber  CategoryEnum = 1 << iota // "42", "-7", "3.5": decimal number text for int, uint and float kinds
	CategoryTextualBool                          // yes, no, on, off, y, n on top of strconv.ParseBool forms
	CategoryDatetime                             // RFC3339Nano, RFC3339 or 2006-01-02 text into time.Time
	CategoryTimestamp                            // integer Unix seconds into time.Time
	CategoryDuration                             // "2h45m" into time.Duration
	CategorySeconds                              // float seconds into time.Duration
	CategoryEnumString                           // text into string enums, checked by IsValid() bool when present

	CategoryAll  = (1 << iota) - 1 //all categories combined
	CategoryNone = 0               // no categories selected
)

// Has reports whether every category in other is enabled in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return c&other == other
}
