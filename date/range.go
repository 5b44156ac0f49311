package date

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the range covering both dates, inclusive.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains reports whether the date is included in the range (boundaries included).
func (r Range) Contains(on Date) bool { return !on.Before(r.From) && !on.After(r.To) }

// Days returns the number of calendar days spanned by the range.
func (r Range) Days() int { return r.To.Sub(r.From) }
