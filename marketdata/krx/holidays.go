package krx

// HolidayCalendar lists KRX non-business dates, in "2006-01-02" form, for
// the legacy swap bootstrap's own business-day adjustment (swap.isHoliday).
// Empty by default; weekends are still excluded independently of this list.
var HolidayCalendar = []string{}
