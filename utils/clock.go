package utils

import (
	"time"
	_ "time/tzdata"

	"leasedesk/types"
)

const DefaultTimezone = "Asia/Ho_Chi_Minh"

// Clock cho phép thay thế thời gian hiện tại trong test
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewClock tạo clock theo múi giờ, fallback về DefaultTimezone
func NewClock(timezone string) Clock {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock luôn trả về cùng một thời điểm
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

// Today lấy ngày hiện tại theo clock
func Today(c Clock) types.Date {
	return types.DateOf(c.Now())
}
