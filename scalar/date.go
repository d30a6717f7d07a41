// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scalar

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/bufbuild/clausewitz/internal/ext/unsafex"
)

// The binary date epoch: binary dates count hours from January 1 of this
// year.
const binaryEpochYear = -5000

// Cumulative days before the first of each month. The calendar has no leap
// years.
var daysBeforeMonth = [...]int32{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// Date is a calendar date with an optional hour, as used in game saves.
//
// Dates use a proleptic calendar without leap years. Years may be negative.
type Date struct {
	Year  int32
	Month uint8 // 1 to 12.
	Day   uint8 // 1 to the length of the month.
	Hour  uint8 // 0 to 23; zero means the date has no hour component.
}

// ParseDate parses a date of the form Y.M.D or Y.M.D.H.
func ParseDate(text string) (Date, error) {
	d, ok := parseDate([]byte(text))
	if !ok {
		return Date{}, fmt.Errorf("%w: %q", ErrNotDate, text)
	}
	return d, nil
}

// DateFromBinary decodes a date from its binary form, a count of hours since
// the epoch. Negative counts are not dates.
func DateFromBinary(hours int32) (Date, error) {
	if hours < 0 {
		return Date{}, fmt.Errorf("%w: negative hour count %d", ErrNotDate, hours)
	}

	days := hours / 24
	yearDay := days % 365
	month := 1
	for yearDay >= daysBeforeMonth[month] {
		month++
	}
	return Date{
		Year:  days/365 + binaryEpochYear,
		Month: uint8(month),
		Day:   uint8(yearDay - daysBeforeMonth[month-1] + 1),
		Hour:  uint8(hours % 24),
	}, nil
}

// Date converts this scalar to a date.
//
// Text is parsed with [ParseDate]. A binary [I32] is decoded with
// [DateFromBinary], since dates are not tagged in binary streams.
func (s Scalar) Date() (Date, error) {
	switch {
	case s.kind == Unquoted || s.kind == Quoted:
		if d, ok := parseDate(s.data); ok {
			return d, nil
		}
	case s.IsBinary() && s.kind == I32:
		v, _ := s.Int64()
		if d, err := DateFromBinary(int32(v)); err == nil {
			return d, nil
		}
	}
	return Date{}, s.errorf("date", ErrNotDate)
}

// Valid returns whether d names a day that exists.
func (d Date) Valid() bool {
	return d.Month >= 1 && d.Month <= 12 &&
		d.Day >= 1 && int32(d.Day) <= daysBeforeMonth[d.Month]-daysBeforeMonth[d.Month-1] &&
		d.Hour < 24
}

// Binary returns the binary encoding of d. It fails for dates before the
// epoch or too far after it to fit in an int32.
func (d Date) Binary() (int32, error) {
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %v", ErrNotDate, d)
	}
	days := (int64(d.Year)-binaryEpochYear)*365 + int64(daysBeforeMonth[d.Month-1]) + int64(d.Day) - 1
	hours := days*24 + int64(d.Hour)
	if hours < 0 || hours > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v", ErrOverflow, d)
	}
	return int32(hours), nil
}

// String implements [fmt.Stringer]. The hour is omitted when it is zero.
func (d Date) String() string {
	if d.Hour == 0 {
		return fmt.Sprintf("%d.%d.%d", d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%d.%d.%d.%d", d.Year, d.Month, d.Day, d.Hour)
}

func parseDate(data []byte) (Date, bool) {
	var parts [4]int64
	n := 0
	for len(data) > 0 && n < len(parts) {
		field := data
		if i := bytes.IndexByte(data, '.'); i >= 0 {
			field, data = data[:i], data[i+1:]
			if len(data) == 0 {
				return Date{}, false
			}
		} else {
			data = nil
		}

		var err error
		if n == 0 {
			parts[n], err = strconv.ParseInt(unsafex.StringAlias(field), 10, 32)
		} else {
			var u uint64
			u, err = parseUint(field)
			parts[n] = int64(min(u, math.MaxUint8+1))
		}
		if err != nil {
			return Date{}, false
		}
		n++
	}
	if len(data) > 0 || n < 3 || parts[1] > math.MaxUint8 || parts[2] > math.MaxUint8 || parts[3] > math.MaxUint8 {
		return Date{}, false
	}

	d := Date{
		Year:  int32(parts[0]),
		Month: uint8(parts[1]),
		Day:   uint8(parts[2]),
		Hour:  uint8(parts[3]),
	}
	return d, d.Valid()
}
