package domain

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an amount in minor units, e.g. cents.
type Money int64

const minorUnits = 100

var printer = message.NewPrinter(language.English) //nolint:gochecknoglobals // printer is safe for concurrent use

// NewMoney returns the Money of major and minor units, e.g. NewMoney(150, 25) is 150.25.
func NewMoney(major int64, minor int64) Money {
	return Money(major*minorUnits + minor)
}

// String formats m with two decimals and grouped thousands, e.g. 1,250.00.
func (m Money) String() string {
	sign := ""
	v := int64(m)

	if v < 0 {
		sign = "-"
		v = -v
	}

	return sign + printer.Sprintf("%d", v/minorUnits) + fmt.Sprintf(".%02d", v%minorUnits)
}
