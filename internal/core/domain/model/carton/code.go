package carton

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// CodeOrigin records how a carton got its code. Manual codes are never
// rewritten.
type CodeOrigin int

const (
	CodeGenerated CodeOrigin = iota + 1
	CodeManual
)

func (o CodeOrigin) String() string {
	if o == CodeManual {
		return "manual"
	}
	return "generated"
}

// UnknownTypeCode is used when no dominant category can be derived.
const UnknownTypeCode = "XX"

const codeDateLayout = "20060102"

var codeRe = regexp.MustCompile(`^([A-Z0-9]{2})-(\d{8})-(\d+)$`)

// Code is a generated carton code, "TT-YYYYMMDD-N": a two letter type, the
// creation date and a per-date sequence.
type Code struct {
	TypeCode string
	Date     string
	Sequence int
}

// CodeDate formats t the way codes embed it.
func CodeDate(t time.Time) string {
	return t.Format(codeDateLayout)
}

// ParseCode reports false for codes that do not follow the generated format,
// including manual ones.
func ParseCode(s string) (Code, bool) {
	m := codeRe.FindStringSubmatch(s)
	if m == nil {
		return Code{}, false
	}
	seq, err := strconv.Atoi(m[3])
	if err != nil || seq <= 0 {
		return Code{}, false
	}
	return Code{TypeCode: m[1], Date: m[2], Sequence: seq}, true
}

func (c Code) String() string {
	return fmt.Sprintf("%s-%s-%d", c.TypeCode, c.Date, c.Sequence)
}

// NextSequence returns one more than the highest sequence used on date among
// codes. Malformed codes and codes of other dates are ignored.
func NextSequence(codes []string, date string) int {
	highest := 0
	for _, raw := range codes {
		code, ok := ParseCode(raw)
		if !ok || code.Date != date {
			continue
		}
		highest = max(highest, code.Sequence)
	}
	return highest + 1
}
