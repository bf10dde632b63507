package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation or ParseLocation")

var locationPartRe = regexp.MustCompile(`^[A-Z0-9]{1,16}$`)

// Location identifies a storage slot in a warehouse: warehouse and zone are
// mandatory, aisle and shelf narrow it down when the layout has them.
//
// Location is an immutable value object. The canonical string form joins the
// non-empty parts with "-", e.g. "PAR-A-03-2".
type Location struct { //nolint:recvcheck //using for validation
	warehouse string
	zone      string
	aisle     string
	shelf     string
	guard     guard.ConstructorGuard
}

// NewLocation validates and builds a Location. Parts are upper-cased and must
// be alphanumeric.
func NewLocation(warehouse, zone, aisle, shelf string) (Location, error) {
	loc := Location{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		loc.setPart(&loc.warehouse, "warehouse", warehouse, true),
		loc.setPart(&loc.zone, "zone", zone, true),
		loc.setPart(&loc.aisle, "aisle", aisle, false),
		loc.setPart(&loc.shelf, "shelf", shelf, false),
	); err != nil {
		return Location{}, err
	}

	if loc.aisle == "" && loc.shelf != "" {
		return Location{}, errs.NewValueIsRequiredErrorWithCause("aisle", errors.New("shelf given without aisle"))
	}

	return loc, nil
}

// ParseLocation reads the canonical "WAREHOUSE-ZONE[-AISLE[-SHELF]]" form.
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) < 2 || len(parts) > 4 {
		return Location{}, errs.NewValueIsInvalidErrorWithCause(
			"location", fmt.Errorf("%q is not WAREHOUSE-ZONE[-AISLE[-SHELF]]", s))
	}
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	return NewLocation(parts[0], parts[1], parts[2], parts[3])
}

// MustParseLocation is ParseLocation for literals known to be valid.
func MustParseLocation(s string) Location {
	loc, err := ParseLocation(s)
	if err != nil {
		panic(err)
	}
	return loc
}

func (l Location) Warehouse() string { return l.warehouse }
func (l Location) Zone() string      { return l.zone }
func (l Location) Aisle() string     { return l.aisle }
func (l Location) Shelf() string     { return l.shelf }

// IsEqual compares two locations part by part.
func (l Location) IsEqual(other Location) bool {
	return l.warehouse == other.warehouse &&
		l.zone == other.zone &&
		l.aisle == other.aisle &&
		l.shelf == other.shelf
}

// Validate reports whether the Location was built by a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// String returns the canonical form.
func (l Location) String() string {
	parts := []string{l.warehouse, l.zone}
	if l.aisle != "" {
		parts = append(parts, l.aisle)
	}
	if l.shelf != "" {
		parts = append(parts, l.shelf)
	}
	return strings.Join(parts, "-")
}

func (l *Location) setPart(dst *string, name, value string, required bool) error {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		if required {
			return errs.NewValueIsRequiredError(name)
		}
		return nil
	}
	if !locationPartRe.MatchString(value) {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is not alphanumeric", value))
	}
	*dst = value
	return nil
}
