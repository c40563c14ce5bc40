package court

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown zone category")

// Category groups zones by shot distance.
type Category int

const (
	Paint Category = iota + 1
	Mid
	ThreePoint
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{Paint, Mid, ThreePoint}
}

func (c Category) String() string {
	switch c {
	case Paint:
		return "Paint"
	case Mid:
		return "Mid"
	case ThreePoint:
		return "3PT"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func (c Category) Valid() bool {
	return c >= Paint && c <= ThreePoint
}

// ParseCategory accepts the wire names Paint, Mid and 3PT.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if s == c.String() {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zone is a region of the half court. Shape is an SVG path on a 500x500
// viewBox and Anchor is where its label is drawn.
type Zone struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
	Shape    string   `json:"path"`
	Anchor   Point    `json:"anchor"`
	Group    string   `json:"group,omitempty"`
}

// DisplayLabel flattens the line break used on narrow corner zones.
func (z Zone) DisplayLabel() string {
	return strings.ReplaceAll(z.Label, "\n", " ")
}
