// Package court defines the fixed zones a shot can be logged against.
package court

// Scale is 1m = 30px on a 500x500 half court.
var catalog = []Zone{
	{ID: "Paint", Label: "Paint", Category: Paint, Group: "Paint", Shape: "M 176.5 450 L 176.5 276 L 323.5 276 L 323.5 450 Z", Anchor: Point{250, 360}},

	{ID: "Mid-L-Corner", Label: "Mid L-Crnr", Category: Mid, Group: "Corner", Shape: "M 52 450 L 176.5 450 L 176.5 360.5 L 52 360.5 Z", Anchor: Point{114, 405}},
	{ID: "Mid-L-Wing", Label: "Mid L-Wing", Category: Mid, Group: "Wing", Shape: "M 52 360.5 L 176.5 360.5 L 176.5 214.3 A 202.5 202.5 0 0 0 52 360.5 Z", Anchor: Point{125, 280}},
	{ID: "Mid-Top", Label: "Mid Top", Category: Mid, Group: "Top", Shape: "M 176.5 276 L 323.5 276 L 323.5 214.3 A 202.5 202.5 0 0 0 176.5 214.3 Z", Anchor: Point{250, 235}},
	{ID: "Mid-R-Wing", Label: "Mid R-Wing", Category: Mid, Group: "Wing", Shape: "M 448 360.5 L 323.5 360.5 L 323.5 214.3 A 202.5 202.5 0 0 1 448 360.5 Z", Anchor: Point{375, 280}},
	{ID: "Mid-R-Corner", Label: "Mid R-Crnr", Category: Mid, Group: "Corner", Shape: "M 448 450 L 323.5 450 L 323.5 360.5 L 448 360.5 Z", Anchor: Point{386, 405}},

	{ID: "3PT-L-Corner", Label: "3PT\nL-Crnr", Category: ThreePoint, Group: "Corner", Shape: "M 0 450 L 52 450 L 52 360.5 L 0 360.5 Z", Anchor: Point{26, 405}},
	{ID: "3PT-L-Wing", Label: "3PT L-Wing", Category: ThreePoint, Group: "Wing", Shape: "M 52 360.5 A 202.5 202.5 0 0 1 176.5 214.3 L 176.5 0 L 0 0 L 0 360.5 Z", Anchor: Point{60, 150}},
	{ID: "3PT-Top", Label: "3PT Top", Category: ThreePoint, Group: "Top", Shape: "M 176.5 214.3 A 202.5 202.5 0 0 1 323.5 214.3 L 323.5 0 L 176.5 0 Z", Anchor: Point{250, 80}},
	{ID: "3PT-R-Wing", Label: "3PT R-Wing", Category: ThreePoint, Group: "Wing", Shape: "M 448 360.5 A 202.5 202.5 0 0 0 323.5 214.3 L 323.5 0 L 500 0 L 500 360.5 Z", Anchor: Point{440, 150}},
	{ID: "3PT-R-Corner", Label: "3PT\nR-Crnr", Category: ThreePoint, Group: "Corner", Shape: "M 500 450 L 448 450 L 448 360.5 L 500 360.5 Z", Anchor: Point{474, 405}},
}

var byID = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, z := range catalog {
		idx[z.ID] = i
	}
	return idx
}()

// Zones returns a copy of the catalog in drawing order.
func Zones() []Zone {
	out := make([]Zone, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(id string) (Zone, bool) {
	i, ok := byID[id]
	if !ok {
		return Zone{}, false
	}
	return catalog[i], true
}

// MustLookup panics on an unknown id.
func MustLookup(id string) Zone {
	z, ok := Lookup(id)
	if !ok {
		panic("court: unknown zone " + id)
	}
	return z
}
