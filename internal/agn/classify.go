package agn

import (
	"fmt"
	"regexp"
)

const (
	MinAngle = -90
	MaxAngle = 90

	// DefaultAngle is the angle a new session starts at.
	DefaultAngle = 0
)

// Entry is one row of the classification table. The interval is
// [Min, Max) unless MaxInclusive is set, in which case it is [Min, Max].
type Entry struct {
	Archetype    Archetype
	Min          int
	Max          int
	MaxInclusive bool
	DatasetKey   string
	ObjectName   string
}

// Contains reports whether angle falls inside the entry's interval.
func (e Entry) Contains(angle int) bool {
	if angle < e.Min {
		return false
	}
	if e.MaxInclusive {
		return angle <= e.Max
	}
	return angle < e.Max
}

// Classification is the result of classifying one viewing angle.
type Classification struct {
	Archetype  Archetype `json:"archetype"`
	Name       string    `json:"name"`
	DatasetKey string    `json:"dataset_key"`
	ObjectName string    `json:"object_name"`
}

// defaultTable is the single source of truth for interval boundaries,
// dataset keys (BASS DR1) and example objects. Ordered high to low.
var defaultTable = []Entry{
	{Archetype: Blazar, Min: 75, Max: 90, MaxInclusive: true, DatasetKey: "0545", ObjectName: "3C 454.3"},
	{Archetype: RadioLoudQuasar, Min: 45, Max: 75, DatasetKey: "0715", ObjectName: "3C 273"},
	{Archetype: BroadLineRadioGalaxy, Min: 20, Max: 45, DatasetKey: "1110", ObjectName: "3C 390.3"},
	{Archetype: NarrowLineRadioGalaxy, Min: 0, Max: 20, DatasetKey: "0360", ObjectName: "Cygnus A"},
	{Archetype: Seyfert2, Min: -45, Max: 0, DatasetKey: "0005", ObjectName: "NGC 1068"},
	{Archetype: Seyfert1, Min: -70, Max: -45, DatasetKey: "0002", ObjectName: "NGC 4151"},
	{Archetype: RadioQuietQuasar, Min: -90, Max: -70, DatasetKey: "1146", ObjectName: "PG 0026+129"},
}

var datasetKeyPattern = regexp.MustCompile(`^[0-9]{4}$`)

// ValidDatasetKey reports whether key is a 4-digit catalog key.
func ValidDatasetKey(key string) bool {
	return datasetKeyPattern.MatchString(key)
}

// Override replaces the dataset key and/or example object of one archetype.
// Empty fields keep the default.
type Override struct {
	DatasetKey string `json:"dataset_key,omitempty"`
	ObjectName string `json:"object_name,omitempty"`
}

// Classifier resolves angles against a fixed table. It is immutable after
// construction and safe for concurrent use.
type Classifier struct {
	table []Entry
}

var defaultClassifier = &Classifier{table: defaultTable}

// Default returns the classifier built from the built-in table.
func Default() *Classifier {
	return defaultClassifier
}

// NewClassifier returns a classifier using the built-in intervals with the
// given per-archetype overrides applied.
func NewClassifier(overrides map[Archetype]Override) (*Classifier, error) {
	table := make([]Entry, len(defaultTable))
	copy(table, defaultTable)

	for a, o := range overrides {
		if !a.Valid() {
			return nil, &UnknownArchetypeError{Value: int(a)}
		}
		for i := range table {
			if table[i].Archetype != a {
				continue
			}
			if o.DatasetKey != "" {
				if !ValidDatasetKey(o.DatasetKey) {
					return nil, fmt.Errorf("%s: dataset key %q is not 4 digits", a.Slug(), o.DatasetKey)
				}
				table[i].DatasetKey = o.DatasetKey
			}
			if o.ObjectName != "" {
				table[i].ObjectName = o.ObjectName
			}
		}
	}
	return &Classifier{table: table}, nil
}

// Classify returns the archetype whose interval contains angle.
func (c *Classifier) Classify(angle int) (Classification, error) {
	if angle < MinAngle || angle > MaxAngle {
		return Classification{}, &OutOfRangeError{Angle: angle}
	}
	for _, e := range c.table {
		if e.Contains(angle) {
			return Classification{
				Archetype:  e.Archetype,
				Name:       e.Archetype.String(),
				DatasetKey: e.DatasetKey,
				ObjectName: e.ObjectName,
			}, nil
		}
	}
	// The table partitions [MinAngle, MaxAngle]; reaching here means it was
	// edited into a state with a gap.
	panic(fmt.Sprintf("agn: no interval contains angle %d", angle))
}

// Lookup returns the table entry for a.
func (c *Classifier) Lookup(a Archetype) Entry {
	MustValid(a)
	for _, e := range c.table {
		if e.Archetype == a {
			return e
		}
	}
	panic(&UnknownArchetypeError{Value: int(a)})
}

// Entries returns a copy of the table, ordered high angle to low.
func (c *Classifier) Entries() []Entry {
	out := make([]Entry, len(c.table))
	copy(out, c.table)
	return out
}

// Classify classifies angle with the default table.
func Classify(angle int) (Classification, error) {
	return defaultClassifier.Classify(angle)
}
