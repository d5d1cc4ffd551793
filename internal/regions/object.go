package regions

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Object is a classified, measured region with a stable identifier.
//
// Objects are flat at this boundary: the host application may arrange
// them in a hierarchy, but the exchange format treats each one as an
// independent unit and child links never cross it.
type Object struct {
	ID             uuid.UUID
	ROI            *ROI
	Classification string
	Measurements   map[string]float64
}

// NewObject creates an object around a ROI with a fresh random ID.
func NewObject(roi *ROI) *Object {
	return &Object{
		ID:           uuid.New(),
		ROI:          roi,
		Measurements: make(map[string]float64),
	}
}

// Equal compares identity, geometry, classification and measurements.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.ID != other.ID || o.Classification != other.Classification {
		return false
	}
	if !o.ROI.Equal(other.ROI) {
		return false
	}
	if len(o.Measurements) != len(other.Measurements) {
		return false
	}
	for k, v := range o.Measurements {
		if w, ok := other.Measurements[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// ObjectIDs returns the string form of every object's identifier, in
// input order.
func ObjectIDs(objects []*Object) []string {
	ids := make([]string, len(objects))
	for i, o := range objects {
		ids[i] = o.ID.String()
	}
	return ids
}

// MeasurementNames returns the distinct measurement names across all
// objects. Names are sorted per object before merging so the result
// is deterministic regardless of map iteration order.
func MeasurementNames(objects []*Object) []string {
	seen := make(map[string]bool)
	var names []string
	for _, o := range objects {
		perObject := make([]string, 0, len(o.Measurements))
		for name := range o.Measurements {
			perObject = append(perObject, name)
		}
		sort.Strings(perObject)
		for _, name := range perObject {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// MeasurementValues returns one value per object for the named
// measurement, NaN where an object does not carry it.
func MeasurementValues(objects []*Object, name string) []float64 {
	values := make([]float64, len(objects))
	for i, o := range objects {
		if v, ok := o.Measurements[name]; ok {
			values[i] = v
		} else {
			values[i] = math.NaN()
		}
	}
	return values
}
