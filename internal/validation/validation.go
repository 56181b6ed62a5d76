// Package validation enforces the coordinate and distance constraints shared by
// every operation that accepts a position.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"address-api/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

const (
	latitudeConstraint  = "must be between -90 and 90"
	longitudeConstraint = "must be between -180 and 180"
	distanceConstraint  = "must be greater than 0"
	requiredConstraint  = "is required"
)

// CheckLatitude rejects latitudes outside [-90, 90]. NaN is rejected too.
func CheckLatitude(lat float64) error {
	if !(lat >= MinLatitude && lat <= MaxLatitude) {
		return models.NewValidationError("latitude", latitudeConstraint)
	}
	return nil
}

// CheckLongitude rejects longitudes outside [-180, 180]. NaN is rejected too.
func CheckLongitude(lon float64) error {
	if !(lon >= MinLongitude && lon <= MaxLongitude) {
		return models.NewValidationError("longitude", longitudeConstraint)
	}
	return nil
}

func CheckCoordinate(lat, lon float64) error {
	if err := CheckLatitude(lat); err != nil {
		return err
	}
	return CheckLongitude(lon)
}

// CheckDistance requires a strictly positive radius in meters.
func CheckDistance(d float64) error {
	if !(d > 0) {
		return models.NewValidationError("distance", distanceConstraint)
	}
	return nil
}

func CheckNewAddress(a models.NewAddress) error {
	return CheckCoordinate(a.Latitude, a.Longitude)
}

// CheckUpdate validates only the fields present in u.
func CheckUpdate(u models.AddressUpdate) error {
	if u.Latitude != nil {
		if err := CheckLatitude(*u.Latitude); err != nil {
			return err
		}
	}
	if u.Longitude != nil {
		if err := CheckLongitude(*u.Longitude); err != nil {
			return err
		}
	}
	return nil
}

func CheckProximityQuery(q models.ProximityQuery) error {
	if err := CheckCoordinate(q.Center.Latitude, q.Center.Longitude); err != nil {
		return err
	}
	return CheckDistance(q.Distance)
}

var registerOnce sync.Once

// UseRequestFieldNames makes the gin validator report fields by their json
// (or form) tag instead of the Go struct field name.
func UseRequestFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// FromBinding converts a validator failure raised by gin binding into a
// *models.ValidationError. ok is false for any other error, such as a body
// that is not valid JSON.
func FromBinding(err error) (verr *models.ValidationError, ok bool) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return nil, false
	}
	fe := errs[0]
	return models.NewValidationError(fe.Field(), constraintFor(fe)), true
}

func constraintFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return requiredConstraint
	case "gte", "lte":
		switch fe.Field() {
		case "latitude":
			return latitudeConstraint
		case "longitude":
			return longitudeConstraint
		}
		if fe.Tag() == "gte" {
			return "must be greater than or equal to " + fe.Param()
		}
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
