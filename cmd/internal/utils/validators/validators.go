package validators

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// DataDate accepts dates in the YYYY-MM-DD wire format used by every
// date field of the API.
func DataDate(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse("2006-01-02", val)
	return err == nil
}

func NoDupes(fl validator.FieldLevel) bool {
	slice := fl.Field()
	if slice.Kind() != reflect.Slice {
		log.Warnf("validator 'nodupes' applied to non-slice type: %s", slice.Kind().String())
		return false
	}

	seen := make(map[any]struct{}, slice.Len())
	for i := 0; i < slice.Len(); i++ {
		v := slice.Index(i).Interface()
		if _, dup := seen[v]; dup {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}
