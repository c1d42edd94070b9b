package utils

import (
	"reflect"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(time.RFC3339)
}

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

// TodayISO returns the current UTC date as YYYY-MM-DD, used in export
// file names.
func TodayISO() string {
	return time.Now().UTC().Format(DateLayout)
}

// FormatDateBR renders a YYYY-MM-DD date as dd/mm/yyyy for exports.
// Empty or unparseable input yields "Não informado", mirroring how the
// reports always render something for the contract-date column.
func FormatDateBR(isoDate string) string {
	t, err := time.Parse(DateLayout, isoDate)
	if err != nil {
		return "Não informado"
	}
	return t.Format("02/01/2006")
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Ptr:
			if !field.IsNil() && field.Elem().Kind() == reflect.String {
				field.Elem().SetString(sanitizeString(field.Elem().String()))
			}

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
