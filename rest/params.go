package rest

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// repeatedKeySuffix marks a query key as carrying multiple values.
const repeatedKeySuffix = "[]"

// EncodeParams encodes params as query values. Any key whose value is a
// sequence is rewritten under the repeated-key convention (key -> key[]),
// unless the key already carries the suffix; scalar-valued keys are left
// untouched.
func EncodeParams(params map[string]interface{}) url.Values {
	values := url.Values{}
	for key, value := range params {
		rv := reflect.ValueOf(value)
		if value != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
			if !strings.HasSuffix(key, repeatedKeySuffix) {
				key += repeatedKeySuffix
			}
			for i := 0; i < rv.Len(); i++ {
				values.Add(key, formatValue(rv.Index(i).Interface()))
			}
			continue
		}
		values.Add(key, formatValue(value))
	}
	return values
}

// formatValue renders a scalar parameter value as its query-string form.
func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
