// Package casing приводит ключи JSON-документов к camelCase.
package casing

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

var separatorPattern = regexp.MustCompile(`[-_][a-z]`)

// ToCamel переводит snake_case и kebab-case в camelCase.
// Преобразуется только разделитель, за которым следует строчная буква.
func ToCamel(s string) string {
	return separatorPattern.ReplaceAllStringFunc(s, func(group string) string {
		return strings.ToUpper(group[1:])
	})
}

// CamelCaseKeys рекурсивно переименовывает ключи в объектах и массивах.
// Скалярные значения возвращаются без изменений.
//
// При совпадении имен побеждает ключ, уже записанный в camelCase
// (userId важнее user_id). Среди преобразованных ключей побеждает
// последний в лексикографическом порядке.
func CamelCaseKeys(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CamelCaseKeys(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		var exact []string
		for _, key := range slices.Sorted(maps.Keys(val)) {
			camel := ToCamel(key)
			if camel == key {
				exact = append(exact, key)
				continue
			}
			out[camel] = CamelCaseKeys(val[key])
		}
		for _, key := range exact {
			out[key] = CamelCaseKeys(val[key])
		}
		return out
	default:
		return v
	}
}
