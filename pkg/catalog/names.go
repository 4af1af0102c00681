package catalog

import (
	"regexp"
	"strings"
)

var (
	snakeWordRe  = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	snakeUpperRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ToSnake converts a CamelCase name to snake_case, for example
// "TrimCatalog" to "trim_catalog" and "HTTPServer" to "http_server".
func ToSnake(name string) string {
	s := snakeWordRe.ReplaceAllString(name, "${1}_${2}")
	s = snakeUpperRe.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
