// Package web embeds the server-rendered views and browser assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"
)

//go:embed views static
var assets embed.FS

// Layout wraps every page.
const Layout = "layouts/main"

// Views returns the template tree rooted at views/.
func Views() http.FileSystem {
	return subFS("views")
}

// Static returns the asset tree rooted at static/.
func Static() http.FileSystem {
	return subFS("static")
}

func subFS(dir string) http.FileSystem {
	sub, err := fs.Sub(assets, dir)
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate": FormatDate,
		"hasValue":   HasValue,
	}
}

// FormatDate renders a backend timestamp as YYYY-MM-DD in UTC. Values that
// do not parse are returned unchanged.
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.DateOnly)
		}
	}
	return raw
}

// HasValue reports whether a submitted multi-value field contains id.
func HasValue(values []string, id int) bool {
	want := strconv.Itoa(id)
	for _, v := range values {
		if strings.TrimSpace(v) == want {
			return true
		}
	}
	return false
}
