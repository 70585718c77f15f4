package layout

import (
	"embed"
	"path"
	"sort"
	"strings"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
)

//go:embed demos/*.yaml
var demoFS embed.FS

// DemoNames lists the bundled demo layouts.
func DemoNames() []string {
	entries, err := demoFS.ReadDir("demos")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Demo returns the source of a bundled demo layout.
func Demo(name string) ([]byte, error) {
	data, err := demoFS.ReadFile("demos/" + name + ".yaml")
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidInput, "unknown demo %q", name).
			WithContext("valid", strings.Join(DemoNames(), ", "))
	}
	return data, nil
}
