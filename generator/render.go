package generator

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/openwx/wxcharts/feed"
)

//go:embed templates/*.json.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("feed").
	Funcs(sprig.TxtFuncMap()).
	ParseFS(templateFS, "templates/*.json.tmpl"))

// render executes the window's template over the document.
func render(w feed.Window, doc *feed.Document) ([]byte, error) {
	var buf bytes.Buffer
	name := string(w) + ".json.tmpl"
	if err := templates.ExecuteTemplate(&buf, name, map[string]interface{}{
		"Document": doc,
	}); err != nil {
		return nil, fmt.Errorf("render %s: %w", w, err)
	}
	return buf.Bytes(), nil
}

// writeAtomic writes data into dir/name via a temporary file and rename,
// so readers never observe a partial document.
func writeAtomic(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, name+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(dir, name))
}
