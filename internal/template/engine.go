package template

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Context is implemented by every per-template context type under
// internal/project/context. ToMap serializes the context's validated
// C1-typed fields into the key/value structure the engine executes the
// template against; this is the "context serializes to a key/value
// structure" contract of spec.md C2.
type Context interface {
	ToMap() (map[string]any, error)
}

// Engine renders `{{ variable }}` / `{% control %}` templates. The spec's
// Tera/Jinja-family syntax is expressed with stdlib text/template's own
// `{{ }}` actions (its `{{if}}`/`{{range}}` forms stand in for `{% if %}`/
// `{% for %}`); Engine additionally treats any reference to an undefined
// variable as an error, even against an otherwise well-formed template, by
// combining Option("missingkey=error") with a panic recovery around
// Execute so a field miss on a struct-shaped context surfaces the same way
// a missing map key does.
type Engine struct {
	funcs template.FuncMap
}

// NewEngine returns an Engine pre-loaded with the sprig function library.
func NewEngine() *Engine {
	return &Engine{funcs: sprig.TxtFuncMap()}
}

// Render parses rawTemplate (named name, for error messages) and executes
// it against ctx's serialized map. It never writes anything; the caller
// (Wrapper) caches the result.
func (e *Engine) Render(name, rawTemplate string, ctx Context) (content string, err error) {
	data, serErr := ctx.ToMap()
	if serErr != nil {
		return "", newError(KindContextSerialization, name, serErr)
	}

	tpl, parseErr := template.New(name).Option("missingkey=error").Funcs(e.funcs).Parse(rawTemplate)
	if parseErr != nil {
		return "", newError(KindMalformedSyntax, name, parseErr)
	}

	defer func() {
		if r := recover(); r != nil {
			err = newError(KindUndefinedVariable, name, fmt.Errorf("%v", r))
		}
	}()

	var buf bytes.Buffer
	if execErr := tpl.Execute(&buf, data); execErr != nil {
		return "", newError(KindUndefinedVariable, name, execErr)
	}
	return buf.String(), nil
}

// Wrapper binds one template file to one Context and renders it exactly
// once, at construction, caching the bytes. A render failure is returned
// from NewWrapper and no Wrapper value is produced; a successful Wrapper's
// Render(outputPath) is therefore a pure I/O write, never a rendering
// operation.
type Wrapper struct {
	name    string
	content string
}

// NewWrapper renders rawTemplate (named name) against ctx using engine,
// caching the result.
func NewWrapper(engine *Engine, name, rawTemplate string, ctx Context) (*Wrapper, error) {
	content, err := engine.Render(name, rawTemplate, ctx)
	if err != nil {
		return nil, err
	}
	return &Wrapper{name: name, content: content}, nil
}

// Content returns the cached rendered bytes.
func (w *Wrapper) Content() string { return w.content }

// Render writes the cached content to outputPath, creating its parent
// directory if missing.
func (w *Wrapper) Render(outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return newError(KindDirectoryCreation, w.name, err)
	}
	if err := os.WriteFile(outputPath, []byte(w.content), 0o644); err != nil {
		return newError(KindFileWrite, w.name, err)
	}
	return nil
}
