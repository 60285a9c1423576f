package template

import "testing"

type mapContext map[string]any

func (m mapContext) ToMap() (map[string]any, error) { return m, nil }

func TestRenderIsDeterministic(t *testing.T) {
	engine := NewEngine()
	ctx := mapContext{"name": "test-a", "port": 6969}

	first, err := engine.Render("t", "env={{ .name }} port={{ .port }}", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	second, err := engine.Render("t", "env={{ .name }} port={{ .port }}", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if first != second {
		t.Fatalf("expected deterministic rendering, got %q != %q", first, second)
	}
	if first != "env=test-a port=6969" {
		t.Fatalf("unexpected render: %q", first)
	}
}

func TestRenderUndefinedVariableIsAlwaysAnError(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Render("t", "{{ .missing }}", mapContext{"name": "test-a"})
	if err == nil {
		t.Fatal("expected an error referencing an undefined variable")
	}
	var tplErr *Error
	if !asError(err, &tplErr) {
		t.Fatalf("expected *template.Error, got %T", err)
	}
	if tplErr.Kind != KindUndefinedVariable {
		t.Fatalf("expected KindUndefinedVariable, got %s", tplErr.Kind)
	}
}

func asError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if ok {
		*target = e
	}
	return ok
}
