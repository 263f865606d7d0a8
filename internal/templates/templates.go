package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/vreconcile/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// Name is the scenario name. Defaults to the template name.
	Name string

	// Description overrides the template's description.
	Description string
}

// Template is a set of scenario files.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files maps relative paths to file contents. Both are executed as
	// text/template with Config.
	Files map[string]string
}

var templates = map[string]*Template{
	"keyed":      keyedTemplate(),
	"attributes": attributesTemplate(),
	"fragments":  fragmentsTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E505").WithDetailf("template %q", name)
	}
	return tmpl, nil
}

// List returns all template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create writes the template's files into dir and returns their paths in
// sorted order.
func (t *Template) Create(dir string, cfg Config) ([]string, error) {
	if cfg.Name == "" {
		cfg.Name = t.Name
	}
	if cfg.Description == "" {
		cfg.Description = t.Description
	}

	relPaths := make([]string, 0, len(t.Files))
	for relPath := range t.Files {
		relPaths = append(relPaths, relPath)
	}
	sort.Strings(relPaths)

	written := make([]string, 0, len(relPaths))
	for _, relPath := range relPaths {
		name, err := execute(relPath, relPath, cfg)
		if err != nil {
			return written, err
		}
		content, err := execute(relPath, t.Files[relPath], cfg)
		if err != nil {
			return written, err
		}

		fullPath := filepath.Join(dir, string(name))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return written, err
		}
		if err := os.WriteFile(fullPath, content, 0644); err != nil {
			return written, err
		}
		written = append(written, fullPath)
	}
	return written, nil
}

func execute(name, text string, cfg Config) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, errors.Newf(errors.CategoryScenario, "invalid template %s: %v", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return nil, errors.Newf(errors.CategoryScenario, "template execute error %s: %v", name, err)
	}
	return buf.Bytes(), nil
}

func keyedTemplate() *Template {
	return &Template{
		Name:        "keyed",
		Description: "Reorder a keyed list, then replace one item.",
		Files: map[string]string{
			"{{.Name}}.yaml": `name: {{.Name}}
description: {{.Description}}
steps:
  - name: initial
    tree:
      tag: ul
      props: {className: todo}
      children:
        - {tag: li, key: a, children: [{text: Write}]}
        - {tag: li, key: b, children: [{text: Review}]}
        - {tag: li, key: c, children: [{text: Ship}]}
  - name: reversed
    tree:
      tag: ul
      props: {className: todo}
      children:
        - {tag: li, key: c, children: [{text: Ship}]}
        - {tag: li, key: b, children: [{text: Review}]}
        - {tag: li, key: a, children: [{text: Write}]}
  - name: replaced
    tree:
      tag: ul
      props: {className: "todo done"}
      children:
        - {tag: li, key: c, children: [{text: Ship}]}
        - {tag: li, key: d, children: [{text: Celebrate}]}
`,
		},
	}
}

func attributesTemplate() *Template {
	return &Template{
		Name:        "attributes",
		Description: "Add, change and drop element properties.",
		Files: map[string]string{
			"{{.Name}}.yaml": `name: {{.Name}}
description: {{.Description}}
steps:
  - name: initial
    tree:
      tag: button
      props: {className: btn, title: Save}
      children: [{text: Save}]
  - name: styled
    tree:
      tag: button
      props:
        className: "btn primary"
        title: Save
        style: {fontSize: 14px, color: navy}
      children: [{text: Save}]
  - name: disabled
    tree:
      tag: button
      props: {className: btn, disabled: true}
      children: [{text: Saving}]
`,
		},
	}
}

func fragmentsTemplate() *Template {
	return &Template{
		Name:        "fragments",
		Description: "Move and reshape fragment groups.",
		Files: map[string]string{
			"{{.Name}}.yaml": `name: {{.Name}}
description: {{.Description}}
steps:
  - name: initial
    tree:
      tag: dl
      children:
        - fragment: true
          key: go
          children: [{tag: dt, children: [{text: Go}]}, {tag: dd, children: [{text: gopher}]}]
        - fragment: true
          key: rust
          children: [{tag: dt, children: [{text: Rust}]}, {tag: dd, children: [{text: crab}]}]
  - name: swapped
    tree:
      tag: dl
      children:
        - fragment: true
          key: rust
          children: [{tag: dt, children: [{text: Rust}]}, {tag: dd, children: [{text: crab}]}]
        - fragment: true
          key: go
          children: [{tag: dt, children: [{text: Go}]}, {tag: dd, children: [{text: gopher}]}]
  - name: flattened
    tree:
      tag: dl
      children:
        - {tag: dt, key: rust, children: [{text: Rust}]}
        - fragment: true
          key: go
          children: [{tag: dt, children: [{text: Go}]}]
`,
		},
	}
}
