package scenario

import (
	"errors"
	"strings"
	"testing"

	verrors "github.com/vango-dev/vreconcile/internal/errors"
	"github.com/vango-dev/vreconcile/pkg/host/memdom"
	"github.com/vango-dev/vreconcile/pkg/reconcile"
	"github.com/vango-dev/vreconcile/pkg/vdom"
)

const listScenario = `
name: keyed-list
description: swap, then replace an item
steps:
  - name: initial
    tree:
      tag: ul
      children:
        - {tag: li, key: a, children: [{text: A}]}
        - {tag: li, key: b, children: [{text: B}]}
  - name: swapped
    tree:
      tag: ul
      children:
        - {tag: li, key: b, children: [{text: B}]}
        - {tag: li, key: a, children: [{text: A}]}
  - name: replaced
    tree:
      tag: ul
      children:
        - {tag: li, key: b, children: [{text: B}]}
        - {tag: li, key: c, children: [{text: C}]}
`

func isCode(err error, code string) bool {
	return errors.Is(err, verrors.New(code))
}

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(listScenario))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sc.Name != "keyed-list" {
		t.Errorf("Name = %q, want keyed-list", sc.Name)
	}
	if len(sc.Steps) != 3 {
		t.Fatalf("len(Steps) = %d, want 3", len(sc.Steps))
	}
	first := sc.Steps[0].Tree.Children[0]
	if first.Tag != "li" || first.Key != "a" {
		t.Errorf("first child = %s#%s, want li#a", first.Tag, first.Key)
	}
	if text := first.Children[0].Text; text == nil || *text != "A" {
		t.Errorf("first child text = %v, want A", text)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		code   string
		detail string
	}{
		{
			name: "empty document",
			doc:  "",
			code: "E501",
		},
		{
			name: "no steps",
			doc:  "name: nothing\n",
			code: "E501",
		},
		{
			name: "unknown field",
			doc:  "name: x\nsteps:\n  - name: s\n    tree: {tag: div, colour: red}\n",
			code: "E503",
		},
		{
			name: "malformed yaml",
			doc:  "steps: [\n",
			code: "E503",
		},
		{
			name:   "tag and text",
			doc:    "steps:\n  - tree:\n      tag: div\n      children:\n        - {text: a}\n        - {tag: p, text: b}\n",
			code:   "E502",
			detail: "steps[0].tree.children[1]",
		},
		{
			name:   "empty node",
			doc:    "steps:\n  - tree: {tag: div}\n  - tree: {}\n",
			code:   "E502",
			detail: "steps[1].tree",
		},
		{
			name:   "text with children",
			doc:    "steps:\n  - tree: {text: a, children: [{text: b}]}\n",
			code:   "E502",
			detail: "text nodes",
		},
		{
			name:   "fragment with props",
			doc:    "steps:\n  - tree: {fragment: true, props: {id: x}}\n",
			code:   "E502",
			detail: "fragments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !isCode(err, tt.code) {
				t.Fatalf("Parse() error = %v, want %s", err, tt.code)
			}
			if tt.detail != "" && !strings.Contains(err.Error(), tt.detail) {
				t.Errorf("error %q should mention %q", err, tt.detail)
			}
		})
	}
}

func str(s string) *string { return &s }

func TestBuild(t *testing.T) {
	ns := NodeSpec{
		Tag: "div",
		Props: map[string]any{
			"className": "box",
			"style":     map[string]any{"fontSize": "12px"},
		},
		Children: []NodeSpec{
			{Text: str("x")},
			{Fragment: true, Children: []NodeSpec{
				{Tag: "span", Key: "s", Children: []NodeSpec{{Text: str("y")}}},
				{Tag: "br"},
			}},
		},
	}

	node, err := ns.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if node.Kind != vdom.KindElement || len(node.Children) != 2 {
		t.Fatalf("Build() = %s with %d children, want element with 2", node.Kind, len(node.Children))
	}
	if frag := node.Children[1]; !frag.IsFragment() || frag.Children[0].Key != "s" {
		t.Errorf("second child should be a fragment holding key s")
	}

	doc := memdom.New()
	root := doc.NewContainer("div")
	e := reconcile.New(doc, reconcile.WithLogger(quietLogger()))
	if err := e.Render(node, root); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `<div class="box" style="font-size:12px;">x<span>y</span><br></div>`
	if got := root.InnerHTML(); got != want {
		t.Errorf("InnerHTML() = %s\nwant %s", got, want)
	}
}

func TestBuildRejectsInvalidNode(t *testing.T) {
	ns := NodeSpec{Tag: "div", Children: []NodeSpec{{Tag: "p", Fragment: true}}}
	if _, err := ns.Build(nil); !isCode(err, "E502") {
		t.Errorf("Build() error = %v, want E502", err)
	}
}

func TestBuildBadHookProp(t *testing.T) {
	ns := NodeSpec{Tag: "div", Props: map[string]any{"onMount": "alert(1)"}}
	if _, err := ns.Build(nil); !isCode(err, "E102") {
		t.Errorf("Build() error = %v, want E102", err)
	}
}

func TestRecorder(t *testing.T) {
	ns := NodeSpec{Tag: "ul", Children: []NodeSpec{{Tag: "li", Key: "a"}}}
	rec := &Recorder{}
	node, err := ns.Build(rec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	doc := memdom.New()
	root := doc.NewContainer("div")
	e := reconcile.New(doc, reconcile.WithLogger(quietLogger()))
	if err := e.Render(node, root); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := e.Unmount(node); err != nil {
		t.Fatalf("Unmount: %v", err)
	}

	want := []string{"mount li#a", "mount ul", "unmount li#a", "unmount ul"}
	got := rec.Events()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Events() = %v, want %v", got, want)
	}
	rec.Reset()
	if len(rec.Events()) != 0 {
		t.Error("Reset() should clear events")
	}
}
