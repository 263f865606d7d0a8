package scenario

import (
	"bytes"
	"fmt"
	"io"
	"maps"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vreconcile/internal/errors"
	"github.com/vango-dev/vreconcile/pkg/vdom"
)

// Scenario is a named sequence of trees.
type Scenario struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []Step `yaml:"steps" json:"steps"`
}

// Step is one tree the UI renders.
type Step struct {
	Name string   `yaml:"name" json:"name"`
	Tree NodeSpec `yaml:"tree" json:"tree"`
}

// NodeSpec describes a node. Exactly one of Tag, Text or Fragment is set.
type NodeSpec struct {
	Tag      string         `yaml:"tag,omitempty" json:"tag,omitempty"`
	Key      string         `yaml:"key,omitempty" json:"key,omitempty"`
	Props    map[string]any `yaml:"props,omitempty" json:"props,omitempty"`
	Text     *string        `yaml:"text,omitempty" json:"text,omitempty"`
	Fragment bool           `yaml:"fragment,omitempty" json:"fragment,omitempty"`
	Children []NodeSpec     `yaml:"children,omitempty" json:"children,omitempty"`
}

// Parse decodes and validates a YAML scenario. Unknown fields are errors.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if err == io.EOF {
			return nil, errors.New("E501").WithDetail("empty document")
		}
		return nil, errors.New("E503").WithDetail(err.Error()).Wrap(err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks that the scenario has steps and that every node is well
// formed.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("E501").WithDetailf("scenario %q", s.Name)
	}
	for i, step := range s.Steps {
		if err := step.Tree.validate(fmt.Sprintf("steps[%d].tree", i)); err != nil {
			return err
		}
	}
	return nil
}

func (n *NodeSpec) validate(path string) error {
	set := 0
	if n.Tag != "" {
		set++
	}
	if n.Text != nil {
		set++
	}
	if n.Fragment {
		set++
	}
	if set != 1 {
		return errors.New("E502").WithDetailf("%s sets %d of tag, text and fragment", path, set)
	}
	if n.Text != nil && (len(n.Children) > 0 || len(n.Props) > 0) {
		return errors.New("E502").WithDetailf("%s: text nodes take no props or children", path)
	}
	if n.Fragment && len(n.Props) > 0 {
		return errors.New("E502").WithDetailf("%s: fragments take no props", path)
	}
	for i := range n.Children {
		if err := n.Children[i].validate(fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// Build turns the node description into a virtual tree. When rec is non-nil, every
// element reports its lifecycle hooks to it.
func (n *NodeSpec) Build(rec *Recorder) (*vdom.VNode, error) {
	if err := n.validate("tree"); err != nil {
		return nil, err
	}
	return n.build(rec)
}

func (n *NodeSpec) build(rec *Recorder) (*vdom.VNode, error) {
	if n.Text != nil {
		node := vdom.Text(*n.Text)
		node.Key = n.Key
		return node, nil
	}

	children := make([]any, len(n.Children))
	for i := range n.Children {
		child, err := n.Children[i].build(rec)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	props := make(vdom.Props, len(n.Props)+4)
	maps.Copy(props, n.Props)
	if n.Key != "" {
		props["key"] = n.Key
	}
	if n.Fragment {
		return vdom.Create(nil, props, children...)
	}
	if rec != nil {
		rec.hook(props, n.label())
	}
	return vdom.Create(n.Tag, props, children...)
}

func (n *NodeSpec) label() string {
	if n.Key == "" {
		return n.Tag
	}
	return n.Tag + "#" + n.Key
}

// Recorder collects the lifecycle hooks fired by built trees, in order.
type Recorder struct {
	events []string
}

func (r *Recorder) hook(props vdom.Props, label string) {
	props["onMount"] = func(vdom.Props) { r.add("mount " + label) }
	props["onUnmount"] = func() { r.add("unmount " + label) }
	props["onUpdate"] = func(prev, next vdom.Props) { r.add("update " + label) }
}

func (r *Recorder) add(event string) {
	r.events = append(r.events, event)
}

// Events returns the recorded events.
func (r *Recorder) Events() []string {
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Reset clears the recorded events.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
}
