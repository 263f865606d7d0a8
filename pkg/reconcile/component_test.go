package reconcile

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vreconcile/pkg/host/memdom"
	"github.com/vango-dev/vreconcile/pkg/vdom"
)

func TestCounterComponentUpdate(t *testing.T) {
	e, doc, root := newTestEngine(t)

	type change struct{ Prev, Next any }
	var changes []change
	var self *vdom.Instance

	view := func(n int) *vdom.VNode {
		return vdom.Div(
			vdom.Data("count", strconv.Itoa(n)),
			vdom.OnUpdate(func(prev, next vdom.Props) {
				changes = append(changes, change{prev["data-count"], next["data-count"]})
			}),
			vdom.Span("Count: "),
			vdom.Span(vdom.Textf("%d", n)),
		)
	}
	counter := func(props vdom.Props, inst *vdom.Instance) *vdom.VNode {
		self = inst
		return view(0)
	}

	tree := vdom.Div(
		vdom.P(vdom.Key("before"), "sibling"),
		vdom.Comp(counter, nil),
		vdom.P(vdom.Key("after"), "sibling"),
	)
	mustRender(t, e, tree, root)
	doc.Journal().Reset()

	next := view(1)
	if err := self.Update(next); err != nil {
		t.Fatalf("Update: %v", err)
	}

	j := doc.Journal()
	if got := j.Len(); got != 2 {
		t.Errorf("host ops = %d, want 2: %v", got, j.Strings())
	}
	if got := j.Count(memdom.OpSetAttribute); got != 1 {
		t.Errorf("setAttribute calls = %d, want 1", got)
	}
	if got := j.Count(memdom.OpSetText); got != 1 {
		t.Errorf("setText calls = %d, want 1", got)
	}
	if diff := cmp.Diff([]change{{"0", "1"}}, changes); diff != "" {
		t.Errorf("update hook calls mismatch (-want +got):\n%s", diff)
	}
	want := `<div><p>sibling</p><div data-count="1"><span>Count: </span><span>1</span></div><p>sibling</p></div>`
	if got := root.InnerHTML(); got != want {
		t.Errorf("InnerHTML() = %s\nwant %s", got, want)
	}
	if self.Rendered() != next {
		t.Error("Rendered() should return the updated subtree")
	}
}

func TestInstanceUpdateFromEventHandler(t *testing.T) {
	e, doc, root := newTestEngine(t)

	counter := func(props vdom.Props, self *vdom.Instance) *vdom.VNode {
		count := 0
		var view func() *vdom.VNode
		view = func() *vdom.VNode {
			return vdom.Button(vdom.OnClick(func() {
				count++
				if err := self.Update(view()); err != nil {
					t.Errorf("Update: %v", err)
				}
			}), vdom.Textf("%d", count))
		}
		return view()
	}
	tree := vdom.Comp(counter, nil)
	mustRender(t, e, tree, root)

	btn := hostOf(t, e, tree)
	for i := 0; i < 3; i++ {
		doc.Dispatch(btn, "click", nil)
	}
	if got := root.InnerHTML(); got != "<button>3</button>" {
		t.Errorf("InnerHTML() = %s, want <button>3</button>", got)
	}
	if hostOf(t, e, tree) != btn {
		t.Error("the button should be patched in place")
	}
}

func TestInstanceSetProps(t *testing.T) {
	e, _, root := newTestEngine(t)

	greet := func(props vdom.Props, _ *vdom.Instance) *vdom.VNode {
		return vdom.P(vdom.Textf("Hello, %v", props["name"]))
	}
	tree := vdom.Comp(greet, vdom.Props{"name": "Ada"})
	mustRender(t, e, tree, root)

	if err := tree.Instance.SetProps(vdom.Props{"name": "Grace"}); err != nil {
		t.Fatalf("SetProps: %v", err)
	}
	if got := root.InnerHTML(); got != "<p>Hello, Grace</p>" {
		t.Errorf("InnerHTML() = %s, want <p>Hello, Grace</p>", got)
	}
	if got := tree.Instance.Props()["name"]; got != "Grace" {
		t.Errorf("Props()[name] = %v, want Grace", got)
	}
}

func TestInstanceLifecycleErrors(t *testing.T) {
	comp := func(props vdom.Props, _ *vdom.Instance) *vdom.VNode {
		return vdom.Span("x")
	}

	tree := vdom.Comp(comp, nil)
	if err := tree.Instance.Update(vdom.Span("y")); !isCode(err, "E201") {
		t.Errorf("Update before mount err = %v, want E201", err)
	}

	e, _, root := newTestEngine(t)
	mustRender(t, e, tree, root)
	if !tree.Instance.Mounted() {
		t.Fatal("instance should be mounted")
	}
	if err := e.Unmount(tree); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	if err := tree.Instance.Update(vdom.Span("y")); !isCode(err, "E202") {
		t.Errorf("Update after unmount err = %v, want E202", err)
	}
}

func TestComponentSkippedWhenUnchanged(t *testing.T) {
	e, doc, root := newTestEngine(t)

	shared := vdom.Span("static")
	static := func(props vdom.Props, _ *vdom.Instance) *vdom.VNode { return shared }

	var updates int
	build := func(n int) *vdom.VNode {
		return vdom.Comp(static, vdom.Props{
			"n":        n,
			"onUpdate": func() { updates++ },
		})
	}

	mustRender(t, e, build(1), root)
	doc.Journal().Reset()

	mustRender(t, e, build(1), root)
	if updates != 0 {
		t.Errorf("update hook fired %d times for an unchanged component", updates)
	}

	mustRender(t, e, build(2), root)
	if updates != 1 {
		t.Errorf("update hook fired %d times after a props change, want 1", updates)
	}
	if doc.Journal().Len() != 0 {
		t.Errorf("shared subtree should not be touched: %v", doc.Journal().Strings())
	}
}

func TestComponentReplacedWhenFunctionChanges(t *testing.T) {
	e, _, root := newTestEngine(t)

	var unmounted bool
	first := func(props vdom.Props, _ *vdom.Instance) *vdom.VNode {
		return vdom.P(vdom.OnUnmount(func() { unmounted = true }), "first")
	}
	second := func(props vdom.Props, _ *vdom.Instance) *vdom.VNode {
		return vdom.P("second")
	}

	old := vdom.Comp(first, nil)
	mustRender(t, e, vdom.Div(old), root)
	mustRender(t, e, vdom.Div(vdom.Comp(second, nil)), root)

	if !unmounted {
		t.Error("the old component's subtree should be unmounted")
	}
	if old.Instance.Mounted() {
		t.Error("the old instance should be retired")
	}
	if got := root.InnerHTML(); got != "<div><p>second</p></div>" {
		t.Errorf("InnerHTML() = %s", got)
	}
}

func TestParentRerenderForwardsInstance(t *testing.T) {
	e, _, root := newTestEngine(t)

	label := func(props vdom.Props, _ *vdom.Instance) *vdom.VNode {
		return vdom.Span(vdom.Textf("%v", props["text"]))
	}
	first := vdom.Comp(label, vdom.Props{"text": "a"})
	mustRender(t, e, vdom.Div(first), root)
	second := vdom.Comp(label, vdom.Props{"text": "b"})
	mustRender(t, e, vdom.Div(second), root)

	// The first instance now forwards to the live one.
	c := vdom.Span("c")
	if err := first.Instance.Update(c); err != nil {
		t.Fatalf("Update through a superseded instance: %v", err)
	}
	if got := root.InnerHTML(); got != "<div><span>c</span></div>" {
		t.Errorf("InnerHTML() = %s", got)
	}
	if second.Instance.Rendered() != c {
		t.Error("the live instance should record the new subtree")
	}
}

func TestUpdateDuringPassIsDeferred(t *testing.T) {
	e, _, root := newTestEngine(t)

	var self *vdom.Instance
	var hookErr error
	comp := func(props vdom.Props, inst *vdom.Instance) *vdom.VNode {
		self = inst
		return vdom.Span(vdom.OnMount(func(vdom.Props) {
			hookErr = self.Update(vdom.Span("1"))
		}), "0")
	}
	mustRender(t, e, vdom.Comp(comp, nil), root)

	if hookErr != nil {
		t.Fatalf("Update from a hook: %v", hookErr)
	}
	if got := root.InnerHTML(); got != "<span>1</span>" {
		t.Errorf("InnerHTML() = %s, want <span>1</span>", got)
	}
	s := e.Stats()
	if s.Deferred != 1 {
		t.Errorf("Deferred = %d, want 1", s.Deferred)
	}
	if s.Passes != 2 {
		t.Errorf("Passes = %d, want 2", s.Passes)
	}
}

func TestDeferredOverflow(t *testing.T) {
	e, _, root := newTestEngine(t, WithMaxDeferred(1))

	var errs []error
	comp := func(props vdom.Props, self *vdom.Instance) *vdom.VNode {
		return vdom.Span(vdom.OnMount(func(vdom.Props) {
			errs = append(errs, self.Update(vdom.Span("1")))
			errs = append(errs, self.Update(vdom.Span("2")))
		}), "0")
	}
	err := e.Render(vdom.Comp(comp, nil), root)

	if !isCode(err, "E203") {
		t.Errorf("Render err = %v, want E203", err)
	}
	if len(errs) != 2 || errs[0] != nil || !isCode(errs[1], "E203") {
		t.Errorf("Update errors = %v, want [nil E203]", errs)
	}
	if got := root.InnerHTML(); got != "<span>1</span>" {
		t.Errorf("InnerHTML() = %s, want <span>1</span>", got)
	}
}

func TestDeferredUpdatesAreBounded(t *testing.T) {
	e, _, root := newTestEngine(t, WithMaxDeferred(5))

	var self *vdom.Instance
	var view func(n int) *vdom.VNode
	view = func(n int) *vdom.VNode {
		// Every update schedules another from its update hook.
		return vdom.Span(vdom.OnUpdate(func(prev, next vdom.Props) {
			self.Update(view(n + 1))
		}), vdom.OnMount(func(vdom.Props) {
			self.Update(view(n + 1))
		}), vdom.Textf("%d", n))
	}
	comp := func(props vdom.Props, inst *vdom.Instance) *vdom.VNode {
		self = inst
		return view(0)
	}

	err := e.Render(vdom.Comp(comp, nil), root)
	if !isCode(err, "E203") {
		t.Errorf("Render err = %v, want E203", err)
	}
	if got := e.Stats().Deferred; got != 5 {
		t.Errorf("Deferred = %d, want 5", got)
	}
}
