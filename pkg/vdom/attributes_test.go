package vdom

import "testing"

func TestAttributes(t *testing.T) {
	tests := []struct {
		name  string
		attr  Attr
		key   string
		value any
	}{
		{"Key", Key("row-1"), "key", "row-1"},
		{"ID", ID("main"), "id", "main"},
		{"Class single", Class("card"), "class", "card"},
		{"Class multiple", Class("card", "active"), "class", "card active"},
		{"ClassName", ClassName("a", "b"), "className", "a b"},
		{"StyleAttr", StyleAttr("color: red"), "style", "color: red"},
		{"Data", Data("id", "123"), "data-id", "123"},
		{"Role", Role("button"), "role", "button"},
		{"AriaLabel", AriaLabel("Close"), "aria-label", "Close"},
		{"TabIndex", TabIndex(-1), "tabindex", -1},
		{"TitleAttr", TitleAttr("Tooltip"), "title", "Tooltip"},
		{"Hidden", Hidden(), "hidden", true},
		{"Href", Href("/a"), "href", "/a"},
		{"Src", Src("/a.png"), "src", "/a.png"},
		{"Alt", Alt("logo"), "alt", "logo"},
		{"Name", Name("q"), "name", "q"},
		{"Value", Value("v"), "value", "v"},
		{"Type", Type("text"), "type", "text"},
		{"Placeholder", Placeholder("Search"), "placeholder", "Search"},
		{"Disabled", Disabled(), "disabled", true},
		{"Checked", Checked(), "checked", true},
		{"For", For("q"), "for", "q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key {
				t.Errorf("Key = %v, want %v", tt.attr.Key, tt.key)
			}
			if tt.attr.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.attr.Value, tt.value)
			}
		})
	}
}

func TestStyleAttr(t *testing.T) {
	a := Style(map[string]string{"fontSize": "12px"})
	m, ok := a.Value.(map[string]string)
	if !ok || m["fontSize"] != "12px" {
		t.Errorf("Style value = %#v", a.Value)
	}
}

func TestConditionalAttributes(t *testing.T) {
	if got := ClassIf(true, "on"); got.Key != "class" || got.Value != "on" {
		t.Errorf("ClassIf(true) = %+v", got)
	}
	if !ClassIf(false, "on").IsEmpty() {
		t.Error("ClassIf(false) should be empty")
	}
	if !AttrIf(false, ID("x")).IsEmpty() {
		t.Error("AttrIf(false) should be empty")
	}
	if got := AttrIf(true, ID("x")); got.Value != "x" {
		t.Errorf("AttrIf(true) = %+v", got)
	}
}

func TestClasses(t *testing.T) {
	got := Classes("btn", []string{"", "large"}, map[string]bool{"active": true, "hidden": false, "b": true})
	if got.Key != "className" {
		t.Errorf("Key = %v, want className", got.Key)
	}
	if got.Value != "btn large active b" {
		t.Errorf("Value = %q, want %q", got.Value, "btn large active b")
	}
}

func TestEmptyAttrIgnored(t *testing.T) {
	node := Div(Attr{}, ClassIf(false, "x"))
	if len(node.Props) != 0 {
		t.Errorf("Props = %v, want empty", node.Props)
	}
}
