package vdom

import "testing"

func TestCreateElement(t *testing.T) {
	t.Run("basic element", func(t *testing.T) {
		node := Div()
		if node.Kind != KindElement {
			t.Errorf("Kind = %v, want KindElement", node.Kind)
		}
		if node.Tag != "div" {
			t.Errorf("Tag = %v, want div", node.Tag)
		}
	})

	t.Run("with multiple attributes", func(t *testing.T) {
		node := Div(ClassName("card"), ID("main"))
		if node.Props["className"] != "card" {
			t.Errorf("className = %v, want card", node.Props["className"])
		}
		if node.Props["id"] != "main" {
			t.Errorf("id = %v, want main", node.Props["id"])
		}
	})

	t.Run("with key", func(t *testing.T) {
		node := Li(Key("row-7"), "seven")
		if node.Key != "row-7" {
			t.Errorf("Key = %q, want row-7", node.Key)
		}
		if _, ok := node.Props["key"]; ok {
			t.Error("key leaked into Props")
		}
	})

	t.Run("with child nodes", func(t *testing.T) {
		node := Div(H1("Title"), P(Text("Content")))
		if len(node.Children) != 2 {
			t.Fatalf("Children len = %v, want 2", len(node.Children))
		}
		if node.Children[0].Tag != "h1" || node.Children[1].Tag != "p" {
			t.Errorf("Children tags = %v, %v", node.Children[0].Tag, node.Children[1].Tag)
		}
		if node.Children[1].Key != "1" {
			t.Errorf("second child key = %q, want positional 1", node.Children[1].Key)
		}
	})

	t.Run("with string shorthand", func(t *testing.T) {
		node := Div("Hello")
		if node.Children[0].Kind != KindText || node.Children[0].Text != "Hello" {
			t.Errorf("child = %+v, want text Hello", node.Children[0])
		}
	})

	t.Run("nil becomes placeholder", func(t *testing.T) {
		node := Div(nil, Class("test"), Span())
		if len(node.Children) != 2 {
			t.Fatalf("Children len = %v, want 2", len(node.Children))
		}
		if !node.Children[0].IsEmpty() {
			t.Error("nil child should normalize to an empty fragment")
		}
		if node.Children[1].Key != "1" {
			t.Errorf("span key = %q, want 1", node.Children[1].Key)
		}
	})

	t.Run("props map merged", func(t *testing.T) {
		node := Div(Props{"title": "t", "key": "k"})
		if node.Props["title"] != "t" || node.Key != "k" {
			t.Errorf("Props = %v Key = %q", node.Props, node.Key)
		}
	})
}

func TestVoidElements(t *testing.T) {
	for _, tag := range []string{"br", "hr", "img", "input", "meta", "link"} {
		if !IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = false, want true", tag)
		}
	}
	for _, tag := range []string{"div", "span", "li"} {
		if IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = true, want false", tag)
		}
	}
}

func TestAllElements(t *testing.T) {
	tests := []struct {
		fn  func(...any) *VNode
		tag string
	}{
		{Header, "header"}, {Footer, "footer"}, {Main, "main"}, {Nav, "nav"},
		{Section, "section"}, {Article, "article"}, {H1, "h1"}, {H2, "h2"}, {H3, "h3"},
		{Div, "div"}, {P, "p"}, {Span, "span"}, {Ul, "ul"}, {Ol, "ol"}, {Li, "li"},
		{Hr, "hr"}, {Br, "br"}, {A, "a"}, {Strong, "strong"}, {Em, "em"},
		{Code, "code"}, {Img, "img"}, {Form, "form"}, {Input, "input"},
		{Textarea, "textarea"}, {Select, "select"}, {Option, "option"},
		{Button, "button"}, {Label, "label"}, {Table, "table"}, {Thead, "thead"},
		{Tbody, "tbody"}, {Tr, "tr"}, {Th, "th"}, {Td, "td"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := tt.fn().Tag; got != tt.tag {
				t.Errorf("Tag = %v, want %v", got, tt.tag)
			}
		})
	}
}

func TestCustomElement(t *testing.T) {
	node := El("my-widget", Data("x", "1"))
	if node.Tag != "my-widget" || node.Props["data-x"] != "1" {
		t.Errorf("El = %+v", node)
	}
}

func TestTextf(t *testing.T) {
	if got := Textf("%d items", 3).Text; got != "3 items" {
		t.Errorf("Textf = %q, want %q", got, "3 items")
	}
}
