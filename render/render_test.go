package render

import (
	"encoding/json"
	"testing"

	"github.com/orbitkit/orbit/internal/ident"
	"github.com/orbitkit/orbit/patch"
	"github.com/orbitkit/orbit/vtree"
)

func TestJSONAdapterElementShape(t *testing.T) {
	n := &vtree.ReconciledElement{
		Tag: "div",
		Key: "k1",
		Attrs: []vtree.Attribute{
			vtree.StaticAttr{Name: "class", Value: "x"},
			vtree.EventHandler{Kind: "click", ID: ident.ID("h1")},
		},
		Children: []vtree.Node{&vtree.ReconciledText{Text: "hi"}},
	}

	raw, err := MarshalJSON(n)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded["type"] != "div" {
		t.Fatalf("type = %v, want div", decoded["type"])
	}
	attrs := decoded["attrs"].(map[string]any)
	if attrs[KeyAttr] != "k1" {
		t.Fatalf("attrs[%s] = %v, want k1", KeyAttr, attrs[KeyAttr])
	}
	if attrs["class"] != "x" {
		t.Fatalf("attrs[class] = %v, want x", attrs["class"])
	}
	if attrs[EventAttrPrefix+"-click"] != "h1" {
		t.Fatalf("attrs[%s-click] = %v, want h1", EventAttrPrefix, attrs[EventAttrPrefix+"-click"])
	}
	if decoded["0"] != "hi" {
		t.Fatalf(`decoded["0"] = %v, want "hi"`, decoded["0"])
	}
}

func TestJSONAdapterComponentAndTextShape(t *testing.T) {
	n := &vtree.ReconciledComponent{Child: &vtree.ReconciledText{Text: "body"}}
	raw, err := MarshalJSON(n)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var decoded map[string]any
	json.Unmarshal(raw, &decoded)
	if decoded["type"] != "component" || decoded["0"] != "body" {
		t.Fatalf("decoded = %#v", decoded)
	}
}

func TestIdentityAdapterReturnsSameNode(t *testing.T) {
	n := &vtree.ReconciledText{Text: "x"}
	out, err := IdentityAdapter{}.Render(n)
	if err != nil || out != vtree.Node(n) {
		t.Fatalf("IdentityAdapter.Render = %v, %v", out, err)
	}
}

func TestPatchToJSONUpdateShape(t *testing.T) {
	p := &patch.Update{
		Attrs: []patch.AttrPatch{{Key: "static:class", Attr: vtree.StaticAttr{Name: "class", Value: "y"}}},
	}
	out := PatchToJSON(p).(map[string]any)
	if out["op"] != "update" {
		t.Fatalf("op = %v, want update", out["op"])
	}
	attrs := out["attrs"].([]map[string]any)
	if len(attrs) != 1 || attrs[0]["value"] != "y" {
		t.Fatalf("attrs = %#v", attrs)
	}
}

func TestPatchToJSONMoveShape(t *testing.T) {
	out := PatchToJSON(&patch.Move{From: 2, To: 0}).(map[string]any)
	if out["op"] != "move" || out["from"] != 2 || out["to"] != 0 {
		t.Fatalf("move shape = %#v", out)
	}
}
