package hook

import "testing"

func TestDecodeMouseEvent(t *testing.T) {
	payload := map[string]any{
		"clientX": float64(10), "clientY": float64(20),
		"button": float64(1), "ctrlKey": true,
	}
	ev := DecodeMouseEvent(payload)
	if ev.ClientX != 10 || ev.ClientY != 20 || ev.Button != 1 || !ev.CtrlKey || ev.ShiftKey {
		t.Fatalf("decoded MouseEvent = %+v", ev)
	}
}

func TestDecodeInputEventDefensiveOnMissingFields(t *testing.T) {
	ev := DecodeInputEvent("not a map")
	if ev.Value != "" || ev.InputType != "" {
		t.Fatalf("expected zero-valued InputEvent for a non-map payload, got %+v", ev)
	}
}

func TestDecodeFormDataDropsNonStringValues(t *testing.T) {
	payload := map[string]any{"name": "alice", "age": float64(9)}
	form := DecodeFormData(payload)
	if form["name"] != "alice" {
		t.Fatalf("form[name] = %q, want alice", form["name"])
	}
	if _, ok := form["age"]; ok {
		t.Fatalf("expected non-string field age to be dropped")
	}
}
