package hook

// MouseEvent, KeyboardEvent, InputEvent, and FormData give handler
// bodies typed access to a DOM event payload instead of a bare
// map[string]any, decoding fields on demand rather than eagerly
// validating a whole payload shape.
// ProcessEvent payloads arrive as whatever the transport decoded from
// JSON — typically map[string]any — so each Decode* helper reads fields
// defensively and zero-values anything missing or mistyped.

// MouseEvent is the decoded payload of a mouse DOM event.
type MouseEvent struct {
	ClientX, ClientY int
	Button           int
	CtrlKey          bool
	ShiftKey         bool
	AltKey           bool
	MetaKey          bool
}

// KeyboardEvent is the decoded payload of a keyboard DOM event.
type KeyboardEvent struct {
	Key      string
	Code     string
	CtrlKey  bool
	ShiftKey bool
	AltKey   bool
	MetaKey  bool
	Repeat   bool
}

// InputEvent is the decoded payload of an input/change DOM event.
type InputEvent struct {
	Value     string
	InputType string
}

// FormData is the decoded payload of a form submission event: field
// name to submitted string value.
type FormData map[string]string

func payloadMap(payload any) map[string]any {
	m, _ := payload.(map[string]any)
	return m
}

func fieldString(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func fieldInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func fieldBool(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

// DecodeMouseEvent reads a MouseEvent out of a raw ProcessEvent payload.
func DecodeMouseEvent(payload any) MouseEvent {
	m := payloadMap(payload)
	return MouseEvent{
		ClientX:  fieldInt(m, "clientX"),
		ClientY:  fieldInt(m, "clientY"),
		Button:   fieldInt(m, "button"),
		CtrlKey:  fieldBool(m, "ctrlKey"),
		ShiftKey: fieldBool(m, "shiftKey"),
		AltKey:   fieldBool(m, "altKey"),
		MetaKey:  fieldBool(m, "metaKey"),
	}
}

// DecodeKeyboardEvent reads a KeyboardEvent out of a raw ProcessEvent
// payload.
func DecodeKeyboardEvent(payload any) KeyboardEvent {
	m := payloadMap(payload)
	return KeyboardEvent{
		Key:      fieldString(m, "key"),
		Code:     fieldString(m, "code"),
		CtrlKey:  fieldBool(m, "ctrlKey"),
		ShiftKey: fieldBool(m, "shiftKey"),
		AltKey:   fieldBool(m, "altKey"),
		MetaKey:  fieldBool(m, "metaKey"),
		Repeat:   fieldBool(m, "repeat"),
	}
}

// DecodeInputEvent reads an InputEvent out of a raw ProcessEvent
// payload.
func DecodeInputEvent(payload any) InputEvent {
	m := payloadMap(payload)
	return InputEvent{
		Value:     fieldString(m, "value"),
		InputType: fieldString(m, "inputType"),
	}
}

// DecodeFormData reads a form submission payload into a flat field map,
// ignoring any non-string values.
func DecodeFormData(payload any) FormData {
	m := payloadMap(payload)
	data := make(FormData, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			data[k] = s
		}
	}
	return data
}
