package httpx

import (
	"encoding/json"
	"testing"
)

func TestOrderedFieldsMarshalKeepsOrder(t *testing.T) {
	fields := orderedFields{
		{field: "username", message: "Username cannot be null"},
		{field: "email", message: "E-mail cannot be null"},
		{field: "password", message: "Password cannot be null"},
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"username":"Username cannot be null","email":"E-mail cannot be null","password":"Password cannot be null"}`
	if string(raw) != want {
		t.Fatalf("marshal = %s, want %s", raw, want)
	}
}

func TestOrderedFieldsMarshalEmpty(t *testing.T) {
	raw, err := json.Marshal(orderedFields{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != "{}" {
		t.Fatalf("marshal = %s, want {}", raw)
	}
}

func TestOrderedFieldsEscapesMessages(t *testing.T) {
	fields := orderedFields{{field: "email", message: `say "hi"`}}
	raw, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var parsed map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if parsed["email"] != `say "hi"` {
		t.Fatalf("unexpected roundtrip: %q", parsed["email"])
	}
}
