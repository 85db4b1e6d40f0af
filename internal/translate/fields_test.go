package translate

import (
	"encoding/json"
	"testing"
)

func TestFieldValueUnmarshalJSON(t *testing.T) {
	var doc map[string]FieldValue
	raw := `{"title": "Hello", "tags": ["a", "b"], "price": 12.5, "summary": null}`
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !doc["title"].IsScalar() || doc["title"].String() != "Hello" {
		t.Fatalf("title: %+v", doc["title"])
	}
	if !doc["tags"].IsList() || len(doc["tags"].Strings()) != 2 {
		t.Fatalf("tags: %+v", doc["tags"])
	}
	if !doc["price"].IsOpaque() {
		t.Fatalf("price must be opaque: %+v", doc["price"])
	}
	if !doc["summary"].IsOpaque() || doc["summary"].Value() != nil {
		t.Fatalf("null must decode as opaque nil, got %+v", doc["summary"])
	}
}

func TestFieldValueMarshalRoundsTripNull(t *testing.T) {
	data, err := json.Marshal(Opaque(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Fatalf("got %s", data)
	}
}
