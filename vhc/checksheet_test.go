package vhc

import "testing"

func TestParseChecksheet(t *testing.T) {
	raw := []byte(`{
		"sections": [
			{"name": "Brakes", "items": [
				{"slot": 1, "line": 2, "display_id": "12", "title": "Front pads", "status": "red", "measurement": "2mm"},
				{"title": "", "status": ""}
			]},
			{"name": "Tyres", "items": [
				{"title": "NSF tyre", "status": "amber", "notes": "outer edge wear"}
			]}
		]
	}`)
	sections, err := ParseChecksheet(raw)
	if err != nil {
		t.Fatalf("ParseChecksheet: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if len(sections[0].Items) != 1 {
		t.Fatalf("blank items should be dropped, got %d items", len(sections[0].Items))
	}
	it := sections[0].Items[0]
	if it.Slot != 1 || it.Line != 2 || it.DisplayId != "12" || it.Status != "red" {
		t.Fatalf("unexpected item: %+v", it)
	}
}

func TestParseChecksheet_Degrades(t *testing.T) {
	sections, err := ParseChecksheet([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if sections == nil || len(sections) != 0 {
		t.Fatalf("expected empty tree on malformed input, got %v", sections)
	}

	sections, err = ParseChecksheet(nil)
	if err != nil || len(sections) != 0 {
		t.Fatalf("empty payload should parse to empty tree, got (%v, %v)", sections, err)
	}
}
