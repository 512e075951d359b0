package segment

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSegmentJSON(t *testing.T) {
	data, err := json.Marshal(Segment{Start: 1.3, End: 1.8, Speaker: 2})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "[1.3,1.8,2]" {
		t.Errorf("Marshal() = %s, want [1.3,1.8,2]", data)
	}
}

func TestSegmentUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too few fields", `[0, 1]`},
		{"string bound", `["0", 1, 0]`},
		{"string speaker", `[0, 1, "A"]`},
		{"fractional speaker", `[0, 1, 1.5]`},
		{"negative speaker", `[0, 1, -1]`},
		{"negative start", `[-0.5, 1, 0]`},
		{"object", `{"start": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Segment
			err := json.Unmarshal([]byte(tt.input), &s)
			if !errors.Is(err, ErrInvalidSegment) {
				t.Errorf("Unmarshal(%s) error = %v, want ErrInvalidSegment", tt.input, err)
			}
		})
	}
}

func TestRawUnmarshalLabels(t *testing.T) {
	var raws []Raw
	input := `[[0.5, 1.25, "SPEAKER_01"], [2, 3, 4]]`
	if err := json.Unmarshal([]byte(input), &raws); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := []Raw{
		{Start: 0.5, End: 1.25, Label: "SPEAKER_01"},
		{Start: 2, End: 3, Label: "4"},
	}
	if !reflect.DeepEqual(raws, want) {
		t.Errorf("Unmarshal() = %v, want %v", raws, want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	res, err := Normalize([]Raw{
		{Start: 0.0, End: 1.3, Label: "A"},
		{Start: 1.3, End: 2.0, Label: "B"},
		{Start: 0.1234, End: 0.9, Label: "C"},
	}, 0.2, Options{})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "nested", "segments.json")
	if err := Save(path, res.Segments); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, res.Segments) {
		t.Errorf("round trip changed values:\n%v\n%v", got, res.Segments)
	}
}

func TestSaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segments.json")
	if err := Save(path, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
	if _, err := LoadRaw(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadRaw() should fail for a missing file")
	}

	path := filepath.Join(t.TempDir(), "negative.json")
	if err := os.WriteFile(path, []byte(`[[0, 0.5, 0], [-1.0, 0.5, 1]]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidSegment) {
		t.Errorf("Load() error = %v, want ErrInvalidSegment for a negative start", err)
	}
}

func TestSpeakers(t *testing.T) {
	segs := []Segment{{0, 1, 2}, {1, 2, 0}, {2, 3, 2}, {3, 4, 5}}
	if got := Speakers(segs); !reflect.DeepEqual(got, []int{0, 2, 5}) {
		t.Errorf("Speakers() = %v, want [0 2 5]", got)
	}
}

func TestClean(t *testing.T) {
	segs := []Segment{{0, 1, 0}, {1, 1, 0}, {3, 2, 1}, {4, 5, 1}}
	kept, dropped := Clean(segs)
	if dropped != 2 || len(kept) != 2 {
		t.Errorf("Clean() kept %v dropped %d, want 2 and 2", kept, dropped)
	}
}

func TestIdentityMap(t *testing.T) {
	m := NewIdentityMap()
	if m.Assign("x") != 0 || m.Assign("y") != 1 || m.Assign("x") != 0 {
		t.Error("Assign() should hand out dense IDs by first sight")
	}
	if l, ok := m.Label(1); !ok || l != "y" {
		t.Errorf("Label(1) = %q, %v", l, ok)
	}
	if _, ok := m.Label(2); ok {
		t.Error("Label(2) should be unknown")
	}
	if _, ok := m.Lookup("z"); ok {
		t.Error("Lookup(z) should be unknown")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestSegmentString(t *testing.T) {
	if s := (Segment{Start: 1, End: 1.5, Speaker: 3}).String(); !strings.Contains(s, "speaker 3") {
		t.Errorf("String() = %q", s)
	}
}
