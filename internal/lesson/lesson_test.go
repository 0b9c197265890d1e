package lesson

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestActivityUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Activity
	}{
		{
			name:  "bare string",
			input: `"Lecture"`,
			want:  Activity{Raw: "Lecture"},
		},
		{
			name:  "full object",
			input: `{"time":"9:00","name":"Bell Ringer","description":"Write a reflection"}`,
			want:  Activity{Time: "9:00", Name: "Bell Ringer", Description: "Write a reflection"},
		},
		{
			name:  "duration alias for time",
			input: `{"duration":"10 min","name":"Warm-up"}`,
			want:  Activity{Time: "10 min", Name: "Warm-up"},
		},
		{
			name:  "activity alias for name",
			input: `{"time":"9:00","activity":"Group Work"}`,
			want:  Activity{Time: "9:00", Name: "Group Work"},
		},
		{
			name:  "time wins over duration",
			input: `{"time":"9:00","duration":"10 min","name":"Warm-up"}`,
			want:  Activity{Time: "9:00", Name: "Warm-up"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Activity
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestActivityMarshal(t *testing.T) {
	raw, err := json.Marshal(Activity{Raw: "Lecture"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"Lecture"` {
		t.Errorf("raw form = %s, want %q", raw, "Lecture")
	}

	obj, err := json.Marshal(Activity{Time: "9:00", Name: "Bell Ringer"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"time":"9:00","name":"Bell Ringer"}`
	if string(obj) != want {
		t.Errorf("object form = %s, want %s", obj, want)
	}
}

func TestDifferentiationUnmarshal(t *testing.T) {
	var asString Differentiation
	if err := json.Unmarshal([]byte(`"Flexible grouping."`), &asString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if asString.Text != "Flexible grouping." || len(asString.Levels) != 0 {
		t.Errorf("string form = %+v", asString)
	}

	var asMap Differentiation
	input := `{"Visual":"shot diagrams","Advanced":"extension list","ELL":"frames"}`
	if err := json.Unmarshal([]byte(input), &asMap); err != nil {
		t.Fatalf("unmarshal object: %v", err)
	}
	want := []DifferentiationLevel{
		{Level: "Visual", Strategy: "shot diagrams"},
		{Level: "Advanced", Strategy: "extension list"},
		{Level: "ELL", Strategy: "frames"},
	}
	if !reflect.DeepEqual(asMap.Levels, want) {
		t.Errorf("levels = %+v, want %+v (input order must be preserved)", asMap.Levels, want)
	}

	var asNull Differentiation
	if err := json.Unmarshal([]byte(`null`), &asNull); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !asNull.Empty() {
		t.Errorf("null form should be empty, got %+v", asNull)
	}
}

func TestDifferentiationRoundTrip(t *testing.T) {
	input := `{"Zeta":"z","Alpha":"a","Mid":"m"}`
	var d Differentiation
	if err := json.Unmarshal([]byte(input), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != input {
		t.Errorf("round trip = %s, want %s", out, input)
	}
}

func TestVocabularyUnmarshalPreservesOrder(t *testing.T) {
	input := `{"wide shot":"a distant framing","close-up":"a tight framing","aperture":"lens opening"}`
	var v Vocabulary
	if err := json.Unmarshal([]byte(input), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := Vocabulary{
		{Term: "wide shot", Definition: "a distant framing"},
		{Term: "close-up", Definition: "a tight framing"},
		{Term: "aperture", Definition: "lens opening"},
	}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("vocabulary = %+v, want %+v", v, want)
	}

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != input {
		t.Errorf("round trip = %s, want %s", out, input)
	}
}

func TestWeekUnmarshal(t *testing.T) {
	input := `{
		"week": 3,
		"unit": "Camera Basics",
		"week_overview": "Intro to framing.",
		"days": [
			{
				"topic": "Camera Angles",
				"objectives": ["Students will identify three camera angles"],
				"schedule": [
					{"time": "9:00", "name": "Bell Ringer", "description": "Write a reflection"},
					"Lecture"
				],
				"differentiation": {"ELL": "sentence frames"}
			}
		]
	}`

	var w Week
	if err := json.Unmarshal([]byte(input), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Week != 3 || w.Unit != "Camera Basics" {
		t.Errorf("header = week %d unit %q", w.Week, w.Unit)
	}
	if len(w.Days) != 1 {
		t.Fatalf("days = %d, want 1", len(w.Days))
	}
	day := w.Days[0]
	if day.Topic != "Camera Angles" {
		t.Errorf("topic = %q", day.Topic)
	}
	if len(day.Schedule) != 2 || day.Schedule[0].Name != "Bell Ringer" || day.Schedule[1].Raw != "Lecture" {
		t.Errorf("schedule = %+v", day.Schedule)
	}
	if day.Differentiation.Get("ELL") != "sentence frames" {
		t.Errorf("differentiation = %+v", day.Differentiation)
	}
}
