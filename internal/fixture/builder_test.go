package fixture_test

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-autofixture/internal/fixture"
	"github.com/goliatone/go-autofixture/pkg/random"
	"github.com/goliatone/go-autofixture/pkg/spec"
)

type address struct {
	Street string `json:"street"`
	Number int    `json:"number"`
}

type person struct {
	Name    string    `json:"name"`
	Age     int       `json:"age"`
	Score   float64   `json:"score"`
	Active  bool      `json:"active"`
	Home    address   `json:"home"`
	Tags    []string  `json:"tags"`
	Friends []address `json:"friends"`
	Lucky   []int     `json:"lucky"`
	Hidden  string    `json:"-"`
	Plain   string
	secret  string
}

func samplePerson() person {
	return person{
		Name:    "template",
		Tags:    []string{"a"},
		Friends: []address{{Street: "x"}},
		Lucky:   []int{1},
		secret:  "kept out",
	}
}

func newSeededBuilder(seed int64) *fixture.Builder {
	return fixture.New(fixture.Options{Generator: random.New(random.WithSeed(seed))})
}

func isIntegral(v any) bool {
	f, ok := v.(float64)
	return ok && f == math.Trunc(f)
}

func mustCreate(t *testing.T, b *fixture.Builder, template any, specs spec.Map) *fixture.Record {
	t.Helper()
	record, err := b.Create(template, specs)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return record
}

func TestBuilder_CreateMirrorsTemplateShape(t *testing.T) {
	record := mustCreate(t, fixture.New(fixture.Options{}), samplePerson(), nil)

	want := []string{"name", "age", "score", "active", "home", "tags", "friends", "lucky", "Plain"}
	if diff := cmp.Diff(want, record.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	name, _ := record.Get("name")
	if s, ok := name.(string); !ok || len(s) != random.DefaultStringLength {
		t.Fatalf("expected 10 character name, got %#v", name)
	}
	age, _ := record.Get("age")
	if !isIntegral(age) {
		t.Fatalf("expected integral age, got %#v", age)
	}
	if score, _ := record.Get("score"); score.(float64) < 0 || score.(float64) >= 1000 {
		t.Fatalf("score out of default range: %v", score)
	}
	if active, _ := record.Get("active"); active == nil {
		t.Fatalf("expected active to be generated")
	} else if _, ok := active.(bool); !ok {
		t.Fatalf("expected bool, got %T", active)
	}

	homeValue, _ := record.Get("home")
	home, ok := homeValue.(*fixture.Record)
	if !ok {
		t.Fatalf("expected nested record, got %T", homeValue)
	}
	if diff := cmp.Diff([]string{"street", "number"}, home.Keys()); diff != "" {
		t.Fatalf("nested keys mismatch (-want +got):\n%s", diff)
	}

	tags, _ := record.Get("tags")
	tagList := tags.([]any)
	if len(tagList) != fixture.ElementCount {
		t.Fatalf("expected %d tags, got %d", fixture.ElementCount, len(tagList))
	}
	for _, tag := range tagList {
		if s, ok := tag.(string); !ok || len(s) != random.DefaultStringLength {
			t.Fatalf("unexpected tag %#v", tag)
		}
	}

	friends, _ := record.Get("friends")
	friendList := friends.([]any)
	if len(friendList) != fixture.ElementCount {
		t.Fatalf("expected %d friends, got %d", fixture.ElementCount, len(friendList))
	}
	for _, friend := range friendList {
		if _, ok := friend.(*fixture.Record); !ok {
			t.Fatalf("expected friend record, got %T", friend)
		}
	}

	lucky, _ := record.Get("lucky")
	for _, n := range lucky.([]any) {
		if !isIntegral(n) {
			t.Fatalf("expected integral lucky number, got %#v", n)
		}
	}
}

func TestBuilder_CreateDoesNotMutateTemplate(t *testing.T) {
	template := map[string]any{
		"name":   "fixed",
		"count":  7,
		"nested": map[string]any{"flag": true},
		"list":   []any{"a"},
	}
	snapshot := map[string]any{
		"name":   "fixed",
		"count":  7,
		"nested": map[string]any{"flag": true},
		"list":   []any{"a"},
	}

	if _, err := fixture.New(fixture.Options{}).Create(template, spec.Map{"name": "skip"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if diff := cmp.Diff(snapshot, template); diff != "" {
		t.Fatalf("template mutated (-want +got):\n%s", diff)
	}
}

func TestBuilder_RepeatedCallsShareShapeNotValues(t *testing.T) {
	b := fixture.New(fixture.Options{})
	first := mustCreate(t, b, samplePerson(), nil)
	second := mustCreate(t, b, samplePerson(), nil)

	if diff := cmp.Diff(first.Keys(), second.Keys()); diff != "" {
		t.Fatalf("shape mismatch (-first +second):\n%s", diff)
	}
	a, _ := first.Get("name")
	c, _ := second.Get("name")
	if a == c {
		t.Fatalf("expected different generated names, both were %v", a)
	}
}

func TestBuilder_SpecsConstrainValues(t *testing.T) {
	template := map[string]any{"label": "", "count": 0, "ratio": 0.0, "flag": false}
	specs := spec.Map{
		"label": "string[5]",
		"count": "4 < integer < 8",
		"ratio": "1.222 < number < 1.223",
		"flag":  "boolean",
	}
	b := fixture.New(fixture.Options{})

	seen := map[float64]bool{}
	for i := 0; i < 200; i++ {
		record := mustCreate(t, b, template, specs)

		label, _ := record.Get("label")
		if len(label.(string)) != 5 {
			t.Fatalf("expected 5 characters, got %q", label)
		}
		countValue, _ := record.Get("count")
		count := countValue.(float64)
		if !isIntegral(count) || count < 5 || count > 7 {
			t.Fatalf("count outside 5..7: %v", count)
		}
		seen[count] = true
		ratio, _ := record.Get("ratio")
		if r := ratio.(float64); r < 1.222 || r >= 1.223 {
			t.Fatalf("ratio out of range: %v", r)
		}
	}
	if len(seen) != 3 {
		t.Fatalf("expected every integer in 5..7 to appear, saw %v", seen)
	}
}

func TestBuilder_ZeroBoundsAreHonoured(t *testing.T) {
	template := map[string]any{"above": 0, "below": 0, "text": ""}
	specs := spec.Map{"above": "integer > 0", "below": "integer < 0", "text": "string[0]"}
	b := fixture.New(fixture.Options{})

	for i := 0; i < 100; i++ {
		record := mustCreate(t, b, template, specs)
		if above, _ := record.Get("above"); above.(float64) < 1 {
			t.Fatalf("expected above >= 1, got %v", above)
		}
		if below, _ := record.Get("below"); below.(float64) > -1 {
			t.Fatalf("expected below <= -1, got %v", below)
		}
		if text, _ := record.Get("text"); text != "" {
			t.Fatalf("expected empty string, got %q", text)
		}
	}
}

func TestBuilder_ConstraintEntries(t *testing.T) {
	template := map[string]any{"delta": 0}
	specs := spec.Map{"delta": spec.Between(spec.KindInteger, -5, 5)}
	b := fixture.New(fixture.Options{})

	for i := 0; i < 100; i++ {
		record := mustCreate(t, b, template, specs)
		delta, _ := record.Get("delta")
		if d := delta.(float64); !isIntegral(d) || d < -4 || d > 4 {
			t.Fatalf("delta outside -4..4: %v", d)
		}
	}
}

func TestBuilder_SkipRemovesField(t *testing.T) {
	template := map[string]any{"flag": true, "value": 1.5, "name": "x"}
	record := mustCreate(t, fixture.New(fixture.Options{}), template, spec.Map{"value": "skip"})

	if record.Has("value") {
		t.Fatalf("expected value to be absent")
	}
	if _, ok := record.Map()["value"]; ok {
		t.Fatalf("expected value to be absent from Map()")
	}
	if diff := cmp.Diff([]string{"flag", "name"}, record.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_NestedSpecsApplyToEveryElement(t *testing.T) {
	template := map[string]any{
		"owner": map[string]any{"name": ""},
		"pets":  []any{map[string]any{"name": "", "age": 1}},
		"codes": []any{"x"},
	}
	specs := spec.Map{
		"owner": spec.Map{"name": "string[3]"},
		"pets":  map[string]any{"name": "string[2]", "age": "skip"},
		"codes": "string[4]",
	}
	record := mustCreate(t, fixture.New(fixture.Options{}), template, specs)

	got := record.Map()
	owner := got["owner"].(map[string]any)
	if len(owner["name"].(string)) != 3 {
		t.Fatalf("owner name: got %q", owner["name"])
	}
	pets := got["pets"].([]any)
	if len(pets) != fixture.ElementCount {
		t.Fatalf("expected %d pets, got %d", fixture.ElementCount, len(pets))
	}
	for _, pet := range pets {
		m := pet.(map[string]any)
		if len(m["name"].(string)) != 2 {
			t.Fatalf("pet name: got %q", m["name"])
		}
		if _, ok := m["age"]; ok {
			t.Fatalf("expected age to be skipped on every pet")
		}
	}
	for _, code := range got["codes"].([]any) {
		if len(code.(string)) != 4 {
			t.Fatalf("code: got %q", code)
		}
	}
}

func TestBuilder_CreateMany(t *testing.T) {
	b := fixture.New(fixture.Options{})
	template := map[string]any{"name": ""}

	records, err := b.CreateMany(template, 5, nil)
	if err != nil {
		t.Fatalf("create many: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	names := map[any]bool{}
	for _, record := range records {
		name, _ := record.Get("name")
		names[name] = true
	}
	if len(names) != 5 {
		t.Fatalf("expected independent records, got %v", names)
	}

	records, err = b.CreateMany(template, 0, nil)
	if err != nil {
		t.Fatalf("create many: %v", err)
	}
	if len(records) != fixture.ElementCount {
		t.Fatalf("expected default of %d records, got %d", fixture.ElementCount, len(records))
	}

	records, err = b.CreateMany(template, -2, spec.Map{"bogus": "string"})
	if err != nil {
		t.Fatalf("create many with negative count: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected no records for a negative count, got %d", len(records))
	}
}

func TestBuilder_SeededBuildersAreReproducible(t *testing.T) {
	first := mustCreate(t, newSeededBuilder(42), samplePerson(), spec.Map{"age": "integer < 100"})
	second := mustCreate(t, newSeededBuilder(42), samplePerson(), spec.Map{"age": "integer < 100"})

	if diff := cmp.Diff(first.Map(), second.Map()); diff != "" {
		t.Fatalf("seeded records differ (-first +second):\n%s", diff)
	}
}

func TestBuilder_Errors(t *testing.T) {
	type withFunc struct {
		Callback func() `json:"callback"`
	}
	tests := []struct {
		name     string
		template any
		specs    spec.Map
		message  string
		sentinel error
		path     string
	}{
		{
			name:     "unknown spec key",
			template: map[string]any{"flag": true, "value": 1, "name": ""},
			specs:    spec.Map{"naem": "string"},
			message:  "Autofixture specifies field 'naem' that is not in the type",
			sentinel: fixture.ErrUnknownField,
			path:     "naem",
		},
		{
			name:     "unknown nested spec key",
			template: map[string]any{"child": map[string]any{"name": ""}},
			specs:    spec.Map{"child": spec.Map{"bogus": "string"}},
			message:  "Autofixture specifies field 'bogus' that is not in the type",
			sentinel: fixture.ErrUnknownField,
			path:     "child.bogus",
		},
		{
			name:     "incompatible spec",
			template: map[string]any{"name": ""},
			specs:    spec.Map{"name": "number"},
			message:  "AutoFixture spec 'number' not compatible with type 'string'",
			sentinel: spec.ErrIncompatible,
			path:     "name",
		},
		{
			name:     "misspelt type on string field",
			template: map[string]any{"name": ""},
			specs:    spec.Map{"name": "sting"},
			message:  "AutoFixture spec 'sting' not compatible with type 'string'",
			sentinel: spec.ErrIncompatible,
			path:     "name",
		},
		{
			name:     "boolean field needs exact spec",
			template: map[string]any{"flag": false},
			specs:    spec.Map{"flag": "string"},
			message:  "AutoFixture spec 'string' not compatible with type 'boolean'",
			sentinel: spec.ErrIncompatible,
			path:     "flag",
		},
		{
			name:     "non-map spec on object",
			template: map[string]any{"child": map[string]any{"name": ""}},
			specs:    spec.Map{"child": "string"},
			message:  "AutoFixture spec 'string' not compatible with type 'object'",
			sentinel: spec.ErrIncompatible,
			path:     "child",
		},
		{
			name:     "inverted range",
			template: map[string]any{"value": 0.0},
			specs:    spec.Map{"value": "3 < number < 2"},
			message:  "Lower bound 3 must be lower than upper bound 2",
			sentinel: spec.ErrSemantic,
			path:     "value",
		},
		{
			name:     "real integer bound",
			template: map[string]any{"value": 0},
			specs:    spec.Map{"value": "integer < 5.5"},
			message:  "Invalid integer autofixture spec contains real value: 5.5",
			sentinel: spec.ErrSemantic,
			path:     "value",
		},
		{
			name:     "invalid string spec",
			template: map[string]any{"name": ""},
			specs:    spec.Map{"name": "string[]"},
			message:  "Invalid string autofixture spec: 'string[]'",
			sentinel: spec.ErrSyntax,
			path:     "name",
		},
		{
			name:     "empty array",
			template: map[string]any{"items": []any{}},
			message:  "Found empty array 'items'",
			sentinel: fixture.ErrUnsupported,
			path:     "items",
		},
		{
			name:     "empty array with skip",
			template: map[string]any{"items": []string{}},
			specs:    spec.Map{"items": "skip"},
			message:  "Found empty array 'items'",
			sentinel: fixture.ErrUnsupported,
			path:     "items",
		},
		{
			name:     "nested array",
			template: map[string]any{"grid": [][]int{{1, 2}, {3, 4}}},
			message:  "Nested array 'grid' not supported",
			sentinel: fixture.ErrUnsupported,
			path:     "grid",
		},
		{
			name:     "nested array deeper in the template",
			template: map[string]any{"outer": map[string]any{"grid": []any{[]any{1}}}},
			message:  "Nested array 'grid' not supported",
			sentinel: fixture.ErrUnsupported,
			path:     "outer.grid",
		},
		{
			name:     "unsupported type without spec",
			template: withFunc{Callback: func() {}},
			message:  "Autofixture cannot generate values of type 'func'",
			sentinel: fixture.ErrUnsupported,
			path:     "callback",
		},
		{
			name:     "unsupported type with spec",
			template: withFunc{Callback: func() {}},
			specs:    spec.Map{"callback": "string"},
			message:  "AutoFixture spec 'string' not compatible with type 'func'",
			sentinel: spec.ErrIncompatible,
			path:     "callback",
		},
		{
			name:     "nil interface",
			template: map[string]any{"child": nil},
			message:  "Autofixture cannot generate values of type 'nil'",
			sentinel: fixture.ErrUnsupported,
			path:     "child",
		},
		{
			name:     "integer spec outside the field type",
			template: struct {
				Level int8 `json:"level"`
			}{},
			specs:    spec.Map{"level": "integer > 300"},
			message:  "AutoFixture spec 'integer > 300' allows no value of type 'int8' (range -128 to 127)",
			sentinel: spec.ErrSemantic,
			path:     "level",
		},
		{
			name: "integer spec below an unsigned field",
			template: struct {
				Count []uint `json:"count"`
			}{Count: []uint{1}},
			specs:    spec.Map{"count": "integer < 0"},
			message:  "AutoFixture spec 'integer < 0' allows no value of type 'uint' (range 0 to +Inf)",
			sentinel: spec.ErrSemantic,
			path:     "count",
		},
		{
			name:     "template is not an object",
			template: 42,
			message:  "Autofixture cannot generate values of type 'int'",
			sentinel: fixture.ErrUnsupported,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			record, err := fixture.New(fixture.Options{}).Create(tc.template, tc.specs)
			if err == nil {
				t.Fatalf("expected error, got record %v", record.Map())
			}
			if record != nil {
				t.Fatalf("expected no partial record on error")
			}
			if err.Error() != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, err.Error())
			}
			if !errors.Is(err, tc.sentinel) {
				t.Fatalf("expected errors.Is(%v) for %v", tc.sentinel, err)
			}
			var fixtureErr *fixture.Error
			if !errors.As(err, &fixtureErr) {
				t.Fatalf("expected *fixture.Error, got %T", err)
			}
			if fixtureErr.Path != tc.path {
				t.Fatalf("expected path %q, got %q", tc.path, fixtureErr.Path)
			}
		})
	}
}

func TestBuilder_UnknownFieldFailsBeforeGenerating(t *testing.T) {
	gen := random.New(random.WithSeed(7))
	reference := random.New(random.WithSeed(7))
	b := fixture.New(fixture.Options{Generator: gen})

	_, err := b.Create(map[string]any{"name": "", "value": 0}, spec.Map{"naem": "string"})
	if !errors.Is(err, fixture.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if gen.Float64() != reference.Float64() {
		t.Fatalf("expected no values to be drawn before the spec check failed")
	}
}

func TestBuilder_SpecErrorsAreReachable(t *testing.T) {
	_, err := fixture.New(fixture.Options{}).Create(map[string]any{"value": 0.0}, spec.Map{"value": "number <= 5"})
	var specErr *spec.Error
	if !errors.As(err, &specErr) {
		t.Fatalf("expected *spec.Error, got %T", err)
	}
	if specErr.Spec != "number <= 5" {
		t.Fatalf("expected raw spec to be carried, got %q", specErr.Spec)
	}
}

func TestBuilder_IntegersFitFieldType(t *testing.T) {
	type sized struct {
		Small  int8    `json:"small"`
		Byte   uint8   `json:"byte"`
		Few    uint    `json:"few"`
		Ratio  int16   `json:"ratio"`
		Levels []uint8 `json:"levels"`
	}
	specs := spec.Map{
		"small":  "integer > 100",
		"few":    "integer < 5",
		"ratio":  "number > 32700",
		"levels": "integer > 250",
	}
	b := newSeededBuilder(3)

	inRange := func(t *testing.T, record *fixture.Record, name string, lo, hi float64) {
		t.Helper()
		v, _ := record.Get(name)
		f, ok := v.(float64)
		if !ok || f < lo || f > hi {
			t.Fatalf("%s = %v, want within %v..%v", name, v, lo, hi)
		}
	}

	smallSeen := map[float64]bool{}
	for i := 0; i < 300; i++ {
		record := mustCreate(t, b, sized{Levels: []uint8{0}}, specs)
		inRange(t, record, "small", 101, 127)
		inRange(t, record, "byte", 0, 255)
		inRange(t, record, "few", 0, 4)
		inRange(t, record, "ratio", 32700, 32767)

		small, _ := record.Get("small")
		if !isIntegral(small) {
			t.Fatalf("expected an integer, got %v", small)
		}
		smallSeen[small.(float64)] = true

		levels, _ := record.Get("levels")
		for _, level := range levels.([]any) {
			if l := level.(float64); l < 251 || l > 255 {
				t.Fatalf("level outside 251..255: %v", l)
			}
		}
	}
	if len(smallSeen) < 20 {
		t.Fatalf("expected values spread over 101..127, saw %d distinct", len(smallSeen))
	}
}

func TestBuilder_NilPointerFieldsUseElementShape(t *testing.T) {
	type withHome struct {
		Name string   `json:"name"`
		Home *address `json:"home"`
	}

	record := mustCreate(t, newSeededBuilder(5), withHome{}, spec.Map{"home": spec.Map{"street": "string[4]"}})
	home, ok := record.Get("home")
	if !ok {
		t.Fatalf("expected home to be generated")
	}
	child := home.(*fixture.Record)
	if diff := cmp.Diff([]string{"street", "number"}, child.Keys()); diff != "" {
		t.Fatalf("home keys mismatch (-want +got):\n%s", diff)
	}
	street, _ := child.Get("street")
	if len(street.(string)) != 4 {
		t.Fatalf("expected 4 character street, got %q", street)
	}
}

func TestBuilder_RecursiveNilPointerStops(t *testing.T) {
	type node struct {
		Name  string  `json:"name"`
		Next  *node   `json:"next"`
		Extra any     `json:"extra"`
		Path  []*node `json:"path"`
	}

	record := mustCreate(t, newSeededBuilder(9), node{Extra: "x", Path: []*node{nil}}, nil)
	if diff := cmp.Diff([]string{"name", "next", "extra", "path"}, record.Keys()); diff != "" {
		t.Fatalf("root keys mismatch (-want +got):\n%s", diff)
	}

	nextValue, _ := record.Get("next")
	next := nextValue.(*fixture.Record)
	if diff := cmp.Diff([]string{"name"}, next.Keys()); diff != "" {
		t.Fatalf("expanded node keys mismatch (-want +got):\n%s", diff)
	}

	path, _ := record.Get("path")
	items := path.([]any)
	if len(items) != fixture.ElementCount {
		t.Fatalf("expected %d path nodes, got %d", fixture.ElementCount, len(items))
	}
	for _, item := range items {
		if item.(*fixture.Record).Has("next") {
			t.Fatalf("expected recursion to stop inside path nodes")
		}
	}
}

func TestRecord_MarshalPreservesOrder(t *testing.T) {
	type ordered struct {
		Zeta  string `json:"zeta"`
		Alpha bool   `json:"alpha"`
		Mid   []int  `json:"mid"`
	}
	record := mustCreate(t, fixture.New(fixture.Options{}), ordered{Mid: []int{1}}, nil)

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, `{"zeta":"`) {
		t.Fatalf("expected zeta first, got %s", text)
	}
	if strings.Index(text, `"alpha":`) > strings.Index(text, `"mid":`) {
		t.Fatalf("expected alpha before mid, got %s", text)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}
	if diff := cmp.Diff(record.Map(), decoded); diff != "" {
		t.Fatalf("json round trip mismatch (-want +got):\n%s", diff)
	}

	out, err := yaml.Marshal(record)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	yamlText := string(out)
	if !strings.HasPrefix(yamlText, "zeta: ") {
		t.Fatalf("expected zeta first, got %s", yamlText)
	}
	if strings.Index(yamlText, "\nalpha: ") > strings.Index(yamlText, "\nmid:") {
		t.Fatalf("expected alpha before mid, got %s", yamlText)
	}
}
