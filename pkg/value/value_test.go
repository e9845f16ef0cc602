package value

import (
	"testing"

	errs "github.com/matzehuels/apiscope/pkg/errors"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want Kind
	}{
		{"zero value", Value{}, KindNull},
		{"null", Null(), KindNull},
		{"bool", Bool(true), KindBool},
		{"number", Number(1.5), KindNumber},
		{"string", String("a"), KindString},
		{"array", Array(), KindArray},
		{"object", Object(), KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindObject.String() != "object" {
		t.Errorf("KindObject.String() = %q", KindObject.String())
	}
	if Kind(42).String() != "kind(42)" {
		t.Errorf("Kind(42).String() = %q", Kind(42).String())
	}
	if !KindArray.IsContainer() || KindString.IsContainer() {
		t.Error("IsContainer should be true only for arrays and objects")
	}
}

func TestObjectKeepsInsertionOrder(t *testing.T) {
	v := Object(
		Field{Key: "b", Value: Number(1)},
		Field{Key: "10", Value: Number(2)},
		Field{Key: "a", Value: Number(3)},
		Field{Key: "2", Value: Number(4)},
	)

	want := []string{"b", "10", "a", "2"}
	got := v.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestObjectDuplicateKey(t *testing.T) {
	v := Object(
		Field{Key: "a", Value: Number(1)},
		Field{Key: "b", Value: Number(2)},
		Field{Key: "a", Value: Number(3)},
	)

	if v.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", v.Len())
	}
	if keys := v.Keys(); keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}
	if got, _ := v.Get("a"); got.AsNumber() != 3 {
		t.Errorf("Get(a) = %v, want 3", got.AsNumber())
	}
}

func TestConstructorsCopyInput(t *testing.T) {
	items := []Value{Number(1), Number(2)}
	arr := Array(items...)
	items[0] = String("mutated")

	if got, _ := arr.At(0); got.Kind() != KindNumber {
		t.Error("Array should not alias its input slice")
	}

	out := arr.Items()
	out[1] = Null()
	if got, _ := arr.At(1); got.Kind() != KindNumber {
		t.Error("Items should return a copy")
	}
}

func TestEqual(t *testing.T) {
	a := MustParse(`{"x": [1, "two", null, true], "y": {}}`)
	b := MustParse(`{"x": [1, "two", null, true], "y": {}}`)
	c := MustParse(`{"y": {}, "x": [1, "two", null, true]}`)

	if !a.Equal(b) {
		t.Error("identical documents should be equal")
	}
	if a.Equal(c) {
		t.Error("documents with different key order should not be equal")
	}
	if Number(1).Equal(String("1")) {
		t.Error("different kinds should not be equal")
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want int
	}{
		{"scalar", Number(1), 1},
		{"empty array", Array(), 1},
		{"flat array", Array(Number(1), Number(2)), 3},
		{"nested", MustParse(`{"a": [1, {"b": null}], "c": "d"}`), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.v); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestChildAt(t *testing.T) {
	arr := Array(Number(1), String("a"))
	obj := Object(Field{Key: "k", Value: Bool(true)})

	tests := []struct {
		name     string
		v        Value
		seg      Segment
		wantCode errs.Code
		want     Value
	}{
		{"array index", arr, IndexSegment(1), "", String("a")},
		{"object key", obj, KeySegment("k"), "", Bool(true)},
		{"index past end", arr, IndexSegment(2), errs.ErrCodeOutOfRange, Value{}},
		{"missing key", obj, KeySegment("nope"), errs.ErrCodeMissingField, Value{}},
		{"key into array", arr, KeySegment("0"), errs.ErrCodeTypeMismatch, Value{}},
		{"index into object", obj, IndexSegment(0), errs.ErrCodeTypeMismatch, Value{}},
		{"scalar", Number(3), IndexSegment(0), errs.ErrCodeTypeMismatch, Value{}},
		{"null", Null(), KeySegment("a"), errs.ErrCodeTypeMismatch, Value{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChildAt(tt.v, tt.seg)
			if tt.wantCode != "" {
				if !errs.Is(err, tt.wantCode) {
					t.Fatalf("ChildAt() error = %v, want code %v", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ChildAt() unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ChildAt() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	v := MustParse(`{"users": [{"name": "ada"}, {"name": "bob"}]}`)

	got, err := Lookup(v, Root().Key("users").Index(1).Key("name"))
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if got.AsString() != "bob" {
		t.Errorf("Lookup() = %q, want bob", got.AsString())
	}

	root, err := Lookup(v, Root())
	if err != nil || !root.Equal(v) {
		t.Errorf("Lookup(root) = %v, %v; want the value itself", root, err)
	}

	_, err = Lookup(v, Root().Key("users").Index(5).Key("name"))
	if !errs.Is(err, errs.ErrCodeOutOfRange) {
		t.Errorf("Lookup() error = %v, want OUT_OF_RANGE", err)
	}
}

func TestIndexSegmentNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("IndexSegment(-1) should panic")
		}
	}()
	IndexSegment(-1)
}
