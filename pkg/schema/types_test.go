package schema

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/shadenet/pkg/domain"
)

func TestBoolType(t *testing.T) {
	typ := Bool()

	if typ.Name() != "bool" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "bool")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{true, false},
		{false, false},
		{1, true},
		{"true", true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestIntType(t *testing.T) {
	typ := Int()

	tests := []struct {
		value   any
		want    int
		wantErr bool
	}{
		{42, 42, false},
		{int8(42), 42, false},
		{int64(42), 42, false},
		{uint16(7), 7, false},
		{float64(42), 42, false},  // whole number
		{float64(42.5), 0, true}, // not whole
		{"42", 0, true},
		{true, 0, true},
		{nil, 0, true},
	}

	for _, tt := range tests {
		got, err := typ.Coerce(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Coerce(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Coerce(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFloatType(t *testing.T) {
	for _, typ := range []Type{Float(), Double(), Half()} {
		tests := []struct {
			value   any
			wantErr bool
		}{
			{3.14, false},
			{float32(3.14), false},
			{42, false},
			{int64(42), false},
			{"3.14", true},
			{true, true},
			{nil, true},
		}

		for _, tt := range tests {
			got, err := typ.Coerce(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("%s: Coerce(%v) error = %v, wantErr %v", typ.Name(), tt.value, err, tt.wantErr)
				continue
			}
			if !tt.wantErr {
				if _, ok := got.(float64); !ok {
					t.Errorf("%s: Coerce(%v) = %T, want float64", typ.Name(), tt.value, got)
				}
			}
		}
	}
}

func TestStringAndTokenType(t *testing.T) {
	if String().Name() != "string" || Token().Name() != "token" {
		t.Fatalf("unexpected names %q, %q", String().Name(), Token().Name())
	}
	if err := Token().Validate("preview"); err != nil {
		t.Errorf("Validate(token) error = %v", err)
	}
	if err := String().Validate(1); err == nil {
		t.Error("Validate(1) should fail for string")
	}
}

func TestAssetType(t *testing.T) {
	got, err := Asset().Coerce("/source/asset.osl")
	if err != nil {
		t.Fatalf("Coerce() error = %v", err)
	}
	if got != domain.AssetPath("/source/asset.osl") {
		t.Errorf("Coerce() = %#v, want AssetPath", got)
	}
	if _, err := Asset().Coerce(3); err == nil {
		t.Error("Coerce(3) should fail for asset")
	}
}

func TestTupleType(t *testing.T) {
	tests := []struct {
		typ     Type
		value   any
		wantErr bool
		desc    string
	}{
		{Color3f(), []any{1, 0.5, 0}, false, "yaml sequence of mixed numbers"},
		{Color3f(), []float64{1, 1, 1}, false, "float slice"},
		{Float3(), [3]float32{1, 2, 3}, false, "fixed array"},
		{Point3f(), []any{1, 2}, true, "too few components"},
		{Color4f(), []any{1, 2, 3, 4}, false, "four components"},
		{Vector3f(), "1 2 3", true, "string instead of tuple"},
		{Normal3f(), nil, true, "nil"},
	}

	for _, tt := range tests {
		got, err := tt.typ.Coerce(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Coerce(%v) error = %v, wantErr %v", tt.desc, tt.value, err, tt.wantErr)
			continue
		}
		if !tt.wantErr {
			vals, ok := got.([]float64)
			if !ok || len(vals) != tt.typ.(*TupleType).Size() {
				t.Errorf("%s: Coerce() = %#v", tt.desc, got)
			}
		}
	}
}

func TestArrayType(t *testing.T) {
	floats := Array(Float())
	if floats.Name() != "float[]" {
		t.Errorf("Name() = %q, want float[]", floats.Name())
	}

	got, err := floats.Coerce([]any{1, 2.5})
	if err != nil {
		t.Fatalf("Coerce() error = %v", err)
	}
	if fmt.Sprint(got) != "[1 2.5]" {
		t.Errorf("Coerce() = %v", got)
	}

	if _, err := floats.Coerce([]any{1, "x"}); err == nil {
		t.Error("Coerce() should fail for mixed slice")
	}
	if _, err := floats.Coerce(1.0); err == nil {
		t.Error("Coerce() should fail for scalar")
	}

	colors := Array(Color3f())
	if _, err := colors.Coerce([]any{[]any{1, 0, 0}, []any{0, 1, 0}}); err != nil {
		t.Errorf("Coerce(color3f[]) error = %v", err)
	}
}

func TestCustomType(t *testing.T) {
	channel := Custom("channel", func(v any) error {
		s, ok := v.(string)
		if !ok {
			return errors.New("not a string")
		}
		switch s {
		case "r", "g", "b", "a":
			return nil
		}
		return fmt.Errorf("unknown channel %q", s)
	})

	if channel.Name() != "channel" {
		t.Errorf("Name() = %q, want %q", channel.Name(), "channel")
	}
	if err := channel.Validate("g"); err != nil {
		t.Errorf("Validate(g) error = %v", err)
	}
	if _, err := channel.Coerce("x"); err == nil {
		t.Error("Coerce(x) should fail")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		wantErr  bool
		wantName string
	}{
		{"string", false, "string"},
		{"token", false, "token"},
		{"int", false, "int"},
		{"float", false, "float"},
		{"color3f", false, "color3f"},
		{"asset", false, "asset"},
		{"float[]", false, "float[]"},
		{"color3f[]", false, "color3f[]"},
		{"float[][]", true, ""},
		{"invalid", true, ""},
		{"invalid[]", true, ""},
	}

	for _, tt := range tests {
		typ, err := ParseType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && typ.Name() != tt.wantName {
			t.Errorf("ParseType(%q) Name() = %q, want %q", tt.input, typ.Name(), tt.wantName)
		}
	}
}

func TestParseTypeMap(t *testing.T) {
	typeMap := map[string]string{
		"roughness":    "float",
		"diffuseColor": "color3f",
		"file":         "asset",
	}

	sig, err := ParseTypeMap(typeMap)
	if err != nil {
		t.Fatalf("ParseTypeMap() error = %v", err)
	}
	if len(sig) != len(typeMap) {
		t.Errorf("ParseTypeMap() len = %d, want %d", len(sig), len(typeMap))
	}
	if !SameType(sig["diffuseColor"], Color3f()) {
		t.Error("diffuseColor type should be color3f")
	}

	if _, err := ParseTypeMap(map[string]string{"x": "invalid"}); err == nil {
		t.Fatal("ParseTypeMap() should return error for invalid type")
	}
}

func TestSameType(t *testing.T) {
	if !SameType(Float(), Float()) {
		t.Error("float should equal float")
	}
	if SameType(Float(), Double()) {
		t.Error("float should not equal double")
	}
	if SameType(Float(), nil) {
		t.Error("float should not equal nil")
	}
}
