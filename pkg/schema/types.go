package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Type defines the contract for a property value type.
// Two types are the same type when their names are equal.
type Type interface {
	// Name returns the type name as it appears in layers (e.g., "float", "color3f").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
	// Coerce converts a decoded value (JSON numbers, YAML sequences, ...)
	// into the canonical Go representation of the type.
	Coerce(value any) (any, error)
}

// --- Built-in Type Implementations ---

// BoolType holds bool values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *BoolType) Coerce(value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("expected bool, got %T", value)
	}
	return b, nil
}

// IntType holds integers, canonically int.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *IntType) Coerce(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8, int16, int32, int64, uint8, uint16, uint32:
		return int(reflect.ValueOf(v).Convert(reflect.TypeOf(0)).Int()), nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v == float64(int64(v)) {
			return int(v), nil
		}
		return nil, fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return nil, fmt.Errorf("expected int, got %T", value)
	}
}

// FloatType holds floating-point scalars, canonically float64.
// It backs "float", "double" and "half".
type FloatType struct {
	name string
}

func (t *FloatType) Name() string { return t.name }

func (t *FloatType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *FloatType) Coerce(value any) (any, error) {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64, uint8, uint16, uint32, uint64:
		return reflect.ValueOf(value).Convert(reflect.TypeOf(float64(0))).Float(), nil
	default:
		return nil, fmt.Errorf("expected %s, got %T", t.name, value)
	}
}

// StringType holds strings. It backs "string" and "token".
type StringType struct {
	name string
}

func (t *StringType) Name() string { return t.name }

func (t *StringType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *StringType) Coerce(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected %s, got %T", t.name, value)
	}
	return s, nil
}

// AssetType holds asset paths, canonically domain.AssetPath.
type AssetType struct{}

func (t *AssetType) Name() string { return "asset" }

func (t *AssetType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *AssetType) Coerce(value any) (any, error) {
	switch v := value.(type) {
	case domain.AssetPath:
		return v, nil
	case string:
		return domain.AssetPath(v), nil
	default:
		return nil, fmt.Errorf("expected asset path, got %T", value)
	}
}

// TupleType holds fixed-size float tuples (colors, points, vectors),
// canonically []float64 of the tuple size.
type TupleType struct {
	name string
	size int
}

func (t *TupleType) Name() string { return t.name }

// Size returns the number of components.
func (t *TupleType) Size() int { return t.size }

func (t *TupleType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *TupleType) Coerce(value any) (any, error) {
	var out []float64
	if err := mapstructure.Decode(value, &out); err != nil {
		return nil, fmt.Errorf("expected %s: %w", t.name, err)
	}
	if len(out) != t.size {
		return nil, fmt.Errorf("expected %s with %d components, got %d", t.name, t.size, len(out))
	}
	return out, nil
}

// ArrayType holds variable-length arrays of a scalar or tuple type.
type ArrayType struct {
	elemType Type
}

func (t *ArrayType) Name() string {
	return t.elemType.Name() + "[]"
}

// Elem returns the element type.
func (t *ArrayType) Elem() Type { return t.elemType }

func (t *ArrayType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *ArrayType) Coerce(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected %s, got %T", t.Name(), value)
	}

	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem, err := t.elemType.Coerce(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = elem
	}
	return out, nil
}

// CustomType applies a user-defined validation function and keeps values as given.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

func (t *CustomType) Coerce(value any) (any, error) {
	if err := t.validate(value); err != nil {
		return nil, err
	}
	return value, nil
}

// --- Factory Functions ---

func Bool() Type     { return &BoolType{} }
func Int() Type      { return &IntType{} }
func Float() Type    { return &FloatType{name: "float"} }
func Double() Type   { return &FloatType{name: "double"} }
func Half() Type     { return &FloatType{name: "half"} }
func String() Type   { return &StringType{name: "string"} }
func Token() Type    { return &StringType{name: "token"} }
func Asset() Type    { return &AssetType{} }
func Float2() Type   { return &TupleType{name: "float2", size: 2} }
func Float3() Type   { return &TupleType{name: "float3", size: 3} }
func Float4() Type   { return &TupleType{name: "float4", size: 4} }
func Color3f() Type  { return &TupleType{name: "color3f", size: 3} }
func Color4f() Type  { return &TupleType{name: "color4f", size: 4} }
func Point3f() Type  { return &TupleType{name: "point3f", size: 3} }
func Normal3f() Type { return &TupleType{name: "normal3f", size: 3} }
func Vector3f() Type { return &TupleType{name: "vector3f", size: 3} }

// Array creates an array type of the given element type.
func Array(elemType Type) Type {
	return &ArrayType{elemType: elemType}
}

// Custom creates a custom type with a user-defined validation function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

var builtins = map[string]func() Type{
	"bool":     Bool,
	"int":      Int,
	"float":    Float,
	"double":   Double,
	"half":     Half,
	"string":   String,
	"token":    Token,
	"asset":    Asset,
	"float2":   Float2,
	"float3":   Float3,
	"float4":   Float4,
	"color3f":  Color3f,
	"color4f":  Color4f,
	"point3f":  Point3f,
	"normal3f": Normal3f,
	"vector3f": Vector3f,
}

// ParseType converts a type name to a Type.
// Array types use the "[]" suffix: "float[]", "color3f[]".
func ParseType(typeStr string) (Type, error) {
	if elemStr, ok := strings.CutSuffix(typeStr, "[]"); ok {
		if strings.HasSuffix(elemStr, "[]") {
			return nil, fmt.Errorf("unsupported type: %s (nested arrays)", typeStr)
		}
		elemType, err := ParseType(elemStr)
		if err != nil {
			return nil, err
		}
		return Array(elemType), nil
	}

	factory, ok := builtins[typeStr]
	if !ok {
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
	return factory(), nil
}

// ParseTypeMap converts a map of port names to type names into a Schema.
// Example: {"roughness": "float", "diffuseColor": "color3f"}
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema)
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}

// SameType reports whether a and b name the same type.
func SameType(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name() == b.Name()
}
