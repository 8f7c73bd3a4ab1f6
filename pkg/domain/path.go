package domain

import (
	"fmt"
	"strings"
)

// Path identifies a prim on a stage, e.g. "/Model/Materials/Pale".
type Path string

// AbsoluteRoot is the pseudo-root every prim path descends from.
const AbsoluteRoot Path = "/"

func (p Path) String() string { return string(p) }

// IsValid reports whether p is an absolute prim path made of identifier elements.
func (p Path) IsValid() bool {
	s := string(p)
	if len(s) < 2 || s[0] != '/' || strings.HasSuffix(s, "/") {
		return false
	}
	for _, elem := range strings.Split(s[1:], "/") {
		if !isIdentifier(elem) {
			return false
		}
	}
	return true
}

// Name returns the last element of the path.
func (p Path) Name() string {
	s := string(p)
	return s[strings.LastIndex(s, "/")+1:]
}

// Parent returns the path of the enclosing prim, or AbsoluteRoot.
func (p Path) Parent() Path {
	s := string(p)
	i := strings.LastIndex(s, "/")
	if i <= 0 {
		return AbsoluteRoot
	}
	return Path(s[:i])
}

// AppendChild returns the path of the child prim called name.
func (p Path) AppendChild(name string) Path {
	if p == AbsoluteRoot {
		return Path("/" + name)
	}
	return Path(string(p) + "/" + name)
}

// AppendProperty returns the path of the property called name on p.
func (p Path) AppendProperty(name string) PropertyPath {
	return PropertyPath{Prim: p, Name: name}
}

// PropertyPath addresses a property on a prim.
// Its text form is "<prim path>.<property name>".
type PropertyPath struct {
	Prim Path
	Name string
}

func (pp PropertyPath) String() string {
	return string(pp.Prim) + "." + pp.Name
}

// IsValid reports whether both the prim path and the property name are well formed.
func (pp PropertyPath) IsValid() bool {
	return pp.Prim.IsValid() && IsValidPropertyName(pp.Name)
}

// MarshalText implements encoding.TextMarshaler.
func (pp PropertyPath) MarshalText() ([]byte, error) {
	return []byte(pp.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pp *PropertyPath) UnmarshalText(text []byte) error {
	parsed, err := ParsePropertyPath(string(text))
	if err != nil {
		return err
	}
	*pp = parsed
	return nil
}

// ParsePropertyPath parses "<prim path>.<property name>".
func ParsePropertyPath(s string) (PropertyPath, error) {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return PropertyPath{}, fmt.Errorf("%w: %q has no property part", ErrInvalidPath, s)
	}
	pp := PropertyPath{Prim: Path(s[:i]), Name: s[i+1:]}
	if !pp.IsValid() {
		return PropertyPath{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
	}
	return pp, nil
}

// IsValidPropertyName reports whether name is a (possibly namespaced) property
// name such as "inputs:diffuseColor".
func IsValidPropertyName(name string) bool {
	if name == "" {
		return false
	}
	for _, part := range strings.Split(name, NamespaceDelimiter) {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
