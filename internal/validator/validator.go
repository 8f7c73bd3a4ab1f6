package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/schema"
	"github.com/aretw0/shadenet/pkg/shade"
	"github.com/aretw0/shadenet/pkg/stage"
)

var (
	// ErrDanglingConnection marks a connection whose target prim or property does not exist.
	ErrDanglingConnection = errors.New("dangling connection")
	// ErrNotAPort marks a connection whose target is not an input or output.
	ErrNotAPort = errors.New("connection target is not a port")
	// ErrMissingInherit marks an inherit arc to a prim that is not on the stage.
	ErrMissingInherit = errors.New("missing inherit target")
	// ErrMissingImplementation marks a shader whose active source has no record.
	ErrMissingImplementation = errors.New("missing implementation record")
)

// Issue is one finding, located at a prim and optionally a property.
type Issue struct {
	Path     domain.Path
	Property string
	Err      error
	Detail   string
}

func (i *Issue) Error() string {
	loc := i.Path.String()
	if i.Property != "" {
		loc += "." + i.Property
	}
	if i.Detail == "" {
		return fmt.Sprintf("%s: %v", loc, i.Err)
	}
	return fmt.Sprintf("%s: %v: %s", loc, i.Err, i.Detail)
}

func (i *Issue) Unwrap() error { return i.Err }

// ValidateStage checks the locally authored opinions of every prim.
// It returns nil or a *schema.AggregateError of *Issue.
func ValidateStage(st *stage.Stage) error {
	var errs []error
	report := func(path domain.Path, property string, err error, format string, args ...any) {
		errs = append(errs, &Issue{Path: path, Property: property, Err: err, Detail: fmt.Sprintf(format, args...)})
	}

	for _, prim := range st.Prims() {
		for _, target := range prim.Inherits() {
			if _, ok := st.Prim(target); !ok {
				report(prim.Path(), "", ErrMissingInherit, "%s", target)
			}
		}

		for _, name := range prim.AttributeNames() {
			attr, _ := prim.Attribute(name)
			targets, _ := attr.Connections()
			for _, target := range targets {
				switch {
				case !strings.HasPrefix(target.Name, domain.InputsPrefix) && !strings.HasPrefix(target.Name, domain.OutputsPrefix):
					report(prim.Path(), name, ErrNotAPort, "%s", target)
				case !st.HasAttribute(target.Prim, target.Name):
					report(prim.Path(), name, ErrDanglingConnection, "%s", target)
				}
			}
		}
	}

	for _, sh := range shade.Shaders(st) {
		if !hasRecord(sh.Implementation()) {
			report(sh.Path(), "", ErrMissingImplementation, "source %q", sh.GetImplementationSource())
		}
	}

	if len(errs) > 0 {
		return &schema.AggregateError{Errors: errs}
	}
	return nil
}

func hasRecord(impl shade.Implementation) bool {
	switch impl := impl.(type) {
	case shade.IDImplementation:
		return impl.ID != ""
	case shade.AssetImplementation:
		for _, rec := range impl.Assets {
			if rec.Asset != "" {
				return true
			}
		}
	case shade.CodeImplementation:
		return len(impl.Code) > 0
	}
	return false
}
