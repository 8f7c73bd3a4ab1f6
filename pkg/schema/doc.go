// Package schema provides the value types of shading network properties.
//
// Every attribute, and therefore every port, is created with a Type. Types
// are identified by name ("float", "color3f", "token", "asset", "float[]")
// and know how to validate a value and how to coerce values decoded from
// JSON or YAML layers into their canonical Go form:
//
//	typ, err := schema.ParseType("color3f")
//	if err != nil {
//	    return err
//	}
//	v, err := typ.Coerce([]any{1, 0.5, 0}) // []float64{1, 0.5, 0}
//
// A Schema maps port names to types and can check a set of values at once:
//
//	sig := schema.Schema{
//	    "roughness":    schema.Float(),
//	    "diffuseColor": schema.Color3f(),
//	}
//	if err := schema.Validate(sig, values); err != nil {
//	    for _, e := range schema.ValidationErrors(err) { ... }
//	}
//
// Type checking between connected ports is deliberately not done here or
// anywhere else: connections may link ports of different types.
package schema
