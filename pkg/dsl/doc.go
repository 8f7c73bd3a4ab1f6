/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing shading networks.

It allows developers to describe prims, ports, connections and implementation
sources with a fluent builder instead of writing YAML or JSON layers by hand.
This is particularly useful for unit tests, examples and generated networks.

Example usage:

	b := dsl.New()

	b.Class("/classPale").
		SdrMetadata(domain.SdrKeyPrimvars, "st")

	b.Shader("/Texture").
		ID("UsdUVTexture").
		Output("rgb", "float3")

	b.Shader("/Pale").
		Inherits("/classPale").
		ID("UsdPreviewSurface").
		Input("roughness", "float", 0.4).
		Input("diffuseColor", "color3f").
		Connect("diffuseColor", "/Texture.outputs:rgb")

	st, err := b.Build()
*/
package dsl
