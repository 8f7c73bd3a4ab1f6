package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/shadenet/internal/presentation/graph"
	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/dsl"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		build    func(b *dsl.Builder)
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Shader Shape",
			build: func(b *dsl.Builder) {
				b.Shader("/Texture").ID("UsdUVTexture")
			},
			contains: []string{`Texture["/Texture <br/> UsdUVTexture"]`},
		},
		{
			name: "Class And Over Shapes",
			build: func(b *dsl.Builder) {
				b.Class("/classPale")
				b.Over("/Pale")
			},
			contains: []string{
				`classPale(["/classPale"])`,
				`Pale[/"/Pale"/]`,
			},
		},
		{
			name: "Source Types",
			build: func(b *dsl.Builder) {
				b.Shader("/Pale").
					SourceAsset(domain.UniversalSourceType, "/shaders/pale.osl").
					SourceAsset("glslfx", "/shaders/pale.glslfx")
			},
			contains: []string{`asset: universal, glslfx`},
		},
		{
			name: "Path Sanitization",
			build: func(b *dsl.Builder) {
				b.Shader("/Model/Materials/Pale_2")
			},
			contains: []string{`Model_Materials_Pale_2["/Model/Materials/Pale_2`},
		},
		{
			name: "Inherited Connection And Arc",
			build: func(b *dsl.Builder) {
				b.Shader("/Texture").Output("rgb", "color3f")
				b.Class("/classPale").Input("diffuseColor", "color3f").Connect("diffuseColor", "/Texture.outputs:rgb")
				b.Shader("/Pale").Inherits("/classPale")
			},
			contains: []string{
				`Pale -. inherits .-> classPale`,
				`Texture -- "rgb → diffuseColor" --> Pale`,
				`Texture -- "rgb → diffuseColor" --> classPale`,
			},
		},
		{
			name: "Blocked Connection",
			build: func(b *dsl.Builder) {
				b.Shader("/Texture").Output("rgb", "color3f")
				b.Class("/classPale").Input("diffuseColor", "color3f").Connect("diffuseColor", "/Texture.outputs:rgb")
				b.Shader("/Pale").Inherits("/classPale").Input("diffuseColor", "color3f").Disconnect("diffuseColor")
			},
			excludes: []string{`--> Pale`},
		},
		{
			name: "Missing Source",
			build: func(b *dsl.Builder) {
				b.Shader("/Pale").Input("x", "float").Connect("x", "/Ghost.outputs:out")
			},
			contains: []string{
				`Ghost -- "out → x" --> Pale`,
				`Ghost{{"/Ghost"}}`,
			},
		},
		{
			name: "Overlay",
			build: func(b *dsl.Builder) {
				b.Shader("/A")
				b.Shader("/B")
			},
			overlay: &graph.GraphOverlay{Invalid: []domain.Path{"/A", "/A"}, Selected: "/B"},
			contains: []string{
				"class A invalid;",
				"class B selected;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := dsl.New()
			tt.build(b)
			st, err := b.Build()
			if err != nil {
				t.Fatalf("Build() failed: %v", err)
			}
			got := graph.GenerateMermaid(st, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, unwanted)
				}
			}
			if tt.overlay != nil && strings.Count(got, "class A invalid;") != 1 {
				t.Errorf("expected deduplicated overlay classes:\n%v", got)
			}
		})
	}
}
