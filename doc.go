/*
Package shadenet authors and inspects shading networks: shader nodes with typed
input and output ports, connections between them, a mutually exclusive
implementation source per shader and per-key shader registry metadata.

Opinions compose across inherit arcs. A shader sees the nearest authored
value, connection list or implementation record among itself and the prims it
inherits from, while sdrMetadata resolves key by key.

# Packages

  - pkg/stage holds prims and attributes and performs composition.
  - pkg/shade is the shading API: ports, connections, implementation sources, metadata.
  - pkg/dsl builds stages fluently.
  - pkg/workspace and the pkg/adapters stores persist stages as layer documents.

# Usage

The Engine stores layers in a directory by default, or in any ports.LayerStore.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/shadenet"
		"github.com/aretw0/shadenet/pkg/shade"
		"github.com/aretw0/shadenet/pkg/schema"
		"github.com/aretw0/shadenet/pkg/stage"
	)

	func main() {
		eng, err := shadenet.New("./looks")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		err = eng.Edit(ctx, "pale", func(st *stage.Stage) error {
			tex, err := shade.Define(st, "/Texture")
			if err != nil {
				return err
			}
			if err := tex.SetShaderId("UsdUVTexture"); err != nil {
				return err
			}

			pale, err := shade.Define(st, "/Pale")
			if err != nil {
				return err
			}
			in, err := pale.CreateInput("diffuseColor", schema.Color3f())
			if err != nil {
				return err
			}
			return in.ConnectToSource(shade.ConnectionSourceInfo{
				Source:     tex,
				SourceName: "rgb",
				SourceType: shade.Output,
			})
		})
		if err != nil {
			log.Fatal(err)
		}

		graph, _ := eng.Graph(ctx, "pale")
		fmt.Println(graph)
	}
*/
package shadenet
