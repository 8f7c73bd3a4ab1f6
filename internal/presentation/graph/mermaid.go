package graph

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/shade"
	"github.com/aretw0/shadenet/pkg/stage"
)

// GraphOverlay contains extra state to visualize on the graph.
type GraphOverlay struct {
	Invalid  []domain.Path
	Selected domain.Path
}

// GenerateMermaid produces a Mermaid flowchart of a shading network.
// It applies semantic styling:
// - Shader: [Rectangle], labelled with its implementation
// - Class: ([Stadium])
// - Over or untyped prim: [/Parallelogram/]
// - Missing connection source: {{Hexagon}}
// Edges run from source to consumer. Inherit arcs are dotted.
func GenerateMermaid(st *stage.Stage, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	missing := make(map[domain.Path]bool)

	for _, prim := range st.Prims() {
		safeID := sanitizeMermaidID(prim.Path())
		sh, _ := shade.Get(st, prim.Path())

		opener, closer := "[/", "/]"
		label := prim.Path().String()
		switch {
		case prim.IsAbstract():
			opener, closer = "([", "])"
		case sh.IsValid():
			opener, closer = "[", "]"
			if impl := implementationLabel(sh); impl != "" {
				label += " <br/> " + impl
			}
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escape(label), closer)

		for _, target := range prim.Inherits() {
			fmt.Fprintf(&sb, "    %s -. inherits .-> %s\n", safeID, sanitizeMermaidID(target))
			if _, ok := st.Prim(target); !ok {
				missing[target] = true
			}
		}

		for _, in := range sh.Inputs() {
			sources, invalid := in.GetConnectedSources()
			for _, src := range sources {
				fmt.Fprintf(&sb, "    %s -- \"%s → %s\" --> %s\n",
					sanitizeMermaidID(src.Source.Path()), src.SourceName, in.BaseName(), safeID)
				if _, ok := st.Prim(src.Source.Path()); !ok {
					missing[src.Source.Path()] = true
				}
			}
			for _, target := range invalid {
				fmt.Fprintf(&sb, "    %s -. \"%s → %s\" .-> %s\n",
					sanitizeMermaidID(target.Prim), target.Name, in.BaseName(), safeID)
				if _, ok := st.Prim(target.Prim); !ok {
					missing[target.Prim] = true
				}
			}
		}
	}

	for _, path := range slices.Sorted(maps.Keys(missing)) {
		fmt.Fprintf(&sb, "    %s{{\"%s\"}}\n", sanitizeMermaidID(path), escape(path.String()))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef invalid fill:#ffebee,stroke:#b71c1c,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, path := range overlay.Invalid {
			safeID := sanitizeMermaidID(path)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s invalid;\n", safeID)
			}
		}

		if overlay.Selected != "" {
			fmt.Fprintf(&sb, "    class %s selected;\n", sanitizeMermaidID(overlay.Selected))
		}
	}

	return sb.String()
}

func implementationLabel(sh shade.Shader) string {
	switch impl := sh.Implementation().(type) {
	case shade.IDImplementation:
		return impl.ID
	case shade.AssetImplementation:
		return "asset: " + sourceTypes(impl.SourceTypes())
	case shade.CodeImplementation:
		return "code: " + sourceTypes(impl.SourceTypes())
	}
	return ""
}

func sourceTypes(types []string) string {
	for i, t := range types {
		if t == domain.UniversalSourceType {
			types[i] = "universal"
		}
	}
	return strings.Join(types, ", ")
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(path domain.Path) string {
	s := strings.TrimPrefix(path.String(), "/")
	s = strings.ReplaceAll(s, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, ":", "_")
	if s == "" {
		return "root"
	}
	return s
}
