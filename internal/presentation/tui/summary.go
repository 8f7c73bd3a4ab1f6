package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/shadenet/pkg/shade"
	"github.com/muesli/termenv"
)

// Renderer styles resolved shader summaries for the terminal.
type Renderer struct {
	out      *termenv.Output
	markdown func(string) (string, error)
}

// NewRenderer returns a renderer writing to w. The color profile is
// detected from w; pass termenv.WithProfile to force one.
func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

// SetMarkdown renders layer and port documentation through md, usually
// built by NewMarkdownRenderer. Without it documentation is printed as is.
func (r *Renderer) SetMarkdown(md func(string) (string, error)) {
	r.markdown = md
}

// Doc writes the layer documentation, if any.
func (r *Renderer) Doc(doc string) {
	if strings.TrimSpace(doc) == "" {
		return
	}
	if r.markdown != nil {
		if lines, err := renderedLines(r.markdown, doc); err == nil {
			for _, line := range lines {
				fmt.Fprintln(r.out, line)
			}
			fmt.Fprintln(r.out)
			return
		}
	}
	fmt.Fprintln(r.out, r.faint(doc))
	fmt.Fprintln(r.out)
}

func (r *Renderer) title(s string) termenv.Style {
	return r.out.String(s).Bold().Foreground(r.out.Color("#a78bfa"))
}

func (r *Renderer) faint(s string) termenv.Style {
	return r.out.String(s).Faint()
}

// Summary writes one shader block.
func (r *Renderer) Summary(s shade.Summary) {
	head := fmt.Sprintf("%s %s", s.Specifier, s.Path)
	if s.TypeName != "" {
		head = fmt.Sprintf("%s %s %s", s.Specifier, s.TypeName, s.Path)
	}
	fmt.Fprintln(r.out, r.title(head))
	if !s.Valid {
		fmt.Fprintln(r.out, "  ", r.faint("(not a shader)"))
	}
	if len(s.Inherits) > 0 {
		paths := make([]string, len(s.Inherits))
		for i, p := range s.Inherits {
			paths[i] = p.String()
		}
		fmt.Fprintf(r.out, "  inherits: %s\n", strings.Join(paths, ", "))
	}

	if s.Valid {
		fmt.Fprintf(r.out, "  implementation: %s\n", r.implementation(s))
	}

	r.ports("inputs", s.Inputs)
	r.ports("outputs", s.Outputs)

	if len(s.SdrMetadata) > 0 {
		fmt.Fprintln(r.out, "  sdrMetadata:")
		for _, key := range sortedKeys(s.SdrMetadata) {
			fmt.Fprintf(r.out, "    %s = %s\n", key, s.SdrMetadata[key])
		}
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) implementation(s shade.Summary) string {
	switch impl := s.Implementation.(type) {
	case shade.IDImplementation:
		if impl.ID == "" {
			return r.out.String("id (unset)").Foreground(r.out.Color("#fb7185")).String()
		}
		return "id " + impl.ID
	case shade.AssetImplementation:
		var parts []string
		for _, t := range impl.SourceTypes() {
			rec := impl.Assets[t]
			part := fmt.Sprintf("%s=%s", sourceTypeLabel(t), rec.Asset)
			if rec.SubIdentifier != "" {
				part += "#" + rec.SubIdentifier
			}
			parts = append(parts, part)
		}
		return "sourceAsset " + strings.Join(parts, " ")
	case shade.CodeImplementation:
		var parts []string
		for _, t := range impl.SourceTypes() {
			parts = append(parts, fmt.Sprintf("%s (%d bytes)", sourceTypeLabel(t), len(impl.Code[t])))
		}
		return "sourceCode " + strings.Join(parts, ", ")
	}
	return string(s.ImplementationSource)
}

func (r *Renderer) ports(label string, ports []shade.PortSummary) {
	if len(ports) == 0 {
		return
	}
	fmt.Fprintf(r.out, "  %s:\n", label)
	for _, p := range ports {
		line := fmt.Sprintf("    %s %s", p.Type, p.Name)
		if p.Value != nil {
			line += fmt.Sprintf(" = %v", p.Value)
		}
		switch {
		case p.Blocked:
			line += " " + r.faint("(blocked)").String()
		case len(p.Sources) > 0:
			line += " <- " + r.out.String(strings.Join(p.Sources, ", ")).Foreground(r.out.Color("#38bdf8")).String()
		}
		if p.Documentation == "" {
			fmt.Fprintln(r.out, line)
			continue
		}
		if r.markdown != nil {
			if doc, err := renderedLines(r.markdown, p.Documentation); err == nil {
				fmt.Fprintln(r.out, line)
				for _, d := range doc {
					if d = strings.TrimSpace(d); d != "" {
						fmt.Fprintln(r.out, "      "+d)
					}
				}
				continue
			}
		}
		fmt.Fprintln(r.out, line+"  "+r.faint("# "+p.Documentation).String())
	}
}

func sourceTypeLabel(t string) string {
	if t == "" {
		return "universal"
	}
	return t
}
