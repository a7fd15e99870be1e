package render

import (
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/my4ng/pugio/pkg/graph"
)

// Default templates applied when the corresponding option is empty.
const (
	DefaultNodeLabel   = "{{.Short}}"
	DefaultNodeTooltip = "{{.Full}}\n{{.SizeBinary}}\n{{.Features}}"
	DefaultEdgeLabel   = "{{.Features}}"
	DefaultEdgeTooltip = "{{.Source}} -> {{.Target}}"
)

// TemplateOptions overrides the label and tooltip templates. Empty fields
// fall back to the defaults above.
type TemplateOptions struct {
	NodeLabel   string
	NodeTooltip string
	EdgeLabel   string
	EdgeTooltip string
}

// NodeContext is the data available to node label and tooltip templates.
type NodeContext struct {
	Short       string
	Extra       string
	Full        string
	Size        uint64
	SizeBinary  string
	SizeDecimal string

	// Metric fields; zero and empty when rendering without a coloring
	// scheme.
	Value        uint64
	ValueBinary  string
	ValueDecimal string
	Scheme       string

	Features string
}

// EdgeContext is the data available to edge label and tooltip templates.
type EdgeContext struct {
	Source   string
	Target   string
	Features string
}

// Templates holds the parsed label and tooltip templates for nodes and
// edges.
type Templates struct {
	nodeLabel   *template.Template
	nodeTooltip *template.Template
	edgeLabel   *template.Template
	edgeTooltip *template.Template
}

// NewTemplates parses the configured templates, falling back to the
// defaults for empty fields.
func NewTemplates(opts TemplateOptions) (*Templates, error) {
	t := &Templates{}
	var err error
	if t.nodeLabel, err = parse("node_label", opts.NodeLabel, DefaultNodeLabel); err != nil {
		return nil, err
	}
	if t.nodeTooltip, err = parse("node_tooltip", opts.NodeTooltip, DefaultNodeTooltip); err != nil {
		return nil, err
	}
	if t.edgeLabel, err = parse("edge_label", opts.EdgeLabel, DefaultEdgeLabel); err != nil {
		return nil, err
	}
	if t.edgeTooltip, err = parse("edge_tooltip", opts.EdgeTooltip, DefaultEdgeTooltip); err != nil {
		return nil, err
	}
	return t, nil
}

func parse(name, text, fallback string) (*template.Template, error) {
	if text == "" {
		text = fallback
	}
	return template.New(name).Parse(text)
}

// Node renders the label and tooltip for a node. scheme is the metric name
// shown in tooltips, empty when no coloring scheme is active.
func (t *Templates) Node(n *graph.Node, size, value uint64, scheme string) (label, tooltip string) {
	ctx := NodeContext{
		Short:       n.Short(),
		Extra:       n.Extra(),
		Full:        n.Full(),
		Size:        size,
		SizeBinary:  humanize.IBytes(size),
		SizeDecimal: humanize.Bytes(size),
		Features:    graph.FormatFeatures(n.Features()),
		Scheme:      scheme,
	}
	if scheme != "" {
		ctx.Value = value
		ctx.ValueBinary = humanize.IBytes(value)
		ctx.ValueDecimal = humanize.Bytes(value)
	}
	return execute(t.nodeLabel, ctx), execute(t.nodeTooltip, ctx)
}

// Edge renders the label and tooltip for an edge.
func (t *Templates) Edge(source, target *graph.Node, e *graph.Edge) (label, tooltip string) {
	ctx := EdgeContext{
		Source:   source.Short(),
		Target:   target.Short(),
		Features: graph.FormatFeatures(e.Features()),
	}
	return execute(t.edgeLabel, ctx), execute(t.edgeTooltip, ctx)
}

// A template that fails at execution time renders its error text instead,
// so a bad field reference shows up in the output rather than aborting the
// whole graph.
func execute(t *template.Template, data any) string {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return err.Error()
	}
	return sb.String()
}
