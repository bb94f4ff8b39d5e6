package agent

import (
	"encoding/xml"
	"fmt"
	"io"
)

// dumpNode is the best-effort wire shape for Dump (spec §6 "XML emit"). The
// format is explicitly not a stable contract (spec §9); it exists purely
// for ad-hoc graph introspection.
type dumpNode struct {
	XMLName  xml.Name `xml:"agent"`
	Type     string   `xml:"type,attr"`
	Ptr      string   `xml:"ptr,attr"`
	State    string   `xml:"state,attr"`
	Live     bool     `xml:"live,attr"`
	Children []dumpNode `xml:"agent,omitempty"`
}

// Dump writes a tagged record of this agent and its dependencies, honouring
// Dumper. Children that do not themselves implement Dumper are omitted,
// matching "subordinate children are nested" only where a Dump exists.
func (b *Base[S]) Dump(w io.Writer) error {
	node := b.buildDumpNode()
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("%s: Dump: %w", b.name, err)
	}
	return enc.Flush()
}

func (b *Base[S]) buildDumpNode() dumpNode {
	node := dumpNode{
		Type:  b.name,
		Ptr:   fmt.Sprintf("%p", b),
		State: fmt.Sprintf("%v", b.state),
		Live:  b.live,
	}
	for _, d := range b.deps {
		if d == nil {
			continue
		}
		if dd, ok := d.(interface{ buildDumpNode() dumpNode }); ok {
			node.Children = append(node.Children, dd.buildDumpNode())
			continue
		}
		if dmp, ok := d.(Dumper); ok {
			var sb stringWriter
			if err := dmp.Dump(&sb); err == nil {
				node.Children = append(node.Children, dumpNode{Type: fmt.Sprintf("opaque:%s", sb.String())})
			}
		}
	}
	return node
}

// stringWriter is a minimal io.Writer accumulating into a string, used only
// to capture a nested opaque Dumper's output for embedding as a leaf.
type stringWriter struct{ buf []byte }

func (s *stringWriter) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *stringWriter) String() string { return string(s.buf) }
