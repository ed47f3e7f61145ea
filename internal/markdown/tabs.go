package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Tab containers look like:
//
//	::: tabs
//	== Server
//	...
//	== Client
//	...
//	:::

var (
	KindTabGroup = ast.NewNodeKind("TabGroup")
	KindTabPanel = ast.NewNodeKind("TabPanel")
)

// TabGroup is the `::: tabs` container block.
type TabGroup struct {
	ast.BaseBlock
}

// Kind implements ast.Node.
func (n *TabGroup) Kind() ast.NodeKind { return KindTabGroup }

// Dump implements ast.Node.
func (n *TabGroup) Dump(source []byte, level int) { ast.DumpHelper(n, source, level, nil, nil) }

// TabPanel is a single `== Label` panel inside a TabGroup.
type TabPanel struct {
	ast.BaseBlock
	Label string
}

// Kind implements ast.Node.
func (n *TabPanel) Kind() ast.NodeKind { return KindTabPanel }

// Dump implements ast.Node.
func (n *TabPanel) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Label": n.Label}, nil)
}

type tabsExtension struct{}

// TabsExtension adds tab container blocks to a goldmark pipeline.
var TabsExtension goldmark.Extender = &tabsExtension{}

func (e *tabsExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&tabGroupParser{}, 50),
		util.Prioritized(&tabPanelParser{}, 51),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&tabsRenderer{}, 500),
	))
}

func lineEnd(line []byte) int {
	n := len(line)
	for n > 0 && (line[n-1] == '\n' || line[n-1] == '\r') {
		n--
	}
	return n
}

func isGroupOpen(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if !bytes.HasPrefix(trimmed, []byte(":::")) {
		return false
	}
	return string(bytes.TrimSpace(trimmed[3:])) == "tabs"
}

func isGroupClose(line []byte) bool {
	return string(bytes.TrimSpace(line)) == ":::"
}

func panelLabel(line []byte) (string, bool) {
	trimmed := bytes.TrimSpace(line)
	if !bytes.HasPrefix(trimmed, []byte("==")) {
		return "", false
	}
	label := bytes.TrimSpace(bytes.TrimLeft(trimmed, "="))
	if len(label) == 0 {
		return "", false
	}
	return string(label), true
}

type tabGroupParser struct{}

func (p *tabGroupParser) Trigger() []byte { return []byte{':'} }

func (p *tabGroupParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	if !isGroupOpen(line) {
		return nil, parser.NoChildren
	}
	reader.Advance(lineEnd(line))
	return &TabGroup{}, parser.HasChildren
}

func (p *tabGroupParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, _ := reader.PeekLine()
	if isGroupClose(line) {
		reader.Advance(lineEnd(line))
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (p *tabGroupParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *tabGroupParser) CanInterruptParagraph() bool { return true }

func (p *tabGroupParser) CanAcceptIndentedLine() bool { return false }

type tabPanelParser struct{}

func (p *tabPanelParser) Trigger() []byte { return []byte{'='} }

func (p *tabPanelParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	if parent.Kind() != KindTabGroup {
		return nil, parser.NoChildren
	}
	line, _ := reader.PeekLine()
	label, ok := panelLabel(line)
	if !ok {
		return nil, parser.NoChildren
	}
	reader.Advance(lineEnd(line))
	return &TabPanel{Label: label}, parser.HasChildren
}

func (p *tabPanelParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, _ := reader.PeekLine()
	if isGroupClose(line) {
		return parser.Close
	}
	if _, ok := panelLabel(line); ok {
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (p *tabPanelParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *tabPanelParser) CanInterruptParagraph() bool { return true }

func (p *tabPanelParser) CanAcceptIndentedLine() bool { return false }

type tabsRenderer struct{}

func (r *tabsRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindTabGroup, r.renderGroup)
	reg.Register(KindTabPanel, r.renderPanel)
}

func (r *tabsRenderer) renderGroup(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<div class=\"tabs\">\n")
	} else {
		_, _ = w.WriteString("</div>\n")
	}
	return ast.WalkContinue, nil
}

func (r *tabsRenderer) renderPanel(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</div>\n")
		return ast.WalkContinue, nil
	}
	panel := n.(*TabPanel)
	_, _ = w.WriteString("<div class=\"tab\" data-label=\"")
	_, _ = w.Write(util.EscapeHTML([]byte(panel.Label)))
	_, _ = w.WriteString("\">\n")
	return ast.WalkContinue, nil
}
