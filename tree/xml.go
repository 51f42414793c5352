package tree

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"

	"github.com/ava12/parsec/parser"
)

// ElementName returns XML element name of the node: rule name for named rule results,
// combinator kind otherwise.
func ElementName(n Node) string {
	if name := n.Name(); name != "" {
		return name
	}

	switch n.Parser().(type) {
	case *parser.LiteralParser:
		return "Literal"
	case *parser.RegexParser:
		return "Regex"
	case *parser.SequenceParser:
		return "Concat"
	case *parser.BranchParser:
		return "Branch"
	case *parser.RepeatedParser:
		return "Repeated"
	case *parser.StrictParser:
		return "Strict"
	case *parser.NotParser:
		return "Not"
	}
	return "Parser"
}

// WriteXML writes indented XML view of the tree rooted at n.
// Every element has index and length attributes, leaves contain matched text,
// failed leaves contain ParseError element with the failure description.
func WriteXML(w io.Writer, n Node) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if e := encodeNode(enc, n); e != nil {
		return e
	}
	return enc.Flush()
}

// XML returns indented XML view of the tree rooted at n.
func XML(n Node) string {
	var buf bytes.Buffer
	if e := WriteXML(&buf, n); e != nil {
		return ""
	}
	return buf.String()
}

func encodeNode(enc *xml.Encoder, n Node) error {
	start := xml.StartElement{
		Name: xml.Name{Local: ElementName(n)},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "index"}, Value: strconv.Itoa(n.Index())},
			{Name: xml.Name{Local: "length"}, Value: strconv.Itoa(n.Length())},
		},
	}
	if e := enc.EncodeToken(start); e != nil {
		return e
	}

	switch {
	case n.Len() > 0:
		for _, c := range n.Children() {
			if e := encodeNode(enc, c); e != nil {
				return e
			}
		}

	case n.ErrorType() > parser.SubParserError:
		e := enc.EncodeElement(n.ErrorMessage(), xml.StartElement{Name: xml.Name{Local: "ParseError"}})
		if e != nil {
			return e
		}

	default:
		if e := enc.EncodeToken(xml.CharData(n.String())); e != nil {
			return e
		}
	}

	return enc.EncodeToken(start.End())
}
