package lang

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/constx/log"
)

// XML element and attribute names.
const (
	xmlRoot     = "configuration"
	xmlConstant = "constant"
	xmlName     = "name"
	xmlList     = "list"
	xmlValue    = "value"
)

// FormatXML writes the bindings as an XML document to w.
//
// The root element is <configuration>. Each binding is a <constant> element
// with a name attribute, in store order. A scalar is the element's text; a
// list is a <list> child holding one <value> per item, and an item that is
// itself a list nests another <list> inside its <value>.
//
// A positive indent pretty-prints with that many spaces per level. If header
// is set, the XML declaration is written first. The output always ends with
// a newline, and nothing is written to w if encoding fails.
func (b *Bindings) FormatXML(
	ctx context.Context,
	w io.Writer,
	indent int,
	header bool,
) error {
	var buf bytes.Buffer

	if header {
		buf.WriteString(xml.Header)
	}

	enc := xml.NewEncoder(&buf)
	if indent > 0 {
		enc.Indent("", strings.Repeat(" ", indent))
	}

	if err := encodeBindings(enc, b); err != nil {
		return ErrRender.Wrap(err).With(slog.String("format", XML.String()))
	}

	buf.WriteByte('\n')

	log.FromContext(ctx).TraceContext(ctx, "rendered xml",
		slog.Int("constant_count", b.Len()),
		slog.Int("bytes", buf.Len()))

	_, err := buf.WriteTo(w)

	return err
}

func encodeBindings(enc *xml.Encoder, b *Bindings) error {
	root := xml.StartElement{Name: xml.Name{Local: xmlRoot}}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	for name, v := range b.All() {
		elem := xml.StartElement{
			Name: xml.Name{Local: xmlConstant},
			Attr: []xml.Attr{{Name: xml.Name{Local: xmlName}, Value: name}},
		}

		if err := encodeElement(enc, elem, v); err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}

	return enc.Close()
}

// encodeElement writes elem containing v as text or as a nested <list>.
func encodeElement(enc *xml.Encoder, elem xml.StartElement, v Value) error {
	if err := enc.EncodeToken(elem); err != nil {
		return err
	}

	if v.IsList() {
		if err := encodeList(enc, v); err != nil {
			return err
		}
	} else if err := enc.EncodeToken(xml.CharData(v.Text())); err != nil {
		return err
	}

	return enc.EncodeToken(elem.End())
}

func encodeList(enc *xml.Encoder, v Value) error {
	list := xml.StartElement{Name: xml.Name{Local: xmlList}}
	if err := enc.EncodeToken(list); err != nil {
		return err
	}

	item := xml.StartElement{Name: xml.Name{Local: xmlValue}}
	for _, iv := range v.Items() {
		if err := encodeElement(enc, item, iv); err != nil {
			return err
		}
	}

	return enc.EncodeToken(list.End())
}
