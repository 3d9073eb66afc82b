package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/beevik/etree"

	"github.com/getmockd/fixturegen/pkg/generator"
)

// writeXML renders batches as
//
//	<records>
//	  <record type="Person" id="...">
//	    <name>...</name>
//	  </record>
//	</records>
//
// Meta fields become attributes without their $ prefix, nested records become
// child elements and sequences repeat the field's element.
func writeXML(w io.Writer, batches []Batch) error {
	doc := newXMLDocument()
	root := doc.CreateElement("records")
	for _, b := range batches {
		for _, rec := range b.Records {
			el := root.CreateElement("record")
			if _, ok := rec.Get(generator.FieldType); !ok && b.Type != "" {
				el.CreateAttr("type", b.Type)
			}
			appendRecord(el, rec)
		}
	}
	return writeXMLDocument(w, doc)
}

func writeXMLValues(w io.Writer, values []any) error {
	doc := newXMLDocument()
	root := doc.CreateElement("values")
	for _, v := range values {
		appendValue(root, "value", v)
	}
	return writeXMLDocument(w, doc)
}

func newXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc
}

func writeXMLDocument(w io.Writer, doc *etree.Document) error {
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("encoding xml: %w", err)
	}
	return nil
}

func appendRecord(el *etree.Element, rec generator.Record) {
	for _, key := range rec.Keys() {
		v, _ := rec.Get(key)
		if generator.IsMeta(key) {
			el.CreateAttr(elementName(strings.TrimPrefix(key, generator.MetaPrefix)), text(v))
			continue
		}
		appendValue(el, key, v)
	}
}

func appendValue(parent *etree.Element, name string, v any) {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			appendValue(parent, name, item)
		}
	case generator.Record:
		appendRecord(parent.CreateElement(elementName(name)), t)
	case map[string]any:
		child := parent.CreateElement(elementName(name))
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			appendValue(child, k, t[k])
		}
	case nil:
		parent.CreateElement(elementName(name))
	default:
		parent.CreateElement(elementName(name)).SetText(text(v))
	}
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

// elementName makes name usable as an XML element or attribute name.
func elementName(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range name {
		valid := unicode.IsLetter(r) || r == '_' ||
			(i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'))
		if valid {
			b.WriteRune(r)
		} else if i == 0 && unicode.IsDigit(r) {
			b.WriteByte('_')
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
