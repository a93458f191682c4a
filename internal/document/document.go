package document

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Tag is one (name, level) pair from a Logger document, in document order.
type Tag struct {
	Name  string
	Level string
}

// Document is one parsed configuration document. The zero value is not
// usable; obtain instances through Parse.
type Document struct {
	name string
	tree *etree.Document
	root *etree.Element

	// id is attached at runtime by the config manager and is never
	// serialized back into the tree.
	id string
}

// Parse reads the XML file at path and returns its tree. The document's
// root element must be named rootName.
func Parse(path, rootName string) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("document: read %q: %w", path, err)
	}

	root := tree.SelectElement(rootName)
	if root == nil {
		return nil, fmt.Errorf("document: %q has no <%s> root element", path, rootName)
	}

	return &Document{name: rootName, tree: tree, root: root}, nil
}

// Name returns the root element name the document was parsed as.
func (d *Document) Name() string { return d.name }

// Version returns the root element's version attribute, or "" if absent.
// Conversion to an integer (and the "0 means unreadable" rule) is the
// caller's concern.
func (d *Document) Version() string {
	return d.root.SelectAttrValue("version", "")
}

// SetID attaches the resolved server identity to the document for the
// process lifetime.
func (d *Document) SetID(id string) { d.id = id }

// ID returns the attached server identity, or "" before SetID.
func (d *Document) ID() string { return d.id }

// LogPath returns the text of the <LogPath> child element, trimmed.
// Returns "" when the element is absent.
func (d *Document) LogPath() string {
	e := d.root.SelectElement("LogPath")
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Text())
}

// Tags returns every <Tag name="..." level="..."/> child in document order.
func (d *Document) Tags() []Tag {
	var tags []Tag
	for _, e := range d.root.SelectElements("Tag") {
		tags = append(tags, Tag{
			Name:  e.SelectAttrValue("name", ""),
			Level: e.SelectAttrValue("level", ""),
		})
	}
	return tags
}

// Clone returns a deep copy sharing no tree nodes with the receiver.
func (d *Document) Clone() *Document {
	tree := d.tree.Copy()
	return &Document{
		name: d.name,
		tree: tree,
		root: tree.SelectElement(d.name),
		id:   d.id,
	}
}

// XML re-emits the document tree as indented XML, without any declaration
// or comment prologue.
func (d *Document) XML() (string, error) {
	tree := etree.NewDocument()
	tree.AddChild(d.root.Copy())
	tree.Indent(4)
	out, err := tree.WriteToString()
	if err != nil {
		return "", fmt.Errorf("document: serialize %s: %w", d.name, err)
	}
	return out, nil
}

// Render produces a full self-describing XML rendering: declaration, the
// given comment block, then the document tree.
func (d *Document) Render(comment string) (string, error) {
	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	tree.CreateComment(comment)
	tree.AddChild(d.root.Copy())
	tree.Indent(4)
	out, err := tree.WriteToString()
	if err != nil {
		return "", fmt.Errorf("document: render %s: %w", d.name, err)
	}
	return out, nil
}

// JSON converts the document tree to an indented generic JSON object.
// Attributes are prefixed with "@", text content of mixed elements is kept
// under "#text", and repeated sibling elements collapse into arrays.
func (d *Document) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(map[string]any{d.root.Tag: elementValue(d.root)}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("document: serialize %s: %w", d.name, err)
	}
	return out, nil
}

// elementValue converts one element to its JSON representation: a plain
// string for leaf elements without attributes, otherwise a map.
func elementValue(e *etree.Element) any {
	children := e.ChildElements()
	text := strings.TrimSpace(e.Text())

	if len(children) == 0 && len(e.Attr) == 0 {
		return text
	}

	m := make(map[string]any)
	for _, a := range e.Attr {
		m["@"+a.Key] = a.Value
	}
	if len(children) == 0 && text != "" {
		m["#text"] = text
	}
	for _, c := range children {
		v := elementValue(c)
		switch existing := m[c.Tag].(type) {
		case nil:
			m[c.Tag] = v
		case []any:
			m[c.Tag] = append(existing, v)
		default:
			m[c.Tag] = []any{existing, v}
		}
	}
	return m
}
