package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an on-disk encoding of a Book.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension.
// Anything other than .yaml/.yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a Book from data.
// Empty or whitespace-only data decodes to an empty book.
func Decode(data []byte, format Format) (*Book, error) {
	b := NewBook()
	if len(bytes.TrimSpace(data)) == 0 {
		return b, nil
	}

	var contacts map[string]Details
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &contacts); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &contacts); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	for name, d := range contacts {
		b.Contacts[name] = d
	}
	return b, nil
}

// Encode serializes a Book.
// JSON is indented by two spaces. YAML keys are sorted by name.
// Both end with a newline.
func Encode(b *Book, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(buildBookNode(b))
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return data, nil
	case FormatJSON:
		contacts := b.Contacts
		if contacts == nil {
			contacts = map[string]Details{}
		}
		data, err := json.MarshalIndent(contacts, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// buildBookNode creates a yaml.Node tree for a Book with names in sorted order.
func buildBookNode(b *Book) *yaml.Node {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range b.Names() {
		d := b.Contacts[name]
		entry := &yaml.Node{Kind: yaml.MappingNode}
		addStringField(entry, "phone", d.Phone)
		addStringField(entry, "email", d.Email)
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name, Tag: "!!str"},
			entry,
		)
	}
	return doc
}

// MarshalContact renders a single contact as a YAML document.
// Used for editing a contact in $EDITOR.
func MarshalContact(c Contact) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	addStringField(node, "name", c.Name)
	addStringField(node, "phone", c.Phone)
	addStringField(node, "email", c.Email)
	return yaml.Marshal(node)
}

// UnmarshalContact parses a contact document written by MarshalContact.
func UnmarshalContact(data []byte) (Contact, error) {
	var c Contact
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Contact{}, fmt.Errorf("failed to parse contact: %w", err)
	}
	return c, nil
}

func addStringField(node *yaml.Node, key, value string) {
	// Force string tag so values like "555" or "yes" stay strings.
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"},
	)
}
