// Package ooxml holds the streaming-XML plumbing shared by the DOCX,
// XLSX, and PPTX parsers: attribute lookup by local name, package
// relationship parsing, and the docProps metadata parts.
package ooxml

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"
)

// AttrVal returns the value of the attribute with the given local name,
// regardless of namespace prefix. Empty when absent.
func AttrVal(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// Relationship is one entry of a package relationships part.
type Relationship struct {
	ID     string
	Type   string
	Target string
}

// ParseRelationships decodes a .rels part into its relationship entries.
func ParseRelationships(data []byte) ([]Relationship, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var rels []Relationship
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		rels = append(rels, Relationship{
			ID:     AttrVal(se, "Id"),
			Type:   AttrVal(se, "Type"),
			Target: AttrVal(se, "Target"),
		})
	}
	return rels, nil
}

// ResolveTarget turns a relationship target into a full package entry
// path relative to the part directory (e.g. "xl" or "ppt").
func ResolveTarget(baseDir, target string) string {
	target = strings.TrimPrefix(target, "/")
	if strings.HasPrefix(target, baseDir+"/") {
		return target
	}
	return baseDir + "/" + target
}

// CoreProperties is the Dublin-Core subset of docProps/core.xml that the
// parsers surface.
type CoreProperties struct {
	Title    string
	Creator  string
	Created  time.Time
	Modified time.Time
}

// ParseCoreProperties extracts title, creator, and the two W3CDTF
// timestamps from a core-properties part. Unparseable values are left
// zero; metadata is an enrichment, never an error.
func ParseCoreProperties(data []byte) CoreProperties {
	var props CoreProperties
	dec := xml.NewDecoder(bytes.NewReader(data))
	var current string
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "title", "creator", "created", "modified":
				current = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if current != "" {
				text.Write(t)
			}
		case xml.EndElement:
			if current == "" || t.Name.Local != current {
				continue
			}
			value := strings.TrimSpace(text.String())
			switch current {
			case "title":
				props.Title = value
			case "creator":
				props.Creator = value
			case "created":
				props.Created = parseW3CDTF(value)
			case "modified":
				props.Modified = parseW3CDTF(value)
			}
			current = ""
		}
	}
	return props
}

// AppProperties is the extended-properties subset of docProps/app.xml
// that the parsers surface.
type AppProperties struct {
	Application string
	Pages       int
}

// ParseAppProperties extracts the originating application name and the
// page count from an extended-properties part.
func ParseAppProperties(data []byte) AppProperties {
	var props AppProperties
	dec := xml.NewDecoder(bytes.NewReader(data))
	var current string
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Application", "Pages":
				current = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if current != "" {
				text.Write(t)
			}
		case xml.EndElement:
			if current == "" || t.Name.Local != current {
				continue
			}
			value := strings.TrimSpace(text.String())
			switch current {
			case "Application":
				props.Application = value
			case "Pages":
				props.Pages = parseInt(value)
			}
			current = ""
		}
	}
	return props
}

// parseW3CDTF parses the ISO-8601 profile used by core properties.
func parseW3CDTF(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func parseInt(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
