// Package cfb navigates OLE2 compound-file binary containers, the
// physical layer beneath legacy DOC, XLS, and PPT files. Directory
// walking is delegated to github.com/richardlehane/mscfb; this package
// adds exact-name stream lookup (including the control-character
// prefixes used by the property-set stream names) with per-call file
// handle scoping.
package cfb

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/richardlehane/mscfb"
)

// ErrInvalidContainer indicates the compound-file header or directory
// failed to parse.
var ErrInvalidContainer = errors.New("cfb: invalid or corrupted compound file")

// ErrStreamNotFound indicates a named stream is absent from the container.
var ErrStreamNotFound = errors.New("cfb: stream not found")

// Well-known stream names. The \x05 prefix on the property-set streams is
// part of the name, not an artifact.
const (
	SummaryInformation         = "\x05SummaryInformation"
	DocumentSummaryInformation = "\x05DocumentSummaryInformation"
	WorkbookStream             = "Workbook"
	BookStream                 = "Book"
	PowerPointDocument         = "PowerPoint Document"
)

// StreamNames lists the named streams in the container at path.
func StreamNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := mscfb.New(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}

	var names []string
	for {
		entry, err := doc.Next()
		if err != nil {
			break
		}
		names = append(names, entry.Name)
	}
	return names, nil
}

// ReadStream returns the full byte content of the named stream. The name
// must match exactly, except that a missing leading control character is
// tolerated in either direction.
func ReadStream(path, name string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := mscfb.New(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}

	want := trimControlPrefix(name)
	for {
		entry, err := doc.Next()
		if err != nil {
			break
		}
		if entry.Name == name || trimControlPrefix(entry.Name) == want {
			data, err := io.ReadAll(entry)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidContainer, name, err)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrStreamNotFound, trimControlPrefix(name))
}

func trimControlPrefix(name string) string {
	return strings.TrimLeftFunc(name, func(r rune) bool { return r < 0x20 })
}
