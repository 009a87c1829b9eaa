package xlsx

import (
	"bytes"

	"github.com/richardlehane/mscfb"
)

// detectContainer classifies bytes that failed to open as a zip archive.
// It returns a short description of the recognized container, or "" when the
// data is not a known container at all.
func detectContainer(data []byte) string {
	if len(data) < 8 {
		return ""
	}
	// Compound-document magic, the container of legacy binary workbooks.
	magic := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	if !bytes.Equal(data[:8], magic) {
		return ""
	}
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "compound-document container"
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "Workbook", "Book":
			return "legacy binary workbook (BIFF)"
		}
	}
	return "compound-document container"
}
