package model

import "time"

// Metadata is the document summary information shared by every
// supported format. String fields are empty and times are zero when the
// document does not carry the value.
type Metadata struct {
	Title       string
	Author      string
	Application string
	Created     time.Time
	Modified    time.Time
}

// IsZero reports whether no metadata field is set.
func (m Metadata) IsZero() bool {
	return m.Title == "" && m.Author == "" && m.Application == "" &&
		m.Created.IsZero() && m.Modified.IsZero()
}
