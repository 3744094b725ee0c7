package source

import "context"

// Document is the raw content of one rule file.
type Document struct {
	// Name identifies the document in rule references and errors.
	Name string
	// Path is the file the document was read from, empty for in-memory
	// documents.
	Path string
	Data []byte
}

// Source produces rule documents in priority order.
type Source interface {
	Load(ctx context.Context) ([]Document, error)
	String() string
}
