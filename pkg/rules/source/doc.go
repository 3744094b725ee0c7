// Package source reads rule files and decodes them into engine rules.
//
// A rule file is YAML:
//
//	rules:
//	  - condition: "sid == 'ANEKI1L' and arr != 'EDDS'"
//	    action: {kind: error, msg: DST}
//	  - condition: "sid == 'ANEKI1L' and rfl > 33000"
//	    action: {kind: error, msg: RFL}
//
// Sources only fetch raw documents; Decode turns one document into rules.
// FileSource walks a directory and returns documents sorted by their
// slash-separated relative path, so rule priority does not depend on the
// order the file system lists entries in:
//
//	src := source.NewFileSource("rules/", source.FileOptions{})
//	docs, err := src.Load(ctx)
//	for _, doc := range docs {
//	    rules, err := source.Decode(doc.Name, doc.Data)
//	    ...
//	}
//
// MemorySource serves fixed documents and is meant for tests. GitSource
// reads the rule directory of a git clone kept current by pkg/rules/git.
package source
