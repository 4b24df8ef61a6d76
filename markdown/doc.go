// Package markdown holds the Markdown document model and its serializer.
//
// A Document is a tree of Block and Inline values. Serialize renders it under
// a set of style Options:
//
//	doc := markdown.Document{Children: []markdown.Block{
//		markdown.Heading{Level: 1, Content: []markdown.Inline{markdown.Text{Value: "Title"}}},
//	}}
//	out, err := markdown.Serialize(doc, markdown.DefaultOptions())
//	// out == "Title\n====="
//
// Text values are written verbatim: callers are expected to escape them
// before building the tree.
package markdown
