// Package template emits skeleton config documents and the markdown text
// explaining the document schema.
package template
