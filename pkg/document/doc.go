// Package document turns raw install.<ext> files into canonical ConfigDocuments.
//
// Each supported serialization has a small adapter that produces a generic
// key/value tree. Every adapter funnels into Normalize, the single routine
// that validates shape and builds the types.ConfigDocument, so nothing
// downstream ever branches on the source format.
//
// The literal-expression format (install.py) is read with the Starlark
// parser and only literal nodes are accepted. Nothing in a document is ever
// evaluated: names other than True, False and None, calls, operators and
// comprehensions are rejected as parse errors.
package document
