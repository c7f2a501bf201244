// Package parser reads list-valued fields, such as the package glob patterns
// of a monorepo manifest, out of JSON and YAML files. Fields are addressed
// with dot notation ("workspaces.packages").
package parser
