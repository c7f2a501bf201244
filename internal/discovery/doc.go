// Package discovery finds the directories of a workspace that hold their own
// dependency folder. It either expands the package globs of a monorepo
// manifest (lerna.json, pnpm-workspace.yaml, package.json workspaces) or
// scans the whole tree for manifest and dependency-folder pairs, never
// descending into a dependency folder.
package discovery
