// Package browse implements the interactive folder browser: it lists a
// folder of the workspace, adds shortcuts back to the dependency folder and
// one level up, and follows the user's selection until a file is opened or
// the picker is dismissed. The folder of the last opened file is kept in a
// Store so the next invocation can start there.
package browse
