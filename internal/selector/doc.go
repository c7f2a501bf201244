// Package selector resolves which folder a browse session starts from: it
// picks a workspace folder when several are open, runs discovery on it, and
// lets the user choose between the workspace root and its packages.
package selector
