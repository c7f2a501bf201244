// Package discover provides the "nmsearch packages" and "nmsearch scan"
// commands, which print the package folders a workspace offers for browsing
// without starting a browse session.
package discover
