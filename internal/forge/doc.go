// Package forge reads and creates repository tags through the REST API of a
// Gitea or GitHub server, using the official client SDKs.
package forge
