// Package migrations holds the ordered schema migration steps shipped with
// the service. The domain schema itself lands in later sprints; only
// prerequisite extensions live here so far.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
