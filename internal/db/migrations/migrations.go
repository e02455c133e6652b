// Package migrations holds the schema history of the credential store.
// SQL steps are embedded; steps that need to inspect the existing schema
// are registered as Go migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
