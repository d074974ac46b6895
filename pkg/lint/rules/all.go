// Package rules registers every built-in rule group. Importing it for
// side effects is how binaries opt in to the full rule set:
//
//	import _ "github.com/Jayk56/dslyrics/pkg/lint/rules"
//
// Programs that want a subset import individual groups instead.
package rules

import (
	_ "github.com/Jayk56/dslyrics/pkg/lint/rules/musical"
	_ "github.com/Jayk56/dslyrics/pkg/lint/rules/prosody"
	_ "github.com/Jayk56/dslyrics/pkg/lint/rules/structure"
)
