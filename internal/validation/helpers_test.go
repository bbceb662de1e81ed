package validation

import "github.com/klauern/skillfoundry/internal/parser"

// frontmatterOf builds a Frontmatter from key/value pairs.
func frontmatterOf(kv ...string) *parser.Frontmatter {
	fm := parser.NewFrontmatter()
	for i := 0; i+1 < len(kv); i += 2 {
		fm.Set(kv[i], kv[i+1])
	}
	return fm
}
