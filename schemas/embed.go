// Package schemas embeds the JSON Schema for .json variable files and
// registers it with the vars package on import. CLI entry points should
// import this package with a blank identifier:
// import _ "github.com/gi8lino/templator/schemas"
package schemas

import (
	"embed"

	"github.com/gi8lino/templator/internal/vars"
)

//go:embed templator-vars.schema.json
var fs embed.FS

func init() {
	data, err := fs.ReadFile("templator-vars.schema.json")
	if err != nil {
		panic("schemas: failed to read embedded templator-vars.schema.json: " + err.Error())
	}
	vars.SetSchema(data)
}
