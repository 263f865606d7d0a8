// Package templates provides starter scenario templates.
//
// Templates are written by "vreconcile init" into the scenarios directory.
// Each one exercises a different part of the reconciler.
//
// # Available Templates
//
//   - keyed: reorder a keyed list, then replace one item
//   - attributes: add, change and drop element properties
//   - fragments: move and reshape fragment groups
//
// # Usage
//
//	tmpl, err := templates.Get("keyed")
//	if err != nil {
//	    return err
//	}
//	if err := tmpl.Create(scenariosDir, templates.Config{Name: "example"}); err != nil {
//	    return err
//	}
//
// # Template Variables
//
//	{{.Name}}         - Scenario name, also the file name
//	{{.Description}}  - Scenario description
package templates
