// Package source loads fixture definitions from JSON or YAML files. A
// definition pairs a template with its specs:
//
//	name: pet
//	count: 5
//	template:
//	  name: ""
//	  age: 0
//	  weight: 0.0
//	  tags: [""]
//	specs:
//	  age: 0 < integer < 20
//	  tags: string[4]
//
// Whole numbers in the template mark integer fields and numbers with a
// fraction mark real ones, in both formats.
package source
