// Package config loads the generator's YAML configuration file.
//
// The file names the packages to analyze, output options, and optionally
// declares schemas directly, for types whose source is not annotated:
//
//	version: "1"
//	packages: ./model/...
//	value_prefix: autoValue_
//	output:
//	  builder_suffix: _builder.go
//	schemas:
//	  - package: example.com/model
//	    type: Response
//	    properties:
//	      - name: id
//	        type: int64
//	        tags: 'json:"id"'
//	      - name: name
//	        type: string
package config
