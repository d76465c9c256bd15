// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against an embedded schema.
//
// Config files and CUE registry files go through the same steps: compile
// the schema, compile the user file, unify it with a schema definition,
// validate, decode. Errors name the file and the JSON path of the offending
// field:
//
//	config.cue: listing.width: invalid value 0 (out of bound >=1)
package cueutil
