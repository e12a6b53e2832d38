// Package filesystem reads slide projects from the local disk.
//
// Store discovers slides under <project>/svg_output, reads their
// modification times for change polling and loads their content.
package filesystem
