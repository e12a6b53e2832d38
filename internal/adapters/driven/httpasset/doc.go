// Package httpasset fetches slide documents served over HTTP.
//
// Modification times come from the Last-Modified response header, so a
// remote deck can be polled for changes the same way as local files.
package httpasset
