// Package hcontext is a small set of helpers for values kept in request
// contexts: the request ID and the route template the request matched.
//
// Each additional bit of data stored in a context should have its own file
// in this package.
package hcontext
