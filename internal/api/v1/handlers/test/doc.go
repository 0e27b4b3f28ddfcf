// Package test contains HTTP handler tests.
package test
