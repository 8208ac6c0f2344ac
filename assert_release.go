//go:build !eintdebug

package einteger

const debugAssertions = false
