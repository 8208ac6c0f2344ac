//go:build eintdebug

package einteger

const debugAssertions = true
