package einteger

// reportInvariant records a violated internal invariant. Callers recover
// with a step that is always valid, so the result stays correct. Builds
// tagged eintdebug panic instead.
func reportInvariant(component, msg string) {
	logger.Load().Error().
		Str("component", component).
		Msg(msg)
	if debugAssertions {
		panic("einteger: " + component + ": " + msg)
	}
}
