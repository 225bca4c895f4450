// Package convert turns raw cell text into typed values.
//
// A Registry keeps one converter per target type. Converters are built on the
// first request for a type and reused by every schema that binds a member of
// that type. A converter never panics and never returns an error: it reports
// failure through its boolean result and leaves the fallback decision to the
// caller.
//
// Built-in converters cover the kinds listed in package primitive, types
// implementing encoding.TextUnmarshaler and pointers to any of those. Other
// types can be supported with Register or RegisterCaster:
//
//	convert.Register(r, func(text string) (Color, bool) { ... })
//	err := convert.RegisterCaster(r, ParseColor) // func(string) (Color, error)
package convert
