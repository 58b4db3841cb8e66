// Package value implements the dynamic value domain of the OpenSCAD-style
// scripting language: a tagged union over undefined, bool, number, range,
// vector, and string, with total arithmetic that never traps.
//
// Every binary or unary operation is closed over the domain: an operand
// combination that doesn't make sense produces Undef rather than an error.
// Values are represented as a closed tagged union dispatched by a type
// switch, rather than as a class hierarchy.
package value
