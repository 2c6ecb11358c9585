// =============================================================================
// C Struct to Rust Converter - Rewrite Rules
// =============================================================================
//
// This file defines the fixed, ordered rule list used to rewrite C struct
// declarations into Rust struct declarations.
//
// RULE ORDER:
//   1. pack directive       #pragma pack(N)        -> #[repr(packed(N))]
//   2. struct block         struct X { ... };      -> pub struct X { ... }
//   3. uintN_t field        uint32_t a;            -> u32 a;
//   4. intN_t field         int16_t a;             -> i16 a;
//   5. int field            int a;                 -> i32 a;
//   6. charN_t field        char16_t a;            -> u16 a;
//   7. short field          short a;               -> u16 a;
//   8. float field          float a;               -> f32 a;
//   9. array field          T a[N];                -> [T; N] a;
//  10. catch-all field      T a;                   -> pub a: T,
//
// The order is load-bearing. Rules 3-8 normalize element types before rule 9
// builds the array type, and rule 10 re-matches everything earlier rules
// produced to flip "TYPE NAME;" into "pub NAME: TYPE,".
//
// =============================================================================

package rewriter

import (
	"github.com/dlclark/regexp2"
)

// Rule is a single pattern/template substitution applied over a whole buffer.
type Rule struct {
	// Name is a short human-readable label used in logs and reports.
	Name string

	// Pattern is the compiled search expression.
	Pattern *regexp2.Regexp

	// Template is the replacement, in .NET substitution syntax (${1}, ${2}, ...).
	Template string
}

// Character classes. Whitespace here covers the Unicode separators, \v, \x85 and
// the \x1c-\x1f information separators; \d is any Unicode decimal digit.
const (
	nonSpace = `[^\s\x1c-\x1f]`
	digit    = `\d`
)

// structTemplate is the Rust rendering of a matched struct block. FFPacket is
// the marker trait the generated packet structs implement.
const structTemplate = "#[repr(C)]\n" +
	"#[derive(Debug, Copy, Clone)]\n" +
	"pub struct ${1} {${2}}\n" +
	"impl FFPacket for ${1} {}"

func mustRule(name, pattern, template string) Rule {
	return Rule{
		Name:     name,
		Pattern:  regexp2.MustCompile(pattern, regexp2.None),
		Template: template,
	}
}

// defaultRules is built once at package initialization and never mutated.
var defaultRules = []Rule{
	mustRule("pack_directive", `#pragma pack\((`+digit+`+)\)`, "#[repr(packed(${1}))]"),
	mustRule("struct_block", `struct (`+nonSpace+`+) \{([\S\s]+?)\};`, structTemplate),
	mustRule("uint_fixed", `uint(`+digit+`+)_t (`+nonSpace+`+;)`, "u${1} ${2}"),
	mustRule("int_fixed", `int(`+digit+`+)_t (`+nonSpace+`+;)`, "i${1} ${2}"),
	mustRule("int_default", `int (`+nonSpace+`+;)`, "i32 ${1}"),
	mustRule("char_fixed", `char(`+digit+`+)_t (`+nonSpace+`+;)`, "u${1} ${2}"),
	mustRule("short", `short (`+nonSpace+`+;)`, "u16 ${1}"),
	mustRule("float", `float (`+nonSpace+`+;)`, "f32 ${1}"),
	mustRule("array_field", `(`+nonSpace+`+) (`+nonSpace+`+)\[(`+digit+`+)\];`, "[${1}; ${3}] ${2};"),
	mustRule("field", `(`+nonSpace+`+|\[.+\]) (`+nonSpace+`+);`, "pub ${2}: ${1},"),
}

// Rules returns a copy of the fixed rule list, in application order.
//
// The returned slice may be reordered or truncated by the caller without
// affecting Rewrite. The compiled patterns are safe for concurrent use.
func Rules() []Rule {
	rules := make([]Rule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}
