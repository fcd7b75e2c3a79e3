package fold

import (
	"math"

	"github.com/defogjs/defog/internal/js/ast"
)

// NormalizeNumber rewrites a numeric literal spelled in an alternate
// radix (0x/0b/0o prefixes or legacy leading-zero octal) to its
// canonical decimal spelling. Literals already in canonical form are
// untouched, as are raw forms that do not describe a finite number, so
// the rewrite is idempotent.
func NormalizeNumber(lit *ast.NumberLit) Outcome {
	if lit.Raw == "" || !ast.IsRadixForm(lit.Raw) {
		return Unchanged
	}
	if math.IsNaN(lit.Value) || math.IsInf(lit.Value, 0) {
		// nothing to normalize; leave the spelling alone
		return Unchanged
	}
	canon := ast.FormatNumber(lit.Value)
	if canon == lit.Raw {
		return Unchanged
	}
	lit.Raw = canon
	return Replaced
}

// NormalizeString clears the raw display form of a string literal whose
// source spelling contains \x or \u escapes, so the printer emits the
// decoded characters directly. A no-op when no such escape is present.
func NormalizeString(lit *ast.StringLit) Outcome {
	if lit.Raw == "" || !ast.HasEncodedEscape(lit.Raw) {
		return Unchanged
	}
	lit.Raw = ""
	return Replaced
}
