package lifetime

// Elision is the result of applying the elision rules to one
// signature. Inputs has one entry per parameter, NoID for parameters
// that are not references. Output is NoID when no rule assigns the
// return type a lifetime; a reference return left without one is an
// ambiguous elision the signature check must reject.
type Elision struct {
	Inputs []ID
	Output ID
}

// Elide applies the three ordered elision rules to an unannotated
// signature:
//
//  1. Exactly one reference parameter and a reference return share one
//     fresh lifetime.
//  2. Several reference parameters where the first parameter is a
//     reference: the first parameter's fresh lifetime is shared with
//     the return, every other reference parameter gets its own.
//  3. Otherwise every reference parameter gets an independent fresh
//     lifetime and the return gets none.
func Elide(ctx *Context, inputIsRef []bool, hasReturnRef bool) Elision {
	refCount := 0
	for _, isRef := range inputIsRef {
		if isRef {
			refCount++
		}
	}

	inputs := make([]ID, len(inputIsRef))

	// Rule 1.
	if refCount == 1 && hasReturnRef {
		shared := ctx.Fresh()
		for i, isRef := range inputIsRef {
			if isRef {
				inputs[i] = shared
			}
		}
		return Elision{Inputs: inputs, Output: shared}
	}

	// Rule 2.
	if refCount > 1 && hasReturnRef && inputIsRef[0] {
		first := ctx.Fresh()
		inputs[0] = first
		for i := 1; i < len(inputIsRef); i++ {
			if inputIsRef[i] {
				inputs[i] = ctx.Fresh()
			}
		}
		return Elision{Inputs: inputs, Output: first}
	}

	// Rule 3.
	for i, isRef := range inputIsRef {
		if isRef {
			inputs[i] = ctx.Fresh()
		}
	}
	return Elision{Inputs: inputs}
}
