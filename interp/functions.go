// ==============================================================================================
// FILE: interp/functions.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: DEF FN storage and invocation. Kept separate from interp.go because it is the one
//          eval.Host method that calls back into eval.Eval, closing the loop between the two
//          packages through the Host seam rather than a direct import cycle.
// ==============================================================================================

package interp

import (
	"applesoft/basicerr"
	"applesoft/eval"
	"applesoft/value"
)

// defineFunction records a DEF FN NAME(PARAM) = EXPR definition. lineIdx
// and tokPos locate EXPR's first token within the stored program line so
// it can be re-evaluated on every call.
func (it *Interpreter) defineFunction(name, param string, lineIdx, tokPos int) {
	it.userFuncs[name] = userFunc{param: param, lineIdx: lineIdx, tokPos: tokPos}
}

// CallUserFunction implements eval.Host. The parameter variable's prior
// value is saved and restored around the call: DEF FN parameters shadow
// same-named program variables only for the call's duration, they are
// not a separate scope.
func (it *Interpreter) CallUserFunction(name string, arg value.Value) (value.Value, error) {
	uf, ok := it.userFuncs[name]
	if !ok {
		return value.Value{}, basicerr.UndefinedFunction(name)
	}

	hadPrior := false
	var prior value.Value
	if v, ok := it.vars[uf.param]; ok {
		hadPrior = true
		prior = v
	}

	if err := it.SetVariable(uf.param, arg); err != nil {
		return value.Value{}, err
	}

	result, _, err := eval.Eval(it.lines[uf.lineIdx].toks, uf.tokPos, it)

	if hadPrior {
		it.vars[uf.param] = prior
	} else {
		delete(it.vars, uf.param)
	}

	return result, err
}
