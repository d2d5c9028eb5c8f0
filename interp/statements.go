// ==============================================================================================
// FILE: interp/statements.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: One function per statement keyword. Each takes the line it belongs to and the
//          token offset of its keyword, and returns the offset of the next unconsumed token
//          plus any control-flow effect (see flow in run.go).
// ==============================================================================================

package interp

import (
	"strings"

	"applesoft/basicerr"
	"applesoft/eval"
	"applesoft/token"
	"applesoft/value"
)

func (it *Interpreter) writeOut(s string) {
	if it.screen != nil {
		it.screen.Write(s)
	}
}

func (it *Interpreter) newlineOut() {
	if it.screen != nil {
		it.screen.Newline()
	}
}

// printZoneTab advances the cursor to the next 16-column print zone, the
// classic Applesoft comma-separator behavior in PRINT lists.
func (it *Interpreter) printZoneTab() {
	if it.screen == nil {
		return
	}
	col := it.screen.Column()
	next := ((col / 16) + 1) * 16
	if next >= it.screen.Width() {
		it.screen.Newline()
		return
	}
	it.writeOut(strings.Repeat(" ", next-col))
}

func (it *Interpreter) stmtPrint(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	suppressNewline := false

	for pos < len(toks) && toks[pos].Kind != token.Colon && toks[pos].Kind != token.EndOfLine {
		if toks[pos].Kind == token.Semicolon {
			suppressNewline = true
			pos++
			continue
		}
		if toks[pos].Kind == token.Comma {
			suppressNewline = true
			it.printZoneTab()
			pos++
			continue
		}
		v, next, err := eval.Eval(toks, pos, it)
		if err != nil {
			return pos, flow{}, err
		}
		it.writeOut(v.Format())
		suppressNewline = false
		pos = next
	}
	if !suppressNewline {
		it.newlineOut()
	}
	return pos, flow{}, nil
}

// stmtLet handles both explicit "LET X = ..." (caller passes the token
// offset just past LET) and bare "X = ..." assignment (caller passes the
// identifier's own offset).
func (it *Interpreter) stmtLet(lineIdx, pos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	if pos >= len(toks) || toks[pos].Kind != token.Identifier {
		return pos, flow{}, basicerr.Syntax()
	}
	name := toks[pos].Literal
	pos++

	if pos < len(toks) && toks[pos].Kind == token.LParen {
		vals, next, err := eval.ParseExprList(toks, pos, it)
		if err != nil {
			return pos, flow{}, err
		}
		pos = next
		indices := make([]float64, len(vals))
		for i, v := range vals {
			if v.IsString {
				return pos, flow{}, basicerr.TypeMismatch()
			}
			indices[i] = v.Num
		}
		if pos >= len(toks) || toks[pos].Kind != token.Equal {
			return pos, flow{}, basicerr.SyntaxExpected("=")
		}
		pos++
		val, next2, err := eval.Eval(toks, pos, it)
		if err != nil {
			return pos, flow{}, err
		}
		if err := it.SetArrayElement(name, indices, val); err != nil {
			return next2, flow{}, err
		}
		return next2, flow{}, nil
	}

	if pos >= len(toks) || toks[pos].Kind != token.Equal {
		return pos, flow{}, basicerr.SyntaxExpected("=")
	}
	pos++
	val, next, err := eval.Eval(toks, pos, it)
	if err != nil {
		return pos, flow{}, err
	}
	if err := it.SetVariable(name, val); err != nil {
		return next, flow{}, err
	}
	return next, flow{}, nil
}

func (it *Interpreter) stmtIf(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	cond, next, err := eval.Eval(toks, pos, it)
	if err != nil {
		return pos, flow{}, err
	}
	pos = next
	if pos >= len(toks) || toks[pos].Kind != token.Then {
		return pos, flow{}, basicerr.SyntaxExpected("THEN")
	}
	pos++
	if cond.IsString {
		return pos, flow{}, basicerr.TypeMismatch()
	}
	if cond.Num == 0 {
		return it.skipToEndOfLine(lineIdx, pos), flow{}, nil
	}
	if pos < len(toks) && toks[pos].Kind == token.Number {
		lineNum := int(toks[pos].Num)
		idx, ok := it.findLineIndex(lineNum)
		if !ok {
			return pos, flow{}, basicerr.UndefinedStatement()
		}
		return pos, flow{jumped: true, lineIdx: idx}, nil
	}
	return it.execStatement(lineIdx, pos)
}

func (it *Interpreter) skipToEndOfLine(lineIdx, pos int) int {
	toks := it.lines[lineIdx].toks
	for pos < len(toks) && toks[pos].Kind != token.EndOfLine {
		pos++
	}
	return pos
}

func (it *Interpreter) stmtGoto(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	if pos >= len(toks) || toks[pos].Kind != token.Number {
		return pos, flow{}, basicerr.Syntax()
	}
	idx, ok := it.findLineIndex(int(toks[pos].Num))
	if !ok {
		return pos, flow{}, basicerr.UndefinedStatement()
	}
	return pos + 1, flow{jumped: true, lineIdx: idx}, nil
}

func (it *Interpreter) stmtGosub(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	if pos >= len(toks) || toks[pos].Kind != token.Number {
		return pos, flow{}, basicerr.Syntax()
	}
	target, ok := it.findLineIndex(int(toks[pos].Num))
	if !ok {
		return pos, flow{}, basicerr.UndefinedStatement()
	}
	it.gosubStack = append(it.gosubStack, gosubFrame{lineIdx: lineIdx + 1})
	return pos + 1, flow{jumped: true, lineIdx: target}, nil
}

func (it *Interpreter) stmtReturn(_, tokPos int) (int, flow, error) {
	if len(it.gosubStack) == 0 {
		return tokPos, flow{}, basicerr.ReturnWithoutGosub()
	}
	top := it.gosubStack[len(it.gosubStack)-1]
	it.gosubStack = it.gosubStack[:len(it.gosubStack)-1]
	return tokPos + 1, flow{jumped: true, lineIdx: top.lineIdx}, nil
}

func (it *Interpreter) stmtFor(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	if pos >= len(toks) || toks[pos].Kind != token.Identifier {
		return pos, flow{}, basicerr.Syntax()
	}
	name := toks[pos].Literal
	pos++
	if pos >= len(toks) || toks[pos].Kind != token.Equal {
		return pos, flow{}, basicerr.SyntaxExpected("=")
	}
	pos++
	start, next, err := eval.Eval(toks, pos, it)
	if err != nil {
		return pos, flow{}, err
	}
	pos = next
	if pos >= len(toks) || toks[pos].Kind != token.To {
		return pos, flow{}, basicerr.SyntaxExpected("TO")
	}
	pos++
	limit, next, err := eval.Eval(toks, pos, it)
	if err != nil {
		return pos, flow{}, err
	}
	pos = next

	step := 1.0
	if pos < len(toks) && toks[pos].Kind == token.Step {
		pos++
		stepVal, next, err := eval.Eval(toks, pos, it)
		if err != nil {
			return pos, flow{}, err
		}
		step = stepVal.Num
		pos = next
	}

	if start.IsString || limit.IsString {
		return pos, flow{}, basicerr.TypeMismatch()
	}
	if err := it.SetVariable(name, start); err != nil {
		return pos, flow{}, err
	}
	it.forStack = append(it.forStack, forFrame{
		varName: name, limit: limit.Num, step: step, lineIdx: lineIdx, tokPos: pos,
	})
	return pos, flow{}, nil
}

func (it *Interpreter) stmtNext(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	name := ""
	if pos < len(toks) && toks[pos].Kind == token.Identifier {
		name = toks[pos].Literal
		pos++
	}
	if len(it.forStack) == 0 {
		return pos, flow{}, basicerr.NextWithoutFor()
	}
	idx := len(it.forStack) - 1
	if name != "" {
		found := false
		for i := idx; i >= 0; i-- {
			if it.forStack[i].varName == name {
				idx = i
				found = true
				break
			}
		}
		if !found {
			return pos, flow{}, basicerr.NextWithoutFor()
		}
	}
	frame := it.forStack[idx]
	cur := it.GetVariable(frame.varName)
	newVal := cur.Num + frame.step
	var cont bool
	if frame.step >= 0 {
		cont = newVal <= frame.limit
	} else {
		cont = newVal >= frame.limit
	}
	if err := it.SetVariable(frame.varName, value.Number(newVal)); err != nil {
		return pos, flow{}, err
	}

	if cont {
		it.forStack = it.forStack[:idx+1]
		return pos, flow{jumped: true, lineIdx: frame.lineIdx, tokPos: frame.tokPos}, nil
	}
	it.forStack = it.forStack[:idx]
	return pos, flow{}, nil
}

func (it *Interpreter) stmtDim(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	for {
		if pos >= len(toks) || toks[pos].Kind != token.Identifier {
			return pos, flow{}, basicerr.Syntax()
		}
		name := toks[pos].Literal
		pos++
		vals, next, err := eval.ParseExprList(toks, pos, it)
		if err != nil {
			return pos, flow{}, err
		}
		pos = next
		bounds := make([]float64, len(vals))
		for i, v := range vals {
			if v.IsString {
				return pos, flow{}, basicerr.TypeMismatch()
			}
			bounds[i] = v.Num
		}
		if err := it.dimArray(name, bounds); err != nil {
			return pos, flow{}, err
		}
		if pos < len(toks) && toks[pos].Kind == token.Comma {
			pos++
			continue
		}
		break
	}
	return pos, flow{}, nil
}

// stmtData is a runtime no-op: DATA values are harvested once into the
// pool before RUN begins (see rebuildDataPool), so reaching a DATA
// statement during execution just skips over it.
func (it *Interpreter) stmtData(lineIdx, tokPos int) (int, flow, error) {
	return it.skipToEndOfStatement(lineIdx, tokPos+1), flow{}, nil
}

func (it *Interpreter) stmtRead(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	for {
		if pos >= len(toks) || toks[pos].Kind != token.Identifier {
			return pos, flow{}, basicerr.Syntax()
		}
		name := toks[pos].Literal
		pos++

		var indices []float64
		isArray := false
		if pos < len(toks) && toks[pos].Kind == token.LParen {
			isArray = true
			vals, next, err := eval.ParseExprList(toks, pos, it)
			if err != nil {
				return pos, flow{}, err
			}
			indices = make([]float64, len(vals))
			for i, v := range vals {
				if v.IsString {
					return pos, flow{}, basicerr.TypeMismatch()
				}
				indices[i] = v.Num
			}
			pos = next
		}

		if it.dataPtr < 0 {
			it.dataPtr = 0
		}
		if it.dataPtr >= len(it.data) {
			return pos, flow{}, basicerr.OutOfData()
		}
		item := it.data[it.dataPtr]
		it.dataPtr++

		toStore := coerceReadValue(name, item)
		var err error
		if isArray {
			err = it.SetArrayElement(name, indices, toStore)
		} else {
			err = it.SetVariable(name, toStore)
		}
		if err != nil {
			return pos, flow{}, err
		}

		if pos < len(toks) && toks[pos].Kind == token.Comma {
			pos++
			continue
		}
		break
	}
	return pos, flow{}, nil
}

func coerceReadValue(name string, item value.Value) value.Value {
	if isStringName(name) {
		if item.IsString {
			return item
		}
		return value.String(strings.TrimSpace(value.FormatNumber(item.Num)))
	}
	if item.IsString {
		return value.Number(value.ParseNumber(item.Str))
	}
	return item
}

func (it *Interpreter) stmtRestore(_, tokPos int) (int, flow, error) {
	it.dataPtr = 0
	return tokPos + 1, flow{}, nil
}

func (it *Interpreter) stmtDefFn(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	if pos >= len(toks) || toks[pos].Kind != token.Fn {
		return pos, flow{}, basicerr.SyntaxExpected("FN")
	}
	pos++
	if pos >= len(toks) || toks[pos].Kind != token.Identifier {
		return pos, flow{}, basicerr.Syntax()
	}
	name := toks[pos].Literal
	pos++
	if pos >= len(toks) || toks[pos].Kind != token.LParen {
		return pos, flow{}, basicerr.SyntaxExpected("(")
	}
	pos++
	if pos >= len(toks) || toks[pos].Kind != token.Identifier {
		return pos, flow{}, basicerr.Syntax()
	}
	param := toks[pos].Literal
	pos++
	if pos >= len(toks) || toks[pos].Kind != token.RParen {
		return pos, flow{}, basicerr.SyntaxExpected(")")
	}
	pos++
	if pos >= len(toks) || toks[pos].Kind != token.Equal {
		return pos, flow{}, basicerr.SyntaxExpected("=")
	}
	pos++
	it.defineFunction(name, param, lineIdx, pos)
	return it.skipToEndOfStatement(lineIdx, pos), flow{}, nil
}

func (it *Interpreter) stmtOn(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	v, next, err := eval.Eval(toks, pos, it)
	if err != nil {
		return pos, flow{}, err
	}
	pos = next
	if v.IsString {
		return pos, flow{}, basicerr.TypeMismatch()
	}

	isGosub := false
	switch {
	case pos < len(toks) && toks[pos].Kind == token.Goto:
		pos++
	case pos < len(toks) && toks[pos].Kind == token.Gosub:
		isGosub = true
		pos++
	default:
		return pos, flow{}, basicerr.Syntax()
	}

	var targets []int
	for {
		if pos >= len(toks) || toks[pos].Kind != token.Number {
			return pos, flow{}, basicerr.Syntax()
		}
		targets = append(targets, int(toks[pos].Num))
		pos++
		if pos < len(toks) && toks[pos].Kind == token.Comma {
			pos++
			continue
		}
		break
	}

	sel := int(v.Num)
	if sel < 1 || sel > len(targets) {
		return pos, flow{}, nil
	}
	target, ok := it.findLineIndex(targets[sel-1])
	if !ok {
		return pos, flow{}, basicerr.UndefinedStatement()
	}
	if isGosub {
		it.gosubStack = append(it.gosubStack, gosubFrame{lineIdx: lineIdx + 1})
	}
	return pos, flow{jumped: true, lineIdx: target}, nil
}

func (it *Interpreter) stmtHtab(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	v, next, err := eval.Eval(toks, pos, it)
	if err != nil {
		return pos, flow{}, err
	}
	if v.IsString {
		return next, flow{}, basicerr.TypeMismatch()
	}
	col := int(v.Num) - 1
	if it.screen != nil {
		it.screen.HTab(col)
	}
	return next, flow{}, nil
}

func (it *Interpreter) stmtVtab(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	v, next, err := eval.Eval(toks, pos, it)
	if err != nil {
		return pos, flow{}, err
	}
	if v.IsString {
		return next, flow{}, basicerr.TypeMismatch()
	}
	row := int(v.Num) - 1
	if it.screen != nil {
		it.screen.VTab(row)
	}
	return next, flow{}, nil
}

func (it *Interpreter) stmtPoke(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	addr, next, err := eval.Eval(toks, pos, it)
	if err != nil {
		return pos, flow{}, err
	}
	pos = next
	if pos >= len(toks) || toks[pos].Kind != token.Comma {
		return pos, flow{}, basicerr.SyntaxExpected(",")
	}
	pos++
	val, next, err := eval.Eval(toks, pos, it)
	if err != nil {
		return pos, flow{}, err
	}
	if addr.IsString || val.IsString {
		return next, flow{}, basicerr.TypeMismatch()
	}
	if err := it.Poke(int(addr.Num), int(val.Num)); err != nil {
		return next, flow{}, err
	}
	return next, flow{}, nil
}

// stmtCall evaluates CALL's machine-address argument for type checking
// but otherwise no-ops: this interpreter has no 6502 to jump
// into.
func (it *Interpreter) stmtCall(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	v, next, err := eval.Eval(toks, pos, it)
	if err != nil {
		return pos, flow{}, err
	}
	if v.IsString {
		return next, flow{}, basicerr.TypeMismatch()
	}
	return next, flow{}, nil
}

func (it *Interpreter) stmtInput(lineIdx, tokPos int) (int, flow, error) {
	toks := it.lines[lineIdx].toks
	pos := tokPos + 1
	prompt := "? "
	if pos < len(toks) && toks[pos].Kind == token.String {
		prompt = toks[pos].Literal
		pos++
		if pos < len(toks) && (toks[pos].Kind == token.Semicolon || toks[pos].Kind == token.Comma) {
			pos++
		}
	}
	it.writeOut(prompt)

	var names []string
	for {
		if pos >= len(toks) || toks[pos].Kind != token.Identifier {
			return pos, flow{}, basicerr.Syntax()
		}
		names = append(names, toks[pos].Literal)
		pos++
		if pos < len(toks) && toks[pos].Kind == token.Comma {
			pos++
			continue
		}
		break
	}

	if it.input == nil {
		return pos, flow{}, basicerr.New("?INPUT ERROR")
	}
	raw, err := it.input.ReadLine()
	if err != nil {
		return pos, flow{}, err
	}
	it.newlineOut()

	parts := strings.Split(raw, ",")
	for i, name := range names {
		var text string
		if i < len(parts) {
			text = strings.TrimSpace(parts[i])
		}
		var v value.Value
		if isStringName(name) {
			v = value.String(text)
		} else {
			v = value.Number(value.ParseNumber(text))
		}
		if err := it.SetVariable(name, v); err != nil {
			return pos, flow{}, err
		}
	}
	return pos, flow{}, nil
}
