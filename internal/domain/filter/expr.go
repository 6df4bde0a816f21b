package filter

import (
	"github.com/google/cel-go/cel"

	"fieldbook/internal/core/apperror"
	"fieldbook/internal/core/model"
)

// celEnv is built once; the declared variables mirror the record shape.
var celEnv = func() *cel.Env {
	env, err := cel.NewEnv(
		cel.Variable("entityId", cel.StringType),
		cel.Variable("timestamp", cel.TimestampType),
		cel.Variable("data", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		panic(err)
	}
	return env
}()

// Program is a compiled record predicate.
type Program struct {
	prg cel.Program
}

// Compile parses an expression into a record predicate. Compile errors
// surface as validation errors; the expression must evaluate to bool.
func Compile(expression string) (*Program, error) {
	ast, iss := celEnv.Compile(expression)
	if iss != nil && iss.Err() != nil {
		return nil, apperror.NewValidation("invalid filter expression").
			WithDetail("expression", expression).
			WithDetail("error", iss.Err().Error())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, apperror.NewValidation("filter expression must be boolean").
			WithDetail("expression", expression).
			WithDetail("type", ast.OutputType().String())
	}
	prg, err := celEnv.Program(ast)
	if err != nil {
		return nil, apperror.NewValidation("invalid filter expression").
			WithDetail("expression", expression).
			WithDetail("error", err.Error())
	}
	return &Program{prg: prg}, nil
}

// Match evaluates the predicate against one record. Evaluation errors
// (missing keys, type mismatches) exclude the record rather than abort
// the whole filter pass.
func (p *Program) Match(r *model.Record) bool {
	out, _, err := p.prg.Eval(map[string]any{
		"entityId":  r.EntityID,
		"timestamp": r.Timestamp,
		"data":      r.Data,
	})
	if err != nil {
		return false
	}
	keep, ok := out.Value().(bool)
	return ok && keep
}
