package hcl

import (
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// reprFunc quotes a string as a Python string literal.
var reprFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "value", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.StringVal(strconv.Quote(args[0].AsString())), nil
	},
})

// intOrNoneFunc passes integer text through and turns anything else into None.
var intOrNoneFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "value", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		text := strings.TrimSpace(args[0].AsString())
		if _, err := strconv.ParseInt(text, 10, 64); err != nil {
			return cty.StringVal("None"), nil
		}
		return cty.StringVal(text), nil
	},
})

// joinFunc joins a list of expressions with a separator.
var joinFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "separator", Type: cty.String},
	},
	VarParam: &function.Parameter{Name: "items", Type: cty.String},
	Type:     function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		items := make([]string, 0, len(args)-1)
		for _, a := range args[1:] {
			items = append(items, a.AsString())
		}
		return cty.StringVal(strings.Join(items, args[0].AsString())), nil
	},
})

func templateFunctions() map[string]function.Function {
	return map[string]function.Function{
		"repr":        reprFunc,
		"int_or_none": intOrNoneFunc,
		"join":        joinFunc,
	}
}
