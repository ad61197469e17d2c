// validate.go — arity and shape validation for definitional surface forms
//
// The three definitional forms (definition, defthm, defaxiom) share one
// positional grammar of 2 to 4 elements:
//
//	(head name body)                 ; doc defaults, no params
//	(head name params body)          ; doc defaults
//	(head name doc params body)
//
// SplitDefForm decomposes the elements after the head into (name, doc,
// params, body), filling defaults, or fails with ArityError / ShapeError.
// Which kernel handler consumes the result is the caller's business.
package latte

// DefaultDoc is attached when a form omits its doc string.
const DefaultDoc = "No documentation."

// DefForm is a decomposed definitional form. RawParams is the original,
// uninterpreted binder sequence (possibly empty); Body is the final surface
// expression (a term body or a statement type, depending on the form).
type DefForm struct {
	Name      Sym
	Doc       string
	RawParams S
	Body      any
}

// SplitDefForm validates the 2–4 positional elements of a definitional form.
// head is only used to label errors.
func SplitDefForm(head Sym, args []any) (DefForm, error) {
	if len(args) < 2 || len(args) > 4 {
		return DefForm{}, &ArityError{Form: head, Min: 2, Max: 4, Got: len(args)}
	}

	f := DefForm{Doc: DefaultDoc, RawParams: S{}, Body: args[len(args)-1]}

	name, ok := AsSym(args[0])
	if !ok {
		return DefForm{}, &ShapeError{Form: head, Field: "name", Want: "an identifier", Got: args[0]}
	}
	f.Name = name

	switch len(args) {
	case 3:
		params, ok := AsList(args[1])
		if !ok {
			return DefForm{}, &ShapeError{Form: head, Field: "params", Want: "a binder sequence", Got: args[1]}
		}
		f.RawParams = params
	case 4:
		doc, ok := args[1].(string)
		if !ok {
			return DefForm{}, &ShapeError{Form: head, Field: "doc", Want: "a string", Got: args[1]}
		}
		f.Doc = doc
		params, ok := AsList(args[2])
		if !ok {
			return DefForm{}, &ShapeError{Form: head, Field: "params", Want: "a binder sequence", Got: args[2]}
		}
		f.RawParams = params
	}
	return f, nil
}
