// Package form binds urlencoded form posts into structs and validates them
// with go-playground/validator.
//
//	var f form.Login
//	if err := form.Bind(r, &f); err != nil {
//		return response.Error(response.ErrBadRequest.WithError(err))
//	}
//	if errs := form.Validate(&f); errs != nil {
//		flashes := errs.Flashes()
//		// re-render with flashes
//	}
//
// Field names in Errors are the `form` tag names. A struct may implement
// Messager to override messages per "field.tag" pair.
package form
