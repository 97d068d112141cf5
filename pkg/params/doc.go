// Package params gives handlers escaped access to submitted request
// parameters.
//
// Parameters are read through a RequestSource instead of ambient request
// state. FromRequest parses the query string and the urlencoded or multipart
// body of an *http.Request into insertion-ordered sanitizer.Map trees,
// honouring the bracket syntax used by shop forms ("filter[color][]=red").
//
// A Params accessor applies the lookup order body, then query, then default:
//
//	src, err := params.FromRequest(r)
//	if err != nil {
//	    return err
//	}
//	p := params.ForSession(src, sess.IsAdmin())
//	reviewID := p.String("reviewId", "")
//
// Escaped, String and Bind pass values through sanitizer.Sanitize exactly
// once. Raw returns the submitted value untouched.
//
// # Administrator bypass
//
// Sessions of authenticated administrators receive unescaped parameters.
// The bypass is explicit: ForSession(src, true) is New(src,
// WithEscaping(false)), and Bind only applies it when a WithAdminResolver
// callback accepts the request. Treat every admin code path that renders
// parameters as a security review item.
//
// # Binding
//
// Bind plugs into handler.Wrap as a binder for structs tagged with
// `param:"name"`; add ",raw" to skip escaping for a single field.
//
// # Links back
//
// RequestURL rebuilds the current page URL without session credentials for
// links back to it.
package params
