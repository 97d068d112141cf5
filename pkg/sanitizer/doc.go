// Package sanitizer escapes HTML and control characters in request data
// before it is trusted by handlers and templates.
//
// Request data is modelled as a loose union carried in an any value:
//
//   - string – escaped with a fixed substitution table;
//   - *Map – an insertion-ordered string-keyed mapping whose keys and values
//     are sanitized recursively;
//   - anything else – an opaque value returned unchanged.
//
// The substitution table is:
//
//	&  -> &amp;
//	<  -> &lt;
//	>  -> &gt;
//	"  -> &quot;
//	'  -> &#039;
//	\0 -> (removed)
//	\  -> &#092;
//	\n -> &#10;
//	\r -> &#13;
//
// This is not a general purpose HTML sanitizer. It neutralises markup and
// line breaks in user supplied values and nothing more.
//
// # Usage
//
//	form := sanitizer.MapOf(
//	    sanitizer.P("title", "<b>nice</b>"),
//	    sanitizer.P("html", "<p>kept</p>"),
//	)
//
//	safe := sanitizer.Sanitize(form, "html").(*sanitizer.Map)
//	title, _ := safe.Get("title") // "&lt;b&gt;nice&lt;/b&gt;"
//	html, _ := safe.Get("html")   // "<p>kept</p>"
//
// Raw keys exempt the direct entries of the map passed to Sanitize. They are
// not inherited by nested maps.
//
// # Idempotence
//
// Escaping is applied once. Running Sanitize over its own output escapes the
// ampersands it inserted ("&amp;" becomes "&amp;amp;"), so callers must only
// sanitize raw input.
//
// # Concurrency
//
// All functions are pure and safe for concurrent use. Recursion depth equals
// the nesting depth of the input; bound request sizes upstream.
package sanitizer
