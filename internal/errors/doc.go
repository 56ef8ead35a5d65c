// Package errors provides coded, structured errors for verbosity.
//
// Every error raised by the router, the registry, the browser bridge and the
// configuration loader carries a stable code (e.g. "E100") that maps to a
// short message, a category and a longer explanation. Public packages wrap
// their exported sentinel errors so callers can keep using errors.Is.
//
// # Error Codes
//
//	E100-E199  routing (unmatched path, redirect loop, DOM swap)
//	E200-E299  registry
//	E300-E399  browser bridge protocol and transport
//	E400-E499  configuration
//
// # Usage
//
//	err := errors.New("E100").
//	    WithDetail("no route matches /missing").
//	    WithSuggestion("Register a route for the path or navigate to a valid one").
//	    Wrap(router.ErrNoRoute)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E100: No route matches path
//	//
//	//   no route matches /missing
//	//
//	//   Hint: Register a route for the path or navigate to a valid one
package errors
