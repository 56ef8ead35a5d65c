package clientdist

import _ "embed"

// VerbosityJS is the browser client script.
//
// It is served by the framework at "/_verbosity/client.js".
//
//go:embed verbosity.js
var VerbosityJS []byte
