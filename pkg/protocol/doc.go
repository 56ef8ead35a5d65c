// Package protocol defines the messages exchanged between a verbosity server
// session and the browser client.
//
// Messages are JSON text frames with an "op" discriminator:
//
//	Server → Client
//	  mount    {target, id, html}   replace static element #target
//	  replace  {target, id, html}   replace mounted template #target
//	  push     {path}               history.pushState(path, "", path)
//	  error    {code, message}      a navigation failed
//
//	Client → Server
//	  hello    {path, state}        page loaded at path; state is history.state
//	  popstate {state}              the user moved through history
//	  navigate {path}               a data-vb-link anchor was clicked
//
// Templates are identified by the id the server assigned when they were
// mounted; the client wraps each template's HTML in an element carrying
// data-vb-id so later replace messages can find it.
package protocol
