// Package proxy builds outbound requests for matched proxy rules and
// performs the network call to the backend target.
//
// The request builder is a pure clone-and-retarget step; all
// transport-specific header handling (hop-by-hop removal, forwarding
// headers, Host) belongs to the Forwarder.
package proxy
