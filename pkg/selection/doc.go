// Package selection implements the two-host selection state machine that
// drives path highlighting.
//
// A [Controller] owns one [fattree.Topology] together with the hosts the user
// picked and the cables currently highlighted. Selections move through three
// states:
//
//	Empty --select A--> OneSelected --select B--> TwoSelected
//	  ^                     |                         |
//	  +----select A again---+                         |
//	                   OneSelected <--select C--------+
//
// Entering TwoSelected computes the route between the two hosts with
// [fattree.Topology.Route] and replaces the highlight set as a whole. A third
// selection clears both the previous pair and the highlight and starts over
// with the new host.
//
// Reconfiguring the topology is all or nothing: a rejected configuration
// leaves the current topology, selection and highlight untouched, an accepted
// one replaces the topology and resets the selection.
//
// A Controller is not safe for concurrent use. Servers persist a [Snapshot]
// per session and rebuild a Controller per request with [Restore].
package selection
