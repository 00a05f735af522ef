// Package shipment implements the shipment sign-off workflow engine.
//
// A shipment record moves through four states as its parties sign:
//
//	Pending Shipment ──receiver signs──> Pending Inspection ──inspector signs──> Pending Approval ──approver signs──> Approved
//	        ^                                    │                                      │
//	        └───────receiver signature removed───┘<──────inspector signature removed────┘
//
// The state is never stored as an independent source of truth: DeriveStatus
// computes it from which signatures are present, and every write path
// recomputes it. CanEdit decides, for the computed state, which block of
// fields (base, receiver, inspector, approver) is writable; only the current
// actor's block is open and everything signed before it is frozen. An
// approved record is immutable.
//
// The shipment code is derived from the item number, the lot number and the
// shipment date by ComputeShipmentCode and is recomputed whenever one of them
// changes.
package shipment
