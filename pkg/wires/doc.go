// Package wires converts absolute, position-encoded wire names into
// position-independent canonical names.
//
// # Overview
//
// Every wire on a device is reported with an absolute name of the form
// R<row>C<col>_<base>. Such names are useless for a database that is shared
// by all tiles of the same type, because the same wire has a different
// name at every grid position. [NormalizeWire] rewrites an absolute name,
// relative to the tile that observes it, into a canonical name:
//
//   - wires at the observing tile lose their position prefix entirely
//   - wires at another tile get a relative offset prefix such as "N6:" or
//     "S2E1:" (vertical component first)
//   - global distribution networks get a fixed class prefix: "BRANCH:",
//     "SPINE:", "HROW:", "G:", "DQSG:"
//   - horizontal wires seen from a TAP tile get "BRANCH_L:" or "BRANCH_R:"
//   - every power rail collapses to the single name "G:VCC"
//
// # Device Edges
//
// Multi-segment directional wires (H01, H02, H06, V01, V02, V06) are named
// after a nominal tile position. Near the device edge that position would
// lie outside the grid, so the fabric emits an irregular alternative name.
// [NormalizeEdge] rewrites those back to the name the wire would have at a
// mid-array position, so that a physical wire never gets two canonical names.
//
// # Errors
//
// Malformed names are database-integrity violations. They are returned as
// [errors.ErrCodeGrammar] or [errors.ErrCodeAmbiguous] errors and must not
// be ignored by callers.
//
// The ':' separator is reserved. Text formats that forbid it, such as FASM,
// substitute "__"; see [FASMName].
package wires
