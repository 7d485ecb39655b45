// Package cyclecount implements the cycle count reconciliation engine.
//
// A cycle count is a periodic physical inventory audit: the engine snapshots
// the recorded stock level of every active product, staff record the
// quantities they physically counted, and a single finalize step reconciles
// the two into the live inventory ledger exactly once.
//
// # Workflow
//
//  1. StartCycle creates the cycle header and one detail row per active
//     product, freezing the system quantity as the baseline. Header and
//     details appear atomically; a partial cycle is never visible.
//  2. RecordCount stages counted quantities on detail rows while the cycle
//     is Pending. Nothing touches inventory at this stage.
//  3. FinalizeCycle applies counted-minus-system variances to inventory and
//     flips the cycle to Completed, all in one transaction.
//
// # Consistency
//
// Two races are guarded explicitly. Inventory writes are compare-and-swaps
// against the snapshot, so stock movements during the counting window fail
// the finalize rather than being overwritten. The Completed flip is a
// conditional update verified to have affected exactly one row, so two
// concurrent finalize calls can never both apply adjustments.
//
// # Collaborators
//
// The engine depends on narrow interfaces for the product catalog, the
// inventory store, and the audit sink; the gorm-backed implementations live
// in feature/catalog, feature/inventory, and feature/audit.
package cyclecount
