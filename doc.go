// Package papertrade provides the types and functions for a paper-trading
// ledger: a simulated portfolio that tracks cash, positions with a
// weighted-average cost basis, and an append-only transaction history.
//
// The package is organized in two layers:
//   - Portfolio is the unchecked mutator. ExecuteBuy and ExecuteSell apply
//     an order without validation and trust their caller; they are exposed
//     for order execution, replay and state restoration only.
//   - OrderService is the sanctioned entry point for user-initiated orders.
//     It validates quantity, price availability, balance and holdings, and
//     returns a structured OrderResult instead of an error for business
//     rejections.
//
// Derived views are computed from the transaction log without mutating it:
// performance metrics, realized PnL per sell (average-cost replay), CSV
// export, and JSON snapshots for persistence.
//
// All monetary and quantity arithmetic is exact, built on
// github.com/shopspring/decimal. Nothing in the ledger core does I/O on
// its own: prices come from a PriceSource and persistence goes through a
// Storage, both narrow interfaces implemented elsewhere in this module.
//
// This package serves as the foundational logic for the `ppt` command-line
// tool.
package papertrade
