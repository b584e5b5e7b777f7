// Package cashflow analyzes personal bank transactions: spending and income
// over time, by category and by merchant.
//
// Transactions are imported from bank exports (see package bank), normalized
// to a single reporting currency, and kept in a combined csv file managed by a
// Store. The analysis functions (Summarize, Categories, Trends, ...) are pure
// functions of a list of transactions; Analyze bundles them all.
//
// This package is the foundation of the `cfs` command line tool and of its
// web dashboard.
package cashflow
