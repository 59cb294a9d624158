// Package earnings contains the settlement ledger: Entry, one immutable
// commission-split line per beneficiary per delivered order, and Payout,
// a reviewed batch disbursement of available entries.
//
// Amounts are decimal and exact: commission + net always reassembles the
// gross, and a payout's amount always equals the sum of its entries.
package earnings
