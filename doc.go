// Package drift reconstructs the daily composition and value of a
// buy-and-hold portfolio from a transaction ledger and a table of daily
// prices, and derives performance statistics from that reconstruction.
//
// The model starts from passive sector funds; each individual stock
// purchase is a same-day swap funded by selling an equal dollar amount
// of the sector's fund. The portfolio is never rebalanced, so category
// weights drift with relative price performance.
//
// The whole computation is a pure function of its inputs: a Ledger, a
// PriceTable and a Registry go in, an Analysis comes out. No state is
// kept between runs.
package drift
