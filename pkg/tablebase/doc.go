/*
Package tablebase holds endgame statistics keyed by material signature.

A material signature such as KRNvKNN names an endgame by the pieces of each
side. NormalizeSignature brings any spelling into the canonical form used as
a storage key, and Store keeps the per-endgame statistics documents in an
SQLite database.
*/
package tablebase
