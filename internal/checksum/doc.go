// Package checksum hashes consolidated migrations.
//
// Two digests are produced for every output:
//
//   - Raw: SHA-256 of the exact bytes, used to decide whether a committed
//     migration matches what the dump would generate today
//   - Normalized: SHA-256 after comments are dropped, case is folded and
//     whitespace is collapsed, used to tell cosmetic drift from schema drift
//
// Quoted literals and dollar-quoted bodies keep their comment markers; only
// their letter case is folded.
//
//	calc := checksum.New()
//	raw := calc.CalculateRaw(sql)
//	normalized := calc.CalculateNormalized(sql)
package checksum
