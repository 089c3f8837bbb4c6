// Package match ranks near-miss names so diagnostics can suggest the
// identifier a user most likely meant.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Similarity: normalized, case-insensitive similarity of two identifiers
//   - Suggest: picks the closest candidate above a threshold
package match
