// Package validate checks mesh invariants (manifoldness, orientation
// consistency, twin/next closure, geometric degeneracy) and reports
// violations as findings instead of errors, so callers can gate pipelines or
// tolerate localized defects as they see fit.
package validate
