// Package diag defines the diagnostic model used by lintmap phases.
//
// Diagnostic is the central record: severity, a numeric Code with a stable
// string ID, a short message, the primary span and optional notes.
// Producers emit through a Reporter so they are not coupled to storage;
// BagReporter collects into a Bag, DedupReporter drops repeats, and
// LintReporter gates lint warnings on the configuration in effect at the
// warning's position.
//
// # Lint gating
//
// A lint warning carries a Code derived from its lint.Category. Whether it
// is shown depends on @SuppressWarnings and @Deprecated annotations of the
// enclosing declarations, which are only known once those declarations are
// attributed. LintReporter asks a LintSource (normally *lintmap.Mapper):
//
//   - known and enabled: the warning is forwarded;
//   - known and suppressed or disabled: the warning is dropped;
//   - unknown: the warning is kept aside until Flush.
//
// Flush repeats the query for every deferred warning. A warning whose
// answer is still unknown at that point is forwarded, since nothing can
// suppress it any more.
//
// Package diag does no IO. FormatShort renders diagnostics into one line
// each for the CLI and tests.
package diag
