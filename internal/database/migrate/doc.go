// Package migrate executes schema migrations as a short-lived invocation,
// separate from the running service.
//
// Steps are goose-format SQL files resolved by [Collect] into one linear,
// version-ordered sequence; the runner never reorders or parallelizes them.
// Two structurally different modes exist and exactly one is chosen per run:
//
//   - [Runner.Offline] emits every step as literal SQL text without opening a
//     connection, for review or execution by a DBA tool.
//   - [Runner.Online] opens a single transient connection and executes all
//     pending steps inside one transaction, committing only if every step
//     succeeds.
//
// The one-transaction guarantee assumes transactional DDL. PostgreSQL
// provides it; statements that opt out of transactions are rejected at parse
// time rather than silently weakening the guarantee.
package migrate
