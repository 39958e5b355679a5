// Package orchestrator sequences discovery, loading, dependency gating,
// hooks and placement into a full install, uninstall or dry-run.
//
// A run moves through these states:
//
//	Discovering -> Loading -> CheckingTopDeps -> RunningPre -> InstallingEntries -> RunningPost -> Done
//	Discovering -> Loading -> RemovingEntries -> Done                                 (uninstall)
//
// RunningPre, InstallingEntries and RunningPost repeat for each document.
// Aborted is reachable from Loading (top-level document unreadable),
// CheckingTopDeps (top-level required dependency missing) and from the hook
// states when a command fails. Everything else is recoverable and collected
// as warnings on the Result.
//
// Execution is strictly sequential: every shell command is awaited before
// the next step, since later steps may depend on its side effects.
package orchestrator
