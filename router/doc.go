// Package router answers large batches of route queries over one galaxy,
// reinforcing every jump a route uses so later routes prefer it.
//
// Lifecycle:
//
//  1. New(g, opts...) builds the adjacency store from the galaxy.
//  2. Prepare(ctx, queries) labels components, selects landmarks and grows the
//     landmark forest. The queries only feed the traffic landmark candidate.
//  3. GetRouteBetween answers one query; RouteAll answers a whole batch.
//
// Batches:
//
// RouteAll sorts queries by descending priority and splits them three ways:
//
//   - immediate:    the first ImmediateBatch queries, solved synchronously on
//     the live store and applied one by one;
//   - intra-region: both endpoints share a region; regions are dealt
//     round-robin to workers and a worker only ever sees its own regions;
//   - long-range:   everything else, drawn by all workers from one shared queue.
//
// Each worker owns a read-only Snapshot of the store and a Clone of the forest
// taken when its phase starts. Workers only discover paths. The calling
// goroutine is the single writer: it applies results in arrival order,
// re-costing each path on the live store, lightening its jumps towards their
// base distance (w' = w − (w − distance)/RouteReuse), crediting trade on the
// galaxy and repairing the forest.
//
// Failure:
//
//   - A query whose endpoints are not connected is dropped and counted.
//   - A panicking worker is recovered into ErrWorkerFailed; the batch is
//     cancelled and RouteAll returns ErrBatchFailed.
//   - BatchTimeout bounds a whole batch the same way.
//
// A Router is not safe for concurrent use. RouteAll is the only method that
// runs goroutines, and it joins them all before returning.
package router
