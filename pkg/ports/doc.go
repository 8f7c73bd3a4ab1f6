/*
Package ports defines the driven ports (interfaces) for shadenet.

These interfaces decouple stage authoring from external implementations, allowing
layers to be persisted in memory, on disk or in Redis.

# Key Interfaces

  - LayerStore: Responsible for persisting and loading layer documents.
  - DistributedLocker: Provides distributed locking for concurrent edits of a layer.

RunLayerStoreContract verifies a LayerStore implementation and is shared by
every adapter's tests.
*/
package ports
