package registry

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/schema"
)

// Builder owns the registry lifecycle: it compiles contracts from the
// metadata export, falls back to the hardcoded set when the export is
// unavailable, and republishes the snapshot whenever the source artifacts
// change.
type Builder struct {
	metadataPath   string
	operationsPath string
	watcher        *Watcher
	log            zerolog.Logger

	current atomic.Pointer[Snapshot]
	catalog atomic.Pointer[schema.OperationCatalog]

	// rebuildMu serializes rebuilds; readers keep using the previous
	// snapshot until the swap.
	rebuildMu sync.Mutex
}

// NewBuilder creates a builder over the given source artifacts. No snapshot
// exists until the first Current or Rebuild call.
func NewBuilder(metadataPath, operationsPath string, log zerolog.Logger) *Builder {
	return &Builder{
		metadataPath:   metadataPath,
		operationsPath: operationsPath,
		watcher:        NewWatcher(metadataPath, operationsPath),
		log:            log.With().Str("component", "registry").Logger(),
	}
}

// Current returns the live snapshot, rebuilding first when none exists yet
// or the source artifacts went stale.
func (b *Builder) Current() *Snapshot {
	if snap := b.current.Load(); snap != nil && !b.watcher.Stale() {
		return snap
	}
	return b.Rebuild()
}

// Snapshot returns the live snapshot without any freshness check, or nil
// before the first rebuild.
func (b *Builder) Snapshot() *Snapshot {
	return b.current.Load()
}

// Catalog returns the loaded operation catalog; never nil.
func (b *Builder) Catalog() *schema.OperationCatalog {
	if c := b.catalog.Load(); c != nil {
		return c
	}
	return &schema.OperationCatalog{}
}

// Rebuild recompiles the whole registry from scratch and atomically swaps it
// in. There is no incremental patching: prior state is discarded wholesale.
// Compilation failure is not fatal; the fallback set keeps basic operations
// callable.
func (b *Builder) Rebuild() *Snapshot {
	b.rebuildMu.Lock()
	defer b.rebuildMu.Unlock()

	snap := b.build()
	b.current.Store(snap)
	b.watcher.Commit()
	b.log.Info().
		Int("contracts", snap.Len()).
		Bool("fallback", snap.FromFallback()).
		Msg("Registry rebuilt")
	return snap
}

func (b *Builder) build() *Snapshot {
	catalog, err := schema.LoadOperationCatalog(b.operationsPath)
	if err != nil {
		b.log.Warn().Err(err).Msg("Failed to load operation catalog")
		catalog = &schema.OperationCatalog{}
	}
	b.catalog.Store(catalog)

	store, err := schema.LoadStore(b.metadataPath)
	if err != nil {
		b.log.Warn().Err(err).Msg("Failed to load metadata catalog, using fallback object set")
		return b.buildFallback()
	}

	compiler := schema.NewCompiler(store, b.log)
	snap := newSnapshot(false)
	for _, obj := range store.Active() {
		snap.register(compiler.CompileObject(&obj))
	}
	for _, name := range coreObjectNames {
		snap.register(compiler.Compile(name))
	}
	if snap.Len() == 0 {
		b.log.Warn().Msg("Metadata catalog compiled to zero contracts, using fallback object set")
		return b.buildFallback()
	}
	return snap
}

func (b *Builder) buildFallback() *Snapshot {
	snap := newSnapshot(true)
	for _, contract := range fallbackContracts() {
		snap.register(contract)
	}
	return snap
}
