package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "blockstore"

// StorageMetrics groups all collectors of the block storage server. It
// satisfies both volume.Metrics and blockio.Metrics.
type StorageMetrics struct {
	volumeMetrics
	backendMetrics
	stateMetrics
}

// NewStorageMetrics creates collectors and registers them in reg.
func NewStorageMetrics(reg prometheus.Registerer, version string) *StorageMetrics {
	vol := newVolumeMetrics()
	vol.register(reg)

	backend := newBackendMetrics()
	backend.register(reg)

	state := newStateMetrics()
	state.register(reg)

	registerVersionMetric(reg, namespace, version)

	return &StorageMetrics{
		volumeMetrics:  vol,
		backendMetrics: backend,
		stateMetrics:   state,
	}
}
