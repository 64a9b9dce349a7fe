package unmanaged

// SimulateFallback runs the collector-driven release path of r as if r had
// just become unreachable.
func SimulateFallback(r *Resource) {
	if r.IsFallbackArmed() {
		r.cleanup.Stop()
	}
	r.state.finalizeFallback()
}
